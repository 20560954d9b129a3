package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Env           string
	ServerPort    string
	DatabaseDSN   string
	KafkaBroker   string
	KafkaTopic    string
	KafkaGroupID  string
	KafkaUsername string
	KafkaPassword string
	AccessSecret  string
	BaseURL       string
	SMTPHost      string
	SMTPPort      string
	SMTPUser      string
	SMTPPassword  string
	MailFrom      string
	MailFromName  string
	TemplateDir   string
}

func LoadConfig() Config {
	if os.Getenv("ENV") != "prod" {
		if err := godotenv.Overload(); err != nil {
			log.Println("Warning: env file not found or could not be loaded:", err)
		}
	}

	cfg := Config{
		Env:           os.Getenv("ENV"),
		ServerPort:    os.Getenv("SERVER_PORT"),
		DatabaseDSN:   os.Getenv("DATABASE_DSN"),
		KafkaBroker:   os.Getenv("KAFKA_BROKER"),
		KafkaTopic:    os.Getenv("KAFKA_TOPIC"),
		KafkaGroupID:  os.Getenv("KAFKA_GROUP_ID"),
		KafkaUsername: os.Getenv("KAFKA_USERNAME"),
		KafkaPassword: os.Getenv("KAFKA_PASSWORD"),
		AccessSecret:  os.Getenv("ACCESS_SECRET"),
		BaseURL:       os.Getenv("BASE_URL"),
		SMTPHost:      os.Getenv("SMTP_HOST"),
		SMTPPort:      os.Getenv("SMTP_PORT"),
		SMTPUser:      os.Getenv("SMTP_USER"),
		SMTPPassword:  os.Getenv("SMTP_APP_PASSWORD"),
		MailFrom:      os.Getenv("MAIL_FROM"),
		MailFromName:  os.Getenv("MAIL_FROM_NAME"),
		TemplateDir:   os.Getenv("TEMPLATE_DIR"),
	}

	if cfg.ServerPort == "" {
		cfg.ServerPort = ":3000"
	}
	if cfg.SMTPHost == "" {
		cfg.SMTPHost = "smtp.gmail.com"
	}
	if cfg.SMTPPort == "" {
		cfg.SMTPPort = "587"
	}
	if cfg.KafkaGroupID == "" {
		cfg.KafkaGroupID = "mail-worker"
	}
	if cfg.TemplateDir == "" {
		cfg.TemplateDir = "internal/templates"
	}

	return cfg
}

func (c Config) IsProd() bool {
	return c.Env == "prod"
}
