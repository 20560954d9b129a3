package api

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/showup-or-else/event_service/config"
	"github.com/showup-or-else/event_service/infra/queue"
	"github.com/showup-or-else/event_service/internal/api/rest/handlers"
	"github.com/showup-or-else/event_service/internal/api/rest/middleware"
	"github.com/showup-or-else/event_service/internal/domain"
	"github.com/showup-or-else/event_service/internal/helper"
	"github.com/showup-or-else/event_service/internal/repository"
	"github.com/showup-or-else/event_service/internal/services"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const migrateLockID int64 = 20260831

// migrate runs AutoMigrate. On postgres an advisory lock serializes
// concurrent instances; lock and unlock go through one dedicated connection
// so they hit the same session, and the lock is released before the server
// starts listening.
func migrate(db *gorm.DB) error {
	if db.Dialector.Name() != "postgres" {
		return autoMigrate(db)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	ctx := context.Background()
	conn, err := sqlDB.Conn(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	if _, err := conn.ExecContext(ctx, "SELECT pg_advisory_lock($1)", migrateLockID); err != nil {
		return err
	}
	defer func() {
		_, _ = conn.ExecContext(ctx, "SELECT pg_advisory_unlock($1)", migrateLockID)
	}()

	return autoMigrate(db)
}

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Event{},
		&domain.Participant{},
		&domain.Invitee{},
		&domain.RSVPToken{},
		&domain.Plan{},
		&domain.PlanMember{},
	)
}

func StartServer(cfg config.Config) {
	app := fiber.New()

	// ---------- CORS ----------
	allowOrigins := cfg.BaseURL
	if allowOrigins == "" {
		allowOrigins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: allowOrigins,
		AllowHeaders: "Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	// ---------- DB ----------
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DatabaseDSN,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	if err != nil {
		log.Fatalf("database connection error: %v", err)
	}
	log.Println("database connected")

	// ---------- MIGRATION ----------
	if err := migrate(db); err != nil {
		log.Fatalf("migration error: %v", err)
	}
	log.Println("migration successful")

	// ---------- Infra ----------
	kafkaProducer := queue.NewProducer(
		cfg.KafkaBroker,
		cfg.KafkaTopic,
		cfg.KafkaUsername,
		cfg.KafkaPassword,
	)

	mailSvc := services.NewMailService(
		cfg.SMTPHost,
		cfg.SMTPPort,
		cfg.SMTPUser,
		cfg.SMTPPassword,
		cfg.MailFrom,
		cfg.MailFromName,
		cfg.BaseURL,
		cfg.TemplateDir,
	)

	authHelper := helper.SetupAuth(cfg.AccessSecret)

	// ---------- Repositories ----------
	userRepo := repository.NewUserRepository(db)
	eventRepo := repository.NewEventRepository(db)
	participantRepo := repository.NewParticipantRepository(db)
	inviteeRepo := repository.NewInviteeRepository(db)
	tokenRepo := repository.NewRSVPTokenRepository(db)
	planRepo := repository.NewPlanRepository(db)

	// ---------- Services ----------
	userSvc := services.NewUserService(userRepo, kafkaProducer, authHelper)
	accessSvc := services.NewAccessService(eventRepo, inviteeRepo, tokenRepo, kafkaProducer)
	eventSvc := services.NewEventService(eventRepo, participantRepo)
	rsvpSvc := services.NewRSVPService(eventRepo, participantRepo, accessSvc, kafkaProducer)
	planSvc := services.NewPlanService(planRepo)

	// ---------- Mail worker ----------
	if cfg.KafkaBroker != "" {
		consumer := queue.NewKafkaConsumer(
			cfg.KafkaBroker,
			cfg.KafkaTopic,
			cfg.KafkaGroupID,
			cfg.KafkaUsername,
			cfg.KafkaPassword,
			services.NewMailDispatcher(mailSvc),
		)
		go consumer.Listen()
	}

	// ---------- Handlers ----------
	prod := cfg.IsProd()
	userHandler := handlers.NewUserHandler(userSvc, authHelper, prod)
	eventHandler := handlers.NewEventHandler(eventSvc, accessSvc, prod)
	rsvpHandler := handlers.NewRSVPHandler(rsvpSvc, accessSvc, prod)
	planHandler := handlers.NewPlanHandler(planSvc, prod)
	mailHandler := handlers.NewMailHandler(mailSvc, prod)

	// ---------- Routes ----------
	api := app.Group("/api")

	user := api.Group("/user")
	user.Post("/register", userHandler.Register)
	user.Post("/login", userHandler.Login)
	user.Post("/verify-email", userHandler.VerifyEmail)
	user.Get("/verify-email", userHandler.VerifyEmail)
	user.Post("/forgot-password", userHandler.ForgotPassword)
	user.Post("/reset-password", userHandler.ResetPassword)
	user.Get("/me", middleware.AuthMiddleware(authHelper), userHandler.Me)

	// events and rsvp accept anonymous link holders; a session wins over
	// body-supplied identity when present
	api.Post("/events", middleware.OptionalAuth(authHelper), eventHandler.Handle)
	api.Post("/rsvp", middleware.OptionalAuth(authHelper), rsvpHandler.Handle)

	plans := api.Group("/plans")
	plans.Post("/", planHandler.CreatePlan)
	plans.Post("/join", planHandler.JoinPlan)
	plans.Get("/", planHandler.ListPlans)

	mail := api.Group("/mail")
	mail.Post("/send", mailHandler.SendTemplated)
	mail.Post("/confirmation", mailHandler.SendConfirmation)

	// ---------- Health ----------
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// ---------- Listen ----------
	addr := cfg.ServerPort
	log.Println("listening on", addr)
	log.Fatal(app.Listen(addr))
}
