package services

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html/template"
	"log"
	"net"
	"net/smtp"
	"net/url"
	"path/filepath"
	"strings"
	"time"
)

type MailKind string

const (
	MailConfirmation     MailKind = "confirmation"
	MailInvitation       MailKind = "invitation"
	MailReminder         MailKind = "reminder"
	MailUpdate           MailKind = "update"
	MailPasswordReset    MailKind = "password-reset"
	MailRSVPConfirmation MailKind = "rsvp-confirmation"
)

// MailService renders and sends transactional mail. One attempt per send, no
// retries; a failed send surfaces as a single error to the caller.
type MailService struct {
	smtpHost     string
	smtpPort     string
	smtpUser     string
	smtpAppPass  string
	mailFrom     string
	mailFromName string
	baseURL      string
	templateDir  string
}

func NewMailService(
	smtpHost string,
	smtpPort string,
	smtpUser string,
	smtpAppPass string,
	mailFrom string,
	mailFromName string,
	baseURL string,
	templateDir string,
) *MailService {
	return &MailService{
		smtpHost:     smtpHost,
		smtpPort:     smtpPort,
		smtpUser:     smtpUser,
		smtpAppPass:  smtpAppPass,
		mailFrom:     mailFrom,
		mailFromName: mailFromName,
		baseURL:      baseURL,
		templateDir:  templateDir,
	}
}

func (s *MailService) Send(kind MailKind, to string, data map[string]string) error {
	to = strings.TrimSpace(to)
	if to == "" {
		return Validation("recipient email is required")
	}

	subject, htmlBody, err := s.Render(kind, data)
	if err != nil {
		return Dependency("failed to render email", err)
	}

	fromHeader := fmt.Sprintf("%s <%s>", s.mailFromName, s.mailFrom)
	msg := strings.Join([]string{
		fmt.Sprintf("From: %s", fromHeader),
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-Version: 1.0",
		`Content-Type: text/html; charset="UTF-8"`,
		"",
		htmlBody,
	}, "\r\n")

	log.Printf("[MAIL] smtp sending kind=%s to=%s via=%s", kind, to, s.smtpAddr())
	if err := s.sendSMTPWithTimeout(to, []byte(msg)); err != nil {
		return Dependency("failed to send email", err)
	}
	log.Printf("[MAIL] sent kind=%s to=%s", kind, to)
	return nil
}

// Render produces the subject and HTML body for a template kind.
func (s *MailService) Render(kind MailKind, data map[string]string) (string, string, error) {
	if data == nil {
		data = map[string]string{}
	}
	s.fillLinks(kind, data)

	name := string(kind) + ".html"
	tmpl, err := template.ParseFiles(filepath.Join(s.templateDir, name))
	if err != nil {
		return "", "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", "", err
	}
	return s.subject(kind, data), buf.String(), nil
}

func (s *MailService) subject(kind MailKind, data map[string]string) string {
	title := data["EventTitle"]
	switch kind {
	case MailConfirmation:
		return "Confirm your email"
	case MailInvitation:
		return fmt.Sprintf("You're invited: %s", title)
	case MailReminder:
		return fmt.Sprintf("Reminder: %s — show up or else", title)
	case MailUpdate:
		return fmt.Sprintf("Update for %s", title)
	case MailPasswordReset:
		return "Reset your password"
	case MailRSVPConfirmation:
		return fmt.Sprintf("Your RSVP for %s", title)
	default:
		return "Show up or Else"
	}
}

// fillLinks derives the clickable links from the raw tokens so templates
// only ever see complete URLs.
func (s *MailService) fillLinks(kind MailKind, data map[string]string) {
	token := data["Token"]
	if token == "" {
		return
	}
	escaped := url.QueryEscape(token)
	switch kind {
	case MailConfirmation:
		data["Link"] = fmt.Sprintf("%s/verify-email?token=%s", s.baseURL, escaped)
	case MailPasswordReset:
		data["Link"] = fmt.Sprintf("%s/reset-password?token=%s", s.baseURL, escaped)
	case MailInvitation:
		data["Link"] = fmt.Sprintf("%s/invite/%s?token=%s", s.baseURL, data["EventID"], escaped)
	}
}

func (s *MailService) smtpAddr() string {
	return net.JoinHostPort(s.smtpHost, s.smtpPort)
}

func (s *MailService) sendSMTPWithTimeout(to string, msg []byte) error {
	addr := s.smtpAddr()

	conn, err := net.DialTimeout("tcp", addr, 8*time.Second)
	if err != nil {
		return err
	}
	// deadline covers the whole exchange so a stalled server cannot hang us
	_ = conn.SetDeadline(time.Now().Add(15 * time.Second))

	c, err := smtp.NewClient(conn, s.smtpHost)
	if err != nil {
		return err
	}
	defer func() { _ = c.Quit() }()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: s.smtpHost}); err != nil {
			return err
		}
	}

	auth := smtp.PlainAuth("", s.smtpUser, s.smtpAppPass, s.smtpHost)
	if err := c.Auth(auth); err != nil {
		return err
	}

	if err := c.Mail(s.mailFrom); err != nil {
		return err
	}
	if err := c.Rcpt(to); err != nil {
		return err
	}

	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}
