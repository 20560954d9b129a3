package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMailService() *MailService {
	return NewMailService(
		"smtp.example.com", "587",
		"mailer@example.com", "app-pass",
		"no-reply@showuporelse.com", "Show up or Else",
		"https://showuporelse.com",
		"../templates",
	)
}

func TestRenderConfirmation(t *testing.T) {
	s := newTestMailService()

	subject, html, err := s.Render(MailConfirmation, map[string]string{
		"Name":  "Ana",
		"Token": "tok en",
	})
	require.NoError(t, err)
	assert.Equal(t, "Confirm your email", subject)
	assert.Contains(t, html, "Ana")
	assert.Contains(t, html, "https://showuporelse.com/verify-email?token=tok+en")
}

func TestRenderInvitation(t *testing.T) {
	s := newTestMailService()

	subject, html, err := s.Render(MailInvitation, map[string]string{
		"EventID":    "7",
		"EventTitle": "Dinner",
		"HostEmail":  "a@x.com",
		"Token":      "abc123",
		"Date":       "2025-01-01",
		"Time":       "19:00",
		"Location":   "My place",
	})
	require.NoError(t, err)
	assert.Contains(t, subject, "Dinner")
	assert.Contains(t, html, "a@x.com")
	assert.Contains(t, html, "My place")
	assert.Contains(t, html, "https://showuporelse.com/invite/7?token=abc123")
}

func TestRenderReminderAndUpdateFallBackToDefaultCopy(t *testing.T) {
	s := newTestMailService()

	for _, kind := range []MailKind{MailReminder, MailUpdate} {
		subject, html, err := s.Render(kind, map[string]string{"EventTitle": "Dinner"})
		require.NoError(t, err)
		assert.Contains(t, subject, "Dinner")
		assert.NotEmpty(t, html)
	}
}

func TestRenderPasswordReset(t *testing.T) {
	s := newTestMailService()

	subject, html, err := s.Render(MailPasswordReset, map[string]string{"Token": "reset-tok"})
	require.NoError(t, err)
	assert.Equal(t, "Reset your password", subject)
	assert.Contains(t, html, "https://showuporelse.com/reset-password?token=reset-tok")
}

func TestRenderRSVPConfirmation(t *testing.T) {
	s := newTestMailService()

	subject, html, err := s.Render(MailRSVPConfirmation, map[string]string{
		"Name":       "Bo",
		"EventTitle": "Dinner",
		"Attending":  "attending",
	})
	require.NoError(t, err)
	assert.Contains(t, subject, "Dinner")
	assert.Contains(t, html, "Bo")
	assert.Contains(t, html, "attending")
}

func TestRenderUnknownTemplateFails(t *testing.T) {
	s := newTestMailService()
	_, _, err := s.Render(MailKind("no-such-kind"), nil)
	require.Error(t, err)
}

func TestSendRequiresRecipient(t *testing.T) {
	s := newTestMailService()
	err := s.Send(MailConfirmation, "  ", nil)
	requireKind(t, err, KindValidation)
}
