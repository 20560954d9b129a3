package services

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDispatcherSkipsUnknownKeys(t *testing.T) {
	d := NewMailDispatcher(newTestMailService())
	require.NoError(t, d.HandleMessage([]byte("not.a.real.key"), []byte(`{}`)))
}

func TestDispatcherRejectsMalformedPayload(t *testing.T) {
	d := NewMailDispatcher(newTestMailService())

	for _, key := range []string{
		"user.verify_email",
		"user.reset_password",
		"event.invitation",
		"event.reminder",
		"event.update",
		"rsvp.confirmation",
	} {
		require.Error(t, d.HandleMessage([]byte(key), []byte("not json")), key)
	}
}

// A payload with no recipient fails validation before any SMTP dial.
func TestDispatcherRequiresRecipient(t *testing.T) {
	d := NewMailDispatcher(newTestMailService())

	err := d.HandleMessage([]byte("event.invitation"), []byte(`{"event_title":"Dinner"}`))
	requireKind(t, err, KindValidation)
}
