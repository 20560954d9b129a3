package services

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/showup-or-else/event_service/internal/dto"
)

// MailDispatcher routes broker messages to the mail service. It is the
// consumer-side counterpart of the publish calls in the other services.
type MailDispatcher struct {
	mail *MailService
}

func NewMailDispatcher(mail *MailService) *MailDispatcher {
	return &MailDispatcher{mail: mail}
}

func (d *MailDispatcher) HandleMessage(key, value []byte) error {
	switch string(key) {
	case "user.verify_email":
		var ev dto.VerifyEmailEvent
		if err := json.Unmarshal(value, &ev); err != nil {
			return err
		}
		return d.mail.Send(MailConfirmation, ev.Email, map[string]string{
			"Name":  ev.Name,
			"Token": ev.Token,
		})

	case "user.reset_password":
		var ev dto.ResetPasswordEvent
		if err := json.Unmarshal(value, &ev); err != nil {
			return err
		}
		return d.mail.Send(MailPasswordReset, ev.Email, map[string]string{
			"Token":     ev.Token,
			"ExpiresAt": ev.ExpiresAt,
		})

	case "event.invitation":
		var ev dto.InvitationEvent
		if err := json.Unmarshal(value, &ev); err != nil {
			return err
		}
		return d.mail.Send(MailInvitation, ev.Email, map[string]string{
			"EventID":    fmt.Sprintf("%d", ev.EventID),
			"EventTitle": ev.EventTitle,
			"HostEmail":  ev.HostEmail,
			"Token":      ev.Token,
			"Date":       ev.Date,
			"Time":       ev.Time,
			"Location":   ev.Location,
		})

	case "event.reminder", "event.update":
		var ev dto.InvitationEvent
		if err := json.Unmarshal(value, &ev); err != nil {
			return err
		}
		kind := MailReminder
		if string(key) == "event.update" {
			kind = MailUpdate
		}
		return d.mail.Send(kind, ev.Email, map[string]string{
			"EventTitle": ev.EventTitle,
			"HostEmail":  ev.HostEmail,
			"Date":       ev.Date,
			"Time":       ev.Time,
			"Location":   ev.Location,
		})

	case "rsvp.confirmation":
		var ev dto.RSVPConfirmationEvent
		if err := json.Unmarshal(value, &ev); err != nil {
			return err
		}
		attending := "not attending"
		if ev.WillAttend {
			attending = "attending"
		}
		return d.mail.Send(MailRSVPConfirmation, ev.Email, map[string]string{
			"EventTitle": ev.EventTitle,
			"Name":       ev.Name,
			"Attending":  attending,
		})

	default:
		log.Printf("mail dispatcher: unknown message key %q, skipping", string(key))
		return nil
	}
}
