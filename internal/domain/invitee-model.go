package domain

import "time"

const (
	InviteeStatusPending   = "pending"
	InviteeStatusAttending = "attending"
	InviteeStatusDeclined  = "declined"
)

type Invitee struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	EventID    uint      `gorm:"not null;uniqueIndex:uidx_invitees_event_email" json:"event_id"`
	Email      string    `gorm:"size:255;not null;uniqueIndex:uidx_invitees_event_email" json:"email"`
	Token      string    `gorm:"size:64;uniqueIndex;not null" json:"token"`
	RSVPStatus string    `gorm:"size:20;not null;default:pending" json:"rsvp_status"`
	InvitedAt  time.Time `json:"invited_at"`
}
