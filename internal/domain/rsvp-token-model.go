package domain

import "time"

// RSVPToken grants bearer access to a private event's RSVP form. Expiry is
// the only validity gate; UsedAt is recorded on redemption but tokens are not
// single-use.
type RSVPToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	EventID   uint       `gorm:"not null;index" json:"event_id"`
	Token     string     `gorm:"size:64;uniqueIndex;not null" json:"token"`
	Email     string     `gorm:"size:255" json:"email,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
