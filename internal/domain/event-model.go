package domain

import "time"

const (
	EventStatusActive    = "active"
	EventStatusCancelled = "cancelled"
	EventStatusCompleted = "completed"

	EventAccessPublic  = "public"
	EventAccessPrivate = "private"

	EventTypeInPerson = "in-person"
	EventTypeVirtual  = "virtual"

	PunishmentCustom = "custom"
)

type Event struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Title            string    `gorm:"size:255;not null" json:"title"`
	Date             string    `gorm:"size:32;not null" json:"date"`
	Time             string    `gorm:"size:32;not null" json:"time"`
	Location         string    `gorm:"size:255" json:"location"`
	EventType        string    `gorm:"size:20;not null;default:in-person" json:"event_type"`
	Details          string    `gorm:"type:text" json:"details"`
	DecisionMode     string    `gorm:"size:40;not null" json:"decision_mode"`
	Punishment       string    `gorm:"size:64;not null" json:"punishment"`
	CustomPunishment string    `gorm:"size:255" json:"custom_punishment,omitempty"`
	Status           string    `gorm:"size:20;not null;default:active;index:idx_events_host_status" json:"status"`
	Access           string    `gorm:"size:20;not null;default:private" json:"access"`
	PageVisibility   string    `gorm:"size:20;not null;default:private" json:"page_visibility"`
	InvitedBy        string    `gorm:"size:255;not null;index:idx_events_host_status" json:"invited_by"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	Participants []Participant `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"-"`
	Invitees     []Invitee     `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"-"`
	Tokens       []RSVPToken   `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"-"`

	// Best-effort enrichment, filled by the service layer, never persisted.
	ParticipantCount int64         `gorm:"-" json:"participant_count"`
	Flakes           []Participant `gorm:"-" json:"flakes,omitempty"`
}

func (e *Event) OwnedBy(h HostID) bool {
	return !h.Empty() && NewHostID(e.InvitedBy) == h
}

func (e *Event) IsActive() bool {
	return e.Status == EventStatusActive
}
