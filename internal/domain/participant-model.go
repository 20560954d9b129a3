package domain

import "time"

type Participant struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	EventID    uint      `gorm:"not null;index" json:"event_id"`
	Name       string    `gorm:"size:255;not null" json:"name"`
	Email      string    `gorm:"size:255;index" json:"email,omitempty"`
	WillAttend bool      `gorm:"not null;default:true" json:"will_attend"`
	Message    string    `gorm:"type:text" json:"message,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
