package domain

import "time"

type User struct {
	ID                         uint       `gorm:"primaryKey" json:"id"`
	Name                       string     `gorm:"size:255;not null" json:"name"`
	Email                      string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash               string     `json:"-"`
	Status                     string     `gorm:"type:varchar(20);not null;default:active" json:"status"`
	EmailVerifiedAt            *time.Time `json:"email_verified_at,omitempty"`
	VerificationToken          string     `gorm:"size:64;index" json:"-"`
	VerificationTokenExpiresAt *time.Time `json:"-"`
	ResetTokenHash             string     `gorm:"size:64;index" json:"-"`
	ResetTokenExpiresAt        *time.Time `json:"-"`
	CreatedAt                  time.Time  `json:"created_at"`
	UpdatedAt                  time.Time  `json:"updated_at"`
}
