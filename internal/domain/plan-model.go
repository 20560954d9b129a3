package domain

import "time"

// Plan and PlanMember back the legacy plans flow. Kept separate from Event on
// purpose; the two surfaces share nothing but the service conventions.
type Plan struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	CreatorID   string    `gorm:"size:255;not null;index" json:"creator_id"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	Date        string    `gorm:"size:32" json:"date,omitempty"`
	Location    string    `gorm:"size:255" json:"location,omitempty"`
	MaxMembers  int       `gorm:"not null;default:0" json:"max_members"`
	CreatedAt   time.Time `json:"created_at"`

	Members []PlanMember `gorm:"foreignKey:PlanID;constraint:OnDelete:CASCADE" json:"-"`

	MemberCount int64 `gorm:"-" json:"member_count"`
}

type PlanMember struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PlanID    uint      `gorm:"not null;uniqueIndex:uidx_plan_members_plan_user" json:"plan_id"`
	UserID    string    `gorm:"size:255;not null;uniqueIndex:uidx_plan_members_plan_user" json:"user_id"`
	UserName  string    `gorm:"size:255" json:"user_name,omitempty"`
	UserEmail string    `gorm:"size:255" json:"user_email,omitempty"`
	JoinedAt  time.Time `gorm:"autoCreateTime" json:"joined_at"`
}
