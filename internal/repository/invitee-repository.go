package repository

import (
	"errors"
	"log"

	"github.com/showup-or-else/event_service/internal/domain"
	"gorm.io/gorm"
)

type InviteeRepository interface {
	Add(invitee *domain.Invitee) error
	FindByEvent(eventID uint) ([]domain.Invitee, error)
	FindByEventAndEmail(eventID uint, email string) (*domain.Invitee, error)
	SetRSVPStatus(eventID uint, email, status string) error
}

type inviteeRepository struct {
	db *gorm.DB
}

func NewInviteeRepository(db *gorm.DB) InviteeRepository {
	return &inviteeRepository{db: db}
}

func (r *inviteeRepository) Add(invitee *domain.Invitee) error {
	if invitee == nil {
		return errors.New("nil invitee")
	}
	if err := r.db.Create(invitee).Error; err != nil {
		// duplicate (event, email) rows surface here, caller decides
		return err
	}
	return nil
}

func (r *inviteeRepository) FindByEvent(eventID uint) ([]domain.Invitee, error) {
	var invitees []domain.Invitee
	err := r.db.Where("event_id = ?", eventID).
		Order("invited_at ASC").
		Find(&invitees).Error
	if err != nil {
		log.Printf("find invitees error: %v", err)
		return nil, err
	}
	return invitees, nil
}

func (r *inviteeRepository) FindByEventAndEmail(eventID uint, email string) (*domain.Invitee, error) {
	invitee := &domain.Invitee{}
	err := r.db.Where("event_id = ? AND email = ?", eventID, email).First(invitee).Error
	if err != nil {
		return nil, err
	}
	return invitee, nil
}

func (r *inviteeRepository) SetRSVPStatus(eventID uint, email, status string) error {
	res := r.db.Model(&domain.Invitee{}).
		Where("event_id = ? AND email = ?", eventID, email).
		Update("rsvp_status", status)
	if res.Error != nil {
		log.Printf("set invitee rsvp status error: %v", res.Error)
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
