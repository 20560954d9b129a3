package repository

import (
	"errors"
	"log"
	"time"

	"github.com/showup-or-else/event_service/internal/domain"
	"gorm.io/gorm"
)

type RSVPTokenRepository interface {
	Create(token *domain.RSVPToken) error
	FindByEventAndToken(eventID uint, token string) (*domain.RSVPToken, error)
	MarkUsed(id uint) error
}

type rsvpTokenRepository struct {
	db *gorm.DB
}

func NewRSVPTokenRepository(db *gorm.DB) RSVPTokenRepository {
	return &rsvpTokenRepository{db: db}
}

func (r *rsvpTokenRepository) Create(token *domain.RSVPToken) error {
	if token == nil {
		return errors.New("nil token")
	}
	if err := r.db.Create(token).Error; err != nil {
		log.Printf("create rsvp token error: %v", err)
		return err
	}
	return nil
}

func (r *rsvpTokenRepository) FindByEventAndToken(eventID uint, token string) (*domain.RSVPToken, error) {
	t := &domain.RSVPToken{}
	err := r.db.Where("event_id = ? AND token = ?", eventID, token).First(t).Error
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *rsvpTokenRepository) MarkUsed(id uint) error {
	now := time.Now()
	res := r.db.Model(&domain.RSVPToken{}).Where("id = ?", id).Update("used_at", &now)
	if res.Error != nil {
		log.Printf("mark token used error: %v", res.Error)
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
