package repository

import (
	"errors"
	"log"

	"github.com/showup-or-else/event_service/internal/domain"
	"gorm.io/gorm"
)

type ParticipantRepository interface {
	// UpsertByEmail keeps at most one row per (event, email). With an empty
	// email it always inserts; otherwise the lookup and the write share a
	// transaction.
	UpsertByEmail(p *domain.Participant) (*domain.Participant, error)

	FindByID(id uint) (*domain.Participant, error)
	FindByEvent(eventID uint) ([]domain.Participant, error)
	FindFlakesByEvent(eventID uint) ([]domain.Participant, error)
	SetWillAttend(id uint, attend bool) error
}

type participantRepository struct {
	db *gorm.DB
}

func NewParticipantRepository(db *gorm.DB) ParticipantRepository {
	return &participantRepository{db: db}
}

func (r *participantRepository) UpsertByEmail(p *domain.Participant) (*domain.Participant, error) {
	if p == nil {
		return nil, errors.New("nil participant")
	}

	if p.Email == "" {
		if err := r.db.Create(p).Error; err != nil {
			log.Printf("create participant error: %v", err)
			return nil, err
		}
		return p, nil
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		existing := &domain.Participant{}
		err := tx.Where("event_id = ? AND email = ?", p.EventID, p.Email).First(existing).Error
		if err == nil {
			existing.Name = p.Name
			existing.WillAttend = p.WillAttend
			existing.Message = p.Message
			if err := tx.Save(existing).Error; err != nil {
				return err
			}
			*p = *existing
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Create(p).Error
	})
	if err != nil {
		log.Printf("upsert participant error: %v", err)
		return nil, err
	}
	return p, nil
}

func (r *participantRepository) FindByID(id uint) (*domain.Participant, error) {
	p := &domain.Participant{}
	if err := r.db.First(p, id).Error; err != nil {
		return nil, err
	}
	return p, nil
}

func (r *participantRepository) FindByEvent(eventID uint) ([]domain.Participant, error) {
	var participants []domain.Participant
	err := r.db.Where("event_id = ?", eventID).
		Order("created_at ASC").
		Find(&participants).Error
	if err != nil {
		log.Printf("find participants error: %v", err)
		return nil, err
	}
	return participants, nil
}

func (r *participantRepository) FindFlakesByEvent(eventID uint) ([]domain.Participant, error) {
	var flakes []domain.Participant
	err := r.db.Where("event_id = ? AND will_attend = ?", eventID, false).
		Order("created_at ASC").
		Find(&flakes).Error
	if err != nil {
		log.Printf("find flakes error: %v", err)
		return nil, err
	}
	return flakes, nil
}

func (r *participantRepository) SetWillAttend(id uint, attend bool) error {
	res := r.db.Model(&domain.Participant{}).Where("id = ?", id).Update("will_attend", attend)
	if res.Error != nil {
		log.Printf("set will_attend error: %v", res.Error)
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
