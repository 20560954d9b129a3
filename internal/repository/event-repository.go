package repository

import (
	"errors"
	"log"

	"github.com/showup-or-else/event_service/internal/domain"
	"gorm.io/gorm"
)

type EventRepository interface {
	// CreateIfNoActive inserts event unless the host already has an active
	// one. Check and insert share a transaction, which covers sequential
	// callers; truly concurrent creates would additionally need a partial
	// unique index on invited_by for active rows. When blocked it returns
	// the blocking event and no error.
	CreateIfNoActive(event *domain.Event) (created *domain.Event, blocking *domain.Event, err error)

	FindByID(id uint) (*domain.Event, error)
	Save(event *domain.Event) error
	Delete(id uint) error
	SetStatus(id uint, status string) (*domain.Event, error)

	FindActiveByHost(host domain.HostID) ([]domain.Event, error)
	FindPastByHost(host domain.HostID) ([]domain.Event, error)
	CountAttending(eventID uint) (int64, error)
}

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) CreateIfNoActive(event *domain.Event) (*domain.Event, *domain.Event, error) {
	if event == nil {
		return nil, nil, errors.New("nil event")
	}

	var blocking *domain.Event
	err := r.db.Transaction(func(tx *gorm.DB) error {
		existing := &domain.Event{}
		err := tx.Where("invited_by = ? AND status = ?", event.InvitedBy, domain.EventStatusActive).
			First(existing).Error
		if err == nil {
			blocking = existing
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Create(event).Error
	})
	if err != nil {
		log.Printf("create event error: %v", err)
		return nil, nil, err
	}
	if blocking != nil {
		return nil, blocking, nil
	}
	return event, nil, nil
}

func (r *eventRepository) FindByID(id uint) (*domain.Event, error) {
	event := &domain.Event{}
	if err := r.db.First(event, id).Error; err != nil {
		return nil, err
	}
	return event, nil
}

func (r *eventRepository) Save(event *domain.Event) error {
	if event == nil {
		return errors.New("nil event")
	}
	if err := r.db.Save(event).Error; err != nil {
		log.Printf("save event error: %v", err)
		return err
	}
	return nil
}

func (r *eventRepository) Delete(id uint) error {
	res := r.db.Delete(&domain.Event{}, id)
	if res.Error != nil {
		log.Printf("delete event error: %v", res.Error)
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *eventRepository) SetStatus(id uint, status string) (*domain.Event, error) {
	event := &domain.Event{}
	if err := r.db.First(event, id).Error; err != nil {
		return nil, err
	}
	event.Status = status
	if err := r.db.Save(event).Error; err != nil {
		log.Printf("set event status error: %v", err)
		return nil, err
	}
	return event, nil
}

func (r *eventRepository) FindActiveByHost(host domain.HostID) ([]domain.Event, error) {
	var events []domain.Event
	err := r.db.Where("invited_by = ? AND status = ?", host.String(), domain.EventStatusActive).
		Order("created_at DESC").
		Find(&events).Error
	if err != nil {
		log.Printf("find active events error: %v", err)
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) FindPastByHost(host domain.HostID) ([]domain.Event, error) {
	var events []domain.Event
	err := r.db.Where("invited_by = ? AND status IN ?", host.String(),
		[]string{domain.EventStatusCancelled, domain.EventStatusCompleted}).
		Order("created_at DESC").
		Find(&events).Error
	if err != nil {
		log.Printf("find past events error: %v", err)
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) CountAttending(eventID uint) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Participant{}).
		Where("event_id = ? AND will_attend = ?", eventID, true).
		Count(&count).Error
	if err != nil {
		log.Printf("count attending error: %v", err)
		return 0, err
	}
	return count, nil
}
