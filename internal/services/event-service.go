package services

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/showup-or-else/event_service/internal/domain"
	"github.com/showup-or-else/event_service/internal/dto"
	"github.com/showup-or-else/event_service/internal/repository"
	"gorm.io/gorm"
)

type EventService interface {
	CreateEvent(host domain.HostID, input dto.CreateEventRequest) (*domain.Event, error)
	GetEvent(eventID uint) (*domain.Event, error)
	GetEvents(host domain.HostID) ([]domain.Event, error)
	GetPastEvents(host domain.HostID) ([]domain.Event, error)
	UpdateEvent(host domain.HostID, eventID uint, input dto.UpdateEventRequest) (*domain.Event, error)
	CancelEvent(host domain.HostID, eventID uint) (*domain.Event, error)
	CompleteEvent(host domain.HostID, eventID uint) (*domain.Event, error)
	DeleteEvent(host domain.HostID, eventID uint) error
}

type eventService struct {
	events       repository.EventRepository
	participants repository.ParticipantRepository
}

func NewEventService(
	events repository.EventRepository,
	participants repository.ParticipantRepository,
) EventService {
	return &eventService{
		events:       events,
		participants: participants,
	}
}

func (s *eventService) CreateEvent(host domain.HostID, input dto.CreateEventRequest) (*domain.Event, error) {
	if host.Empty() {
		return nil, Validation("host identity is required")
	}

	var missing []string
	if strings.TrimSpace(input.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(input.Date) == "" {
		missing = append(missing, "date")
	}
	if strings.TrimSpace(input.Time) == "" {
		missing = append(missing, "time")
	}
	if strings.TrimSpace(input.DecisionMode) == "" {
		missing = append(missing, "decision_mode")
	}
	if strings.TrimSpace(input.Punishment) == "" {
		missing = append(missing, "punishment")
	}
	if len(missing) > 0 {
		return nil, Validation("missing required fields: " + strings.Join(missing, ", "))
	}
	if input.Punishment == domain.PunishmentCustom && strings.TrimSpace(input.CustomPunishment) == "" {
		return nil, Validation("custom punishment text is required")
	}

	eventType := input.EventType
	if eventType == "" {
		eventType = domain.EventTypeInPerson
	}
	access := input.Access
	if access == "" {
		access = domain.EventAccessPrivate
	}
	visibility := input.PageVisibility
	if visibility == "" {
		visibility = domain.EventAccessPrivate
	}

	event := &domain.Event{
		Title:            strings.TrimSpace(input.Title),
		Date:             strings.TrimSpace(input.Date),
		Time:             strings.TrimSpace(input.Time),
		Location:         strings.TrimSpace(input.Location),
		EventType:        eventType,
		Details:          input.Details,
		DecisionMode:     input.DecisionMode,
		Punishment:       input.Punishment,
		CustomPunishment: strings.TrimSpace(input.CustomPunishment),
		Status:           domain.EventStatusActive,
		Access:           access,
		PageVisibility:   visibility,
		InvitedBy:        host.String(),
	}

	created, blocking, err := s.events.CreateIfNoActive(event)
	if err != nil {
		return nil, Dependency("failed to create event", err)
	}
	if blocking != nil {
		return nil, Conflict(fmt.Sprintf(
			"you already have an active event: %q. Cancel or complete it before creating a new one", blocking.Title))
	}
	return created, nil
}

func (s *eventService) GetEvent(eventID uint) (*domain.Event, error) {
	event, err := s.events.FindByID(eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("event not found")
		}
		return nil, Dependency("failed to load event", err)
	}
	s.enrichCount(event)
	return event, nil
}

func (s *eventService) GetEvents(host domain.HostID) ([]domain.Event, error) {
	if host.Empty() {
		return nil, Validation("host identity is required")
	}
	events, err := s.events.FindActiveByHost(host)
	if err != nil {
		return nil, Dependency("failed to load events", err)
	}
	for i := range events {
		s.enrichCount(&events[i])
	}
	return events, nil
}

func (s *eventService) GetPastEvents(host domain.HostID) ([]domain.Event, error) {
	if host.Empty() {
		return nil, Validation("host identity is required")
	}
	events, err := s.events.FindPastByHost(host)
	if err != nil {
		return nil, Dependency("failed to load past events", err)
	}
	for i := range events {
		s.enrichFlakes(&events[i])
	}
	return events, nil
}

func (s *eventService) UpdateEvent(host domain.HostID, eventID uint, input dto.UpdateEventRequest) (*domain.Event, error) {
	event, err := s.ownedEvent(host, eventID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		t := strings.TrimSpace(*input.Title)
		if t == "" {
			return nil, Validation("title cannot be empty")
		}
		event.Title = t
	}
	if input.Date != nil {
		d := strings.TrimSpace(*input.Date)
		if d == "" {
			return nil, Validation("date cannot be empty")
		}
		event.Date = d
	}
	if input.Time != nil {
		t := strings.TrimSpace(*input.Time)
		if t == "" {
			return nil, Validation("time cannot be empty")
		}
		event.Time = t
	}
	if input.Location != nil {
		event.Location = strings.TrimSpace(*input.Location)
	}
	if input.EventType != nil {
		event.EventType = *input.EventType
	}
	if input.Details != nil {
		event.Details = *input.Details
	}
	if input.DecisionMode != nil {
		event.DecisionMode = *input.DecisionMode
	}
	if input.Punishment != nil {
		event.Punishment = *input.Punishment
	}
	if input.CustomPunishment != nil {
		event.CustomPunishment = strings.TrimSpace(*input.CustomPunishment)
	}
	if input.Access != nil {
		event.Access = *input.Access
	}
	if input.PageVisibility != nil {
		event.PageVisibility = *input.PageVisibility
	}
	if event.Punishment == domain.PunishmentCustom && event.CustomPunishment == "" {
		return nil, Validation("custom punishment text is required")
	}

	if err := s.events.Save(event); err != nil {
		return nil, Dependency("failed to update event", err)
	}
	return event, nil
}

// CancelEvent sets the status unconditionally; cancelling a completed event
// is not prevented at this layer.
func (s *eventService) CancelEvent(host domain.HostID, eventID uint) (*domain.Event, error) {
	return s.setStatus(host, eventID, domain.EventStatusCancelled)
}

func (s *eventService) CompleteEvent(host domain.HostID, eventID uint) (*domain.Event, error) {
	return s.setStatus(host, eventID, domain.EventStatusCompleted)
}

func (s *eventService) DeleteEvent(host domain.HostID, eventID uint) error {
	if _, err := s.ownedEvent(host, eventID); err != nil {
		return err
	}
	if err := s.events.Delete(eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotFound("event not found")
		}
		return Dependency("failed to delete event", err)
	}
	return nil
}

func (s *eventService) setStatus(host domain.HostID, eventID uint, status string) (*domain.Event, error) {
	if _, err := s.ownedEvent(host, eventID); err != nil {
		return nil, err
	}
	event, err := s.events.SetStatus(eventID, status)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("event not found")
		}
		return nil, Dependency("failed to update event status", err)
	}
	return event, nil
}

// ownedEvent loads the event and checks ownership. A foreign event reads as
// not found so event ids are not probeable.
func (s *eventService) ownedEvent(host domain.HostID, eventID uint) (*domain.Event, error) {
	if host.Empty() {
		return nil, Validation("host identity is required")
	}
	event, err := s.events.FindByID(eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("event not found")
		}
		return nil, Dependency("failed to load event", err)
	}
	if !event.OwnedBy(host) {
		return nil, NotFound("event not found")
	}
	return event, nil
}

// enrichCount fills ParticipantCount, falling back to zero when the
// sub-query fails. Decoration never fails the parent request.
func (s *eventService) enrichCount(event *domain.Event) {
	count, err := s.events.CountAttending(event.ID)
	if err != nil {
		log.Printf("participant count enrichment failed for event %d: %v", event.ID, err)
		event.ParticipantCount = 0
		return
	}
	event.ParticipantCount = count
}

// enrichFlakes fills Flakes, falling back to an empty list on failure.
func (s *eventService) enrichFlakes(event *domain.Event) {
	flakes, err := s.participants.FindFlakesByEvent(event.ID)
	if err != nil {
		log.Printf("flakes enrichment failed for event %d: %v", event.ID, err)
		event.Flakes = []domain.Participant{}
		return
	}
	if flakes == nil {
		flakes = []domain.Participant{}
	}
	event.Flakes = flakes
}
