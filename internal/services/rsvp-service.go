package services

import (
	"errors"
	"strings"

	"github.com/showup-or-else/event_service/internal/domain"
	"github.com/showup-or-else/event_service/internal/dto"
	"github.com/showup-or-else/event_service/internal/helper/utils"
	"github.com/showup-or-else/event_service/internal/interfaces"
	"github.com/showup-or-else/event_service/internal/repository"
	"gorm.io/gorm"
)

type RSVPService interface {
	SubmitRSVP(eventID uint, input dto.RSVPRequest) (*domain.Participant, error)
	AddParticipant(host domain.HostID, eventID uint, input dto.AddParticipantRequest) (*domain.Participant, error)

	// RemoveParticipant is a soft removal: it flips will_attend to false so
	// the flake record survives for past-event reporting.
	RemoveParticipant(host domain.HostID, participantID uint) error

	GetParticipants(eventID uint) ([]domain.Participant, error)
}

type rsvpService struct {
	events       repository.EventRepository
	participants repository.ParticipantRepository
	access       AccessService
	producer     interfaces.ProducerHandler
}

func NewRSVPService(
	events repository.EventRepository,
	participants repository.ParticipantRepository,
	access AccessService,
	producer interfaces.ProducerHandler,
) RSVPService {
	return &rsvpService{
		events:       events,
		participants: participants,
		access:       access,
		producer:     producer,
	}
}

func (s *rsvpService) SubmitRSVP(eventID uint, input dto.RSVPRequest) (*domain.Participant, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, Validation("name is required")
	}

	event, err := s.events.FindByID(eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("event not found")
		}
		return nil, Dependency("failed to load event", err)
	}

	email := utils.NormalizeEmail(input.Email)

	token, err := s.access.AuthorizeRSVP(event, input.Token, email)
	if err != nil {
		return nil, err
	}
	if token != nil {
		s.access.MarkTokenUsed(token)
	}

	participant := &domain.Participant{
		EventID:    event.ID,
		Name:       name,
		Email:      email,
		WillAttend: input.WillAttend,
		Message:    strings.TrimSpace(input.Message),
	}
	participant, err = s.participants.UpsertByEmail(participant)
	if err != nil {
		return nil, Dependency("failed to save rsvp", err)
	}

	if email != "" {
		s.access.RecordInviteeResponse(event.ID, email, input.WillAttend)
		publish(s.producer, "rsvp.confirmation", dto.RSVPConfirmationEvent{
			EventID:    event.ID,
			EventTitle: event.Title,
			Name:       participant.Name,
			Email:      email,
			WillAttend: participant.WillAttend,
		})
	}

	return participant, nil
}

func (s *rsvpService) AddParticipant(host domain.HostID, eventID uint, input dto.AddParticipantRequest) (*domain.Participant, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, Validation("name is required")
	}

	event, err := s.ownedEvent(host, eventID)
	if err != nil {
		return nil, err
	}

	participant := &domain.Participant{
		EventID:    event.ID,
		Name:       name,
		Email:      utils.NormalizeEmail(input.Email),
		WillAttend: true,
		Message:    strings.TrimSpace(input.Message),
	}
	participant, err = s.participants.UpsertByEmail(participant)
	if err != nil {
		return nil, Dependency("failed to add participant", err)
	}
	return participant, nil
}

func (s *rsvpService) RemoveParticipant(host domain.HostID, participantID uint) error {
	participant, err := s.participants.FindByID(participantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotFound("participant not found")
		}
		return Dependency("failed to load participant", err)
	}
	if _, err := s.ownedEvent(host, participant.EventID); err != nil {
		return err
	}

	if err := s.participants.SetWillAttend(participantID, false); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotFound("participant not found")
		}
		return Dependency("failed to remove participant", err)
	}
	return nil
}

func (s *rsvpService) GetParticipants(eventID uint) ([]domain.Participant, error) {
	if _, err := s.events.FindByID(eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("event not found")
		}
		return nil, Dependency("failed to load event", err)
	}
	participants, err := s.participants.FindByEvent(eventID)
	if err != nil {
		return nil, Dependency("failed to load participants", err)
	}
	return participants, nil
}

// PartitionParticipants splits rows into attending and flaking sets for
// display.
func PartitionParticipants(participants []domain.Participant) (attending, flaking []domain.Participant) {
	attending = []domain.Participant{}
	flaking = []domain.Participant{}
	for _, p := range participants {
		if p.WillAttend {
			attending = append(attending, p)
		} else {
			flaking = append(flaking, p)
		}
	}
	return attending, flaking
}

func (s *rsvpService) ownedEvent(host domain.HostID, eventID uint) (*domain.Event, error) {
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
