package services

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/showup-or-else/event_service/internal/domain"
	"github.com/showup-or-else/event_service/internal/dto"
	"github.com/showup-or-else/event_service/internal/helper"
	"github.com/showup-or-else/event_service/internal/helper/utils"
	"github.com/showup-or-else/event_service/internal/interfaces"
	"github.com/showup-or-else/event_service/internal/repository"
	"gorm.io/gorm"
)

const defaultTokenTTL = 30 * 24 * time.Hour

type AccessService interface {
	// CanViewPage gates the event page. Both gates fail closed: an unset or
	// unknown visibility counts as private.
	CanViewPage(event *domain.Event, actor dto.Actor) bool

	// AuthorizeRSVP gates RSVP submission for an event. It returns the
	// matched token when one was used, so the caller can record redemption.
	AuthorizeRSVP(event *domain.Event, token, email string) (*domain.RSVPToken, error)

	CreateToken(host domain.HostID, eventID uint, email string, expiresInDays int) (*domain.RSVPToken, error)
	MarkTokenUsed(token *domain.RSVPToken)

	AddInvitees(host domain.HostID, eventID uint, emails []string) ([]domain.Invitee, error)
	RecordInviteeResponse(eventID uint, email string, willAttend bool)
}

type accessService struct {
	events   repository.EventRepository
	invitees repository.InviteeRepository
	tokens   repository.RSVPTokenRepository
	producer interfaces.ProducerHandler
}

func NewAccessService(
	events repository.EventRepository,
	invitees repository.InviteeRepository,
	tokens repository.RSVPTokenRepository,
	producer interfaces.ProducerHandler,
) AccessService {
	return &accessService{
		events:   events,
		invitees: invitees,
		tokens:   tokens,
		producer: producer,
	}
}

// TokenValidAt reports token validity at a given instant. A nil expiry never
// expires; an expiry equal to now is already expired.
func TokenValidAt(token *domain.RSVPToken, now time.Time) bool {
	if token == nil {
		return false
	}
	return token.ExpiresAt == nil || token.ExpiresAt.After(now)
}

func (s *accessService) CanViewPage(event *domain.Event, actor dto.Actor) bool {
	if event == nil {
		return false
	}
	if event.PageVisibility == domain.EventAccessPublic {
		return true
	}
	if event.OwnedBy(domain.NewHostID(actor.HostID)) {
		return true
	}
	email := utils.NormalizeEmail(actor.Email)
	if email == "" {
		return false
	}
	if _, err := s.invitees.FindByEventAndEmail(event.ID, email); err == nil {
		return true
	}
	return false
}

func (s *accessService) AuthorizeRSVP(event *domain.Event, token, email string) (*domain.RSVPToken, error) {
	if event == nil {
		return nil, NotFound("event not found")
	}
	if event.Access == domain.EventAccessPublic {
		return nil, nil
	}

	token = strings.TrimSpace(token)
	if token != "" {
		t, err := s.tokens.FindByEventAndToken(event.ID, token)
		if err == nil && TokenValidAt(t, time.Now()) {
			return t, nil
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, Dependency("failed to verify rsvp token", err)
		}
	}

	normalized := utils.NormalizeEmail(email)
	if normalized != "" {
		if _, err := s.invitees.FindByEventAndEmail(event.ID, normalized); err == nil {
			return nil, nil
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, Dependency("failed to verify invitee", err)
		}
	}

	return nil, Validation("this event is private; a valid invitation or rsvp link is required")
}

func (s *accessService) CreateToken(host domain.HostID, eventID uint, email string, expiresInDays int) (*domain.RSVPToken, error) {
	event, err := s.ownedEvent(host, eventID)
	if err != nil {
		return nil, err
	}

	ttl := defaultTokenTTL
	if expiresInDays > 0 {
		ttl = time.Duration(expiresInDays) * 24 * time.Hour
	}
	expires := time.Now().Add(ttl)

	token := &domain.RSVPToken{
		EventID:   event.ID,
		Token:     uuid.NewString(),
		Email:     utils.NormalizeEmail(email),
		ExpiresAt: &expires,
	}
	if err := s.tokens.Create(token); err != nil {
		return nil, Dependency("failed to create rsvp token", err)
	}
	return token, nil
}

// MarkTokenUsed records redemption. Best effort: tokens stay valid until
// expiry regardless.
func (s *accessService) MarkTokenUsed(token *domain.RSVPToken) {
	if token == nil || token.UsedAt != nil {
		return
	}
	if err := s.tokens.MarkUsed(token.ID); err != nil {
		log.Printf("mark token used failed for token %d: %v", token.ID, err)
	}
}

func (s *accessService) AddInvitees(host domain.HostID, eventID uint, emails []string) ([]domain.Invitee, error) {
	event, err := s.ownedEvent(host, eventID)
	if err != nil {
		return nil, err
	}
	if len(emails) == 0 {
		return nil, Validation("at least one email is required")
	}

	var added []domain.Invitee
	for _, raw := range emails {
		email := utils.NormalizeEmail(raw)
		if email == "" {
			continue
		}
		invitee := &domain.Invitee{
			EventID:    event.ID,
			Email:      email,
			Token:      uuid.NewString(),
			RSVPStatus: domain.InviteeStatusPending,
			InvitedAt:  time.Now(),
		}
		if err := s.invitees.Add(invitee); err != nil {
			if helper.IsDuplicateKey(err) {
				continue
			}
			return nil, Dependency("failed to add invitee", err)
		}
		added = append(added, *invitee)
		s.publishInvitation(event, invitee)
	}
	return added, nil
}

// RecordInviteeResponse moves a matching invitee row to attending/declined.
// Missing rows are fine; the respondent may have come in via a token.
func (s *accessService) RecordInviteeResponse(eventID uint, email string, willAttend bool) {
	normalized := utils.NormalizeEmail(email)
	if normalized == "" {
		return
	}
	status := domain.InviteeStatusAttending
	if !willAttend {
		status = domain.InviteeStatusDeclined
	}
	if err := s.invitees.SetRSVPStatus(eventID, normalized, status); err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("record invitee response failed for event %d: %v", eventID, err)
		}
	}
}

func (s *accessService) publishInvitation(event *domain.Event, invitee *domain.Invitee) {
	if s.producer == nil {
		return
	}
	payload := dto.InvitationEvent{
		EventID:    event.ID,
		EventTitle: event.Title,
		HostEmail:  event.InvitedBy,
		Email:      invitee.Email,
		Token:      invitee.Token,
		Date:       event.Date,
		Time:       event.Time,
		Location:   event.Location,
	}
	publish(s.producer, "event.invitation", payload)
}

func (s *accessService) ownedEvent(host domain.HostID, eventID uint) (*domain.Event, error) {
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
