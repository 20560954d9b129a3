package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/showup-or-else/event_service/internal/domain"
	"github.com/showup-or-else/event_service/internal/dto"
	"github.com/showup-or-else/event_service/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// a named shared-cache memory db keeps gorm's pooled connections on the
	// same database while staying isolated per test
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&domain.Event{},
		&domain.Participant{},
		&domain.Invitee{},
		&domain.RSVPToken{},
		&domain.Plan{},
		&domain.PlanMember{},
	))
	return db
}

type publishedMessage struct {
	Key   string
	Value []byte
}

type fakeProducer struct {
	messages []publishedMessage
	fail     bool
}

func (f *fakeProducer) PublishMessage(key, value []byte) error {
	if f.fail {
		return errors.New("broker unavailable")
	}
	f.messages = append(f.messages, publishedMessage{Key: string(key), Value: value})
	return nil
}

func (f *fakeProducer) last(t *testing.T, key string, out interface{}) {
	t.Helper()
	for i := len(f.messages) - 1; i >= 0; i-- {
		if f.messages[i].Key == key {
			require.NoError(t, json.Unmarshal(f.messages[i].Value, out))
			return
		}
	}
	t.Fatalf("no message published with key %q", key)
}

func (f *fakeProducer) count(key string) int {
	n := 0
	for _, m := range f.messages {
		if m.Key == key {
			n++
		}
	}
	return n
}

type fixture struct {
	db       *gorm.DB
	producer *fakeProducer

	events       EventService
	rsvp         RSVPService
	access       AccessService
	plans        PlanService
	participants repository.ParticipantRepository
	tokens       repository.RSVPTokenRepository
	invitees     repository.InviteeRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := openTestDB(t)
	producer := &fakeProducer{}

	eventRepo := repository.NewEventRepository(db)
	participantRepo := repository.NewParticipantRepository(db)
	inviteeRepo := repository.NewInviteeRepository(db)
	tokenRepo := repository.NewRSVPTokenRepository(db)
	planRepo := repository.NewPlanRepository(db)

	access := NewAccessService(eventRepo, inviteeRepo, tokenRepo, producer)

	return &fixture{
		db:           db,
		producer:     producer,
		events:       NewEventService(eventRepo, participantRepo),
		rsvp:         NewRSVPService(eventRepo, participantRepo, access, producer),
		access:       access,
		plans:        NewPlanService(planRepo),
		participants: participantRepo,
		tokens:       tokenRepo,
		invitees:     inviteeRepo,
	}
}

func validEvent() dto.CreateEventRequest {
	return dto.CreateEventRequest{
		Title:        "Dinner",
		Date:         "2025-01-01",
		Time:         "19:00",
		DecisionMode: "none",
		Punishment:   "sing karaoke",
	}
}

func requireKind(t *testing.T, err error, kind ErrorKind) *ServiceError {
	t.Helper()
	require.Error(t, err)
	var se *ServiceError
	require.ErrorAs(t, err, &se)
	require.Equal(t, kind, se.Kind, "unexpected error kind for %v", err)
	return se
}
