package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/showup-or-else/event_service/internal/domain"
	"github.com/showup-or-else/event_service/internal/dto"
	"github.com/showup-or-else/event_service/internal/repository"
	"github.com/showup-or-else/event_service/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newEventApp(t *testing.T) (*fiber.App, services.EventService, services.AccessService) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.Event{},
		&domain.Participant{},
		&domain.Invitee{},
		&domain.RSVPToken{},
	))

	eventRepo := repository.NewEventRepository(db)
	access := services.NewAccessService(
		eventRepo,
		repository.NewInviteeRepository(db),
		repository.NewRSVPTokenRepository(db),
		nil,
	)
	events := services.NewEventService(eventRepo, repository.NewParticipantRepository(db))

	app := fiber.New()
	app.Post("/api/events", NewEventHandler(events, access, false).Handle)
	return app, events, access
}

func postEvents(t *testing.T, app *fiber.App, body map[string]interface{}) int {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/api/events", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	return resp.StatusCode
}

// The page gate reads the viewer's email from the request body, like every
// other field of the action payload.
func TestGetEventReadsViewerEmailFromBody(t *testing.T) {
	app, events, access := newEventApp(t)

	host := domain.NewHostID("a@x.com")
	event, err := events.CreateEvent(host, dto.CreateEventRequest{
		Title:        "Dinner",
		Date:         "2025-01-01",
		Time:         "19:00",
		DecisionMode: "none",
		Punishment:   "sing karaoke",
	})
	require.NoError(t, err)

	_, err = access.AddInvitees(host, event.ID, []string{"guest@x.com"})
	require.NoError(t, err)

	// private page: anonymous viewers get nothing
	status := postEvents(t, app, map[string]interface{}{
		"action": "getEvent", "event_id": event.ID,
	})
	assert.Equal(t, fiber.StatusNotFound, status)

	// an invitee email in the body opens the gate
	status = postEvents(t, app, map[string]interface{}{
		"action": "getEvent", "event_id": event.ID, "email": "guest@x.com",
	})
	assert.Equal(t, fiber.StatusOK, status)

	// unknown emails stay shut out
	status = postEvents(t, app, map[string]interface{}{
		"action": "getEvent", "event_id": event.ID, "email": "other@x.com",
	})
	assert.Equal(t, fiber.StatusNotFound, status)
}
