package services

import (
	"testing"
	"time"

	"github.com/showup-or-else/event_service/internal/domain"
	"github.com/showup-or-else/event_service/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Expiry exactly at "now" counts as expired; a nil expiry never expires.
func TestTokenValidAtBoundary(t *testing.T) {
	now := time.Now()
	future := now.Add(time.Second)
	past := now.Add(-time.Second)

	assert.True(t, TokenValidAt(&domain.RSVPToken{ExpiresAt: &future}, now))
	assert.False(t, TokenValidAt(&domain.RSVPToken{ExpiresAt: &past}, now))
	assert.False(t, TokenValidAt(&domain.RSVPToken{ExpiresAt: &now}, now))
	assert.True(t, TokenValidAt(&domain.RSVPToken{}, now))
	assert.False(t, TokenValidAt(nil, now))
}

// An unset or private page visibility only admits the host and invitees.
func TestCanViewPageFailsClosed(t *testing.T) {
	f := newFixture(t)
	event, err := f.events.CreateEvent(testHost, validEvent())
	require.NoError(t, err)

	// zero out the default to simulate an unset column
	require.NoError(t, f.db.Model(event).Update("page_visibility", "").Error)
	event.PageVisibility = ""

	assert.False(t, f.access.CanViewPage(event, dto.Actor{}))
	assert.False(t, f.access.CanViewPage(event, dto.Actor{Email: "random@x.com"}))
	assert.True(t, f.access.CanViewPage(event, dto.Actor{HostID: "a@x.com"}))
	assert.True(t, f.access.CanViewPage(event, dto.Actor{HostID: "A@X.com"}), "host match is case-insensitive")

	_, err = f.access.AddInvitees(testHost, event.ID, []string{"guest@x.com"})
	require.NoError(t, err)
	assert.True(t, f.access.CanViewPage(event, dto.Actor{Email: "guest@x.com"}))
	assert.False(t, f.access.CanViewPage(event, dto.Actor{Email: "other@x.com"}))
}

func TestCanViewPagePublic(t *testing.T) {
	f := newFixture(t)
	input := validEvent()
	input.PageVisibility = domain.EventAccessPublic
	event, err := f.events.CreateEvent(testHost, input)
	require.NoError(t, err)

	assert.True(t, f.access.CanViewPage(event, dto.Actor{}))
}

func TestAuthorizeRSVPPublicEvent(t *testing.T) {
	f := newFixture(t)
	input := validEvent()
	input.Access = domain.EventAccessPublic
	event, err := f.events.CreateEvent(testHost, input)
	require.NoError(t, err)

	token, err := f.access.AuthorizeRSVP(event, "", "")
	require.NoError(t, err)
	assert.Nil(t, token)
}

func TestAuthorizeRSVPWithToken(t *testing.T) {
	f := newFixture(t)
	event, err := f.events.CreateEvent(testHost, validEvent())
	require.NoError(t, err)

	created, err := f.access.CreateToken(testHost, event.ID, "", 0)
	require.NoError(t, err)

	matched, err := f.access.AuthorizeRSVP(event, created.Token, "")
	require.NoError(t, err)
	require.NotNil(t, matched)
	assert.Equal(t, created.ID, matched.ID)

	_, err = f.access.AuthorizeRSVP(event, "not-a-token", "")
	requireKind(t, err, KindValidation)
}

func TestAuthorizeRSVPExpiredToken(t *testing.T) {
	f := newFixture(t)
	event, err := f.events.CreateEvent(testHost, validEvent())
	require.NoError(t, err)

	expired := time.Now().Add(-time.Hour)
	tok := &domain.RSVPToken{EventID: event.ID, Token: "expired-token", ExpiresAt: &expired}
	require.NoError(t, f.tokens.Create(tok))

	_, err = f.access.AuthorizeRSVP(event, "expired-token", "")
	requireKind(t, err, KindValidation)
}

func TestCreateTokenDefaults(t *testing.T) {
	f := newFixture(t)
	event, err := f.events.CreateEvent(testHost, validEvent())
	require.NoError(t, err)

	token, err := f.access.CreateToken(testHost, event.ID, "Friend@X.com", 0)
	require.NoError(t, err)
	assert.NotEmpty(t, token.Token)
	assert.Equal(t, "friend@x.com", token.Email)
	require.NotNil(t, token.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(30*24*time.Hour), *token.ExpiresAt, time.Minute)

	short, err := f.access.CreateToken(testHost, event.ID, "", 2)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(48*time.Hour), *short.ExpiresAt, time.Minute)

	_, err = f.access.CreateToken(domain.HostID("mallory@x.com"), event.ID, "", 0)
	requireKind(t, err, KindNotFound)
}

// Redemption is recorded but does not invalidate the token.
func TestMarkTokenUsedKeepsTokenValid(t *testing.T) {
	f := newFixture(t)
	event, err := f.events.CreateEvent(testHost, validEvent())
	require.NoError(t, err)

	created, err := f.access.CreateToken(testHost, event.ID, "", 0)
	require.NoError(t, err)

	f.access.MarkTokenUsed(created)

	stored, err := f.tokens.FindByEventAndToken(event.ID, created.Token)
	require.NoError(t, err)
	assert.NotNil(t, stored.UsedAt)

	_, err = f.access.AuthorizeRSVP(event, created.Token, "")
	require.NoError(t, err)
}

func TestAddInvitees(t *testing.T) {
	f := newFixture(t)
	event, err := f.events.CreateEvent(testHost, validEvent())
	require.NoError(t, err)

	added, err := f.access.AddInvitees(testHost, event.ID, []string{"Bo@X.com", "cy@x.com", "", "bo@x.com"})
	require.NoError(t, err)
	assert.Len(t, added, 2, "duplicates and blanks are skipped")

	for _, invitee := range added {
		assert.Equal(t, domain.InviteeStatusPending, invitee.RSVPStatus)
		assert.NotEmpty(t, invitee.Token)
	}

	assert.Equal(t, 2, f.producer.count("event.invitation"))

	var ev dto.InvitationEvent
	f.producer.last(t, "event.invitation", &ev)
	assert.Equal(t, "Dinner", ev.EventTitle)
	assert.Equal(t, "a@x.com", ev.HostEmail)

	_, err = f.access.AddInvitees(testHost, event.ID, nil)
	requireKind(t, err, KindValidation)
}
