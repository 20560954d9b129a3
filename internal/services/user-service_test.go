package services

import (
	"testing"

	"github.com/showup-or-else/event_service/internal/dto"
	"github.com/showup-or-else/event_service/internal/helper"
	"github.com/showup-or-else/event_service/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserService(t *testing.T) (UserService, *fakeProducer) {
	t.Helper()
	db := openTestDB(t)
	producer := &fakeProducer{}
	svc := NewUserService(repository.NewUserRepository(db), producer, helper.SetupAuth("test-secret"))
	return svc, producer
}

func TestRegisterVerifyLogin(t *testing.T) {
	svc, producer := newUserService(t)

	err := svc.Register(dto.RegisterRequest{Name: "Ana", Email: "Ana@X.com", Password: "secret1"})
	require.NoError(t, err)

	// unverified accounts cannot log in yet
	_, err = svc.Login("ana@x.com", "secret1")
	requireKind(t, err, KindValidation)

	var ev dto.VerifyEmailEvent
	producer.last(t, "user.verify_email", &ev)
	assert.Equal(t, "ana@x.com", ev.Email)
	require.NotEmpty(t, ev.Token)

	require.NoError(t, svc.VerifyEmail(ev.Token))

	user, err := svc.Login("ana@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "Ana", user.Name)
	assert.NotNil(t, user.EmailVerifiedAt)

	_, err = svc.Login("ana@x.com", "wrong")
	requireKind(t, err, KindValidation)
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newUserService(t)

	requireKind(t, svc.Register(dto.RegisterRequest{Email: "a@x.com", Password: "secret1"}), KindValidation)
	requireKind(t, svc.Register(dto.RegisterRequest{Name: "Ana", Email: "not-an-email", Password: "secret1"}), KindValidation)
	requireKind(t, svc.Register(dto.RegisterRequest{Name: "Ana", Email: "a@x.com", Password: "short"}), KindValidation)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newUserService(t)

	require.NoError(t, svc.Register(dto.RegisterRequest{Name: "Ana", Email: "a@x.com", Password: "secret1"}))
	err := svc.Register(dto.RegisterRequest{Name: "Ann", Email: "A@x.com", Password: "secret2"})
	requireKind(t, err, KindConflict)
}

// A broker outage must not fail registration; mail is decoupled from the
// data mutation.
func TestRegisterSurvivesPublishFailure(t *testing.T) {
	db := openTestDB(t)
	producer := &fakeProducer{fail: true}
	svc := NewUserService(repository.NewUserRepository(db), producer, helper.SetupAuth("test-secret"))

	err := svc.Register(dto.RegisterRequest{Name: "Ana", Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)
}

func TestVerifyEmailBadToken(t *testing.T) {
	svc, _ := newUserService(t)

	requireKind(t, svc.VerifyEmail(""), KindValidation)
	requireKind(t, svc.VerifyEmail("bogus"), KindValidation)
}

// Unknown addresses succeed silently and publish nothing.
func TestForgotPasswordDoesNotLeakAccounts(t *testing.T) {
	svc, producer := newUserService(t)

	require.NoError(t, svc.ForgotPassword("nobody@x.com"))
	assert.Equal(t, 0, producer.count("user.reset_password"))

	requireKind(t, svc.ForgotPassword(""), KindValidation)
}

func TestResetPasswordFlow(t *testing.T) {
	svc, producer := newUserService(t)

	require.NoError(t, svc.Register(dto.RegisterRequest{Name: "Ana", Email: "a@x.com", Password: "secret1"}))
	var verify dto.VerifyEmailEvent
	producer.last(t, "user.verify_email", &verify)
	require.NoError(t, svc.VerifyEmail(verify.Token))

	require.NoError(t, svc.ForgotPassword("a@x.com"))

	var reset dto.ResetPasswordEvent
	producer.last(t, "user.reset_password", &reset)
	require.NotEmpty(t, reset.Token)

	err := svc.ResetPassword(dto.SetPasswordRequest{Token: reset.Token, NewPassword: "newsecret"})
	require.NoError(t, err)

	_, err = svc.Login("a@x.com", "secret1")
	requireKind(t, err, KindValidation)
	_, err = svc.Login("a@x.com", "newsecret")
	require.NoError(t, err)

	// the token is single-use
	err = svc.ResetPassword(dto.SetPasswordRequest{Token: reset.Token, NewPassword: "again"})
	requireKind(t, err, KindValidation)
}
