package services

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/showup-or-else/event_service/internal/domain"
	"github.com/showup-or-else/event_service/internal/dto"
	"github.com/showup-or-else/event_service/internal/helper"
	"github.com/showup-or-else/event_service/internal/helper/utils"
	"github.com/showup-or-else/event_service/internal/interfaces"
	"github.com/showup-or-else/event_service/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService interface {
	Register(input dto.RegisterRequest) error
	Login(email, password string) (*domain.User, error)
	VerifyEmail(token string) error

	// ForgotPassword never reveals whether the email exists; unknown
	// addresses succeed silently.
	ForgotPassword(email string) error
	ResetPassword(input dto.SetPasswordRequest) error

	GetProfile(userID uint) (*domain.User, error)
}

type userService struct {
	repo     repository.UserRepository
	auth     helper.Auth
	producer interfaces.ProducerHandler
}

func NewUserService(
	repo repository.UserRepository,
	producer interfaces.ProducerHandler,
	auth helper.Auth,
) UserService {
	return &userService{
		repo:     repo,
		producer: producer,
		auth:     auth,
	}
}

func (u *userService) Register(input dto.RegisterRequest) error {
	email := utils.NormalizeEmail(input.Email)
	name := strings.TrimSpace(input.Name)

	if email == "" || name == "" || strings.TrimSpace(input.Password) == "" {
		return Validation("name, email and password are required")
	}
	if _, err := utils.ExtractEmailDomain(email); err != nil {
		return Validation("invalid email format")
	}
	if len(input.Password) < 6 {
		return Validation("password must be at least 6 characters")
	}

	existing, err := u.repo.FindUserByEmail(email)
	if err == nil && existing != nil && existing.ID != 0 {
		return Conflict("email already exists")
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return Dependency("failed to check email", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return Dependency("failed to hash password", err)
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Status:       "active",
	}
	user, err = u.repo.CreateUser(user)
	if err != nil {
		return Dependency("failed to create user", err)
	}

	plainToken, err := utils.RandomToken(32)
	if err != nil {
		return Dependency("failed to generate verification token", err)
	}
	exp := time.Now().Add(24 * time.Hour)
	user.VerificationToken = utils.Sha256Hex(plainToken)
	user.VerificationTokenExpiresAt = &exp

	if err := u.repo.SaveUser(user); err != nil {
		return Dependency("failed to save verification token", err)
	}

	publish(u.producer, "user.verify_email", dto.VerifyEmailEvent{
		UserID:    user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Token:     plainToken,
		ExpiresAt: exp.Format(time.RFC3339),
	})

	return nil
}

func (u *userService) Login(email, password string) (*domain.User, error) {
	email = utils.NormalizeEmail(email)
	password = strings.TrimSpace(password)

	if email == "" || password == "" {
		return nil, Validation("invalid email or password")
	}

	user, err := u.repo.FindUserByEmail(email)
	if err != nil || user == nil || user.ID == 0 {
		return nil, Validation("invalid email or password")
	}
	if user.EmailVerifiedAt == nil {
		return nil, Validation("please verify your email first")
	}
	if user.Status != "" && user.Status != "active" {
		return nil, Validation("account is not active")
	}
	if err := u.auth.VerifyPassword(password, user.PasswordHash); err != nil {
		return nil, Validation("invalid email or password")
	}

	return user, nil
}

func (u *userService) VerifyEmail(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return Validation("token is required")
	}

	hash := utils.Sha256Hex(token)
	user, err := u.repo.FindUserByVerificationTokenHash(hash)
	if err != nil || user == nil {
		return Validation("invalid token")
	}
	if user.VerificationTokenExpiresAt == nil || time.Now().After(*user.VerificationTokenExpiresAt) {
		return Validation("token expired")
	}

	now := time.Now()
	user.EmailVerifiedAt = &now
	user.VerificationToken = ""
	user.VerificationTokenExpiresAt = nil
	if err := u.repo.SaveUser(user); err != nil {
		return Dependency("failed to verify email", err)
	}
	return nil
}

func (u *userService) ForgotPassword(email string) error {
	email = utils.NormalizeEmail(email)
	if email == "" {
		return Validation("email is required")
	}

	user, err := u.repo.FindUserByEmail(email)
	if err != nil || user == nil {
		// do not leak whether the account exists
		log.Printf("password reset requested for unknown email")
		return nil
	}

	plain, err := utils.RandomToken(32)
	if err != nil {
		return Dependency("failed to generate reset token", err)
	}
	exp := time.Now().Add(30 * time.Minute)

	user.ResetTokenHash = utils.Sha256Hex(plain)
	user.ResetTokenExpiresAt = &exp
	if err := u.repo.SaveUser(user); err != nil {
		return Dependency("failed to save reset token", err)
	}

	publish(u.producer, "user.reset_password", dto.ResetPasswordEvent{
		UserID:    user.ID,
		Email:     user.Email,
		Token:     plain,
		ExpiresAt: exp.Format(time.RFC3339),
	})

	return nil
}

func (u *userService) ResetPassword(input dto.SetPasswordRequest) error {
	token := strings.TrimSpace(input.Token)
	newPassword := strings.TrimSpace(input.NewPassword)

	if token == "" || newPassword == "" {
		return Validation("token and password are required")
	}
	if len(newPassword) < 6 {
		return Validation("password must be at least 6 characters")
	}

	hash := utils.Sha256Hex(token)
	user, err := u.repo.FindUserByResetToken(hash)
	if err != nil || user == nil {
		return Validation("invalid or expired token")
	}
	if user.ResetTokenExpiresAt == nil || time.Now().After(*user.ResetTokenExpiresAt) {
		return Validation("invalid or expired token")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return Dependency("failed to hash password", err)
	}

	user.PasswordHash = string(hashedPassword)
	user.ResetTokenHash = ""
	user.ResetTokenExpiresAt = nil
	if err := u.repo.SaveUser(user); err != nil {
		return Dependency("failed to reset password", err)
	}
	return nil
}

func (u *userService) GetProfile(userID uint) (*domain.User, error) {
	if userID == 0 {
		return nil, Validation("invalid user id")
	}
	user, err := u.repo.FindUserById(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("user not found")
		}
		return nil, Dependency("failed to load user", err)
	}
	return user, nil
}
