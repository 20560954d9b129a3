package repository

import (
	"errors"
	"log"

	"github.com/showup-or-else/event_service/internal/domain"
	"gorm.io/gorm"
)

type UserRepository interface {
	CreateUser(user *domain.User) (*domain.User, error)
	FindUserByEmail(email string) (*domain.User, error)
	SaveUser(user *domain.User) error
	FindUserById(userID uint) (*domain.User, error)
	FindUserByResetToken(tokenHash string) (*domain.User, error)
	FindUserByVerificationTokenHash(hash string) (*domain.User, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, errors.New("nil user")
	}
	if err := r.db.Create(user).Error; err != nil {
		log.Printf("create user error: %v", err)
		return nil, err
	}
	return user, nil
}

func (r *userRepository) FindUserByEmail(email string) (*domain.User, error) {
	user := &domain.User{}
	if err := r.db.First(user, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepository) SaveUser(user *domain.User) error {
	if user == nil {
		return errors.New("nil user")
	}
	if err := r.db.Save(user).Error; err != nil {
		log.Printf("save user error: %v", err)
		return err
	}
	return nil
}

func (r *userRepository) FindUserById(userID uint) (*domain.User, error) {
	user := &domain.User{}
	if err := r.db.First(user, userID).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepository) FindUserByResetToken(tokenHash string) (*domain.User, error) {
	user := &domain.User{}
	if err := r.db.Where("reset_token_hash = ?", tokenHash).First(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepository) FindUserByVerificationTokenHash(hash string) (*domain.User, error) {
	user := &domain.User{}
	if err := r.db.Where("verification_token = ?", hash).First(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}
