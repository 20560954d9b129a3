package repository

import (
	"errors"
	"log"

	"github.com/showup-or-else/event_service/internal/domain"
	"gorm.io/gorm"
)

var (
	ErrPlanFull      = errors.New("plan is full")
	ErrAlreadyMember = errors.New("already a member of this plan")
)

type PlanRepository interface {
	Create(plan *domain.Plan) (*domain.Plan, error)
	FindByID(id uint) (*domain.Plan, error)

	// Join counts members and inserts in one transaction, so the capacity
	// ceiling holds for sequential callers.
	Join(plan *domain.Plan, member *domain.PlanMember) (*domain.PlanMember, error)

	ListByUser(userID string) ([]domain.Plan, error)
	CountMembers(planID uint) (int64, error)
}

type planRepository struct {
	db *gorm.DB
}

func NewPlanRepository(db *gorm.DB) PlanRepository {
	return &planRepository{db: db}
}

func (r *planRepository) Create(plan *domain.Plan) (*domain.Plan, error) {
	if plan == nil {
		return nil, errors.New("nil plan")
	}
	if err := r.db.Create(plan).Error; err != nil {
		log.Printf("create plan error: %v", err)
		return nil, err
	}
	return plan, nil
}

func (r *planRepository) FindByID(id uint) (*domain.Plan, error) {
	plan := &domain.Plan{}
	if err := r.db.First(plan, id).Error; err != nil {
		return nil, err
	}
	return plan, nil
}

func (r *planRepository) Join(plan *domain.Plan, member *domain.PlanMember) (*domain.PlanMember, error) {
	if plan == nil || member == nil {
		return nil, errors.New("nil plan or member")
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		existing := &domain.PlanMember{}
		err := tx.Where("plan_id = ? AND user_id = ?", plan.ID, member.UserID).First(existing).Error
		if err == nil {
			return ErrAlreadyMember
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if plan.MaxMembers > 0 {
			var count int64
			if err := tx.Model(&domain.PlanMember{}).Where("plan_id = ?", plan.ID).Count(&count).Error; err != nil {
				return err
			}
			if count >= int64(plan.MaxMembers) {
				return ErrPlanFull
			}
		}

		return tx.Create(member).Error
	})
	if err != nil {
		if !errors.Is(err, ErrPlanFull) && !errors.Is(err, ErrAlreadyMember) {
			log.Printf("join plan error: %v", err)
		}
		return nil, err
	}
	return member, nil
}

func (r *planRepository) ListByUser(userID string) ([]domain.Plan, error) {
	var plans []domain.Plan
	err := r.db.
		Where("creator_id = ?", userID).
		Or("id IN (?)", r.db.Model(&domain.PlanMember{}).Select("plan_id").Where("user_id = ?", userID)).
		Order("created_at DESC").
		Find(&plans).Error
	if err != nil {
		log.Printf("list plans error: %v", err)
		return nil, err
	}
	return plans, nil
}

func (r *planRepository) CountMembers(planID uint) (int64, error) {
	var count int64
	err := r.db.Model(&domain.PlanMember{}).Where("plan_id = ?", planID).Count(&count).Error
	if err != nil {
		log.Printf("count plan members error: %v", err)
		return 0, err
	}
	return count, nil
}
