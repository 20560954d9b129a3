package services

import (
	"errors"
	"log"
	"strings"

	"github.com/showup-or-else/event_service/internal/domain"
	"github.com/showup-or-else/event_service/internal/dto"
	"github.com/showup-or-else/event_service/internal/repository"
	"gorm.io/gorm"
)

// PlanService backs the legacy plans flow.
type PlanService interface {
	CreatePlan(input dto.CreatePlanRequest) (*domain.Plan, error)
	JoinPlan(input dto.JoinPlanRequest) (*domain.PlanMember, error)
	ListPlans(userID string) ([]domain.Plan, error)
}

type planService struct {
	plans repository.PlanRepository
}

func NewPlanService(plans repository.PlanRepository) PlanService {
	return &planService{plans: plans}
}

func (s *planService) CreatePlan(input dto.CreatePlanRequest) (*domain.Plan, error) {
	title := strings.TrimSpace(input.Title)
	creator := strings.TrimSpace(input.CreatorID)
	if title == "" || creator == "" {
		return nil, Validation("title and creator_id are required")
	}
	if input.MaxMembers < 0 {
		return nil, Validation("max_members cannot be negative")
	}

	plan := &domain.Plan{
		Title:       title,
		CreatorID:   creator,
		Description: input.Description,
		Date:        strings.TrimSpace(input.Date),
		Location:    strings.TrimSpace(input.Location),
		MaxMembers:  input.MaxMembers,
	}
	plan, err := s.plans.Create(plan)
	if err != nil {
		return nil, Dependency("failed to create plan", err)
	}
	return plan, nil
}

func (s *planService) JoinPlan(input dto.JoinPlanRequest) (*domain.PlanMember, error) {
	userID := strings.TrimSpace(input.UserID)
	if input.PlanID == 0 || userID == "" {
		return nil, Validation("plan_id and user_id are required")
	}

	plan, err := s.plans.FindByID(input.PlanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("plan not found")
		}
		return nil, Dependency("failed to load plan", err)
	}

	member := &domain.PlanMember{
		PlanID:    plan.ID,
		UserID:    userID,
		UserName:  strings.TrimSpace(input.UserName),
		UserEmail: strings.TrimSpace(strings.ToLower(input.UserEmail)),
	}
	member, err = s.plans.Join(plan, member)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrAlreadyMember):
			return nil, Conflict("already a member of this plan")
		case errors.Is(err, repository.ErrPlanFull):
			return nil, Validation("Plan is full")
		default:
			return nil, Dependency("failed to join plan", err)
		}
	}
	return member, nil
}

func (s *planService) ListPlans(userID string) ([]domain.Plan, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, Validation("user_id is required")
	}

	plans, err := s.plans.ListByUser(userID)
	if err != nil {
		return nil, Dependency("failed to load plans", err)
	}
	for i := range plans {
		count, err := s.plans.CountMembers(plans[i].ID)
		if err != nil {
			// decoration only, degrade to zero
			log.Printf("member count enrichment failed for plan %d: %v", plans[i].ID, err)
			count = 0
		}
		plans[i].MemberCount = count
	}
	return plans, nil
}
