package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/showup-or-else/event_service/internal/dto"
	"github.com/showup-or-else/event_service/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePlanValidation(t *testing.T) {
	f := newFixture(t)

	_, err := f.plans.CreatePlan(dto.CreatePlanRequest{Title: "Trip"})
	requireKind(t, err, KindValidation)
	_, err = f.plans.CreatePlan(dto.CreatePlanRequest{CreatorID: "u1"})
	requireKind(t, err, KindValidation)

	plan, err := f.plans.CreatePlan(dto.CreatePlanRequest{Title: "Trip", CreatorID: "u1", MaxMembers: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, plan.MaxMembers)
}

func TestJoinPlanNotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.plans.JoinPlan(dto.JoinPlanRequest{PlanID: 999, UserID: "u1"})
	requireKind(t, err, KindNotFound)
}

func TestJoinPlanTwiceConflicts(t *testing.T) {
	f := newFixture(t)
	plan, err := f.plans.CreatePlan(dto.CreatePlanRequest{Title: "Trip", CreatorID: "u1"})
	require.NoError(t, err)

	_, err = f.plans.JoinPlan(dto.JoinPlanRequest{PlanID: plan.ID, UserID: "u2"})
	require.NoError(t, err)

	_, err = f.plans.JoinPlan(dto.JoinPlanRequest{PlanID: plan.ID, UserID: "u2"})
	se := requireKind(t, err, KindConflict)
	assert.Contains(t, se.Message, "already a member")
}

// With the ceiling reached, a sequential join attempt is turned away.
func TestJoinPlanFull(t *testing.T) {
	f := newFixture(t)
	plan, err := f.plans.CreatePlan(dto.CreatePlanRequest{Title: "Trip", CreatorID: "u1", MaxMembers: 2})
	require.NoError(t, err)

	_, err = f.plans.JoinPlan(dto.JoinPlanRequest{PlanID: plan.ID, UserID: "u2"})
	require.NoError(t, err)
	_, err = f.plans.JoinPlan(dto.JoinPlanRequest{PlanID: plan.ID, UserID: "u3"})
	require.NoError(t, err)

	_, err = f.plans.JoinPlan(dto.JoinPlanRequest{PlanID: plan.ID, UserID: "u4"})
	se := requireKind(t, err, KindValidation)
	assert.Equal(t, "Plan is full", se.Message)
}

func TestJoinPlanUnlimitedWhenNoCeiling(t *testing.T) {
	f := newFixture(t)
	plan, err := f.plans.CreatePlan(dto.CreatePlanRequest{Title: "Trip", CreatorID: "u1"})
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		_, err = f.plans.JoinPlan(dto.JoinPlanRequest{PlanID: plan.ID, UserID: fmt.Sprintf("u%d", i+2)})
		require.NoError(t, err)
	}
}

type failingCountPlanRepo struct {
	repository.PlanRepository
}

func (failingCountPlanRepo) CountMembers(planID uint) (int64, error) {
	return 0, errors.New("count unavailable")
}

// member_count is decoration; a failing count degrades to zero instead of
// failing the listing.
func TestListPlansDegradesWhenCountFails(t *testing.T) {
	db := openTestDB(t)
	svc := NewPlanService(failingCountPlanRepo{repository.NewPlanRepository(db)})

	plan, err := svc.CreatePlan(dto.CreatePlanRequest{Title: "Trip", CreatorID: "u1"})
	require.NoError(t, err)
	_, err = svc.JoinPlan(dto.JoinPlanRequest{PlanID: plan.ID, UserID: "u2"})
	require.NoError(t, err)

	plans, err := svc.ListPlans("u1")
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, int64(0), plans[0].MemberCount)
}

func TestListPlansWithMemberCount(t *testing.T) {
	f := newFixture(t)

	created, err := f.plans.CreatePlan(dto.CreatePlanRequest{Title: "Trip", CreatorID: "u1", MaxMembers: 5})
	require.NoError(t, err)
	joined, err := f.plans.CreatePlan(dto.CreatePlanRequest{Title: "Hike", CreatorID: "u9"})
	require.NoError(t, err)

	_, err = f.plans.JoinPlan(dto.JoinPlanRequest{PlanID: created.ID, UserID: "u2"})
	require.NoError(t, err)
	_, err = f.plans.JoinPlan(dto.JoinPlanRequest{PlanID: created.ID, UserID: "u3"})
	require.NoError(t, err)
	_, err = f.plans.JoinPlan(dto.JoinPlanRequest{PlanID: joined.ID, UserID: "u1"})
	require.NoError(t, err)

	plans, err := f.plans.ListPlans("u1")
	require.NoError(t, err)
	require.Len(t, plans, 2, "created and joined plans both show up")

	counts := map[string]int64{}
	for _, p := range plans {
		counts[p.Title] = p.MemberCount
	}
	assert.Equal(t, int64(2), counts["Trip"])
	assert.Equal(t, int64(1), counts["Hike"])

	_, err = f.plans.ListPlans("")
	requireKind(t, err, KindValidation)
}
