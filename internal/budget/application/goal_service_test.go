package application

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/mwisnie/TravelBudget/internal/budget/domain"
	budgetErrors "github.com/mwisnie/TravelBudget/internal/budget/errors"
	"github.com/mwisnie/TravelBudget/internal/budget/infrastructure"
)

var projectionNow = time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)

func TestProjectGoal_NinetyDaysRemaining(t *testing.T) {
	goal := domain.SavingsGoal{
		TargetAmount:  decimal.NewFromInt(2000),
		CurrentAmount: decimal.NewFromInt(500),
		TargetDate:    projectionNow.Add(90 * 24 * time.Hour),
	}

	projection := ProjectGoal(goal, projectionNow)

	assert.Equal(t, int64(90), projection.DaysRemaining)
	assert.True(t, projection.ProgressPercent.Equal(decimal.NewFromInt(25)), "expected 25%%, got: %s", projection.ProgressPercent)
	assert.NotNil(t, projection.MonthlyAmountNeeded)
	assert.True(t, projection.MonthlyAmountNeeded.Equal(decimal.NewFromInt(500)),
		"expected 1500/3 = 500, got: %s", projection.MonthlyAmountNeeded)
	assert.True(t, projection.MonthsRemaining.Equal(decimal.NewFromInt(3)))
}

func TestProjectGoal_PastDueHasNoPacingFigure(t *testing.T) {
	goal := domain.SavingsGoal{
		TargetAmount:  decimal.NewFromInt(1000),
		CurrentAmount: decimal.NewFromInt(100),
		TargetDate:    projectionNow.Add(-48 * time.Hour),
	}

	projection := ProjectGoal(goal, projectionNow)

	assert.Nil(t, projection.MonthlyAmountNeeded, "a past-due goal has no forward pacing figure")
	assert.True(t, projection.MonthsRemaining.IsZero())
	assert.True(t, projection.ProgressPercent.Equal(decimal.NewFromInt(10)))
}

func TestProjectGoal_DueTomorrowCountsAsOneDay(t *testing.T) {
	goal := domain.SavingsGoal{
		TargetAmount:  decimal.NewFromInt(300),
		CurrentAmount: decimal.Zero,
		TargetDate:    projectionNow.Add(18 * time.Hour),
	}

	projection := ProjectGoal(goal, projectionNow)

	assert.Equal(t, int64(1), projection.DaysRemaining)
	assert.NotNil(t, projection.MonthlyAmountNeeded)
	assert.True(t, projection.MonthlyAmountNeeded.Equal(decimal.NewFromInt(9000)),
		"expected 300*30/1 = 9000, got: %s", projection.MonthlyAmountNeeded)
}

func TestProjectGoal_DueTodayHasNoPacingFigure(t *testing.T) {
	goal := domain.SavingsGoal{
		TargetAmount:  decimal.NewFromInt(300),
		CurrentAmount: decimal.NewFromInt(100),
		TargetDate:    projectionNow,
	}

	projection := ProjectGoal(goal, projectionNow)
	assert.Equal(t, int64(0), projection.DaysRemaining)
	assert.Nil(t, projection.MonthlyAmountNeeded)
}

func TestProjectGoal_OvershotGoalPacesAtZero(t *testing.T) {
	goal := domain.SavingsGoal{
		TargetAmount:  decimal.NewFromInt(1000),
		CurrentAmount: decimal.NewFromInt(1500),
		TargetDate:    projectionNow.Add(30 * 24 * time.Hour),
	}

	projection := ProjectGoal(goal, projectionNow)

	assert.True(t, projection.ProgressPercent.Equal(decimal.NewFromInt(150)))
	assert.NotNil(t, projection.MonthlyAmountNeeded)
	assert.True(t, projection.MonthlyAmountNeeded.IsZero())
}

func TestAggregateProgress_ZeroGoals(t *testing.T) {
	progress := AggregateProgress(nil)
	assert.True(t, progress.IsZero(), "zero goals must yield 0%%, not a divide failure")
}

func TestAggregateProgress_AcrossGoals(t *testing.T) {
	goals := []domain.SavingsGoal{
		{TargetAmount: decimal.NewFromInt(1000), CurrentAmount: decimal.NewFromInt(250)},
		{TargetAmount: decimal.NewFromInt(3000), CurrentAmount: decimal.NewFromInt(750)},
	}

	progress := AggregateProgress(goals)
	assert.True(t, progress.Equal(decimal.NewFromInt(25)), "expected 1000/4000 = 25%%, got: %s", progress)
}

func TestContribute_IsNotIdempotent(t *testing.T) {
	repo := &infrastructure.MockGoalRepository{}
	service := NewGoalService(repo)

	goal := &domain.SavingsGoal{
		UserID:       "user-1",
		TargetAmount: decimal.NewFromInt(1000),
		TargetDate:   projectionNow.AddDate(0, 6, 0),
	}
	assert.NoError(t, service.CreateGoal(context.Background(), goal))

	_, err := service.Contribute(context.Background(), "user-1", goal.ID, decimal.NewFromInt(100))
	assert.NoError(t, err)
	updated, err := service.Contribute(context.Background(), "user-1", goal.ID, decimal.NewFromInt(100))
	assert.NoError(t, err)

	assert.True(t, updated.CurrentAmount.Equal(decimal.NewFromInt(200)),
		"two contributions of 100 must yield 200, got: %s", updated.CurrentAmount)
}

func TestContribute_RejectsNonPositiveAmount(t *testing.T) {
	repo := &infrastructure.MockGoalRepository{}
	service := NewGoalService(repo)

	goal := &domain.SavingsGoal{
		UserID:       "user-1",
		TargetAmount: decimal.NewFromInt(1000),
		TargetDate:   projectionNow.AddDate(0, 6, 0),
	}
	assert.NoError(t, service.CreateGoal(context.Background(), goal))

	_, err := service.Contribute(context.Background(), "user-1", goal.ID, decimal.Zero)
	assert.ErrorIs(t, err, budgetErrors.ErrNonPositiveContribution)

	_, err = service.Contribute(context.Background(), "user-1", goal.ID, decimal.NewFromInt(-5))
	assert.ErrorIs(t, err, budgetErrors.ErrNonPositiveContribution)
}

func TestContribute_RequiresOwnership(t *testing.T) {
	repo := &infrastructure.MockGoalRepository{}
	service := NewGoalService(repo)

	goal := &domain.SavingsGoal{
		UserID:       "user-1",
		TargetAmount: decimal.NewFromInt(1000),
		TargetDate:   projectionNow.AddDate(0, 6, 0),
	}
	assert.NoError(t, service.CreateGoal(context.Background(), goal))

	_, err := service.Contribute(context.Background(), "user-2", goal.ID, decimal.NewFromInt(100))
	assert.ErrorIs(t, err, budgetErrors.ErrUnauthorizedAccess)
}

func TestCreateGoal_RejectsZeroTarget(t *testing.T) {
	repo := &infrastructure.MockGoalRepository{}
	service := NewGoalService(repo)

	goal := &domain.SavingsGoal{
		UserID:       "user-1",
		TargetAmount: decimal.Zero,
		TargetDate:   projectionNow.AddDate(0, 6, 0),
	}
	err := service.CreateGoal(context.Background(), goal)
	assert.True(t, budgetErrors.IsValidationError(err))
	assert.Empty(t, repo.Goals)
}
