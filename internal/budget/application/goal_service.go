package application

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/mwisnie/TravelBudget/internal/budget/domain"
	budgetErrors "github.com/mwisnie/TravelBudget/internal/budget/errors"
)

var daysPerMonth = decimal.NewFromInt(30)
var oneHundred = decimal.NewFromInt(100)

// ProjectGoal computes the read-side pacing view of a goal at the given
// moment. Days remaining round up, so a goal due tomorrow counts as one day.
// Precondition: goal.TargetAmount > 0 (enforced by SavingsGoal.Validate before
// any goal is stored).
//
// The monthly figure uses a flat 30-day month. It is only produced while the
// target date lies ahead; a past-due or due-today goal gets no pacing figure
// at all. A goal already at or above target paces at zero.
func ProjectGoal(goal domain.SavingsGoal, now time.Time) domain.GoalProjection {
	projection := domain.GoalProjection{
		ProgressPercent: goal.CurrentAmount.Div(goal.TargetAmount).Mul(oneHundred),
		MonthsRemaining: decimal.Zero,
	}

	daysRemaining := int64(math.Ceil(goal.TargetDate.Sub(now).Hours() / 24))
	projection.DaysRemaining = daysRemaining
	if daysRemaining <= 0 {
		return projection
	}

	days := decimal.NewFromInt(daysRemaining)
	projection.MonthsRemaining = days.Div(daysPerMonth)

	remaining := goal.TargetAmount.Sub(goal.CurrentAmount)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	needed := remaining.Mul(daysPerMonth).Div(days)
	projection.MonthlyAmountNeeded = &needed
	return projection
}

// AggregateProgress is the ratio of total saved to total targeted across all
// goals, as a percentage. Zero goals yield zero percent, never a zero divide.
func AggregateProgress(goals []domain.SavingsGoal) decimal.Decimal {
	saved := decimal.Zero
	targeted := decimal.Zero
	for _, goal := range goals {
		saved = saved.Add(goal.CurrentAmount)
		targeted = targeted.Add(goal.TargetAmount)
	}
	if targeted.IsZero() {
		return decimal.Zero
	}
	return saved.Div(targeted).Mul(oneHundred)
}

type GoalService struct {
	repo domain.GoalRepository
}

func NewGoalService(repo domain.GoalRepository) *GoalService {
	return &GoalService{repo: repo}
}

func (s *GoalService) CreateGoal(ctx context.Context, goal *domain.SavingsGoal) error {
	goal.ID = uuid.New()
	if goal.CurrentAmount.IsZero() {
		goal.CurrentAmount = decimal.Zero
	}
	goal.CreatedAt = time.Now()
	goal.UpdatedAt = goal.CreatedAt
	if err := goal.Validate(); err != nil {
		return err
	}
	return s.repo.Save(ctx, goal)
}

func (s *GoalService) GetUserGoals(ctx context.Context, userID string) ([]domain.SavingsGoal, error) {
	goals, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if goals == nil {
		return []domain.SavingsGoal{}, nil
	}
	return goals, nil
}

func (s *GoalService) UpdateGoal(ctx context.Context, userID string, goal *domain.SavingsGoal) error {
	existing, err := s.findOwned(ctx, userID, goal.ID)
	if err != nil {
		return err
	}
	goal.UserID = existing.UserID
	goal.CreatedAt = existing.CreatedAt
	goal.UpdatedAt = time.Now()
	if err := goal.Validate(); err != nil {
		return err
	}
	return s.repo.Update(ctx, goal)
}

func (s *GoalService) DeleteGoal(ctx context.Context, userID string, goalID uuid.UUID) error {
	if _, err := s.findOwned(ctx, userID, goalID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, goalID)
}

// Contribute adds amount to the goal's stored current amount in one atomic
// update. The operation is deliberately not idempotent: every call represents
// one real top-up event.
func (s *GoalService) Contribute(ctx context.Context, userID string, goalID uuid.UUID, amount decimal.Decimal) (*domain.SavingsGoal, error) {
	if !amount.IsPositive() {
		return nil, budgetErrors.ErrNonPositiveContribution
	}
	if _, err := s.findOwned(ctx, userID, goalID); err != nil {
		return nil, err
	}
	return s.repo.AddContribution(ctx, goalID, amount)
}

func (s *GoalService) findOwned(ctx context.Context, userID string, goalID uuid.UUID) (*domain.SavingsGoal, error) {
	goal, err := s.repo.FindByID(ctx, goalID)
	if err != nil {
		if errors.Is(err, budgetErrors.ErrRecordNotFound) {
			return nil, budgetErrors.ErrRecordNotFound
		}
		return nil, err
	}
	if goal.UserID != userID {
		return nil, budgetErrors.ErrUnauthorizedAccess
	}
	return goal, nil
}
