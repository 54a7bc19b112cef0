package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	budgetErrors "github.com/mwisnie/TravelBudget/internal/budget/errors"
)

type SavingsGoal struct {
	ID            uuid.UUID       `json:"id"`
	UserID        string          `json:"-"` // user UUID
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	TargetDate    time.Time       `json:"target_date"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// CurrentAmount may exceed TargetAmount (overshoot is legitimate), it only
// must never be negative.
func (g *SavingsGoal) Validate() error {
	if !g.TargetAmount.IsPositive() {
		return budgetErrors.NewValidationError("Target amount must be greater than zero")
	}
	if g.CurrentAmount.IsNegative() {
		return budgetErrors.NewValidationError("Current amount must not be negative")
	}
	if len(g.Name) > 100 {
		return budgetErrors.NewValidationError("Name must be of length less than 100")
	}
	if g.TargetDate.IsZero() {
		return budgetErrors.NewValidationError("Target date is required")
	}
	return nil
}

type GoalRepository interface {
	Save(ctx context.Context, goal *SavingsGoal) error
	FindByUser(ctx context.Context, userID string) ([]SavingsGoal, error)
	FindByID(ctx context.Context, goalID uuid.UUID) (*SavingsGoal, error)
	Update(ctx context.Context, goal *SavingsGoal) error
	Delete(ctx context.Context, goalID uuid.UUID) error
	AddContribution(ctx context.Context, goalID uuid.UUID, amount decimal.Decimal) (*SavingsGoal, error)
}
