package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	budgetErrors "github.com/mwisnie/TravelBudget/internal/budget/errors"
)

type IncomeFrequency string

const (
	FrequencyOneTime IncomeFrequency = "one-time"
	FrequencyMonthly IncomeFrequency = "monthly"
	FrequencyYearly  IncomeFrequency = "yearly"
)

func IsValidIncomeFrequency(frequency string) bool {
	switch IncomeFrequency(frequency) {
	case FrequencyOneTime, FrequencyMonthly, FrequencyYearly:
		return true
	}
	return false
}

type IncomeRecord struct {
	ID        uuid.UUID       `json:"id"`
	UserID    string          `json:"-"` // user UUID
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
	Frequency IncomeFrequency `json:"frequency"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (r *IncomeRecord) Validate() error {
	if r.Amount.IsNegative() {
		return budgetErrors.ErrNegativeAmount
	}
	if !IsValidIncomeFrequency(string(r.Frequency)) {
		return budgetErrors.ErrInvalidIncomeFrequency
	}
	if len(r.Name) > 100 {
		return budgetErrors.NewValidationError("Name must be of length less than 100")
	}
	return nil
}

type IncomeRepository interface {
	Save(ctx context.Context, record *IncomeRecord) error
	FindByUser(ctx context.Context, userID string) ([]IncomeRecord, error)
	FindByID(ctx context.Context, recordID uuid.UUID) (*IncomeRecord, error)
	Update(ctx context.Context, record *IncomeRecord) error
	Delete(ctx context.Context, recordID uuid.UUID) error
}
