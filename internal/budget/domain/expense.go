package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	budgetErrors "github.com/mwisnie/TravelBudget/internal/budget/errors"
)

type ExpenseCategory string

const (
	CategoryFood          ExpenseCategory = "food"
	CategoryTransport     ExpenseCategory = "transport"
	CategoryAccommodation ExpenseCategory = "accommodation"
	CategoryActivities    ExpenseCategory = "activities"
	CategoryShopping      ExpenseCategory = "shopping"
	CategoryEntertainment ExpenseCategory = "entertainment"
	CategoryOther         ExpenseCategory = "other"
)

// ExpenseCategories returns the closed category set in display order.
func ExpenseCategories() []ExpenseCategory {
	return []ExpenseCategory{
		CategoryFood,
		CategoryTransport,
		CategoryAccommodation,
		CategoryActivities,
		CategoryShopping,
		CategoryEntertainment,
		CategoryOther,
	}
}

func IsValidExpenseCategory(category string) bool {
	for _, c := range ExpenseCategories() {
		if ExpenseCategory(category) == c {
			return true
		}
	}
	return false
}

type ExpenseRecord struct {
	ID          uuid.UUID       `json:"id"`
	UserID      string          `json:"-"` // user UUID
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    ExpenseCategory `json:"category"`
	Date        time.Time       `json:"date"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (r *ExpenseRecord) Validate() error {
	if r.Amount.IsNegative() {
		return budgetErrors.ErrNegativeAmount
	}
	if !IsValidExpenseCategory(string(r.Category)) {
		return budgetErrors.ErrInvalidExpenseCategory
	}
	if len(r.Description) > 200 {
		return budgetErrors.NewValidationError("Description must be of length less than 200")
	}
	if r.Date.IsZero() {
		return budgetErrors.NewValidationError("Date is required")
	}
	return nil
}

type ExpenseRepository interface {
	Save(ctx context.Context, record *ExpenseRecord) error
	FindByUser(ctx context.Context, userID string) ([]ExpenseRecord, error)
	FindByID(ctx context.Context, recordID uuid.UUID) (*ExpenseRecord, error)
	Update(ctx context.Context, record *ExpenseRecord) error
	Delete(ctx context.Context, recordID uuid.UUID) error
}
