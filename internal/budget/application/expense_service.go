package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/mwisnie/TravelBudget/internal/budget/domain"
	budgetErrors "github.com/mwisnie/TravelBudget/internal/budget/errors"
)

// AggregateByCategory reduces expense records to a grand total and a
// per-category breakdown. Only categories present in the input appear, in
// first-seen order; the enum is not zero-filled.
func AggregateByCategory(records []domain.ExpenseRecord) (decimal.Decimal, []domain.CategoryAmount) {
	total := decimal.Zero
	totals := []domain.CategoryAmount{}
	index := make(map[domain.ExpenseCategory]int)

	for _, record := range records {
		total = total.Add(record.Amount)
		if i, seen := index[record.Category]; seen {
			totals[i].Amount = totals[i].Amount.Add(record.Amount)
			continue
		}
		index[record.Category] = len(totals)
		totals = append(totals, domain.CategoryAmount{
			Category: record.Category,
			Amount:   record.Amount,
		})
	}
	return total, totals
}

type ExpenseService struct {
	repo domain.ExpenseRepository
}

func NewExpenseService(repo domain.ExpenseRepository) *ExpenseService {
	return &ExpenseService{repo: repo}
}

func (s *ExpenseService) CreateExpense(ctx context.Context, record *domain.ExpenseRecord) error {
	record.ID = uuid.New()
	record.CreatedAt = time.Now()
	if err := record.Validate(); err != nil {
		return err
	}
	return s.repo.Save(ctx, record)
}

func (s *ExpenseService) GetUserExpenses(ctx context.Context, userID string) ([]domain.ExpenseRecord, error) {
	records, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if records == nil {
		return []domain.ExpenseRecord{}, nil
	}
	return records, nil
}

// GetExpenseTotals returns the user's expense grand total and per-category
// breakdown in first-seen order.
func (s *ExpenseService) GetExpenseTotals(ctx context.Context, userID string) (decimal.Decimal, []domain.CategoryAmount, error) {
	records, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return decimal.Zero, nil, err
	}
	total, totals := AggregateByCategory(records)
	return total, totals, nil
}

func (s *ExpenseService) UpdateExpense(ctx context.Context, userID string, record *domain.ExpenseRecord) error {
	existing, err := s.findOwned(ctx, userID, record.ID)
	if err != nil {
		return err
	}
	record.UserID = existing.UserID
	record.CreatedAt = existing.CreatedAt
	if err := record.Validate(); err != nil {
		return err
	}
	return s.repo.Update(ctx, record)
}

func (s *ExpenseService) DeleteExpense(ctx context.Context, userID string, recordID uuid.UUID) error {
	if _, err := s.findOwned(ctx, userID, recordID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, recordID)
}

func (s *ExpenseService) findOwned(ctx context.Context, userID string, recordID uuid.UUID) (*domain.ExpenseRecord, error) {
	record, err := s.repo.FindByID(ctx, recordID)
	if err != nil {
		if errors.Is(err, budgetErrors.ErrRecordNotFound) {
			return nil, budgetErrors.ErrRecordNotFound
		}
		return nil, err
	}
	if record.UserID != userID {
		return nil, budgetErrors.ErrUnauthorizedAccess
	}
	return record, nil
}
