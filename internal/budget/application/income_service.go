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

var monthsPerYear = decimal.NewFromInt(12)

// MonthlyEquivalent reduces a set of income records to a single
// monthly-equivalent total. One-time receipts contribute nothing: they do not
// represent sustainable monthly capacity. Monthly amounts pass through
// unchanged, yearly amounts are divided by twelve.
func MonthlyEquivalent(records []domain.IncomeRecord) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, record := range records {
		if record.Amount.IsNegative() {
			return decimal.Zero, budgetErrors.ErrNegativeAmount
		}
		switch record.Frequency {
		case domain.FrequencyMonthly:
			total = total.Add(record.Amount)
		case domain.FrequencyYearly:
			total = total.Add(record.Amount.Div(monthsPerYear))
		case domain.FrequencyOneTime:
			// excluded from recurring monthly income
		default:
			return decimal.Zero, budgetErrors.ErrInvalidIncomeFrequency
		}
	}
	return total, nil
}

type IncomeService struct {
	repo domain.IncomeRepository
}

func NewIncomeService(repo domain.IncomeRepository) *IncomeService {
	return &IncomeService{repo: repo}
}

func (s *IncomeService) CreateIncome(ctx context.Context, record *domain.IncomeRecord) error {
	record.ID = uuid.New()
	record.CreatedAt = time.Now()
	record.UpdatedAt = record.CreatedAt
	if err := record.Validate(); err != nil {
		return err
	}
	return s.repo.Save(ctx, record)
}

func (s *IncomeService) GetUserIncomes(ctx context.Context, userID string) ([]domain.IncomeRecord, error) {
	records, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if records == nil {
		return []domain.IncomeRecord{}, nil
	}
	return records, nil
}

// GetMonthlyIncome returns the user's monthly-equivalent income total.
func (s *IncomeService) GetMonthlyIncome(ctx context.Context, userID string) (decimal.Decimal, error) {
	records, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}
	return MonthlyEquivalent(records)
}

func (s *IncomeService) UpdateIncome(ctx context.Context, userID string, record *domain.IncomeRecord) error {
	existing, err := s.findOwned(ctx, userID, record.ID)
	if err != nil {
		return err
	}
	record.UserID = existing.UserID
	record.CreatedAt = existing.CreatedAt
	record.UpdatedAt = time.Now()
	if err := record.Validate(); err != nil {
		return err
	}
	return s.repo.Update(ctx, record)
}

func (s *IncomeService) DeleteIncome(ctx context.Context, userID string, recordID uuid.UUID) error {
	if _, err := s.findOwned(ctx, userID, recordID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, recordID)
}

func (s *IncomeService) findOwned(ctx context.Context, userID string, recordID uuid.UUID) (*domain.IncomeRecord, error) {
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
