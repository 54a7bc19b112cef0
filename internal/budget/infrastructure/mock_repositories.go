package infrastructure

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/mwisnie/TravelBudget/internal/budget/domain"
	budgetErrors "github.com/mwisnie/TravelBudget/internal/budget/errors"
)

// In-memory repositories used by the service test suites in place of a live
// database.

type MockIncomeRepository struct {
	Records []domain.IncomeRecord
}

func (m *MockIncomeRepository) Save(_ context.Context, record *domain.IncomeRecord) error {
	m.Records = append(m.Records, *record)
	return nil
}

func (m *MockIncomeRepository) FindByUser(_ context.Context, userID string) ([]domain.IncomeRecord, error) {
	var records []domain.IncomeRecord
	for _, record := range m.Records {
		if record.UserID == userID {
			records = append(records, record)
		}
	}
	return records, nil
}

func (m *MockIncomeRepository) FindByID(_ context.Context, recordID uuid.UUID) (*domain.IncomeRecord, error) {
	for _, record := range m.Records {
		if record.ID == recordID {
			found := record
			return &found, nil
		}
	}
	return nil, budgetErrors.ErrRecordNotFound
}

func (m *MockIncomeRepository) Update(_ context.Context, record *domain.IncomeRecord) error {
	for i := range m.Records {
		if m.Records[i].ID == record.ID {
			m.Records[i] = *record
			return nil
		}
	}
	return budgetErrors.ErrRecordNotFound
}

func (m *MockIncomeRepository) Delete(_ context.Context, recordID uuid.UUID) error {
	for i := range m.Records {
		if m.Records[i].ID == recordID {
			m.Records = append(m.Records[:i], m.Records[i+1:]...)
			return nil
		}
	}
	return budgetErrors.ErrRecordNotFound
}

type MockExpenseRepository struct {
	Records []domain.ExpenseRecord
}

func (m *MockExpenseRepository) Save(_ context.Context, record *domain.ExpenseRecord) error {
	m.Records = append(m.Records, *record)
	return nil
}

func (m *MockExpenseRepository) FindByUser(_ context.Context, userID string) ([]domain.ExpenseRecord, error) {
	var records []domain.ExpenseRecord
	for _, record := range m.Records {
		if record.UserID == userID {
			records = append(records, record)
		}
	}
	return records, nil
}

func (m *MockExpenseRepository) FindByID(_ context.Context, recordID uuid.UUID) (*domain.ExpenseRecord, error) {
	for _, record := range m.Records {
		if record.ID == recordID {
			found := record
			return &found, nil
		}
	}
	return nil, budgetErrors.ErrRecordNotFound
}

func (m *MockExpenseRepository) Update(_ context.Context, record *domain.ExpenseRecord) error {
	for i := range m.Records {
		if m.Records[i].ID == record.ID {
			m.Records[i] = *record
			return nil
		}
	}
	return budgetErrors.ErrRecordNotFound
}

func (m *MockExpenseRepository) Delete(_ context.Context, recordID uuid.UUID) error {
	for i := range m.Records {
		if m.Records[i].ID == recordID {
			m.Records = append(m.Records[:i], m.Records[i+1:]...)
			return nil
		}
	}
	return budgetErrors.ErrRecordNotFound
}

type MockGoalRepository struct {
	Goals []domain.SavingsGoal
}

func (m *MockGoalRepository) Save(_ context.Context, goal *domain.SavingsGoal) error {
	m.Goals = append(m.Goals, *goal)
	return nil
}

func (m *MockGoalRepository) FindByUser(_ context.Context, userID string) ([]domain.SavingsGoal, error) {
	var goals []domain.SavingsGoal
	for _, goal := range m.Goals {
		if goal.UserID == userID {
			goals = append(goals, goal)
		}
	}
	return goals, nil
}

func (m *MockGoalRepository) FindByID(_ context.Context, goalID uuid.UUID) (*domain.SavingsGoal, error) {
	for _, goal := range m.Goals {
		if goal.ID == goalID {
			found := goal
			return &found, nil
		}
	}
	return nil, budgetErrors.ErrRecordNotFound
}

func (m *MockGoalRepository) Update(_ context.Context, goal *domain.SavingsGoal) error {
	for i := range m.Goals {
		if m.Goals[i].ID == goal.ID {
			m.Goals[i] = *goal
			return nil
		}
	}
	return budgetErrors.ErrRecordNotFound
}

func (m *MockGoalRepository) Delete(_ context.Context, goalID uuid.UUID) error {
	for i := range m.Goals {
		if m.Goals[i].ID == goalID {
			m.Goals = append(m.Goals[:i], m.Goals[i+1:]...)
			return nil
		}
	}
	return budgetErrors.ErrRecordNotFound
}

func (m *MockGoalRepository) AddContribution(_ context.Context, goalID uuid.UUID, amount decimal.Decimal) (*domain.SavingsGoal, error) {
	for i := range m.Goals {
		if m.Goals[i].ID == goalID {
			m.Goals[i].CurrentAmount = m.Goals[i].CurrentAmount.Add(amount)
			m.Goals[i].UpdatedAt = time.Now()
			updated := m.Goals[i]
			return &updated, nil
		}
	}
	return nil, budgetErrors.ErrRecordNotFound
}
