package interfaces

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/mwisnie/TravelBudget/internal/budget/application"
	"github.com/mwisnie/TravelBudget/internal/budget/domain"
	budgetErrors "github.com/mwisnie/TravelBudget/internal/budget/errors"
)

// Test doubles for the handler test suites.

type MockIncomeService struct {
	Records []domain.IncomeRecord
	Err     error
}

func (m *MockIncomeService) CreateIncome(_ context.Context, record *domain.IncomeRecord) error {
	if m.Err != nil {
		return m.Err
	}
	record.ID = uuid.New()
	if err := record.Validate(); err != nil {
		return err
	}
	m.Records = append(m.Records, *record)
	return nil
}

func (m *MockIncomeService) GetUserIncomes(_ context.Context, userID string) ([]domain.IncomeRecord, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Records, nil
}

func (m *MockIncomeService) UpdateIncome(_ context.Context, userID string, record *domain.IncomeRecord) error {
	return m.Err
}

func (m *MockIncomeService) DeleteIncome(_ context.Context, userID string, recordID uuid.UUID) error {
	return m.Err
}

type MockExpenseService struct {
	Records []domain.ExpenseRecord
	Err     error
}

func (m *MockExpenseService) CreateExpense(_ context.Context, record *domain.ExpenseRecord) error {
	if m.Err != nil {
		return m.Err
	}
	record.ID = uuid.New()
	if err := record.Validate(); err != nil {
		return err
	}
	m.Records = append(m.Records, *record)
	return nil
}

func (m *MockExpenseService) GetUserExpenses(_ context.Context, userID string) ([]domain.ExpenseRecord, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Records, nil
}

func (m *MockExpenseService) UpdateExpense(_ context.Context, userID string, record *domain.ExpenseRecord) error {
	return m.Err
}

func (m *MockExpenseService) DeleteExpense(_ context.Context, userID string, recordID uuid.UUID) error {
	return m.Err
}

type MockGoalService struct {
	Goals []domain.SavingsGoal
	Err   error
}

func (m *MockGoalService) CreateGoal(_ context.Context, goal *domain.SavingsGoal) error {
	if m.Err != nil {
		return m.Err
	}
	goal.ID = uuid.New()
	if err := goal.Validate(); err != nil {
		return err
	}
	m.Goals = append(m.Goals, *goal)
	return nil
}

func (m *MockGoalService) GetUserGoals(_ context.Context, userID string) ([]domain.SavingsGoal, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Goals, nil
}

func (m *MockGoalService) UpdateGoal(_ context.Context, userID string, goal *domain.SavingsGoal) error {
	return m.Err
}

func (m *MockGoalService) DeleteGoal(_ context.Context, userID string, goalID uuid.UUID) error {
	return m.Err
}

func (m *MockGoalService) Contribute(_ context.Context, userID string, goalID uuid.UUID, amount decimal.Decimal) (*domain.SavingsGoal, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if !amount.IsPositive() {
		return nil, budgetErrors.ErrNonPositiveContribution
	}
	for i := range m.Goals {
		if m.Goals[i].ID == goalID {
			if m.Goals[i].UserID != userID {
				return nil, budgetErrors.ErrUnauthorizedAccess
			}
			m.Goals[i].CurrentAmount = m.Goals[i].CurrentAmount.Add(amount)
			updated := m.Goals[i]
			return &updated, nil
		}
	}
	return nil, budgetErrors.ErrRecordNotFound
}

type MockDashboardService struct {
	Dashboard *application.Dashboard
	Err       error
}

func (m *MockDashboardService) GetDashboard(_ context.Context, userID string, now time.Time) (*application.Dashboard, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Dashboard, nil
}
