package application

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/mwisnie/TravelBudget/internal/budget/domain"
)

type IncomeProviderInterface interface {
	GetMonthlyIncome(ctx context.Context, userID string) (decimal.Decimal, error)
}

type ExpenseProviderInterface interface {
	GetExpenseTotals(ctx context.Context, userID string) (decimal.Decimal, []domain.CategoryAmount, error)
}

type GoalProviderInterface interface {
	GetUserGoals(ctx context.Context, userID string) ([]domain.SavingsGoal, error)
}

type GoalView struct {
	domain.SavingsGoal
	Projection domain.GoalProjection `json:"projection"`
}

type Dashboard struct {
	Summary           domain.FinancialSummary `json:"summary"`
	AggregateProgress decimal.Decimal         `json:"aggregate_savings_progress"`
	GoalCount         int                     `json:"goal_count"`
	Goals             []GoalView              `json:"goals"`
	Trend             []domain.TrendPoint     `json:"trend"`
}

type DashboardService struct {
	incomes  IncomeProviderInterface
	expenses ExpenseProviderInterface
	goals    GoalProviderInterface
}

func NewDashboardService(incomes IncomeProviderInterface, expenses ExpenseProviderInterface, goals GoalProviderInterface) *DashboardService {
	return &DashboardService{incomes: incomes, expenses: expenses, goals: goals}
}

// GetDashboard assembles the financial summary, the aggregate savings view
// and the trend series for one user. Everything is recomputed from current
// rows on every call.
func (s *DashboardService) GetDashboard(ctx context.Context, userID string, now time.Time) (*Dashboard, error) {
	summary, err := s.GetFinancialSummary(ctx, userID)
	if err != nil {
		return nil, err
	}

	goals, err := s.goals.GetUserGoals(ctx, userID)
	if err != nil {
		return nil, err
	}

	goalViews := make([]GoalView, 0, len(goals))
	for _, goal := range goals {
		goalViews = append(goalViews, GoalView{
			SavingsGoal: goal,
			Projection:  ProjectGoal(goal, now),
		})
	}

	return &Dashboard{
		Summary:           *summary,
		AggregateProgress: AggregateProgress(goals),
		GoalCount:         len(goals),
		Goals:             goalViews,
		Trend:             trendSeries(summary.TotalMonthlyIncome, summary.TotalExpenses, now),
	}, nil
}

func (s *DashboardService) GetFinancialSummary(ctx context.Context, userID string) (*domain.FinancialSummary, error) {
	income, err := s.incomes.GetMonthlyIncome(ctx, userID)
	if err != nil {
		return nil, err
	}
	expenseTotal, categoryTotals, err := s.expenses.GetExpenseTotals(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &domain.FinancialSummary{
		TotalMonthlyIncome: income,
		TotalExpenses:      expenseTotal,
		CategoryTotals:     categoryTotals,
		AvailableFunds:     income.Sub(expenseTotal),
	}, nil
}

var incomeTrendScale = []decimal.Decimal{
	decimal.RequireFromString("0.8"),
	decimal.RequireFromString("0.9"),
	decimal.NewFromInt(1),
}

var expenseTrendScale = []decimal.Decimal{
	decimal.RequireFromString("0.7"),
	decimal.RequireFromString("0.8"),
	decimal.NewFromInt(1),
}

// trendSeries extrapolates three successive periods from the current totals.
// No historical rows exist; this is a projection placeholder, not observed
// history.
func trendSeries(income, expenses decimal.Decimal, now time.Time) []domain.TrendPoint {
	points := make([]domain.TrendPoint, 0, len(incomeTrendScale))
	for i := range incomeTrendScale {
		monthsBack := len(incomeTrendScale) - 1 - i
		points = append(points, domain.TrendPoint{
			Period:   now.AddDate(0, -monthsBack, 0).Format("Jan"),
			Income:   income.Mul(incomeTrendScale[i]),
			Expenses: expenses.Mul(expenseTrendScale[i]),
		})
	}
	return points
}
