package domain

import "github.com/shopspring/decimal"

// CategoryAmount is one entry of the per-category expense breakdown. The
// breakdown is kept as a slice so first-seen category order survives JSON
// encoding, a plain map would not preserve it.
type CategoryAmount struct {
	Category ExpenseCategory `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// FinancialSummary is derived on every read, never persisted.
type FinancialSummary struct {
	TotalMonthlyIncome decimal.Decimal  `json:"total_monthly_income"`
	TotalExpenses      decimal.Decimal  `json:"total_expenses"`
	CategoryTotals     []CategoryAmount `json:"category_totals"`
	AvailableFunds     decimal.Decimal  `json:"available_funds"`
}

// GoalProjection is the read-side pacing view of a single savings goal.
// MonthlyAmountNeeded is nil once the target date has passed: a past-due goal
// has no meaningful forward pacing figure.
type GoalProjection struct {
	ProgressPercent     decimal.Decimal  `json:"progress_percent"`
	DaysRemaining       int64            `json:"days_remaining"`
	MonthsRemaining     decimal.Decimal  `json:"months_remaining"`
	MonthlyAmountNeeded *decimal.Decimal `json:"monthly_amount_needed,omitempty"`
}

// TrendPoint is one point of the synthetic dashboard trend series. The series
// is a projection placeholder scaled from current totals, not observed history.
type TrendPoint struct {
	Period   string          `json:"period"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
}
