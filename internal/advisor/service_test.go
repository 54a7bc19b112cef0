package advisor

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/mwisnie/TravelBudget/internal/budget/domain"
)

type mockGenerator struct {
	lastSystem string
	lastPrompt string
	response   string
	err        error
}

func (m *mockGenerator) Generate(_ context.Context, systemInstruction, prompt string) (string, error) {
	m.lastSystem = systemInstruction
	m.lastPrompt = prompt
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

type mockSummaryProvider struct {
	summary *domain.FinancialSummary
}

func (m *mockSummaryProvider) GetFinancialSummary(_ context.Context, userID string) (*domain.FinancialSummary, error) {
	return m.summary, nil
}

type mockGoalProvider struct {
	goals []domain.SavingsGoal
}

func (m *mockGoalProvider) GetUserGoals(_ context.Context, userID string) ([]domain.SavingsGoal, error) {
	return m.goals, nil
}

func newAdviceFixture() (*Service, *mockGenerator) {
	generator := &mockGenerator{response: "Spend less on shopping."}
	summaries := &mockSummaryProvider{summary: &domain.FinancialSummary{
		TotalMonthlyIncome: decimal.NewFromInt(2000),
		TotalExpenses:      decimal.RequireFromString("750.50"),
		CategoryTotals: []domain.CategoryAmount{
			{Category: domain.CategoryFood, Amount: decimal.RequireFromString("250.50")},
			{Category: domain.CategoryShopping, Amount: decimal.NewFromInt(500)},
		},
		AvailableFunds: decimal.RequireFromString("1249.50"),
	}}
	goals := &mockGoalProvider{goals: []domain.SavingsGoal{{Name: "Japan trip"}, {Name: "Road trip"}}}
	return NewService(generator, summaries, goals), generator
}

func TestGetAdvice_QuestionUsedVerbatim(t *testing.T) {
	service, generator := newAdviceFixture()

	text, err := service.GetAdvice(context.Background(), "user-1", "Is my food budget too high?")
	assert.NoError(t, err)
	assert.Equal(t, "Spend less on shopping.", text)
	assert.Equal(t, "Is my food budget too high?", generator.lastPrompt)
	assert.Equal(t, systemInstruction, generator.lastSystem)
}

func TestGetAdvice_SummaryPromptWhenNoQuestion(t *testing.T) {
	service, generator := newAdviceFixture()

	_, err := service.GetAdvice(context.Background(), "user-1", "  ")
	assert.NoError(t, err)

	assert.Contains(t, generator.lastPrompt, "2000.00")
	assert.Contains(t, generator.lastPrompt, "750.50")
	assert.Contains(t, generator.lastPrompt, "1249.50")
	assert.Contains(t, generator.lastPrompt, "food 250.50")
	assert.Contains(t, generator.lastPrompt, "shopping 500.00")
	assert.Contains(t, generator.lastPrompt, "2 active savings goal(s)")
}

func TestBuildSummaryPrompt_NoCategories(t *testing.T) {
	prompt := BuildSummaryPrompt(&domain.FinancialSummary{
		TotalMonthlyIncome: decimal.Zero,
		TotalExpenses:      decimal.Zero,
		AvailableFunds:     decimal.Zero,
	}, 0)

	assert.NotContains(t, prompt, "Spending by category")
	assert.Contains(t, prompt, "0 active savings goal(s)")
}
