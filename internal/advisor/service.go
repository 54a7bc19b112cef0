package advisor

import (
	"context"
	"fmt"
	"strings"

	"github.com/mwisnie/TravelBudget/internal/budget/domain"
)

// systemInstruction is fixed; the user only controls the prompt body.
const systemInstruction = "You are a pragmatic travel-budgeting coach. " +
	"Give concrete, numbered suggestions grounded in the figures you are given. " +
	"Keep the answer under 200 words."

type GeneratorInterface interface {
	Generate(ctx context.Context, systemInstruction, prompt string) (string, error)
}

type SummaryProviderInterface interface {
	GetFinancialSummary(ctx context.Context, userID string) (*domain.FinancialSummary, error)
}

type GoalProviderInterface interface {
	GetUserGoals(ctx context.Context, userID string) ([]domain.SavingsGoal, error)
}

type Service struct {
	generator GeneratorInterface
	summaries SummaryProviderInterface
	goals     GoalProviderInterface
}

func NewService(generator GeneratorInterface, summaries SummaryProviderInterface, goals GoalProviderInterface) *Service {
	return &Service{generator: generator, summaries: summaries, goals: goals}
}

// GetAdvice relays a free-form question verbatim, or builds a summary prompt
// from the user's current figures when no question is supplied. The upstream
// response text comes back unmodified.
func (s *Service) GetAdvice(ctx context.Context, userID, question string) (string, error) {
	prompt := strings.TrimSpace(question)
	if prompt == "" {
		summary, err := s.summaries.GetFinancialSummary(ctx, userID)
		if err != nil {
			return "", err
		}
		goals, err := s.goals.GetUserGoals(ctx, userID)
		if err != nil {
			return "", err
		}
		prompt = BuildSummaryPrompt(summary, len(goals))
	}
	return s.generator.Generate(ctx, systemInstruction, prompt)
}

// BuildSummaryPrompt embeds total income, total expenses, available funds,
// the per-category breakdown and the goal count into one summary sentence.
func BuildSummaryPrompt(summary *domain.FinancialSummary, goalCount int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "My monthly income is %s, my expenses total %s, leaving %s available. ",
		summary.TotalMonthlyIncome.StringFixed(2),
		summary.TotalExpenses.StringFixed(2),
		summary.AvailableFunds.StringFixed(2))

	if len(summary.CategoryTotals) > 0 {
		parts := make([]string, 0, len(summary.CategoryTotals))
		for _, entry := range summary.CategoryTotals {
			parts = append(parts, fmt.Sprintf("%s %s", entry.Category, entry.Amount.StringFixed(2)))
		}
		fmt.Fprintf(&b, "Spending by category: %s. ", strings.Join(parts, ", "))
	}

	fmt.Fprintf(&b, "I have %d active savings goal(s). ", goalCount)
	b.WriteString("How should I adjust my travel budget?")
	return b.String()
}
