package infrastructure

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/mwisnie/TravelBudget/internal/budget/domain"
	budgetErrors "github.com/mwisnie/TravelBudget/internal/budget/errors"
)

type GoalRepository struct {
	db *sql.DB
}

func NewGoalRepository(db *sql.DB) *GoalRepository {
	return &GoalRepository{db: db}
}

func (r *GoalRepository) Save(ctx context.Context, goal *domain.SavingsGoal) error {
	query := `INSERT INTO savings_goals (id, user_id, name, target_amount, current_amount, target_date, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.ExecContext(ctx, query,
		goal.ID, goal.UserID, goal.Name, goal.TargetAmount, goal.CurrentAmount, goal.TargetDate, goal.CreatedAt, goal.UpdatedAt)
	return err
}

func (r *GoalRepository) FindByUser(ctx context.Context, userID string) ([]domain.SavingsGoal, error) {
	query := `SELECT id, user_id, name, target_amount, current_amount, target_date, created_at, updated_at
              FROM savings_goals WHERE user_id = $1 ORDER BY target_date ASC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []domain.SavingsGoal
	for rows.Next() {
		var goal domain.SavingsGoal
		if err := rows.Scan(&goal.ID, &goal.UserID, &goal.Name, &goal.TargetAmount,
			&goal.CurrentAmount, &goal.TargetDate, &goal.CreatedAt, &goal.UpdatedAt); err != nil {
			return nil, err
		}
		goals = append(goals, goal)
	}
	return goals, rows.Err()
}

func (r *GoalRepository) FindByID(ctx context.Context, goalID uuid.UUID) (*domain.SavingsGoal, error) {
	query := `SELECT id, user_id, name, target_amount, current_amount, target_date, created_at, updated_at
              FROM savings_goals WHERE id = $1`
	var goal domain.SavingsGoal
	err := r.db.QueryRowContext(ctx, query, goalID).Scan(&goal.ID, &goal.UserID, &goal.Name,
		&goal.TargetAmount, &goal.CurrentAmount, &goal.TargetDate, &goal.CreatedAt, &goal.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, budgetErrors.ErrRecordNotFound
		}
		return nil, err
	}
	return &goal, nil
}

func (r *GoalRepository) Update(ctx context.Context, goal *domain.SavingsGoal) error {
	query := `UPDATE savings_goals SET name = $2, target_amount = $3, current_amount = $4, target_date = $5, updated_at = $6
              WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query,
		goal.ID, goal.Name, goal.TargetAmount, goal.CurrentAmount, goal.TargetDate, goal.UpdatedAt)
	return err
}

func (r *GoalRepository) Delete(ctx context.Context, goalID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM savings_goals WHERE id = $1`, goalID)
	return err
}

// AddContribution applies one top-up as a single atomic update of the stored
// current amount and returns the updated row.
func (r *GoalRepository) AddContribution(ctx context.Context, goalID uuid.UUID, amount decimal.Decimal) (*domain.SavingsGoal, error) {
	query := `UPDATE savings_goals SET current_amount = current_amount + $2, updated_at = NOW()
              WHERE id = $1
              RETURNING id, user_id, name, target_amount, current_amount, target_date, created_at, updated_at`
	var goal domain.SavingsGoal
	err := r.db.QueryRowContext(ctx, query, goalID, amount).Scan(&goal.ID, &goal.UserID, &goal.Name,
		&goal.TargetAmount, &goal.CurrentAmount, &goal.TargetDate, &goal.CreatedAt, &goal.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, budgetErrors.ErrRecordNotFound
		}
		return nil, err
	}
	return &goal, nil
}
