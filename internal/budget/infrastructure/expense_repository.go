package infrastructure

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/mwisnie/TravelBudget/internal/budget/domain"
	budgetErrors "github.com/mwisnie/TravelBudget/internal/budget/errors"
)

type ExpenseRepository struct {
	db *sql.DB
}

func NewExpenseRepository(db *sql.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

func (r *ExpenseRepository) Save(ctx context.Context, record *domain.ExpenseRecord) error {
	query := `INSERT INTO expense_records (id, user_id, description, amount, category, date, created_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query,
		record.ID, record.UserID, record.Description, record.Amount, record.Category, record.Date, record.CreatedAt)
	return err
}

func (r *ExpenseRepository) FindByUser(ctx context.Context, userID string) ([]domain.ExpenseRecord, error) {
	query := `SELECT id, user_id, description, amount, category, date, created_at
              FROM expense_records WHERE user_id = $1 ORDER BY date DESC, created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.ExpenseRecord
	for rows.Next() {
		var record domain.ExpenseRecord
		if err := rows.Scan(&record.ID, &record.UserID, &record.Description, &record.Amount,
			&record.Category, &record.Date, &record.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func (r *ExpenseRepository) FindByID(ctx context.Context, recordID uuid.UUID) (*domain.ExpenseRecord, error) {
	query := `SELECT id, user_id, description, amount, category, date, created_at
              FROM expense_records WHERE id = $1`
	var record domain.ExpenseRecord
	err := r.db.QueryRowContext(ctx, query, recordID).Scan(&record.ID, &record.UserID, &record.Description,
		&record.Amount, &record.Category, &record.Date, &record.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, budgetErrors.ErrRecordNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *ExpenseRepository) Update(ctx context.Context, record *domain.ExpenseRecord) error {
	query := `UPDATE expense_records SET description = $2, amount = $3, category = $4, date = $5
              WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query,
		record.ID, record.Description, record.Amount, record.Category, record.Date)
	return err
}

func (r *ExpenseRepository) Delete(ctx context.Context, recordID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM expense_records WHERE id = $1`, recordID)
	return err
}
