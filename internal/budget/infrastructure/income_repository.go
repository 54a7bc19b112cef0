package infrastructure

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/mwisnie/TravelBudget/internal/budget/domain"
	budgetErrors "github.com/mwisnie/TravelBudget/internal/budget/errors"
)

type IncomeRepository struct {
	db *sql.DB
}

func NewIncomeRepository(db *sql.DB) *IncomeRepository {
	return &IncomeRepository{db: db}
}

func (r *IncomeRepository) Save(ctx context.Context, record *domain.IncomeRecord) error {
	query := `INSERT INTO income_records (id, user_id, name, amount, frequency, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query,
		record.ID, record.UserID, record.Name, record.Amount, record.Frequency, record.CreatedAt, record.UpdatedAt)
	return err
}

func (r *IncomeRepository) FindByUser(ctx context.Context, userID string) ([]domain.IncomeRecord, error) {
	query := `SELECT id, user_id, name, amount, frequency, created_at, updated_at
              FROM income_records WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.IncomeRecord
	for rows.Next() {
		var record domain.IncomeRecord
		if err := rows.Scan(&record.ID, &record.UserID, &record.Name, &record.Amount,
			&record.Frequency, &record.CreatedAt, &record.UpdatedAt); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func (r *IncomeRepository) FindByID(ctx context.Context, recordID uuid.UUID) (*domain.IncomeRecord, error) {
	query := `SELECT id, user_id, name, amount, frequency, created_at, updated_at
              FROM income_records WHERE id = $1`
	var record domain.IncomeRecord
	err := r.db.QueryRowContext(ctx, query, recordID).Scan(&record.ID, &record.UserID, &record.Name,
		&record.Amount, &record.Frequency, &record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, budgetErrors.ErrRecordNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *IncomeRepository) Update(ctx context.Context, record *domain.IncomeRecord) error {
	query := `UPDATE income_records SET name = $2, amount = $3, frequency = $4, updated_at = $5
              WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query,
		record.ID, record.Name, record.Amount, record.Frequency, record.UpdatedAt)
	return err
}

func (r *IncomeRepository) Delete(ctx context.Context, recordID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM income_records WHERE id = $1`, recordID)
	return err
}
