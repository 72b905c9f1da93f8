package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"ledgerly/internal/domain/budget"
	"ledgerly/internal/domain/resource"
)

type BudgetRepository struct {
	db *DB
}

func NewBudgetRepository(db *DB) *BudgetRepository {
	return &BudgetRepository{db: db}
}

func (r *BudgetRepository) ListByUserID(ctx context.Context, userID int64) ([]*budget.Entry, error) {
	query := `
		SELECT id, user_id, category, amount, created_at
		FROM budgeting
		WHERE user_id = $1
		ORDER BY id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgeting entries: %w", err)
	}
	defer rows.Close()

	var entries []*budget.Entry
	for rows.Next() {
		var e budget.Entry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Category, &e.Amount, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan budgeting entry: %w", err)
		}
		entries = append(entries, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating budgeting entries: %w", err)
	}

	return entries, nil
}

func (r *BudgetRepository) GetByID(ctx context.Context, userID, id int64) (*budget.Entry, error) {
	query := `
		SELECT id, user_id, category, amount, created_at
		FROM budgeting
		WHERE id = $1 AND user_id = $2
	`

	var e budget.Entry
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(&e.ID, &e.UserID, &e.Category, &e.Amount, &e.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, resource.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get budgeting entry: %w", err)
	}

	return &e, nil
}

func (r *BudgetRepository) Create(ctx context.Context, userID int64, params budget.CreateParams) (int64, error) {
	query := `
		INSERT INTO budgeting (user_id, category, amount)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query, userID, *params.Category, *params.Amount).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create budgeting entry: %w", err)
	}

	return id, nil
}

func (r *BudgetRepository) Update(ctx context.Context, userID, id int64, params budget.UpdateParams) error {
	query := `
		UPDATE budgeting
		SET category = COALESCE($1, category),
		    amount = COALESCE($2, amount)
		WHERE id = $3 AND user_id = $4
	`

	res, err := r.db.ExecContext(ctx, query, stringParam(params.Category), decimalParam(params.Amount), id, userID)
	if err != nil {
		return fmt.Errorf("failed to update budgeting entry: %w", err)
	}

	return expectOneRow(res, resource.ErrNotFound)
}

func (r *BudgetRepository) Delete(ctx context.Context, userID, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM budgeting WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete budgeting entry: %w", err)
	}

	return expectOneRow(res, resource.ErrNotFound)
}
