package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"ledgerly/internal/domain/overview"
	"ledgerly/internal/domain/resource"
)

type OverviewRepository struct {
	db *DB
}

func NewOverviewRepository(db *DB) *OverviewRepository {
	return &OverviewRepository{db: db}
}

func (r *OverviewRepository) ListByUserID(ctx context.Context, userID int64) ([]*overview.Entry, error) {
	query := `
		SELECT id, user_id, income, expenses, savings, created_at
		FROM finance_overview
		WHERE user_id = $1
		ORDER BY id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list finance overview: %w", err)
	}
	defer rows.Close()

	var entries []*overview.Entry
	for rows.Next() {
		var e overview.Entry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Income, &e.Expenses, &e.Savings, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan finance overview: %w", err)
		}
		entries = append(entries, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating finance overview: %w", err)
	}

	return entries, nil
}

func (r *OverviewRepository) GetByID(ctx context.Context, userID, id int64) (*overview.Entry, error) {
	query := `
		SELECT id, user_id, income, expenses, savings, created_at
		FROM finance_overview
		WHERE id = $1 AND user_id = $2
	`

	var e overview.Entry
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(&e.ID, &e.UserID, &e.Income, &e.Expenses, &e.Savings, &e.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, resource.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get finance overview: %w", err)
	}

	return &e, nil
}

func (r *OverviewRepository) Create(ctx context.Context, userID int64, params overview.CreateParams) (int64, error) {
	query := `
		INSERT INTO finance_overview (user_id, income, expenses, savings)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(
		ctx, query,
		userID, decimalOrZero(params.Income), decimalOrZero(params.Expenses), decimalOrZero(params.Savings),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create finance overview: %w", err)
	}

	return id, nil
}

func (r *OverviewRepository) Update(ctx context.Context, userID, id int64, params overview.UpdateParams) error {
	query := `
		UPDATE finance_overview
		SET income = COALESCE($1, income),
		    expenses = COALESCE($2, expenses),
		    savings = COALESCE($3, savings)
		WHERE id = $4 AND user_id = $5
	`

	res, err := r.db.ExecContext(
		ctx, query,
		decimalParam(params.Income), decimalParam(params.Expenses), decimalParam(params.Savings), id, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update finance overview: %w", err)
	}

	return expectOneRow(res, resource.ErrNotFound)
}

func (r *OverviewRepository) Delete(ctx context.Context, userID, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM finance_overview WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete finance overview: %w", err)
	}

	return expectOneRow(res, resource.ErrNotFound)
}
