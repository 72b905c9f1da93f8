package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"ledgerly/internal/domain/investment"
	"ledgerly/internal/domain/resource"
)

type InvestmentRepository struct {
	db *DB
}

func NewInvestmentRepository(db *DB) *InvestmentRepository {
	return &InvestmentRepository{db: db}
}

func (r *InvestmentRepository) ListByUserID(ctx context.Context, userID int64) ([]*investment.Investment, error) {
	query := `
		SELECT id, user_id, investment_name, amount, created_at
		FROM investments_overview
		WHERE user_id = $1
		ORDER BY id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list investments: %w", err)
	}
	defer rows.Close()

	var out []*investment.Investment
	for rows.Next() {
		var inv investment.Investment
		if err := rows.Scan(&inv.ID, &inv.UserID, &inv.InvestmentName, &inv.Amount, &inv.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan investment: %w", err)
		}
		out = append(out, &inv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating investments: %w", err)
	}

	return out, nil
}

func (r *InvestmentRepository) GetByID(ctx context.Context, userID, id int64) (*investment.Investment, error) {
	query := `
		SELECT id, user_id, investment_name, amount, created_at
		FROM investments_overview
		WHERE id = $1 AND user_id = $2
	`

	var inv investment.Investment
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(&inv.ID, &inv.UserID, &inv.InvestmentName, &inv.Amount, &inv.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, resource.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get investment: %w", err)
	}

	return &inv, nil
}

func (r *InvestmentRepository) Create(ctx context.Context, userID int64, params investment.CreateParams) (int64, error) {
	query := `
		INSERT INTO investments_overview (user_id, investment_name, amount)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query, userID, *params.InvestmentName, decimalOrZero(params.Amount)).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create investment: %w", err)
	}

	return id, nil
}

func (r *InvestmentRepository) Update(ctx context.Context, userID, id int64, params investment.UpdateParams) error {
	query := `
		UPDATE investments_overview
		SET investment_name = COALESCE($1, investment_name),
		    amount = COALESCE($2, amount)
		WHERE id = $3 AND user_id = $4
	`

	res, err := r.db.ExecContext(ctx, query, stringParam(params.InvestmentName), decimalParam(params.Amount), id, userID)
	if err != nil {
		return fmt.Errorf("failed to update investment: %w", err)
	}

	return expectOneRow(res, resource.ErrNotFound)
}

func (r *InvestmentRepository) Delete(ctx context.Context, userID, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM investments_overview WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete investment: %w", err)
	}

	return expectOneRow(res, resource.ErrNotFound)
}
