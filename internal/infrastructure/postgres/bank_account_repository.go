package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"ledgerly/internal/domain/bankaccount"
	"ledgerly/internal/domain/resource"
)

type BankAccountRepository struct {
	db *DB
}

func NewBankAccountRepository(db *DB) *BankAccountRepository {
	return &BankAccountRepository{db: db}
}

func (r *BankAccountRepository) ListByUserID(ctx context.Context, userID int64) ([]*bankaccount.Account, error) {
	query := `
		SELECT id, user_id, name, balance, created_at
		FROM bank_accounts
		WHERE user_id = $1
		ORDER BY id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bank accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*bankaccount.Account
	for rows.Next() {
		var a bankaccount.Account
		if err := rows.Scan(&a.ID, &a.UserID, &a.Name, &a.Balance, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan bank account: %w", err)
		}
		accounts = append(accounts, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bank accounts: %w", err)
	}

	return accounts, nil
}

func (r *BankAccountRepository) GetByID(ctx context.Context, userID, id int64) (*bankaccount.Account, error) {
	query := `
		SELECT id, user_id, name, balance, created_at
		FROM bank_accounts
		WHERE id = $1 AND user_id = $2
	`

	var a bankaccount.Account
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(&a.ID, &a.UserID, &a.Name, &a.Balance, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, resource.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bank account: %w", err)
	}

	return &a, nil
}

func (r *BankAccountRepository) Create(ctx context.Context, userID int64, params bankaccount.CreateParams) (int64, error) {
	query := `
		INSERT INTO bank_accounts (user_id, name, balance)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query, userID, *params.Name, decimalOrZero(params.Balance)).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create bank account: %w", err)
	}

	return id, nil
}

func (r *BankAccountRepository) Update(ctx context.Context, userID, id int64, params bankaccount.UpdateParams) error {
	query := `
		UPDATE bank_accounts
		SET name = COALESCE($1, name),
		    balance = COALESCE($2, balance)
		WHERE id = $3 AND user_id = $4
	`

	res, err := r.db.ExecContext(ctx, query, stringParam(params.Name), decimalParam(params.Balance), id, userID)
	if err != nil {
		return fmt.Errorf("failed to update bank account: %w", err)
	}

	return expectOneRow(res, resource.ErrNotFound)
}

func (r *BankAccountRepository) Delete(ctx context.Context, userID, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bank_accounts WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete bank account: %w", err)
	}

	return expectOneRow(res, resource.ErrNotFound)
}
