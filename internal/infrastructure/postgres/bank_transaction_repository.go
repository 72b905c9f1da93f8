package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"cloud.google.com/go/civil"

	"ledgerly/internal/domain/banktransaction"
	"ledgerly/internal/domain/resource"
)

type BankTransactionRepository struct {
	db *DB
}

func NewBankTransactionRepository(db *DB) *BankTransactionRepository {
	return &BankTransactionRepository{db: db}
}

const bankTransactionColumns = `id, user_id, transaction_date, description, amount, transaction_type, category, created_at`

func scanBankTransaction(s rowScanner) (*banktransaction.Transaction, error) {
	var (
		t        banktransaction.Transaction
		date     sql.NullTime
		category sql.NullString
	)
	err := s.Scan(&t.ID, &t.UserID, &date, &t.Description, &t.Amount, &t.TransactionType, &category, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	if date.Valid {
		t.TransactionDate = civil.DateOf(date.Time)
	}
	t.Category = stringFromNull(category)
	return &t, nil
}

func (r *BankTransactionRepository) list(ctx context.Context, query string, args ...any) ([]*banktransaction.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list bank transactions: %w", err)
	}
	defer rows.Close()

	var txs []*banktransaction.Transaction
	for rows.Next() {
		t, err := scanBankTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bank transaction: %w", err)
		}
		txs = append(txs, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bank transactions: %w", err)
	}

	return txs, nil
}

func (r *BankTransactionRepository) ListByUserID(ctx context.Context, userID int64) ([]*banktransaction.Transaction, error) {
	query := `SELECT ` + bankTransactionColumns + `
		FROM bank_transactions
		WHERE user_id = $1
		ORDER BY transaction_date DESC, id DESC`

	return r.list(ctx, query, userID)
}

func (r *BankTransactionRepository) ListRecentByUserID(ctx context.Context, userID int64, limit int) ([]*banktransaction.Transaction, error) {
	query := `SELECT ` + bankTransactionColumns + `
		FROM bank_transactions
		WHERE user_id = $1
		ORDER BY transaction_date DESC, id DESC
		LIMIT $2`

	return r.list(ctx, query, userID, limit)
}

func (r *BankTransactionRepository) GetByID(ctx context.Context, userID, id int64) (*banktransaction.Transaction, error) {
	query := `SELECT ` + bankTransactionColumns + ` FROM bank_transactions WHERE id = $1 AND user_id = $2`

	t, err := scanBankTransaction(r.db.QueryRowContext(ctx, query, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, resource.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bank transaction: %w", err)
	}

	return t, nil
}

func (r *BankTransactionRepository) Create(ctx context.Context, userID int64, params banktransaction.CreateParams) (int64, error) {
	query := `
		INSERT INTO bank_transactions (user_id, transaction_date, description, amount, transaction_type, category)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(
		ctx, query,
		userID, dateParam(params.TransactionDate), *params.Description, *params.Amount,
		*params.TransactionType, stringParam(params.Category),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create bank transaction: %w", err)
	}

	return id, nil
}

func (r *BankTransactionRepository) Update(ctx context.Context, userID, id int64, params banktransaction.UpdateParams) error {
	query := `
		UPDATE bank_transactions
		SET transaction_date = COALESCE($1, transaction_date),
		    description = COALESCE($2, description),
		    amount = COALESCE($3, amount),
		    transaction_type = COALESCE($4, transaction_type),
		    category = COALESCE($5, category)
		WHERE id = $6 AND user_id = $7
	`

	res, err := r.db.ExecContext(
		ctx, query,
		dateParam(params.TransactionDate), stringParam(params.Description), decimalParam(params.Amount),
		stringParam(params.TransactionType), stringParam(params.Category), id, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update bank transaction: %w", err)
	}

	return expectOneRow(res, resource.ErrNotFound)
}

func (r *BankTransactionRepository) Delete(ctx context.Context, userID, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bank_transactions WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete bank transaction: %w", err)
	}

	return expectOneRow(res, resource.ErrNotFound)
}
