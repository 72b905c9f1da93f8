package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"testing"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgerly/internal/domain/bankaccount"
	"ledgerly/internal/domain/banktransaction"
	"ledgerly/internal/domain/budget"
	"ledgerly/internal/domain/goal"
	"ledgerly/internal/domain/investment"
	"ledgerly/internal/domain/overview"
	"ledgerly/internal/domain/resource"
	"ledgerly/internal/domain/user"
)

// statement is one query the repositories sent to the driver.
type statement struct {
	query string
	args  []any
}

// recorder is a database/sql connector that records every statement and
// answers with no rows and a fixed RowsAffected.
type recorder struct {
	mu           sync.Mutex
	stmts        []statement
	rowsAffected int64
}

func newRecordingDB(t *testing.T, rowsAffected int64) (*DB, *recorder) {
	t.Helper()
	rec := &recorder{rowsAffected: rowsAffected}
	pool := sql.OpenDB(rec)
	t.Cleanup(func() { pool.Close() })
	return &DB{pool}, rec
}

func (r *recorder) last(t *testing.T) statement {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	require.NotEmpty(t, r.stmts, "no statement was executed")
	return r.stmts[len(r.stmts)-1]
}

func (r *recorder) record(query string, args []driver.NamedValue) {
	vals := make([]any, len(args))
	for i, a := range args {
		vals[i] = a.Value
	}
	r.mu.Lock()
	r.stmts = append(r.stmts, statement{query: query, args: vals})
	r.mu.Unlock()
}

func (r *recorder) Connect(context.Context) (driver.Conn, error) { return &recordingConn{rec: r}, nil }
func (r *recorder) Driver() driver.Driver                        { return nil }

type recordingConn struct{ rec *recorder }

func (c *recordingConn) Prepare(string) (driver.Stmt, error) { return nil, errors.New("prepare unsupported") }
func (c *recordingConn) Close() error                        { return nil }
func (c *recordingConn) Begin() (driver.Tx, error)           { return nil, errors.New("tx unsupported") }

func (c *recordingConn) ExecContext(_ context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	c.rec.record(query, args)
	return driver.RowsAffected(c.rec.rowsAffected), nil
}

func (c *recordingConn) QueryContext(_ context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	c.rec.record(query, args)
	return emptyRows{}, nil
}

type emptyRows struct{}

func (emptyRows) Columns() []string         { return nil }
func (emptyRows) Close() error              { return nil }
func (emptyRows) Next([]driver.Value) error { return io.EOF }

var ownerPredicate = regexp.MustCompile(`WHERE id = \$(\d+) AND user_id = \$(\d+)`)

// assertOwnerScoped checks that stmt filters on both id and owner and binds
// them to the expected values.
func assertOwnerScoped(t *testing.T, stmt statement, id, userID int64) {
	t.Helper()
	m := ownerPredicate.FindStringSubmatch(stmt.query)
	require.NotNil(t, m, "missing id/owner predicate in %q", stmt.query)

	idPos, _ := strconv.Atoi(m[1])
	ownerPos, _ := strconv.Atoi(m[2])
	require.LessOrEqual(t, idPos, len(stmt.args))
	require.LessOrEqual(t, ownerPos, len(stmt.args))
	assert.Equal(t, id, stmt.args[idPos-1], "id placeholder")
	assert.Equal(t, userID, stmt.args[ownerPos-1], "owner placeholder")
}

type ownerScopedRepo interface {
	get(ctx context.Context, userID, id int64) error
	update(ctx context.Context, userID, id int64) error
	del(ctx context.Context, userID, id int64) error
	list(ctx context.Context, userID int64) error
}

type repoAdapter[R any, C resource.CreateParams, U resource.UpdateParams] struct {
	repo resource.Repository[R, C, U]
	upd  U
}

func (a repoAdapter[R, C, U]) get(ctx context.Context, userID, id int64) error {
	_, err := a.repo.GetByID(ctx, userID, id)
	return err
}

func (a repoAdapter[R, C, U]) update(ctx context.Context, userID, id int64) error {
	return a.repo.Update(ctx, userID, id, a.upd)
}

func (a repoAdapter[R, C, U]) del(ctx context.Context, userID, id int64) error {
	return a.repo.Delete(ctx, userID, id)
}

func (a repoAdapter[R, C, U]) list(ctx context.Context, userID int64) error {
	_, err := a.repo.ListByUserID(ctx, userID)
	return err
}

func strp(s string) *string { return &s }

func decp(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func ownerScopedRepos(db *DB) map[string]ownerScopedRepo {
	return map[string]ownerScopedRepo{
		"budgeting": repoAdapter[budget.Entry, budget.CreateParams, budget.UpdateParams]{
			NewBudgetRepository(db), budget.UpdateParams{Amount: decp("10")}},
		"financial_goals": repoAdapter[goal.Goal, goal.CreateParams, goal.UpdateParams]{
			NewGoalRepository(db), goal.UpdateParams{Goal: strp("Car")}},
		"finance_overview": repoAdapter[overview.Entry, overview.CreateParams, overview.UpdateParams]{
			NewOverviewRepository(db), overview.UpdateParams{Income: decp("1")}},
		"investments_overview": repoAdapter[investment.Investment, investment.CreateParams, investment.UpdateParams]{
			NewInvestmentRepository(db), investment.UpdateParams{Amount: decp("1")}},
		"bank_accounts": repoAdapter[bankaccount.Account, bankaccount.CreateParams, bankaccount.UpdateParams]{
			NewBankAccountRepository(db), bankaccount.UpdateParams{Name: strp("Checking")}},
		"bank_transactions": repoAdapter[banktransaction.Transaction, banktransaction.CreateParams, banktransaction.UpdateParams]{
			NewBankTransactionRepository(db), banktransaction.UpdateParams{Description: strp("Rent")}},
	}
}

func TestRepositories_OwnerScopedStatements(t *testing.T) {
	const userID, id = int64(7), int64(42)
	ctx := context.Background()

	db, rec := newRecordingDB(t, 1)
	for name, repo := range ownerScopedRepos(db) {
		t.Run(name, func(t *testing.T) {
			err := repo.get(ctx, userID, id)
			assert.ErrorIs(t, err, resource.ErrNotFound, "no row must read as not found")
			assertOwnerScoped(t, rec.last(t), id, userID)

			require.NoError(t, repo.update(ctx, userID, id))
			stmt := rec.last(t)
			assert.True(t, strings.HasPrefix(strings.TrimSpace(stmt.query), "UPDATE"), stmt.query)
			assertOwnerScoped(t, stmt, id, userID)

			require.NoError(t, repo.del(ctx, userID, id))
			stmt = rec.last(t)
			assert.True(t, strings.HasPrefix(strings.TrimSpace(stmt.query), "DELETE"), stmt.query)
			assertOwnerScoped(t, stmt, id, userID)

			require.NoError(t, repo.list(ctx, userID))
			stmt = rec.last(t)
			assert.Contains(t, stmt.query, "WHERE user_id = $1")
			assert.Equal(t, []any{userID}, stmt.args)
		})
	}
}

func TestRepositories_ZeroRowsAffectedIsNotFound(t *testing.T) {
	ctx := context.Background()

	db, _ := newRecordingDB(t, 0)
	for name, repo := range ownerScopedRepos(db) {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, repo.update(ctx, 1, 2), resource.ErrNotFound)
			assert.ErrorIs(t, repo.del(ctx, 1, 2), resource.ErrNotFound)
		})
	}
}

func TestBankTransactionRepository_ListRecentOrdering(t *testing.T) {
	db, rec := newRecordingDB(t, 0)
	repo := NewBankTransactionRepository(db)

	txs, err := repo.ListRecentByUserID(context.Background(), 3, banktransaction.RecentLimit)
	require.NoError(t, err)
	assert.Empty(t, txs)

	stmt := rec.last(t)
	assert.Contains(t, stmt.query, "WHERE user_id = $1")
	assert.Contains(t, stmt.query, "ORDER BY transaction_date DESC, id DESC")
	assert.Contains(t, stmt.query, "LIMIT $2")
	assert.Equal(t, []any{int64(3), int64(banktransaction.RecentLimit)}, stmt.args)
}

func TestBankTransactionRepository_CreateBindsOwnerFirst(t *testing.T) {
	db, rec := newRecordingDB(t, 0)
	repo := NewBankTransactionRepository(db)

	date := civil.Date{Year: 2024, Month: 12, Day: 8}
	_, err := repo.Create(context.Background(), 9, banktransaction.CreateParams{
		TransactionDate: &date,
		Description:     strp("Monthly Rent"),
		Amount:          decp("1200"),
		TransactionType: strp("debit"),
	})
	// No row comes back from RETURNING id.
	require.Error(t, err)

	stmt := rec.last(t)
	assert.Contains(t, stmt.query, "INSERT INTO bank_transactions (user_id,")
	require.NotEmpty(t, stmt.args)
	assert.Equal(t, int64(9), stmt.args[0])
	assert.Contains(t, stmt.args, "2024-12-08")
}

func TestUserRepository_ReplacePassword(t *testing.T) {
	tests := []struct {
		name         string
		rowsAffected int64
		want         bool
	}{
		{"unchanged password is replaced", 1, true},
		{"concurrent change is left alone", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, rec := newRecordingDB(t, tt.rowsAffected)

			ok, err := NewUserRepository(db).ReplacePassword(context.Background(), 5, "plain", "$2a$10$hash")
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)

			stmt := rec.last(t)
			assert.Contains(t, stmt.query, "WHERE id = $2 AND password = $3")
			assert.Equal(t, []any{"$2a$10$hash", int64(5), "plain"}, stmt.args)
		})
	}
}

func TestUserRepository_UpdateMissingUser(t *testing.T) {
	db, _ := newRecordingDB(t, 0)

	err := NewUserRepository(db).Update(context.Background(), 1, user.UpdateUserParams{Username: strp("taken")})
	assert.ErrorIs(t, err, user.ErrNotFound)
}
