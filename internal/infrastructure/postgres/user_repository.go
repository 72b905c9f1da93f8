package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"ledgerly/internal/domain/user"
)

type UserRepository struct {
	db *DB
}

func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, first_name, last_name, username, email, password, created_at`

func scanUser(s rowScanner) (*user.User, error) {
	var u user.User
	if err := s.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, params user.CreateUserParams) (int64, error) {
	query := `
		INSERT INTO users (first_name, last_name, username, password, email)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(
		ctx, query,
		params.FirstName, params.LastName, params.Username, params.PasswordHash, params.Email,
	).Scan(&id)
	if isUniqueViolation(err) {
		return 0, user.ErrUsernameTaken
	}
	if err != nil {
		return 0, fmt.Errorf("failed to create user: %w", err)
	}

	return id, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, user.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return u, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, user.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}

	return u, nil
}

func (r *UserRepository) List(ctx context.Context) ([]*user.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return users, nil
}

func (r *UserRepository) Update(ctx context.Context, id int64, params user.UpdateUserParams) error {
	query := `
		UPDATE users
		SET first_name = COALESCE($1, first_name),
		    last_name = COALESCE($2, last_name),
		    username = COALESCE($3, username),
		    email = COALESCE($4, email),
		    password = COALESCE($5, password)
		WHERE id = $6
	`

	res, err := r.db.ExecContext(
		ctx, query,
		stringParam(params.FirstName), stringParam(params.LastName), stringParam(params.Username),
		stringParam(params.Email), stringParam(params.PasswordHash), id,
	)
	if isUniqueViolation(err) {
		return user.ErrUsernameTaken
	}
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	return expectOneRow(res, user.ErrNotFound)
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return expectOneRow(res, user.ErrNotFound)
}

// ListPasswords returns every user id with its stored password column, for the
// admin rehash command.
func (r *UserRepository) ListPasswords(ctx context.Context) (map[int64]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, password FROM users`)
	if err != nil {
		return nil, fmt.Errorf("failed to list passwords: %w", err)
	}
	defer rows.Close()

	out := make(map[int64]string)
	for rows.Next() {
		var (
			id int64
			pw string
		)
		if err := rows.Scan(&id, &pw); err != nil {
			return nil, fmt.Errorf("failed to scan password: %w", err)
		}
		out[id] = pw
	}

	return out, rows.Err()
}

// ReplacePassword swaps the stored password for newHash only if it still equals
// old. It reports false when the row is gone or the password changed meanwhile.
func (r *UserRepository) ReplacePassword(ctx context.Context, id int64, old, newHash string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET password = $1 WHERE id = $2 AND password = $3`,
		newHash, id, old,
	)
	if err != nil {
		return false, fmt.Errorf("failed to replace password: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
