package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"ledgerly/internal/domain/goal"
	"ledgerly/internal/domain/resource"
)

type GoalRepository struct {
	db *DB
}

func NewGoalRepository(db *DB) *GoalRepository {
	return &GoalRepository{db: db}
}

const goalColumns = `id, user_id, goal, target_amount, current_amount, due_date, created_at`

func scanGoal(s rowScanner) (*goal.Goal, error) {
	var (
		g       goal.Goal
		dueDate sql.NullTime
	)
	if err := s.Scan(&g.ID, &g.UserID, &g.Goal, &g.TargetAmount, &g.CurrentAmount, &dueDate, &g.CreatedAt); err != nil {
		return nil, err
	}
	g.DueDate = dateFromNull(dueDate)
	return &g, nil
}

func (r *GoalRepository) ListByUserID(ctx context.Context, userID int64) ([]*goal.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM financial_goals WHERE user_id = $1 ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	defer rows.Close()

	var goals []*goal.Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		goals = append(goals, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating goals: %w", err)
	}

	return goals, nil
}

func (r *GoalRepository) GetByID(ctx context.Context, userID, id int64) (*goal.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM financial_goals WHERE id = $1 AND user_id = $2`

	g, err := scanGoal(r.db.QueryRowContext(ctx, query, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, resource.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get goal: %w", err)
	}

	return g, nil
}

func (r *GoalRepository) Create(ctx context.Context, userID int64, params goal.CreateParams) (int64, error) {
	query := `
		INSERT INTO financial_goals (user_id, goal, target_amount, current_amount, due_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(
		ctx, query,
		userID, *params.Goal, *params.TargetAmount, decimalOrZero(params.CurrentAmount), dateParam(params.DueDate),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create goal: %w", err)
	}

	return id, nil
}

func (r *GoalRepository) Update(ctx context.Context, userID, id int64, params goal.UpdateParams) error {
	query := `
		UPDATE financial_goals
		SET goal = COALESCE($1, goal),
		    target_amount = COALESCE($2, target_amount),
		    current_amount = COALESCE($3, current_amount),
		    due_date = COALESCE($4, due_date)
		WHERE id = $5 AND user_id = $6
	`

	res, err := r.db.ExecContext(
		ctx, query,
		stringParam(params.Goal), decimalParam(params.TargetAmount), decimalParam(params.CurrentAmount),
		dateParam(params.DueDate), id, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update goal: %w", err)
	}

	return expectOneRow(res, resource.ErrNotFound)
}

func (r *GoalRepository) Delete(ctx context.Context, userID, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM financial_goals WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}

	return expectOneRow(res, resource.ErrNotFound)
}
