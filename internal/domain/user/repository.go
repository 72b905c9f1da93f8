package user

import "context"

// Repository defines the interface for user data access.
// Implementations return ErrNotFound for a missing id or username
// and ErrUsernameTaken on a unique violation.
type Repository interface {
	Create(ctx context.Context, params CreateUserParams) (int64, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	List(ctx context.Context) ([]*User, error)
	Update(ctx context.Context, id int64, params UpdateUserParams) error
	Delete(ctx context.Context, id int64) error
}
