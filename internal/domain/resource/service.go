// Package resource holds the owner-scoped CRUD contract shared by every
// per-user collection (budgeting, goals, overviews, accounts, transactions).
//
// Every operation takes the authenticated user ID as its scoping key. Repositories
// must filter on it in the same statement that touches the row, so a record owned
// by another user behaves exactly like a record that does not exist.
package resource

import (
	"context"
	"errors"
)

// ErrNoOwner is returned when an operation is attempted without an authenticated user.
var ErrNoOwner = errors.New("valid user ID is required")

// CreateParams is implemented by each resource's create payload.
type CreateParams interface {
	// Validate returns a *ValidationError naming every missing required field.
	Validate() error
}

// UpdateParams is implemented by each resource's sparse update payload.
type UpdateParams interface {
	Validate() error
	// IsEmpty reports whether no field is set.
	IsEmpty() bool
}

// Repository is the storage side of the contract. Implementations return
// ErrNotFound when no row matches both id and userID.
type Repository[R any, C CreateParams, U UpdateParams] interface {
	ListByUserID(ctx context.Context, userID int64) ([]*R, error)
	GetByID(ctx context.Context, userID, id int64) (*R, error)
	Create(ctx context.Context, userID int64, params C) (int64, error)
	Update(ctx context.Context, userID, id int64, params U) error
	Delete(ctx context.Context, userID, id int64) error
}

// Service enforces validation and error mapping on top of a Repository.
type Service[R any, C CreateParams, U UpdateParams] struct {
	repo Repository[R, C, U]
}

func NewService[R any, C CreateParams, U UpdateParams](repo Repository[R, C, U]) *Service[R, C, U] {
	return &Service[R, C, U]{repo: repo}
}

// List returns every record owned by userID. It never returns nil on success.
func (s *Service[R, C, U]) List(ctx context.Context, userID int64) ([]*R, error) {
	if userID <= 0 {
		return nil, ErrNoOwner
	}

	records, err := s.repo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, StorageError("list", err)
	}
	if records == nil {
		records = []*R{}
	}
	return records, nil
}

// Get returns the record only if it exists and belongs to userID.
func (s *Service[R, C, U]) Get(ctx context.Context, userID, id int64) (*R, error) {
	if userID <= 0 {
		return nil, ErrNoOwner
	}
	if id <= 0 {
		return nil, ErrNotFound
	}

	record, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, mapRepoError("get", err)
	}
	if record == nil {
		return nil, ErrNotFound
	}
	return record, nil
}

// Create validates params and inserts a record owned by userID.
func (s *Service[R, C, U]) Create(ctx context.Context, userID int64, params C) (int64, error) {
	if userID <= 0 {
		return 0, ErrNoOwner
	}
	if err := params.Validate(); err != nil {
		return 0, err
	}

	id, err := s.repo.Create(ctx, userID, params)
	if err != nil {
		return 0, StorageError("create", err)
	}
	return id, nil
}

// Update applies the fields present in params to the record, if userID owns it.
func (s *Service[R, C, U]) Update(ctx context.Context, userID, id int64, params U) error {
	if userID <= 0 {
		return ErrNoOwner
	}
	if params.IsEmpty() {
		return ErrNoFieldsToUpdate
	}
	if err := params.Validate(); err != nil {
		return err
	}
	if id <= 0 {
		return ErrNotFound
	}

	if err := s.repo.Update(ctx, userID, id, params); err != nil {
		return mapRepoError("update", err)
	}
	return nil
}

// Delete removes the record, if userID owns it.
func (s *Service[R, C, U]) Delete(ctx context.Context, userID, id int64) error {
	if userID <= 0 {
		return ErrNoOwner
	}
	if id <= 0 {
		return ErrNotFound
	}

	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return mapRepoError("delete", err)
	}
	return nil
}

func mapRepoError(op string, err error) error {
	if errors.Is(err, ErrNotFound) {
		return ErrNotFound
	}
	return StorageError(op, err)
}
