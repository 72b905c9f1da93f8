package user

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"ledgerly/internal/domain/resource"
	"ledgerly/internal/shared/auth"
)

// TokenIssuer mints a session token for an authenticated user.
type TokenIssuer interface {
	Generate(userID int64) (string, error)
}

type Service struct {
	repo   Repository
	tokens TokenIssuer
}

func NewService(repo Repository, tokens TokenIssuer) *Service {
	return &Service{repo: repo, tokens: tokens}
}

// Register validates params, hashes the password and stores the user.
func (s *Service) Register(ctx context.Context, params RegisterParams) (int64, error) {
	if err := params.Validate(); err != nil {
		return 0, err
	}

	hash, err := hashPassword(params.Password)
	if err != nil {
		return 0, err
	}

	id, err := s.repo.Create(ctx, CreateUserParams{
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		Username:     params.Username,
		Email:        params.Email,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			return 0, ErrUsernameTaken
		}
		return 0, resource.StorageError("create user", err)
	}
	return id, nil
}

// Login exchanges a username and password for a session token. An unknown
// username and a wrong password both return ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", ErrInvalidCredentials
	}

	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			auth.VerifyAgainstDummy(password)
			return "", ErrInvalidCredentials
		}
		return "", resource.StorageError("get user", err)
	}

	if err := auth.VerifyPassword(u.PasswordHash, password); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.tokens.Generate(u.ID)
}

func (s *Service) Get(ctx context.Context, id int64) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError("get user", err)
	}
	return u, nil
}

func (s *Service) List(ctx context.Context) ([]*User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, resource.StorageError("list users", err)
	}
	if users == nil {
		users = []*User{}
	}
	return users, nil
}

// Update applies the fields present in params. A new password is rehashed.
func (s *Service) Update(ctx context.Context, id int64, params UpdateParams) error {
	if params.IsEmpty() {
		return resource.ErrNoFieldsToUpdate
	}
	if err := params.Validate(); err != nil {
		return err
	}

	upd := UpdateUserParams{
		FirstName: params.FirstName,
		LastName:  params.LastName,
		Username:  params.Username,
		Email:     params.Email,
	}
	if params.Password != nil {
		hash, err := hashPassword(*params.Password)
		if err != nil {
			return err
		}
		upd.PasswordHash = &hash
	}

	if err := s.repo.Update(ctx, id, upd); err != nil {
		return mapRepoError("update user", err)
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepoError("delete user", err)
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := auth.HashPassword(password)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", &resource.ValidationError{Fields: []string{"password"}, Message: "password is too long"}
	}
	return hash, err
}

func mapRepoError(op string, err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return ErrNotFound
	case errors.Is(err, ErrUsernameTaken):
		return ErrUsernameTaken
	default:
		return resource.StorageError(op, err)
	}
}
