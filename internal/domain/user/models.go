package user

import (
	"errors"
	"time"

	"ledgerly/internal/domain/resource"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already exists")
)

type User struct {
	ID           int64     `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// RegisterParams is the body of POST /users.
type RegisterParams struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	Email     string `json:"email"`
}

func (p RegisterParams) Validate() error {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"first_name", p.FirstName},
		{"last_name", p.LastName},
		{"username", p.Username},
		{"password", p.Password},
		{"email", p.Email},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	return resource.MissingFields(missing...)
}

// CreateUserParams is what the repository stores; the password is already hashed.
type CreateUserParams struct {
	FirstName    string
	LastName     string
	Username     string
	Email        string
	PasswordHash string
}

// UpdateParams is the body of PUT /users/{id}. Password is plaintext and rehashed.
type UpdateParams struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Username  *string `json:"username"`
	Password  *string `json:"password"`
	Email     *string `json:"email"`
}

func (p UpdateParams) IsEmpty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Username == nil && p.Password == nil && p.Email == nil
}

// Validate rejects a present but empty field; every user column is required.
func (p UpdateParams) Validate() error {
	var empty []string
	for _, f := range []struct {
		name  string
		value *string
	}{
		{"first_name", p.FirstName},
		{"last_name", p.LastName},
		{"username", p.Username},
		{"password", p.Password},
		{"email", p.Email},
	} {
		if f.value != nil && *f.value == "" {
			empty = append(empty, f.name)
		}
	}
	if len(empty) > 0 {
		return &resource.ValidationError{Fields: empty, Message: empty[0] + " cannot be empty"}
	}
	return nil
}

// UpdateUserParams carries the sparse update to the repository.
type UpdateUserParams struct {
	FirstName    *string
	LastName     *string
	Username     *string
	Email        *string
	PasswordHash *string
}
