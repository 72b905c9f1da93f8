// Package bankaccount models a user's bank accounts and their balances.
package bankaccount

import (
	"time"

	"github.com/shopspring/decimal"

	"ledgerly/internal/domain/resource"
)

type Account struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"user_id"`
	Name      string          `json:"name"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
}

// Summary is the name and balance projection served by GET /bank-accounts/summary.
type Summary struct {
	Name    string          `json:"name"`
	Balance decimal.Decimal `json:"balance"`
}

type CreateParams struct {
	Name    *string          `json:"name"`
	Balance *decimal.Decimal `json:"balance"` // defaults to 0
}

func (p CreateParams) Validate() error {
	if p.Name == nil || *p.Name == "" {
		return resource.MissingFields("name")
	}
	return resource.CheckMoney(resource.Money("balance", p.Balance))
}

type UpdateParams struct {
	Name    *string          `json:"name"`
	Balance *decimal.Decimal `json:"balance"`
}

func (p UpdateParams) Validate() error {
	if p.Name != nil && *p.Name == "" {
		return &resource.ValidationError{Fields: []string{"name"}, Message: "name cannot be empty"}
	}
	return resource.CheckMoney(resource.Money("balance", p.Balance))
}

func (p UpdateParams) IsEmpty() bool {
	return p.Name == nil && p.Balance == nil
}

type Repository = resource.Repository[Account, CreateParams, UpdateParams]
