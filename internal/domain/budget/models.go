// Package budget models per-user budgeting entries: a category and a planned amount.
package budget

import (
	"time"

	"github.com/shopspring/decimal"

	"ledgerly/internal/domain/resource"
)

type Entry struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"user_id"`
	Category  string          `json:"category"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
}

// CreateParams is the body of POST /budgeting.
type CreateParams struct {
	Category *string          `json:"category"`
	Amount   *decimal.Decimal `json:"amount"`
}

func (p CreateParams) Validate() error {
	var missing []string
	if p.Category == nil || *p.Category == "" {
		missing = append(missing, "category")
	}
	if p.Amount == nil {
		missing = append(missing, "amount")
	}
	if err := resource.MissingFields(missing...); err != nil {
		return err
	}
	return resource.CheckMoney(resource.Money("amount", p.Amount))
}

// UpdateParams is the body of PUT /budgeting/{id}. Nil fields are left unchanged.
type UpdateParams struct {
	Category *string          `json:"category"`
	Amount   *decimal.Decimal `json:"amount"`
}

func (p UpdateParams) Validate() error {
	if p.Category != nil && *p.Category == "" {
		return &resource.ValidationError{Fields: []string{"category"}, Message: "category cannot be empty"}
	}
	return resource.CheckMoney(resource.Money("amount", p.Amount))
}

func (p UpdateParams) IsEmpty() bool {
	return p.Category == nil && p.Amount == nil
}

type (
	Repository = resource.Repository[Entry, CreateParams, UpdateParams]
	Service    = resource.Service[Entry, CreateParams, UpdateParams]
)

func NewService(repo Repository) *Service {
	return resource.NewService(repo)
}
