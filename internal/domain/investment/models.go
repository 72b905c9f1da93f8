// Package investment models the investments overview: named holdings and their amounts.
package investment

import (
	"time"

	"github.com/shopspring/decimal"

	"ledgerly/internal/domain/resource"
)

type Investment struct {
	ID             int64           `json:"id"`
	UserID         int64           `json:"user_id"`
	InvestmentName string          `json:"investment_name"`
	Amount         decimal.Decimal `json:"amount"`
	CreatedAt      time.Time       `json:"created_at"`
}

type CreateParams struct {
	InvestmentName *string          `json:"investment_name"`
	Amount         *decimal.Decimal `json:"amount"` // defaults to 0
}

func (p CreateParams) Validate() error {
	if p.InvestmentName == nil || *p.InvestmentName == "" {
		return resource.MissingFields("investment_name")
	}
	return resource.CheckMoney(resource.Money("amount", p.Amount))
}

type UpdateParams struct {
	InvestmentName *string          `json:"investment_name"`
	Amount         *decimal.Decimal `json:"amount"`
}

func (p UpdateParams) Validate() error {
	if p.InvestmentName != nil && *p.InvestmentName == "" {
		return &resource.ValidationError{Fields: []string{"investment_name"}, Message: "investment_name cannot be empty"}
	}
	return resource.CheckMoney(resource.Money("amount", p.Amount))
}

func (p UpdateParams) IsEmpty() bool {
	return p.InvestmentName == nil && p.Amount == nil
}

type (
	Repository = resource.Repository[Investment, CreateParams, UpdateParams]
	Service    = resource.Service[Investment, CreateParams, UpdateParams]
)

func NewService(repo Repository) *Service {
	return resource.NewService(repo)
}
