// Package overview models finance-overview snapshots of income, expenses and savings.
package overview

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"ledgerly/internal/domain/resource"
)

type Entry struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"user_id"`
	Income    decimal.Decimal `json:"income"`
	Expenses  decimal.Decimal `json:"expenses"`
	Savings   decimal.Decimal `json:"savings"`
	CreatedAt time.Time       `json:"created_at"`
}

// Net is income minus expenses.
func (e Entry) Net() decimal.Decimal {
	return e.Income.Sub(e.Expenses)
}

// MarshalJSON adds the computed "net" amount to the stored columns.
func (e Entry) MarshalJSON() ([]byte, error) {
	type columns Entry
	return json.Marshal(struct {
		columns
		Net decimal.Decimal `json:"net"`
	}{columns(e), e.Net()})
}

// CreateParams has no required fields; absent amounts are stored as 0.
type CreateParams struct {
	Income   *decimal.Decimal `json:"income"`
	Expenses *decimal.Decimal `json:"expenses"`
	Savings  *decimal.Decimal `json:"savings"`
}

func (p CreateParams) Validate() error {
	return resource.CheckMoney(
		resource.Money("income", p.Income),
		resource.Money("expenses", p.Expenses),
		resource.Money("savings", p.Savings),
	)
}

type UpdateParams struct {
	Income   *decimal.Decimal `json:"income"`
	Expenses *decimal.Decimal `json:"expenses"`
	Savings  *decimal.Decimal `json:"savings"`
}

func (p UpdateParams) Validate() error {
	return resource.CheckMoney(
		resource.Money("income", p.Income),
		resource.Money("expenses", p.Expenses),
		resource.Money("savings", p.Savings),
	)
}

func (p UpdateParams) IsEmpty() bool {
	return p.Income == nil && p.Expenses == nil && p.Savings == nil
}

type (
	Repository = resource.Repository[Entry, CreateParams, UpdateParams]
	Service    = resource.Service[Entry, CreateParams, UpdateParams]
)

func NewService(repo Repository) *Service {
	return resource.NewService(repo)
}
