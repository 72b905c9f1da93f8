// Package banktransaction models dated debits and credits on a user's bank accounts.
package banktransaction

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"ledgerly/internal/domain/resource"
)

// RecentLimit caps the number of transactions returned by Recent.
const RecentLimit = 5

type Transaction struct {
	ID              int64           `json:"id"`
	UserID          int64           `json:"user_id"`
	TransactionDate civil.Date      `json:"transaction_date"`
	Description     string          `json:"description"`
	Amount          decimal.Decimal `json:"amount"`
	TransactionType string          `json:"transaction_type"`
	Category        *string         `json:"category"`
	CreatedAt       time.Time       `json:"created_at"`
}

type CreateParams struct {
	TransactionDate *civil.Date      `json:"transaction_date"`
	Description     *string          `json:"description"`
	Amount          *decimal.Decimal `json:"amount"`
	TransactionType *string          `json:"transaction_type"`
	Category        *string          `json:"category"`
}

func (p CreateParams) Validate() error {
	var missing []string
	if p.TransactionDate == nil || !p.TransactionDate.IsValid() {
		missing = append(missing, "transaction_date")
	}
	if p.Description == nil || *p.Description == "" {
		missing = append(missing, "description")
	}
	if p.Amount == nil {
		missing = append(missing, "amount")
	}
	if p.TransactionType == nil || *p.TransactionType == "" {
		missing = append(missing, "transaction_type")
	}
	if err := resource.MissingFields(missing...); err != nil {
		return err
	}
	return resource.CheckMoney(resource.Money("amount", p.Amount))
}

type UpdateParams struct {
	TransactionDate *civil.Date      `json:"transaction_date"`
	Description     *string          `json:"description"`
	Amount          *decimal.Decimal `json:"amount"`
	TransactionType *string          `json:"transaction_type"`
	Category        *string          `json:"category"`
}

func (p UpdateParams) Validate() error {
	var empty []string
	if p.TransactionDate != nil && !p.TransactionDate.IsValid() {
		return &resource.ValidationError{Fields: []string{"transaction_date"}, Message: "transaction_date is not a valid date"}
	}
	if p.Description != nil && *p.Description == "" {
		empty = append(empty, "description")
	}
	if p.TransactionType != nil && *p.TransactionType == "" {
		empty = append(empty, "transaction_type")
	}
	if len(empty) > 0 {
		return &resource.ValidationError{Fields: empty, Message: empty[0] + " cannot be empty"}
	}
	return resource.CheckMoney(resource.Money("amount", p.Amount))
}

func (p UpdateParams) IsEmpty() bool {
	return p.TransactionDate == nil && p.Description == nil && p.Amount == nil &&
		p.TransactionType == nil && p.Category == nil
}
