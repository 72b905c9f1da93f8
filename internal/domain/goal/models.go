// Package goal models financial goals: a target amount, progress towards it, and an optional due date.
package goal

import (
	"encoding/json"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"ledgerly/internal/domain/resource"
)

type Goal struct {
	ID            int64           `json:"id"`
	UserID        int64           `json:"user_id"`
	Goal          string          `json:"goal"`
	TargetAmount  decimal.Decimal `json:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	DueDate       *civil.Date     `json:"due_date"`
	CreatedAt     time.Time       `json:"created_at"`
}

// Remaining is the amount still needed to reach the target, floored at zero.
func (g Goal) Remaining() decimal.Decimal {
	r := g.TargetAmount.Sub(g.CurrentAmount)
	if r.IsNegative() {
		return decimal.Zero
	}
	return r
}

// MarshalJSON adds the computed "remaining" amount to the stored columns.
func (g Goal) MarshalJSON() ([]byte, error) {
	type columns Goal
	return json.Marshal(struct {
		columns
		Remaining decimal.Decimal `json:"remaining"`
	}{columns(g), g.Remaining()})
}

type CreateParams struct {
	Goal          *string          `json:"goal"`
	TargetAmount  *decimal.Decimal `json:"target_amount"`
	CurrentAmount *decimal.Decimal `json:"current_amount"` // defaults to 0
	DueDate       *civil.Date      `json:"due_date"`
}

func (p CreateParams) Validate() error {
	var missing []string
	if p.Goal == nil || *p.Goal == "" {
		missing = append(missing, "goal")
	}
	if p.TargetAmount == nil {
		missing = append(missing, "target_amount")
	}
	if err := resource.MissingFields(missing...); err != nil {
		return err
	}
	err := resource.CheckMoney(
		resource.Money("target_amount", p.TargetAmount),
		resource.Money("current_amount", p.CurrentAmount),
	)
	if err != nil {
		return err
	}
	return validDueDate(p.DueDate)
}

type UpdateParams struct {
	Goal          *string          `json:"goal"`
	TargetAmount  *decimal.Decimal `json:"target_amount"`
	CurrentAmount *decimal.Decimal `json:"current_amount"`
	DueDate       *civil.Date      `json:"due_date"`
}

func (p UpdateParams) Validate() error {
	if p.Goal != nil && *p.Goal == "" {
		return &resource.ValidationError{Fields: []string{"goal"}, Message: "goal cannot be empty"}
	}
	err := resource.CheckMoney(
		resource.Money("target_amount", p.TargetAmount),
		resource.Money("current_amount", p.CurrentAmount),
	)
	if err != nil {
		return err
	}
	return validDueDate(p.DueDate)
}

func (p UpdateParams) IsEmpty() bool {
	return p.Goal == nil && p.TargetAmount == nil && p.CurrentAmount == nil && p.DueDate == nil
}

func validDueDate(d *civil.Date) error {
	if d != nil && !d.IsValid() {
		return &resource.ValidationError{Fields: []string{"due_date"}, Message: "due_date is not a valid date"}
	}
	return nil
}

type (
	Repository = resource.Repository[Goal, CreateParams, UpdateParams]
	Service    = resource.Service[Goal, CreateParams, UpdateParams]
)

func NewService(repo Repository) *Service {
	return resource.NewService(repo)
}
