package resource

import "github.com/shopspring/decimal"

// Money columns are NUMERIC(14,2): magnitudes below 10^12 with at most two decimals.
const MoneyScale = 2

var moneyLimit = decimal.New(1, 12)

// MoneyField pairs a request field name with its optional value.
type MoneyField struct {
	Name  string
	Value *decimal.Decimal
}

// Money is shorthand for building a MoneyField.
func Money(name string, v *decimal.Decimal) MoneyField {
	return MoneyField{Name: name, Value: v}
}

// CheckMoney returns a *ValidationError for the first present field that would
// overflow or be rounded by a money column. Nil values are skipped.
func CheckMoney(fields ...MoneyField) error {
	for _, f := range fields {
		if f.Value == nil {
			continue
		}
		v := *f.Value
		if v.Abs().GreaterThanOrEqual(moneyLimit) {
			return &ValidationError{Fields: []string{f.Name}, Message: f.Name + " is out of range"}
		}
		if !v.Equal(v.Truncate(MoneyScale)) {
			return &ValidationError{Fields: []string{f.Name}, Message: f.Name + " must have at most 2 decimal places"}
		}
	}
	return nil
}
