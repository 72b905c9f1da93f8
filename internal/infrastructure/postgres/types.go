package postgres

import (
	"database/sql"
	"errors"

	"cloud.google.com/go/civil"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

const uniqueViolation = "23505"

// rowScanner is satisfied by *sql.Rows and the row returned from DB.QueryRowContext.
type rowScanner interface {
	Scan(dest ...any) error
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// dateParam converts an optional civil.Date to a driver value; nil stays NULL.
func dateParam(d *civil.Date) any {
	if d == nil {
		return nil
	}
	return d.String()
}

// decimalParam converts an optional decimal to a driver value; nil stays NULL.
func decimalParam(d *decimal.Decimal) any {
	if d == nil {
		return nil
	}
	return *d
}

func decimalOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

// stringParam converts an optional string to a driver value; nil stays NULL.
func stringParam(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func dateFromNull(t sql.NullTime) *civil.Date {
	if !t.Valid {
		return nil
	}
	d := civil.DateOf(t.Time)
	return &d
}

func stringFromNull(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

// expectOneRow maps a zero RowsAffected to notFound.
func expectOneRow(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}
