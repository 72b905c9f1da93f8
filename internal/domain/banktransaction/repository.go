package banktransaction

import (
	"context"

	"ledgerly/internal/domain/resource"
)

type Repository interface {
	resource.Repository[Transaction, CreateParams, UpdateParams]

	// ListRecentByUserID returns at most limit transactions, newest transaction_date first.
	ListRecentByUserID(ctx context.Context, userID int64, limit int) ([]*Transaction, error)
}
