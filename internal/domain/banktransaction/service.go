package banktransaction

import (
	"context"
	"sort"

	"ledgerly/internal/domain/resource"
)

type Service struct {
	*resource.Service[Transaction, CreateParams, UpdateParams]
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{
		Service: resource.NewService[Transaction, CreateParams, UpdateParams](repo),
		repo:    repo,
	}
}

// Recent returns the RecentLimit most recent transactions owned by userID,
// newest transaction_date first and higher id first within a day.
func (s *Service) Recent(ctx context.Context, userID int64) ([]*Transaction, error) {
	if userID <= 0 {
		return nil, resource.ErrNoOwner
	}

	txs, err := s.repo.ListRecentByUserID(ctx, userID, RecentLimit)
	if err != nil {
		return nil, resource.StorageError("list recent", err)
	}
	if txs == nil {
		txs = []*Transaction{}
	}
	sort.SliceStable(txs, func(i, j int) bool { return newerThan(txs[i], txs[j]) })
	if len(txs) > RecentLimit {
		txs = txs[:RecentLimit]
	}
	return txs, nil
}

func newerThan(a, b *Transaction) bool {
	if a.TransactionDate != b.TransactionDate {
		return a.TransactionDate.After(b.TransactionDate)
	}
	return a.ID > b.ID
}
