package bankaccount

import (
	"context"

	"ledgerly/internal/domain/resource"
)

// Service adds the account summary to the owner-scoped CRUD operations.
type Service struct {
	*resource.Service[Account, CreateParams, UpdateParams]
}

func NewService(repo Repository) *Service {
	return &Service{Service: resource.NewService(repo)}
}

// Summary returns the name and balance of every account owned by userID,
// in the same order as List.
func (s *Service) Summary(ctx context.Context, userID int64) ([]Summary, error) {
	accounts, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]Summary, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, Summary{Name: a.Name, Balance: a.Balance})
	}
	return out, nil
}
