// Package accountservice manages business logic layer of accounts.
package accountservice

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/lumenbank/lumen-bank/internal/domain"
)

// Repo provides data access layer interface needed by account service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package accountservice
type Repo interface {
	Create(ctx context.Context, owner, name string) (domain.Account, error)
	Get(ctx context.Context, id int32) (domain.Account, error)
	ListByOwner(ctx context.Context, owner string, limit, offset int32) ([]domain.Account, error)
}

// Service facilitates account service layer logic.
type Service struct {
	repo Repo
}

// New returns account service struct to manage account business logic.
func New(ar Repo) *Service {
	return &Service{repo: ar}
}

// Create creates and returns an account for the given owner.
func (s *Service) Create(ctx context.Context, owner, name string) (domain.Account, error) {
	account, err := s.repo.Create(ctx, owner, name)
	if err != nil {
		return account, err
	}

	return account, nil
}

// GetOwned returns the account with the given id if it is owned by owner.
//
// A missing account and an account owned by another user both return
// domain.ErrAccountNotFound so that account ids cannot be enumerated.
func (s *Service) GetOwned(ctx context.Context, owner string, id int32) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	account, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Account{}, err
	}

	if account.Owner != owner {
		l.Warn().Int32("account_id", id).Msg("account ownership mismatch")
		return domain.Account{}, domain.ErrAccountNotFound
	}

	return account, nil
}

// List returns accounts that are owned by the given user.
func (s *Service) List(ctx context.Context, owner string, pageSize, pageID int32) ([]domain.Account, error) {
	limit := pageSize
	offset := (pageID - 1) * pageSize

	accounts, err := s.repo.ListByOwner(ctx, owner, limit, offset)
	if err != nil {
		return nil, err
	}

	return accounts, nil
}
