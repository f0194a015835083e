// Package transactionservice manages business logic layer of transactions.
package transactionservice

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/lumenbank/lumen-bank/internal/domain"
	"github.com/lumenbank/lumen-bank/internal/ledger"
)

// Repo provides data access layer interface needed by transaction service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package transactionservice
type Repo interface {
	Create(ctx context.Context, accountID int32, kind domain.TransactionKind, amount string) (domain.Transaction, error)
	ListByAccount(ctx context.Context, accountID int32) ([]domain.Transaction, error)
}

// AccountService provides the account ownership gate needed before any
// history read or mutation.
type AccountService interface {
	GetOwned(ctx context.Context, owner string, id int32) (domain.Account, error)
}

// Service facilitates transaction service layer logic.
type Service struct {
	repo     Repo
	accounts AccountService

	mu sync.Mutex
	// locks holds one mutex per account ever written through this process.
	// Entries are never released, so the map grows with the number of
	// distinct accounts; acceptable for a single-process deployment.
	locks map[int32]*sync.Mutex
}

// New returns transaction service struct to manage transaction business logic.
func New(tr Repo, as AccountService) *Service {
	return &Service{
		repo:     tr,
		accounts: as,
		locks:    make(map[int32]*sync.Mutex),
	}
}

// accountLock returns the mutex serializing mutations of the given account.
func (s *Service) accountLock(accountID int32) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[accountID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[accountID] = lock
	}

	return lock
}

// Append validates the proposed transaction against the account's current
// history and appends it.
//
// The read-validate-append sequence holds a per-account lock so that two
// in-flight withdrawals cannot both pass validation against a stale
// balance. On rejection no state change occurs.
func (s *Service) Append(ctx context.Context, owner string, accountID int32, kind domain.TransactionKind, amount string) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	amountDecimal, err := decimal.NewFromString(amount)
	if err != nil {
		l.Info().Err(err).Send()
		return domain.Transaction{}, domain.ErrInvalidAmount
	}

	if _, err := s.accounts.GetOwned(ctx, owner, accountID); err != nil {
		return domain.Transaction{}, err
	}

	lock := s.accountLock(accountID)
	lock.Lock()
	defer lock.Unlock()

	history, err := s.repo.ListByAccount(ctx, accountID)
	if err != nil {
		return domain.Transaction{}, err
	}

	if err := ledger.ValidateProposal(history, kind, amountDecimal); err != nil {
		l.Info().Err(err).Int32("account_id", accountID).Send()
		return domain.Transaction{}, err
	}

	transaction, err := s.repo.Create(ctx, accountID, kind, amountDecimal.String())
	if err != nil {
		return transaction, err
	}

	return transaction, nil
}

// List returns the account's transaction history ascending by creation time.
func (s *Service) List(ctx context.Context, owner string, accountID int32) ([]domain.Transaction, error) {
	if _, err := s.accounts.GetOwned(ctx, owner, accountID); err != nil {
		return nil, err
	}

	history, err := s.repo.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	ledger.SortByCreatedAt(history)

	return history, nil
}
