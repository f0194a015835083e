// Package statementservice composes account statements.
package statementservice

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/lumenbank/lumen-bank/internal/domain"
	"github.com/lumenbank/lumen-bank/internal/ledger"
	"github.com/lumenbank/lumen-bank/pkg/errorspkg"
)

// AccountService provides the account ownership gate needed by the
// statement service.
//
//go:generate mockgen -source service.go -destination service_mock.go -package statementservice
type AccountService interface {
	GetOwned(ctx context.Context, owner string, id int32) (domain.Account, error)
}

// TransactionLister provides read access to an account's history.
type TransactionLister interface {
	ListByAccount(ctx context.Context, accountID int32) ([]domain.Transaction, error)
}

// Service facilitates statement composition.
type Service struct {
	accounts     AccountService
	transactions TransactionLister
}

// New returns statement service struct.
func New(as AccountService, tl TransactionLister) *Service {
	return &Service{
		accounts:     as,
		transactions: tl,
	}
}

// Build composes the account, its ordered transaction history and the
// balance computed over exactly that history into a statement.
func (s *Service) Build(ctx context.Context, owner string, accountID int32) (domain.Statement, error) {
	l := zerolog.Ctx(ctx)

	account, err := s.accounts.GetOwned(ctx, owner, accountID)
	if err != nil {
		return domain.Statement{}, err
	}

	history, err := s.transactions.ListByAccount(ctx, accountID)
	if err != nil {
		return domain.Statement{}, err
	}

	ledger.SortByCreatedAt(history)

	balance, err := ledger.Balance(history)
	if err != nil {
		l.Error().Err(err).Int32("account_id", accountID).Send()
		return domain.Statement{}, errorspkg.ErrInternal
	}

	statement := domain.Statement{
		Account:      account,
		Transactions: history,
		Balance:      balance.String(),
	}

	return statement, nil
}
