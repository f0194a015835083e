// Package transactionrepo manages repository layer of transactions.
package transactionrepo

import (
	"context"

	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/lumenbank/lumen-bank/internal/domain"
	"github.com/lumenbank/lumen-bank/pkg/dbpkg"
	"github.com/lumenbank/lumen-bank/pkg/errorspkg"
)

// RepoPGS facilitates transaction repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns transaction RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const createQuery = `
INSERT INTO
    transactions (account_id, kind, amount)
VALUES
    ($1, $2, $3)
RETURNING id, account_id, kind, amount, created_at
`

// Create appends the transaction to the account's history and then returns it.
func (r *RepoPGS) Create(ctx context.Context, accountID int32, kind domain.TransactionKind, amount string) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery, accountID, kind, amount)

	var t domain.Transaction

	err := row.Scan(
		&t.ID,
		&t.AccountID,
		&t.Kind,
		&t.Amount,
		&t.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "transactions_account_id_fkey":
				return t, domain.ErrAccountNotFound
			case "transactions_amount_check":
				return t, domain.ErrInvalidAmount
			case "transactions_kind_check":
				return t, domain.ErrInvalidKind
			}
		}

		return t, errorspkg.FromDB(err)
	}

	return t, nil
}

const listQuery = `
SELECT
	id, account_id, kind, amount, created_at
FROM transactions
WHERE account_id = $1
ORDER BY created_at, id
`

// ListByAccount returns the full transaction history of the account,
// ascending by creation time with ids breaking ties.
func (r *RepoPGS) ListByAccount(ctx context.Context, accountID int32) ([]domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listQuery, accountID)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.FromDB(err)
	}
	defer rows.Close()

	items := []domain.Transaction{}

	for rows.Next() {
		var t domain.Transaction
		if err := rows.Scan(
			&t.ID,
			&t.AccountID,
			&t.Kind,
			&t.Amount,
			&t.CreatedAt,
		); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.FromDB(err)
		}

		items = append(items, t)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.FromDB(err)
	}

	return items, nil
}
