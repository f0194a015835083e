// Package accountrepo manages repository layer of accounts.
package accountrepo

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/lumenbank/lumen-bank/internal/domain"
	"github.com/lumenbank/lumen-bank/pkg/dbpkg"
	"github.com/lumenbank/lumen-bank/pkg/errorspkg"
)

// RepoPGS facilitates account repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns account RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const createQuery = `
INSERT INTO
    accounts (owner, name)
VALUES
    ($1, $2)
RETURNING id, owner, name, created_at
`

// Create creates the account and then returns it.
func (r *RepoPGS) Create(ctx context.Context, owner, name string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery, owner, name)

	var a domain.Account

	err := row.Scan(
		&a.ID,
		&a.Owner,
		&a.Name,
		&a.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "accounts_owner_fkey" {
				return a, domain.ErrOwnerNotFound
			}
		}

		return a, errorspkg.FromDB(err)
	}

	return a, nil
}

const getQuery = `
SELECT
	id, owner, name, created_at
FROM accounts
WHERE id = $1
`

// Get returns the account with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int32) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, id)

	var a domain.Account

	err := row.Scan(
		&a.ID,
		&a.Owner,
		&a.Name,
		&a.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		l.Error().Err(err).Send()

		return a, errorspkg.FromDB(err)
	}

	return a, nil
}

const listQuery = `
SELECT
	id, owner, name, created_at
FROM accounts
WHERE owner = $1
ORDER BY id
LIMIT $2 OFFSET $3
`

// ListByOwner returns the specified number of accounts for the given user.
func (r *RepoPGS) ListByOwner(ctx context.Context, owner string, limit, offset int32) ([]domain.Account, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listQuery, owner, limit, offset)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.FromDB(err)
	}
	defer rows.Close()

	items := []domain.Account{}

	for rows.Next() {
		var a domain.Account
		if err := rows.Scan(&a.ID, &a.Owner, &a.Name, &a.CreatedAt); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.FromDB(err)
		}

		items = append(items, a)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.FromDB(err)
	}

	return items, nil
}
