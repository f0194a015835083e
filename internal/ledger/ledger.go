// Package ledger implements the balance engine: pure functions that derive
// an account balance from its transaction history and validate proposed
// transactions against it.
package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/lumenbank/lumen-bank/internal/domain"
)

// Balance computes the signed sum over the given transaction history,
// deposits adding and withdrawals subtracting.
//
// The result does not depend on the order of the history.
func Balance(history []domain.Transaction) (decimal.Decimal, error) {
	total := decimal.Zero

	for _, tx := range history {
		amount, err := decimal.NewFromString(tx.Amount)
		if err != nil {
			return decimal.Decimal{}, domain.ErrInvalidAmount
		}

		switch tx.Kind {
		case domain.KindDeposit:
			total = total.Add(amount)
		case domain.KindWithdrawal:
			total = total.Sub(amount)
		default:
			return decimal.Decimal{}, domain.ErrInvalidKind
		}
	}

	return total, nil
}

// ValidateProposal decides whether the proposed transaction may be appended
// to the given history.
//
// A withdrawal is rejected with domain.ErrInsufficientBalance when the
// current balance is less than the amount; a withdrawal of exactly the
// current balance is accepted. Deposits are never rejected for funds
// reasons. A non-positive amount is rejected with domain.ErrInvalidAmount
// for either kind.
func ValidateProposal(history []domain.Transaction, kind domain.TransactionKind, amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return domain.ErrInvalidAmount
	}

	switch kind {
	case domain.KindDeposit:
		return nil
	case domain.KindWithdrawal:
		balance, err := Balance(history)
		if err != nil {
			return err
		}

		if balance.LessThan(amount) {
			return domain.ErrInsufficientBalance
		}

		return nil
	default:
		return domain.ErrInvalidKind
	}
}

// SortByCreatedAt orders the history ascending by creation time, breaking
// ties by transaction id.
func SortByCreatedAt(history []domain.Transaction) {
	sort.SliceStable(history, func(i, j int) bool {
		if history[i].CreatedAt.Equal(history[j].CreatedAt) {
			return history[i].ID < history[j].ID
		}

		return history[i].CreatedAt.Before(history[j].CreatedAt)
	})
}
