// Package test provides common fixtures for tests.
package test

import (
	"time"

	"github.com/lumenbank/lumen-bank/internal/domain"
	"github.com/lumenbank/lumen-bank/pkg/randompkg"
)

// RandomAccount returns random account owned by the given owner.
func RandomAccount(owner string) domain.Account {
	return domain.Account{
		ID:        randompkg.IntBetween(1, 100),
		Owner:     owner,
		Name:      randompkg.AccountName(),
		CreatedAt: time.Now().Truncate(time.Second).UTC(),
	}
}

// RandomTransaction returns a random transaction of the given kind for the account.
func RandomTransaction(accountID int32, kind domain.TransactionKind) domain.Transaction {
	return domain.Transaction{
		ID:        int64(randompkg.IntBetween(1, 1000)),
		AccountID: accountID,
		Kind:      kind,
		Amount:    randompkg.MoneyAmountBetween(10, 100),
		CreatedAt: time.Now().Truncate(time.Second).UTC(),
	}
}

// DepositHistory returns n deposits of the given amount, one second apart.
func DepositHistory(accountID int32, amount string, n int) []domain.Transaction {
	start := time.Now().Add(-time.Duration(n) * time.Second).Truncate(time.Second).UTC()

	history := make([]domain.Transaction, 0, n)
	for i := 0; i < n; i++ {
		history = append(history, domain.Transaction{
			ID:        int64(i + 1),
			AccountID: accountID,
			Kind:      domain.KindDeposit,
			Amount:    amount,
			CreatedAt: start.Add(time.Duration(i) * time.Second),
		})
	}

	return history
}
