package domain

import (
	"errors"
	"time"
)

var (
	// ErrInvalidAmount indicates a non-positive or unparsable amount.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrInvalidKind indicates an unknown transaction kind.
	ErrInvalidKind = errors.New("invalid transaction kind")
	// ErrInsufficientBalance indicates that the account balance does not cover the withdrawal.
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// TransactionKind is the direction of a transaction.
type TransactionKind string

// Supported transaction kinds.
const (
	KindDeposit    TransactionKind = "deposit"
	KindWithdrawal TransactionKind = "withdrawal"
)

// Transaction holds a single append-only ledger record of an account.
//
// CreatedAt is the ordering key of an account's history; ID breaks ties.
type Transaction struct {
	ID        int64           `json:"id"`
	AccountID int32           `json:"account_id"`
	Kind      TransactionKind `json:"kind"`
	Amount    string          `json:"amount"` // must be positive
	CreatedAt time.Time       `json:"created_at"`
}
