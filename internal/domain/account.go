package domain

import (
	"errors"
	"time"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	//
	// It is deliberately returned both when the account does not exist and
	// when it exists but belongs to another user, so that callers cannot
	// enumerate other users' account ids.
	ErrAccountNotFound = errors.New("account not found")
	// ErrOwnerNotFound indicates that the owner for the account is not found.
	ErrOwnerNotFound = errors.New("owner not found")
)

// Account holds a single user's ledger account.
//
// Ownership is set at creation and never transferred.
type Account struct {
	ID        int32     `json:"id"`
	Owner     string    `json:"owner"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
