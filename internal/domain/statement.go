package domain

// Statement is a read view combining an account, its ordered transaction
// history and the balance computed over exactly that history.
//
// The balance is always derived at build time, never stored.
type Statement struct {
	Account      Account       `json:"account"`
	Transactions []Transaction `json:"transactions"`
	Balance      string        `json:"balance"`
}
