// Package chain declares the external ledger collaborator interfaces
// (spec §6). The core only produces and consumes note bytes; it never
// signs, submits, or indexes transactions itself. No production
// implementation lives in this repository — callers wire their own
// ledger client against this interface.
package chain

import "time"

// Address is a ledger account address in its native string encoding.
type Address = string

// NoteTransaction is an already-parsed transaction record, as returned by
// a Client's search/lookup calls.
type NoteTransaction struct {
	TxID           string
	Sender         Address
	Receiver       Address
	Note           []byte
	ConfirmedRound uint64
	RoundTime      time.Time
}

// SuggestedParams mirrors the ledger's current fee/validity parameters,
// needed to construct (but not sign or submit) a payment transaction.
type SuggestedParams struct {
	Fee          uint64
	MinFee       uint64
	FirstValid   uint64
	LastValid    uint64
	GenesisID    string
	GenesisHash  []byte
}

// Client is the external chain collaborator: it submits already-signed
// transactions and answers note/transaction queries. The core never
// constructs or signs transactions; it only produces/consumes note bytes.
type Client interface {
	SuggestedParams() (SuggestedParams, error)
	Submit(signedTxn []byte) (txid string, err error)
	SearchTransactions(address Address, afterRound *uint64, limit int) ([]NoteTransaction, error)
	SearchTransactionsBetween(a, b Address, afterRound *uint64, limit int) ([]NoteTransaction, error)
	LookupTransaction(txid string) (NoteTransaction, error)
}

// MinPayment is the minimum payment amount (in the ledger's micro-unit)
// that carries a chat message; a zero-amount self-payment is reserved for
// key publication (spec §6).
const MinPayment = 1000
