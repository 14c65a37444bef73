// Package fake provides an in-memory chain.Client for this repository's
// own tests, trimmed from the shape of the teacher's bitcoin/rpc client
// interface down to the five calls spec §6 names.
package fake

import (
	"fmt"
	"sort"

	"github.com/CorvidLabs/algochat-core/chain"
)

// Client is an in-memory chain.Client backed by a slice of transactions.
// It is a test double only; it implements no real ledger semantics beyond
// what SearchTransactions/LookupTransaction need to filter and return
// records deterministically.
type Client struct {
	Txns []chain.NoteTransaction
}

// New returns a Client seeded with the given transactions.
func New(txns ...chain.NoteTransaction) *Client {
	return &Client{Txns: txns}
}

func (c *Client) SuggestedParams() (chain.SuggestedParams, error) {
	return chain.SuggestedParams{Fee: 1000, MinFee: 1000, FirstValid: 1, LastValid: 1000}, nil
}

func (c *Client) Submit(signedTxn []byte) (string, error) {
	return "", fmt.Errorf("fake: submit not supported")
}

func (c *Client) SearchTransactions(address chain.Address, afterRound *uint64, limit int) ([]chain.NoteTransaction, error) {
	var out []chain.NoteTransaction
	for _, tx := range c.Txns {
		if tx.Sender != address && tx.Receiver != address {
			continue
		}
		if afterRound != nil && tx.ConfirmedRound <= *afterRound {
			continue
		}
		out = append(out, tx)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ConfirmedRound < out[j].ConfirmedRound })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (c *Client) SearchTransactionsBetween(a, b chain.Address, afterRound *uint64, limit int) ([]chain.NoteTransaction, error) {
	var out []chain.NoteTransaction
	for _, tx := range c.Txns {
		match := (tx.Sender == a && tx.Receiver == b) || (tx.Sender == b && tx.Receiver == a)
		if !match {
			continue
		}
		if afterRound != nil && tx.ConfirmedRound <= *afterRound {
			continue
		}
		out = append(out, tx)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ConfirmedRound < out[j].ConfirmedRound })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (c *Client) LookupTransaction(txid string) (chain.NoteTransaction, error) {
	for _, tx := range c.Txns {
		if tx.TxID == txid {
			return tx, nil
		}
	}
	return chain.NoteTransaction{}, fmt.Errorf("fake: transaction %s not found", txid)
}
