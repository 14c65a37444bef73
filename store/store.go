// Package store declares the external persistence collaborator
// interfaces (spec §6): message caches, encryption-key storage, and
// pending-send queues. No implementation of these is in scope for the
// core except the reference password-encrypted key store in
// store/filekeystore, which exists to pin the at-rest encryption shape
// spec §6 requires of any implementation.
package store

import "github.com/CorvidLabs/algochat-core/chain"

// MessageCache is the one coherent per-participant message cache contract
// this repo specifies (spec §9 resolves the teacher-era ambiguity between
// two incompatible shapes in favor of a single synchronous interface).
type MessageCache interface {
	// Insert records a transaction for participant, keyed by its txid.
	// Implementations must be idempotent: inserting the same txid twice
	// is a no-op, not an error.
	Insert(participant chain.Address, tx chain.NoteTransaction) error
	// Has reports whether txid has already been recorded for participant.
	Has(participant chain.Address, txid string) (bool, error)
	// GetLastSyncRound returns the last round synced for participant.
	GetLastSyncRound(participant chain.Address) (uint64, error)
	// SetLastSyncRound records the last round synced for participant.
	SetLastSyncRound(participant chain.Address, round uint64) error
	// Clear removes all cached state for participant.
	Clear(participant chain.Address) error
}

// EncryptionKeyStorage persists private key material by address. A
// reference at-rest-encrypted implementation is store/filekeystore.
type EncryptionKeyStorage interface {
	Store(address chain.Address, privateKey []byte) error
	Retrieve(address chain.Address) ([]byte, error)
	Has(address chain.Address) (bool, error)
	Delete(address chain.Address) error
	List() ([]chain.Address, error)
}

// PendingMessage is one entry in a per-account send queue awaiting
// submission (e.g. after an offline period).
type PendingMessage struct {
	Recipient chain.Address
	Plaintext []byte
	ReplyToID string
}

// SendQueueStorage persists an ordered list of pending outbound messages
// per account.
type SendQueueStorage interface {
	Load(account chain.Address) ([]PendingMessage, error)
	Save(account chain.Address, queue []PendingMessage) error
	Clear(account chain.Address) error
}
