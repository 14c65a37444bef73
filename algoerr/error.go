// Package algoerr defines the structured error taxonomy shared across the
// algochat-core packages.
package algoerr

import "fmt"

// Kind classifies a failure so callers can branch on cause without string
// matching.
type Kind int

const (
	// KindInvalidKey marks a malformed or wrong-length key.
	KindInvalidKey Kind = iota
	// KindInvalidEnvelope marks a malformed envelope: bad header, version,
	// protocol id, or length.
	KindInvalidEnvelope
	// KindDecryptionFailed marks any AEAD open failure, regardless of which
	// layer failed (sender-key unwrap vs. message open collapse here).
	KindDecryptionFailed
	// KindMessageTooLarge marks a plaintext exceeding the per-protocol cap.
	KindMessageTooLarge
	// KindPublicKeyNotFound marks an exhausted key-discovery search.
	KindPublicKeyNotFound
	// KindPSKInvalidLength marks a pre-shared key that isn't 32 bytes.
	KindPSKInvalidLength
	// KindPSKInvalidCounter marks a ratchet counter outside the replay
	// window or already seen.
	KindPSKInvalidCounter
	// KindPSKExchangeURIInvalid marks a malformed PSK exchange URI.
	KindPSKExchangeURIInvalid
	// KindInvalidAddress marks a malformed ledger address.
	KindInvalidAddress

	// KindNetwork, KindTimeout, KindIndexer and KindConfirmTimeout are
	// boundary failures from the chain collaborator (§6/§7). Unlike the
	// kinds above, these are retryable.
	KindNetwork
	KindTimeout
	KindIndexer
	KindConfirmTimeout
)

var kindNames = map[Kind]string{
	KindInvalidKey:             "invalid_key",
	KindInvalidEnvelope:        "invalid_envelope",
	KindDecryptionFailed:       "decryption_failed",
	KindMessageTooLarge:        "message_too_large",
	KindPublicKeyNotFound:      "public_key_not_found",
	KindPSKInvalidLength:       "psk_invalid_length",
	KindPSKInvalidCounter:      "psk_invalid_counter",
	KindPSKExchangeURIInvalid:  "psk_exchange_uri_invalid",
	KindInvalidAddress:         "invalid_address",
	KindNetwork:                "network",
	KindTimeout:                "timeout",
	KindIndexer:                "indexer",
	KindConfirmTimeout:         "confirm_timeout",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// retryableKinds holds the boundary failures that may be retried. All
// cryptographic and envelope kinds are deliberately absent: per §7 they
// signal a corrupt message, a wrong key, or a protocol mismatch and must
// never be retried automatically.
var retryableKinds = map[Kind]bool{
	KindNetwork:         true,
	KindTimeout:         true,
	KindIndexer:         true,
	KindConfirmTimeout:  true,
}

// Error is a structured failure: a classified Kind, a human-readable
// context string, and optional structured fields (address, size, ...).
type Error struct {
	Kind   Kind
	Ctx    string
	Fields map[string]any
	Err    error // underlying cause, if any
}

// Unwrap exposes the underlying cause for errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// Error renders a human-readable description.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s [%v]", e.Kind, e.Ctx, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Ctx)
}

// Retryable reports whether the boundary that produced this error may be
// retried. Cryptographic and envelope errors are never retryable.
func (e *Error) Retryable() bool {
	return retryableKinds[e.Kind]
}

// New creates an Error of the given kind with a formatted context message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Ctx: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error of the given kind around an underlying cause.
func Wrap(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Ctx: fmt.Sprintf(format, args...), Err: err}
}

// WithField attaches a structured context field and returns the receiver,
// so callers can chain: algoerr.New(...).WithField("address", addr).
func (e *Error) WithField(key string, value any) *Error {
	if e.Fields == nil {
		e.Fields = make(map[string]any, 1)
	}
	e.Fields[key] = value
	return e
}

// Is reports whether target is an *Error with the same Kind, enabling
// errors.Is(err, algoerr.New(KindDecryptionFailed, "")) style checks when
// callers only care about the classification.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}
