// Package announce parses key-announcement payloads: a self-addressed
// transaction note publishing an X25519 public key, optionally signed by
// the account's Ed25519 identity (spec §3, §4.I).
package announce

import (
	"crypto/ed25519"
)

// DiscoveredKey is a discovered X25519 public key with its verification
// status. IsVerified is true only when an Ed25519 signature over the
// announced key validated against the announcer's identity key.
type DiscoveredKey struct {
	PublicKey  [32]byte
	IsVerified bool
}

const (
	bareKeyLen    = 32
	signedNoteLen = 96
	signatureLen  = 64
)

// Parse interprets note as a key-announcement payload. ed25519Pub is the
// announcer's Ed25519 identity key (typically the ledger address's
// underlying key); pass nil to skip verification entirely. Parse reports
// ok=false for any note shorter than 32 bytes, which is never an
// announcement.
func Parse(note []byte, ed25519Pub []byte) (DiscoveredKey, bool) {
	if len(note) < bareKeyLen {
		return DiscoveredKey{}, false
	}

	if len(note) >= signedNoteLen && len(ed25519Pub) == ed25519.PublicKeySize {
		var pub [32]byte
		copy(pub[:], note[:bareKeyLen])
		sig := note[bareKeyLen : bareKeyLen+signatureLen]
		verified := verifySignature(ed25519Pub, pub[:], sig)
		return DiscoveredKey{PublicKey: pub, IsVerified: verified}, true
	}

	var pub [32]byte
	copy(pub[:], note[:bareKeyLen])
	return DiscoveredKey{PublicKey: pub, IsVerified: false}, true
}

// verifySignature verifies sig over msg with pub, collapsing any panic
// (e.g. a malformed key) to a false verdict rather than letting it
// propagate — spec §4.I requires "any exception collapses to false".
func verifySignature(pub, msg, sig []byte) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	return ed25519.Verify(pub, msg, sig)
}
