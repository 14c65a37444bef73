// Package identity derives the long-lived X25519 identity key pair from an
// account seed, and generates the per-message ephemeral X25519 key pairs
// used for forward secrecy.
package identity

import (
	"crypto/rand"

	"golang.org/x/crypto/curve25519"

	"github.com/CorvidLabs/algochat-core/algoerr"
	"github.com/CorvidLabs/algochat-core/internal/kdf"
)

const (
	identitySalt = "AlgoChat-v1-encryption"
	identityInfo = "x25519-key"
)

// KeyPair is an X25519 key pair. PrivateKey is the raw 32-byte scalar used
// directly as input to X25519 (no clamping responsibilities at this
// layer, per spec §4.A).
type KeyPair struct {
	PrivateKey [32]byte
	PublicKey  [32]byte
}

// DeriveIdentity derives the long-lived identity key pair for an account
// from its 32-byte seed. The derivation is deterministic: the same seed
// always yields the same key pair.
func DeriveIdentity(seed []byte) (KeyPair, error) {
	if len(seed) != 32 {
		return KeyPair{}, algoerr.New(algoerr.KindInvalidKey, "identity seed must be 32 bytes, got %d", len(seed))
	}
	priv, err := kdf.Derive32([]byte(identitySalt), seed, []byte(identityInfo))
	if err != nil {
		return KeyPair{}, algoerr.Wrap(algoerr.KindInvalidKey, err, "hkdf derive failed")
	}
	kp := KeyPair{PrivateKey: priv}
	pub, err := curve25519.X25519(kp.PrivateKey[:], curve25519.Basepoint)
	if err != nil {
		return KeyPair{}, algoerr.Wrap(algoerr.KindInvalidKey, err, "base scalar mult failed")
	}
	copy(kp.PublicKey[:], pub)
	return kp, nil
}

// GenerateEphemeral produces a fresh, independently random X25519 key
// pair. Callers must discard PrivateKey immediately after the envelope is
// sealed; it is never exported beyond the seal call.
func GenerateEphemeral() (KeyPair, error) {
	var kp KeyPair
	if _, err := rand.Read(kp.PrivateKey[:]); err != nil {
		return KeyPair{}, algoerr.Wrap(algoerr.KindInvalidKey, err, "ephemeral scalar generation failed")
	}
	pub, err := curve25519.X25519(kp.PrivateKey[:], curve25519.Basepoint)
	if err != nil {
		return KeyPair{}, algoerr.Wrap(algoerr.KindInvalidKey, err, "ephemeral base scalar mult failed")
	}
	copy(kp.PublicKey[:], pub)
	return kp, nil
}

// SharedSecret computes the raw X25519 ECDH output between a local
// private key and a remote public key. No clamping or post-processing is
// applied beyond what curve25519.X25519 does internally.
func SharedSecret(priv, pub [32]byte) ([]byte, error) {
	secret, err := curve25519.X25519(priv[:], pub[:])
	if err != nil {
		return nil, algoerr.Wrap(algoerr.KindInvalidKey, err, "ecdh failed")
	}
	return secret, nil
}
