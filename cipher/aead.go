// Package cipher implements the bidirectional Standard (v1) and hybrid
// PSK (v1.1) encryptor/decryptor pairs (spec §4.E, §4.F), built on the
// ChaCha20-Poly1305 AEAD exactly as the teacher's network/p2p packet
// layer uses it.
package cipher

import (
	"crypto/rand"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/CorvidLabs/algochat-core/algoerr"
)

const nonceSize = chacha20poly1305.NonceSize // 12

// randomNonce draws a fresh CSPRNG nonce. MessageTooLarge must be
// surfaced before this is ever called (§7): callers check the size cap
// first.
func randomNonce() ([]byte, error) {
	n := make([]byte, nonceSize)
	if _, err := rand.Read(n); err != nil {
		return nil, algoerr.Wrap(algoerr.KindInvalidKey, err, "nonce generation failed")
	}
	return n, nil
}

func sealAEAD(key, nonce, plaintext []byte) ([]byte, error) {
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, algoerr.Wrap(algoerr.KindInvalidKey, err, "aead init failed")
	}
	return aead.Seal(nil, nonce, plaintext, nil), nil
}

// openAEAD attempts to open ciphertext under key/nonce. Per §7 the caller
// must collapse any failure here to DecryptionFailed without
// distinguishing which layer (sender-key unwrap vs. message open) failed.
func openAEAD(key, nonce, ciphertext []byte) ([]byte, error) {
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, algoerr.Wrap(algoerr.KindDecryptionFailed, err, "aead init failed")
	}
	pt, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, algoerr.Wrap(algoerr.KindDecryptionFailed, err, "aead open failed")
	}
	return pt, nil
}
