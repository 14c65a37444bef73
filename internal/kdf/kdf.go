// Package kdf centralizes the one key-derivation primitive every layer of
// algochat-core needs: HKDF-SHA256 with explicit salt/ikm/info, per
// spec §4.A. Mirrors how bfix-gospel centralizes its ECC/AEAD primitives
// under a single crypto package rather than scattering hash.New calls.
package kdf

import (
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/hkdf"
)

// Derive reads exactly len(out) bytes of HKDF-SHA256(salt, ikm, info)
// output into out.
func Derive(out []byte, salt, ikm, info []byte) error {
	r := hkdf.New(sha256.New, ikm, salt, info)
	_, err := io.ReadFull(r, out)
	return err
}

// Derive32 is Derive specialized to the 32-byte keys used everywhere in
// this protocol.
func Derive32(salt, ikm, info []byte) ([32]byte, error) {
	var out [32]byte
	err := Derive(out[:], salt, ikm, info)
	return out, err
}
