// Package ratchet implements the two-level PSK ratchet (spec §4.G):
// a counter is split into a session index and an in-session position,
// each deriving a fresh HKDF-SHA256 key from the level above it.
package ratchet

import (
	"encoding/binary"

	"github.com/CorvidLabs/algochat-core/algoerr"
	"github.com/CorvidLabs/algochat-core/internal/kdf"
)

// SessionSize is the number of consecutive counter values that share one
// intermediate session PSK.
const SessionSize = 100

const (
	sessionSalt  = "AlgoChat-PSK-Session"
	positionSalt = "AlgoChat-PSK-Position"
)

// DeriveSession derives the session PSK for sessionIndex from the
// initial PSK.
func DeriveSession(initialPSK [32]byte, sessionIndex uint32) ([32]byte, error) {
	out, err := kdf.Derive32([]byte(sessionSalt), initialPSK[:], be32(sessionIndex))
	if err != nil {
		return [32]byte{}, algoerr.Wrap(algoerr.KindInvalidKey, err, "session psk derivation failed")
	}
	return out, nil
}

// DerivePosition derives the per-message PSK for position within a
// session, from that session's PSK.
func DerivePosition(sessionPSK [32]byte, position uint32) ([32]byte, error) {
	out, err := kdf.Derive32([]byte(positionSalt), sessionPSK[:], be32(position))
	if err != nil {
		return [32]byte{}, algoerr.Wrap(algoerr.KindInvalidKey, err, "position psk derivation failed")
	}
	return out, nil
}

// DeriveAtCounter derives the per-message PSK for an arbitrary
// non-negative counter n: sessionIndex = n / SessionSize,
// position = n % SessionSize.
func DeriveAtCounter(initialPSK [32]byte, n uint32) ([32]byte, error) {
	sessionIndex := n / SessionSize
	position := n % SessionSize
	sessionPSK, err := DeriveSession(initialPSK, sessionIndex)
	if err != nil {
		return [32]byte{}, err
	}
	return DerivePosition(sessionPSK, position)
}

func be32(v uint32) []byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	return b[:]
}
