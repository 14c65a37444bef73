// Package wire implements the bit-exact envelope codecs for the v1
// Standard and v1.1 PSK wire formats (spec §3, §4.C, §4.D).
package wire

import (
	"github.com/CorvidLabs/algochat-core/algoerr"
	"github.com/CorvidLabs/algochat-core/internal/wireshape"
)

const (
	// Version is the only envelope version this codec understands.
	Version = 0x01

	// ProtocolStandard is the protocolId byte for v1 Standard envelopes.
	ProtocolStandard = 0x01
	// ProtocolPSK is the protocolId byte for v1.1 PSK envelopes.
	ProtocolPSK = 0x02

	// StandardHeaderSize is the fixed header length of a v1 envelope.
	StandardHeaderSize = 126
	// PSKHeaderSize is the fixed header length of a v1.1 envelope.
	PSKHeaderSize = 130

	aeadTagSize = 16
)

// StandardEnvelope is the v1 ("ECDH-only") wire envelope.
type StandardEnvelope struct {
	Version             uint8
	ProtocolID          uint8
	SenderPublicKey     []byte `size:"32"`
	EphemeralPublicKey  []byte `size:"32"`
	Nonce               []byte `size:"12"`
	EncryptedSenderKey  []byte `size:"48"`
	Ciphertext          []byte `size:"*"`
}

// PSKEnvelope is the v1.1 ("Hybrid ECDH + PSK ratchet") wire envelope: the
// same shape as StandardEnvelope with a 4-byte big-endian ratchet counter
// inserted after the protocol id, shifting every subsequent field by 4.
type PSKEnvelope struct {
	Version             uint8
	ProtocolID          uint8
	RatchetCounter      uint32
	SenderPublicKey     []byte `size:"32"`
	EphemeralPublicKey  []byte `size:"32"`
	Nonce               []byte `size:"12"`
	EncryptedSenderKey  []byte `size:"48"`
	Ciphertext          []byte `size:"*"`
}

// IsChatMessage reports whether data begins with a v1 Standard envelope
// header. It does not validate the rest of the envelope.
func IsChatMessage(data []byte) bool {
	return len(data) >= 2 && data[0] == Version && data[1] == ProtocolStandard
}

// IsPSKMessage reports whether data begins with a v1.1 PSK envelope
// header. It does not validate the rest of the envelope.
func IsPSKMessage(data []byte) bool {
	return len(data) >= 2 && data[0] == Version && data[1] == ProtocolPSK
}

// EncodeStandard serializes a StandardEnvelope to wire bytes.
func EncodeStandard(e *StandardEnvelope) ([]byte, error) {
	e.Version = Version
	e.ProtocolID = ProtocolStandard
	b, err := wireshape.Marshal(e)
	if err != nil {
		return nil, algoerr.Wrap(algoerr.KindInvalidEnvelope, err, "encode standard envelope")
	}
	return b, nil
}

// DecodeStandard parses wire bytes into a StandardEnvelope, rejecting
// anything that doesn't match the v1 Standard header shape.
func DecodeStandard(data []byte) (*StandardEnvelope, error) {
	if len(data) < 2 {
		return nil, algoerr.New(algoerr.KindInvalidEnvelope, "envelope too short: %d bytes", len(data))
	}
	if data[0] != Version {
		return nil, algoerr.New(algoerr.KindInvalidEnvelope, "unsupported version 0x%02x", data[0])
	}
	if data[1] != ProtocolStandard {
		return nil, algoerr.New(algoerr.KindInvalidEnvelope, "unexpected protocol id 0x%02x", data[1])
	}
	if len(data) < StandardHeaderSize+aeadTagSize {
		return nil, algoerr.New(algoerr.KindInvalidEnvelope, "envelope shorter than header+tag: %d bytes", len(data))
	}
	var e StandardEnvelope
	if err := wireshape.Unmarshal(&e, data); err != nil {
		return nil, algoerr.Wrap(algoerr.KindInvalidEnvelope, err, "decode standard envelope")
	}
	return &e, nil
}

// EncodePSK serializes a PSKEnvelope to wire bytes.
func EncodePSK(e *PSKEnvelope) ([]byte, error) {
	e.Version = Version
	e.ProtocolID = ProtocolPSK
	b, err := wireshape.Marshal(e)
	if err != nil {
		return nil, algoerr.Wrap(algoerr.KindInvalidEnvelope, err, "encode psk envelope")
	}
	return b, nil
}

// DecodePSK parses wire bytes into a PSKEnvelope, rejecting anything that
// doesn't match the v1.1 PSK header shape.
func DecodePSK(data []byte) (*PSKEnvelope, error) {
	if len(data) < 2 {
		return nil, algoerr.New(algoerr.KindInvalidEnvelope, "envelope too short: %d bytes", len(data))
	}
	if data[0] != Version {
		return nil, algoerr.New(algoerr.KindInvalidEnvelope, "unsupported version 0x%02x", data[0])
	}
	if data[1] != ProtocolPSK {
		return nil, algoerr.New(algoerr.KindInvalidEnvelope, "unexpected protocol id 0x%02x", data[1])
	}
	if len(data) < PSKHeaderSize+aeadTagSize {
		return nil, algoerr.New(algoerr.KindInvalidEnvelope, "envelope shorter than header+tag: %d bytes", len(data))
	}
	var e PSKEnvelope
	if err := wireshape.Unmarshal(&e, data); err != nil {
		return nil, algoerr.Wrap(algoerr.KindInvalidEnvelope, err, "decode psk envelope")
	}
	return &e, nil
}
