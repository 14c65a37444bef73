package cipher

import (
	"crypto/subtle"

	"github.com/CorvidLabs/algochat-core/algoerr"
	"github.com/CorvidLabs/algochat-core/identity"
	"github.com/CorvidLabs/algochat-core/internal/kdf"
	"github.com/CorvidLabs/algochat-core/wire"
)

// MaxPSKPayload is the largest plaintext a v1.1 PSK envelope can carry;
// 4 bytes smaller than MaxStandardPayload because the header grew by the
// ratchet counter (spec §4.F, §6).
const MaxPSKPayload = 878

const (
	pskMessageInfoPrefix = "AlgoChatV1-PSK"
	pskSenderInfoPrefix  = "AlgoChatV1-PSK-SenderKey"
)

// SealPSK builds a v1.1 PSK envelope. The caller supplies the current
// derived PSK (see package ratchet) and the counter that produced it;
// both are written into the envelope and re-derived by the opener.
//
// The IKM fed into the message-key HKDF is the ECDH secret concatenated
// with the PSK (64 bytes total) — never XORed or otherwise mixed outside
// HKDF (spec §9).
func SealPSK(plaintext []byte, senderPub, recipientPub [32]byte, currentPSK [32]byte, ratchetCounter uint32) (*wire.PSKEnvelope, error) {
	if len(plaintext) > MaxPSKPayload {
		return nil, algoerr.New(algoerr.KindMessageTooLarge, "plaintext is %d bytes, max %d", len(plaintext), MaxPSKPayload).
			WithField("actual", len(plaintext)).WithField("max", MaxPSKPayload)
	}

	eph, err := identity.GenerateEphemeral()
	if err != nil {
		return nil, err
	}

	rSecret, err := identity.SharedSecret(eph.PrivateKey, recipientPub)
	if err != nil {
		return nil, err
	}
	symKey, err := kdf.Derive32(eph.PublicKey[:], hybridIKM(rSecret, currentPSK), messageInfo(pskMessageInfoPrefix, senderPub[:], recipientPub[:]))
	if err != nil {
		return nil, algoerr.Wrap(algoerr.KindInvalidKey, err, "symmetric key derivation failed")
	}

	nonce, err := randomNonce()
	if err != nil {
		return nil, err
	}
	ciphertext, err := sealAEAD(symKey[:], nonce, plaintext)
	if err != nil {
		return nil, err
	}

	sSecret, err := identity.SharedSecret(eph.PrivateKey, senderPub)
	if err != nil {
		return nil, err
	}
	senderKey, err := kdf.Derive32(eph.PublicKey[:], hybridIKM(sSecret, currentPSK), senderKeyInfo(pskSenderInfoPrefix, senderPub[:]))
	if err != nil {
		return nil, algoerr.Wrap(algoerr.KindInvalidKey, err, "sender key derivation failed")
	}
	encryptedSenderKey, err := sealAEAD(senderKey[:], nonce, symKey[:])
	if err != nil {
		return nil, err
	}

	return &wire.PSKEnvelope{
		RatchetCounter:     ratchetCounter,
		SenderPublicKey:    append([]byte(nil), senderPub[:]...),
		EphemeralPublicKey: append([]byte(nil), eph.PublicKey[:]...),
		Nonce:              nonce,
		EncryptedSenderKey: encryptedSenderKey,
		Ciphertext:         ciphertext,
	}, nil
}

// OpenPSK decrypts a v1.1 PSK envelope given the PSK that matches the
// envelope's ratchet counter (the caller re-derives it via
// ratchet.DeriveAtCounter before calling this).
func OpenPSK(env *wire.PSKEnvelope, mySk, myPk [32]byte, currentPSK [32]byte) ([]byte, error) {
	var ephPub [32]byte
	copy(ephPub[:], env.EphemeralPublicKey)

	secret, err := identity.SharedSecret(mySk, ephPub)
	if err != nil {
		return nil, algoerr.Wrap(algoerr.KindDecryptionFailed, err, "ecdh failed")
	}

	if subtle.ConstantTimeCompare(myPk[:], env.SenderPublicKey) == 1 {
		senderKey, err := kdf.Derive32(env.EphemeralPublicKey, hybridIKM(secret, currentPSK), senderKeyInfo(pskSenderInfoPrefix, myPk[:]))
		if err != nil {
			return nil, algoerr.Wrap(algoerr.KindDecryptionFailed, err, "sender key derivation failed")
		}
		symKey, err := openAEAD(senderKey[:], env.Nonce, env.EncryptedSenderKey)
		if err != nil {
			return nil, err
		}
		return openAEAD(symKey, env.Nonce, env.Ciphertext)
	}

	symKey, err := kdf.Derive32(env.EphemeralPublicKey, hybridIKM(secret, currentPSK), messageInfo(pskMessageInfoPrefix, env.SenderPublicKey, myPk[:]))
	if err != nil {
		return nil, algoerr.Wrap(algoerr.KindDecryptionFailed, err, "symmetric key derivation failed")
	}
	return openAEAD(symKey[:], env.Nonce, env.Ciphertext)
}

// hybridIKM concatenates the ECDH secret and the PSK into the 64-byte IKM
// fed to HKDF for PSK-hybrid derivations.
func hybridIKM(ecdhSecret []byte, psk [32]byte) []byte {
	ikm := make([]byte, 0, len(ecdhSecret)+32)
	ikm = append(ikm, ecdhSecret...)
	ikm = append(ikm, psk[:]...)
	return ikm
}
