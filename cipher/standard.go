package cipher

import (
	"crypto/subtle"

	"github.com/CorvidLabs/algochat-core/algoerr"
	"github.com/CorvidLabs/algochat-core/identity"
	"github.com/CorvidLabs/algochat-core/internal/kdf"
	"github.com/CorvidLabs/algochat-core/wire"
)

// MaxStandardPayload is the largest plaintext (in UTF-8 bytes) a v1
// Standard envelope can carry, given the ledger's 1024-byte note cap and
// the 126-byte header (spec §4.E, §6).
const MaxStandardPayload = 882

const (
	standardMessageInfoPrefix = "AlgoChatV1"
	standardSenderInfoPrefix  = "AlgoChatV1-SenderKey"
)

// SealStandard builds a v1 Standard envelope carrying plaintext, readable
// by both senderPub's and recipientPub's private keys (spec §4.E, §9).
func SealStandard(plaintext []byte, senderPub, recipientPub [32]byte) (*wire.StandardEnvelope, error) {
	if len(plaintext) > MaxStandardPayload {
		return nil, algoerr.New(algoerr.KindMessageTooLarge, "plaintext is %d bytes, max %d", len(plaintext), MaxStandardPayload).
			WithField("actual", len(plaintext)).WithField("max", MaxStandardPayload)
	}

	eph, err := identity.GenerateEphemeral()
	if err != nil {
		return nil, err
	}

	rSecret, err := identity.SharedSecret(eph.PrivateKey, recipientPub)
	if err != nil {
		return nil, err
	}
	symKey, err := kdf.Derive32(eph.PublicKey[:], rSecret, messageInfo(standardMessageInfoPrefix, senderPub[:], recipientPub[:]))
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
	senderKey, err := kdf.Derive32(eph.PublicKey[:], sSecret, senderKeyInfo(standardSenderInfoPrefix, senderPub[:]))
	if err != nil {
		return nil, algoerr.Wrap(algoerr.KindInvalidKey, err, "sender key derivation failed")
	}
	encryptedSenderKey, err := sealAEAD(senderKey[:], nonce, symKey[:])
	if err != nil {
		return nil, err
	}

	return &wire.StandardEnvelope{
		SenderPublicKey:    append([]byte(nil), senderPub[:]...),
		EphemeralPublicKey: append([]byte(nil), eph.PublicKey[:]...),
		Nonce:              nonce,
		EncryptedSenderKey: encryptedSenderKey,
		Ciphertext:         ciphertext,
	}, nil
}

// OpenStandard decrypts a v1 Standard envelope using the caller's own key
// pair. myPk must equal either the envelope's senderPublicKey (sender
// path) or the recipient's public key (recipient path); any other key
// collapses to DecryptionFailed, never revealing which AEAD layer failed.
func OpenStandard(env *wire.StandardEnvelope, mySk, myPk [32]byte) ([]byte, error) {
	var ephPub [32]byte
	copy(ephPub[:], env.EphemeralPublicKey)

	secret, err := identity.SharedSecret(mySk, ephPub)
	if err != nil {
		return nil, algoerr.Wrap(algoerr.KindDecryptionFailed, err, "ecdh failed")
	}

	if subtle.ConstantTimeCompare(myPk[:], env.SenderPublicKey) == 1 {
		senderKey, err := kdf.Derive32(env.EphemeralPublicKey, secret, senderKeyInfo(standardSenderInfoPrefix, myPk[:]))
		if err != nil {
			return nil, algoerr.Wrap(algoerr.KindDecryptionFailed, err, "sender key derivation failed")
		}
		symKey, err := openAEAD(senderKey[:], env.Nonce, env.EncryptedSenderKey)
		if err != nil {
			return nil, err
		}
		return openAEAD(symKey, env.Nonce, env.Ciphertext)
	}

	symKey, err := kdf.Derive32(env.EphemeralPublicKey, secret, messageInfo(standardMessageInfoPrefix, env.SenderPublicKey, myPk[:]))
	if err != nil {
		return nil, algoerr.Wrap(algoerr.KindDecryptionFailed, err, "symmetric key derivation failed")
	}
	return openAEAD(symKey[:], env.Nonce, env.Ciphertext)
}

// messageInfo assembles the HKDF info string for the message-key
// derivation: prefix ‖ senderPub ‖ recipientPub, sender first (semantic,
// not sorted — spec §4.E).
func messageInfo(prefix string, senderPub, recipientPub []byte) []byte {
	info := make([]byte, 0, len(prefix)+len(senderPub)+len(recipientPub))
	info = append(info, prefix...)
	info = append(info, senderPub...)
	info = append(info, recipientPub...)
	return info
}

// senderKeyInfo assembles the HKDF info string for the sender-key
// wrapping derivation: prefix ‖ senderPub.
func senderKeyInfo(prefix string, senderPub []byte) []byte {
	info := make([]byte, 0, len(prefix)+len(senderPub))
	info = append(info, prefix...)
	info = append(info, senderPub...)
	return info
}
