// Command algochat-vectors exercises the library end to end: it derives
// identities for two accounts, seals and opens a v1 Standard envelope and
// a v1.1 PSK envelope from both sides, and prints the wire sizes and
// envelope kind so the output can be diffed against the protocol's
// reference test vectors (spec §8). It is a smoke check, not a
// conformance suite — the PSK derivation output is not hardcoded here
// since HKDF-SHA256 output bytes cannot be hand-verified without running
// the code.
package main

import (
	"crypto/rand"
	"fmt"
	"os"

	"github.com/CorvidLabs/algochat-core/chain"
	"github.com/CorvidLabs/algochat-core/chain/fake"
	"github.com/CorvidLabs/algochat-core/cipher"
	"github.com/CorvidLabs/algochat-core/config"
	"github.com/CorvidLabs/algochat-core/discover"
	"github.com/CorvidLabs/algochat-core/identity"
	"github.com/CorvidLabs/algochat-core/payload"
	"github.com/CorvidLabs/algochat-core/ratchet"
	"github.com/CorvidLabs/algochat-core/replay"
	"github.com/CorvidLabs/algochat-core/wire"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "ERROR: "+err.Error())
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Default()

	alice, err := randomIdentity()
	if err != nil {
		return err
	}
	bob, err := randomIdentity()
	if err != nil {
		return err
	}

	if err := standardVector(alice, bob); err != nil {
		return err
	}
	if err := pskVector(alice, bob); err != nil {
		return err
	}
	if err := keyPublishVector(alice); err != nil {
		return err
	}
	if err := replayVector(cfg); err != nil {
		return err
	}
	if err := discoverVector(alice, bob, cfg); err != nil {
		return err
	}
	return nil
}

func randomIdentity() (identity.KeyPair, error) {
	seed := make([]byte, 32)
	if _, err := rand.Read(seed); err != nil {
		return identity.KeyPair{}, err
	}
	return identity.DeriveIdentity(seed)
}

func standardVector(alice, bob identity.KeyPair) error {
	plaintext := payload.BuildText("hello bob", "", "")
	env, err := cipher.SealStandard(plaintext, alice.PublicKey, bob.PublicKey)
	if err != nil {
		return fmt.Errorf("seal standard: %w", err)
	}
	wireBytes, err := wire.EncodeStandard(env)
	if err != nil {
		return fmt.Errorf("encode standard: %w", err)
	}

	fromBob, err := cipher.OpenStandard(env, bob.PrivateKey, bob.PublicKey)
	if err != nil {
		return fmt.Errorf("recipient open: %w", err)
	}
	fromAlice, err := cipher.OpenStandard(env, alice.PrivateKey, alice.PublicKey)
	if err != nil {
		return fmt.Errorf("sender open: %w", err)
	}
	if string(fromBob) != string(plaintext) || string(fromAlice) != string(plaintext) {
		return fmt.Errorf("standard envelope round trip mismatch")
	}

	fmt.Printf("standard: %d wire bytes, header %d, both sides opened cleanly\n", len(wireBytes), wire.StandardHeaderSize)
	return nil
}

func pskVector(alice, bob identity.KeyPair) error {
	var initialPSK [32]byte
	if _, err := rand.Read(initialPSK[:]); err != nil {
		return err
	}
	const counter = 0
	psk, err := ratchet.DeriveAtCounter(initialPSK, counter)
	if err != nil {
		return fmt.Errorf("derive psk: %w", err)
	}

	plaintext := payload.BuildText("hello bob, with a psk", "", "")
	env, err := cipher.SealPSK(plaintext, alice.PublicKey, bob.PublicKey, psk, counter)
	if err != nil {
		return fmt.Errorf("seal psk: %w", err)
	}
	wireBytes, err := wire.EncodePSK(env)
	if err != nil {
		return fmt.Errorf("encode psk: %w", err)
	}

	got, err := cipher.OpenPSK(env, bob.PrivateKey, bob.PublicKey, psk)
	if err != nil {
		return fmt.Errorf("recipient open: %w", err)
	}
	fromAlice, err := cipher.OpenPSK(env, alice.PrivateKey, alice.PublicKey, psk)
	if err != nil {
		return fmt.Errorf("sender open: %w", err)
	}
	if string(got) != string(plaintext) || string(fromAlice) != string(plaintext) {
		return fmt.Errorf("psk envelope round trip mismatch")
	}

	sessionPSK, err := ratchet.DeriveSession(initialPSK, 1)
	if err != nil {
		return err
	}
	atCounter100, err := ratchet.DeriveAtCounter(initialPSK, ratchet.SessionSize)
	if err != nil {
		return err
	}
	viaPosition, err := ratchet.DerivePosition(sessionPSK, 0)
	if err != nil {
		return err
	}
	if atCounter100 != viaPosition {
		return fmt.Errorf("ratchet session boundary invariant violated")
	}

	fmt.Printf("psk: %d wire bytes, header %d, counter %d, session-boundary invariant holds\n", len(wireBytes), wire.PSKHeaderSize, counter)
	return nil
}

func replayVector(cfg config.Params) error {
	w := replay.NewSafeWindowWithWindow(cfg.ReplayWindow)
	if err := w.CheckAndRecord(0); err != nil {
		return fmt.Errorf("replay: first counter rejected: %w", err)
	}
	if err := w.CheckAndRecord(0); err == nil {
		return fmt.Errorf("replay: replayed counter should have been rejected")
	}
	farCounter := cfg.ReplayWindow + 1
	if err := w.CheckAndRecord(farCounter); err == nil {
		return fmt.Errorf("replay: counter past the configured window should have been rejected")
	}

	fmt.Printf("replay: window %d, replay and out-of-window counters correctly rejected\n", cfg.ReplayWindow)
	return nil
}

func discoverVector(alice, bob identity.KeyPair, cfg config.Params) error {
	const aliceAddr chain.Address = "ALICE"
	const bobAddr chain.Address = "BOB"

	env, err := cipher.SealStandard(payload.BuildKeyPublish(), alice.PublicKey, bob.PublicKey)
	if err != nil {
		return fmt.Errorf("discover: seal announcement envelope: %w", err)
	}
	note, err := wire.EncodeStandard(env)
	if err != nil {
		return fmt.Errorf("discover: encode announcement envelope: %w", err)
	}

	client := fake.New(chain.NoteTransaction{TxID: "t1", Sender: aliceAddr, Receiver: bobAddr, Note: note})
	txs, err := client.SearchTransactions(aliceAddr, nil, cfg.EnvelopeSearchDepth)
	if err != nil {
		return fmt.Errorf("discover: search: %w", err)
	}

	dk, err := discover.FromEnvelopes(txs, aliceAddr, cfg.EnvelopeSearchDepth, nil)
	if err != nil {
		return fmt.Errorf("discover: from envelopes: %w", err)
	}
	if dk.PublicKey != alice.PublicKey {
		return fmt.Errorf("discover: recovered key does not match alice's identity")
	}

	fmt.Printf("discover: found alice's key within %d transactions (configured depth %d)\n", len(txs), cfg.EnvelopeSearchDepth)
	return nil
}

func keyPublishVector(alice identity.KeyPair) error {
	env, err := cipher.SealStandard(payload.BuildKeyPublish(), alice.PublicKey, alice.PublicKey)
	if err != nil {
		return fmt.Errorf("seal key-publish: %w", err)
	}
	plaintext, err := cipher.OpenStandard(env, alice.PrivateKey, alice.PublicKey)
	if err != nil {
		return fmt.Errorf("open key-publish: %w", err)
	}
	if _, ok := payload.Classify(plaintext); ok {
		return fmt.Errorf("key-publish sentinel should classify as ok=false")
	}
	fmt.Println("key-publish: self-addressed envelope opened and classified as a key-publish sentinel")
	return nil
}
