package discover

import (
	"testing"

	"github.com/CorvidLabs/algochat-core/chain"
	"github.com/CorvidLabs/algochat-core/cipher"
	"github.com/CorvidLabs/algochat-core/identity"
	"github.com/CorvidLabs/algochat-core/wire"
)

func seed(b byte) []byte {
	s := make([]byte, 32)
	for i := range s {
		s[i] = b
	}
	return s
}

func TestFromAnnouncementFindsBareKey(t *testing.T) {
	const addr = "ADDR_A"
	note := make([]byte, 32)
	for i := range note {
		note[i] = byte(i)
	}
	txs := []chain.NoteTransaction{
		{TxID: "t1", Sender: addr, Receiver: "OTHER", Note: note},
		{TxID: "t2", Sender: addr, Receiver: addr, Note: note, ConfirmedRound: 5},
	}
	dk, err := FromAnnouncement(txs, addr, nil, DefaultAnnouncementSearchDepth, nil)
	if err != nil {
		t.Fatalf("expected discovery to succeed: %v", err)
	}
	if dk.IsVerified {
		t.Fatalf("bare announcement must not be verified")
	}
}

func TestFromAnnouncementNotFound(t *testing.T) {
	txs := []chain.NoteTransaction{
		{TxID: "t1", Sender: "A", Receiver: "B", Note: make([]byte, 32)},
	}
	if _, err := FromAnnouncement(txs, "A", nil, DefaultAnnouncementSearchDepth, nil); err == nil {
		t.Fatalf("expected PublicKeyNotFound when no self-announcement exists")
	}
}

func TestFromAnnouncementSkipsUnparseable(t *testing.T) {
	const addr = "ADDR_A"
	txs := []chain.NoteTransaction{
		{TxID: "bad", Sender: addr, Receiver: addr, Note: []byte{0x01}}, // too short
		{TxID: "good", Sender: addr, Receiver: addr, Note: make([]byte, 32), ConfirmedRound: 2},
	}
	dk, err := FromAnnouncement(txs, addr, nil, DefaultAnnouncementSearchDepth, nil)
	if err != nil {
		t.Fatalf("expected the second transaction to be found: %v", err)
	}
	_ = dk
}

func TestFromEnvelopesFindsSenderKey(t *testing.T) {
	const addr = "ADDR_A"
	a, _ := identity.DeriveIdentity(seed(0x01))
	b, _ := identity.DeriveIdentity(seed(0x02))
	env, err := cipher.SealStandard([]byte("hi"), a.PublicKey, b.PublicKey)
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	note, err := wire.EncodeStandard(env)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	txs := []chain.NoteTransaction{
		{TxID: "t1", Sender: addr, Receiver: "RECV", Note: note},
	}
	dk, err := FromEnvelopes(txs, addr, DefaultEnvelopeSearchDepth, nil)
	if err != nil {
		t.Fatalf("expected envelope discovery to succeed: %v", err)
	}
	if dk.IsVerified {
		t.Fatalf("envelope-embedded keys must never report verified")
	}
	if dk.PublicKey != a.PublicKey {
		t.Fatalf("discovered key does not match sender's actual identity")
	}
}

func TestFromEnvelopesNotFound(t *testing.T) {
	txs := []chain.NoteTransaction{
		{TxID: "t1", Sender: "A", Receiver: "B", Note: []byte{0x09, 0x09}},
	}
	if _, err := FromEnvelopes(txs, "A", DefaultEnvelopeSearchDepth, nil); err == nil {
		t.Fatalf("expected PublicKeyNotFound when no envelope is present")
	}
}
