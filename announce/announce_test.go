package announce

import (
	"crypto/ed25519"
	"crypto/rand"
	"testing"
)

func TestParseTooShortIsNotAnnouncement(t *testing.T) {
	if _, ok := Parse(make([]byte, 31), nil); ok {
		t.Fatalf("31-byte note must not parse as an announcement")
	}
}

func TestParseBareKey(t *testing.T) {
	note := make([]byte, 32)
	for i := range note {
		note[i] = byte(i)
	}
	dk, ok := Parse(note, nil)
	if !ok {
		t.Fatalf("expected a 32-byte note to parse")
	}
	if dk.IsVerified {
		t.Fatalf("bare key must never be verified")
	}
	if dk.PublicKey[0] != 0 || dk.PublicKey[31] != 31 {
		t.Fatalf("public key bytes not copied correctly: %v", dk.PublicKey)
	}
}

func TestParseSignedAnnouncementVerifies(t *testing.T) {
	edPub, edPriv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("generate ed25519 key: %v", err)
	}
	x25519Key := make([]byte, 32)
	rand.Read(x25519Key)
	sig := ed25519.Sign(edPriv, x25519Key)

	note := append(append([]byte{}, x25519Key...), sig...)
	dk, ok := Parse(note, edPub)
	if !ok {
		t.Fatalf("expected a 96-byte note to parse")
	}
	if !dk.IsVerified {
		t.Fatalf("valid signature over the correct identity should verify")
	}
}

func TestParseSignedAnnouncementWrongIdentityFails(t *testing.T) {
	_, edPriv, _ := ed25519.GenerateKey(rand.Reader)
	otherPub, _, _ := ed25519.GenerateKey(rand.Reader)
	x25519Key := make([]byte, 32)
	rand.Read(x25519Key)
	sig := ed25519.Sign(edPriv, x25519Key)

	note := append(append([]byte{}, x25519Key...), sig...)
	dk, ok := Parse(note, otherPub)
	if !ok {
		t.Fatalf("expected a 96-byte note to parse")
	}
	if dk.IsVerified {
		t.Fatalf("signature verified against the wrong identity must fail")
	}
}

func TestParseWithoutEd25519KeyNeverVerifies(t *testing.T) {
	note := make([]byte, 96)
	rand.Read(note)
	dk, ok := Parse(note, nil)
	if !ok {
		t.Fatalf("expected a 96-byte note to parse")
	}
	if dk.IsVerified {
		t.Fatalf("without an identity key, verification must not happen")
	}
}

func TestParseMidLengthNoteIsBareKey(t *testing.T) {
	note := make([]byte, 50)
	rand.Read(note)
	edPub, _, _ := ed25519.GenerateKey(rand.Reader)
	dk, ok := Parse(note, edPub)
	if !ok {
		t.Fatalf("expected a 50-byte note to parse")
	}
	if dk.IsVerified {
		t.Fatalf("a note shorter than the signed form must never verify")
	}
}
