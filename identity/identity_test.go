package identity

import (
	"bytes"
	"testing"
)

func seed(b byte) []byte {
	s := make([]byte, 32)
	for i := range s {
		s[i] = b
	}
	return s
}

func TestDeriveIdentityDeterministic(t *testing.T) {
	a1, err := DeriveIdentity(seed(0x01))
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	a2, err := DeriveIdentity(seed(0x01))
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	if a1.PrivateKey != a2.PrivateKey || a1.PublicKey != a2.PublicKey {
		t.Fatalf("derivation is not deterministic")
	}
}

func TestDeriveIdentityDistinctSeeds(t *testing.T) {
	a, _ := DeriveIdentity(seed(0x01))
	b, _ := DeriveIdentity(seed(0x02))
	if bytes.Equal(a.PublicKey[:], b.PublicKey[:]) {
		t.Fatalf("distinct seeds produced the same public key")
	}
}

func TestDeriveIdentityRejectsBadSeedLength(t *testing.T) {
	if _, err := DeriveIdentity(make([]byte, 31)); err == nil {
		t.Fatalf("expected error for short seed")
	}
	if _, err := DeriveIdentity(make([]byte, 33)); err == nil {
		t.Fatalf("expected error for long seed")
	}
}

func TestGenerateEphemeralUniqueness(t *testing.T) {
	a, err := GenerateEphemeral()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	b, err := GenerateEphemeral()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if a.PublicKey == b.PublicKey {
		t.Fatalf("two ephemeral key pairs collided")
	}
}

func TestSharedSecretSymmetric(t *testing.T) {
	a, _ := DeriveIdentity(seed(0x01))
	b, _ := DeriveIdentity(seed(0x02))
	s1, err := SharedSecret(a.PrivateKey, b.PublicKey)
	if err != nil {
		t.Fatalf("shared secret: %v", err)
	}
	s2, err := SharedSecret(b.PrivateKey, a.PublicKey)
	if err != nil {
		t.Fatalf("shared secret: %v", err)
	}
	if !bytes.Equal(s1, s2) {
		t.Fatalf("ecdh is not symmetric")
	}
}
