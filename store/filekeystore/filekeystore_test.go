package filekeystore

import (
	"bytes"
	"os"
	"testing"
)

func TestStoreRetrieveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := New(dir, []byte("correct horse battery staple"))

	priv := bytes.Repeat([]byte{0x42}, 32)
	if err := s.Store("ADDR1", priv); err != nil {
		t.Fatalf("store: %v", err)
	}

	got, err := s.Retrieve("ADDR1")
	if err != nil {
		t.Fatalf("retrieve: %v", err)
	}
	if !bytes.Equal(got, priv) {
		t.Fatalf("round trip mismatch")
	}
}

func TestRetrieveWrongPasswordFails(t *testing.T) {
	dir := t.TempDir()
	s := New(dir, []byte("right password"))
	if err := s.Store("ADDR1", []byte("secret key material")); err != nil {
		t.Fatalf("store: %v", err)
	}

	wrong := New(dir, []byte("wrong password"))
	if _, err := wrong.Retrieve("ADDR1"); err == nil {
		t.Fatalf("expected decryption failure under the wrong password")
	}
}

func TestHasDeleteList(t *testing.T) {
	dir := t.TempDir()
	s := New(dir, []byte("pw"))

	if ok, _ := s.Has("ADDR1"); ok {
		t.Fatalf("expected no key stored yet")
	}
	if err := s.Store("ADDR1", []byte("k1")); err != nil {
		t.Fatalf("store: %v", err)
	}
	if err := s.Store("ADDR2", []byte("k2")); err != nil {
		t.Fatalf("store: %v", err)
	}
	if ok, _ := s.Has("ADDR1"); !ok {
		t.Fatalf("expected key to be present")
	}

	addrs, err := s.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(addrs) != 2 {
		t.Fatalf("expected 2 addresses, got %d: %v", len(addrs), addrs)
	}

	if err := s.Delete("ADDR1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if ok, _ := s.Has("ADDR1"); ok {
		t.Fatalf("expected key to be gone after delete")
	}
}

func TestTwoWritesUseDistinctSalts(t *testing.T) {
	dir := t.TempDir()
	s := New(dir, []byte("pw"))
	if err := s.Store("ADDR1", []byte("material-one")); err != nil {
		t.Fatalf("store: %v", err)
	}
	first, err := readRaw(dir, "ADDR1")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if err := s.Store("ADDR1", []byte("material-one")); err != nil {
		t.Fatalf("store: %v", err)
	}
	second, err := readRaw(dir, "ADDR1")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if bytes.Equal(first[:saltSize], second[:saltSize]) {
		t.Fatalf("salts must differ across writes")
	}
}

func readRaw(dir, address string) ([]byte, error) {
	s := New(dir, nil)
	return os.ReadFile(s.path(address))
}
