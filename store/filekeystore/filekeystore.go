// Package filekeystore is a reference EncryptionKeyStorage implementation
// (spec §6): one file per address, encrypted at rest with a
// password-derived key: PBKDF2-SHA256 from golang.org/x/crypto/pbkdf2
// feeding stdlib AES-256-GCM, following the salted-KDF-then-AEAD shape of
// the teacher's passphrase-based encryption.
package filekeystore

import (
	"crypto/aes"
	stdcipher "crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"os"
	"path/filepath"

	"golang.org/x/crypto/pbkdf2"

	"github.com/CorvidLabs/algochat-core/algoerr"
	"github.com/CorvidLabs/algochat-core/chain"
)

const (
	saltSize       = 32
	nonceSize      = 12
	pbkdf2Rounds   = 100_000
	derivedKeySize = 32 // AES-256
)

// Store is a directory of password-encrypted key files, one per address.
type Store struct {
	dir      string
	password []byte
}

// New returns a Store rooted at dir, encrypting/decrypting with password.
// dir must already exist.
func New(dir string, password []byte) *Store {
	return &Store{dir: dir, password: password}
}

func (s *Store) path(address chain.Address) string {
	return filepath.Join(s.dir, address+".key")
}

func deriveKey(password, salt []byte) []byte {
	return pbkdf2.Key(password, salt, pbkdf2Rounds, derivedKeySize, sha256.New)
}

// Store encrypts and writes privateKey for address. The file layout is
// salt(32) ‖ nonce(12) ‖ ciphertext+tag, with a fresh random salt and
// nonce generated for every write.
func (s *Store) Store(address chain.Address, privateKey []byte) error {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return algoerr.Wrap(algoerr.KindInvalidKey, err, "salt generation failed")
	}
	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return algoerr.Wrap(algoerr.KindInvalidKey, err, "nonce generation failed")
	}

	key := deriveKey(s.password, salt)
	block, err := aes.NewCipher(key)
	if err != nil {
		return algoerr.Wrap(algoerr.KindInvalidKey, err, "aes init failed")
	}
	gcm, err := stdcipher.NewGCM(block)
	if err != nil {
		return algoerr.Wrap(algoerr.KindInvalidKey, err, "gcm init failed")
	}
	ciphertext := gcm.Seal(nil, nonce, privateKey, nil)

	out := make([]byte, 0, saltSize+nonceSize+len(ciphertext))
	out = append(out, salt...)
	out = append(out, nonce...)
	out = append(out, ciphertext...)

	if err := os.WriteFile(s.path(address), out, 0o600); err != nil {
		return algoerr.Wrap(algoerr.KindInvalidKey, err, "write key file failed")
	}
	return nil
}

// Retrieve decrypts and returns the private key stored for address.
func (s *Store) Retrieve(address chain.Address) ([]byte, error) {
	data, err := os.ReadFile(s.path(address))
	if err != nil {
		return nil, algoerr.Wrap(algoerr.KindInvalidKey, err, "read key file failed")
	}
	if len(data) < saltSize+nonceSize {
		return nil, algoerr.New(algoerr.KindInvalidKey, "key file for %s is truncated", address)
	}
	salt := data[:saltSize]
	nonce := data[saltSize : saltSize+nonceSize]
	ciphertext := data[saltSize+nonceSize:]

	key := deriveKey(s.password, salt)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, algoerr.Wrap(algoerr.KindInvalidKey, err, "aes init failed")
	}
	gcm, err := stdcipher.NewGCM(block)
	if err != nil {
		return nil, algoerr.Wrap(algoerr.KindInvalidKey, err, "gcm init failed")
	}
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, algoerr.Wrap(algoerr.KindDecryptionFailed, err, "wrong password or corrupted key file")
	}
	return plaintext, nil
}

// Has reports whether a key file exists for address.
func (s *Store) Has(address chain.Address) (bool, error) {
	_, err := os.Stat(s.path(address))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, algoerr.Wrap(algoerr.KindInvalidKey, err, "stat key file failed")
	}
	return true, nil
}

// Delete removes the key file for address, if any.
func (s *Store) Delete(address chain.Address) error {
	err := os.Remove(s.path(address))
	if err != nil && !os.IsNotExist(err) {
		return algoerr.Wrap(algoerr.KindInvalidKey, err, "delete key file failed")
	}
	return nil
}

// List returns the addresses with a stored key file.
func (s *Store) List() ([]chain.Address, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, algoerr.Wrap(algoerr.KindInvalidKey, err, "list key directory failed")
	}
	var out []chain.Address
	for _, e := range entries {
		name := e.Name()
		const suffix = ".key"
		if len(name) > len(suffix) && name[len(name)-len(suffix):] == suffix {
			out = append(out, name[:len(name)-len(suffix)])
		}
	}
	return out, nil
}
