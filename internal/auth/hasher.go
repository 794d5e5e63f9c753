package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"
)

// Hasher turns a plaintext credential into a storable digest and checks a
// plaintext against a stored digest. Implementations may be salted, so
// Verify is the only valid comparison; never compare digests directly.
type Hasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext string, digest string) bool
}

// SHA256Hasher is the legacy scheme existing user files were written with:
// a single unsalted sha256 round, hex encoded. It is deliberately weak and
// kept only for compatibility with stores produced by earlier releases;
// new deployments should prefer BcryptHasher.
type SHA256Hasher struct{}

func (SHA256Hasher) Hash(plaintext string) (string, error) {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:]), nil
}

func (h SHA256Hasher) Verify(plaintext string, digest string) bool {
	computed, _ := h.Hash(plaintext)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(digest)) == 1
}

// BcryptHasher is the salted replacement scheme. Digests it produces are
// not interchangeable with sha256 ones; existing hashes are not migrated.
type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(plaintext string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = 12
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), cost)
	if err != nil {
		return "", err
	}

	return string(digest), nil
}

func (BcryptHasher) Verify(plaintext string, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
