package hash

import (
	"encoding/hex"

	"golang.org/x/crypto/sha3"
)

// Hasher turns a credential into a verifiable digest. Verification re-hashes
// the supplied plaintext and compares digests, so implementations must be
// deterministic.
type Hasher interface {
	Hash(plaintext string) string
}

// SHA3 hashes credentials with SHA3-256, hex-encoded
type SHA3 struct{}

// NewSHA3 creates a SHA3 hasher
func NewSHA3() SHA3 {
	return SHA3{}
}

var _ Hasher = SHA3{}

// Hash returns the hex-encoded SHA3-256 digest of plaintext
func (SHA3) Hash(plaintext string) string {
	sum := sha3.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}
