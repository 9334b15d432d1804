package random

import (
	"crypto/rand"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

// Random provides randomness that can be mocked for testing
type Random interface {
	// Intn returns a random int in [0, n)
	Intn(n int) int

	// ID generates a globally unique random identifier with the given prefix
	ID(prefix string) string
}

// CryptoRandom implements Random using crypto/rand-backed sources
type CryptoRandom struct{}

// New creates a new CryptoRandom
func New() *CryptoRandom {
	return &CryptoRandom{}
}

// Intn returns a cryptographically random int in [0, n)
func (r *CryptoRandom) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	result, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand only fails if the OS entropy source is broken
		return 0
	}
	return int(result.Int64())
}

// ID returns prefix plus a dashless UUIDv4 (crypto/rand backed)
func (r *CryptoRandom) ID(prefix string) string {
	return prefix + strings.ReplaceAll(uuid.NewString(), "-", "")
}
