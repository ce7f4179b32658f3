package random

import (
	"crypto/rand"
)

// tokenAlphabet is URL safe so tokens can travel in query strings
const tokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

// Random produces unguessable access tokens and can be mocked for testing
type Random interface {
	// Token returns a random URL-safe string of the given length
	Token(length int) string
}

// CryptoRandom implements Random using crypto/rand
type CryptoRandom struct{}

// New creates a new CryptoRandom
func New() *CryptoRandom {
	return &CryptoRandom{}
}

// Token draws length characters from the URL-safe alphabet. The alphabet has
// 64 symbols, so the low six bits of each random byte index it uniformly.
func (r *CryptoRandom) Token(length int) string {
	if length <= 0 {
		return ""
	}
	buf := make([]byte, length)
	// crypto/rand.Read never returns an error on supported platforms
	_, _ = rand.Read(buf)
	for i, b := range buf {
		buf[i] = tokenAlphabet[b&63]
	}
	return string(buf)
}
