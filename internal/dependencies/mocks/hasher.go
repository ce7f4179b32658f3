package mocks

import (
	"errors"
	"strings"

	"github.com/mcoot/lobby-accounts/internal/dependencies/hasher"
)

const mockHashPrefix = "hashed:"

// MockHasher is a reversible Hasher for tests
type MockHasher struct {
	// FailHash makes the next Hash calls return an error
	FailHash bool
}

// Ensure MockHasher implements Hasher
var _ hasher.Hasher = (*MockHasher)(nil)

// NewMockHasher creates a new MockHasher
func NewMockHasher() *MockHasher {
	return &MockHasher{}
}

// Hash prefixes plain with a fixed marker
func (h *MockHasher) Hash(plain string) (string, error) {
	if h.FailHash {
		return "", errors.New("mock hash failure")
	}
	return mockHashPrefix + plain, nil
}

// Verify checks plain against a digest produced by Hash
func (h *MockHasher) Verify(plain, digest string) bool {
	return strings.HasPrefix(digest, mockHashPrefix) && strings.TrimPrefix(digest, mockHashPrefix) == plain
}
