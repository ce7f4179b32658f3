package mocks

import (
	"fmt"

	"github.com/mcoot/lobby-accounts/internal/dependencies/random"
)

// MockRandom hands out queued tokens in order
type MockRandom struct {
	tokens []string
	issued int
}

// Ensure MockRandom implements Random
var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a new MockRandom
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// Token returns the next queued token. Once the queue is drained it falls
// back to a numbered token so logins never collide.
func (r *MockRandom) Token(int) string {
	r.issued++
	if len(r.tokens) == 0 {
		return fmt.Sprintf("token-%d", r.issued)
	}
	tok := r.tokens[0]
	r.tokens = r.tokens[1:]
	return tok
}

// QueueToken adds tokens to the queue
func (r *MockRandom) QueueToken(tokens ...string) {
	r.tokens = append(r.tokens, tokens...)
}

// Issued reports how many tokens have been handed out
func (r *MockRandom) Issued() int {
	return r.issued
}
