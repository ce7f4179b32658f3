package random

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenLengthAndAlphabet(t *testing.T) {
	r := New()

	tok := r.Token(32)
	assert.Len(t, tok, 32)
	for _, c := range tok {
		assert.True(t, strings.ContainsRune(tokenAlphabet, c), "unexpected rune %q", c)
	}
}

func TestTokensDiffer(t *testing.T) {
	r := New()
	assert.NotEqual(t, r.Token(32), r.Token(32))
}

func TestTokenNonPositiveLength(t *testing.T) {
	assert.Empty(t, New().Token(0))
	assert.Empty(t, New().Token(-1))
}
