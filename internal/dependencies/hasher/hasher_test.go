package hasher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerify(t *testing.T) {
	h := New(bcrypt.MinCost)

	digest, err := h.Hash("Secret1!")
	require.NoError(t, err)
	assert.NotEqual(t, "Secret1!", digest)

	assert.True(t, h.Verify("Secret1!", digest))
	assert.False(t, h.Verify("Secret2!", digest))
	assert.False(t, h.Verify("Secret1!", "not-a-digest"))
}

func TestHashIsSalted(t *testing.T) {
	h := New(bcrypt.MinCost)

	a, err := h.Hash("Secret1!")
	require.NoError(t, err)
	b, err := h.Hash("Secret1!")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestDefaultCost(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, New(0).cost)
}

func TestHashRejectsOverlongInput(t *testing.T) {
	h := New(bcrypt.MinCost)

	long := make([]byte, 73)
	for i := range long {
		long[i] = 'a'
	}
	_, err := h.Hash(string(long))
	assert.Error(t, err)
}
