package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHasherRoundTrip(t *testing.T) {
	h := NewHasher()

	digest, err := h.Hash("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", digest)

	cost, err := bcrypt.Cost([]byte(digest))
	require.NoError(t, err)
	assert.Equal(t, PasswordCost, cost)

	assert.True(t, h.Verify("correct horse battery staple", digest))
	assert.False(t, h.Verify("correct horse battery stapler", digest))
	assert.False(t, h.Verify("", digest))
}

func TestHasherSaltsEachDigest(t *testing.T) {
	h := NewHasher()

	a, err := h.Hash("same-password")
	require.NoError(t, err)
	b, err := h.Hash("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.True(t, h.Verify("same-password", a))
	assert.True(t, h.Verify("same-password", b))
}

func TestHasherRejectsEmptyPassword(t *testing.T) {
	_, err := NewHasher().Hash("")
	require.ErrorIs(t, err, ErrEmptyPassword)
}

func TestVerifyAgainstMalformedDigest(t *testing.T) {
	assert.False(t, NewHasher().Verify("anything", "not-a-bcrypt-hash"))
}
