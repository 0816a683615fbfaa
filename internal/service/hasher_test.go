package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptHasherRoundTrip(t *testing.T) {
	h := NewBcryptHasher()

	digest, err := h.Hash("s3cret")
	require.NoError(t, err)
	require.NotEmpty(t, digest)
	assert.NotEqual(t, "s3cret", digest)

	assert.True(t, h.Verify("s3cret", digest))
	assert.False(t, h.Verify("wrong", digest))
}

func TestBcryptHasherDigestsDiffer(t *testing.T) {
	h := NewBcryptHasher()

	a, err := h.Hash("s3cret")
	require.NoError(t, err)
	b, err := h.Hash("s3cret")
	require.NoError(t, err)

	// The salt is embedded, so two digests of the same password differ
	// yet both verify.
	assert.NotEqual(t, a, b)
	assert.True(t, h.Verify("s3cret", a))
	assert.True(t, h.Verify("s3cret", b))
}

func TestBcryptHasherBlankPassword(t *testing.T) {
	h := NewBcryptHasher()

	digest, err := h.Hash("")
	require.NoError(t, err)
	assert.Empty(t, digest)

	assert.True(t, h.Verify("", ""))
	assert.True(t, h.Verify("   ", ""))
	assert.False(t, h.Verify("", "some-digest"))

	nonBlank, err := h.Hash("s3cret")
	require.NoError(t, err)
	assert.False(t, h.Verify("", nonBlank))
}
