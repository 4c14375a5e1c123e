package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPasswordRoundtrip(t *testing.T) {
	digest, err := HashPassword("correct horse battery staple", bcrypt.MinCost)
	require.NoError(t, err)
	require.NotEmpty(t, digest)
	assert.NotEqual(t, "correct horse battery staple", digest)

	assert.NoError(t, ComparePassword(digest, "correct horse battery staple"))
	assert.Error(t, ComparePassword(digest, "wrong"))
}

func TestHashPasswordSaltedPerCall(t *testing.T) {
	first, err := HashPassword("same input", bcrypt.MinCost)
	require.NoError(t, err)
	second, err := HashPassword("same input", bcrypt.MinCost)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.NoError(t, ComparePassword(first, "same input"))
	assert.NoError(t, ComparePassword(second, "same input"))
}

func TestComparePasswordNeverPanics(t *testing.T) {
	assert.Error(t, ComparePassword("not a bcrypt digest", "anything"))
	assert.Error(t, ComparePassword("", ""))
}
