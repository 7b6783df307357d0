package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheck(t *testing.T) {
	hash, err := HashPasswordAsBcrypt("s3cret")
	require.NoError(t, err)

	assert.NotEqual(t, "s3cret", hash)
	assert.Len(t, hash, 60)
	assert.True(t, CheckPasswordHash(hash, "s3cret"))
	assert.False(t, CheckPasswordHash(hash, "S3cret"))
}

func TestHashesAreSalted(t *testing.T) {
	a, err := HashPasswordAsBcrypt("same")
	require.NoError(t, err)
	b, err := HashPasswordAsBcrypt("same")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestCheckRejectsMalformedHash(t *testing.T) {
	assert.False(t, CheckPasswordHash("", "anything"))
	assert.False(t, CheckPasswordHash("plaintext", "plaintext"))
}
