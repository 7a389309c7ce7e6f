package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giftflowhq/giftflow-backend/pkg/config"
)

func TestHashAndVerifyPassword(t *testing.T) {
	cfg := config.PasswordConfig{BcryptCost: 4}

	hash, err := HashPassword("s3cret-pass", cfg)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$2"))

	ok, err := VerifyPassword("s3cret-pass", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("wrong-pass", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPasswordRejectsEmpty(t *testing.T) {
	_, err := HashPassword("", config.PasswordConfig{})
	require.Error(t, err)
}

func TestHashPasswordClampsCost(t *testing.T) {
	hash, err := HashPassword("pass", config.PasswordConfig{BcryptCost: 99})
	require.NoError(t, err)

	ok, err := VerifyPassword("pass", hash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	_, err := VerifyPassword("pass", "not-a-bcrypt-hash")
	require.Error(t, err)
}

func TestGenerateTempPassword(t *testing.T) {
	got, err := GenerateTempPassword(16)
	require.NoError(t, err)
	assert.Len(t, got, 16)

	_, err = GenerateTempPassword(0)
	require.Error(t, err)
}
