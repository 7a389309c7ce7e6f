package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giftflowhq/giftflow-backend/pkg/config"
	"github.com/giftflowhq/giftflow-backend/pkg/enums"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "giftflow-test",
		ExpirationMinutes: 30,
	}
}

func TestMintAndParseAccessToken(t *testing.T) {
	cfg := testJWTConfig()
	now := time.Now().UTC()
	payload := AccessTokenPayload{
		UserID: uuid.New(),
		Role:   enums.UserRoleAdmin,
	}

	token, err := MintAccessToken(cfg, now, payload)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseAccessToken(cfg, token)
	require.NoError(t, err)
	assert.Equal(t, payload.UserID, claims.UserID)
	assert.Equal(t, enums.UserRoleAdmin, claims.Role)
	assert.Equal(t, cfg.Issuer, claims.Issuer)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, now.Add(30*time.Minute), claims.ExpiresAt.Time, time.Second)
}

func TestMintAccessTokenRejectsInvalidRole(t *testing.T) {
	_, err := MintAccessToken(testJWTConfig(), time.Now(), AccessTokenPayload{
		UserID: uuid.New(),
		Role:   enums.UserRole("owner"),
	})
	require.Error(t, err)
}

func TestParseAccessTokenRejectsWrongSecret(t *testing.T) {
	cfg := testJWTConfig()
	token, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{
		UserID: uuid.New(),
		Role:   enums.UserRoleStaff,
	})
	require.NoError(t, err)

	other := cfg
	other.Secret = "different-secret"
	_, err = ParseAccessToken(other, token)
	require.Error(t, err)
}

func TestParseAccessTokenRejectsWrongIssuer(t *testing.T) {
	cfg := testJWTConfig()
	token, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{
		UserID: uuid.New(),
		Role:   enums.UserRoleStaff,
	})
	require.NoError(t, err)

	other := cfg
	other.Issuer = "someone-else"
	_, err = ParseAccessToken(other, token)
	require.Error(t, err)
}

func TestParseAccessTokenRejectsExpired(t *testing.T) {
	cfg := testJWTConfig()
	token, err := MintAccessToken(cfg, time.Now().Add(-2*time.Hour), AccessTokenPayload{
		UserID: uuid.New(),
		Role:   enums.UserRoleStaff,
	})
	require.NoError(t, err)

	_, err = ParseAccessToken(cfg, token)
	require.Error(t, err)
	require.ErrorIs(t, err, jwt.ErrTokenExpired)
}
