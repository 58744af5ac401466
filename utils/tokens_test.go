package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shuno-backend/models"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	user := &models.User{ID: 12, Email: "guest@example.com", Role: models.RoleUser}

	token, err := SignAccessToken("secret", user, time.Hour)
	require.NoError(t, err)

	claims, err := ParseAccessToken("secret", token)
	require.NoError(t, err)
	assert.Equal(t, uint(12), claims.UserID)
	assert.Equal(t, models.RoleUser, claims.Role)
	assert.Equal(t, "guest@example.com", claims.Subject)
	assert.NotEmpty(t, claims.ID)
}

func TestAccessTokenWrongSecret(t *testing.T) {
	user := &models.User{ID: 1, Email: "a@b.c", Role: models.RoleAdmin}
	token, err := SignAccessToken("secret", user, time.Hour)
	require.NoError(t, err)

	_, err = ParseAccessToken("other", token)
	assert.Error(t, err)
}

func TestAccessTokenExpired(t *testing.T) {
	user := &models.User{ID: 1, Email: "a@b.c", Role: models.RoleUser}
	token, err := SignAccessToken("secret", user, -time.Minute)
	require.NoError(t, err)

	_, err = ParseAccessToken("secret", token)
	assert.Error(t, err)
}

func TestGenerateTokenHex(t *testing.T) {
	a, err := GenerateTokenHex(32)
	require.NoError(t, err)
	b, err := GenerateTokenHex(32)
	require.NoError(t, err)

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}
