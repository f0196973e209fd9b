package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prem-2323/CleanCity/pkg/middleware"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("hunter2hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2hunter2", hash)

	assert.True(t, CheckPasswordHash("hunter2hunter2", hash))
	assert.False(t, CheckPasswordHash("wrong-password", hash))
}

func TestGenerateJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWT("u-123", "priya", "Priya Sharma", "cleaner", "Zone B")
	require.NoError(t, err)

	claims, err := middleware.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u-123", claims.UserID)
	assert.Equal(t, "priya", claims.Username)
	assert.Equal(t, "Priya Sharma", claims.Name)
	assert.Equal(t, "cleaner", claims.Role)
	assert.Equal(t, "Zone B", claims.Zone)
}

func TestParseRejectsTamperedToken(t *testing.T) {
	token, err := GenerateJWT("u-123", "priya", "Priya Sharma", "cleaner", "Zone B")
	require.NoError(t, err)

	_, err = middleware.ParseToken(token + "x")
	assert.Error(t, err)
}
