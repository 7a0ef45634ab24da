package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-32-characters-long-minimum"

func TestGenerateAndValidateToken(t *testing.T) {
	manager := NewManager(testSecret, "upaay", 24*time.Hour)

	token, err := manager.GenerateToken("user-1", "citizen@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "citizen@example.com", claims.Email)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "upaay", claims.Issuer)
}

func TestValidateTokenFailures(t *testing.T) {
	manager := NewManager(testSecret, "upaay", 24*time.Hour)

	t.Run("garbage token", func(t *testing.T) {
		_, err := manager.ValidateToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewManager("another-secret-key-32-characters-long!!", "upaay", 24*time.Hour)
		token, err := other.GenerateToken("user-1", "citizen@example.com")
		require.NoError(t, err)

		_, err = manager.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		expired := NewManager(testSecret, "upaay", -time.Minute)
		token, err := expired.GenerateToken("user-1", "citizen@example.com")
		require.NoError(t, err)

		_, err = manager.ValidateToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})
}
