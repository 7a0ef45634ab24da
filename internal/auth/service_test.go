package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"upaay/backend/internal/storage/memory"
)

func TestCreate(t *testing.T) {
	svc := NewService(memory.NewStore())

	t.Run("valid signup", func(t *testing.T) {
		user, err := svc.Create("citizen@example.com", "password123")
		require.NoError(t, err)
		require.NotNil(t, user)

		assert.NotEmpty(t, user.ID)
		assert.Equal(t, "citizen@example.com", user.Email)
		assert.NotEqual(t, "password123", user.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")))
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		_, err := svc.Create("citizen@example.com", "password456")
		assert.ErrorIs(t, err, ErrEmailExists)
	})

	t.Run("email normalized to lowercase", func(t *testing.T) {
		_, err := svc.Create("CITIZEN@Example.com", "password456")
		assert.ErrorIs(t, err, ErrEmailExists)
	})

	t.Run("invalid email rejected", func(t *testing.T) {
		_, err := svc.Create("not-an-email", "password123")
		assert.ErrorIs(t, err, ErrInvalidEmail)
	})

	t.Run("short password rejected", func(t *testing.T) {
		_, err := svc.Create("other@example.com", "short")
		assert.ErrorIs(t, err, ErrInvalidPassword)
	})

	t.Run("overlong password rejected", func(t *testing.T) {
		_, err := svc.Create("other@example.com", strings.Repeat("x", 73))
		assert.ErrorIs(t, err, ErrInvalidPassword)
	})
}

func TestVerify(t *testing.T) {
	svc := NewService(memory.NewStore())
	_, err := svc.Create("citizen@example.com", "password123")
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		user, err := svc.Verify("citizen@example.com", "password123")
		require.NoError(t, err)
		assert.Equal(t, "citizen@example.com", user.Email)
	})

	t.Run("email case insensitive", func(t *testing.T) {
		user, err := svc.Verify("Citizen@Example.COM", "password123")
		require.NoError(t, err)
		assert.Equal(t, "citizen@example.com", user.Email)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Verify("citizen@example.com", "wrongpassword")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email yields same error as wrong password", func(t *testing.T) {
		_, err := svc.Verify("nobody@example.com", "password123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestValidateEmail(t *testing.T) {
	assert.True(t, ValidateEmail("citizen@example.com"))
	assert.True(t, ValidateEmail("first.last+tag@sub.example.co.in"))
	assert.False(t, ValidateEmail("citizen"))
	assert.False(t, ValidateEmail("citizen@"))
	assert.False(t, ValidateEmail("@example.com"))
	assert.False(t, ValidateEmail("citizen@example"))
}
