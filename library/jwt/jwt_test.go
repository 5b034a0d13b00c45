package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSignVerify(t *testing.T) {
	j, err := New([]byte("test-secret"))
	require.NoError(t, err)

	token, err := j.Sign("68a1b2c3d4e5f60718293a4b", "admin", ExpiresLogin)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := j.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "68a1b2c3d4e5f60718293a4b", claims.UserID)
	require.Equal(t, "admin", claims.Role)
	require.True(t, claims.ExpiresAt.After(time.Now().Add(6*24*time.Hour)))
}

func TestVerifyRejects(t *testing.T) {
	j, err := New([]byte("test-secret"))
	require.NoError(t, err)

	t.Run("garbage", func(t *testing.T) {
		_, err := j.Verify("not-a-token")
		require.Error(t, err)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other, err := New([]byte("another-secret"))
		require.NoError(t, err)
		token, err := other.Sign("u1", "user", ExpiresLogin)
		require.NoError(t, err)

		_, err = j.Verify(token)
		require.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		token, err := j.Sign("u1", "user", -time.Hour)
		require.NoError(t, err)

		_, err = j.Verify(token)
		require.Error(t, err)
	})
}

func TestNewRequiresSecret(t *testing.T) {
	_, err := New(nil)
	require.Error(t, err)
}
