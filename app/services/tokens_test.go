package services

import (
	"testing"
	"time"

	"inkwell/app/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, time.Hour)
	token, err := issuer.Issue(&models.User{ID: "user-1", Role: models.RoleAdmin})
	require.NoError(t, err)

	id, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", id.UserID)
	assert.True(t, id.IsAdmin())
}

func TestTokenClaims(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, time.Hour)
	token, err := issuer.Issue(&models.User{ID: "user-1", Role: models.RoleUser})
	require.NoError(t, err)

	parsed, err := jwt.Parse(token, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "user-1", claims["sub"])
	assert.Equal(t, "user", claims["role"])
	assert.Contains(t, claims, "iat")
	assert.Contains(t, claims, "exp")
}

func TestTokenRejected(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, time.Hour)
	user := &models.User{ID: "user-1", Role: models.RoleUser}

	t.Run("empty", func(t *testing.T) {
		_, err := issuer.Parse("")
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := issuer.Parse("not-a-token")
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewTokenIssuer("another-secret-that-is-long-enough", time.Hour)
		token, err := other.Issue(user)
		require.NoError(t, err)
		_, err = issuer.Parse(token)
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("expired", func(t *testing.T) {
		token, err := issuer.Issue(user)
		require.NoError(t, err)
		later := NewTokenIssuer(testSecret, time.Hour)
		later.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		_, err = later.Parse(token)
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("other algorithm", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{
			"sub": "user-1",
			"exp": time.Now().Add(time.Hour).Unix(),
		}).SignedString([]byte(testSecret))
		require.NoError(t, err)
		_, err = issuer.Parse(token)
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("missing subject", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"exp": time.Now().Add(time.Hour).Unix(),
		}).SignedString([]byte(testSecret))
		require.NoError(t, err)
		_, err = issuer.Parse(token)
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})
}
