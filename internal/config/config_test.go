package config

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionClaimsRoundTrip(t *testing.T) {
	j := NewJWTWithSecret([]byte("secret"))
	token, err := j.Sign(j.NewSessionClaims("abc"))
	require.NoError(t, err)

	claims, err := j.ParseSessionClaims(token)
	require.NoError(t, err)
	assert.Equal(t, "abc", claims.SessionId())
}

func TestSessionClaimsWrongSecret(t *testing.T) {
	token, err := NewJWTWithSecret([]byte("one")).Sign(
		NewJWTWithSecret([]byte("one")).NewSessionClaims("abc"),
	)
	require.NoError(t, err)

	_, err = NewJWTWithSecret([]byte("two")).ParseSessionClaims(token)
	assert.Error(t, err)
}

func TestSessionClaimsExpired(t *testing.T) {
	j := NewJWTWithSecret([]byte("secret"))
	claims := j.NewSessionClaims("abc")
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
	token, err := j.Sign(claims)
	require.NoError(t, err)

	_, err = j.ParseSessionClaims(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestNewJWTFromEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "from-env")
	j, err := NewJWT()
	require.NoError(t, err)
	assert.Equal(t, []byte("from-env"), j.secret)
}

func TestNewSessions(t *testing.T) {
	t.Setenv("SESSION_LIMIT", "5")
	t.Setenv("SESSION_TTL", "30s")
	s, err := NewSessions()
	require.NoError(t, err)
	assert.Equal(t, 5, s.Limit)
	assert.Equal(t, 30*time.Second, s.TTL)
	assert.Equal(t, 30*time.Second, s.SweepInterval)

	t.Setenv("SESSION_LIMIT", "many")
	_, err = NewSessions()
	assert.Error(t, err)
}

func TestPort(t *testing.T) {
	t.Setenv("APP_PORT", "")
	assert.Equal(t, ":8080", Port())
	t.Setenv("APP_PORT", ":9000")
	assert.Equal(t, ":9000", Port())
}

func TestDevelopment(t *testing.T) {
	t.Setenv("DEVELOPMENT", "1")
	assert.True(t, Development())
	t.Setenv("DEVELOPMENT", "0")
	assert.False(t, Development())
}
