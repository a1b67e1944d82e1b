package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashRoundtrip(t *testing.T) {
	hash, err := HashPassword("volley-secret")
	require.NoError(t, err)
	require.NotEqual(t, "volley-secret", hash)

	assert.True(t, CheckPasswordHash("volley-secret", hash))
	assert.False(t, CheckPasswordHash("wrong-secret", hash))
}

func TestJWTRoundtrip(t *testing.T) {
	secret := []byte("test-signing-key")

	token, err := GenerateJWT(secret, 7, "admin")
	require.NoError(t, err)

	claims, err := ParseJWT(secret, token)
	require.NoError(t, err)

	assert.Equal(t, float64(7), claims["admin_id"])
	assert.Equal(t, "admin", claims["role"])
	assert.NotZero(t, claims["exp"])
}

func TestParseJWT_RejectsWrongSecret(t *testing.T) {
	token, err := GenerateJWT([]byte("key-one"), 1, "admin")
	require.NoError(t, err)

	_, err = ParseJWT([]byte("key-two"), token)
	assert.Error(t, err)
}

func TestParseJWT_RejectsGarbage(t *testing.T) {
	_, err := ParseJWT([]byte("key"), "not.a.token")
	assert.Error(t, err)
}
