package fakeapi

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	secret := []byte("secret")
	now := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

	tok, err := GenerateToken("a@b.c", secret, now, time.Hour)
	require.NoError(t, err)

	email, err := EmailFromToken(tok, secret, now.Add(30*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, "a@b.c", email)

	_, err = EmailFromToken(tok, secret, now.Add(2*time.Hour))
	require.ErrorIs(t, err, jwt.ErrTokenExpired)

	_, err = EmailFromToken(tok, []byte("other"), now)
	require.Error(t, err)

	_, err = EmailFromToken("garbage", secret, now)
	require.Error(t, err)
}

func TestEmailFromToken_RejectsNonHMAC(t *testing.T) {
	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{Email: "a@b.c"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = EmailFromToken(tok, []byte("secret"), time.Now())
	require.Error(t, err)
}
