package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("test_password")
	require.NoError(t, err)
	require.NotEqual(t, "test_password", hash)

	require.NoError(t, CheckPassword(hash, "test_password"))
	require.ErrorIs(t, CheckPassword(hash, "wrong"), ErrMismatchedPassword)
	require.ErrorIs(t, CheckPassword("", "test_password"), ErrMismatchedPassword)
	require.ErrorIs(t, CheckPassword("plain-text", "plain-text"), ErrMismatchedPassword)
}

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour, "taxiservice")

	tok, expires, err := issuer.Issue(7, "alice")
	require.NoError(t, err)
	require.WithinDuration(t, time.Now().Add(time.Hour), expires, 5*time.Second)

	id, claims, err := issuer.Parse(tok)
	require.NoError(t, err)
	require.Equal(t, int64(7), id)
	require.Equal(t, "alice", claims.Username)
	require.Equal(t, "taxiservice", claims.Issuer)
}

func TestTokenIssuer_RejectsWrongSecret(t *testing.T) {
	tok, _, err := NewTokenIssuer("one", time.Hour, "").Issue(1, "bob")
	require.NoError(t, err)

	_, _, err = NewTokenIssuer("two", time.Hour, "").Parse(tok)
	require.Error(t, err)
}

func TestTokenIssuer_RejectsExpired(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Minute, "")
	issuer.now = func() time.Time { return time.Now().Add(-time.Hour) }
	tok, _, err := issuer.Issue(1, "bob")
	require.NoError(t, err)

	issuer.now = time.Now
	_, _, err = issuer.Parse(tok)
	require.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestTokenIssuer_RejectsOtherAlgorithms(t *testing.T) {
	claims := Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "1"}}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, _, err = NewTokenIssuer("test-secret", time.Hour, "").Parse(tok)
	require.Error(t, err)
}

func TestTokenIssuer_RejectsBadSubject(t *testing.T) {
	claims := Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "not-a-number"}}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, _, err = NewTokenIssuer("test-secret", time.Hour, "").Parse(tok)
	require.Error(t, err)
}
