package jwtx_test

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickplate/quickplate/pkg/jwtx"
)

func newTestKeyPEM(t *testing.T) []byte {
	t.Helper()

	_, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	der, err := x509.MarshalPKCS8PrivateKey(priv)
	require.NoError(t, err)

	return pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})
}

func TestSignVerifyRoundTrip(t *testing.T) {
	signer, err := jwtx.NewSigner("test-key", newTestKeyPEM(t))
	require.NoError(t, err)

	claims := jwtx.NewSessionClaims("01J0USER", "jane@x.com", "Jane Doe", "password", "auth.test", time.Hour, time.Now())
	tokenStr, err := signer.Sign(claims)
	require.NoError(t, err)
	require.NotEmpty(t, tokenStr)

	v := signer.Verifier("auth.test")
	got, err := v.Verify(tokenStr)
	require.NoError(t, err)

	assert.Equal(t, "01J0USER", got.Subject)
	assert.Equal(t, "jane@x.com", got.Email)
	assert.Equal(t, "Jane Doe", got.Name)
	assert.Equal(t, "password", got.Provider)
	assert.NotEmpty(t, got.ID)
}

func TestVerifyExpired(t *testing.T) {
	signer, err := jwtx.NewSigner("test-key", newTestKeyPEM(t))
	require.NoError(t, err)

	claims := jwtx.NewSessionClaims("01J0USER", "jane@x.com", "Jane Doe", "password", "auth.test", -time.Minute, time.Now())
	tokenStr, err := signer.Sign(claims)
	require.NoError(t, err)

	_, err = signer.Verifier("auth.test").Verify(tokenStr)
	assert.ErrorIs(t, err, jwtx.ErrExpired)
}

func TestVerifyIssuerMismatch(t *testing.T) {
	signer, err := jwtx.NewSigner("test-key", newTestKeyPEM(t))
	require.NoError(t, err)

	claims := jwtx.NewSessionClaims("01J0USER", "jane@x.com", "Jane Doe", "password", "auth.test", time.Hour, time.Now())
	tokenStr, err := signer.Sign(claims)
	require.NoError(t, err)

	_, err = signer.Verifier("other.issuer").Verify(tokenStr)
	assert.ErrorIs(t, err, jwtx.ErrIssuer)
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	signer, err := jwtx.NewSigner("test-key", newTestKeyPEM(t))
	require.NoError(t, err)

	other, err := jwtx.NewSigner("test-key", newTestKeyPEM(t))
	require.NoError(t, err)

	claims := jwtx.NewSessionClaims("01J0USER", "jane@x.com", "Jane Doe", "password", "auth.test", time.Hour, time.Now())
	tokenStr, err := signer.Sign(claims)
	require.NoError(t, err)

	_, err = other.Verifier("auth.test").Verify(tokenStr)
	assert.Error(t, err)
}

func TestVerifyRejectsUnknownKID(t *testing.T) {
	signer, err := jwtx.NewSigner("key-a", newTestKeyPEM(t))
	require.NoError(t, err)

	verifierSigner, err := jwtx.NewSigner("key-b", newTestKeyPEM(t))
	require.NoError(t, err)

	claims := jwtx.NewSessionClaims("01J0USER", "jane@x.com", "Jane Doe", "password", "auth.test", time.Hour, time.Now())
	tokenStr, err := signer.Sign(claims)
	require.NoError(t, err)

	_, err = verifierSigner.Verifier("auth.test").Verify(tokenStr)
	assert.Error(t, err)
}

func TestVerifyRejectsNonEdDSA(t *testing.T) {
	signer, err := jwtx.NewSigner("test-key", newTestKeyPEM(t))
	require.NoError(t, err)

	// HS256 token with the right shape must be rejected by the
	// allowed-methods whitelist before any key lookup.
	hs := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    "auth.test",
		Subject:   "01J0USER",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	hs.Header["kid"] = "test-key"
	tokenStr, err := hs.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = signer.Verifier("auth.test").Verify(tokenStr)
	assert.Error(t, err)
}
