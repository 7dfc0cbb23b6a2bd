package identity

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukydev/carkit/internal/apperror"
)

const testKid = "test-key-1"

func jwksServer(t *testing.T, pub *rsa.PublicKey) *httptest.Server {
	t.Helper()
	jwks := map[string]interface{}{
		"keys": []map[string]string{{
			"kty": "RSA",
			"kid": testKid,
			"use": "sig",
			"alg": "RS256",
			"n":   base64.RawURLEncoding.EncodeToString(pub.N.Bytes()),
			"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(pub.E)).Bytes()),
		}},
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(jwks)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func signIdentityToken(t *testing.T, key *rsa.PrivateKey, kid string, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	tok.Header["kid"] = kid
	signed, err := tok.SignedString(key)
	require.NoError(t, err)
	return signed
}

func TestAppleVerifier(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	srv := jwksServer(t, &key.PublicKey)
	verifier, err := NewAppleVerifier(context.Background(), srv.URL)
	require.NoError(t, err)

	exp := time.Now().Add(time.Hour).Unix()

	t.Run("valid token yields subject and email", func(t *testing.T) {
		raw := signIdentityToken(t, key, testKid, jwt.MapClaims{
			"sub":   "sub-1",
			"email": "driver@example.com",
			"exp":   exp,
		})

		ident, err := verifier.Verify(context.Background(), raw)
		require.NoError(t, err)
		assert.Equal(t, "sub-1", ident.Subject)
		assert.Equal(t, "driver@example.com", ident.Email)
	})

	t.Run("email is optional", func(t *testing.T) {
		raw := signIdentityToken(t, key, testKid, jwt.MapClaims{"sub": "sub-2", "exp": exp})

		ident, err := verifier.Verify(context.Background(), raw)
		require.NoError(t, err)
		assert.Equal(t, "sub-2", ident.Subject)
		assert.Empty(t, ident.Email)
	})

	t.Run("unknown key id rejected", func(t *testing.T) {
		raw := signIdentityToken(t, key, "other-kid", jwt.MapClaims{"sub": "sub-1", "exp": exp})

		_, err := verifier.Verify(context.Background(), raw)
		assert.ErrorIs(t, err, apperror.ErrInvalidToken)
	})

	t.Run("token signed by another key rejected", func(t *testing.T) {
		otherKey, err := rsa.GenerateKey(rand.Reader, 2048)
		require.NoError(t, err)
		raw := signIdentityToken(t, otherKey, testKid, jwt.MapClaims{"sub": "sub-1", "exp": exp})

		_, err = verifier.Verify(context.Background(), raw)
		assert.ErrorIs(t, err, apperror.ErrInvalidToken)
	})

	t.Run("expired token rejected", func(t *testing.T) {
		raw := signIdentityToken(t, key, testKid, jwt.MapClaims{
			"sub": "sub-1",
			"exp": time.Now().Add(-time.Hour).Unix(),
		})

		_, err := verifier.Verify(context.Background(), raw)
		assert.ErrorIs(t, err, apperror.ErrInvalidToken)
	})

	t.Run("missing subject rejected", func(t *testing.T) {
		raw := signIdentityToken(t, key, testKid, jwt.MapClaims{"exp": exp})

		_, err := verifier.Verify(context.Background(), raw)
		assert.ErrorIs(t, err, apperror.ErrInvalidToken)
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		_, err := verifier.Verify(context.Background(), "not-a-jwt")
		assert.ErrorIs(t, err, apperror.ErrInvalidToken)
	})
}
