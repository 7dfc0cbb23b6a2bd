package identity

import (
	"context"
	"fmt"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"

	"github.com/ukydev/carkit/internal/apperror"
)

// AppleVerifier checks Sign in with Apple identity tokens against Apple's
// published signing keys. Keys are resolved by the token header kid and
// cached by the JWKS client; a token whose header carries no usable kid fails
// verification.
type AppleVerifier struct {
	jwks keyfunc.Keyfunc
}

// NewAppleVerifier builds a verifier fetching keys from the given JWKS URL.
func NewAppleVerifier(ctx context.Context, jwksURL string) (*AppleVerifier, error) {
	jwks, err := keyfunc.NewDefaultCtx(ctx, []string{jwksURL})
	if err != nil {
		return nil, fmt.Errorf("identity: loading apple JWKS: %w", err)
	}
	return &AppleVerifier{jwks: jwks}, nil
}

// Verify validates the token signature against Apple's keys and extracts the
// subject and optional email claims.
func (v *AppleVerifier) Verify(_ context.Context, rawToken string) (*Identity, error) {
	tok, err := jwt.Parse(rawToken, v.jwks.Keyfunc, jwt.WithValidMethods([]string{"RS256"}))
	if err != nil || !tok.Valid {
		return nil, apperror.InvalidToken("apple")
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apperror.InvalidToken("apple")
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, apperror.InvalidToken("apple")
	}
	email, _ := claims["email"].(string)

	return &Identity{Subject: sub, Email: email}, nil
}
