package identity

import (
	"context"

	"google.golang.org/api/idtoken"

	"github.com/ukydev/carkit/internal/apperror"
)

// validateFn matches idtoken.Validate; swapped out in tests.
type validateFn func(ctx context.Context, token, audience string) (*idtoken.Payload, error)

// GoogleVerifier checks Google Sign-In ID tokens, scoped to the OAuth client
// id the mobile apps were issued.
type GoogleVerifier struct {
	audience string
	validate validateFn
}

// NewGoogleVerifier builds a verifier for the given expected audience.
func NewGoogleVerifier(audience string) *GoogleVerifier {
	return &GoogleVerifier{audience: audience, validate: idtoken.Validate}
}

// Verify delegates signature and audience checks to Google's token validator
// and extracts the subject and optional email claims.
func (v *GoogleVerifier) Verify(ctx context.Context, rawToken string) (*Identity, error) {
	payload, err := v.validate(ctx, rawToken, v.audience)
	if err != nil {
		return nil, apperror.InvalidToken("google")
	}
	if payload.Subject == "" {
		return nil, apperror.InvalidToken("google")
	}

	email, _ := payload.Claims["email"].(string)

	return &Identity{Subject: payload.Subject, Email: email}, nil
}
