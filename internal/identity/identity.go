// Package identity verifies third-party identity tokens presented at sign-in
// and extracts the provider-scoped subject. Results are never cached; every
// call re-verifies against the provider.
package identity

import (
	"context"
)

// Identity is a verified provider identity: the stable subject id issued by
// the provider, plus the email claim when the provider shares one.
type Identity struct {
	Subject string
	Email   string
}

// Verifier validates a raw identity token from one provider. Every failure
// mode surfaces as apperror.ErrInvalidToken.
type Verifier interface {
	Verify(ctx context.Context, rawToken string) (*Identity, error)
}
