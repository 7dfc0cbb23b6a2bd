// Package service implements the application operations between the HTTP
// boundary and storage: provider sign-in, the user directory, and the
// ownership-scoped access to vehicles and their children.
package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/ukydev/carkit/internal/apperror"
	"github.com/ukydev/carkit/internal/db"
	"github.com/ukydev/carkit/internal/identity"
	"github.com/ukydev/carkit/internal/models"
	"github.com/ukydev/carkit/internal/token"
)

// AuthService exchanges provider identity tokens for session tokens and
// re-mints sessions from refresh tokens.
type AuthService struct {
	tokens    *token.Service
	users     db.UserCollection
	verifiers map[models.Provider]identity.Verifier
	log       logrus.FieldLogger
}

// NewAuthService wires the auth service with its collaborators.
func NewAuthService(tokens *token.Service, users db.UserCollection, verifiers map[models.Provider]identity.Verifier, log logrus.FieldLogger) *AuthService {
	return &AuthService{
		tokens:    tokens,
		users:     users,
		verifiers: verifiers,
		log:       log,
	}
}

// Authenticate verifies a provider identity token, finds or creates the
// matching user, and issues a fresh access/refresh token pair. The first
// login for a never-seen provider subject creates the account.
func (s *AuthService) Authenticate(ctx context.Context, provider models.Provider, identityToken string) (*models.AuthResponse, error) {
	verifier, ok := s.verifiers[provider]
	if !ok {
		return nil, apperror.InvalidToken(string(provider))
	}

	ident, err := verifier.Verify(ctx, identityToken)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByProviderIdentity(ctx, provider, ident.Subject)
	if err != nil {
		return nil, err
	}
	if user == nil {
		user, err = s.users.CreateFromProviderIdentity(ctx, provider, ident.Subject, ident.Email)
		if err != nil {
			return nil, err
		}
		s.log.WithFields(logrus.Fields{
			"provider": provider,
			"user_id":  user.ID.Hex(),
		}).Info("created user from first provider login")
	}

	resp, err := s.issuePair(user.ID.Hex())
	if err != nil {
		return nil, err
	}
	resp.User = user
	return resp, nil
}

// Refresh re-mints both tokens from a valid refresh token; the response
// carries tokens only. Every failure mode, bad signature, wrong kind, expiry,
// unknown or deleted user, is the same uniform rejection.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*models.AuthResponse, error) {
	userID, err := s.tokens.Verify(refreshToken, token.KindRefresh)
	if err != nil {
		return nil, apperror.Unauthorized()
	}

	user, err := s.users.FindActiveByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.Unauthorized()
	}

	return s.issuePair(user.ID.Hex())
}

func (s *AuthService) issuePair(userID string) (*models.AuthResponse, error) {
	access, err := s.tokens.Issue(token.KindAccess, userID)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.Issue(token.KindRefresh, userID)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{
		Token:        access,
		RefreshToken: refresh,
	}, nil
}
