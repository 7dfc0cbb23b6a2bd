// Package middleware holds the request authorization gate.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ukydev/carkit/internal/db"
	"github.com/ukydev/carkit/internal/token"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const userIDContextKey contextKey = "userID"

// AuthGate resolves a bearer token to a live user before any resource handler
// runs. Missing header, malformed or expired token, signature mismatch, and
// unknown or soft-deleted user all produce the same 401 with the same body,
// so a caller can't probe which check failed.
type AuthGate struct {
	tokens *token.Service
	users  db.UserCollection
	log    logrus.FieldLogger
}

// NewAuthGate creates the gate with its collaborators.
func NewAuthGate(tokens *token.Service, users db.UserCollection, log logrus.FieldLogger) *AuthGate {
	return &AuthGate{tokens: tokens, users: users, log: log}
}

// Authenticate verifies the access token, confirms the user is still active,
// and stamps the user id into the request context.
func (g *AuthGate) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := extractBearer(r.Header.Get("Authorization"))
		if !ok {
			reject(w)
			return
		}

		userID, err := g.tokens.Verify(raw, token.KindAccess)
		if err != nil {
			reject(w)
			return
		}

		user, err := g.users.FindActiveByID(r.Context(), userID)
		if err != nil {
			g.log.WithError(err).Error("user lookup failed during authentication")
			reject(w)
			return
		}
		if user == nil {
			reject(w)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
	})
}

// WithUserID stamps an authenticated user id into a context.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDContextKey, userID)
}

// UserIDFromContext returns the authenticated user id stamped by the gate.
func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDContextKey).(string)
	return userID, ok
}

func extractBearer(header string) (string, bool) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func reject(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"invalid or expired credentials"}`))
}
