// Package token issues and verifies the session credentials returned to
// clients after a successful provider sign-in. There is no revocation list;
// a token stays valid until it expires. A compromised token therefore remains
// usable for its remaining lifetime — accepted limitation.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidCredential = errors.New("invalid credential")

// Kind selects which secret signs a token and how long it lives.
type Kind string

const (
	KindAccess  Kind = "token"
	KindRefresh Kind = "refreshToken"
)

const (
	accessTTL  = time.Hour
	refreshTTL = 7 * 24 * time.Hour
)

// Service signs and verifies access and refresh tokens. Each kind has its own
// secret, so an access token can never pass verification as a refresh token
// even before the kind claim is checked.
type Service struct {
	accessSecret  []byte
	refreshSecret []byte
}

// NewService creates a token service from the two signing secrets.
func NewService(accessSecret, refreshSecret string) (*Service, error) {
	if accessSecret == "" || refreshSecret == "" {
		return nil, errors.New("token: signing secrets must not be empty")
	}
	return &Service{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
	}, nil
}

// Issue signs a token of the given kind for a user.
func (s *Service) Issue(kind Kind, userID string) (string, error) {
	secret, ttl, err := s.kindParams(kind)
	if err != nil {
		return "", err
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"userId": userID,
		"type":   string(kind),
		"iat":    now.Unix(),
		"exp":    now.Add(ttl).Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("token: signing: %w", err)
	}
	return signed, nil
}

// Verify checks a token against the secret for the expected kind and returns
// the embedded user id. Signature, expiry and kind failures all collapse to
// ErrInvalidCredential.
func (s *Service) Verify(tokenString string, kind Kind) (string, error) {
	secret, _, err := s.kindParams(kind)
	if err != nil {
		return "", err
	}

	tok, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithExpirationRequired())
	if err != nil || !tok.Valid {
		return "", ErrInvalidCredential
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidCredential
	}

	if typ, _ := claims["type"].(string); typ != string(kind) {
		return "", ErrInvalidCredential
	}

	userID, _ := claims["userId"].(string)
	if userID == "" {
		return "", ErrInvalidCredential
	}
	return userID, nil
}

func (s *Service) kindParams(kind Kind) ([]byte, time.Duration, error) {
	switch kind {
	case KindAccess:
		return s.accessSecret, accessTTL, nil
	case KindRefresh:
		return s.refreshSecret, refreshTTL, nil
	default:
		return nil, 0, fmt.Errorf("token: unknown kind %q", kind)
	}
}
