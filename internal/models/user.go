package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Provider identifies the third-party identity provider a user signed in with.
type Provider string

const (
	ProviderApple  Provider = "apple"
	ProviderGoogle Provider = "google"
)

// IsValidProvider checks if a provider tag is one we support.
func IsValidProvider(p Provider) bool {
	switch p {
	case ProviderApple, ProviderGoogle:
		return true
	default:
		return false
	}
}

// User represents an account created from a provider identity. Users are only
// ever soft-deleted: IsDeleted flips to true and the record stays.
type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Provider       Provider           `bson:"provider" json:"provider"`
	ProviderUserID string             `bson:"provider_user_id" json:"-"`
	Email          string             `bson:"email,omitempty" json:"email,omitempty"`
	IsDeleted      bool               `bson:"is_deleted" json:"-"`
	CreatedAt      time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updatedAt"`
}

// AuthRequest is the body of the provider sign-in endpoints.
type AuthRequest struct {
	IdentityToken string `json:"identityToken"`
}

// AuthResponse is returned by sign-in and refresh.
type AuthResponse struct {
	User         *User  `json:"user,omitempty"`
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}
