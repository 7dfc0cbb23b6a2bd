package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/ukydev/carkit/internal/db"
)

// UserService exposes the account-level operations.
type UserService struct {
	users db.UserCollection
	log   logrus.FieldLogger
}

// NewUserService wires the user service.
func NewUserService(users db.UserCollection, log logrus.FieldLogger) *UserService {
	return &UserService{users: users, log: log}
}

// SoftDelete revokes a user's access for good. The record and all owned data
// stay in storage, but nothing can reach them afterwards because every
// request is gated on an active user.
func (s *UserService) SoftDelete(ctx context.Context, id string) error {
	if err := s.users.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.log.WithField("user_id", id).Info("user soft-deleted")
	return nil
}
