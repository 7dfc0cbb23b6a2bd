package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ukydev/carkit/internal/models"
	"github.com/ukydev/carkit/internal/token"
)

// MockUserCollection is a mock implementation of db.UserCollection
type MockUserCollection struct {
	mock.Mock
}

func (m *MockUserCollection) FindActiveByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserCollection) FindByProviderIdentity(ctx context.Context, provider models.Provider, subject string) (*models.User, error) {
	args := m.Called(ctx, provider, subject)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserCollection) CreateFromProviderIdentity(ctx context.Context, provider models.Provider, subject, email string) (*models.User, error) {
	args := m.Called(ctx, provider, subject, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserCollection) SoftDelete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

const rejectionBody = `{"error":"invalid or expired credentials"}`

func TestAuthGate(t *testing.T) {
	tokens, err := token.NewService("access-secret", "refresh-secret")
	require.NoError(t, err)
	userID := primitive.NewObjectID()

	access, err := tokens.Issue(token.KindAccess, userID.Hex())
	require.NoError(t, err)

	gated := func(users *MockUserCollection) (http.Handler, *string) {
		var seenUserID string
		gate := NewAuthGate(tokens, users, testLogger())
		handler := gate.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := UserIDFromContext(r.Context())
			require.True(t, ok)
			seenUserID = id
			w.WriteHeader(http.StatusNoContent)
		}))
		return handler, &seenUserID
	}

	t.Run("valid token with an active user passes", func(t *testing.T) {
		users := new(MockUserCollection)
		users.On("FindActiveByID", mock.Anything, userID.Hex()).
			Return(&models.User{ID: userID}, nil)
		handler, seenUserID := gated(users)

		req := httptest.NewRequest(http.MethodGet, "/vehicles", nil)
		req.Header.Set("Authorization", "Bearer "+access)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, userID.Hex(), *seenUserID)
	})

	rejected := []struct {
		name  string
		setup func(req *http.Request, users *MockUserCollection)
	}{
		{
			name:  "missing header",
			setup: func(req *http.Request, users *MockUserCollection) {},
		},
		{
			name: "scheme other than bearer",
			setup: func(req *http.Request, users *MockUserCollection) {
				req.Header.Set("Authorization", "Basic "+access)
			},
		},
		{
			name: "garbage token",
			setup: func(req *http.Request, users *MockUserCollection) {
				req.Header.Set("Authorization", "Bearer not-a-jwt")
			},
		},
		{
			name: "refresh token in place of access token",
			setup: func(req *http.Request, users *MockUserCollection) {
				refresh, err := tokens.Issue(token.KindRefresh, userID.Hex())
				require.NoError(t, err)
				req.Header.Set("Authorization", "Bearer "+refresh)
			},
		},
		{
			name: "soft-deleted user",
			setup: func(req *http.Request, users *MockUserCollection) {
				users.On("FindActiveByID", mock.Anything, userID.Hex()).Return(nil, nil)
				req.Header.Set("Authorization", "Bearer "+access)
			},
		},
	}

	for _, tc := range rejected {
		t.Run(tc.name+" rejected with the uniform body", func(t *testing.T) {
			users := new(MockUserCollection)
			handler, _ := gated(users)

			req := httptest.NewRequest(http.MethodGet, "/vehicles", nil)
			tc.setup(req, users)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.JSONEq(t, rejectionBody, rec.Body.String())
		})
	}
}

func TestUserIDFromContext(t *testing.T) {
	_, ok := UserIDFromContext(context.Background())
	assert.False(t, ok)
}
