package middleware

import (
	"context"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Changes18/poepoe/apperrors"
	"github.com/Changes18/poepoe/models"
	"github.com/Changes18/poepoe/repository"
)

// Key type for context
type contextKey string

const UserContextKey = contextKey("user")

// Authenticator resolves bearer tokens into user records. It is the single
// capability check shared by every protected route; the admin gate layers on
// top of it. A token whose user no longer exists is rejected the same way as
// a missing or malformed token.
type Authenticator struct {
	users    repository.UserStore
	parseJWT func(token string) (string, error)
}

// NewAuthenticator creates an Authenticator backed by the given user store.
// parseJWT maps a raw token to the user id it carries, or an error.
func NewAuthenticator(users repository.UserStore, parseJWT func(token string) (string, error)) *Authenticator {
	return &Authenticator{users: users, parseJWT: parseJWT}
}

// Authenticate verifies the bearer token, loads the user and attaches it to
// the request context.
func (a *Authenticator) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			apperrors.HandleError(w, apperrors.New(http.StatusUnauthorized, "Authorization header missing", nil))
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			apperrors.HandleError(w, apperrors.New(http.StatusUnauthorized, "Invalid Authorization header format", nil))
			return
		}

		userIDHex, err := a.parseJWT(parts[1])
		if err != nil {
			apperrors.HandleError(w, apperrors.New(http.StatusUnauthorized, "Invalid token", err))
			return
		}

		userID, err := primitive.ObjectIDFromHex(userIDHex)
		if err != nil {
			apperrors.HandleError(w, apperrors.New(http.StatusUnauthorized, "Invalid token", err))
			return
		}

		user, err := a.users.FindByID(r.Context(), userID)
		if err != nil {
			apperrors.HandleError(w, apperrors.New(http.StatusUnauthorized, "User not found", nil))
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin ensures the authenticated user has the admin role. It must be
// chained after Authenticate.
func (a *Authenticator) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok || user.Role != "admin" {
			apperrors.HandleError(w, apperrors.New(http.StatusForbidden, "Forbidden: admin role required", nil))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// UserFromContext returns the authenticated user attached by Authenticate
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(UserContextKey).(*models.User)
	return user, ok
}
