package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/mondaymerch/ecommerce-api/app/api"
	"github.com/mondaymerch/ecommerce-api/models"
)

type userContextKey struct{}

// WithUser stores the authenticated user on the context. Exported so handler
// tests can construct authenticated requests without the middleware.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// CurrentUser returns the user placed on the context by Middleware.
func CurrentUser(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userContextKey{}).(*models.User)
	return user, ok
}

// Middleware enforces a valid bearer token, loads the user it names and
// injects it into the request context. Inactive accounts are rejected even
// with a valid token.
func (h *AuthHandler) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if header == "" || !ok || token == "" {
			api.Error(w, http.StatusUnauthorized, "Invalid authentication credentials")
			return
		}

		userID, err := h.tokens.Verify(token)
		if err != nil {
			h.log.Warn("rejected bearer token", "error", err)
			api.Error(w, http.StatusUnauthorized, "Invalid authentication credentials")
			return
		}

		user, err := h.repo.GetByID(r.Context(), userID)
		if err != nil {
			if errors.Is(err, models.ErrUserNotFound) {
				h.log.Warn("token for unknown user", "user_id", userID)
				api.Error(w, http.StatusUnauthorized, "User not found")
				return
			}
			h.log.Error("user lookup failed during authentication", "error", err, "user_id", userID)
			api.Error(w, http.StatusInternalServerError, "An error occurred while authenticating user")
			return
		}

		if !user.IsActive {
			h.log.Warn("authentication rejected: inactive user", "user_id", user.ID)
			api.Error(w, http.StatusForbidden, "Inactive user")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}
