// Package auth implements login and the bearer-token middleware that
// resolves the current user for protected endpoints.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/mondaymerch/ecommerce-api/app/api"
	"github.com/mondaymerch/ecommerce-api/models"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// UserProvider is the slice of the users repository the auth layer needs.
type UserProvider interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uint) (*models.User, error)
}

type AuthHandler struct {
	repo   UserProvider
	tokens *TokenIssuer
	log    *slog.Logger
}

func NewAuthHandler(repo UserProvider, tokens *TokenIssuer, log *slog.Logger) *AuthHandler {
	return &AuthHandler{
		repo:   repo,
		tokens: tokens,
		log:    log,
	}
}

// HandleLogin verifies credentials and returns a bearer token. Unknown
// email and wrong password produce the same message so the endpoint does
// not leak which accounts exist.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var input LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if input.Email == "" || input.Password == "" {
		api.Error(w, http.StatusBadRequest, "Missing email or password")
		return
	}

	user, err := h.repo.GetByEmail(r.Context(), input.Email)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			h.log.Warn("login failed: unknown email", "email", input.Email)
			api.Error(w, http.StatusUnauthorized, "Incorrect email or password")
			return
		}
		h.log.Error("login failed: user lookup", "error", err)
		api.Error(w, http.StatusInternalServerError, "An error occurred during authentication")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		h.log.Warn("login failed: invalid password", "user_id", user.ID)
		api.Error(w, http.StatusUnauthorized, "Incorrect email or password")
		return
	}

	if !user.IsActive {
		h.log.Warn("login failed: inactive user", "user_id", user.ID)
		api.Error(w, http.StatusForbidden, "User account is inactive")
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		h.log.Error("login failed: token issuance", "error", err, "user_id", user.ID)
		api.Error(w, http.StatusInternalServerError, "An error occurred during authentication")
		return
	}

	h.log.Info("login successful", "user_id", user.ID)
	api.JSON(w, http.StatusOK, TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}
