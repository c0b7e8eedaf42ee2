package handlers

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/apilab/users-api/internal/apierr"
	"github.com/apilab/users-api/internal/api/respond"
	"github.com/apilab/users-api/internal/auth"
	"github.com/apilab/users-api/internal/store"
	"github.com/apilab/users-api/internal/validation"
)

// AuthHandler handles login requests and token issuance.
type AuthHandler struct {
	users  store.Store
	tokens *auth.Service
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(users store.Store, tokens *auth.Service) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens}
}

// Login authenticates by email and returns a signed token carrying the user's
// id, role and email claims.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	data, err := decodeBody(r)
	if err != nil {
		respond.Error(w, err)
		return
	}

	email, err := validation.ValidateLogin(data)
	if err != nil {
		respond.Error(w, err)
		return
	}

	user, err := h.users.GetByEmail(email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn().Str("email", email).Msg("Login attempt for unknown email")
			respond.Error(w, apierr.UserNotFoundByEmail())
			return
		}
		respond.Error(w, err)
		return
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		log.Error().Err(err).Int("user_id", user.ID).Msg("Failed to issue token")
		respond.Error(w, err)
		return
	}

	respond.Success(w, http.StatusOK, "Login successful", map[string]any{
		"token": token,
		"user":  user.Public(),
	})
}
