package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/apilab/users-api/internal/apierr"
	"github.com/apilab/users-api/internal/api/respond"
	"github.com/apilab/users-api/internal/models"
	"github.com/apilab/users-api/internal/store"
	"github.com/apilab/users-api/internal/validation"
)

// UserHandler handles HTTP requests for user management.
type UserHandler struct {
	users store.Store
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users store.Store) *UserHandler {
	return &UserHandler{users: users}
}

// GetAll handles listing users, optionally filtered by role.
func (h *UserHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	roleFilter := r.URL.Query().Get("role")
	if roleFilter != "" {
		roleFilter = strings.ToLower(roleFilter)
		if !models.ValidRole(roleFilter) {
			respond.Error(w, apierr.InvalidFilter())
			return
		}
	}

	users, err := h.users.List(roleFilter)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list users")
		respond.Error(w, err)
		return
	}

	respond.Success(w, http.StatusOK,
		fmt.Sprintf("Retrieved %d user(s) successfully", len(users)),
		map[string]any{"users": users, "count": len(users)})
}

// Get handles retrieving a user by their ID.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := validation.ValidateUserID(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, err)
		return
	}

	user, err := h.users.Get(id)
	if err != nil {
		respond.Error(w, mapStoreErr(err, id))
		return
	}

	respond.Success(w, http.StatusOK, "User retrieved successfully", user)
}

// Create handles creating a new user.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	data, err := decodeBody(r)
	if err != nil {
		respond.Error(w, err)
		return
	}

	fields, err := validation.ValidateCreate(data)
	if err != nil {
		respond.Error(w, err)
		return
	}

	user, err := h.users.Create(fields)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			respond.Error(w, apierr.DuplicateEmail())
			return
		}
		log.Error().Err(err).Msg("Failed to create user")
		respond.Error(w, err)
		return
	}

	respond.Success(w, http.StatusCreated, "User created successfully", user)
}

// Update handles a partial update of an existing user.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := validation.ValidateUserID(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, err)
		return
	}

	// Existence is reported before body problems so an unknown id is always a
	// 404 regardless of payload.
	if _, err := h.users.Get(id); err != nil {
		respond.Error(w, mapStoreErr(err, id))
		return
	}

	data, err := decodeBody(r)
	if err != nil {
		respond.Error(w, err)
		return
	}

	fields, err := validation.ValidateUpdate(data)
	if err != nil {
		respond.Error(w, err)
		return
	}

	user, err := h.users.Update(id, fields)
	if err != nil {
		respond.Error(w, mapStoreErr(err, id))
		return
	}

	respond.Success(w, http.StatusOK, "User updated successfully", user)
}

// Delete handles the permanent deletion of a user. The route requires an
// admin token.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := validation.ValidateUserID(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, err)
		return
	}

	user, err := h.users.Delete(id)
	if err != nil {
		respond.Error(w, mapStoreErr(err, id))
		return
	}

	log.Info().Int("user_id", id).Msg("User deleted")
	respond.Success(w, http.StatusOK, "User deleted successfully", user)
}

// mapStoreErr translates store sentinels into API errors for the given id.
func mapStoreErr(err error, id int) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return apierr.UserNotFoundByID(id)
	case errors.Is(err, store.ErrDuplicateEmail):
		return apierr.DuplicateEmail()
	default:
		return err
	}
}
