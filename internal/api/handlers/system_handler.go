package handlers

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/apilab/users-api/internal/api/respond"
	"github.com/apilab/users-api/internal/store"
)

// Version reported by the health endpoint.
const Version = "1.0.0"

// SystemHandler handles the utility endpoints: health, reset and the
// diagnostic error trigger.
type SystemHandler struct {
	users store.Store
}

// NewSystemHandler creates a new SystemHandler.
func NewSystemHandler(users store.Store) *SystemHandler {
	return &SystemHandler{users: users}
}

// Health reports service liveness.
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	respond.Success(w, http.StatusOK, "API is running successfully", map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   Version,
	})
}

// Reset restores the store to its initial seeded state. Intended for test
// harnesses.
func (h *SystemHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.users.Reset(); err != nil {
		log.Error().Err(err).Msg("Failed to reset data store")
		respond.Error(w, err)
		return
	}
	respond.Success(w, http.StatusOK, "Data store reset to initial state successfully", nil)
}

// Error deliberately fails so clients can exercise the 500 envelope. The
// router's recoverer turns the panic into INTERNAL_SERVER_ERROR.
func (h *SystemHandler) Error(w http.ResponseWriter, r *http.Request) {
	panic("simulated internal server error for testing purposes")
}
