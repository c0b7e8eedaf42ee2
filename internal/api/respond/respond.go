// Package respond renders the uniform response envelope every endpoint uses.
package respond

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/apilab/users-api/internal/apierr"
)

type successEnvelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

type errorEnvelope struct {
	Status    string `json:"status"`
	ErrorCode string `json:"error_code"`
	Message   string `json:"message"`
}

// Success writes a success envelope with the given status code. A nil data
// value is omitted from the body.
func Success(w http.ResponseWriter, status int, message string, data any) {
	write(w, status, successEnvelope{Status: "success", Message: message, Data: data})
}

// Error writes the error envelope for a typed API error. Anything that is not
// an *apierr.Error renders as a 500 without leaking detail.
func Error(w http.ResponseWriter, err error) {
	var apiErr *apierr.Error
	if !errors.As(err, &apiErr) {
		log.Error().Err(err).Msg("Unexpected error reached the response boundary")
		apiErr = apierr.Internal()
	}
	write(w, apiErr.Status, errorEnvelope{
		Status:    "error",
		ErrorCode: apiErr.Code,
		Message:   apiErr.Message,
	})
}

func write(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("Failed to encode response body")
	}
}
