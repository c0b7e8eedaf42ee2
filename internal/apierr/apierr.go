// Package apierr defines the typed errors the API returns to clients. Every
// failure the boundary layer can render carries a stable error code and the
// HTTP status it maps to.
package apierr

import (
	"fmt"
	"net/http"
)

// Error is an API-visible failure. Code is the stable machine-readable
// identifier; Status is the HTTP status it renders with.
type Error struct {
	Code    string
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Validation failures (400).

func MissingField(field string) *Error {
	return &Error{Code: "MISSING_FIELD", Status: http.StatusBadRequest,
		Message: fmt.Sprintf("Missing required field: %s", field)}
}

func InvalidName(message string) *Error {
	return &Error{Code: "INVALID_NAME", Status: http.StatusBadRequest, Message: message}
}

func InvalidEmail() *Error {
	return &Error{Code: "INVALID_EMAIL", Status: http.StatusBadRequest,
		Message: "Invalid email format"}
}

func InvalidAge(message string) *Error {
	return &Error{Code: "INVALID_AGE", Status: http.StatusBadRequest, Message: message}
}

func InvalidRole() *Error {
	return &Error{Code: "INVALID_ROLE", Status: http.StatusBadRequest,
		Message: "Role must be either 'admin' or 'user'"}
}

func InvalidUserID(message string) *Error {
	return &Error{Code: "INVALID_USER_ID", Status: http.StatusBadRequest, Message: message}
}

func InvalidFilter() *Error {
	return &Error{Code: "INVALID_FILTER", Status: http.StatusBadRequest,
		Message: "Invalid role filter. Must be 'admin' or 'user'"}
}

func MissingBody() *Error {
	return &Error{Code: "MISSING_BODY", Status: http.StatusBadRequest,
		Message: "Request body is required"}
}

// Auth failures (401/403).

func MissingToken() *Error {
	return &Error{Code: "MISSING_TOKEN", Status: http.StatusUnauthorized,
		Message: "Authorization token is missing. Please include a valid token in the request."}
}

func TokenExpired() *Error {
	return &Error{Code: "TOKEN_EXPIRED", Status: http.StatusUnauthorized,
		Message: "Token has expired. Please login again."}
}

func InvalidToken() *Error {
	return &Error{Code: "INVALID_TOKEN", Status: http.StatusUnauthorized,
		Message: "Invalid token. Please provide a valid authentication token."}
}

func Forbidden() *Error {
	return &Error{Code: "FORBIDDEN", Status: http.StatusForbidden,
		Message: "Admin access required. You do not have permission to perform this action."}
}

// Resource failures.

func UserNotFoundByID(id int) *Error {
	return &Error{Code: "USER_NOT_FOUND", Status: http.StatusNotFound,
		Message: fmt.Sprintf("User with ID %d not found", id)}
}

func UserNotFoundByEmail() *Error {
	return &Error{Code: "USER_NOT_FOUND", Status: http.StatusNotFound,
		Message: "User not found with provided email"}
}

func DuplicateEmail() *Error {
	return &Error{Code: "DUPLICATE_EMAIL", Status: http.StatusConflict,
		Message: "Email already exists. Please use a different email."}
}

func NotFound() *Error {
	return &Error{Code: "NOT_FOUND", Status: http.StatusNotFound,
		Message: "The requested resource was not found"}
}

func MethodNotAllowed(method string) *Error {
	return &Error{Code: "METHOD_NOT_ALLOWED", Status: http.StatusMethodNotAllowed,
		Message: fmt.Sprintf("Method %s not allowed for this endpoint", method)}
}

func Internal() *Error {
	return &Error{Code: "INTERNAL_SERVER_ERROR", Status: http.StatusInternalServerError,
		Message: "Internal server error occurred"}
}
