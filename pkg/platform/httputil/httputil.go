// Package httputil centralizes JSON response writing and domain error
// translation so every handler emits the same envelope.
package httputil

import (
	"encoding/json"
	"net/http"

	dErrors "paperflow/pkg/domain-errors"
)

// statusByCode maps domain error codes to HTTP status codes.
var statusByCode = map[dErrors.Code]int{
	dErrors.CodeBadRequest:         http.StatusBadRequest,
	dErrors.CodeValidation:         http.StatusUnprocessableEntity,
	dErrors.CodeInvalidInput:       http.StatusBadRequest,
	dErrors.CodeUnauthorized:       http.StatusUnauthorized,
	dErrors.CodeForbidden:          http.StatusForbidden,
	dErrors.CodeNotFound:           http.StatusNotFound,
	dErrors.CodeInvalidTransition:  http.StatusConflict,
	dErrors.CodeConflict:           http.StatusConflict,
	dErrors.CodeTimeout:            http.StatusGatewayTimeout,
	dErrors.CodeInvariantViolation: http.StatusInternalServerError,
	dErrors.CodeInternal:           http.StatusInternalServerError,
}

// ToHTTPStatus returns the HTTP status for a domain error code.
// Unknown codes map to 500 so nothing unexpected leaks as a client error.
func ToHTTPStatus(code dErrors.Code) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// WriteError translates a domain error into the standard JSON error envelope.
// Internal errors omit error_description: their detail belongs in logs only.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)

	body := map[string]string{"error": string(code)}
	if desc := dErrors.MessageOf(err); desc != "" {
		body["error_description"] = desc
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(ToHTTPStatus(code))
	_ = json.NewEncoder(w).Encode(body)
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
