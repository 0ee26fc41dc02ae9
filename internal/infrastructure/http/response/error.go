package response

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rezkam/listly/internal/domain"
)

// Error kinds carried in the "error" field of every error body.
const (
	KindValidation       = "validation_error"
	KindService          = "service_error"
	KindNotFound         = "not_found"
	KindDatabase         = "database_error"
	KindInternal         = "internal_error"
	KindPayloadTooLarge  = "payload_too_large"
	KindMethodNotAllowed = "method_not_allowed"
)

// Client-facing messages.
const (
	MsgListNotFound     = "Lista no encontrada"
	MsgItemNotFound     = "Ítem no encontrado"
	MsgStoreUnavailable = "El almacenamiento no está disponible"
	MsgInternal         = "Error interno del servidor"
)

// ErrorResponse is the error body returned by every endpoint.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Error sends an error body with the given kind.
func Error(w http.ResponseWriter, kind, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(ErrorResponse{Error: kind, Message: message}); err != nil {
		slog.Error("Failed to write error response", "error", err)
	}
}

// ValidationError sends a 400 for a rejected request body or field.
func ValidationError(w http.ResponseWriter, message string) {
	Error(w, KindValidation, message, http.StatusBadRequest)
}

// RouteNotFound sends a 404 for a path no route matches.
func RouteNotFound(w http.ResponseWriter, r *http.Request) {
	Error(w, KindNotFound, "No handler found for "+r.Method+" "+r.URL.Path, http.StatusNotFound)
}

// MethodNotAllowed sends a 405 for a known path with an unsupported method.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	Error(w, KindMethodNotAllowed, "Request method '"+r.Method+"' is not supported", http.StatusMethodNotAllowed)
}

// InternalError sends a 500. The cause is logged, never returned to the client.
func InternalError(w http.ResponseWriter, r *http.Request, err error) {
	if err != nil {
		slog.ErrorContext(r.Context(), "Internal server error", "error", err)
	}
	Error(w, KindInternal, MsgInternal, http.StatusInternalServerError)
}

// FromDomainError maps service errors to HTTP responses.
func FromDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var fieldErr *domain.FieldError

	switch {
	// Validation errors (400)
	case errors.As(err, &fieldErr):
		ValidationError(w, fieldErr.Error())
	case errors.Is(err, domain.ErrValidation):
		ValidationError(w, err.Error())

	// Not found errors (404)
	case errors.Is(err, domain.ErrListNotFound):
		Error(w, KindService, MsgListNotFound, http.StatusNotFound)
	case errors.Is(err, domain.ErrItemNotFound):
		Error(w, KindService, MsgItemNotFound, http.StatusNotFound)

	// Store failures (503)
	case errors.Is(err, domain.ErrStoreUnavailable):
		slog.ErrorContext(r.Context(), "Document store unavailable", "error", err)
		Error(w, KindDatabase, MsgStoreUnavailable, http.StatusServiceUnavailable)

	// Unknown errors (500) - Log server-side, return generic message to client
	default:
		InternalError(w, r, err)
	}
}
