package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/prajwal2403/fintrack/internal/auth"
	"github.com/prajwal2403/fintrack/internal/transaction"
	"github.com/prajwal2403/fintrack/internal/user"
)

// ErrMissingEmail is returned by the legacy identity resolver when the
// email query parameter is absent.
var ErrMissingEmail = errors.New("email query parameter is required")

type detailBody struct {
	Detail string `json:"detail"`
}

// JSON writes a JSON response body with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Error writes a `{"detail": ...}` error body.
func Error(w http.ResponseWriter, status int, detail string) {
	JSON(w, status, detailBody{Detail: detail})
}

// DomainError maps the domain error taxonomy onto HTTP statuses. Anything
// unrecognized is logged and surfaced as a generic 500 with no internals.
func DomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, user.ErrValidation),
		errors.Is(err, transaction.ErrValidation),
		errors.Is(err, transaction.ErrInvalidID),
		errors.Is(err, user.ErrDuplicateEmail),
		errors.Is(err, ErrMissingEmail):
		Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, user.ErrInvalidCredentials),
		errors.Is(err, auth.ErrUnauthenticated),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrMissingSubject):
		Error(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, transaction.ErrForbidden):
		Error(w, http.StatusForbidden, err.Error())
	case errors.Is(err, user.ErrNotFound),
		errors.Is(err, transaction.ErrNotFound):
		Error(w, http.StatusNotFound, err.Error())
	default:
		slog.Error("request failed", "error", err)
		Error(w, http.StatusInternalServerError, "internal server error")
	}
}
