package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"eventhub/internal/application/orchestrators"
	"eventhub/internal/application/projections"
	"eventhub/internal/domain/account"
	"eventhub/internal/domain/event"
	"eventhub/internal/domain/registration"
)

// timeNow is a variable for testability.
var timeNow = time.Now

// generateID creates a new UUID string.
func generateID() string {
	return uuid.New().String()
}

// internalError logs the real error and returns a generic message to the client.
// This prevents leaking internal details per OWASP A05.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	writeError(w, http.StatusInternalServerError, "internal server error")
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// validationErrors covers every domain sentinel that maps to a 400.
var validationErrors = []error{
	account.ErrEmptyEmail,
	account.ErrInvalidEmail,
	account.ErrEmptyUsername,
	account.ErrInvalidUsername,
	account.ErrInvalidRole,
	account.ErrEmptyPassword,
	account.ErrPasswordTooShort,
	event.ErrEmptyTitle,
	event.ErrEmptyDescription,
	event.ErrEmptyDate,
	event.ErrEmptyTime,
	event.ErrEmptyLocation,
	event.ErrInvalidDate,
	event.ErrInvalidTime,
	event.ErrNoCoordinator,
	registration.ErrEmptyEventID,
	registration.ErrEmptyAccountID,
	orchestrators.ErrEmptyMessage,
}

// apiError maps an application error onto the HTTP error taxonomy. Unknown
// errors are treated as internal and logged with full detail.
func apiError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, orchestrators.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, orchestrators.ErrAccountLocked):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, orchestrators.ErrNotCoordinator),
		errors.Is(err, orchestrators.ErrNotEventOwner),
		errors.Is(err, orchestrators.ErrCancelWindowOver),
		errors.Is(err, projections.ErrRosterForbidden):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, orchestrators.ErrEventNotFound),
		errors.Is(err, orchestrators.ErrNotRegistered),
		errors.Is(err, projections.ErrEventNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, orchestrators.ErrEmailTaken),
		errors.Is(err, orchestrators.ErrUsernameTaken),
		errors.Is(err, orchestrators.ErrAlreadyRegistered):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, orchestrators.ErrNoRecipients):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		for _, ve := range validationErrors {
			if errors.Is(err, ve) {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
		}
		internalError(w, err)
	}
}
