package web

import (
	"net/http"

	"eventhub/internal/adapters/http/middleware"
	"eventhub/internal/application/orchestrators"
)

// handleEventRegistration handles POST (register) and DELETE (cancel) on
// /api/events/{id}/register. The account is always the caller's own.
func handleEventRegistration(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, _ := middleware.GetSessionFromContext(ctx)
	eventID := r.PathValue("id")

	switch r.Method {
	case "POST":
		reg, err := orchestrators.ExecuteRegister(ctx, orchestrators.RegisterInput{
			EventID:   eventID,
			AccountID: sess.AccountID,
		}, orchestrators.RegisterDeps{
			RegistrationStore: stores.RegistrationStore,
			Events:            stores.EventStore,
			Now:               timeNow,
		})
		if err != nil {
			apiError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{
			"event_id":      reg.EventID,
			"registered_at": reg.RegisteredAt,
		})

	case "DELETE":
		err := orchestrators.ExecuteCancel(ctx, orchestrators.CancelInput{
			EventID:   eventID,
			AccountID: sess.AccountID,
		}, orchestrators.CancelDeps{
			RegistrationStore: stores.RegistrationStore,
			Now:               timeNow,
		})
		if err != nil {
			apiError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
