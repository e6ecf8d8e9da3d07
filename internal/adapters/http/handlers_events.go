package web

import (
	"net/http"

	"eventhub/internal/adapters/http/middleware"
	"eventhub/internal/application/orchestrators"
	"eventhub/internal/application/projections"
)

// handleEvents handles GET (catalog) and POST (create) on /api/events.
func handleEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, _ := middleware.GetSessionFromContext(ctx)

	switch r.Method {
	case "GET":
		result, err := projections.QueryGetCatalog(ctx, projections.GetCatalogQuery{
			ViewerID: sess.AccountID,
		}, projections.GetCatalogDeps{
			EventStore:        stores.EventStore,
			RegistrationStore: stores.RegistrationStore,
			Now:               timeNow,
		})
		if err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, result)

	case "POST":
		var fields orchestrators.EventFields
		if err := strictDecode(r, &fields); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request")
			return
		}

		e, err := orchestrators.ExecuteCreateEvent(ctx, orchestrators.CreateEventInput{
			Fields:     fields,
			CallerID:   sess.AccountID,
			CallerRole: sess.Role,
		}, orchestrators.CreateEventDeps{
			EventStore: stores.EventStore,
			GenerateID: generateID,
			Now:        timeNow,
		})
		if err != nil {
			apiError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, e)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleEventByID handles PUT (update) and DELETE on /api/events/{id}.
func handleEventByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, _ := middleware.GetSessionFromContext(ctx)
	eventID := r.PathValue("id")

	switch r.Method {
	case "PUT":
		var fields orchestrators.EventFields
		if err := strictDecode(r, &fields); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request")
			return
		}

		e, err := orchestrators.ExecuteUpdateEvent(ctx, orchestrators.UpdateEventInput{
			EventID:    eventID,
			Fields:     fields,
			CallerID:   sess.AccountID,
			CallerRole: sess.Role,
		}, orchestrators.UpdateEventDeps{EventStore: stores.EventStore})
		if err != nil {
			apiError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, e)

	case "DELETE":
		err := orchestrators.ExecuteDeleteEvent(ctx, orchestrators.DeleteEventInput{
			EventID:    eventID,
			CallerID:   sess.AccountID,
			CallerRole: sess.Role,
		}, orchestrators.DeleteEventDeps{EventStore: stores.EventStore})
		if err != nil {
			apiError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleMyEvents handles GET /api/my/events: the coordinator's own events,
// newest first.
func handleMyEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, _ := middleware.GetSessionFromContext(ctx)

	events, err := orchestrators.ExecuteListOwnEvents(ctx, sess.AccountID, sess.Role,
		orchestrators.ListOwnEventsDeps{EventStore: stores.EventStore})
	if err != nil {
		apiError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"events": events})
}

// handleMyRegistrations handles GET /api/my/registrations: the participant's
// registered events in date order, each with its cancel eligibility.
func handleMyRegistrations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, _ := middleware.GetSessionFromContext(ctx)

	result, err := projections.QueryGetMyEvents(ctx, projections.GetMyEventsQuery{
		AccountID: sess.AccountID,
	}, projections.GetMyEventsDeps{
		EventStore:        stores.EventStore,
		RegistrationStore: stores.RegistrationStore,
		Now:               timeNow,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
