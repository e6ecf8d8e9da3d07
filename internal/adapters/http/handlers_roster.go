package web

import (
	"net/http"

	"eventhub/internal/adapters/http/middleware"
	"eventhub/internal/application/orchestrators"
	"eventhub/internal/application/projections"
)

// handleEventParticipants handles GET /api/events/{id}/participants: the
// roster, visible only to the owning coordinator.
func handleEventParticipants(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, _ := middleware.GetSessionFromContext(ctx)

	result, err := projections.QueryGetRoster(ctx, projections.GetRosterQuery{
		EventID:    r.PathValue("id"),
		CallerID:   sess.AccountID,
		CallerRole: sess.Role,
	}, projections.GetRosterDeps{
		EventStore:        stores.EventStore,
		RegistrationStore: stores.RegistrationStore,
	})
	if err != nil {
		apiError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleEventMessage handles POST /api/events/{id}/message: broadcast to every
// registrant of an event the caller owns.
func handleEventMessage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, _ := middleware.GetSessionFromContext(ctx)

	var body struct {
		Message string `json:"message"`
	}
	if err := strictDecode(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	res, err := orchestrators.ExecuteSendMessage(ctx, orchestrators.SendMessageInput{
		EventID:    r.PathValue("id"),
		Message:    body.Message,
		CallerID:   sess.AccountID,
		CallerRole: sess.Role,
	}, orchestrators.SendMessageDeps{
		EventStore:  stores.EventStore,
		Roster:      stores.RegistrationStore,
		Sender:      emailSender,
		FromAddress: emailFromAddress,
		ReplyTo:     emailReplyTo,
	})
	if err != nil {
		apiError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"recipients": res.Recipients})
}
