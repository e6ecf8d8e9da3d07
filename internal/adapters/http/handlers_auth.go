package web

import (
	"net/http"

	"eventhub/internal/adapters/http/middleware"
	"eventhub/internal/application/orchestrators"
)

// handleSignup handles POST /api/signup.
func handleSignup(w http.ResponseWriter, r *http.Request) {
	var input orchestrators.SignupInput
	if err := strictDecode(r, &input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	deps := orchestrators.SignupDeps{
		AccountStore: stores.AccountStore,
		GenerateID:   generateID,
		Now:          timeNow,
	}
	acct, err := orchestrators.ExecuteSignup(r.Context(), input, deps)
	if err != nil {
		apiError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"id":       acct.ID,
		"username": acct.Username,
		"email":    acct.Email,
		"role":     acct.Role,
	})
}

// handleLogin handles POST /api/login. The identifier may be an email, a
// username, or a phone number.
func handleLogin(w http.ResponseWriter, r *http.Request) {
	var input orchestrators.LoginInput
	if err := strictDecode(r, &input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	res, err := orchestrators.ExecuteLogin(r.Context(), input, orchestrators.LoginDeps{
		AccountStore: stores.AccountStore,
	})
	if err != nil {
		apiError(w, err)
		return
	}

	token, err := sessions.Create(res.AccountID, res.Email, res.Role)
	if err != nil {
		internalError(w, err)
		return
	}
	middleware.SetSessionCookie(w, token)

	writeJSON(w, http.StatusOK, map[string]string{
		"id":    res.AccountID,
		"email": res.Email,
		"role":  res.Role,
	})
}

// handleLogout handles POST /api/logout.
func handleLogout(w http.ResponseWriter, r *http.Request) {
	if token := middleware.SessionToken(r); token != "" {
		sessions.Delete(token)
	}
	middleware.ClearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// handleDeleteAccount handles DELETE /api/account. The account to delete is
// always the caller's own; registrations cascade in the store.
func handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	err := orchestrators.ExecuteDeleteAccount(r.Context(), orchestrators.DeleteAccountInput{
		AccountID: sess.AccountID,
	}, orchestrators.DeleteAccountDeps{AccountStore: stores.AccountStore})
	if err != nil {
		apiError(w, err)
		return
	}

	sessions.DeleteByAccount(sess.AccountID)
	middleware.ClearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}
