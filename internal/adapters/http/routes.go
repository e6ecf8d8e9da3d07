package web

import (
	"net/http"

	"eventhub/internal/adapters/http/middleware"
	"eventhub/internal/domain/account"
)

// registerRoutes attaches every route to the mux. Auth runs globally in the
// middleware chain; role gates are applied per route here.
func registerRoutes(mux *http.ServeMux) {
	coordinatorOnly := middleware.RequireRole(account.RoleCoordinator)

	// Accounts and sessions
	mux.HandleFunc("POST /api/signup", handleSignup)
	mux.HandleFunc("POST /api/login", handleLogin)
	mux.HandleFunc("POST /api/logout", handleLogout)
	mux.Handle("DELETE /api/account", middleware.RequireAuth(http.HandlerFunc(handleDeleteAccount)))

	// Event catalog and authoring
	mux.Handle("GET /api/events", middleware.RequireAuth(http.HandlerFunc(handleEvents)))
	mux.Handle("POST /api/events", coordinatorOnly(http.HandlerFunc(handleEvents)))
	mux.Handle("PUT /api/events/{id}", coordinatorOnly(http.HandlerFunc(handleEventByID)))
	mux.Handle("DELETE /api/events/{id}", coordinatorOnly(http.HandlerFunc(handleEventByID)))
	mux.Handle("GET /api/my/events", coordinatorOnly(http.HandlerFunc(handleMyEvents)))

	// Registrations
	mux.Handle("POST /api/events/{id}/register", middleware.RequireAuth(http.HandlerFunc(handleEventRegistration)))
	mux.Handle("DELETE /api/events/{id}/register", middleware.RequireAuth(http.HandlerFunc(handleEventRegistration)))
	mux.Handle("GET /api/my/registrations", middleware.RequireAuth(http.HandlerFunc(handleMyRegistrations)))

	// Roster and messaging (owner checks run in the application layer)
	mux.Handle("GET /api/events/{id}/participants", coordinatorOnly(http.HandlerFunc(handleEventParticipants)))
	mux.Handle("POST /api/events/{id}/message", coordinatorOnly(http.HandlerFunc(handleEventMessage)))

	// Redirect target for unauthenticated page access
	mux.HandleFunc("GET /login", handleLoginPage)
}

// handleLoginPage is the landing target for unauthenticated redirects. The
// visual client owns the real login form.
func handleLoginPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte("<!doctype html><title>Sign in</title><p>Sign in via POST /api/login.</p>"))
}
