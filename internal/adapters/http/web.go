package web

import (
	"net/http"
	"time"

	"eventhub/internal/adapters/email"
	"eventhub/internal/adapters/http/middleware"
	accountStore "eventhub/internal/adapters/storage/account"
	eventStore "eventhub/internal/adapters/storage/event"
	registrationStore "eventhub/internal/adapters/storage/registration"
)

// Stores holds all storage dependencies.
type Stores struct {
	AccountStore      accountStore.Store
	EventStore        eventStore.Store
	RegistrationStore registrationStore.Store
}

// Global stores instance (set by NewMux)
var stores *Stores

// Global session store instance
var sessions *middleware.SessionStore

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// Global email sender instance (set by SetEmailSender)
var emailSender email.Sender

// Email configuration
var emailFromAddress string
var emailReplyTo string

// SetEmailSender sets the global email sender for the application.
func SetEmailSender(sender email.Sender, from, replyTo string) {
	emailSender = sender
	emailFromAddress = from
	emailReplyTo = replyTo
}

// NewMux wires HTTP handlers for the app. The CSRF key is a 32-byte secret;
// the caller loads or generates it.
func NewMux(s *Stores, csrfKey []byte, secureCookies bool) http.Handler {
	stores = s
	sessions = middleware.NewSessionStore()
	middleware.SecureCookies = secureCookies

	mux := http.NewServeMux()
	registerRoutes(mux)

	// Rate limiter: configurable requests per second per IP (OWASP A04)
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Apply middleware: RateLimit -> Auth -> CSRF -> SecurityHeaders -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey),
		middleware.Auth(sessions),
		middleware.RateLimit(limiter),
	)
}
