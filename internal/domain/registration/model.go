package registration

import (
	"errors"
	"time"
)

// CancelWindow is how long after registering a participant may still cancel.
// Measured as elapsed time from the registration timestamp, not calendar-date
// boundaries.
const CancelWindow = 48 * time.Hour

// Domain errors
var (
	ErrEmptyEventID   = errors.New("registration must reference an event")
	ErrEmptyAccountID = errors.New("registration must reference an account")
)

// Registration links one account to one event. The (EventID, AccountID) pair
// is unique; duplicates are rejected by the store, never merged.
type Registration struct {
	EventID      string
	AccountID    string
	RegisteredAt time.Time
}

// Validate checks the registration's invariants.
// PRE: none
// POST: returns nil if valid, error describing the first violation otherwise
func (r *Registration) Validate() error {
	if r.EventID == "" {
		return ErrEmptyEventID
	}
	if r.AccountID == "" {
		return ErrEmptyAccountID
	}
	return nil
}

// CanCancel reports whether cancellation is still permitted at the given time.
// The window is inclusive on the deny side: at exactly CancelWindow after
// registering, cancellation is no longer allowed. A zero RegisteredAt means the
// stored timestamp could not be parsed; that fails closed.
// INVARIANT: Registration fields are not mutated
func (r *Registration) CanCancel(now time.Time) bool {
	if r.RegisteredAt.IsZero() {
		return false
	}
	return now.Sub(r.RegisteredAt) < CancelWindow
}
