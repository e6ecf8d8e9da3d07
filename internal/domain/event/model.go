package event

import (
	"errors"
	"strings"
	"time"
)

// Max length constants.
const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 2000
	MaxLocationLength    = 200
)

// Domain errors
var (
	ErrEmptyTitle       = errors.New("event title cannot be empty")
	ErrEmptyDescription = errors.New("event description cannot be empty")
	ErrEmptyDate        = errors.New("event date cannot be empty")
	ErrEmptyTime        = errors.New("event time cannot be empty")
	ErrEmptyLocation    = errors.New("event location cannot be empty")
	ErrInvalidDate      = errors.New("event date must be YYYY-MM-DD")
	ErrInvalidTime      = errors.New("event time must be HH:MM")
	ErrNoCoordinator    = errors.New("event must have an owning coordinator")
)

// Event represents a single event owned by exactly one coordinator.
// Date and Time are kept as the calendar strings the coordinator entered;
// ordering the catalog by Date relies on the YYYY-MM-DD format sorting
// lexicographically.
type Event struct {
	ID            string
	Title         string
	Description   string
	Date          string // YYYY-MM-DD
	Time          string // HH:MM (24h)
	Location      string
	CoordinatorID string
	CreatedAt     time.Time
}

// Validate checks the event's invariants. Whitespace-only fields count as empty.
// PRE: none
// POST: returns nil if valid, error describing the first violation otherwise
func (e *Event) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return ErrEmptyTitle
	}
	if len(e.Title) > MaxTitleLength {
		return errors.New("event title cannot exceed 200 characters")
	}
	if strings.TrimSpace(e.Description) == "" {
		return ErrEmptyDescription
	}
	if len(e.Description) > MaxDescriptionLength {
		return errors.New("event description cannot exceed 2000 characters")
	}
	if strings.TrimSpace(e.Date) == "" {
		return ErrEmptyDate
	}
	if _, err := time.Parse("2006-01-02", e.Date); err != nil {
		return ErrInvalidDate
	}
	if strings.TrimSpace(e.Time) == "" {
		return ErrEmptyTime
	}
	if _, err := time.Parse("15:04", e.Time); err != nil {
		return ErrInvalidTime
	}
	if strings.TrimSpace(e.Location) == "" {
		return ErrEmptyLocation
	}
	if len(e.Location) > MaxLocationLength {
		return errors.New("event location cannot exceed 200 characters")
	}
	if e.CoordinatorID == "" {
		return ErrNoCoordinator
	}
	return nil
}

// IsOwnedBy returns true if the event is owned by the given account.
// INVARIANT: Event fields are not mutated
func (e *Event) IsOwnedBy(accountID string) bool {
	return accountID != "" && e.CoordinatorID == accountID
}
