package projections

import (
	"context"
	"errors"
	"time"

	"eventhub/internal/domain/account"
)

var (
	ErrRosterForbidden = errors.New("roster is visible only to the owning coordinator")
	ErrEventNotFound   = errors.New("event not found")
)

// GetRosterQuery carries query parameters. Caller identity comes from the
// session, never from user input.
type GetRosterQuery struct {
	EventID    string
	CallerID   string
	CallerRole string
}

// RosterEntry represents one registrant on an event roster.
type RosterEntry struct {
	AccountID    string
	Name         string
	Email        string
	Phone        string
	Department   string
	YearOfStudy  string
	College      string
	RegisteredAt time.Time
}

// GetRosterResult carries the query result.
type GetRosterResult struct {
	EventID    string
	EventTitle string
	Entries    []RosterEntry
}

// GetRosterDeps holds dependencies for GetRoster.
type GetRosterDeps struct {
	EventStore        EventStore
	RegistrationStore RegistrationStore
}

// QueryGetRoster retrieves the registrant list for an event the caller owns.
// PRE: Caller is the owning coordinator
// POST: One entry per registrant, in registration order
// INVARIANT: Non-owners get ErrRosterForbidden, never a partial list
func QueryGetRoster(ctx context.Context, query GetRosterQuery, deps GetRosterDeps) (GetRosterResult, error) {
	if query.CallerRole != account.RoleCoordinator {
		return GetRosterResult{}, ErrRosterForbidden
	}

	e, err := deps.EventStore.GetByID(ctx, query.EventID)
	if err != nil {
		return GetRosterResult{}, ErrEventNotFound
	}
	if !e.IsOwnedBy(query.CallerID) {
		return GetRosterResult{}, ErrRosterForbidden
	}

	rows, err := deps.RegistrationStore.ListParticipants(ctx, query.EventID)
	if err != nil {
		return GetRosterResult{}, err
	}

	entries := make([]RosterEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, RosterEntry{
			AccountID:    row.AccountID,
			Name:         row.Name,
			Email:        row.Email,
			Phone:        row.Phone,
			Department:   row.Department,
			YearOfStudy:  row.YearOfStudy,
			College:      row.College,
			RegisteredAt: row.RegisteredAt,
		})
	}

	return GetRosterResult{
		EventID:    e.ID,
		EventTitle: e.Title,
		Entries:    entries,
	}, nil
}
