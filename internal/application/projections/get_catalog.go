package projections

import (
	"context"
	"time"

	domainRegistration "eventhub/internal/domain/registration"
)

// Per-event action states shown to a participant browsing the catalog.
const (
	ActionRegister = "register" // not registered, may sign up
	ActionCancel   = "cancel"   // registered, window still open
	ActionClosed   = "closed"   // registered, window elapsed
)

// GetCatalogQuery carries query parameters. ViewerID may be empty for
// coordinators browsing without registration state.
type GetCatalogQuery struct {
	ViewerID string
}

// CatalogEvent represents one event in the browse list with the viewer's
// registration state folded in.
type CatalogEvent struct {
	ID            string
	Title         string
	Description   string
	Date          string
	Time          string
	Location      string
	CoordinatorID string
	Registrations int
	Registered    bool
	Action        string
	RegisteredAt  time.Time
}

// GetCatalogResult carries the query result.
type GetCatalogResult struct {
	Events []CatalogEvent
}

// GetCatalogDeps holds dependencies for GetCatalog.
type GetCatalogDeps struct {
	EventStore        EventStore
	RegistrationStore RegistrationStore
	Now               func() time.Time
}

// QueryGetCatalog retrieves all events in date order with the viewer's
// registration state. The action reflects eligibility at query time only;
// mutating operations re-check server-side.
// PRE: Valid query parameters
// POST: Events sorted by date ascending; one entry per event
// INVARIANT: Action is "cancel" only while the viewer's window is open
func QueryGetCatalog(ctx context.Context, query GetCatalogQuery, deps GetCatalogDeps) (GetCatalogResult, error) {
	events, err := deps.EventStore.ListByDate(ctx)
	if err != nil {
		return GetCatalogResult{}, err
	}

	// Build the viewer's registration map for quick lookup
	regs := make(map[string]domainRegistration.Registration)
	if query.ViewerID != "" {
		list, err := deps.RegistrationStore.ListByAccount(ctx, query.ViewerID)
		if err != nil {
			return GetCatalogResult{}, err
		}
		for _, r := range list {
			regs[r.EventID] = r
		}
	}

	now := deps.Now()
	result := make([]CatalogEvent, 0, len(events))
	for _, e := range events {
		count, err := deps.RegistrationStore.CountByEvent(ctx, e.ID)
		if err != nil {
			return GetCatalogResult{}, err
		}

		ce := CatalogEvent{
			ID:            e.ID,
			Title:         e.Title,
			Description:   e.Description,
			Date:          e.Date,
			Time:          e.Time,
			Location:      e.Location,
			CoordinatorID: e.CoordinatorID,
			Registrations: count,
			Action:        ActionRegister,
		}
		if r, ok := regs[e.ID]; ok {
			ce.Registered = true
			ce.RegisteredAt = r.RegisteredAt
			if r.CanCancel(now) {
				ce.Action = ActionCancel
			} else {
				ce.Action = ActionClosed
			}
		}
		result = append(result, ce)
	}

	return GetCatalogResult{Events: result}, nil
}
