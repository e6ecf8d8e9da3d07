package projections

import (
	"context"
	"sort"
	"time"
)

// GetMyEventsQuery carries query parameters.
type GetMyEventsQuery struct {
	AccountID string
}

// RegisteredEvent represents one of the viewer's registrations joined with its
// event detail.
type RegisteredEvent struct {
	EventID      string
	Title        string
	Description  string
	Date         string
	Time         string
	Location     string
	RegisteredAt time.Time
	CanCancel    bool
}

// GetMyEventsResult carries the query result.
type GetMyEventsResult struct {
	Events []RegisteredEvent
}

// GetMyEventsDeps holds dependencies for GetMyEvents.
type GetMyEventsDeps struct {
	EventStore        EventStore
	RegistrationStore RegistrationStore
	Now               func() time.Time
}

// QueryGetMyEvents retrieves the viewer's registered events in date order.
// Registrations whose event has since been removed are skipped rather than
// failing the whole list.
// PRE: AccountID comes from the session
// POST: One entry per surviving registration, sorted by event date
func QueryGetMyEvents(ctx context.Context, query GetMyEventsQuery, deps GetMyEventsDeps) (GetMyEventsResult, error) {
	regs, err := deps.RegistrationStore.ListByAccount(ctx, query.AccountID)
	if err != nil {
		return GetMyEventsResult{}, err
	}

	now := deps.Now()
	result := make([]RegisteredEvent, 0, len(regs))
	for _, r := range regs {
		e, err := deps.EventStore.GetByID(ctx, r.EventID)
		if err != nil {
			continue
		}
		result = append(result, RegisteredEvent{
			EventID:      e.ID,
			Title:        e.Title,
			Description:  e.Description,
			Date:         e.Date,
			Time:         e.Time,
			Location:     e.Location,
			RegisteredAt: r.RegisteredAt,
			CanCancel:    r.CanCancel(now),
		})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Date != result[j].Date {
			return result[i].Date < result[j].Date
		}
		return result[i].Time < result[j].Time
	})

	return GetMyEventsResult{Events: result}, nil
}
