package projections

import (
	"context"
	"errors"
	"time"

	domainEvent "fitstudio/internal/domain/event"
)

// Event list scopes.
const (
	EventScopeHome = "home"
	EventScopeAll  = "all"
)

// ErrInvalidEventQuery is returned for an unknown scope or status filter.
var ErrInvalidEventQuery = errors.New("scope must be home or all; status must be upcoming or past")

// EventCard is one event as shown on the homepage or events page.
type EventCard struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Preview     string `json:"preview"`
	Date        string `json:"date"`     // 2006-01-02
	Day         string `json:"day"`      // "14"
	Month       string `json:"month"`    // "Mar"
	LongDate    string `json:"longDate"` // "Saturday, March 14, 2026"
	Time        string `json:"time"`
	Location    string `json:"location"`
	PosterURL   string `json:"posterUrl"`
	Badge       string `json:"badge"`
	Status      string `json:"status"`
}

// GetEventsQuery carries query parameters.
type GetEventsQuery struct {
	Scope  string // home (default) or all
	Status string // all scope only; empty means every event
}

// GetEventsDeps holds dependencies for GetEvents.
type GetEventsDeps struct {
	EventStore EventStore
	Now        func() time.Time
}

// QueryGetEvents lists events for the homepage or the events page.
// PRE: deps.Now is set
// POST: home returns at most HomepageLimit upcoming events dated today or later, soonest first;
// all returns every event newest first, filtered on the displayed status
func QueryGetEvents(ctx context.Context, query GetEventsQuery, deps GetEventsDeps) ([]EventCard, error) {
	now := deps.Now()
	var events []domainEvent.Event
	var err error
	switch query.Scope {
	case "", EventScopeHome:
		events, err = deps.EventStore.ListUpcoming(ctx, now, domainEvent.HomepageLimit)
	case EventScopeAll:
		if query.Status != "" && query.Status != domainEvent.StatusUpcoming && query.Status != domainEvent.StatusPast {
			return nil, ErrInvalidEventQuery
		}
		events, err = deps.EventStore.ListAll(ctx)
	default:
		return nil, ErrInvalidEventQuery
	}
	if err != nil {
		return nil, err
	}

	out := make([]EventCard, 0, len(events))
	for _, e := range events {
		status := e.DisplayStatus(now)
		if query.Status != "" && status != query.Status {
			continue
		}
		out = append(out, EventCard{
			ID:          e.ID,
			Title:       e.Title,
			Description: e.Description,
			Preview:     e.Preview(),
			Date:        e.Date.Format(domainEvent.DateLayout),
			Day:         e.Date.Format("2"),
			Month:       e.Date.Format("Jan"),
			LongDate:    e.Date.Format("Monday, January 2, 2006"),
			Time:        e.Time,
			Location:    e.Location,
			PosterURL:   e.PosterURL,
			Badge:       e.BadgeType(),
			Status:      status,
		})
	}
	return out, nil
}
