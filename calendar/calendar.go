//go:generate go run go.uber.org/mock/mockgen -source=calendar.go -destination=../mocks/mock_calendar.go -package=mocks
package calendar

import (
	"context"
	"time"
)

// Event is the provider-neutral calendar entry the coordinator works
// with.
type Event struct {
	ID          string
	Summary     string
	Location    string
	Description string
	Start       time.Time
	End         time.Time
}

// AccessRule grants one scope a role on a calendar, e.g. default/reader
// for public visibility or user/owner for the owning service account.
type AccessRule struct {
	ScopeType  string
	ScopeValue string
	Role       string
}

// Client is the capability the side effect coordinator needs from a
// calendar provider. CreateCalendar must be idempotent per summary:
// calling it twice returns the same calendar instead of creating a
// duplicate.
type Client interface {
	CreateCalendar(ctx context.Context, summary, timezone string) (string, error)
	ShareCalendar(ctx context.Context, calendarID string, rule AccessRule) error
	AddEvent(ctx context.Context, calendarID string, event Event) (string, error)
	DeleteEvent(ctx context.Context, calendarID, eventID string) error
	ListEvents(ctx context.Context, calendarID string, from, to time.Time) ([]Event, error)
}

// EmbedLink is the public embed URL for a calendar id.
func EmbedLink(calendarID string) string {
	return "https://calendar.google.com/calendar/embed?src=" + calendarID
}
