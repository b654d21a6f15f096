package calendar

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// GoogleClient implements Client on top of the Calendar v3 API using a
// service account.
type GoogleClient struct {
	svc *gcal.Service
	log *slog.Logger
}

func NewGoogleClient(ctx context.Context, credentialsJSON []byte, logger *slog.Logger) (*GoogleClient, error) {
	svc, err := gcal.NewService(ctx,
		option.WithCredentialsJSON(credentialsJSON),
		option.WithScopes(gcal.CalendarScope),
	)
	if err != nil {
		return nil, fmt.Errorf("build calendar service: %w", err)
	}
	return &GoogleClient{svc: svc, log: logger}, nil
}

// CreateCalendar reuses an existing calendar with the same summary before
// creating a new one, so repeated deliveries of the same user-create
// message never produce duplicate calendars.
func (g *GoogleClient) CreateCalendar(ctx context.Context, summary, timezone string) (string, error) {
	list, err := g.svc.CalendarList.List().Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("list calendars: %w", err)
	}
	for _, entry := range list.Items {
		if entry.Summary == summary {
			g.log.Debug("calendar already exists", "calendar_id", entry.Id, "summary", summary)
			return entry.Id, nil
		}
	}

	created, err := g.svc.Calendars.Insert(&gcal.Calendar{
		Summary:  summary,
		TimeZone: timezone,
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("insert calendar: %w", err)
	}
	g.log.Info("calendar created", "calendar_id", created.Id, "summary", summary)
	return created.Id, nil
}

func (g *GoogleClient) ShareCalendar(ctx context.Context, calendarID string, rule AccessRule) error {
	_, err := g.svc.Acl.Insert(calendarID, &gcal.AclRule{
		Scope: &gcal.AclRuleScope{
			Type:  rule.ScopeType,
			Value: rule.ScopeValue,
		},
		Role: rule.Role,
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("share calendar %s: %w", calendarID, err)
	}
	return nil
}

func (g *GoogleClient) AddEvent(ctx context.Context, calendarID string, event Event) (string, error) {
	body := &gcal.Event{
		Summary:     event.Summary,
		Location:    event.Location,
		Description: event.Description,
		Start:       eventTime(event.Start),
		End:         eventTime(event.End),
		Reminders:   &gcal.EventReminders{UseDefault: true},
	}
	created, err := g.svc.Events.Insert(calendarID, body).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("insert event: %w", err)
	}
	return created.Id, nil
}

func (g *GoogleClient) DeleteEvent(ctx context.Context, calendarID, eventID string) error {
	if err := g.svc.Events.Delete(calendarID, eventID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("delete event %s: %w", eventID, err)
	}
	return nil
}

func (g *GoogleClient) ListEvents(ctx context.Context, calendarID string, from, to time.Time) ([]Event, error) {
	res, err := g.svc.Events.List(calendarID).
		TimeMin(from.Format(time.RFC3339)).
		TimeMax(to.Format(time.RFC3339)).
		SingleEvents(true).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	events := make([]Event, 0, len(res.Items))
	for _, item := range res.Items {
		events = append(events, Event{
			ID:          item.Id,
			Summary:     item.Summary,
			Location:    item.Location,
			Description: item.Description,
			Start:       parseEventTime(item.Start),
			End:         parseEventTime(item.End),
		})
	}
	return events, nil
}

func eventTime(t time.Time) *gcal.EventDateTime {
	return &gcal.EventDateTime{DateTime: t.Format(time.RFC3339)}
}

func parseEventTime(edt *gcal.EventDateTime) time.Time {
	if edt == nil {
		return time.Time{}
	}
	if edt.DateTime != "" {
		t, _ := time.Parse(time.RFC3339, edt.DateTime)
		return t
	}
	t, _ := time.Parse("2006-01-02", edt.Date)
	return t
}
