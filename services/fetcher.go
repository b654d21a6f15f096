package services

import (
	"context"
	"log/slog"
	"time"

	"planning-sync/calendar"
	"planning-sync/repositories"
)

// EventFetcher periodically imports events created directly on the shared
// planning calendar, persists them and republishes them so other systems
// learn about calendar-born events.
type EventFetcher struct {
	cal        calendar.Client
	events     repositories.IEventRepository
	repub      *Republisher
	calendarID string
	interval   time.Duration
	lookback   time.Duration
	log        *slog.Logger
}

func NewEventFetcher(
	cal calendar.Client,
	events repositories.IEventRepository,
	repub *Republisher,
	calendarID string,
	interval, lookback time.Duration,
	logger *slog.Logger,
) *EventFetcher {
	return &EventFetcher{
		cal:        cal,
		events:     events,
		repub:      repub,
		calendarID: calendarID,
		interval:   interval,
		lookback:   lookback,
		log:        logger,
	}
}

// Run polls until the context is cancelled. The first fetch happens
// immediately; one bad cycle is logged and the loop keeps going.
func (f *EventFetcher) Run(ctx context.Context) {
	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	f.fetchOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			f.fetchOnce(ctx)
		}
	}
}

func (f *EventFetcher) fetchOnce(ctx context.Context) {
	now := time.Now()
	entries, err := f.cal.ListEvents(ctx, f.calendarID, now.Add(-f.lookback), now.Add(365*24*time.Hour))
	if err != nil {
		f.log.Error("calendar fetch failed", slog.Any("error", err))
		return
	}

	for _, entry := range entries {
		known, err := f.events.ExistsBySlot(ctx, entry.Summary, entry.Start, entry.End)
		if err != nil {
			f.log.Error("event lookup failed",
				slog.String("summary", entry.Summary), slog.Any("error", err))
			continue
		}
		if known {
			continue
		}

		event := repositories.Event{
			Summary:     entry.Summary,
			Start:       entry.Start,
			End:         entry.End,
			Location:    entry.Location,
			Description: entry.Description,
		}
		localID, err := f.events.Create(ctx, event)
		if err != nil {
			f.log.Error("persist calendar event failed",
				slog.String("summary", entry.Summary), slog.Any("error", err))
			continue
		}
		event.ID = localID
		if err := f.repub.PublishEvent(ctx, event); err != nil {
			f.log.Error("republish calendar event failed",
				slog.Int64("event_id", localID), slog.Any("error", err))
			continue
		}
		f.log.Info("calendar event imported",
			slog.Int64("event_id", localID), slog.String("summary", entry.Summary))
	}
}
