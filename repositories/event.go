package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/samber/lo"

	"planning-sync/errors"
)

// sqlite TEXT column format for event datetimes
const datetimeLayout = "2006-01-02 15:04:05"

type IEventRepository interface {
	Create(ctx context.Context, event Event) (int64, error)
	Get(ctx context.Context, id int64) (Event, error)
	Update(ctx context.Context, event Event) error
	Delete(ctx context.Context, id int64) error
	ExistsBySlot(ctx context.Context, summary string, start, end time.Time) (bool, error)
}

// Event is keyed by a store-generated row id; the shared master id that
// messages carry is re-addressed through the id mapping service.
type Event struct {
	ID               int64
	Summary          string
	Start            time.Time
	End              time.Time
	Location         string
	Description      string
	MaxRegistrations int
	AvailableSeats   int
}

type EventRepository struct {
	db  *sql.DB
	log *slog.Logger
}

func NewEventRepository(db *sql.DB, logger *slog.Logger) IEventRepository {
	return &EventRepository{db: db, log: logger}
}

// Create inserts the event and returns the generated local id.
func (r *EventRepository) Create(ctx context.Context, event Event) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO Events (Summary, StartDatetime, EndDatetime, Location, Description, MaxRegistrations, AvailableSeats)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		event.Summary, formatTime(event.Start), formatTime(event.End),
		event.Location, event.Description, event.MaxRegistrations, event.AvailableSeats,
	)
	if err != nil {
		return 0, storageErr("insert event", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, storageErr("event insert id", err)
	}
	return id, nil
}

func (r *EventRepository) Get(ctx context.Context, id int64) (Event, error) {
	var (
		event      Event
		start, end string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT Id, Summary, StartDatetime, EndDatetime, Location, Description, MaxRegistrations, AvailableSeats
		 FROM Events WHERE Id = ?`, id,
	).Scan(&event.ID, &event.Summary, &start, &end,
		&event.Location, &event.Description, &event.MaxRegistrations, &event.AvailableSeats)
	if err == sql.ErrNoRows {
		return Event{}, fmt.Errorf("%w: event %d", errors.ErrNotFound, id)
	}
	if err != nil {
		return Event{}, storageErr("select event", err)
	}
	event.Start, _ = time.Parse(datetimeLayout, start)
	event.End, _ = time.Parse(datetimeLayout, end)
	return event, nil
}

func (r *EventRepository) Update(ctx context.Context, event Event) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr("begin event update", err)
	}
	defer tx.Rollback()

	var (
		current    Event
		start, end string
	)
	err = tx.QueryRowContext(ctx,
		`SELECT Summary, StartDatetime, EndDatetime, Location, Description, MaxRegistrations, AvailableSeats
		 FROM Events WHERE Id = ?`, event.ID,
	).Scan(&current.Summary, &start, &end,
		&current.Location, &current.Description, &current.MaxRegistrations, &current.AvailableSeats)
	if err == sql.ErrNoRows {
		return fmt.Errorf("%w: event %d", errors.ErrNotFound, event.ID)
	}
	if err != nil {
		return storageErr("select event", err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE Events SET Summary = ?, StartDatetime = ?, EndDatetime = ?, Location = ?, Description = ?, MaxRegistrations = ?, AvailableSeats = ?
		 WHERE Id = ?`,
		fallback(event.Summary, current.Summary),
		lo.Ternary(event.Start.IsZero(), start, formatTime(event.Start)),
		lo.Ternary(event.End.IsZero(), end, formatTime(event.End)),
		fallback(event.Location, current.Location),
		fallback(event.Description, current.Description),
		lo.Ternary(event.MaxRegistrations == 0, current.MaxRegistrations, event.MaxRegistrations),
		lo.Ternary(event.AvailableSeats == 0, current.AvailableSeats, event.AvailableSeats),
		event.ID,
	)
	if err != nil {
		return storageErr("update event", err)
	}
	return commit(tx, "event update")
}

func (r *EventRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM Events WHERE Id = ?`, id); err != nil {
		return storageErr("delete event", err)
	}
	return nil
}

// ExistsBySlot reports whether an event with the same summary and time
// slot is already stored. The fetcher uses it to deduplicate calendar
// pulls.
func (r *EventRepository) ExistsBySlot(ctx context.Context, summary string, start, end time.Time) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM Events WHERE Summary = ? AND StartDatetime = ? AND EndDatetime = ?`,
		summary, formatTime(start), formatTime(end),
	).Scan(&count)
	if err != nil {
		return false, storageErr("count events", err)
	}
	return count > 0, nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(datetimeLayout)
}
