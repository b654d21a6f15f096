package repositories

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"planning-sync/errors"
)

func TestEventRepository(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()
	start := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)

	t.Run("should create an event and return the generated id", func(t *testing.T) {
		req := require.New(t)
		repo := NewEventRepository(openTestDB(t), logger)

		id, err := repo.Create(ctx, Event{
			Summary: "Go Meetup", Start: start, End: end,
			Location: "Brussels", MaxRegistrations: 100, AvailableSeats: 100,
		})
		req.NoError(err)
		req.Positive(id)

		got, err := repo.Get(ctx, id)
		req.NoError(err)
		req.Equal("Go Meetup", got.Summary)
		req.True(got.Start.Equal(start))
		req.True(got.End.Equal(end))
		req.Equal(100, got.MaxRegistrations)
	})

	t.Run("should assign distinct ids to consecutive events", func(t *testing.T) {
		req := require.New(t)
		repo := NewEventRepository(openTestDB(t), logger)

		first, err := repo.Create(ctx, Event{Summary: "One", Start: start, End: end})
		req.NoError(err)
		second, err := repo.Create(ctx, Event{Summary: "Two", Start: start, End: end})
		req.NoError(err)
		req.NotEqual(first, second)
	})

	t.Run("should merge update fields and keep zero-valued ones", func(t *testing.T) {
		req := require.New(t)
		repo := NewEventRepository(openTestDB(t), logger)

		id, err := repo.Create(ctx, Event{
			Summary: "Go Meetup", Start: start, End: end,
			Location: "Brussels", MaxRegistrations: 100, AvailableSeats: 80,
		})
		req.NoError(err)

		req.NoError(repo.Update(ctx, Event{ID: id, Location: "Ghent", AvailableSeats: 79}))

		got, err := repo.Get(ctx, id)
		req.NoError(err)
		req.Equal("Go Meetup", got.Summary)
		req.Equal("Ghent", got.Location)
		req.True(got.Start.Equal(start))
		req.Equal(100, got.MaxRegistrations)
		req.Equal(79, got.AvailableSeats)
	})

	t.Run("should fail with ErrNotFound when updating a missing event", func(t *testing.T) {
		req := require.New(t)
		repo := NewEventRepository(openTestDB(t), logger)

		req.ErrorIs(repo.Update(ctx, Event{ID: 999, Summary: "Ghost"}), errors.ErrNotFound)
	})

	t.Run("should delete idempotently", func(t *testing.T) {
		req := require.New(t)
		repo := NewEventRepository(openTestDB(t), logger)

		id, err := repo.Create(ctx, Event{Summary: "Go Meetup", Start: start, End: end})
		req.NoError(err)

		req.NoError(repo.Delete(ctx, id))
		req.NoError(repo.Delete(ctx, id))
	})

	t.Run("should report an existing time slot", func(t *testing.T) {
		req := require.New(t)
		repo := NewEventRepository(openTestDB(t), logger)

		_, err := repo.Create(ctx, Event{Summary: "Go Meetup", Start: start, End: end})
		req.NoError(err)

		exists, err := repo.ExistsBySlot(ctx, "Go Meetup", start, end)
		req.NoError(err)
		req.True(exists)

		exists, err = repo.ExistsBySlot(ctx, "Go Meetup", start.Add(time.Hour), end)
		req.NoError(err)
		req.False(exists)
	})
}
