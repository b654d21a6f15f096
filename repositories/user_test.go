package repositories

import (
	"context"
	"database/sql"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"planning-sync/errors"
)

// openTestDB opens a throwaway database file. A file, not :memory:,
// because database/sql pools connections and each in-memory connection
// would see its own empty schema.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "planning.db"))
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()

	t.Run("should create and read back a user", func(t *testing.T) {
		req := require.New(t)
		repo := NewUserRepository(openTestDB(t), logger)

		user := User{ID: "user-1", FirstName: "John", LastName: "Doe", Email: "john@mail.com", CompanyID: "comp-1"}
		req.NoError(repo.Create(ctx, user))

		got, err := repo.Get(ctx, "user-1")
		req.NoError(err)
		req.Equal("John", got.FirstName)
		req.Equal("comp-1", got.CompanyID)
		req.Empty(got.CalendarLink)
	})

	t.Run("should fail with ErrDuplicateID on a second create", func(t *testing.T) {
		req := require.New(t)
		repo := NewUserRepository(openTestDB(t), logger)

		req.NoError(repo.Create(ctx, User{ID: "user-1", FirstName: "John"}))
		err := repo.Create(ctx, User{ID: "user-1", FirstName: "Johnny"})

		req.ErrorIs(err, errors.ErrDuplicateID)

		got, err := repo.Get(ctx, "user-1")
		req.NoError(err)
		req.Equal("John", got.FirstName)
	})

	t.Run("should fail with ErrNotFound when reading a missing user", func(t *testing.T) {
		req := require.New(t)
		repo := NewUserRepository(openTestDB(t), logger)

		_, err := repo.Get(ctx, "ghost")

		req.ErrorIs(err, errors.ErrNotFound)
	})

	t.Run("should keep stored values for empty update fields", func(t *testing.T) {
		req := require.New(t)
		repo := NewUserRepository(openTestDB(t), logger)

		req.NoError(repo.Create(ctx, User{ID: "user-1", FirstName: "John", LastName: "Doe", Email: "john@mail.com"}))
		req.NoError(repo.Update(ctx, User{ID: "user-1", Email: "new@mail.com"}))

		got, err := repo.Get(ctx, "user-1")
		req.NoError(err)
		req.Equal("John", got.FirstName)
		req.Equal("Doe", got.LastName)
		req.Equal("new@mail.com", got.Email)
	})

	t.Run("should fail with ErrNotFound when updating a missing user", func(t *testing.T) {
		req := require.New(t)
		repo := NewUserRepository(openTestDB(t), logger)

		err := repo.Update(ctx, User{ID: "ghost", Email: "new@mail.com"})

		req.ErrorIs(err, errors.ErrNotFound)
	})

	t.Run("should delete idempotently", func(t *testing.T) {
		req := require.New(t)
		repo := NewUserRepository(openTestDB(t), logger)

		req.NoError(repo.Create(ctx, User{ID: "user-1"}))
		req.NoError(repo.Delete(ctx, "user-1"))
		req.NoError(repo.Delete(ctx, "user-1"))

		_, err := repo.Get(ctx, "user-1")
		req.ErrorIs(err, errors.ErrNotFound)
	})

	t.Run("should persist the calendar pair", func(t *testing.T) {
		req := require.New(t)
		repo := NewUserRepository(openTestDB(t), logger)

		req.NoError(repo.Create(ctx, User{ID: "user-1"}))
		req.NoError(repo.SetCalendar(ctx, "user-1", "cal-1", "https://calendar.google.com/calendar/embed?src=cal-1"))

		got, err := repo.Get(ctx, "user-1")
		req.NoError(err)
		req.Equal("cal-1", got.CalendarID)
		req.Equal("https://calendar.google.com/calendar/embed?src=cal-1", got.CalendarLink)
	})

	t.Run("should fail SetCalendar for a missing user", func(t *testing.T) {
		req := require.New(t)
		repo := NewUserRepository(openTestDB(t), logger)

		err := repo.SetCalendar(ctx, "ghost", "cal-1", "link")

		req.ErrorIs(err, errors.ErrNotFound)
	})
}

func TestCompanyRepository(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()

	t.Run("should merge update fields onto the stored row", func(t *testing.T) {
		req := require.New(t)
		repo := NewCompanyRepository(openTestDB(t), logger)

		req.NoError(repo.Create(ctx, Company{ID: "comp-1", Name: "Acme", Email: "info@acme.be"}))
		req.NoError(repo.Update(ctx, Company{ID: "comp-1", Name: "Acme NV"}))

		got, err := repo.Get(ctx, "comp-1")
		req.NoError(err)
		req.Equal("Acme NV", got.Name)
		req.Equal("info@acme.be", got.Email)
	})

	t.Run("should fail with ErrDuplicateID on a second create", func(t *testing.T) {
		req := require.New(t)
		repo := NewCompanyRepository(openTestDB(t), logger)

		req.NoError(repo.Create(ctx, Company{ID: "comp-1", Name: "Acme"}))
		req.ErrorIs(repo.Create(ctx, Company{ID: "comp-1"}), errors.ErrDuplicateID)
	})
}

func TestAttendanceRepository(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()

	t.Run("should create, read and delete an attendance", func(t *testing.T) {
		req := require.New(t)
		repo := NewAttendanceRepository(openTestDB(t), logger)

		req.NoError(repo.Create(ctx, Attendance{ID: "att-1", UserID: "user-1", EventID: "event-1"}))

		got, err := repo.Get(ctx, "att-1")
		req.NoError(err)
		req.Equal("user-1", got.UserID)

		req.NoError(repo.Delete(ctx, "att-1"))
		req.NoError(repo.Delete(ctx, "att-1"))

		_, err = repo.Get(ctx, "att-1")
		req.ErrorIs(err, errors.ErrNotFound)
	})
}
