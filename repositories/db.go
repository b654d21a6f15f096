package repositories

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Open opens the planning database. WAL keeps the single writer from
// blocking the event fetcher's reads; busy_timeout covers checkpointing.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

// Migrate creates the planning tables. User and Company are keyed by the
// external id a message carries; Events rows get a store-generated id
// that the master-id mapping re-addresses.
func Migrate(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS User (
			UserId       TEXT PRIMARY KEY,
			FirstName    TEXT NOT NULL DEFAULT '',
			LastName     TEXT NOT NULL DEFAULT '',
			Email        TEXT NOT NULL DEFAULT '',
			CompanyId    TEXT NOT NULL DEFAULT '',
			CalendarId   TEXT NOT NULL DEFAULT '',
			CalendarLink TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS Company (
			CompanyId TEXT PRIMARY KEY,
			Name      TEXT NOT NULL DEFAULT '',
			Email     TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS Events (
			Id               INTEGER PRIMARY KEY AUTOINCREMENT,
			Summary          TEXT NOT NULL DEFAULT '',
			StartDatetime    TEXT NOT NULL DEFAULT '',
			EndDatetime      TEXT NOT NULL DEFAULT '',
			Location         TEXT NOT NULL DEFAULT '',
			Description      TEXT NOT NULL DEFAULT '',
			MaxRegistrations INTEGER NOT NULL DEFAULT 0,
			AvailableSeats   INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS Attendance (
			AttendanceId TEXT PRIMARY KEY,
			UserId       TEXT NOT NULL DEFAULT '',
			EventId      TEXT NOT NULL DEFAULT ''
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
