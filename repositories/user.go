package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/samber/lo"

	"planning-sync/errors"
)

type IUserRepository interface {
	Create(ctx context.Context, user User) error
	Get(ctx context.Context, id string) (User, error)
	Update(ctx context.Context, user User) error
	Delete(ctx context.Context, id string) error
	SetCalendar(ctx context.Context, id, calendarID, link string) error
}

// User is the row the planning store keeps for an external user id. The
// calendar pair is derived data, populated once when the user is first
// created.
type User struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	CompanyID    string
	CalendarID   string
	CalendarLink string
}

type UserRepository struct {
	db  *sql.DB
	log *slog.Logger
}

func NewUserRepository(db *sql.DB, logger *slog.Logger) IUserRepository {
	return &UserRepository{db: db, log: logger}
}

// Create inserts a new row keyed by the external id. A second create for
// the same id is ErrDuplicateID; the dispatcher logs it and drops the
// message instead of overwriting state written by an earlier delivery.
func (r *UserRepository) Create(ctx context.Context, user User) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr("begin user create", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM User WHERE UserId = ?`, user.ID).Scan(&exists)
	if err == nil {
		return fmt.Errorf("%w: user %q", errors.ErrDuplicateID, user.ID)
	}
	if err != sql.ErrNoRows {
		return storageErr("check user", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO User (UserId, FirstName, LastName, Email, CompanyId) VALUES (?, ?, ?, ?, ?)`,
		user.ID, user.FirstName, user.LastName, user.Email, user.CompanyID,
	)
	if err != nil {
		return storageErr("insert user", err)
	}
	return commit(tx, "user create")
}

func (r *UserRepository) Get(ctx context.Context, id string) (User, error) {
	var user User
	err := r.db.QueryRowContext(ctx,
		`SELECT UserId, FirstName, LastName, Email, CompanyId, CalendarId, CalendarLink
		 FROM User WHERE UserId = ?`, id,
	).Scan(&user.ID, &user.FirstName, &user.LastName, &user.Email,
		&user.CompanyID, &user.CalendarID, &user.CalendarLink)
	if err == sql.ErrNoRows {
		return User{}, fmt.Errorf("%w: user %q", errors.ErrNotFound, id)
	}
	if err != nil {
		return User{}, storageErr("select user", err)
	}
	return user, nil
}

// Update merges the incoming fields onto the stored row: an empty
// incoming field keeps the stored value. A missing field is not "clear to
// empty". ErrNotFound when the id was never created.
func (r *UserRepository) Update(ctx context.Context, user User) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr("begin user update", err)
	}
	defer tx.Rollback()

	var current User
	err = tx.QueryRowContext(ctx,
		`SELECT FirstName, LastName, Email, CompanyId FROM User WHERE UserId = ?`, user.ID,
	).Scan(&current.FirstName, &current.LastName, &current.Email, &current.CompanyID)
	if err == sql.ErrNoRows {
		return fmt.Errorf("%w: user %q", errors.ErrNotFound, user.ID)
	}
	if err != nil {
		return storageErr("select user", err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE User SET FirstName = ?, LastName = ?, Email = ?, CompanyId = ? WHERE UserId = ?`,
		fallback(user.FirstName, current.FirstName),
		fallback(user.LastName, current.LastName),
		fallback(user.Email, current.Email),
		fallback(user.CompanyID, current.CompanyID),
		user.ID,
	)
	if err != nil {
		return storageErr("update user", err)
	}
	return commit(tx, "user update")
}

// Delete is idempotent: removing an id that was already removed (or never
// existed) succeeds. Duplicate deletes are expected under at-least-once
// delivery.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM User WHERE UserId = ?`, id); err != nil {
		return storageErr("delete user", err)
	}
	return nil
}

// SetCalendar persists the derived calendar id/link pair after the side
// effect created (or reused) the user's calendar.
func (r *UserRepository) SetCalendar(ctx context.Context, id, calendarID, link string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE User SET CalendarId = ?, CalendarLink = ? WHERE UserId = ?`,
		calendarID, link, id,
	)
	if err != nil {
		return storageErr("set calendar", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: user %q", errors.ErrNotFound, id)
	}
	return nil
}

func fallback(incoming, current string) string {
	return lo.Ternary(incoming != "", incoming, current)
}

func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", errors.ErrStorage, op, err)
}

func commit(tx *sql.Tx, op string) error {
	if err := tx.Commit(); err != nil {
		return storageErr("commit "+op, err)
	}
	return nil
}
