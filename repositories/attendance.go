package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"planning-sync/errors"
)

type IAttendanceRepository interface {
	Create(ctx context.Context, attendance Attendance) error
	Get(ctx context.Context, id string) (Attendance, error)
	Delete(ctx context.Context, id string) error
}

// Attendance links a user to an event, both referenced by their shared
// master ids.
type Attendance struct {
	ID      string
	UserID  string
	EventID string
}

type AttendanceRepository struct {
	db  *sql.DB
	log *slog.Logger
}

func NewAttendanceRepository(db *sql.DB, logger *slog.Logger) IAttendanceRepository {
	return &AttendanceRepository{db: db, log: logger}
}

func (r *AttendanceRepository) Create(ctx context.Context, attendance Attendance) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr("begin attendance create", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM Attendance WHERE AttendanceId = ?`, attendance.ID).Scan(&exists)
	if err == nil {
		return fmt.Errorf("%w: attendance %q", errors.ErrDuplicateID, attendance.ID)
	}
	if err != sql.ErrNoRows {
		return storageErr("check attendance", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO Attendance (AttendanceId, UserId, EventId) VALUES (?, ?, ?)`,
		attendance.ID, attendance.UserID, attendance.EventID,
	)
	if err != nil {
		return storageErr("insert attendance", err)
	}
	return commit(tx, "attendance create")
}

func (r *AttendanceRepository) Get(ctx context.Context, id string) (Attendance, error) {
	var attendance Attendance
	err := r.db.QueryRowContext(ctx,
		`SELECT AttendanceId, UserId, EventId FROM Attendance WHERE AttendanceId = ?`, id,
	).Scan(&attendance.ID, &attendance.UserID, &attendance.EventID)
	if err == sql.ErrNoRows {
		return Attendance{}, fmt.Errorf("%w: attendance %q", errors.ErrNotFound, id)
	}
	if err != nil {
		return Attendance{}, storageErr("select attendance", err)
	}
	return attendance, nil
}

func (r *AttendanceRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM Attendance WHERE AttendanceId = ?`, id); err != nil {
		return storageErr("delete attendance", err)
	}
	return nil
}
