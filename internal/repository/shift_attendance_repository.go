package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/cycle-count-api/internal/models"
)

// ShiftAttendanceRepository stores shift check-ins.
type ShiftAttendanceRepository struct {
	db *sqlx.DB
}

// NewShiftAttendanceRepository constructs the repository.
func NewShiftAttendanceRepository(db *sqlx.DB) *ShiftAttendanceRepository {
	return &ShiftAttendanceRepository{db: db}
}

// List returns check-ins matching the filter.
func (r *ShiftAttendanceRepository) List(ctx context.Context, filter models.AttendanceFilter) ([]models.ShiftAttendance, error) {
	where := []string{"1=1"}
	args := []interface{}{}
	if filter.Date != "" {
		where = append(where, fmt.Sprintf("work_date = $%d", len(args)+1))
		args = append(args, filter.Date)
	}
	if filter.Shift != "" {
		where = append(where, fmt.Sprintf("shift = $%d", len(args)+1))
		args = append(args, filter.Shift)
	}
	query := fmt.Sprintf(`SELECT id, to_char(work_date, 'YYYY-MM-DD') AS work_date, shift, worker_id, checked_in_at
FROM shift_attendance
WHERE %s
ORDER BY checked_in_at`, strings.Join(where, " AND "))

	var rows []models.ShiftAttendance
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list shift attendance: %w", err)
	}
	return rows, nil
}

// BulkCheckIn records check-ins in one transaction. A worker already checked in
// for the same date and shift is skipped; the number of new rows is returned.
func (r *ShiftAttendanceRepository) BulkCheckIn(ctx context.Context, records []models.ShiftAttendance) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin shift attendance: %w", err)
	}
	commit := false
	defer func() {
		if !commit {
			_ = tx.Rollback()
		}
	}()

	query := `INSERT INTO shift_attendance (id, work_date, shift, worker_id, checked_in_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (work_date, shift, worker_id) DO NOTHING`
	now := time.Now().UTC()
	inserted := 0
	for i := range records {
		rec := &records[i]
		if rec.ID == "" {
			rec.ID = uuid.NewString()
		}
		if rec.CheckedInAt.IsZero() {
			rec.CheckedInAt = now
		}
		res, err := tx.ExecContext(ctx, query, rec.ID, rec.Date, rec.Shift, rec.WorkerID, rec.CheckedInAt)
		if err != nil {
			return 0, fmt.Errorf("insert shift attendance for %s: %w", rec.WorkerID, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			inserted += int(n)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit shift attendance: %w", err)
	}
	commit = true
	return inserted, nil
}
