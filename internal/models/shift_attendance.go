package models

import (
	"time"

	"github.com/noah-isme/cycle-count-api/pkg/hourly"
)

// ShiftAttendance marks one worker present on a shift.
type ShiftAttendance struct {
	ID          string    `db:"id" json:"id"`
	Date        string    `db:"work_date" json:"date"`
	Shift       string    `db:"shift" json:"shift"`
	WorkerID    string    `db:"worker_id" json:"workerId"`
	CheckedInAt time.Time `db:"checked_in_at" json:"checkedInAt"`
}

// AttendanceFilter scopes attendance queries.
type AttendanceFilter struct {
	Date  string
	Shift string
}

// AttendanceRecords converts attendance rows into aggregation input.
func AttendanceRecords(rows []ShiftAttendance) []hourly.Attendance {
	out := make([]hourly.Attendance, len(rows))
	for i, row := range rows {
		out[i] = hourly.Attendance{Date: row.Date, Shift: row.Shift}
	}
	return out
}
