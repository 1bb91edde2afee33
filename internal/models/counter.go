package models

import (
	"time"

	"github.com/noah-isme/cycle-count-api/pkg/hourly"
)

// DateLayout is the ISO calendar date format used for production dates.
const DateLayout = "2006-01-02"

// Counter is one production counter (line or station) report for a date and shift.
type Counter struct {
	ID            string       `db:"id" json:"id"`
	Name          string       `db:"name" json:"name"`
	Date          string       `db:"work_date" json:"date"`
	Shift         string       `db:"shift" json:"shift"`
	HourlyActuals HourlyValues `db:"hourly_actuals" json:"hourlyActuals,omitempty"`
	HourlyTargets HourlyValues `db:"hourly_targets" json:"hourlyTargets,omitempty"`
	StandardRate  LooseValue   `db:"standard_rate" json:"standardRate"`
	TargetOutput  LooseValue   `db:"target_output" json:"targetOutput"`
	CreatedAt     time.Time    `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time    `db:"updated_at" json:"updatedAt"`
}

// Record converts the stored counter into the aggregation input.
func (c Counter) Record() hourly.Counter {
	return hourly.Counter{
		Date:          c.Date,
		Shift:         c.Shift,
		HourlyActuals: c.HourlyActuals,
		HourlyTargets: c.HourlyTargets,
		StandardRate:  c.StandardRate.V,
		TargetOutput:  c.TargetOutput.V,
	}
}

// CounterRecords converts a slice of counters.
func CounterRecords(counters []Counter) []hourly.Counter {
	out := make([]hourly.Counter, len(counters))
	for i := range counters {
		out[i] = counters[i].Record()
	}
	return out
}

// CounterFilter scopes counter queries.
type CounterFilter struct {
	Date     string
	Shift    string
	Page     int
	PageSize int
}
