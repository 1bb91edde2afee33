// Package hourly derives the hourly actual, target and cumulative output
// series shown on the cycle count dashboard.
//
// Aggregate is pure: it performs no I/O, keeps no state between calls and
// never mutates its inputs, so it can be called concurrently.
package hourly

import (
	"fmt"
	"math"
)

// ShiftHours is the fixed shift length the fallback target is spread over.
// It is a policy constant and is not derived from the shift windows.
const ShiftHours = 8

// Counter is a production counter record as the engine sees it. Numeric
// fields are loosely typed because the upstream data is user-entered.
type Counter struct {
	Date          string                 `json:"date"`
	Shift         string                 `json:"shift"`
	HourlyActuals map[string]interface{} `json:"hourlyActuals,omitempty"`
	HourlyTargets map[string]interface{} `json:"hourlyTargets,omitempty"`
	StandardRate  interface{}            `json:"standardRate,omitempty"`
	TargetOutput  interface{}            `json:"targetOutput,omitempty"`
}

// Attendance is a single present worker on a date and shift.
type Attendance struct {
	Date  string `json:"date"`
	Shift string `json:"shift"`
}

// Result holds the aligned hourly series.
type Result struct {
	Labels     []string  `json:"labels"`
	Actual     []float64 `json:"actual"`
	Target     []float64 `json:"target"`
	Cumulative []float64 `json:"cumulative"`
}

// TotalActual is the last cumulative value.
func (r *Result) TotalActual() float64 {
	if r == nil || len(r.Cumulative) == 0 {
		return 0
	}
	return r.Cumulative[len(r.Cumulative)-1]
}

// TotalTarget sums the target series.
func (r *Result) TotalTarget() float64 {
	if r == nil {
		return 0
	}
	var total float64
	for _, v := range r.Target {
		total += v
	}
	return total
}

// Outcome is either a computed Result or the no-data signal for Date.
type Outcome struct {
	Date   string
	Result *Result
}

// NoData reports that no counter matched the requested date.
func (o Outcome) NoData() bool {
	return o.Result == nil
}

// Message is the empty-state text shown instead of a chart.
func (o Outcome) Message() string {
	if o.NoData() {
		return fmt.Sprintf("No data for %s", o.Date)
	}
	return ""
}

// Aggregate builds the hourly series for date from counters and attendance.
func Aggregate(date string, counters []Counter, attendance []Attendance) Outcome {
	matching := make([]*Counter, 0, len(counters))
	for i := range counters {
		if counters[i].Date == date {
			matching = append(matching, &counters[i])
		}
	}
	if len(matching) == 0 {
		return Outcome{Date: date}
	}

	actual := make([]float64, BucketCount)
	target := make([]float64, BucketCount)

	for _, counter := range matching {
		addLabelled(actual, counter.HourlyActuals)
		if len(counter.HourlyTargets) > 0 {
			addLabelled(target, counter.HourlyTargets)
			continue
		}
		distribute(target, counter.Shift, defaultHourlyTarget(counter, attendance))
	}

	cumulative := make([]float64, BucketCount)
	var sum float64
	for i, v := range actual {
		sum += v
		cumulative[i] = sum
	}

	return Outcome{
		Date: date,
		Result: &Result{
			Labels:     Labels(),
			Actual:     actual,
			Target:     target,
			Cumulative: cumulative,
		},
	}
}

// addLabelled adds values keyed by axis label; labels off the axis are dropped.
func addLabelled(series []float64, values map[string]interface{}) {
	for label, raw := range values {
		i, ok := IndexOf(label)
		if !ok {
			continue
		}
		series[i] += Number(raw)
	}
}

// Headcount counts attendance records on date for shift.
func Headcount(date, shift string, attendance []Attendance) int {
	n := 0
	for _, a := range attendance {
		if a.Date == date && a.Shift == shift {
			n++
		}
	}
	return n
}

// DefaultHourlyTarget returns the per-hour fallback target for a counter
// that carries no explicit hourly targets.
func DefaultHourlyTarget(counter Counter, attendance []Attendance) float64 {
	return defaultHourlyTarget(&counter, attendance)
}

func defaultHourlyTarget(counter *Counter, attendance []Attendance) float64 {
	rate := Number(counter.StandardRate)
	var active float64
	if rate > 0 {
		active = float64(Headcount(counter.Date, counter.Shift, attendance)) * rate
	} else {
		active = Number(counter.TargetOutput)
	}
	if active <= 0 {
		return 0
	}
	return math.Round(active / ShiftHours)
}

func distribute(series []float64, shift string, perHour float64) {
	window, ok := ShiftWindow(shift)
	if !ok || perHour == 0 {
		return
	}
	for h := window.Start; h < window.End; h++ {
		if h < FirstHour || h >= EndHour {
			continue
		}
		series[h-FirstHour] += perHour
	}
}
