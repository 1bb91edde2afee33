package export

import (
	"fmt"
	"strconv"

	"github.com/noah-isme/cycle-count-api/pkg/hourly"
)

// Report column headers in render order.
const (
	ColumnHour       = "Hour"
	ColumnActual     = "Actual"
	ColumnTarget     = "Target"
	ColumnCumulative = "Cumulative"
	ColumnVariance   = "Variance"
)

// Report is an hourly output table independent of the output format.
type Report struct {
	Title   string
	Date    string
	Headers []string
	Rows    [][]string
	Totals  []string
}

// HourlyReport builds the export table for a computed result. Variance is
// actual minus target for the hour.
func HourlyReport(title, date string, r *hourly.Result) (Report, error) {
	if r == nil {
		return Report{}, fmt.Errorf("no hourly result for %s", date)
	}
	report := Report{
		Title:   title,
		Date:    date,
		Headers: []string{ColumnHour, ColumnActual, ColumnTarget, ColumnCumulative, ColumnVariance},
		Rows:    make([][]string, 0, len(r.Labels)),
	}
	for i, label := range r.Labels {
		report.Rows = append(report.Rows, []string{
			label,
			formatNumber(r.Actual[i]),
			formatNumber(r.Target[i]),
			formatNumber(r.Cumulative[i]),
			formatNumber(r.Actual[i] - r.Target[i]),
		})
	}
	actual, target := r.TotalActual(), r.TotalTarget()
	report.Totals = []string{
		"Total",
		formatNumber(actual),
		formatNumber(target),
		formatNumber(actual),
		formatNumber(actual - target),
	}
	return report, nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
