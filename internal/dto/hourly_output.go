package dto

import "github.com/noah-isme/cycle-count-api/pkg/hourly"

// Hourly output response statuses.
const (
	HourlyStatusOK     = "ok"
	HourlyStatusNoData = "no_data"
)

// HourlyOutputResponse is the chart bundle for one date, optionally narrowed to a shift.
type HourlyOutputResponse struct {
	Status     string           `json:"status"`
	Date       string           `json:"date"`
	Shift      string           `json:"shift,omitempty"`
	Labels     []string         `json:"labels"`
	Actual     []float64        `json:"actual"`
	Target     []float64        `json:"target"`
	Cumulative []float64        `json:"cumulative"`
	Datasets   []hourly.Dataset `json:"datasets"`
	Totals     HourlyTotals     `json:"totals"`
	Message    string           `json:"message,omitempty"`
}

// HourlyTotals summarises the day. AttainmentPct is absent when no target exists.
type HourlyTotals struct {
	Actual        float64  `json:"actual"`
	Target        float64  `json:"target"`
	AttainmentPct *float64 `json:"attainmentPct,omitempty"`
}

// HourlyExport is a rendered report ready for download.
type HourlyExport struct {
	Filename    string
	ContentType string
	Payload     []byte
}
