package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// CSVExporter renders reports into CSV bytes.
type CSVExporter struct{}

// NewCSVExporter builds a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// ContentType of the rendered payload.
func (e *CSVExporter) ContentType() string { return "text/csv" }

// Extension of the rendered file.
func (e *CSVExporter) Extension() string { return "csv" }

// Render produces CSV encoded bytes: header row, one row per hour, then totals.
func (e *CSVExporter) Render(report Report) ([]byte, error) {
	if len(report.Headers) == 0 {
		return nil, fmt.Errorf("csv requires at least one header")
	}
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)
	if err := writer.Write(report.Headers); err != nil {
		return nil, fmt.Errorf("write csv headers: %w", err)
	}
	for _, row := range report.Rows {
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	if len(report.Totals) > 0 {
		if err := writer.Write(report.Totals); err != nil {
			return nil, fmt.Errorf("write csv totals: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
