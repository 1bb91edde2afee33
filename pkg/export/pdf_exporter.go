package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// PDFExporter renders reports into a single-page tabular PDF.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// ContentType of the rendered payload.
func (e *PDFExporter) ContentType() string { return "application/pdf" }

// Extension of the rendered file.
func (e *PDFExporter) Extension() string { return "pdf" }

// Render creates a PDF document with a title line, the hourly table and a bold totals row.
func (e *PDFExporter) Render(report Report) ([]byte, error) {
	if len(report.Headers) == 0 {
		return nil, fmt.Errorf("pdf requires at least one header")
	}
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()

	if report.Title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, report.Title, "", 1, "C", false, 0, "")
	}
	if report.Date != "" {
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(0, 6, report.Date, "", 1, "C", false, 0, "")
	}
	pdf.Ln(4)

	colWidth := 190.0 / float64(len(report.Headers))
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(54, 185, 204)
	for _, header := range report.Headers {
		pdf.CellFormat(colWidth, 8, header, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, row := range report.Rows {
		writeRow(pdf, row, colWidth, len(report.Headers))
	}
	if len(report.Totals) > 0 {
		pdf.SetFont("Arial", "B", 9)
		writeRow(pdf, report.Totals, colWidth, len(report.Headers))
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRow(pdf *gofpdf.Fpdf, row []string, width float64, columns int) {
	for i := 0; i < columns; i++ {
		value := ""
		if i < len(row) {
			value = row[i]
		}
		align := "R"
		if i == 0 {
			align = "L"
		}
		pdf.CellFormat(width, 7, value, "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}
