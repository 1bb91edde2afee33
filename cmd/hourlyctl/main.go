package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/noah-isme/cycle-count-api/internal/models"
	"github.com/noah-isme/cycle-count-api/internal/service"
	"github.com/noah-isme/cycle-count-api/pkg/export"
	"github.com/noah-isme/cycle-count-api/pkg/hourly"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	totalStyle   = cellStyle.Bold(true)
	messageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "hourlyctl",
		Short:        "Offline hourly output aggregation",
		Long:         "hourlyctl computes the hourly actual, target and cumulative output series from counter and attendance exports.",
		SilenceUsage: true,
	}
	root.AddCommand(newAggregateCmd(), newShiftsCmd(), newLabelsCmd())
	return root
}

type aggregateOptions struct {
	date           string
	countersPath   string
	attendancePath string
	format         string
	shift          string
}

func newAggregateCmd() *cobra.Command {
	opts := &aggregateOptions{}
	cmd := &cobra.Command{
		Use:   "aggregate",
		Short: "Aggregate counters and attendance for one date",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAggregate(cmd.OutOrStdout(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.date, "date", time.Now().Format(models.DateLayout), "production date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.countersPath, "counters", "", "JSON array of counter records")
	cmd.Flags().StringVar(&opts.attendancePath, "attendance", "", "JSON array of attendance records")
	cmd.Flags().StringVar(&opts.format, "format", "table", "output format: table, json or csv")
	cmd.Flags().StringVar(&opts.shift, "shift", "", "only aggregate counters of this shift")
	_ = cmd.MarkFlagRequired("counters")
	return cmd
}

func newShiftsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shifts",
		Short: "List known shifts and their hour windows",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, name := range hourly.Shifts() {
				w, _ := hourly.ShiftWindow(name)
				fmt.Fprintf(out, "%s\t%02d:00-%02d:00\t%dh\n", name, w.Start, w.End, w.Hours())
			}
			return nil
		},
	}
}

func newLabelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "labels",
		Short: "Print the hour axis labels",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(hourly.Labels(), "\n"))
			return nil
		},
	}
}

func runAggregate(out io.Writer, opts *aggregateOptions) error {
	if err := service.ValidateDate(opts.date); err != nil {
		return err
	}
	var counters []hourly.Counter
	if err := readJSON(opts.countersPath, &counters); err != nil {
		return fmt.Errorf("reading counters: %w", err)
	}
	var attendance []hourly.Attendance
	if opts.attendancePath != "" {
		if err := readJSON(opts.attendancePath, &attendance); err != nil {
			return fmt.Errorf("reading attendance: %w", err)
		}
	}
	if opts.shift != "" {
		filtered := counters[:0:0]
		for _, c := range counters {
			if c.Shift == opts.shift {
				filtered = append(filtered, c)
			}
		}
		counters = filtered
	}

	outcome := hourly.Aggregate(opts.date, counters, attendance)

	switch strings.ToLower(opts.format) {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(service.BuildHourlyResponse(outcome, opts.shift))
	case "csv":
		if outcome.NoData() {
			return fmt.Errorf("%s", outcome.Message())
		}
		report, err := export.HourlyReport("Hourly Output", opts.date, outcome.Result)
		if err != nil {
			return err
		}
		payload, err := export.NewCSVExporter().Render(report)
		if err != nil {
			return err
		}
		_, err = out.Write(payload)
		return err
	case "table", "":
		return renderTable(out, opts.date, outcome)
	default:
		return fmt.Errorf("unsupported format %q", opts.format)
	}
}

func renderTable(out io.Writer, date string, outcome hourly.Outcome) error {
	if outcome.NoData() {
		_, err := fmt.Fprintln(out, messageStyle.Render(outcome.Message()))
		return err
	}
	report, err := export.HourlyReport("Hourly Output", date, outcome.Result)
	if err != nil {
		return err
	}
	rows := append(report.Rows, report.Totals)
	last := len(rows)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(report.Headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row == last-1:
				return totalStyle
			default:
				return cellStyle
			}
		})
	_, err = fmt.Fprintln(out, t.Render())
	return err
}

// readJSON decodes a JSON array file, keeping numbers as json.Number so loose
// values reach the engine exactly as exported.
func readJSON(path string, dest interface{}) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	return dec.Decode(dest)
}
