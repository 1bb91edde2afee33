package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/cycle-count-api/internal/dto"
	"github.com/noah-isme/cycle-count-api/internal/models"
	appErrors "github.com/noah-isme/cycle-count-api/pkg/errors"
	"github.com/noah-isme/cycle-count-api/pkg/export"
	"github.com/noah-isme/cycle-count-api/pkg/hourly"
)

// Aggregation scopes used for metrics and cache keys.
const (
	scopeDaily  = "daily"
	scopeShift  = "shift"
	scopeExport = "export"
)

type counterSource interface {
	ListForDate(ctx context.Context, date string) ([]models.Counter, error)
}

type attendanceSource interface {
	List(ctx context.Context, filter models.AttendanceFilter) ([]models.ShiftAttendance, error)
}

type reportRenderer interface {
	Render(report export.Report) ([]byte, error)
	ContentType() string
	Extension() string
}

// HourlyOutputServiceConfig tunes hourly output behaviour.
type HourlyOutputServiceConfig struct {
	CacheTTL     time.Duration
	Location     *time.Location
	DefaultShift string
}

// HourlyOutputServiceParams groups constructor dependencies.
type HourlyOutputServiceParams struct {
	Counters   counterSource
	Attendance attendanceSource
	Cache      *CacheService
	Metrics    *MetricsService
	Logger     *zap.Logger
	Config     HourlyOutputServiceConfig
}

// HourlyOutputService serves the hourly actual/target/cumulative bundle.
type HourlyOutputService struct {
	counters   counterSource
	attendance attendanceSource
	cache      *CacheService
	metrics    *MetricsService
	renderers  map[string]reportRenderer
	logger     *zap.Logger
	now        func() time.Time
	cfg        HourlyOutputServiceConfig
}

// NewHourlyOutputService constructs the service with sane defaults.
func NewHourlyOutputService(params HourlyOutputServiceParams) *HourlyOutputService {
	cfg := params.Config
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 2 * time.Minute
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.DefaultShift == "" {
		cfg.DefaultShift = hourly.ShiftFirst
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	csv, pdf := export.NewCSVExporter(), export.NewPDFExporter()
	return &HourlyOutputService{
		counters:   params.Counters,
		attendance: params.Attendance,
		cache:      params.Cache,
		metrics:    params.Metrics,
		renderers:  map[string]reportRenderer{csv.Extension(): csv, pdf.Extension(): pdf},
		logger:     logger,
		now:        time.Now,
		cfg:        cfg,
	}
}

// Today is the current production date in the configured timezone.
func (s *HourlyOutputService) Today() string {
	return s.now().In(s.cfg.Location).Format(models.DateLayout)
}

// DefaultShift is used by the per-shift view when no shift is requested.
func (s *HourlyOutputService) DefaultShift() string {
	return s.cfg.DefaultShift
}

// Daily returns the bundle for every counter on date and whether it came from cache.
func (s *HourlyOutputService) Daily(ctx context.Context, date string) (*dto.HourlyOutputResponse, bool, error) {
	if err := ValidateDate(date); err != nil {
		return nil, false, err
	}
	return s.bundle(ctx, scopeDaily, HourlyCacheKey(date), date, "")
}

// Shift returns the bundle computed only over counters reported for shift.
func (s *HourlyOutputService) Shift(ctx context.Context, date, shift string) (*dto.HourlyOutputResponse, bool, error) {
	if err := ValidateDate(date); err != nil {
		return nil, false, err
	}
	shift = strings.TrimSpace(shift)
	if shift == "" {
		shift = s.cfg.DefaultShift
	}
	return s.bundle(ctx, scopeShift, HourlyCacheKey(date)+":shift:"+shift, date, shift)
}

// Export renders the hourly table for date as csv or pdf. An empty date is a NO_DATA error.
func (s *HourlyOutputService) Export(ctx context.Context, date, format string) (*dto.HourlyExport, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = "csv"
	}
	renderer, ok := s.renderers[format]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrUnsupported, fmt.Sprintf("unsupported export format %q", format))
	}
	if err := ValidateDate(date); err != nil {
		return nil, err
	}

	start := time.Now()
	outcome, err := s.compute(ctx, date, "")
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveAggregation(scopeExport, outcomeStatus(outcome), time.Since(start))
	if outcome.NoData() {
		return nil, appErrors.Clone(appErrors.ErrNoData, outcome.Message())
	}

	report, err := export.HourlyReport("Hourly Output", date, outcome.Result)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to build hourly report")
	}
	payload, err := renderer.Render(report)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render hourly report")
	}
	return &dto.HourlyExport{
		Filename:    fmt.Sprintf("hourly-output-%s.%s", date, renderer.Extension()),
		ContentType: renderer.ContentType(),
		Payload:     payload,
	}, nil
}

func (s *HourlyOutputService) bundle(ctx context.Context, scope, key, date, shift string) (*dto.HourlyOutputResponse, bool, error) {
	var cached dto.HourlyOutputResponse
	if s.cache.Get(ctx, key, &cached) {
		return &cached, true, nil
	}

	start := time.Now()
	outcome, err := s.compute(ctx, date, shift)
	if err != nil {
		return nil, false, err
	}
	s.metrics.ObserveAggregation(scope, outcomeStatus(outcome), time.Since(start))

	resp := BuildHourlyResponse(outcome, shift)
	s.cache.Set(ctx, key, resp, s.cfg.CacheTTL)
	return resp, false, nil
}

// compute loads one snapshot of counters and attendance and aggregates it.
func (s *HourlyOutputService) compute(ctx context.Context, date, shift string) (hourly.Outcome, error) {
	if s.counters == nil || s.attendance == nil {
		return hourly.Outcome{}, appErrors.Clone(appErrors.ErrInternal, "production data source unavailable")
	}

	var (
		counters   []models.Counter
		attendance []models.ShiftAttendance
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		start := time.Now()
		rows, err := s.counters.ListForDate(gctx, date)
		s.metrics.ObserveDBQuery("counters_for_date", time.Since(start))
		if err != nil {
			return err
		}
		counters = rows
		return nil
	})
	g.Go(func() error {
		start := time.Now()
		rows, err := s.attendance.List(gctx, models.AttendanceFilter{Date: date, Shift: shift})
		s.metrics.ObserveDBQuery("attendance_for_date", time.Since(start))
		if err != nil {
			return err
		}
		attendance = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("load production snapshot", zap.String("date", date), zap.Error(err))
		return hourly.Outcome{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load production data")
	}

	if shift != "" {
		filtered := counters[:0:0]
		for _, c := range counters {
			if c.Shift == shift {
				filtered = append(filtered, c)
			}
		}
		counters = filtered
	}

	return hourly.Aggregate(date, models.CounterRecords(counters), models.AttendanceRecords(attendance)), nil
}

// BuildHourlyResponse shapes an outcome into the chart bundle.
func BuildHourlyResponse(outcome hourly.Outcome, shift string) *dto.HourlyOutputResponse {
	if outcome.NoData() {
		return &dto.HourlyOutputResponse{
			Status:     dto.HourlyStatusNoData,
			Date:       outcome.Date,
			Shift:      shift,
			Labels:     []string{},
			Actual:     []float64{},
			Target:     []float64{},
			Cumulative: []float64{},
			Datasets:   []hourly.Dataset{},
			Message:    outcome.Message(),
		}
	}
	res := outcome.Result
	totals := dto.HourlyTotals{Actual: res.TotalActual(), Target: res.TotalTarget()}
	if totals.Target > 0 {
		pct := math.Round(totals.Actual/totals.Target*1000) / 10
		totals.AttainmentPct = &pct
	}
	return &dto.HourlyOutputResponse{
		Status:     dto.HourlyStatusOK,
		Date:       outcome.Date,
		Shift:      shift,
		Labels:     res.Labels,
		Actual:     res.Actual,
		Target:     res.Target,
		Cumulative: res.Cumulative,
		Datasets:   hourly.ChartSeries(res),
		Totals:     totals,
	}
}

// HourlyCacheKey is the cache key prefix for every bundle computed for date.
func HourlyCacheKey(date string) string {
	return "hourly:" + date
}

// ValidateDate checks a YYYY-MM-DD production date.
func ValidateDate(date string) error {
	if strings.TrimSpace(date) == "" {
		return appErrors.Clone(appErrors.ErrValidation, "date is required")
	}
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		return appErrors.Clone(appErrors.ErrValidation, "invalid date format, expected YYYY-MM-DD")
	}
	return nil
}

func outcomeStatus(o hourly.Outcome) string {
	if o.NoData() {
		return dto.HourlyStatusNoData
	}
	return dto.HourlyStatusOK
}
