package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/cycle-count-api/internal/dto"
	"github.com/noah-isme/cycle-count-api/internal/models"
	appErrors "github.com/noah-isme/cycle-count-api/pkg/errors"
	"github.com/noah-isme/cycle-count-api/pkg/jobs"
)

const (
	defaultCounterPageSize = 50
	maxCounterPageSize     = 200
)

type counterStore interface {
	Upsert(ctx context.Context, counter *models.Counter) (*models.Counter, error)
	List(ctx context.Context, filter models.CounterFilter) ([]models.Counter, int, error)
}

type attendanceStore interface {
	BulkCheckIn(ctx context.Context, records []models.ShiftAttendance) (int, error)
}

type eventQueue interface {
	Enqueue(job jobs.Job) error
}

// ProductionServiceParams groups constructor dependencies. Events may be nil.
type ProductionServiceParams struct {
	Counters   counterStore
	Attendance attendanceStore
	Cache      *CacheService
	Events     eventQueue
	Validator  *validator.Validate
	Metrics    *MetricsService
	Logger     *zap.Logger
}

// ProductionService records counter reports and shift attendance.
type ProductionService struct {
	counters   counterStore
	attendance attendanceStore
	cache      *CacheService
	events     eventQueue
	validator  *validator.Validate
	metrics    *MetricsService
	logger     *zap.Logger
	now        func() time.Time
}

// NewProductionService constructs the service.
func NewProductionService(params ProductionServiceParams) *ProductionService {
	validate := params.Validator
	if validate == nil {
		validate = validator.New()
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductionService{
		counters:   params.Counters,
		attendance: params.Attendance,
		cache:      params.Cache,
		events:     params.Events,
		validator:  validate,
		metrics:    params.Metrics,
		logger:     logger,
		now:        time.Now,
	}
}

// UpsertCounter stores a counter report, replacing any report for the same date, shift and name.
func (s *ProductionService) UpsertCounter(ctx context.Context, req dto.UpsertCounterRequest) (*models.Counter, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Shift = strings.TrimSpace(req.Shift)
	req.Date = strings.TrimSpace(req.Date)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid counter payload")
	}

	stored, err := s.counters.Upsert(ctx, &models.Counter{
		Name:          req.Name,
		Date:          req.Date,
		Shift:         req.Shift,
		HourlyActuals: req.HourlyActuals,
		HourlyTargets: req.HourlyTargets,
		StandardRate:  req.StandardRate,
		TargetOutput:  req.TargetOutput,
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save counter")
	}

	s.afterWrite(ctx, stored.Date)
	s.publish(models.ProductionEvent{
		Type:      models.EventCounterUpserted,
		Date:      stored.Date,
		Shift:     stored.Shift,
		CounterID: stored.ID,
	})
	return stored, nil
}

// RecordAttendance checks workers in to a shift. Workers already present are skipped.
func (s *ProductionService) RecordAttendance(ctx context.Context, req dto.RecordAttendanceRequest) (*dto.RecordAttendanceResponse, error) {
	req.Shift = strings.TrimSpace(req.Shift)
	req.Date = strings.TrimSpace(req.Date)
	workers := uniqueTrimmed(req.WorkerIDs)
	req.WorkerIDs = workers
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid attendance payload")
	}

	records := make([]models.ShiftAttendance, 0, len(workers))
	for _, id := range workers {
		records = append(records, models.ShiftAttendance{Date: req.Date, Shift: req.Shift, WorkerID: id})
	}
	recorded, err := s.attendance.BulkCheckIn(ctx, records)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record attendance")
	}

	if recorded > 0 {
		s.afterWrite(ctx, req.Date)
		s.publish(models.ProductionEvent{
			Type:    models.EventAttendanceRecorded,
			Date:    req.Date,
			Shift:   req.Shift,
			Workers: recorded,
		})
	}
	return &dto.RecordAttendanceResponse{
		Date:      req.Date,
		Shift:     req.Shift,
		Requested: len(workers),
		Recorded:  recorded,
	}, nil
}

// ListCounters returns a page of counters.
func (s *ProductionService) ListCounters(ctx context.Context, req dto.ListCountersRequest) ([]models.Counter, *models.Pagination, error) {
	if req.Date != "" {
		if err := ValidateDate(req.Date); err != nil {
			return nil, nil, err
		}
	}
	filter := models.CounterFilter{
		Date:     req.Date,
		Shift:    strings.TrimSpace(req.Shift),
		Page:     req.Page,
		PageSize: req.PageSize,
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = defaultCounterPageSize
	}
	if filter.PageSize > maxCounterPageSize {
		filter.PageSize = maxCounterPageSize
	}
	rows, total, err := s.counters.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list counters")
	}
	return rows, &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}, nil
}

// afterWrite drops every cached bundle for date, daily and per-shift alike.
func (s *ProductionService) afterWrite(ctx context.Context, date string) {
	s.cache.Invalidate(ctx, HourlyCacheKey(date)+"*")
}

func (s *ProductionService) publish(event models.ProductionEvent) {
	if s.events == nil {
		s.metrics.RecordEvent(string(event.Type), "disabled")
		return
	}
	event.ID = uuid.NewString()
	event.OccurredAt = s.now().UTC()
	err := s.events.Enqueue(jobs.Job{
		ID:      event.ID,
		Type:    string(event.Type),
		Key:     event.Date,
		Payload: event,
	})
	if err != nil {
		s.metrics.RecordEvent(string(event.Type), "dropped")
		s.logger.Warn("production event not queued", zap.String("type", string(event.Type)), zap.String("date", event.Date), zap.Error(err))
		return
	}
	s.metrics.RecordEvent(string(event.Type), "queued")
}

func uniqueTrimmed(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
