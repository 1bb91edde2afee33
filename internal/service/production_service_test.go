package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/cycle-count-api/internal/dto"
	"github.com/noah-isme/cycle-count-api/internal/models"
	appErrors "github.com/noah-isme/cycle-count-api/pkg/errors"
	"github.com/noah-isme/cycle-count-api/pkg/hourly"
)

type fakeCounterStore struct {
	upserted   []models.Counter
	upsertErr  error
	listRows   []models.Counter
	listTotal  int
	lastFilter models.CounterFilter
}

func (f *fakeCounterStore) Upsert(_ context.Context, counter *models.Counter) (*models.Counter, error) {
	if f.upsertErr != nil {
		return nil, f.upsertErr
	}
	stored := *counter
	stored.ID = "c-1"
	f.upserted = append(f.upserted, stored)
	return &stored, nil
}

func (f *fakeCounterStore) List(_ context.Context, filter models.CounterFilter) ([]models.Counter, int, error) {
	f.lastFilter = filter
	return f.listRows, f.listTotal, nil
}

type fakeAttendanceStore struct {
	received []models.ShiftAttendance
	inserted int
	err      error
}

func (f *fakeAttendanceStore) BulkCheckIn(_ context.Context, records []models.ShiftAttendance) (int, error) {
	f.received = append(f.received, records...)
	return f.inserted, f.err
}

type productionFixture struct {
	svc        *ProductionService
	counters   *fakeCounterStore
	attendance *fakeAttendanceStore
	cache      *memoryCacheRepo
	queue      *fakeQueue
}

func newProductionFixture() *productionFixture {
	f := &productionFixture{
		counters:   &fakeCounterStore{},
		attendance: &fakeAttendanceStore{},
		cache:      &memoryCacheRepo{},
		queue:      &fakeQueue{},
	}
	f.svc = NewProductionService(ProductionServiceParams{
		Counters:   f.counters,
		Attendance: f.attendance,
		Cache:      NewCacheService(f.cache, nil, time.Minute, zap.NewNop(), true),
		Events:     f.queue,
		Metrics:    NewMetricsService(),
		Logger:     zap.NewNop(),
	})
	f.svc.now = func() time.Time { return time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC) }
	return f
}

func TestProductionUpsertCounterValidates(t *testing.T) {
	f := newProductionFixture()

	cases := []dto.UpsertCounterRequest{
		{Name: "Line A", Date: "2024/05/01", Shift: hourly.ShiftFirst},
		{Name: "  ", Date: "2024-05-01", Shift: hourly.ShiftFirst},
		{Name: "Line A", Date: "2024-05-01"},
	}
	for _, req := range cases {
		_, err := f.svc.UpsertCounter(context.Background(), req)
		assert.ErrorIs(t, err, appErrors.ErrValidation)
	}
	assert.Empty(t, f.counters.upserted)
	assert.Empty(t, f.queue.jobs)
}

func TestProductionUpsertCounterStoresInvalidatesAndPublishes(t *testing.T) {
	f := newProductionFixture()
	require.NoError(t, f.cache.Set(context.Background(), "hourly:2024-05-01", "stale", 0))
	require.NoError(t, f.cache.Set(context.Background(), "hourly:2024-05-01:shift:"+hourly.ShiftFirst, "stale", 0))
	require.NoError(t, f.cache.Set(context.Background(), "hourly:2024-05-02", "keep", 0))

	var req dto.UpsertCounterRequest
	require.NoError(t, json.Unmarshal([]byte(`{
		"name": " Line A ",
		"date": "2024-05-01",
		"shift": "1st Shift-(6am-2pm)",
		"hourlyActuals": {"8:00 - 9:00": "10", "9:00 - 10:00": 15},
		"standardRate": "abc"
	}`), &req))

	stored, err := f.svc.UpsertCounter(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "c-1", stored.ID)
	assert.Equal(t, "Line A", stored.Name)
	assert.Equal(t, "10", stored.HourlyActuals["8:00 - 9:00"])
	assert.Equal(t, "abc", stored.StandardRate.V)

	assert.Equal(t, []string{"hourly:2024-05-01*"}, f.cache.deleted)
	assert.Equal(t, []string{"hourly:2024-05-02"}, f.cache.keys())

	require.Len(t, f.queue.jobs, 1)
	job := f.queue.jobs[0]
	assert.Equal(t, string(models.EventCounterUpserted), job.Type)
	assert.Equal(t, "2024-05-01", job.Key)
	event, ok := job.Payload.(models.ProductionEvent)
	require.True(t, ok)
	assert.Equal(t, "c-1", event.CounterID)
	assert.Equal(t, job.ID, event.ID)
	assert.False(t, event.OccurredAt.IsZero())
}

func TestProductionUpsertCounterSurvivesQueueFailure(t *testing.T) {
	f := newProductionFixture()
	f.queue.err = errors.New("queue full")

	_, err := f.svc.UpsertCounter(context.Background(), dto.UpsertCounterRequest{
		Name: "Line A", Date: "2024-05-01", Shift: hourly.ShiftFirst,
	})
	assert.NoError(t, err)
}

func TestProductionUpsertCounterWrapsStoreErrors(t *testing.T) {
	f := newProductionFixture()
	f.counters.upsertErr = errors.New("deadlock")

	_, err := f.svc.UpsertCounter(context.Background(), dto.UpsertCounterRequest{
		Name: "Line A", Date: "2024-05-01", Shift: hourly.ShiftFirst,
	})
	assert.ErrorIs(t, err, appErrors.ErrInternal)
	assert.Empty(t, f.cache.deleted)
}

func TestProductionRecordAttendanceDeduplicates(t *testing.T) {
	f := newProductionFixture()
	f.attendance.inserted = 2

	resp, err := f.svc.RecordAttendance(context.Background(), dto.RecordAttendanceRequest{
		Date:      "2024-05-01",
		Shift:     hourly.ShiftFirst,
		WorkerIDs: []string{"w-1", " w-2 ", "w-1", ""},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Requested)
	assert.Equal(t, 2, resp.Recorded)
	require.Len(t, f.attendance.received, 2)
	assert.Equal(t, "w-2", f.attendance.received[1].WorkerID)
	require.Len(t, f.queue.jobs, 1)
	assert.Equal(t, string(models.EventAttendanceRecorded), f.queue.jobs[0].Type)
	assert.Equal(t, []string{"hourly:2024-05-01*"}, f.cache.deleted)
}

func TestProductionRecordAttendanceNothingNew(t *testing.T) {
	f := newProductionFixture()

	resp, err := f.svc.RecordAttendance(context.Background(), dto.RecordAttendanceRequest{
		Date: "2024-05-01", Shift: hourly.ShiftFirst, WorkerIDs: []string{"w-1"},
	})
	require.NoError(t, err)
	assert.Zero(t, resp.Recorded)
	assert.Empty(t, f.queue.jobs)
	assert.Empty(t, f.cache.deleted)
}

func TestProductionRecordAttendanceRequiresWorkers(t *testing.T) {
	f := newProductionFixture()

	_, err := f.svc.RecordAttendance(context.Background(), dto.RecordAttendanceRequest{
		Date: "2024-05-01", Shift: hourly.ShiftFirst, WorkerIDs: []string{" ", ""},
	})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestProductionListCountersClampsPaging(t *testing.T) {
	f := newProductionFixture()
	f.counters.listRows = []models.Counter{{ID: "c-1"}}
	f.counters.listTotal = 1

	rows, page, err := f.svc.ListCounters(context.Background(), dto.ListCountersRequest{Date: "2024-05-01", PageSize: 1000})
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, maxCounterPageSize, page.PageSize)
	assert.Equal(t, "2024-05-01", f.counters.lastFilter.Date)

	_, _, err = f.svc.ListCounters(context.Background(), dto.ListCountersRequest{Date: "yesterday"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestProductionPublishWithoutQueue(t *testing.T) {
	svc := NewProductionService(ProductionServiceParams{Counters: &fakeCounterStore{}})

	_, err := svc.UpsertCounter(context.Background(), dto.UpsertCounterRequest{
		Name: "Line A", Date: "2024-05-01", Shift: hourly.ShiftFirst,
	})
	assert.NoError(t, err)
}
