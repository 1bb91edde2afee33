package service

import (
	"bytes"
	"context"
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

const day = "2024-05-01"

func firstShiftCounter() models.Counter {
	return models.Counter{
		ID:            "c-1",
		Name:          "Line A",
		Date:          day,
		Shift:         hourly.ShiftFirst,
		HourlyActuals: models.HourlyValues{"8:00 - 9:00": 10, "9:00 - 10:00": 15},
		StandardRate:  models.Loose(5),
	}
}

func secondShiftCounter() models.Counter {
	return models.Counter{
		ID:            "c-2",
		Name:          "Line B",
		Date:          day,
		Shift:         hourly.ShiftSecond,
		HourlyActuals: models.HourlyValues{"15:00 - 16:00": 7},
		TargetOutput:  models.Loose("16"),
	}
}

func newHourlyService(counters *fakeCounterSource, attendance *fakeAttendanceSource, cache *CacheService) *HourlyOutputService {
	return NewHourlyOutputService(HourlyOutputServiceParams{
		Counters:   counters,
		Attendance: attendance,
		Cache:      cache,
		Metrics:    NewMetricsService(),
		Logger:     zap.NewNop(),
	})
}

func TestHourlyOutputDailyComputesBundle(t *testing.T) {
	svc := newHourlyService(
		&fakeCounterSource{rows: []models.Counter{firstShiftCounter()}},
		&fakeAttendanceSource{rows: presentWorkers(day, hourly.ShiftFirst, 4)},
		nil,
	)

	resp, hit, err := svc.Daily(context.Background(), day)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, dto.HourlyStatusOK, resp.Status)
	assert.Len(t, resp.Labels, hourly.BucketCount)
	assert.Equal(t, 10.0, resp.Actual[2])
	assert.Equal(t, 25.0, resp.Cumulative[3])
	assert.Equal(t, 3.0, resp.Target[0])
	assert.Equal(t, 25.0, resp.Totals.Actual)
	assert.Equal(t, 24.0, resp.Totals.Target)
	require.NotNil(t, resp.Totals.AttainmentPct)
	assert.InDelta(t, 104.2, *resp.Totals.AttainmentPct, 0.001)
	require.Len(t, resp.Datasets, 3)
	assert.Equal(t, hourly.DatasetActual, resp.Datasets[0].Label)
	assert.Empty(t, resp.Message)
}

func TestHourlyOutputDailyNoData(t *testing.T) {
	svc := newHourlyService(&fakeCounterSource{}, &fakeAttendanceSource{}, nil)

	resp, _, err := svc.Daily(context.Background(), day)
	require.NoError(t, err)
	assert.Equal(t, dto.HourlyStatusNoData, resp.Status)
	assert.Equal(t, "No data for 2024-05-01", resp.Message)
	assert.Empty(t, resp.Labels)
	assert.Nil(t, resp.Totals.AttainmentPct)
}

func TestHourlyOutputDailyUsesCache(t *testing.T) {
	counters := &fakeCounterSource{rows: []models.Counter{firstShiftCounter()}}
	repo := &memoryCacheRepo{}
	cache := NewCacheService(repo, nil, time.Minute, zap.NewNop(), true)
	svc := newHourlyService(counters, &fakeAttendanceSource{}, cache)

	first, hit, err := svc.Daily(context.Background(), day)
	require.NoError(t, err)
	assert.False(t, hit)

	second, hit, err := svc.Daily(context.Background(), day)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 1, counters.calls)
	assert.Equal(t, first.Actual, second.Actual)
	assert.Contains(t, repo.keys(), "hourly:2024-05-01")
}

func TestHourlyOutputDailyDegradesOnCacheFailure(t *testing.T) {
	counters := &fakeCounterSource{rows: []models.Counter{firstShiftCounter()}}
	cache := NewCacheService(&memoryCacheRepo{getErr: errors.New("redis down")}, nil, time.Minute, nil, true)
	svc := newHourlyService(counters, &fakeAttendanceSource{}, cache)

	resp, hit, err := svc.Daily(context.Background(), day)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, dto.HourlyStatusOK, resp.Status)
}

func TestHourlyOutputDailyRejectsBadDate(t *testing.T) {
	svc := newHourlyService(&fakeCounterSource{}, &fakeAttendanceSource{}, nil)

	for _, date := range []string{"", "05/01/2024", "2024-13-01"} {
		_, _, err := svc.Daily(context.Background(), date)
		assert.ErrorIs(t, err, appErrors.ErrValidation, "date %q", date)
	}
}

func TestHourlyOutputDailyWrapsLoadErrors(t *testing.T) {
	svc := newHourlyService(
		&fakeCounterSource{rows: []models.Counter{firstShiftCounter()}},
		&fakeAttendanceSource{err: errors.New("connection refused")},
		nil,
	)

	_, _, err := svc.Daily(context.Background(), day)
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrInternal)
}

func TestHourlyOutputShiftFiltersCounters(t *testing.T) {
	attendance := &fakeAttendanceSource{rows: presentWorkers(day, hourly.ShiftFirst, 4)}
	svc := newHourlyService(
		&fakeCounterSource{rows: []models.Counter{firstShiftCounter(), secondShiftCounter()}},
		attendance,
		nil,
	)

	resp, _, err := svc.Shift(context.Background(), day, hourly.ShiftSecond)
	require.NoError(t, err)
	assert.Equal(t, hourly.ShiftSecond, resp.Shift)
	assert.Equal(t, 7.0, resp.Totals.Actual)
	assert.Equal(t, 16.0, resp.Totals.Target)
	assert.Equal(t, hourly.ShiftSecond, attendance.lastFilter.Shift)

	resp, _, err = svc.Shift(context.Background(), day, "  ")
	require.NoError(t, err)
	assert.Equal(t, hourly.ShiftFirst, resp.Shift)
	assert.Equal(t, 25.0, resp.Totals.Actual)
}

func TestHourlyOutputShiftWithoutCountersIsNoData(t *testing.T) {
	svc := newHourlyService(&fakeCounterSource{rows: []models.Counter{firstShiftCounter()}}, &fakeAttendanceSource{}, nil)

	resp, _, err := svc.Shift(context.Background(), day, hourly.ShiftSecond)
	require.NoError(t, err)
	assert.Equal(t, dto.HourlyStatusNoData, resp.Status)
}

func TestHourlyOutputExport(t *testing.T) {
	svc := newHourlyService(
		&fakeCounterSource{rows: []models.Counter{firstShiftCounter()}},
		&fakeAttendanceSource{rows: presentWorkers(day, hourly.ShiftFirst, 4)},
		nil,
	)

	file, err := svc.Export(context.Background(), day, "CSV")
	require.NoError(t, err)
	assert.Equal(t, "hourly-output-2024-05-01.csv", file.Filename)
	assert.Equal(t, "text/csv", file.ContentType)
	assert.True(t, bytes.HasPrefix(file.Payload, []byte("Hour,Actual,Target,Cumulative,Variance")))

	file, err = svc.Export(context.Background(), day, "pdf")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", file.ContentType)

	_, err = svc.Export(context.Background(), day, "xlsx")
	assert.ErrorIs(t, err, appErrors.ErrUnsupported)
}

func TestHourlyOutputExportNoData(t *testing.T) {
	svc := newHourlyService(&fakeCounterSource{}, &fakeAttendanceSource{}, nil)

	_, err := svc.Export(context.Background(), day, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrNoData)
	assert.Contains(t, err.Error(), "No data for 2024-05-01")
}

func TestHourlyOutputTodayUsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)
	svc := NewHourlyOutputService(HourlyOutputServiceParams{Config: HourlyOutputServiceConfig{Location: loc}})
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 20, 0, 0, 0, time.UTC) }

	assert.Equal(t, "2024-05-02", svc.Today())
	assert.Equal(t, hourly.ShiftFirst, svc.DefaultShift())
}
