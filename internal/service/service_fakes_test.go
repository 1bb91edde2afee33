package service

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/noah-isme/cycle-count-api/internal/models"
	appErrors "github.com/noah-isme/cycle-count-api/pkg/errors"
	"github.com/noah-isme/cycle-count-api/pkg/jobs"
)

type memoryCacheRepo struct {
	mu      sync.Mutex
	store   map[string][]byte
	deleted []string
	getErr  error
}

func (m *memoryCacheRepo) Get(_ context.Context, key string, dest interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return m.getErr
	}
	payload, ok := m.store[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(payload, dest)
}

func (m *memoryCacheRepo) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.store == nil {
		m.store = make(map[string][]byte)
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.store[key] = payload
	return nil
}

func (m *memoryCacheRepo) DeleteByPattern(_ context.Context, pattern string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, pattern)
	prefix := strings.TrimSuffix(pattern, "*")
	for key := range m.store {
		if strings.HasPrefix(key, prefix) {
			delete(m.store, key)
		}
	}
	return nil
}

func (m *memoryCacheRepo) keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.store))
	for k := range m.store {
		out = append(out, k)
	}
	return out
}

type fakeCounterSource struct {
	rows  []models.Counter
	err   error
	calls int
	mu    sync.Mutex
}

func (f *fakeCounterSource) ListForDate(_ context.Context, date string) ([]models.Counter, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.Counter, 0, len(f.rows))
	for _, row := range f.rows {
		if row.Date == date {
			out = append(out, row)
		}
	}
	return out, nil
}

type fakeAttendanceSource struct {
	rows       []models.ShiftAttendance
	err        error
	lastFilter models.AttendanceFilter
}

func (f *fakeAttendanceSource) List(_ context.Context, filter models.AttendanceFilter) ([]models.ShiftAttendance, error) {
	f.lastFilter = filter
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.ShiftAttendance, 0, len(f.rows))
	for _, row := range f.rows {
		if row.Date != filter.Date {
			continue
		}
		if filter.Shift != "" && row.Shift != filter.Shift {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}

type fakeQueue struct {
	jobs []jobs.Job
	err  error
}

func (f *fakeQueue) Enqueue(job jobs.Job) error {
	if f.err != nil {
		return f.err
	}
	f.jobs = append(f.jobs, job)
	return nil
}

func presentWorkers(date, shift string, n int) []models.ShiftAttendance {
	rows := make([]models.ShiftAttendance, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, models.ShiftAttendance{Date: date, Shift: shift, WorkerID: string(rune('a' + i))})
	}
	return rows
}
