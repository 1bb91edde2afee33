package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/cycle-count-api/internal/models"
)

const counterColumns = `id, name, to_char(work_date, 'YYYY-MM-DD') AS work_date, shift,
hourly_actuals, hourly_targets, standard_rate, target_output, created_at, updated_at`

// CounterRepository persists production counter reports.
type CounterRepository struct {
	db *sqlx.DB
}

// NewCounterRepository constructs the repository.
func NewCounterRepository(db *sqlx.DB) *CounterRepository {
	return &CounterRepository{db: db}
}

// ListForDate returns every counter reported on date, ordered by shift and name.
func (r *CounterRepository) ListForDate(ctx context.Context, date string) ([]models.Counter, error) {
	query := `SELECT ` + counterColumns + `
FROM production_counters
WHERE work_date = $1
ORDER BY shift, name`
	var rows []models.Counter
	if err := r.db.SelectContext(ctx, &rows, query, date); err != nil {
		return nil, fmt.Errorf("list counters for %s: %w", date, err)
	}
	return rows, nil
}

// List returns a page of counters matching filter and the total count.
func (r *CounterRepository) List(ctx context.Context, filter models.CounterFilter) ([]models.Counter, int, error) {
	where := []string{"1=1"}
	args := []interface{}{}
	if filter.Date != "" {
		where = append(where, fmt.Sprintf("work_date = $%d", len(args)+1))
		args = append(args, filter.Date)
	}
	if filter.Shift != "" {
		where = append(where, fmt.Sprintf("shift = $%d", len(args)+1))
		args = append(args, filter.Shift)
	}
	whereClause := strings.Join(where, " AND ")

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 200 {
		size = 50
	}
	offset := (page - 1) * size

	query := fmt.Sprintf(`SELECT %s
FROM production_counters
WHERE %s
ORDER BY work_date DESC, shift, name
LIMIT %d OFFSET %d`, counterColumns, whereClause, size, offset)

	var rows []models.Counter
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list counters: %w", err)
	}

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM production_counters WHERE %s", whereClause)
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count counters: %w", err)
	}
	return rows, total, nil
}

// Upsert inserts a counter or replaces the report for the same date, shift and name.
func (r *CounterRepository) Upsert(ctx context.Context, counter *models.Counter) (*models.Counter, error) {
	now := time.Now().UTC()
	if counter.ID == "" {
		counter.ID = uuid.NewString()
	}
	if counter.CreatedAt.IsZero() {
		counter.CreatedAt = now
	}
	counter.UpdatedAt = now

	query := `INSERT INTO production_counters
(id, name, work_date, shift, hourly_actuals, hourly_targets, standard_rate, target_output, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (work_date, shift, name)
DO UPDATE SET hourly_actuals = EXCLUDED.hourly_actuals,
	hourly_targets = EXCLUDED.hourly_targets,
	standard_rate = EXCLUDED.standard_rate,
	target_output = EXCLUDED.target_output,
	updated_at = EXCLUDED.updated_at
RETURNING ` + counterColumns

	var stored models.Counter
	if err := r.db.GetContext(ctx, &stored, query,
		counter.ID,
		counter.Name,
		counter.Date,
		counter.Shift,
		counter.HourlyActuals,
		counter.HourlyTargets,
		counter.StandardRate,
		counter.TargetOutput,
		counter.CreatedAt,
		counter.UpdatedAt,
	); err != nil {
		return nil, fmt.Errorf("upsert counter: %w", err)
	}
	return &stored, nil
}
