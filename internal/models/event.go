package models

import "time"

// ProductionEventType enumerates events emitted after production writes.
type ProductionEventType string

const (
	EventCounterUpserted    ProductionEventType = "counter.upserted"
	EventAttendanceRecorded ProductionEventType = "attendance.recorded"
)

// ProductionEvent is published to the event bus after a write.
type ProductionEvent struct {
	ID         string              `json:"id"`
	Type       ProductionEventType `json:"type"`
	Date       string              `json:"date"`
	Shift      string              `json:"shift"`
	CounterID  string              `json:"counterId,omitempty"`
	Workers    int                 `json:"workers,omitempty"`
	OccurredAt time.Time           `json:"occurredAt"`
}
