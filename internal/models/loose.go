package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// LooseValue keeps a user-entered scalar exactly as supplied: number, numeric
// string, free text, bool or null. It is persisted as JSONB.
type LooseValue struct {
	V interface{}
}

// Loose wraps v.
func Loose(v interface{}) LooseValue {
	return LooseValue{V: v}
}

// IsZero reports whether nothing was supplied.
func (l LooseValue) IsZero() bool {
	return l.V == nil
}

// MarshalJSON implements json.Marshaler.
func (l LooseValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.V)
}

// UnmarshalJSON implements json.Unmarshaler, keeping numbers as json.Number.
func (l *LooseValue) UnmarshalJSON(data []byte) error {
	v, err := decodeLoose(data)
	if err != nil {
		return err
	}
	l.V = v
	return nil
}

// Value implements driver.Valuer.
func (l LooseValue) Value() (driver.Value, error) {
	if l.V == nil {
		return nil, nil
	}
	payload, err := json.Marshal(l.V)
	if err != nil {
		return nil, fmt.Errorf("marshal loose value: %w", err)
	}
	return string(payload), nil
}

// Scan implements sql.Scanner. Malformed JSON is kept as raw text.
func (l *LooseValue) Scan(src interface{}) error {
	raw, ok := rawBytes(src)
	if !ok {
		l.V = src
		return nil
	}
	if raw == nil {
		l.V = nil
		return nil
	}
	v, err := decodeLoose(raw)
	if err != nil {
		l.V = string(raw)
		return nil
	}
	l.V = v
	return nil
}

// HourlyValues maps hour labels to user-entered values. Persisted as JSONB.
type HourlyValues map[string]interface{}

// Value implements driver.Valuer.
func (h HourlyValues) Value() (driver.Value, error) {
	if h == nil {
		return nil, nil
	}
	payload, err := json.Marshal(map[string]interface{}(h))
	if err != nil {
		return nil, fmt.Errorf("marshal hourly values: %w", err)
	}
	return string(payload), nil
}

// Scan implements sql.Scanner. Anything that is not a JSON object scans as empty.
func (h *HourlyValues) Scan(src interface{}) error {
	raw, ok := rawBytes(src)
	if !ok || raw == nil {
		*h = nil
		return nil
	}
	v, err := decodeLoose(raw)
	if err != nil {
		*h = nil
		return nil
	}
	m, ok := v.(map[string]interface{})
	if !ok {
		*h = nil
		return nil
	}
	*h = HourlyValues(m)
	return nil
}

// UnmarshalJSON keeps numbers as json.Number and tolerates non-object payloads.
func (h *HourlyValues) UnmarshalJSON(data []byte) error {
	v, err := decodeLoose(data)
	if err != nil {
		return err
	}
	m, ok := v.(map[string]interface{})
	if !ok {
		*h = nil
		return nil
	}
	*h = HourlyValues(m)
	return nil
}

func rawBytes(src interface{}) ([]byte, bool) {
	switch v := src.(type) {
	case nil:
		return nil, true
	case []byte:
		return v, true
	case string:
		return []byte(v), true
	default:
		return nil, false
	}
}

func decodeLoose(data []byte) (interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}
