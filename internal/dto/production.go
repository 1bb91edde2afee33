package dto

import "github.com/noah-isme/cycle-count-api/internal/models"

// UpsertCounterRequest reports the hourly output of one counter for a date and shift.
// Hourly maps and rates are stored as entered.
type UpsertCounterRequest struct {
	Name          string              `json:"name" validate:"required,max=120"`
	Date          string              `json:"date" validate:"required,datetime=2006-01-02"`
	Shift         string              `json:"shift" validate:"required,max=64"`
	HourlyActuals models.HourlyValues `json:"hourlyActuals"`
	HourlyTargets models.HourlyValues `json:"hourlyTargets"`
	StandardRate  models.LooseValue   `json:"standardRate"`
	TargetOutput  models.LooseValue   `json:"targetOutput"`
}

// RecordAttendanceRequest checks workers in to a shift.
type RecordAttendanceRequest struct {
	Date      string   `json:"date" validate:"required,datetime=2006-01-02"`
	Shift     string   `json:"shift" validate:"required,max=64"`
	WorkerIDs []string `json:"workerIds" validate:"required,min=1,dive,required"`
}

// RecordAttendanceResponse reports how many check-ins were new.
type RecordAttendanceResponse struct {
	Date      string `json:"date"`
	Shift     string `json:"shift"`
	Requested int    `json:"requested"`
	Recorded  int    `json:"recorded"`
}

// ListCountersRequest captures list filters from the query string.
type ListCountersRequest struct {
	Date     string
	Shift    string
	Page     int
	PageSize int
}
