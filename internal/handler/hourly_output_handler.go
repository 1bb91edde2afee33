package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/cycle-count-api/internal/dto"
	"github.com/noah-isme/cycle-count-api/internal/middleware"
	appErrors "github.com/noah-isme/cycle-count-api/pkg/errors"
	"github.com/noah-isme/cycle-count-api/pkg/response"
)

type hourlyOutputService interface {
	Daily(ctx context.Context, date string) (*dto.HourlyOutputResponse, bool, error)
	Shift(ctx context.Context, date, shift string) (*dto.HourlyOutputResponse, bool, error)
	Export(ctx context.Context, date, format string) (*dto.HourlyExport, error)
	Today() string
}

// HourlyOutputHandler wires the hourly output service to HTTP endpoints.
type HourlyOutputHandler struct {
	service hourlyOutputService
}

// NewHourlyOutputHandler constructs the handler.
func NewHourlyOutputHandler(service hourlyOutputService) *HourlyOutputHandler {
	return &HourlyOutputHandler{service: service}
}

// Daily godoc
// @Summary Hourly output chart for a date
// @Description Actual, target and cumulative output per hour between 06:00 and 22:00.
// @Tags Production
// @Produce json
// @Param date query string false "Date (YYYY-MM-DD). Defaults to today"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /production/hourly [get]
func (h *HourlyOutputHandler) Daily(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	start := time.Now()
	bundle, cacheHit, err := h.service.Daily(c.Request.Context(), h.date(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	response.JSON(c, http.StatusOK, bundle, nil, middleware.ResponseMeta(c, start))
}

// Shift godoc
// @Summary Hourly output for one shift
// @Tags Production
// @Produce json
// @Param date query string false "Date (YYYY-MM-DD). Defaults to today"
// @Param shift query string false "Shift name. Defaults to the first shift"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /production/hourly/shift [get]
func (h *HourlyOutputHandler) Shift(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	start := time.Now()
	bundle, cacheHit, err := h.service.Shift(c.Request.Context(), h.date(c), c.Query("shift"))
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	response.JSON(c, http.StatusOK, bundle, nil, middleware.ResponseMeta(c, start))
}

// Export godoc
// @Summary Download the hourly output table
// @Tags Production
// @Produce text/csv
// @Produce application/pdf
// @Param date query string false "Date (YYYY-MM-DD). Defaults to today"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /production/hourly/export [get]
func (h *HourlyOutputHandler) Export(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	file, err := h.service.Export(c.Request.Context(), h.date(c), c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.File(c, file.Filename, file.ContentType, file.Payload)
}

func (h *HourlyOutputHandler) date(c *gin.Context) string {
	if date := strings.TrimSpace(c.Query("date")); date != "" {
		return date
	}
	return h.service.Today()
}
