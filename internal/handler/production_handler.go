package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/cycle-count-api/internal/dto"
	"github.com/noah-isme/cycle-count-api/internal/models"
	appErrors "github.com/noah-isme/cycle-count-api/pkg/errors"
	"github.com/noah-isme/cycle-count-api/pkg/response"
)

type productionService interface {
	UpsertCounter(ctx context.Context, req dto.UpsertCounterRequest) (*models.Counter, error)
	RecordAttendance(ctx context.Context, req dto.RecordAttendanceRequest) (*dto.RecordAttendanceResponse, error)
	ListCounters(ctx context.Context, req dto.ListCountersRequest) ([]models.Counter, *models.Pagination, error)
}

// ProductionHandler exposes counter and attendance writes.
type ProductionHandler struct {
	service productionService
}

// NewProductionHandler constructs the handler.
func NewProductionHandler(service productionService) *ProductionHandler {
	return &ProductionHandler{service: service}
}

// ListCounters godoc
// @Summary List production counters
// @Tags Production
// @Produce json
// @Param date query string false "Date (YYYY-MM-DD)"
// @Param shift query string false "Shift name"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /production/counters [get]
func (h *ProductionHandler) ListCounters(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	rows, pagination, err := h.service.ListCounters(c.Request.Context(), dto.ListCountersRequest{
		Date:     c.Query("date"),
		Shift:    c.Query("shift"),
		Page:     page,
		PageSize: limit,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows, pagination)
}

// UpsertCounter godoc
// @Summary Create or replace a counter report
// @Tags Production
// @Accept json
// @Produce json
// @Param payload body dto.UpsertCounterRequest true "Counter report"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /production/counters [post]
func (h *ProductionHandler) UpsertCounter(c *gin.Context) {
	var req dto.UpsertCounterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	counter, err := h.service.UpsertCounter(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, counter)
}

// RecordAttendance godoc
// @Summary Check workers in to a shift
// @Tags Production
// @Accept json
// @Produce json
// @Param payload body dto.RecordAttendanceRequest true "Attendance"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /production/attendance [post]
func (h *ProductionHandler) RecordAttendance(c *gin.Context) {
	var req dto.RecordAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	result, err := h.service.RecordAttendance(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
