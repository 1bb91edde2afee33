package handler

import (
	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/cycle-count-api/pkg/errors"
	"github.com/noah-isme/cycle-count-api/pkg/response"
)

// Handlers groups every HTTP handler mounted by Register.
type Handlers struct {
	Hourly     *HourlyOutputHandler
	Production *ProductionHandler
	Metrics    *MetricsHandler
}

// Register mounts ops endpoints at the root and production endpoints under prefix.
// Unknown routes answer with the NOT_FOUND error envelope.
func Register(r *gin.Engine, prefix string, h Handlers) {
	r.NoRoute(func(c *gin.Context) {
		response.Error(c, appErrors.ErrNotFound)
	})

	if h.Metrics != nil {
		r.GET("/health", h.Metrics.Health)
		r.GET("/ready", h.Metrics.Ready)
		r.GET("/metrics", h.Metrics.Prometheus)
	}

	production := r.Group(prefix + "/production")
	if h.Hourly != nil {
		production.GET("/hourly", h.Hourly.Daily)
		production.GET("/hourly/shift", h.Hourly.Shift)
		production.GET("/hourly/export", h.Hourly.Export)
	}
	if h.Production != nil {
		production.GET("/counters", h.Production.ListCounters)
		production.POST("/counters", h.Production.UpsertCounter)
		production.POST("/attendance", h.Production.RecordAttendance)
	}
}
