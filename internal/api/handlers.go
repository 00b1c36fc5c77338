package api

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"market_dashboard/internal/charts"
	"market_dashboard/internal/config"
	"market_dashboard/internal/dashboard"
	"market_dashboard/internal/layout"
	"market_dashboard/internal/models"
)

// Controller is the part of dashboard.Controller the handlers drive.
type Controller interface {
	State() dashboard.State
	LoadAsync(filter string)
	RefetchAsync()
}

type Handler struct {
	config     *config.Config
	controller Controller
	chartOpts  charts.Options
}

func NewHandler(cfg *config.Config, controller Controller) *Handler {
	opts := charts.DefaultOptions()
	opts.OtherThreshold = cfg.OtherThreshold
	opts.TopSkills = cfg.TopSkills

	return &Handler{
		config:     cfg,
		controller: controller,
		chartOpts:  opts,
	}
}

func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"service":   "market_dashboard",
		"timestamp": time.Now(),
	})
}

// GetState handles GET /api/state
func (h *Handler) GetState(c *gin.Context) {
	c.JSON(http.StatusOK, h.controller.State().Snapshot())
}

// GetLayout handles GET /api/layout
func (h *Handler) GetLayout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"charts": layout.Dashboard})
}

// GetSummary handles GET /api/summary
func (h *Handler) GetSummary(c *gin.Context) {
	state := h.controller.State()
	if state.Data == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{
			Error:   "Dashboard data not loaded",
			Code:    "NOT_LOADED",
			Details: state.ErrorMessage(),
		})
		return
	}
	c.JSON(http.StatusOK, charts.Summarize(state.Data, h.chartOpts))
}

// jobNameParam returns the job_name from the query or form, and whether it was sent at all.
func jobNameParam(c *gin.Context) (string, bool) {
	if v, ok := c.GetQuery("job_name"); ok {
		return strings.TrimSpace(v), true
	}
	if v, ok := c.GetPostForm("job_name"); ok {
		return strings.TrimSpace(v), true
	}
	return "", false
}

// trigger starts a refetch; an explicit job_name overrides the bound filter.
func (h *Handler) trigger(c *gin.Context) {
	if jobName, ok := jobNameParam(c); ok {
		h.controller.LoadAsync(jobName)
		return
	}
	h.controller.RefetchAsync()
}

// Refetch handles POST /api/refetch
func (h *Handler) Refetch(c *gin.Context) {
	h.trigger(c)
	c.JSON(http.StatusAccepted, gin.H{"status": "accepted"})
}

// RefreshForm handles POST /refresh from the dashboard page.
func (h *Handler) RefreshForm(c *gin.Context) {
	h.trigger(c)
	c.Redirect(http.StatusSeeOther, "/")
}

// GetChart handles GET /charts/:id
func (h *Handler) GetChart(c *gin.Context) {
	cfg, ok := layout.Lookup(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: "Chart not found",
			Code:  "NOT_FOUND",
		})
		return
	}

	var buf bytes.Buffer
	err := charts.Render(&buf, cfg, h.controller.State().Data, h.chartOpts)
	switch {
	case errors.Is(err, charts.ErrNoData), errors.Is(err, charts.ErrUnknownChart):
		c.Status(http.StatusNoContent)
		return
	case err != nil:
		slog.Error("Failed to render chart", "chart", cfg.ID, "error", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to render chart",
			Code:    "RENDER_ERROR",
			Details: err.Error(),
		})
		return
	}

	c.Header("Cache-Control", "no-cache")
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

// Index handles GET /
func (h *Handler) Index(c *gin.Context) {
	state := h.controller.State()
	c.HTML(http.StatusOK, "dashboard", newPageView(state, h.chartOpts))
}
