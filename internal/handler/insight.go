package handler

import (
	"net/http"

	"clientbook/internal/service"

	"github.com/gin-gonic/gin"
)

// InsightHandler serves the calendar, analytics and dashboard views.
type InsightHandler struct {
	insight *service.InsightService
}

func NewInsightHandler(insight *service.InsightService) *InsightHandler {
	return &InsightHandler{insight: insight}
}

// Calendar handles GET /calendar?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *InsightHandler) Calendar(c *gin.Context) {
	id, ok := caller(c)
	if !ok {
		return
	}
	view, err := h.insight.Calendar(c.Request.Context(), id.UID, c.Query("from"), c.Query("to"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Analytics handles GET /analytics
func (h *InsightHandler) Analytics(c *gin.Context) {
	id, ok := caller(c)
	if !ok {
		return
	}
	out, err := h.insight.Analytics(c.Request.Context(), id.UID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// Dashboard handles GET /dashboard
func (h *InsightHandler) Dashboard(c *gin.Context) {
	id, ok := caller(c)
	if !ok {
		return
	}
	out, err := h.insight.Dashboard(c.Request.Context(), id.UID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
