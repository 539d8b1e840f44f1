package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-erp-api/internal/dto"
	"github.com/noah-isme/school-erp-api/pkg/response"
)

type advisoryService interface {
	SuggestDashboardActions(ctx context.Context, dashboardData string) ([]string, error)
	GenerateStudentInsights(ctx context.Context, databaseSummary string) (*dto.StudentInsights, error)
}

type dashboardSummarizer interface {
	AdminSummary(ctx context.Context) (string, error)
}

type rosterSummarizer interface {
	DatabaseSummary(ctx context.Context) (string, error)
}

// SuggestionsRequest carries the dashboard summary for the suggestion flow.
type SuggestionsRequest struct {
	DashboardData string `json:"dashboardData" form:"dashboardData"`
}

// InsightsRequest carries the roster summary for the insights flow.
type InsightsRequest struct {
	DatabaseSummary string `json:"databaseSummary" form:"databaseSummary"`
}

// AdvisoryHandler exposes the generative advisory flows. Empty inputs are
// composed from live data.
type AdvisoryHandler struct {
	service    advisoryService
	dashboards dashboardSummarizer
	roster     rosterSummarizer
}

// NewAdvisoryHandler constructs handler.
func NewAdvisoryHandler(svc advisoryService, dashboards dashboardSummarizer, roster rosterSummarizer) *AdvisoryHandler {
	return &AdvisoryHandler{service: svc, dashboards: dashboards, roster: roster}
}

// SuggestActions godoc
// @Summary Suggest admin actions from dashboard KPIs
// @Tags Advisory
// @Accept json
// @Produce json
// @Param payload body SuggestionsRequest false "Dashboard summary"
// @Success 200 {object} response.Envelope{data=dto.DashboardSuggestions}
// @Failure 502 {object} response.Envelope
// @Router /admin/dashboard/suggestions [post]
func (h *AdvisoryHandler) SuggestActions(c *gin.Context) {
	var req SuggestionsRequest
	if !bindOptionalPayload(c, &req, "invalid suggestions payload") {
		return
	}
	data := strings.TrimSpace(req.DashboardData)
	if data == "" {
		summary, err := h.dashboards.AdminSummary(c.Request.Context())
		if err != nil {
			response.Error(c, err)
			return
		}
		data = summary
	}
	actions, err := h.service.SuggestDashboardActions(c.Request.Context(), data)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.DashboardSuggestions{SuggestedActions: actions})
}

// Insights godoc
// @Summary Insights on the student roster
// @Tags Advisory
// @Accept json
// @Produce json
// @Param payload body InsightsRequest false "Roster summary"
// @Success 200 {object} response.Envelope{data=dto.StudentInsights}
// @Failure 502 {object} response.Envelope
// @Router /admin/students/insights [post]
func (h *AdvisoryHandler) Insights(c *gin.Context) {
	var req InsightsRequest
	if !bindOptionalPayload(c, &req, "invalid insights payload") {
		return
	}
	summary := strings.TrimSpace(req.DatabaseSummary)
	if summary == "" {
		composed, err := h.roster.DatabaseSummary(c.Request.Context())
		if err != nil {
			response.Error(c, err)
			return
		}
		summary = composed
	}
	insights, err := h.service.GenerateStudentInsights(c.Request.Context(), summary)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, insights)
}
