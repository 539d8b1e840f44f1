package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-erp-api/internal/dto"
	"github.com/noah-isme/school-erp-api/internal/models"
	"github.com/noah-isme/school-erp-api/internal/service"
	"github.com/noah-isme/school-erp-api/pkg/response"
)

type campusService interface {
	Hostels(ctx context.Context) (*dto.HostelOverview, error)
	Results(ctx context.Context) (*dto.ResultsOverview, error)
	SubmitAdmission(ctx context.Context, req service.AdmissionRequest) (*models.Admission, error)
	Admissions(ctx context.Context) ([]models.Admission, error)
}

// CampusHandler serves hostels, results and admissions.
type CampusHandler struct {
	service campusService
}

// NewCampusHandler constructs handler.
func NewCampusHandler(svc campusService) *CampusHandler {
	return &CampusHandler{service: svc}
}

// Hostels godoc
// @Summary Hostel occupancy
// @Tags Campus
// @Produce json
// @Success 200 {object} response.Envelope{data=dto.HostelOverview}
// @Router /admin/hostels [get]
func (h *CampusHandler) Hostels(c *gin.Context) {
	overview, err := h.service.Hostels(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, overview)
}

// Results godoc
// @Summary Subject results with GPA
// @Tags Campus
// @Produce json
// @Success 200 {object} response.Envelope{data=dto.ResultsOverview}
// @Router /student/results [get]
func (h *CampusHandler) Results(c *gin.Context) {
	overview, err := h.service.Results(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, overview)
}

// SubmitAdmission godoc
// @Summary Apply for admission
// @Tags Campus
// @Accept json
// @Produce json
// @Param payload body service.AdmissionRequest true "Application"
// @Success 201 {object} response.Envelope{data=models.Admission}
// @Failure 400 {object} response.Envelope
// @Router /admissions [post]
func (h *CampusHandler) SubmitAdmission(c *gin.Context) {
	var req service.AdmissionRequest
	if !bindPayload(c, &req, "invalid admission payload") {
		return
	}
	admission, err := h.service.SubmitAdmission(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, admission)
}

// Admissions godoc
// @Summary List admission applications
// @Tags Campus
// @Produce json
// @Success 200 {object} response.Envelope{data=[]models.Admission}
// @Router /admin/admissions [get]
func (h *CampusHandler) Admissions(c *gin.Context) {
	list, err := h.service.Admissions(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, list, map[string]interface{}{"total": len(list)})
}
