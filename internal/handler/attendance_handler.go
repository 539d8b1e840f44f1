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

type attendanceService interface {
	Save(ctx context.Context, req service.SaveAttendanceRequest) (*models.AttendanceRecord, error)
	Summary(ctx context.Context) (*dto.AttendanceSummary, error)
}

// AttendanceHandler exposes attendance endpoints.
type AttendanceHandler struct {
	service attendanceService
}

// NewAttendanceHandler constructs handler.
func NewAttendanceHandler(svc attendanceService) *AttendanceHandler {
	return &AttendanceHandler{service: svc}
}

// Save godoc
// @Summary Mark attendance for a date
// @Description The status is stored per date; studentId is accepted but not stored.
// @Tags Attendance
// @Accept json
// @Produce json
// @Param payload body service.SaveAttendanceRequest true "Attendance mark"
// @Success 200 {object} response.Envelope{data=models.AttendanceRecord}
// @Failure 400 {object} response.Envelope
// @Router /teacher/attendance [post]
func (h *AttendanceHandler) Save(c *gin.Context) {
	var req service.SaveAttendanceRequest
	if !bindPayload(c, &req, "invalid attendance payload") {
		return
	}
	record, err := h.service.Save(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record)
}

// Summary godoc
// @Summary Attendance calendar and percentage
// @Tags Attendance
// @Produce json
// @Success 200 {object} response.Envelope{data=dto.AttendanceSummary}
// @Router /student/attendance [get]
func (h *AttendanceHandler) Summary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary)
}
