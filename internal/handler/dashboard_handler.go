package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-erp-api/internal/dto"
	"github.com/noah-isme/school-erp-api/internal/middleware"
	"github.com/noah-isme/school-erp-api/internal/models"
	appErrors "github.com/noah-isme/school-erp-api/pkg/errors"
	"github.com/noah-isme/school-erp-api/pkg/response"
)

type dashboardService interface {
	Admin(ctx context.Context) (*dto.AdminDashboardResponse, bool, error)
	Teacher(ctx context.Context, teacher *models.User) (*dto.TeacherDashboardResponse, error)
	Classes(ctx context.Context, teacher *models.User) ([]dto.ClassGroup, error)
	Student(ctx context.Context, student *models.User) (*dto.StudentDashboardResponse, error)
}

// DashboardHandler wires dashboard service to HTTP endpoints.
type DashboardHandler struct {
	service dashboardService
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(service dashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Admin godoc
// @Summary Admin dashboard KPIs
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope{data=dto.AdminDashboardResponse}
// @Router /admin/dashboard [get]
func (h *DashboardHandler) Admin(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	summary, cacheHit, err := h.service.Admin(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	response.JSON(c, http.StatusOK, summary, middleware.ExtractMeta(c))
}

// Teacher godoc
// @Summary Teacher dashboard
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope{data=dto.TeacherDashboardResponse}
// @Router /teacher/dashboard [get]
func (h *DashboardHandler) Teacher(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}
	summary, err := h.service.Teacher(c.Request.Context(), user)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary)
}

// Classes godoc
// @Summary Classes taught in the teacher's department
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope{data=[]dto.ClassGroup}
// @Router /teacher/classes [get]
func (h *DashboardHandler) Classes(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}
	classes, err := h.service.Classes(c.Request.Context(), user)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, classes)
}

// Student godoc
// @Summary Student dashboard
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope{data=dto.StudentDashboardResponse}
// @Router /student/dashboard [get]
func (h *DashboardHandler) Student(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}
	summary, err := h.service.Student(c.Request.Context(), user)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary)
}
