package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-erp-api/internal/models"
	"github.com/noah-isme/school-erp-api/internal/service"
	"github.com/noah-isme/school-erp-api/pkg/response"
)

type studentService interface {
	List(ctx context.Context, filter models.StudentFilter) ([]models.User, error)
	Create(ctx context.Context, req service.CreateStudentRequest) (*models.User, error)
}

// StudentHandler manages roster endpoints.
type StudentHandler struct {
	service studentService
}

// NewStudentHandler constructs handler.
func NewStudentHandler(svc studentService) *StudentHandler {
	return &StudentHandler{service: svc}
}

// List godoc
// @Summary List students
// @Description Case-insensitive search across name, id and course.
// @Tags Students
// @Produce json
// @Param search query string false "Search term"
// @Param course query string false "Exact course"
// @Success 200 {object} response.Envelope{data=[]models.User}
// @Router /admin/students [get]
func (h *StudentHandler) List(c *gin.Context) {
	filter := models.StudentFilter{
		Search:  strings.TrimSpace(c.Query("search")),
		Course:  c.Query("course"),
		Section: c.Query("section"),
	}
	students, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, students, map[string]interface{}{"total": len(students)})
}

// Create godoc
// @Summary Add a student
// @Tags Students
// @Accept json
// @Produce json
// @Param payload body service.CreateStudentRequest true "Student payload"
// @Success 201 {object} response.Envelope{data=models.User}
// @Failure 400 {object} response.Envelope
// @Router /admin/students [post]
// @Router /teacher/students [post]
func (h *StudentHandler) Create(c *gin.Context) {
	var req service.CreateStudentRequest
	if !bindPayload(c, &req, "invalid student payload") {
		return
	}
	student, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, student)
}
