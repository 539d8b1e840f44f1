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

type noteService interface {
	AddContent(ctx context.Context, req service.AddContentRequest) (*models.Note, error)
	AddResult(ctx context.Context, req service.AddResultRequest) (*models.Note, error)
	ForStudent(ctx context.Context, student *models.User, noteType models.NoteType) (*dto.StudentNotes, error)
}

// NoteHandler exposes class content endpoints.
type NoteHandler struct {
	service noteService
}

// NewNoteHandler constructs handler.
func NewNoteHandler(svc noteService) *NoteHandler {
	return &NoteHandler{service: svc}
}

// AddContent godoc
// @Summary Publish notes, homework or a test
// @Tags Notes
// @Accept json
// @Produce json
// @Param payload body service.AddContentRequest true "Content"
// @Success 201 {object} response.Envelope{data=models.Note}
// @Failure 400 {object} response.Envelope
// @Router /teacher/notes [post]
func (h *NoteHandler) AddContent(c *gin.Context) {
	var req service.AddContentRequest
	if !bindPayload(c, &req, "invalid content payload") {
		return
	}
	note, err := h.service.AddContent(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, note)
}

// AddResult godoc
// @Summary Publish a results link
// @Tags Notes
// @Accept json
// @Produce json
// @Param payload body service.AddResultRequest true "Result link"
// @Success 201 {object} response.Envelope{data=models.Note}
// @Failure 400 {object} response.Envelope
// @Router /teacher/results [post]
func (h *NoteHandler) AddResult(c *gin.Context) {
	var req service.AddResultRequest
	if !bindPayload(c, &req, "invalid result payload") {
		return
	}
	note, err := h.service.AddResult(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, note)
}

// StudentNotes godoc
// @Summary Notes for the student's class section
// @Tags Notes
// @Produce json
// @Param type query string false "Notes, Homework, Test or Result"
// @Success 200 {object} response.Envelope{data=dto.StudentNotes}
// @Router /student/notes [get]
func (h *NoteHandler) StudentNotes(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}
	notes, err := h.service.ForStudent(c.Request.Context(), user, models.NoteType(c.Query("type")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, notes)
}
