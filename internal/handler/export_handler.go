package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-erp-api/internal/dto"
	"github.com/noah-isme/school-erp-api/internal/service"
	appErrors "github.com/noah-isme/school-erp-api/pkg/errors"
	"github.com/noah-isme/school-erp-api/pkg/response"
)

type exportJobService interface {
	CreateJob(ctx context.Context, req service.CreateExportRequest, actorID string) (*dto.ExportJobResponse, error)
	GetStatus(ctx context.Context, id string) (*dto.ExportStatusResponse, error)
	ResolveDownload(ctx context.Context, token string) (*service.ExportDownload, error)
}

// ExportHandler exposes asynchronous export endpoints.
type ExportHandler struct {
	service exportJobService
}

// NewExportHandler constructs handler. A nil service answers 503.
func NewExportHandler(svc exportJobService) *ExportHandler {
	return &ExportHandler{service: svc}
}

func (h *ExportHandler) available(c *gin.Context) bool {
	if h.service == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrUnavailable, "exports are disabled"))
		return false
	}
	return true
}

// Create godoc
// @Summary Queue an export
// @Tags Exports
// @Accept json
// @Produce json
// @Param payload body service.CreateExportRequest true "Export request"
// @Success 202 {object} response.Envelope{data=dto.ExportJobResponse}
// @Failure 400 {object} response.Envelope
// @Router /admin/exports [post]
func (h *ExportHandler) Create(c *gin.Context) {
	if !h.available(c) {
		return
	}
	user := currentUser(c)
	if user == nil {
		return
	}
	var req service.CreateExportRequest
	if !bindPayload(c, &req, "invalid export payload") {
		return
	}
	job, err := h.service.CreateJob(c.Request.Context(), req, user.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Accepted(c, job)
}

// Status godoc
// @Summary Export job status
// @Tags Exports
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} response.Envelope{data=dto.ExportStatusResponse}
// @Failure 404 {object} response.Envelope
// @Router /admin/exports/{id} [get]
func (h *ExportHandler) Status(c *gin.Context) {
	if !h.available(c) {
		return
	}
	status, err := h.service.GetStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, status)
}

// Download godoc
// @Summary Download an export via signed token
// @Tags Exports
// @Produce octet-stream
// @Param token path string true "Signed token"
// @Success 200 {file} binary
// @Failure 403 {object} response.Envelope
// @Router /exports/{token} [get]
func (h *ExportHandler) Download(c *gin.Context) {
	if !h.available(c) {
		return
	}
	token := strings.TrimSpace(c.Param("token"))
	if token == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "token is required"))
		return
	}
	result, err := h.service.ResolveDownload(c.Request.Context(), token)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer result.File.Close() //nolint:errcheck

	var size int64 = -1
	if info, err := result.File.Stat(); err == nil {
		size = info.Size()
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", result.Filename))
	c.Header("Cache-Control", "no-store")
	c.DataFromReader(http.StatusOK, size, result.ContentType, result.File, nil)
}
