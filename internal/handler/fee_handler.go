package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-erp-api/internal/dto"
	appErrors "github.com/noah-isme/school-erp-api/pkg/errors"
	"github.com/noah-isme/school-erp-api/pkg/response"
)

type feeService interface {
	Overview(ctx context.Context) (*dto.FeeOverview, error)
	Pay(ctx context.Context, id int64) (*dto.FeeOverview, error)
}

// FeeHandler exposes the fee schedule.
type FeeHandler struct {
	service feeService
}

// NewFeeHandler constructs handler.
func NewFeeHandler(svc feeService) *FeeHandler {
	return &FeeHandler{service: svc}
}

// Overview godoc
// @Summary Fee schedule with outstanding balance
// @Tags Fees
// @Produce json
// @Success 200 {object} response.Envelope{data=dto.FeeOverview}
// @Router /student/fees [get]
func (h *FeeHandler) Overview(c *gin.Context) {
	overview, err := h.service.Overview(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, overview)
}

// Pay godoc
// @Summary Pay an installment
// @Tags Fees
// @Produce json
// @Param id path int true "Installment ID"
// @Success 200 {object} response.Envelope{data=dto.FeeOverview}
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /student/fees/installments/{id}/pay [post]
func (h *FeeHandler) Pay(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid installment id"))
		return
	}
	overview, err := h.service.Pay(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, overview)
}
