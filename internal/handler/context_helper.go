package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-erp-api/internal/middleware"
	"github.com/noah-isme/school-erp-api/internal/models"
	appErrors "github.com/noah-isme/school-erp-api/pkg/errors"
	"github.com/noah-isme/school-erp-api/pkg/response"
)

// currentUser returns the signed-in user or writes a 401 and returns nil.
// Routes behind ProtectPage always have one.
func currentUser(c *gin.Context) *models.User {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return nil
	}
	return user
}

// bindPayload accepts JSON bodies and HTML form posts alike.
func bindPayload(c *gin.Context, dest interface{}, message string) bool {
	if err := c.ShouldBind(dest); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, message))
		return false
	}
	return true
}

// bindOptionalPayload is bindPayload for endpoints whose body may be absent.
// An empty body leaves dest untouched whatever the request's ContentLength.
func bindOptionalPayload(c *gin.Context, dest interface{}, message string) bool {
	if err := c.ShouldBind(dest); err != nil && !errors.Is(err, io.EOF) {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, message))
		return false
	}
	return true
}
