package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-erp-api/internal/dto"
	"github.com/noah-isme/school-erp-api/internal/middleware"
	"github.com/noah-isme/school-erp-api/internal/models"
	"github.com/noah-isme/school-erp-api/internal/service"
	"github.com/noah-isme/school-erp-api/pkg/response"
	"github.com/noah-isme/school-erp-api/pkg/session"
)

type sessionService interface {
	SignIn(ctx context.Context, req service.SignInRequest) (*dto.SignInResult, error)
	Session(ctx context.Context, token string) dto.SessionResponse
}

// SessionHandler wires sign in and sign out to the session cookie.
type SessionHandler struct {
	service sessionService
	cookie  session.Cookie
}

// NewSessionHandler creates a new handler.
func NewSessionHandler(svc sessionService, cookie session.Cookie) *SessionHandler {
	return &SessionHandler{service: svc, cookie: cookie}
}

// LoginPage godoc
// @Summary Login page data
// @Description Redirects signed-in users to their dashboard, otherwise lists the portals.
// @Tags Session
// @Produce json
// @Success 200 {object} response.Envelope
// @Success 303
// @Router /login [get]
func (h *SessionHandler) LoginPage(c *gin.Context) {
	if user, ok := middleware.CurrentUser(c); ok {
		response.Redirect(c, user.Role.DashboardPath())
		return
	}
	response.JSON(c, http.StatusOK, dto.LoginPageResponse{Roles: models.Roles})
}

// Login godoc
// @Summary Sign in
// @Description Sets the session cookie and redirects to the role dashboard.
// @Tags Session
// @Accept json
// @Accept x-www-form-urlencoded
// @Produce json
// @Param payload body service.SignInRequest true "Credentials"
// @Success 303
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/login [post]
func (h *SessionHandler) Login(c *gin.Context) {
	var req service.SignInRequest
	if !bindPayload(c, &req, "invalid login payload") {
		return
	}

	res, err := h.service.SignIn(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.cookie.Write(c.Writer, res.Token)
	response.Redirect(c, res.Redirect)
}

// Logout godoc
// @Summary Sign out
// @Tags Session
// @Success 303
// @Router /auth/logout [post]
func (h *SessionHandler) Logout(c *gin.Context) {
	h.cookie.Clear(c.Writer)
	response.Redirect(c, middleware.LoginPath)
}

// Session godoc
// @Summary Current session
// @Tags Session
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /auth/session [get]
func (h *SessionHandler) Session(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.Session(c.Request.Context(), h.cookie.Token(c.Request)))
}
