package dto

import "github.com/noah-isme/school-erp-api/internal/models"

// SignInResult carries the issued session token and the landing page.
type SignInResult struct {
	User     *models.User `json:"user"`
	Token    string       `json:"-"`
	Redirect string       `json:"redirect"`
}

// SessionResponse answers GET /auth/session.
type SessionResponse struct {
	IsAuthenticated bool         `json:"isAuthenticated"`
	User            *models.User `json:"user,omitempty"`
}

// LoginPageResponse lists the portals that accept sign-in.
type LoginPageResponse struct {
	Roles []models.UserRole `json:"roles"`
}
