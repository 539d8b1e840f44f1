package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-erp-api/internal/models"
	"github.com/noah-isme/school-erp-api/pkg/response"
)

// LoginPath is where anonymous requests to protected pages are sent.
const LoginPath = "/login"

// ProtectPage requires a signed-in user. When roles are given and the user
// holds none of them, the request is redirected to the user's own dashboard
// instead of failing.
func ProtectPage(roles ...models.UserRole) gin.HandlerFunc {
	allowed := make(map[models.UserRole]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			response.Redirect(c, LoginPath)
			c.Abort()
			return
		}
		if len(allowed) > 0 {
			if _, ok := allowed[user.Role]; !ok {
				response.Redirect(c, user.Role.DashboardPath())
				c.Abort()
				return
			}
		}
		c.Next()
	}
}
