package middleware

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/school-erp-api/internal/models"
	appErrors "github.com/noah-isme/school-erp-api/pkg/errors"
	"github.com/noah-isme/school-erp-api/pkg/logger"
	"github.com/noah-isme/school-erp-api/pkg/session"
)

// ContextUserKey is the gin context key storing the signed-in *models.User.
const ContextUserKey = "currentUser"

// SessionResolver turns a session token into the live user record.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*models.User, error)
}

// Session attaches the signed-in user when the request carries a valid
// session. It never blocks; ProtectPage decides what an anonymous request
// may see. A cookie the resolver rejects as unauthorized is cleared; any
// other failure leaves it in place so a store outage does not sign users out.
func Session(resolver SessionResolver, cookie session.Cookie, log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *gin.Context) {
		token := cookie.Token(c.Request)
		if token == "" {
			c.Next()
			return
		}

		user, err := resolver.Resolve(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, appErrors.ErrUnauthorized) {
				log.Warn("failed to resolve session", zap.String("path", c.FullPath()), zap.Error(err))
				c.Next()
				return
			}
			if _, cerr := c.Request.Cookie(cookie.Name); cerr == nil {
				cookie.Clear(c.Writer)
			}
			c.Next()
			return
		}

		c.Set(ContextUserKey, user)
		c.Set(logger.UserIDKey, user.ID)
		c.Next()
	}
}

// CurrentUser returns the user attached by Session, if any.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	value, ok := c.Get(ContextUserKey)
	if !ok {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok && user != nil
}
