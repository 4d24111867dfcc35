package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rhcore/rhcore-backend/internal/apierr"
	"github.com/rhcore/rhcore-backend/internal/http/response"
	"github.com/rhcore/rhcore-backend/internal/logger"
	"github.com/rhcore/rhcore-backend/internal/permissions"
	"github.com/rhcore/rhcore-backend/internal/requestdata"
	"github.com/rhcore/rhcore-backend/internal/services"
)

const sessionCookieName = "rh_session"

type AuthMiddleware struct {
	log         *logger.Logger
	authService services.AuthService
}

func NewAuthMiddleware(log *logger.Logger, authService services.AuthService) *AuthMiddleware {
	return &AuthMiddleware{log: log.With("middleware", "AuthMiddleware"), authService: authService}
}

func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			response.Error(c, apierr.New(http.StatusUnauthorized, "UNAUTHORIZED", fmt.Errorf("missing or invalid token")))
			c.Abort()
			return
		}
		rd, err := am.authService.ParseToken(tokenString)
		if err != nil {
			response.Error(c, apierr.New(http.StatusUnauthorized, "UNAUTHORIZED", err))
			c.Abort()
			return
		}
		c.Request = c.Request.WithContext(requestdata.WithRequestData(c.Request.Context(), rd))
		c.Next()
	}
}

// RequirePermission enforces the API-layer gate: the UI hides buttons, but
// every endpoint checks the claim set on its own.
func (am *AuthMiddleware) RequirePermission(functionCode, actions string) gin.HandlerFunc {
	return func(c *gin.Context) {
		rd := requestdata.GetRequestData(c.Request.Context())
		if rd == nil {
			response.Error(c, apierr.New(http.StatusUnauthorized, "UNAUTHORIZED", fmt.Errorf("missing credentials")))
			c.Abort()
			return
		}
		if !permissions.HasAnyAction(rd.Claims, functionCode, actions) {
			am.log.Debug("Permission denied", "login", rd.Login, "function_code", functionCode, "actions", actions)
			response.Error(c, apierr.New(http.StatusForbidden, "FORBIDDEN",
				fmt.Errorf("missing permission %s on %s", actions, functionCode)))
			c.Abort()
			return
		}
		c.Next()
	}
}

// extractToken prefers the Authorization header and falls back to the
// session cookie set by the web tier.
func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return authHeader[7:]
	}
	if cookie, err := c.Cookie(sessionCookieName); err == nil && cookie != "" {
		return cookie
	}
	return ""
}
