package middleware

import (
	"strings"

	"sublet_backend/internal/auth"
	"sublet_backend/internal/logger"
	"sublet_backend/pkg/apperrors"
	"sublet_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
)

// TokenParser проверяет access-токен
type TokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

// AuthMiddleware - middleware проверки JWT. Кладет id пользователя в
// gin.Context и в контекст запроса для логгера.
func AuthMiddleware(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Authorization header missing or invalid"))
			c.Abort()
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := parser.Parse(tokenStr)
		if err != nil {
			logger.CtxWarn(c.Request.Context(), "rejected token", "path", c.Request.URL.Path, "error", err.Error())
			apperrors.HandleError(c, apperrors.ErrInvalidToken)
			c.Abort()
			return
		}

		c.Set(string(contextkeys.UserIDKey), claims.Subject)
		c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), claims.Subject))
		c.Next()
	}
}

// GetUserID извлекает ID пользователя из контекста
func GetUserID(c *gin.Context) string {
	userID, exists := c.Get(string(contextkeys.UserIDKey))
	if !exists {
		return ""
	}

	id, ok := userID.(string)
	if !ok {
		return ""
	}

	return id
}
