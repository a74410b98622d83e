package middleware

import (
	"strings"

	"quickgig/internal/auth"
	"quickgig/internal/logger"
	"quickgig/pkg/apperrors"
	"quickgig/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Authenticator проверяет bearer-токен. Реализуется services.AuthService.
type Authenticator interface {
	Authenticate(db *gorm.DB, rawToken string) (*auth.Principal, error)
}

// Guards - набор middleware, которые хэндлеры вешают на свои маршруты
type Guards struct {
	Required gin.HandlerFunc
	Optional gin.HandlerFunc
	Throttle gin.HandlerFunc
}

// AuthMiddleware требует действительный токен, иначе 401
func AuthMiddleware(a Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c)
		if raw == "" {
			apperrors.HandleError(c, apperrors.ErrUnauthenticated)
			return
		}

		principal, err := a.Authenticate(DBFrom(c), raw)
		if err != nil {
			logger.CtxDebug(c.Request.Context(), "token rejected", "path", c.Request.URL.Path)
			apperrors.HandleError(c, err)
			return
		}

		setPrincipal(c, principal)
		c.Next()
	}
}

// OptionalAuthMiddleware подставляет пользователя, если токен действителен.
// Без токена или с недействительным токеном запрос идет как анонимный.
func OptionalAuthMiddleware(a Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw := bearerToken(c); raw != "" {
			if principal, err := a.Authenticate(DBFrom(c), raw); err == nil {
				setPrincipal(c, principal)
			}
		}
		c.Next()
	}
}

// GetPrincipal возвращает аутентифицированного пользователя или nil
func GetPrincipal(c *gin.Context) *auth.Principal {
	val, ok := c.Get(string(contextkeys.PrincipalKey))
	if !ok {
		return nil
	}
	p, _ := val.(*auth.Principal)
	return p
}

func setPrincipal(c *gin.Context, p *auth.Principal) {
	c.Set(string(contextkeys.PrincipalKey), p)
	c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), p.UserID))
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if len(header) < 7 || !strings.EqualFold(header[:7], "Bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}
