package middlewares

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/fsdevblog/linkly/internal/models"
	"github.com/fsdevblog/linkly/internal/services"
	"github.com/gin-gonic/gin"
)

const IdentityKey = "identity"

// IdentityResolver восстанавливает личность по токену.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, token string) (*models.Identity, error)
}

// RequireIdentity пропускает запрос дальше только с валидным Bearer токеном.
// Любая ошибка аутентификации дает 401; истекший токен отличается только текстом ответа.
func RequireIdentity(resolver IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := resolver.ResolveIdentity(c.Request.Context(), bearerToken(c.Request))
		if err != nil {
			_ = c.Error(fmt.Errorf("require identity: %w", err))

			switch {
			case errors.Is(err, services.ErrTokenExpired):
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token has expired"})
			case errors.Is(err, services.ErrMissingToken),
				errors.Is(err, services.ErrInvalidToken),
				errors.Is(err, services.ErrIdentityNotFound):
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			default:
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			}
			return
		}

		c.Set(IdentityKey, identity)
		c.Next()
	}
}

// RequireRole должен стоять после RequireIdentity.
func RequireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, _ := GetIdentity(c)
		if err := services.RequireRole(identity, role); err != nil {
			_ = c.Error(fmt.Errorf("require role %s: %w", role, err))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}

// GetIdentity достает личность, сохраненную RequireIdentity.
func GetIdentity(c *gin.Context) (*models.Identity, bool) {
	v, ok := c.Get(IdentityKey)
	if !ok {
		return nil, false
	}
	identity, ok := v.(*models.Identity)
	return identity, ok && identity != nil
}

func bearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	const prefix = "bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
