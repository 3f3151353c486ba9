package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	userdomain "github.com/SerraVetServices/vet-scheduler/internal/domain/user"
)

// RequireRoles barra a rota para quem não tiver um dos papéis listados.
func RequireRoles(roles ...userdomain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, exists := c.Get(ContextUserRole)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user_not_in_context"})
			return
		}

		role, ok := roleVal.(userdomain.Role)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_role_type"})
			return
		}

		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient_role"})
	}
}
