package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireRoles gates a route behind a declarative role allow-list, evaluated
// against the identity resolved by AuthMiddleware.
func RequireRoles(allowed ...string) gin.HandlerFunc {
	allowedSet := make(map[string]bool, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = true
	}

	return func(c *gin.Context) {
		roleVal, exists := c.Get(CtxUserRole)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Não autorizado para acessar esta rota"})
			return
		}
		role, _ := roleVal.(string)
		if !allowedSet[role] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": fmt.Sprintf("Usuário com role '%s' não tem permissão para acessar esta rota", role),
			})
			return
		}
		c.Next()
	}
}
