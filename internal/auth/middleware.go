package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// gin 上下文键
const (
	ContextUserKey  = "auth.username"
	ContextAdminKey = "auth.isAdmin"
)

// RequireAuth 校验 Bearer 令牌，通过后把用户名与管理员标志写入上下文
func (m *Manager) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenString := strings.TrimPrefix(header, "Bearer ")
		if header == "" || tokenString == header || tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No autorizado"})
			return
		}
		claims, err := m.VerifyToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.Set(ContextUserKey, claims.Username)
		c.Set(ContextAdminKey, claims.IsAdmin)
		c.Next()
	}
}

// RequireAdmin 在 RequireAuth 之后挂载，按数据库里的标志放行管理员
func (m *Manager) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		isAdmin, err := m.IsAdmin(c.GetString(ContextUserKey))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Error interno del servidor"})
			return
		}
		if !isAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Se requieren permisos de administrador"})
			return
		}
		c.Next()
	}
}
