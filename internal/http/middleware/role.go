package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

func normalizeRole(r string) string {
	return strings.ToLower(strings.TrimSpace(r))
}

// RequireRoles lets through only the given roles. Mount it after AuthRequired.
//
//	admin := api.Group("/admin", AuthRequired(secret), RequireRoles("owner", "admin"))
func RequireRoles(allowedRoles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[normalizeRole(r)] = true
	}

	return func(c *gin.Context) {
		role := normalizeRole(GetRequestContext(c).Role)
		switch {
		case role == "":
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":      "unauthorized: login diperlukan",
				"request_id": GetRequestID(c),
			})
		case !allowed[role]:
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":      "forbidden: role " + role + " tidak diizinkan",
				"request_id": GetRequestID(c),
			})
		default:
			c.Next()
		}
	}
}
