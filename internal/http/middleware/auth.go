package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cast"

	"travelapp/internal/domain"
)

const (
	userIDKey   = "userID"
	userRoleKey = "userRole"
)

// IssueToken signs a 24h HS256 token for a logged in user.
func IssueToken(secret []byte, userID int64, role string, now time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     now.Add(24 * time.Hour).Unix(),
	})
	return token.SignedString(secret)
}

func parseBearer(secret []byte, header string) (domain.RequestContext, bool) {
	raw, ok := strings.CutPrefix(strings.TrimSpace(header), "Bearer ")
	if !ok || strings.TrimSpace(raw) == "" {
		return domain.RequestContext{}, false
	}
	claims := jwt.MapClaims{}
	tok, err := jwt.ParseWithClaims(strings.TrimSpace(raw), claims, func(t *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !tok.Valid {
		return domain.RequestContext{}, false
	}
	id := cast.ToInt64(claims["user_id"])
	if id <= 0 {
		return domain.RequestContext{}, false
	}
	return domain.RequestContext{UserID: domain.ID(id), Role: cast.ToString(claims["role"])}, true
}

// AuthOptional attaches the user when a valid token is present and lets
// anonymous requests through.
func AuthOptional(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rc, ok := parseBearer(secret, c.GetHeader("Authorization")); ok {
			c.Set(userIDKey, rc.UserID)
			c.Set(userRoleKey, rc.Role)
		}
		c.Next()
	}
}

// AuthRequired rejects requests without a valid token.
func AuthRequired(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		rc, ok := parseBearer(secret, c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":      "unauthorized: token tidak valid",
				"request_id": GetRequestID(c),
			})
			return
		}
		c.Set(userIDKey, rc.UserID)
		c.Set(userRoleKey, rc.Role)
		c.Next()
	}
}

// GetRequestContext returns the authenticated user, zero for anonymous requests.
func GetRequestContext(c *gin.Context) domain.RequestContext {
	rc := domain.RequestContext{Role: c.GetString(userRoleKey)}
	if v, ok := c.Get(userIDKey); ok {
		if id, ok := v.(domain.ID); ok {
			rc.UserID = id
		}
	}
	return rc
}
