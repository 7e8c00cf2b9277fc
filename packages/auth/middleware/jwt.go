package middleware

import (
	"net/http"
	"strings"

	"cuebook-api/packages/auth/models"
	"cuebook-api/packages/auth/utils"

	"github.com/gin-gonic/gin"
)

// CookieName is read when the request has no Authorization header.
const CookieName = "cuebook_token"

func tokenFromRequest(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
		return ""
	}
	token, err := c.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return token
}

// JWTMiddleware rejects requests without a valid access token and stores the
// user id and roles in the context.
func JWTMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := tokenFromRequest(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization token required"})
			return
		}

		claims, err := utils.ParseToken(secret, tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set("user_id", claims.Subject)
		c.Set("user_roles", claims.Roles)
		c.Next()
	}
}

func GetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}

func GetUserRoles(c *gin.Context) (models.Roles, bool) {
	v, exists := c.Get("user_roles")
	if !exists {
		return nil, false
	}
	roles, ok := v.(models.Roles)
	return roles, ok
}
