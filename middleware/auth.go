package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"organicroots/utils"
)

func sessionToken(c *gin.Context) string {
	if cookie, err := c.Cookie(utils.AuthCookieName); err == nil && cookie != "" {
		return cookie
	}

	// Bearer fallback for non-browser clients.
	authHeader := c.GetHeader("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}

func wantsHTML(c *gin.Context) bool {
	return strings.Contains(c.GetHeader("Accept"), "text/html")
}

// AuthMiddleware reconstructs the session from the signed cookie on every
// request; there is no server-side session store. Missing, expired, or
// tampered tokens are treated identically to an anonymous request.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c)
		if token == "" {
			rejectAnonymous(c)
			return
		}

		claims, err := utils.VerifyToken(token)
		if err != nil {
			rejectAnonymous(c)
			return
		}

		c.Set("user_id", claims.Subject)
		c.Set("user_email", claims.Email)
		c.Set("user_role", claims.Role)
		c.Set("user_name", claims.FullName)
		c.Next()
	}
}

func rejectAnonymous(c *gin.Context) {
	if wantsHTML(c) {
		c.Redirect(http.StatusFound, "/login")
		c.Abort()
		return
	}
	c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	c.Abort()
}

// RequireRoles gates a route on the session role. It runs after
// AuthMiddleware, so a missing role means a broken chain, not anonymity.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("user_role")
		if !exists {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			c.Abort()
			return
		}

		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		c.Abort()
	}
}
