package http

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/gabriel-rosch/fibershare-sub001/internal/models"
)

// JWTAuthMiddleware validates operator JWTs. Compatible with the
// auth-service token format: the operator id comes from the "uid" claim
// with "sub" as fallback, the role from "role" (defaults to operator).
func JWTAuthMiddleware(secretKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization format"})
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			return []byte(secretKey), nil
		})

		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token claims"})
			c.Abort()
			return
		}

		operatorID := ""
		if uid, ok := claims["uid"].(string); ok {
			operatorID = uid
		} else if sub, ok := claims["sub"].(string); ok {
			operatorID = sub
		}
		if operatorID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "token carries no operator id"})
			c.Abort()
			return
		}

		role := models.RoleOperator
		if r, ok := claims["role"].(string); ok && r != "" {
			role = r
		}

		c.Set("operatorID", operatorID)
		c.Set("operatorRole", role)

		c.Next()
	}
}

// InternalAuthMiddleware validates internal service calls. Constant
// time compare to avoid timing attacks.
func InternalAuthMiddleware(internalSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		secret := c.GetHeader("X-Internal-Secret")
		if subtle.ConstantTimeCompare([]byte(secret), []byte(internalSecret)) != 1 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized internal access"})
			c.Abort()
			return
		}
		c.Next()
	}
}
