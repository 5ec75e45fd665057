package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	ContextUserID = "user_id"
	ContextToken  = "token"
)

// JWTAuth verifies HS256 bearer tokens issued by the portfolio backend and
// stores the caller's user id and raw token on the context.
func JWTAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(secret), nil
		}, jwt.WithExpirationRequired())

		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "Invalid token",
				"details": err.Error(),
			})
			return
		}

		if !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token expired or invalid"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}

		userID, ok := subject(claims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token has no user"})
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextToken, tokenString)
		c.Next()
	}
}

// subject reads the user id from user_id (number or string) or, failing that, sub.
func subject(claims jwt.MapClaims) (string, bool) {
	switch v := claims["user_id"].(type) {
	case float64:
		if v > 0 && v == float64(uint64(v)) {
			return strconv.FormatUint(uint64(v), 10), true
		}
	case string:
		if v != "" {
			return v, true
		}
	}
	if sub, err := claims.GetSubject(); err == nil && sub != "" {
		return sub, true
	}
	return "", false
}

// UserID returns the authenticated user's id.
func UserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}

// Token returns the caller's raw bearer token.
func Token(c *gin.Context) string {
	return c.GetString(ContextToken)
}
