package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"payday.backend/pkg/jwt"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// WalletAddressKey is the context key for the authenticated wallet
	WalletAddressKey = "walletAddress"
)

// AuthMiddleware validates the bearer token and injects the wallet address
func AuthMiddleware(jwtService *jwt.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthorizationHeader)
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization header is required",
			})
			return
		}

		if !strings.HasPrefix(authHeader, BearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid authorization format. Use: Bearer <token>",
			})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
		claims, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			if err == jwt.ErrExpiredToken {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error": "Token has expired",
				})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid token",
			})
			return
		}

		c.Set(WalletAddressKey, claims.Address)
		c.Next()
	}
}

// GetWalletAddress gets the authenticated wallet address from context
func GetWalletAddress(c *gin.Context) (string, bool) {
	address, exists := c.Get(WalletAddressKey)
	if !exists {
		return "", false
	}
	addr, ok := address.(string)
	return addr, ok && addr != ""
}
