package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/reservation-invoicing/internal/presentation/http/dto/response"
	"github.com/sangkips/reservation-invoicing/pkg/utils"
)

// Context keys set by AuthMiddleware
const (
	ContextSubject     = "subject"
	ContextUserEmail   = "user_email"
	ContextUserRoles   = "user_roles"
	ContextAccessToken = "access_token"
)

// AuthMiddleware creates a JWT authentication middleware. The raw token is
// kept so it can be forwarded to the booking backend.
func AuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		tokenString := parts[1]

		claims, err := jwtManager.ValidateAccessToken(tokenString)
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ContextSubject, claims.Subject)
		c.Set(ContextUserEmail, claims.Email)
		c.Set(ContextUserRoles, claims.AllRoles())
		c.Set(ContextAccessToken, tokenString)

		c.Next()
	}
}

// RequireRole creates a middleware that requires one of the given roles.
// Roles compare case-insensitively and without any "ROLE_" prefix.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRoles, exists := c.Get(ContextUserRoles)
		if !exists {
			response.Forbidden(c, "Access denied")
			c.Abort()
			return
		}

		userRolesList, ok := userRoles.([]string)
		if !ok {
			response.Forbidden(c, "Access denied")
			c.Abort()
			return
		}

		hasRole := false
		for _, userRole := range userRolesList {
			for _, requiredRole := range roles {
				if strings.EqualFold(userRole, strings.TrimPrefix(strings.ToUpper(requiredRole), "ROLE_")) {
					hasRole = true
					break
				}
			}
			if hasRole {
				break
			}
		}

		if !hasRole {
			response.Forbidden(c, "Insufficient role privileges")
			c.Abort()
			return
		}

		c.Next()
	}
}
