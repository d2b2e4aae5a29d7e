package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"shashoo/internal/access"
	"shashoo/internal/auth"
	"shashoo/internal/model"
	"shashoo/internal/repository"
)

// IdentityKey is the gin context key holding the authenticated identity.
const IdentityKey = "identity"

// CurrentIdentity returns the identity stored by AuthRequired, or nil when
// the request is unauthenticated.
func CurrentIdentity(c *gin.Context) *access.Identity {
	value, exists := c.Get(IdentityKey)
	if !exists {
		return nil
	}
	identity, ok := value.(*access.Identity)
	if !ok {
		return nil
	}
	return identity
}

// AuthRequired validates the bearer token and resolves the caller's role
// and approval status from the user store. Role and status come from the
// database on every request, not from token claims, so admin changes apply
// immediately. Accounts that are not approved are blocked here.
func AuthRequired(jwtSecret string, users repository.UserRepositoryInterface) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		userIDStr, err := auth.ParseToken(parts[1], jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		user, err := users.GetByID(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve user"})
			return
		}
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		if user.Status != model.StatusApproved {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Account is not approved"})
			return
		}

		c.Set(IdentityKey, &access.Identity{
			ID:     user.ID,
			Role:   user.Role,
			Status: user.Status,
		})
		c.Next()
	}
}

// AdminRequired rejects non-admin identities. Must run after AuthRequired.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := CurrentIdentity(c)
		if identity == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}
		if !access.CanAdministerBoards(identity) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin role required"})
			return
		}
		c.Next()
	}
}
