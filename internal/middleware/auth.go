package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dentabook/dentist-booking-api/internal/models"
	"github.com/dentabook/dentist-booking-api/internal/utils"
)

const identityKey = "identity"

// TokenVerifier checks a token string and returns its claims.
type TokenVerifier interface {
	Verify(token string) (*utils.Claims, error)
}

// UserResolver looks up the user a verified token refers to.
type UserResolver interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

// Protect authenticates the request. The token comes from the Authorization
// bearer header or the "token" cookie. A missing or invalid token aborts with
// 401 before the resolver is consulted, so no store work happens for
// unauthenticated requests.
func Protect(verifier TokenVerifier, users UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			utils.AbortFail(c, http.StatusUnauthorized, "Not authorized to access this route")
			return
		}

		claims, err := verifier.Verify(token)
		if err != nil {
			utils.AbortFail(c, http.StatusUnauthorized, "Not authorized to access this route")
			return
		}

		userID, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			utils.AbortFail(c, http.StatusUnauthorized, "Not authorized to access this route")
			return
		}

		user, err := users.FindByID(c.Request.Context(), userID)
		if err != nil {
			utils.AbortFail(c, http.StatusUnauthorized, "Not authorized to access this route")
			return
		}

		c.Set(identityKey, models.Identity{ID: user.ID, Role: user.Role})
		c.Next()
	}
}

// Authorize gates a route to the given roles. Must run after Protect, so an
// unauthenticated request always sees 401 before any 403.
func Authorize(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := GetIdentity(c)
		if !ok {
			utils.AbortFail(c, http.StatusUnauthorized, "Not authorized to access this route")
			return
		}

		for _, role := range roles {
			if identity.Role == role {
				c.Next()
				return
			}
		}

		utils.AbortFail(c, http.StatusForbidden,
			fmt.Sprintf("User role %s is not authorized to access this route", identity.Role))
	}
}

// GetIdentity returns the identity Protect attached to the request.
func GetIdentity(c *gin.Context) (models.Identity, bool) {
	v, exists := c.Get(identityKey)
	if !exists {
		return models.Identity{}, false
	}
	identity, ok := v.(models.Identity)
	return identity, ok
}

// extractToken pulls the raw token from the bearer header, falling back to
// the cookie. The literal values the logout flow writes count as absent.
func extractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return sanitizeToken(strings.TrimPrefix(header, "Bearer "))
	}
	if cookie, err := c.Cookie("token"); err == nil {
		return sanitizeToken(cookie)
	}
	return ""
}

func sanitizeToken(token string) string {
	if token == "none" || token == "null" {
		return ""
	}
	return token
}
