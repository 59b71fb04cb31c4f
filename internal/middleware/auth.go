package middleware

import (
	"log"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/pferate/puppy-website/internal/constants"
	apierrors "github.com/pferate/puppy-website/internal/errors"
	"github.com/pferate/puppy-website/internal/identity"
	"github.com/pferate/puppy-website/internal/models"
)

// TokenVerifier resolves an API token to its user, or nil when it is invalid.
type TokenVerifier interface {
	VerifyAuthToken(token string) *models.User
}

// LoadPrincipal resolves the requester from the session, falling back to a
// Bearer API token, and stores the principal in the context. Requests with
// neither get the manager's anonymous principal.
func LoadPrincipal(manager *identity.Manager, verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := manager.Anonymous()

		session := sessions.Default(c)
		if userID, ok := toUint64(session.Get(constants.ContextKeyUserID)); ok {
			loaded, err := manager.Load(userID)
			if err != nil {
				log.Printf("failed to load session principal: %v", err)
				apierrors.InternalError(c, "")
				return
			}
			principal = loaded
		} else if token, ok := bearerToken(c); ok {
			if user := verifier.VerifyAuthToken(token); user != nil {
				principal = identity.Authenticated{User: user}
			}
		}

		c.Set(constants.ContextKeyPrincipal, principal)
		if user, ok := principal.Member(); ok {
			c.Set(constants.ContextKeyUserID, user.ID)
		}
		c.Next()
	}
}

// RequireAuth rejects requests without an authenticated principal
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !GetPrincipal(c).IsAuthenticated() {
			apierrors.Unauthorized(c, "")
			return
		}
		c.Next()
	}
}

// GetPrincipal retrieves the current principal from context. It is anonymous
// when LoadPrincipal did not run.
func GetPrincipal(c *gin.Context) identity.Principal {
	if p, exists := c.Get(constants.ContextKeyPrincipal); exists {
		if principal, ok := p.(identity.Principal); ok {
			return principal
		}
	}
	return identity.Anonymous{}
}

// GetUser retrieves the current authenticated user from context
func GetUser(c *gin.Context) (*models.User, bool) {
	return GetPrincipal(c).Member()
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}
	return toUint64(userID)
}

func toUint64(value interface{}) (uint64, bool) {
	switch v := value.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
