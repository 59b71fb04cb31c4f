package middleware

import (
	"log"

	"github.com/gin-gonic/gin"
	apierrors "github.com/pferate/puppy-website/internal/errors"
	"github.com/pferate/puppy-website/internal/identity"
	"github.com/pferate/puppy-website/internal/models"
)

// GroupChecker answers group membership questions for a principal.
type GroupChecker interface {
	InGroups(p identity.Principal, names []string, requireAll bool) ([]models.Group, error)
}

// RequireGroups lets the request through when the principal belongs to any
// of the named groups, or to all of them when requireAll is set.
func RequireGroups(checker GroupChecker, names []string, requireAll bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := GetPrincipal(c)
		if !principal.IsAuthenticated() {
			apierrors.Unauthorized(c, "")
			return
		}

		groups, err := checker.InGroups(principal, names, requireAll)
		if err != nil {
			log.Printf("failed to check group membership: %v", err)
			apierrors.InternalError(c, "")
			return
		}
		if len(groups) == 0 {
			apierrors.InsufficientPermissions(c, "")
			return
		}
		c.Next()
	}
}

// RequireAdministrator restricts a route to members of an administrative group
func RequireAdministrator(checker GroupChecker) gin.HandlerFunc {
	return RequireGroups(checker, models.AdministrativeGroups, false)
}
