package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	apierrors "github.com/pferate/puppy-website/internal/errors"
)

// parseIDParam reads a numeric path parameter, answering 400 when it is malformed.
func parseIDParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid "+name)
		return 0, false
	}
	return id, true
}

// isSecure reports whether the request arrived over TLS, directly or via a proxy.
func isSecure(c *gin.Context) bool {
	return c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https"
}
