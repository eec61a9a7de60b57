package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	CtxUserID = "user_id"

	// AnonymousID is the owner recorded for unauthenticated requests.
	AnonymousID = "anonymous"
)

// UserID extracts the resolved user id from the Gin context. Requests that
// never passed an auth middleware count as anonymous.
func UserID(c *gin.Context) string {
	v := strings.TrimSpace(c.GetString(CtxUserID))
	if v == "" {
		return AnonymousID
	}
	return v
}
