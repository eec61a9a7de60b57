package auth

import (
	"context"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"

	"github.com/woodgrain-labs/furnplan-backend/internal/users"
)

// OptionalFirebaseAuth resolves a user id from a Firebase ID token when one
// is presented and records the user. Missing or invalid tokens are not an
// error: the request proceeds as the anonymous owner, matching the
// unauthenticated mode of the design UI.
func OptionalFirebaseAuth(authClient *auth.Client, userRepo *users.Repo) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" || authClient == nil {
			c.Set(CtxUserID, AnonymousID)
			c.Next()
			return
		}

		decodedToken, err := authClient.VerifyIDToken(context.Background(), token)
		if err != nil {
			c.Set(CtxUserID, AnonymousID)
			c.Next()
			return
		}

		email, _ := decodedToken.Claims["email"].(string)
		name, _ := decodedToken.Claims["name"].(string)

		if userRepo != nil {
			// Best effort; auth does not depend on the users table.
			_, _ = userRepo.EnsureUser(c.Request.Context(), users.UpsertUser{
				FirebaseUID: decodedToken.UID,
				Email:       email,
				DisplayName: name,
			})
		}

		c.Set(CtxUserID, decodedToken.UID)
		c.Next()
	}
}

// extractToken extracts the Bearer token from the Authorization header
func extractToken(c *gin.Context) string {
	bearerToken := c.GetHeader("Authorization")
	if len(bearerToken) > 7 && strings.HasPrefix(bearerToken, "Bearer ") {
		return bearerToken[7:]
	}
	return ""
}
