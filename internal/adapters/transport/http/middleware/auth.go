package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/repwise/auth-service/internal/domain/auth/repo"
	"github.com/repwise/auth-service/internal/domain/auth/token"
)

const (
	// ClaimsKey is where verified access-token claims land in the gin context.
	ClaimsKey = "claims"
	// UserIDKey holds the subject claim as a string.
	UserIDKey = "user_id"
)

// Auth is the request-verification contract shared by all protected
// routes: Bearer header parsing, signature/expiry verification and the
// logout denylist check. The two failure messages are fixed; neither says
// whether a token was expired, forged or revoked.
func Auth(tokens token.Manager, tokenRepo repo.TokenRepo) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		parts := strings.SplitN(header, " ", 2)
		if header == "" || len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization token missing or malformed",
			})
			return
		}

		claims, err := tokens.ValidateAccessToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Unauthorized access",
			})
			return
		}

		revoked, err := tokenRepo.IsAccessRevoked(c.Request.Context(), claims.ID)
		if err != nil || revoked {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Unauthorized access",
			})
			return
		}

		c.Set(ClaimsKey, claims)
		c.Set(UserIDKey, claims.Subject)
		c.Next()
	}
}
