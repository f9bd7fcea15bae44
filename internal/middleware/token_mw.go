package middleware

import "github.com/gin-gonic/gin"

const (
	// TokenHeader is the request header carrying the authentication token.
	TokenHeader = "token"

	// AuthTokenKey is the context key the extracted token is stored under.
	AuthTokenKey = "authToken"
)

// TokenExtractor copies the raw token header into the request context.
// The token is not validated here; each service verifies it against the
// phone being acted on, so a missing or bad token only fails the
// operations that require one.
func TokenExtractor() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(AuthTokenKey, c.GetHeader(TokenHeader))
		c.Next()
	}
}
