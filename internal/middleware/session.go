package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"portfolio/api/internal/service"
)

const currentUserKey = "current_user"

// Session resolves the session cookie to a principal. An absent, expired or
// unknown session leaves the request anonymous; a session-store failure is a
// 500, not a silent downgrade to anonymous.
func Session(auth *service.AuthService, cookieName string, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		user, err := auth.ResolveSession(c.Request.Context(), token)
		if err != nil {
			log.Error().Err(err).
				Str("request_id", c.Writer.Header().Get(requestIDHeader)).
				Msg("resolve session failed")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "An unexpected error occurred",
			})
			return
		}
		if user != nil {
			c.Set(currentUserKey, *user)
		}

		c.Next()
	}
}
