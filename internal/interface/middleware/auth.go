package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hiredeck/hiredeck/internal/application"
	"github.com/hiredeck/hiredeck/pkg/helpers"
	"github.com/hiredeck/hiredeck/pkg/response"
)

// accessToken pulls the access token from the cookie, falling back to a
// bearer Authorization header for non-browser clients.
func accessToken(c *gin.Context) string {
	if token, err := c.Cookie("access_token"); err == nil && token != "" {
		return token
	}
	if token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer "); ok {
		return token
	}
	return ""
}

// Auth validates the access token and checks its session id against the
// live Redis session. On success it sets userID and sessionID in the Gin
// context for handlers downstream.
func Auth(auth *application.AuthService, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := accessToken(c)
		if token == "" {
			response.Abort(c, http.StatusUnauthorized, "missing access token", nil)
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "invalid access token", nil)
			return
		}
		if err := auth.ValidateSession(c.Request.Context(), claims); err != nil {
			response.Abort(c, http.StatusUnauthorized, "session expired", nil)
			return
		}
		c.Set("userID", claims.UserID)
		c.Set("sessionID", claims.SessionID)
		c.Next()
	}
}
