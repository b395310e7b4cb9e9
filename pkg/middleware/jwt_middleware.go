package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tripplanner/internal/models/request_models"
	"tripplanner/pkg/utils"
)

const sessionKey = "session"

func JWTAuthMiddleware(issuer *utils.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondError(c, http.StatusUnauthorized, "Authorization header missing or invalid")
			c.Abort()
			return
		}

		claims, err := issuer.ValidateToken(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(sessionKey, request_models.Session{Email: claims.Email, Name: claims.Name})
		c.Next()
	}
}

// SessionFrom returns the caller set by JWTAuthMiddleware.
func SessionFrom(c *gin.Context) (request_models.Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return request_models.Session{}, false
	}
	s, ok := v.(request_models.Session)
	return s, ok && !s.IsZero()
}

// SetSession is used by tests to bypass token parsing.
func SetSession(c *gin.Context, s request_models.Session) {
	c.Set(sessionKey, s)
}
