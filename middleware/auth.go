// File: /middleware/auth.go
package middleware

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"loopline-api/apperr"
	"loopline-api/repositories"
	"loopline-api/utils"
)

const (
	ContextUserID    = "user_id"
	ContextSessionID = "session_id"
)

// Auth resolves the acting user from the bearer token. The token only
// carries the session handle; the session row decides who, if anyone, is
// logged in, so a logged-out session rejects every surviving copy of the
// token. Requests without a bound session are rejected.
func Auth(sessions *repositories.SessionRepository, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, ok := sessionFromRequest(c, jwtSecret)
		if !ok {
			utils.SendAppError(c, apperr.Unauthenticated())
			c.Abort()
			return
		}

		session, err := sessions.Get(sessionID)
		if err != nil {
			utils.SendAppError(c, err)
			c.Abort()
			return
		}
		if session.UserID == nil {
			utils.SendAppError(c, apperr.Unauthenticated())
			c.Abort()
			return
		}

		c.Set(ContextSessionID, session.ID)
		c.Set(ContextUserID, *session.UserID)
		c.Next()
	}
}

// OptionalAuth resolves the session when a token is presented but never
// rejects. Login and logout run behind it: both need to see the presented
// session, neither requires a bound one.
func OptionalAuth(sessions *repositories.SessionRepository, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, ok := sessionFromRequest(c, jwtSecret)
		if !ok {
			c.Next()
			return
		}

		session, err := sessions.Get(sessionID)
		if err != nil {
			c.Next()
			return
		}

		c.Set(ContextSessionID, session.ID)
		if session.UserID != nil {
			c.Set(ContextUserID, *session.UserID)
		}
		c.Next()
	}
}

// sessionFromRequest extracts and validates the bearer token, returning the
// session handle it wraps.
func sessionFromRequest(c *gin.Context, jwtSecret string) (string, bool) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	tokenString := strings.TrimPrefix(header, "Bearer ")

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return "", false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", false
	}
	sessionID, ok := claims["sid"].(string)
	if !ok || sessionID == "" {
		return "", false
	}
	return sessionID, true
}
