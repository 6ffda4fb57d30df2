// File: /controllers/auth_controller.go
package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"loopline-api/apperr"
	"loopline-api/events"
	"loopline-api/models"
	"loopline-api/repositories"
	"loopline-api/utils"
)

type AuthController struct {
	users     *repositories.UserRepository
	sessions  *repositories.SessionRepository
	bus       *events.Bus
	jwtSecret string
}

func NewAuthController(users *repositories.UserRepository, sessions *repositories.SessionRepository, bus *events.Bus, jwtSecret string) *AuthController {
	return &AuthController{
		users:     users,
		sessions:  sessions,
		bus:       bus,
		jwtSecret: jwtSecret,
	}
}

type RegisterRequest struct {
	Username string  `json:"username" binding:"required"`
	Password string  `json:"password" binding:"required,min=6"`
	Email    *string `json:"email"` // Optional - only used for the welcome mail
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Register creates the account. It does not log the new user in; login is
// its own call, on whatever session the client presents then.
func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !utils.IsValidUsername(req.Username) {
		utils.SendAppError(c, apperr.Invalid("username must be 3-50 characters: letters, digits, _ or ."))
		return
	}
	if !utils.IsValidPassword(req.Password) {
		utils.SendAppError(c, apperr.Invalid("password must be at least 6 characters and mix upper, lower, digits or symbols"))
		return
	}
	if req.Email != nil && !utils.IsValidEmail(*req.Email) {
		utils.SendAppError(c, apperr.Invalid("invalid email address"))
		return
	}

	user, err := ac.users.Create(req.Username, req.Password, req.Email)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	// The user row is committed; everything downstream (score seed, welcome
	// mail) is fan-out and cannot fail the registration.
	ac.bus.Publish(events.UserRegistered{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
	})

	user.Password = ""
	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful",
		"user":    user,
	})
}

// Login authenticates and binds a session. A presented session that is
// still bound must log out first; the check happens here, before the
// session is touched, so the bind itself never has to fail.
func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if c.GetString("user_id") != "" {
		utils.SendAppError(c, apperr.AlreadyLoggedIn())
		return
	}

	user, err := ac.users.Authenticate(req.Username, req.Password)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	// Reuse the presented session when there is one, otherwise open a
	// fresh one for this login.
	sessionID := c.GetString("session_id")
	if sessionID != "" {
		if err := ac.sessions.Start(sessionID, user.ID); err != nil {
			utils.SendAppError(c, err)
			return
		}
	} else {
		session, err := ac.sessions.Create(&user.ID)
		if err != nil {
			utils.SendAppError(c, err)
			return
		}
		sessionID = session.ID
	}

	token, err := ac.generateToken(sessionID)
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	user.Password = ""
	c.JSON(http.StatusOK, AuthResponse{
		Token: token,
		User:  *user,
	})
}

// Logout unbinds the presented session. Logging out twice, or with no
// usable token at all, answers the same 200: the end state is identical.
func (ac *AuthController) Logout(c *gin.Context) {
	if sessionID := c.GetString("session_id"); sessionID != "" {
		if err := ac.sessions.End(sessionID); err != nil {
			utils.SendAppError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out"})
}

// generateToken wraps the session handle in a signed bearer token. No user
// claims go in: the session row is the source of truth, so logging out
// genuinely invalidates every copy of the token.
func (ac *AuthController) generateToken(sessionID string) (string, error) {
	claims := jwt.MapClaims{
		"sid": sessionID,
		"exp": time.Now().Add(time.Hour * 24 * 30).Unix(), // 30 days
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(ac.jwtSecret))
}
