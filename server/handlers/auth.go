package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/unlinked-app/unlinked/events"
	"github.com/unlinked-app/unlinked/model"
	"github.com/unlinked-app/unlinked/server/middlewares"
	Logger "github.com/unlinked-app/unlinked/utils/log"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

type signupInput struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Signup registers a new account and opens a session for it. The response
// is written before the welcome email event is published: email delivery
// never affects the HTTP result.
func (h *Handler) Signup(c *gin.Context) {
	var input signupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required"})
		return
	}
	if input.Name == "" || input.Username == "" || input.Email == "" || input.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required"})
		return
	}

	var existing model.User
	if result := h.DB.Where("email = ?", input.Email).First(&existing); result.RowsAffected != 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email already exists"})
		return
	}
	if result := h.DB.Where("username = ?", input.Username).First(&existing); result.RowsAffected != 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Username already exists"})
		return
	}

	if len(input.Password) < minPasswordLength {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Password must be at least 6 characters"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		internalError(c, "Signup", err)
		return
	}

	user := model.User{
		Id:       uuid.New().String(),
		Name:     input.Name,
		Username: input.Username,
		Email:    input.Email,
		Password: string(hashed),
	}
	if err := h.DB.Create(&user).Error; err != nil {
		internalError(c, "Signup", err)
		return
	}

	token, err := middlewares.IssueSessionToken(user.Id)
	if err != nil {
		internalError(c, "Signup", err)
		return
	}
	middlewares.SetSessionCookie(c, token)

	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully"})

	if err := events.Publish(h.EventBus, events.TopicWelcomeEmail, events.WelcomeEmailEvent{
		Email:    user.Email,
		Name:     user.Name,
		Username: user.Username,
	}); err != nil {
		Logger.Log.Errorf("fail to publish welcome email event: %v", err)
	}
}

// Login verifies credentials by username. Unknown username and wrong
// password answer with the same body so accounts cannot be enumerated.
func (h *Handler) Login(c *gin.Context) {
	var input loginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required"})
		return
	}

	var user model.User
	result := h.DB.Where("username = ?", input.Username).First(&user)
	if result.RowsAffected != 1 {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		return
	}

	token, err := middlewares.IssueSessionToken(user.Id)
	if err != nil {
		internalError(c, "Login", err)
		return
	}
	middlewares.SetSessionCookie(c, token)

	c.JSON(http.StatusOK, gin.H{"message": "User logged in successfully"})
}

// Logout clears the session cookie unconditionally.
func (h *Handler) Logout(c *gin.Context) {
	middlewares.ClearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "User logged out successfully"})
}

// GetCurrentUser returns the authenticated user attached to the session.
func (h *Handler) GetCurrentUser(c *gin.Context, user *model.User) {
	c.JSON(http.StatusOK, user)
}
