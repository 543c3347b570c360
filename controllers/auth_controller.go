package controllers

import (
	"context"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"organicroots/config"
	"organicroots/libs"
	"organicroots/models"
	"organicroots/utils"
)

type AuthController struct{}

func userSummary(id, email, fullName, role string) gin.H {
	return gin.H{
		"id":       id,
		"email":    email,
		"fullName": fullName,
		"role":     role,
	}
}

// Register godoc
// @Summary Register new customer
// @Description Create an account, set the session cookie, and return the user summary
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Register Request"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /api/auth/register [post]
func (ctrl *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Email and a password of at least 6 characters are required."})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	fullName := strings.TrimSpace(req.FullName)

	var exists int
	config.DB.QueryRow(context.Background(),
		"SELECT COUNT(*) FROM users WHERE email=$1", email).Scan(&exists)
	if exists > 0 {
		c.JSON(409, gin.H{"error": "Email is already registered."})
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(500, gin.H{"error": "Unable to register right now."})
		return
	}

	var userID, role string
	err = config.DB.QueryRow(context.Background(),
		`INSERT INTO users (email, password, full_name) VALUES ($1, $2, $3) RETURNING id, role`,
		email, hash, fullName).Scan(&userID, &role)
	if err != nil {
		if utils.IsUniqueViolation(err) {
			c.JSON(409, gin.H{"error": "Email is already registered."})
			return
		}
		log.Printf("[auth/register] %v", err)
		mapped := utils.MapStorageError(err)
		c.JSON(mapped.Status, gin.H{"error": mapped.Message})
		return
	}

	// Profile row is best-effort; registration succeeds without it.
	if _, err := config.DB.Exec(context.Background(),
		`INSERT INTO profiles (user_id, full_name) VALUES ($1, $2) ON CONFLICT (user_id) DO UPDATE SET full_name=$2`,
		userID, fullName); err != nil {
		log.Printf("[auth/register:profile_optional] %v", err)
	}

	token, err := utils.IssueToken(userID, email, role, fullName)
	if err != nil {
		c.JSON(500, gin.H{"error": "Unable to register right now."})
		return
	}
	utils.SetAuthCookie(c, token)

	libs.SendWelcomeAsync(email, fullName)

	c.JSON(201, gin.H{
		"message": "Registration successful.",
		"user":    userSummary(userID, email, fullName, role),
	})
}

// Login godoc
// @Summary User login
// @Description Login with email and password; sets the session cookie
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login Request"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /api/auth/login [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Email and password are required."})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var id, storedHash, role, fullName string
	err := config.DB.QueryRow(context.Background(),
		`SELECT id, password, role, COALESCE(full_name, '') FROM users WHERE email=$1`,
		email).Scan(&id, &storedHash, &role, &fullName)
	if err != nil {
		if utils.IsNotFound(err) {
			c.JSON(401, gin.H{"error": "Invalid email or password."})
			return
		}
		log.Printf("[auth/login] %v", err)
		mapped := utils.MapStorageError(err)
		c.JSON(mapped.Status, gin.H{"error": mapped.Message})
		return
	}

	if !utils.VerifyPassword(storedHash, req.Password) {
		c.JSON(401, gin.H{"error": "Invalid email or password."})
		return
	}

	token, err := utils.IssueToken(id, email, role, fullName)
	if err != nil {
		c.JSON(500, gin.H{"error": "Unable to login right now."})
		return
	}
	utils.SetAuthCookie(c, token)

	c.JSON(200, gin.H{
		"message": "Login successful.",
		"user":    userSummary(id, email, fullName, role),
	})
}

// Logout godoc
// @Summary Logout
// @Description Clear the session cookie
// @Tags Authentication
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/auth/logout [post]
func (ctrl *AuthController) Logout(c *gin.Context) {
	utils.ClearAuthCookie(c)
	c.JSON(200, gin.H{"message": "Logged out."})
}

// Me godoc
// @Summary Session probe
// @Description Report whether a valid session exists; never fails for anonymous callers
// @Tags Authentication
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/auth/me [get]
func (ctrl *AuthController) Me(c *gin.Context) {
	token, err := c.Cookie(utils.AuthCookieName)
	if err != nil || token == "" {
		c.JSON(200, gin.H{"authenticated": false})
		return
	}

	claims, err := utils.VerifyToken(token)
	if err != nil {
		c.JSON(200, gin.H{"authenticated": false})
		return
	}

	c.JSON(200, gin.H{
		"authenticated": true,
		"user":          userSummary(claims.Subject, claims.Email, claims.FullName, claims.Role),
	})
}
