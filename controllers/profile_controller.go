package controllers

import (
	"context"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"organicroots/config"
	"organicroots/models"
	"organicroots/utils"
)

type ProfileController struct{}

// GetProfile godoc
// @Summary Get current user profile
// @Tags Profile
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/profile [get]
func (ctrl *ProfileController) GetProfile(c *gin.Context) {
	userID := c.GetString("user_id")

	var email, role, fullName, avatarURL string
	err := config.DB.QueryRow(context.Background(),
		`SELECT u.email, u.role, COALESCE(u.full_name, ''), COALESCE(p.avatar_url, '')
		 FROM users u LEFT JOIN profiles p ON p.user_id = u.id
		 WHERE u.id = $1`, userID).Scan(&email, &role, &fullName, &avatarURL)
	if err != nil {
		if utils.IsNotFound(err) {
			c.JSON(404, gin.H{"error": "User not found."})
			return
		}
		log.Printf("[GET /api/profile] %v", err)
		mapped := utils.MapStorageError(err)
		c.JSON(mapped.Status, gin.H{"error": mapped.Message})
		return
	}

	c.JSON(200, gin.H{"user": gin.H{
		"id":        userID,
		"email":     email,
		"role":      role,
		"fullName":  fullName,
		"avatarUrl": avatarURL,
	}})
}

// UpdateProfile godoc
// @Summary Update profile
// @Tags Profile
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/profile [patch]
func (ctrl *ProfileController) UpdateProfile(c *gin.Context) {
	userID := c.GetString("user_id")

	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body."})
		return
	}

	fullName := strings.TrimSpace(req.FullName)
	avatarURL := strings.TrimSpace(req.AvatarURL)

	tx, err := config.DB.Begin(context.Background())
	if err != nil {
		mapped := utils.MapStorageError(err)
		c.JSON(mapped.Status, gin.H{"error": mapped.Message})
		return
	}
	defer tx.Rollback(context.Background())

	if _, err := tx.Exec(context.Background(),
		`UPDATE users SET full_name=$1, updated_at=now() WHERE id=$2`, fullName, userID); err != nil {
		log.Printf("[PATCH /api/profile] %v", err)
		mapped := utils.MapStorageError(err)
		c.JSON(mapped.Status, gin.H{"error": mapped.Message})
		return
	}

	if _, err := tx.Exec(context.Background(),
		`INSERT INTO profiles (user_id, full_name, avatar_url) VALUES ($1, $2, $3)
		 ON CONFLICT (user_id) DO UPDATE SET full_name=$2, avatar_url=$3`,
		userID, fullName, avatarURL); err != nil {
		log.Printf("[PATCH /api/profile] %v", err)
		mapped := utils.MapStorageError(err)
		c.JSON(mapped.Status, gin.H{"error": mapped.Message})
		return
	}

	if err := tx.Commit(context.Background()); err != nil {
		mapped := utils.MapStorageError(err)
		c.JSON(mapped.Status, gin.H{"error": mapped.Message})
		return
	}

	c.JSON(200, gin.H{
		"message": "Profile updated.",
		"user": gin.H{
			"id":        userID,
			"email":     c.GetString("user_email"),
			"role":      c.GetString("user_role"),
			"fullName":  fullName,
			"avatarUrl": avatarURL,
		},
	})
}
