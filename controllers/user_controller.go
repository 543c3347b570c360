package controllers

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"organicroots/config"
	"organicroots/models"
	"organicroots/utils"
)

type UserController struct{}

func (ctrl *UserController) GetAllUsers(c *gin.Context) {
	rows, err := config.DB.Query(context.Background(),
		`SELECT u.id, u.email, u.role, COALESCE(u.full_name, ''), COALESCE(p.avatar_url, ''), u.created_at
		 FROM users u LEFT JOIN profiles p ON p.user_id = u.id
		 ORDER BY u.created_at DESC`)
	if err != nil {
		failStorage(c, "GET /api/admin/users", err)
		return
	}
	defer rows.Close()

	users := []gin.H{}
	for rows.Next() {
		var id, email, role, fullName, avatarURL string
		var createdAt time.Time
		if err := rows.Scan(&id, &email, &role, &fullName, &avatarURL, &createdAt); err != nil {
			continue
		}
		users = append(users, gin.H{
			"id":        id,
			"email":     email,
			"role":      role,
			"fullName":  fullName,
			"avatarUrl": avatarURL,
			"createdAt": createdAt,
		})
	}

	c.JSON(200, gin.H{"users": users})
}

func (ctrl *UserController) CreateUser(c *gin.Context) {
	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Email, role, and password are required."})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var exists int
	config.DB.QueryRow(context.Background(),
		"SELECT COUNT(*) FROM users WHERE email=$1", email).Scan(&exists)
	if exists > 0 {
		c.JSON(409, gin.H{"error": "User with this email already exists."})
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to create user"})
		return
	}

	var userID string
	err = config.DB.QueryRow(context.Background(),
		`INSERT INTO users (email, password, role, full_name) VALUES ($1, $2, $3, $4) RETURNING id`,
		email, hash, req.Role, req.FullName).Scan(&userID)
	if err != nil {
		if utils.IsUniqueViolation(err) {
			c.JSON(409, gin.H{"error": "User with this email already exists."})
			return
		}
		failStorage(c, "POST /api/admin/users", err)
		return
	}

	config.DB.Exec(context.Background(),
		`INSERT INTO profiles (user_id, full_name) VALUES ($1, $2) ON CONFLICT (user_id) DO NOTHING`,
		userID, req.FullName)

	c.JSON(201, gin.H{
		"message": "User created successfully.",
		"user":    gin.H{"id": userID, "email": email, "role": req.Role},
	})
}

func (ctrl *UserController) UpdateUser(c *gin.Context) {
	id := c.Param("id")

	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body."})
		return
	}

	passwordHash := ""
	if req.Password != "" {
		hash, err := utils.HashPassword(req.Password)
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to update user"})
			return
		}
		passwordHash = hash
	}

	tag, err := config.DB.Exec(context.Background(),
		`UPDATE users SET
		   email = COALESCE(NULLIF($1, ''), email),
		   role = COALESCE(NULLIF($2, ''), role),
		   full_name = COALESCE(NULLIF($3, ''), full_name),
		   password = COALESCE(NULLIF($4, ''), password),
		   updated_at = now()
		 WHERE id = $5`,
		strings.ToLower(strings.TrimSpace(req.Email)), req.Role, req.FullName, passwordHash, id)
	if err != nil {
		if utils.IsUniqueViolation(err) {
			c.JSON(409, gin.H{"error": "User with this email already exists."})
			return
		}
		failStorage(c, "PUT /api/admin/users/:id", err)
		return
	}
	if tag.RowsAffected() == 0 {
		c.JSON(404, gin.H{"error": "User not found"})
		return
	}

	if req.FullName != "" {
		config.DB.Exec(context.Background(),
			`UPDATE profiles SET full_name=$1 WHERE user_id=$2`, req.FullName, id)
	}

	c.JSON(200, gin.H{"message": "User updated successfully"})
}

func (ctrl *UserController) DeleteUser(c *gin.Context) {
	id := c.Param("id")

	tag, err := config.DB.Exec(context.Background(), "DELETE FROM users WHERE id=$1", id)
	if err != nil {
		failStorage(c, "DELETE /api/admin/users/:id", err)
		return
	}
	if tag.RowsAffected() == 0 {
		c.JSON(404, gin.H{"error": "User not found"})
		return
	}

	c.JSON(200, gin.H{"message": "User deleted successfully"})
}
