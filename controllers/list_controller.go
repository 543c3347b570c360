package controllers

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"organicroots/config"
	"organicroots/models"
	"organicroots/utils"
)

type ListController struct{}

// GetList returns the user's saved items, newest first. Items are snapshots
// taken at bookmark time, so later catalog edits do not show up here.
func (ctrl *ListController) GetList(c *gin.Context) {
	userID := c.GetString("user_id")

	rows, err := config.DB.Query(context.Background(),
		`SELECT id, name, COALESCE(price, ''), COALESCE(image, ''), COALESCE(category, ''), created_at
		 FROM user_list_items WHERE user_id=$1 ORDER BY created_at DESC`, userID)
	if err != nil {
		log.Printf("[GET /api/list] %v", err)
		mapped := utils.MapStorageError(err)
		c.JSON(mapped.Status, gin.H{"error": mapped.Message})
		return
	}
	defer rows.Close()

	items := []models.UserListItem{}
	for rows.Next() {
		item := models.UserListItem{UserID: userID}
		var createdAt time.Time
		if err := rows.Scan(&item.ID, &item.Name, &item.Price, &item.Image, &item.Category, &createdAt); err != nil {
			continue
		}
		item.CreatedAt = createdAt
		items = append(items, item)
	}

	c.JSON(200, gin.H{"items": items})
}

// AddListItem stores a denormalized snapshot of a product.
func (ctrl *ListController) AddListItem(c *gin.Context) {
	userID := c.GetString("user_id")

	var req models.AddListItemRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		c.JSON(400, gin.H{"error": "Product name is required."})
		return
	}

	item := models.UserListItem{
		UserID:   userID,
		Name:     strings.TrimSpace(req.Name),
		Price:    strings.TrimSpace(req.Price),
		Image:    strings.TrimSpace(req.Image),
		Category: strings.TrimSpace(req.Category),
	}

	err := config.DB.QueryRow(context.Background(),
		`INSERT INTO user_list_items (user_id, name, price, image, category)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`,
		userID, item.Name, item.Price, item.Image, item.Category).Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		log.Printf("[POST /api/list] %v", err)
		mapped := utils.MapStorageError(err)
		c.JSON(mapped.Status, gin.H{"error": mapped.Message})
		return
	}

	c.JSON(201, gin.H{"message": "Added to list.", "item": item})
}
