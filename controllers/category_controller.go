package controllers

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"organicroots/config"
	"organicroots/models"
	"organicroots/utils"
)

type CategoryController struct{}

// GetCategories godoc
// @Summary List categories for the storefront
// @Tags Categories
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/categories [get]
func (ctrl *CategoryController) GetCategories(c *gin.Context) {
	rows, err := config.DB.Query(context.Background(),
		`SELECT c.id, c.name, COALESCE(c.image_url, ''),
		        (SELECT COUNT(*) FROM products p WHERE p.category_id = c.id)
		 FROM categories c
		 WHERE c.is_visible = true
		 ORDER BY c.priority ASC, c.created_at DESC`)
	if err != nil {
		failStorage(c, "GET /api/categories", err)
		return
	}
	defer rows.Close()

	categories := []gin.H{}
	for rows.Next() {
		var id, name, imageURL string
		var productCount int
		if err := rows.Scan(&id, &name, &imageURL, &productCount); err != nil {
			continue
		}
		categories = append(categories, gin.H{
			"id":    id,
			"name":  name,
			"count": fmt.Sprintf("%d Selections", productCount),
			"image": imageURL,
		})
	}

	c.JSON(200, gin.H{"categories": categories})
}

// GetAdminCategories returns the raw records for the console, priority order.
func (ctrl *CategoryController) GetAdminCategories(c *gin.Context) {
	rows, err := config.DB.Query(context.Background(),
		`SELECT id, name, COALESCE(image_url, ''), COALESCE(accent_color, ''), priority, is_visible, created_at
		 FROM categories ORDER BY priority ASC`)
	if err != nil {
		failStorage(c, "GET /api/admin/categories", err)
		return
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var cat models.Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.ImageURL, &cat.AccentColor, &cat.Priority, &cat.IsVisible, &cat.CreatedAt); err != nil {
			continue
		}
		categories = append(categories, cat)
	}

	c.JSON(200, gin.H{"categories": categories})
}

func (ctrl *CategoryController) CreateCategory(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("name"))
	if name == "" {
		c.JSON(400, gin.H{"error": "Name is required"})
		return
	}

	accentColor := c.PostForm("accentColor")
	priority, _ := strconv.Atoi(c.PostForm("priority"))
	isVisible := c.PostForm("isVisible") == "true"

	imageURL := ""
	if file, err := c.FormFile("file"); err == nil && file.Size > 0 {
		uploaded, err := utils.UploadImage(c, file, "categories")
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		imageURL = uploaded
	}

	var cat models.Category
	err := config.DB.QueryRow(context.Background(),
		`INSERT INTO categories (name, image_url, accent_color, priority, is_visible)
		 VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), $4, $5)
		 RETURNING id, created_at`,
		name, imageURL, accentColor, priority, isVisible).Scan(&cat.ID, &cat.CreatedAt)
	if err != nil {
		failStorage(c, "POST /api/admin/categories", err)
		return
	}

	cat.Name = name
	cat.ImageURL = imageURL
	cat.AccentColor = accentColor
	cat.Priority = priority
	cat.IsVisible = isVisible

	invalidateHomeCache()
	c.JSON(201, gin.H{"category": cat})
}

func (ctrl *CategoryController) UpdateCategory(c *gin.Context) {
	id := c.Param("id")

	var oldImageURL string
	err := config.DB.QueryRow(context.Background(),
		"SELECT COALESCE(image_url, '') FROM categories WHERE id=$1", id).Scan(&oldImageURL)
	if err != nil {
		if utils.IsNotFound(err) {
			c.JSON(404, gin.H{"error": "Category not found"})
			return
		}
		failStorage(c, "PUT /api/admin/categories/:id", err)
		return
	}

	name := strings.TrimSpace(c.PostForm("name"))
	accentColor := c.PostForm("accentColor")

	imageURL := ""
	if file, err := c.FormFile("file"); err == nil && file.Size > 0 {
		uploaded, err := utils.UploadImage(c, file, "categories")
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		imageURL = uploaded
	}

	_, err = config.DB.Exec(context.Background(),
		`UPDATE categories SET
		   name = COALESCE(NULLIF($1, ''), name),
		   accent_color = COALESCE(NULLIF($2, ''), accent_color),
		   priority = COALESCE($3, priority),
		   is_visible = COALESCE($4, is_visible),
		   image_url = COALESCE(NULLIF($5, ''), image_url)
		 WHERE id = $6`,
		name, accentColor, formInt(c, "priority"), formBool(c, "isVisible"), imageURL, id)
	if err != nil {
		failStorage(c, "PUT /api/admin/categories/:id", err)
		return
	}

	if imageURL != "" && oldImageURL != "" && oldImageURL != imageURL {
		if err := utils.DeleteUpload(oldImageURL); err != nil {
			log.Printf("[PUT /api/admin/categories/:id] removing replaced image: %v", err)
		}
	}

	invalidateHomeCache()
	c.JSON(200, gin.H{"message": "Category updated successfully"})
}

func (ctrl *CategoryController) DeleteCategory(c *gin.Context) {
	id := c.Param("id")

	tag, err := config.DB.Exec(context.Background(), "DELETE FROM categories WHERE id=$1", id)
	if err != nil {
		failStorage(c, "DELETE /api/admin/categories/:id", err)
		return
	}
	if tag.RowsAffected() == 0 {
		c.JSON(404, gin.H{"error": "Category not found"})
		return
	}

	invalidateHomeCache()
	c.JSON(200, gin.H{"message": "Category deleted successfully"})
}
