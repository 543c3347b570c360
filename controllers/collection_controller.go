package controllers

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/gin-gonic/gin"

	"organicroots/config"
	"organicroots/models"
	"organicroots/utils"
)

type CollectionController struct{}

// GetCollections serves the storefront: all active collections, or one
// collection with its products when ?slug= is given.
func (ctrl *CollectionController) GetCollections(c *gin.Context) {
	if slug := c.Query("slug"); slug != "" {
		ctrl.getBySlug(c, slug)
		return
	}

	rows, err := config.DB.Query(context.Background(),
		`SELECT col.id, col.title, col.slug, COALESCE(col.description, ''), COALESCE(col.image_url, ''), col.created_at,
		        (SELECT COUNT(*) FROM collection_products cp WHERE cp.collection_id = col.id)
		 FROM collections col WHERE col.is_active = true ORDER BY col.created_at DESC`)
	if err != nil {
		failStorage(c, "GET /api/collections", err)
		return
	}
	defer rows.Close()

	collections := []gin.H{}
	for rows.Next() {
		var col models.Collection
		var count int
		if err := rows.Scan(&col.ID, &col.Title, &col.Slug, &col.Description, &col.ImageURL, &col.CreatedAt, &count); err != nil {
			continue
		}
		collections = append(collections, gin.H{
			"id":       col.ID,
			"title":    col.Title,
			"slug":     col.Slug,
			"imageUrl": col.ImageURL,
			"count":    count,
		})
	}

	c.JSON(200, gin.H{"collections": collections})
}

func (ctrl *CollectionController) getBySlug(c *gin.Context, slug string) {
	var col models.Collection
	err := config.DB.QueryRow(context.Background(),
		`SELECT id, title, slug, COALESCE(description, ''), COALESCE(image_url, ''), is_active, created_at
		 FROM collections WHERE slug = $1 AND is_active = true`, slug).
		Scan(&col.ID, &col.Title, &col.Slug, &col.Description, &col.ImageURL, &col.IsActive, &col.CreatedAt)
	if err != nil {
		if utils.IsNotFound(err) {
			c.JSON(404, gin.H{"error": "Collection not found"})
			return
		}
		failStorage(c, "GET /api/collections?slug", err)
		return
	}

	rows, err := config.DB.Query(context.Background(),
		productSelect+` JOIN collection_products cp ON cp.product_id = p.id WHERE cp.collection_id = $1`, col.ID)
	if err != nil {
		failStorage(c, "GET /api/collections?slug", err)
		return
	}
	defer rows.Close()

	products := []gin.H{}
	for rows.Next() {
		p, categoryName, err := scanProduct(rows)
		if err != nil {
			continue
		}
		products = append(products, storefrontProduct(p, categoryName))
	}

	c.JSON(200, gin.H{"collection": gin.H{
		"id":          col.ID,
		"title":       col.Title,
		"slug":        col.Slug,
		"description": col.Description,
		"imageUrl":    col.ImageURL,
		"products":    products,
	}})
}

func (ctrl *CollectionController) GetAdminCollections(c *gin.Context) {
	rows, err := config.DB.Query(context.Background(),
		`SELECT col.id, col.title, col.slug, COALESCE(col.description, ''), COALESCE(col.image_url, ''), col.is_active, col.created_at,
		        (SELECT COUNT(*) FROM collection_products cp WHERE cp.collection_id = col.id)
		 FROM collections col ORDER BY col.created_at DESC`)
	if err != nil {
		failStorage(c, "GET /api/admin/collections", err)
		return
	}
	defer rows.Close()

	collections := []gin.H{}
	for rows.Next() {
		var col models.Collection
		var count int
		if err := rows.Scan(&col.ID, &col.Title, &col.Slug, &col.Description, &col.ImageURL, &col.IsActive, &col.CreatedAt, &count); err != nil {
			continue
		}
		collections = append(collections, gin.H{
			"id":          col.ID,
			"title":       col.Title,
			"slug":        col.Slug,
			"description": col.Description,
			"imageUrl":    col.ImageURL,
			"isActive":    col.IsActive,
			"createdAt":   col.CreatedAt,
			"count":       count,
		})
	}

	c.JSON(200, gin.H{"collections": collections})
}

func parseProductIDs(raw string) []string {
	if raw == "" {
		return nil
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil
	}
	return ids
}

func (ctrl *CollectionController) CreateCollection(c *gin.Context) {
	title := strings.TrimSpace(c.PostForm("title"))
	if title == "" {
		c.JSON(400, gin.H{"error": "Title is required"})
		return
	}

	slug := strings.ToLower(c.PostForm("slug"))
	if slug == "" {
		slug = strings.ToLower(strings.ReplaceAll(title, " ", "-"))
	}
	description := c.PostForm("description")
	isActive := c.PostForm("isActive") == "true"
	productIDs := parseProductIDs(c.PostForm("productIds"))

	imageURL := ""
	if file, err := c.FormFile("file"); err == nil && file.Size > 0 {
		uploaded, err := utils.UploadImage(c, file, "collections")
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		imageURL = uploaded
	}

	ctx := context.Background()
	tx, err := config.DB.Begin(ctx)
	if err != nil {
		failStorage(c, "POST /api/admin/collections", err)
		return
	}
	defer tx.Rollback(ctx)

	var col models.Collection
	err = tx.QueryRow(ctx,
		`INSERT INTO collections (title, slug, description, image_url, is_active)
		 VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5) RETURNING id, created_at`,
		title, slug, description, imageURL, isActive).Scan(&col.ID, &col.CreatedAt)
	if err != nil {
		if utils.IsUniqueViolation(err) {
			c.JSON(409, gin.H{"error": "Slug already exists."})
			return
		}
		failStorage(c, "POST /api/admin/collections", err)
		return
	}

	for _, productID := range productIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO collection_products (collection_id, product_id) VALUES ($1, $2)`,
			col.ID, productID); err != nil {
			failStorage(c, "POST /api/admin/collections", err)
			return
		}
	}

	if err := tx.Commit(ctx); err != nil {
		failStorage(c, "POST /api/admin/collections", err)
		return
	}

	col.Title, col.Slug, col.Description, col.ImageURL, col.IsActive = title, slug, description, imageURL, isActive

	invalidateHomeCache()
	c.JSON(201, gin.H{"collection": col})
}

// UpdateCollection replaces the product associations atomically: the old
// rows are deleted and the new set inserted in one transaction, so a reader
// never observes a partial association set.
func (ctrl *CollectionController) UpdateCollection(c *gin.Context) {
	id := c.Param("id")

	imageURL := ""
	if file, err := c.FormFile("file"); err == nil && file.Size > 0 {
		uploaded, err := utils.UploadImage(c, file, "collections")
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		imageURL = uploaded
	}

	rawProductIDs := c.PostForm("productIds")
	productIDs := parseProductIDs(rawProductIDs)

	ctx := context.Background()
	tx, err := config.DB.Begin(ctx)
	if err != nil {
		failStorage(c, "PUT /api/admin/collections/:id", err)
		return
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE collections SET
		   title = COALESCE(NULLIF($1, ''), title),
		   slug = COALESCE(NULLIF($2, ''), slug),
		   description = COALESCE(NULLIF($3, ''), description),
		   is_active = $4,
		   image_url = COALESCE(NULLIF($5, ''), image_url)
		 WHERE id = $6`,
		strings.TrimSpace(c.PostForm("title")), strings.ToLower(c.PostForm("slug")),
		c.PostForm("description"), c.PostForm("isActive") == "true", imageURL, id)
	if err != nil {
		failStorage(c, "PUT /api/admin/collections/:id", err)
		return
	}
	if tag.RowsAffected() == 0 {
		c.JSON(404, gin.H{"error": "Collection not found"})
		return
	}

	if rawProductIDs != "" {
		if _, err := tx.Exec(ctx,
			`DELETE FROM collection_products WHERE collection_id = $1`, id); err != nil {
			failStorage(c, "PUT /api/admin/collections/:id", err)
			return
		}
		for _, productID := range productIDs {
			if _, err := tx.Exec(ctx,
				`INSERT INTO collection_products (collection_id, product_id) VALUES ($1, $2)`,
				id, productID); err != nil {
				failStorage(c, "PUT /api/admin/collections/:id", err)
				return
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		failStorage(c, "PUT /api/admin/collections/:id", err)
		return
	}

	invalidateHomeCache()
	c.JSON(200, gin.H{"message": "Collection updated successfully"})
}

func (ctrl *CollectionController) DeleteCollection(c *gin.Context) {
	id := c.Param("id")

	tag, err := config.DB.Exec(context.Background(), "DELETE FROM collections WHERE id=$1", id)
	if err != nil {
		failStorage(c, "DELETE /api/admin/collections/:id", err)
		return
	}
	if tag.RowsAffected() == 0 {
		c.JSON(404, gin.H{"error": "Collection not found"})
		return
	}

	invalidateHomeCache()
	c.JSON(200, gin.H{"message": "Collection deleted successfully"})
}
