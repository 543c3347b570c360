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
	"organicroots/pricing"
	"organicroots/utils"
)

type ProductController struct{}

const productSelect = `SELECT p.id, p.name, p.sku, p.category_id, COALESCE(p.brand, ''),
	p.price, p.stock, COALESCE(p.weight, ''), COALESCE(p.image_url, ''), p.status,
	p.is_featured, p.is_weekly_special, p.created_at, p.updated_at, COALESCE(c.name, 'Uncategorized')
	FROM products p LEFT JOIN categories c ON c.id = p.category_id`

func scanProduct(row interface{ Scan(...any) error }) (models.Product, string, error) {
	var p models.Product
	var categoryName string
	err := row.Scan(&p.ID, &p.Name, &p.SKU, &p.CategoryID, &p.Brand, &p.Price, &p.Stock,
		&p.Weight, &p.ImageURL, &p.Status, &p.IsFeatured, &p.IsWeeklySpecial,
		&p.CreatedAt, &p.UpdatedAt, &categoryName)
	return p, categoryName, err
}

// GetProducts godoc
// @Summary List active products for the storefront
// @Tags Products
// @Produce json
// @Param type query string false "Filter by type" Enums(featured, weekly)
// @Success 200 {object} map[string]interface{}
// @Router /api/products [get]
func (ctrl *ProductController) GetProducts(c *gin.Context) {
	query := productSelect + ` WHERE p.status = 'active'`
	switch c.Query("type") {
	case "featured":
		query += " AND p.is_featured = true"
	case "weekly":
		query += " AND p.is_weekly_special = true"
	}

	rows, err := config.DB.Query(context.Background(), query)
	if err != nil {
		failStorage(c, "GET /api/products", err)
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

	c.JSON(200, gin.H{"products": products})
}

// storefrontProduct is the public shape: price as a display string, weight
// defaulted, plus the shared stock classification.
func storefrontProduct(p models.Product, categoryName string) gin.H {
	weight := p.Weight
	if weight == "" {
		weight = "1000gm"
	}
	return gin.H{
		"id":              p.ID,
		"name":            p.Name,
		"category":        categoryName,
		"price":           fmt.Sprintf("$%.2f", p.Price),
		"image":           p.ImageURL,
		"weight":          weight,
		"isFeatured":      p.IsFeatured,
		"isWeeklySpecial": p.IsWeeklySpecial,
		"status":          p.Status,
		"stockStatus":     pricing.StockStatus(p.Stock),
	}
}

// GetAdminProducts filters by category, stock status, and a name/SKU search.
// The stock buckets must match pricing.StockStatus exactly.
func (ctrl *ProductController) GetAdminProducts(c *gin.Context) {
	query := productSelect
	conditions := []string{}
	args := []any{}

	if categoryID := c.Query("categoryId"); categoryID != "" && categoryID != "all" {
		args = append(args, categoryID)
		conditions = append(conditions, fmt.Sprintf("p.category_id = $%d", len(args)))
	}

	switch c.Query("stockStatus") {
	case pricing.StockIn:
		conditions = append(conditions, "p.stock > 10")
	case pricing.StockLow:
		conditions = append(conditions, "p.stock <= 10 AND p.stock > 0")
	case pricing.StockOut:
		conditions = append(conditions, "p.stock = 0")
	}

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		args = append(args, "%"+search+"%")
		conditions = append(conditions, fmt.Sprintf("(p.name ILIKE $%d OR p.sku ILIKE $%d)", len(args), len(args)))
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY p.created_at DESC"

	rows, err := config.DB.Query(context.Background(), query, args...)
	if err != nil {
		failStorage(c, "GET /api/admin/products", err)
		return
	}
	defer rows.Close()

	products := []gin.H{}
	for rows.Next() {
		p, categoryName, err := scanProduct(rows)
		if err != nil {
			continue
		}
		products = append(products, gin.H{
			"id":              p.ID,
			"name":            p.Name,
			"sku":             p.SKU,
			"categoryId":      p.CategoryID,
			"category":        gin.H{"name": categoryName},
			"brand":           p.Brand,
			"price":           p.Price,
			"stock":           p.Stock,
			"stockStatus":     pricing.StockStatus(p.Stock),
			"weight":          p.Weight,
			"imageUrl":        p.ImageURL,
			"status":          p.Status,
			"isFeatured":      p.IsFeatured,
			"isWeeklySpecial": p.IsWeeklySpecial,
			"createdAt":       p.CreatedAt,
		})
	}

	c.JSON(200, gin.H{"products": products})
}

func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("name"))
	sku := strings.TrimSpace(c.PostForm("sku"))
	categoryID := c.PostForm("categoryId")

	if name == "" || sku == "" || categoryID == "" {
		c.JSON(400, gin.H{"error": "Name, SKU, and Category are required."})
		return
	}

	var skuTaken int
	config.DB.QueryRow(context.Background(),
		"SELECT COUNT(*) FROM products WHERE sku=$1", sku).Scan(&skuTaken)
	if skuTaken > 0 {
		c.JSON(409, gin.H{"error": "SKU already exists."})
		return
	}

	price, _ := strconv.ParseFloat(c.PostForm("price"), 64)
	stock, _ := strconv.Atoi(c.PostForm("stock"))
	brand := c.PostForm("brand")
	weight := c.PostForm("weight")
	status := c.PostForm("status")
	if status == "" {
		status = "active"
	}
	isFeatured := c.PostForm("isFeatured") == "true"
	isWeeklySpecial := c.PostForm("isWeeklySpecial") == "true"

	// File lands on durable storage before the row exists; a crash in
	// between leaves an orphaned file, which is accepted.
	imageURL := ""
	if file, err := c.FormFile("file"); err == nil && file.Size > 0 {
		uploaded, err := utils.UploadImage(c, file, "products")
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		imageURL = uploaded
	}

	var p models.Product
	err := config.DB.QueryRow(context.Background(),
		`INSERT INTO products (name, sku, category_id, brand, price, stock, weight, image_url, status, is_featured, is_weekly_special)
		 VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, NULLIF($7, ''), NULLIF($8, ''), $9, $10, $11)
		 RETURNING id, created_at, updated_at`,
		name, sku, categoryID, brand, price, stock, weight, imageURL, status, isFeatured, isWeeklySpecial,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if utils.IsUniqueViolation(err) {
			c.JSON(409, gin.H{"error": "SKU already exists."})
			return
		}
		failStorage(c, "POST /api/admin/products", err)
		return
	}

	p.Name, p.SKU, p.CategoryID, p.Brand = name, sku, categoryID, brand
	p.Price, p.Stock, p.Weight, p.ImageURL = price, stock, weight, imageURL
	p.Status, p.IsFeatured, p.IsWeeklySpecial = status, isFeatured, isWeeklySpecial

	invalidateHomeCache()
	c.JSON(201, gin.H{"product": p})
}

func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	id := c.Param("id")

	var oldImageURL string
	err := config.DB.QueryRow(context.Background(),
		"SELECT COALESCE(image_url, '') FROM products WHERE id=$1", id).Scan(&oldImageURL)
	if err != nil {
		if utils.IsNotFound(err) {
			c.JSON(404, gin.H{"error": "Product not found"})
			return
		}
		failStorage(c, "PUT /api/admin/products/:id", err)
		return
	}

	imageURL := ""
	if file, err := c.FormFile("file"); err == nil && file.Size > 0 {
		uploaded, err := utils.UploadImage(c, file, "products")
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		imageURL = uploaded
	}

	_, err = config.DB.Exec(context.Background(),
		`UPDATE products SET
		   name = COALESCE(NULLIF($1, ''), name),
		   sku = COALESCE(NULLIF($2, ''), sku),
		   category_id = COALESCE(NULLIF($3, '')::uuid, category_id),
		   brand = COALESCE(NULLIF($4, ''), brand),
		   price = COALESCE(NULLIF($5, '')::numeric, price),
		   stock = COALESCE(NULLIF($6, '')::int, stock),
		   weight = COALESCE(NULLIF($7, ''), weight),
		   status = COALESCE(NULLIF($8, ''), status),
		   is_featured = COALESCE($9, is_featured),
		   is_weekly_special = COALESCE($10, is_weekly_special),
		   image_url = COALESCE(NULLIF($11, ''), image_url),
		   updated_at = now()
		 WHERE id = $12`,
		strings.TrimSpace(c.PostForm("name")), strings.TrimSpace(c.PostForm("sku")),
		c.PostForm("categoryId"), c.PostForm("brand"),
		c.PostForm("price"), c.PostForm("stock"),
		c.PostForm("weight"), c.PostForm("status"),
		formBool(c, "isFeatured"), formBool(c, "isWeeklySpecial"),
		imageURL, id)
	if err != nil {
		if utils.IsUniqueViolation(err) {
			c.JSON(409, gin.H{"error": "SKU already exists."})
			return
		}
		failStorage(c, "PUT /api/admin/products/:id", err)
		return
	}

	if imageURL != "" && oldImageURL != "" && oldImageURL != imageURL {
		if err := utils.DeleteUpload(oldImageURL); err != nil {
			log.Printf("[PUT /api/admin/products/:id] removing replaced image: %v", err)
		}
	}

	invalidateHomeCache()
	c.JSON(200, gin.H{"message": "Product updated successfully"})
}

func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	id := c.Param("id")

	tag, err := config.DB.Exec(context.Background(), "DELETE FROM products WHERE id=$1", id)
	if err != nil {
		failStorage(c, "DELETE /api/admin/products/:id", err)
		return
	}
	if tag.RowsAffected() == 0 {
		c.JSON(404, gin.H{"error": "Product not found"})
		return
	}

	invalidateHomeCache()
	c.JSON(200, gin.H{"message": "Product deleted successfully"})
}
