package controllers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"organicroots/config"
	"organicroots/models"
	"organicroots/pricing"
)

type FlashSaleController struct{}

func queryFlashSales(ctx context.Context, where string) ([]models.FlashSale, error) {
	rows, err := config.DB.Query(ctx,
		`SELECT id, title, COALESCE(subtitle, ''), expires_at, is_active, created_at
		 FROM flash_sales `+where+` ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sales := []models.FlashSale{}
	for rows.Next() {
		var s models.FlashSale
		if err := rows.Scan(&s.ID, &s.Title, &s.Subtitle, &s.ExpiresAt, &s.IsActive, &s.CreatedAt); err != nil {
			continue
		}
		sales = append(sales, s)
	}
	return sales, rows.Err()
}

// loadFlashSaleLines joins each line against the live catalog so the
// displayed original price tracks the product's current price, not a
// snapshot taken when the line was created.
func loadFlashSaleLines(ctx context.Context, flashSaleID string) ([]models.FlashSaleProduct, error) {
	rows, err := config.DB.Query(ctx,
		`SELECT fsp.id, fsp.flash_sale_id, fsp.product_id, fsp.price, fsp.discount,
		        p.name, p.price, COALESCE(p.image_url, ''), COALESCE(p.weight, ''), COALESCE(c.name, 'Uncategorized')
		 FROM flash_sale_products fsp
		 JOIN products p ON p.id = fsp.product_id
		 LEFT JOIN categories c ON c.id = p.category_id
		 WHERE fsp.flash_sale_id = $1`, flashSaleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := []models.FlashSaleProduct{}
	for rows.Next() {
		var line models.FlashSaleProduct
		if err := rows.Scan(&line.ID, &line.FlashSaleID, &line.ProductID, &line.Price, &line.Discount,
			&line.ProductName, &line.ProductPrice, &line.ProductImageURL, &line.ProductWeight, &line.ProductCategory); err != nil {
			continue
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

func flashSaleLinePayload(line models.FlashSaleProduct) gin.H {
	display := pricing.ComputeLineDisplay(line.ProductPrice, line)
	return gin.H{
		"productId": line.ProductID,
		"price":     display.SalePrice,
		"discount":  display.DiscountPercent,
		"product": gin.H{
			"id":       line.ProductID,
			"name":     line.ProductName,
			"price":    display.OriginalPrice,
			"imageUrl": line.ProductImageURL,
			"weight":   line.ProductWeight,
			"category": gin.H{"name": line.ProductCategory},
		},
	}
}

// GetActiveFlashSale godoc
// @Summary Current flash sale
// @Description The single effective flash sale: active, unexpired, most recently created
// @Tags FlashSales
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/flash-sale [get]
func (ctrl *FlashSaleController) GetActiveFlashSale(c *gin.Context) {
	ctx := context.Background()

	sales, err := queryFlashSales(ctx, "WHERE is_active = true")
	if err != nil {
		failStorage(c, "GET /api/flash-sale", err)
		return
	}

	winner := pricing.SelectEffectiveFlashSale(sales, time.Now())
	if winner == nil {
		c.JSON(200, gin.H{"flashSale": nil})
		return
	}

	lines, err := loadFlashSaleLines(ctx, winner.ID)
	if err != nil {
		failStorage(c, "GET /api/flash-sale", err)
		return
	}

	products := []gin.H{}
	for _, line := range lines {
		products = append(products, flashSaleLinePayload(line))
	}

	c.JSON(200, gin.H{"flashSale": gin.H{
		"id":        winner.ID,
		"title":     winner.Title,
		"subtitle":  winner.Subtitle,
		"expiresAt": winner.ExpiresAt,
		"products":  products,
	}})
}

func (ctrl *FlashSaleController) GetAdminFlashSales(c *gin.Context) {
	ctx := context.Background()

	sales, err := queryFlashSales(ctx, "")
	if err != nil {
		failStorage(c, "GET /api/admin/flash-sales", err)
		return
	}

	payload := []gin.H{}
	for _, sale := range sales {
		lines, err := loadFlashSaleLines(ctx, sale.ID)
		if err != nil {
			failStorage(c, "GET /api/admin/flash-sales", err)
			return
		}
		products := []gin.H{}
		for _, line := range lines {
			products = append(products, flashSaleLinePayload(line))
		}
		payload = append(payload, gin.H{
			"id":        sale.ID,
			"title":     sale.Title,
			"subtitle":  sale.Subtitle,
			"expiresAt": sale.ExpiresAt,
			"isActive":  sale.IsActive,
			"createdAt": sale.CreatedAt,
			"products":  products,
		})
	}

	c.JSON(200, gin.H{"flashSales": payload})
}

// CreateFlashSale persists price and discount exactly as submitted; the
// admin UI keeps the pair consistent via the tie-break math in pricing,
// the server does not re-derive either field.
func (ctrl *FlashSaleController) CreateFlashSale(c *gin.Context) {
	var req models.CreateFlashSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Title, expiry date, and products are required."})
		return
	}

	expiresAt, err := time.Parse(time.RFC3339, req.ExpiresAt)
	if err != nil {
		c.JSON(400, gin.H{"error": "expiresAt must be an RFC3339 timestamp."})
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	ctx := context.Background()
	tx, err := config.DB.Begin(ctx)
	if err != nil {
		failStorage(c, "POST /api/admin/flash-sales", err)
		return
	}
	defer tx.Rollback(ctx)

	var saleID string
	err = tx.QueryRow(ctx,
		`INSERT INTO flash_sales (title, subtitle, expires_at, is_active)
		 VALUES ($1, NULLIF($2, ''), $3, $4) RETURNING id`,
		req.Title, req.Subtitle, expiresAt, isActive).Scan(&saleID)
	if err != nil {
		failStorage(c, "POST /api/admin/flash-sales", err)
		return
	}

	for _, line := range req.Products {
		if _, err := tx.Exec(ctx,
			`INSERT INTO flash_sale_products (flash_sale_id, product_id, price, discount)
			 VALUES ($1, $2, $3, $4)`,
			saleID, line.ProductID, line.Price, line.Discount); err != nil {
			failStorage(c, "POST /api/admin/flash-sales", err)
			return
		}
	}

	if err := tx.Commit(ctx); err != nil {
		failStorage(c, "POST /api/admin/flash-sales", err)
		return
	}

	invalidateHomeCache()
	c.JSON(201, gin.H{"message": "Flash sale created successfully", "flashSale": gin.H{"id": saleID}})
}

// UpdateFlashSale syncs the line set atomically when products are provided:
// delete-then-recreate inside one transaction.
func (ctrl *FlashSaleController) UpdateFlashSale(c *gin.Context) {
	id := c.Param("id")

	var req models.UpdateFlashSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body."})
		return
	}

	var expiresAt *time.Time
	if req.ExpiresAt != "" {
		parsed, err := time.Parse(time.RFC3339, req.ExpiresAt)
		if err != nil {
			c.JSON(400, gin.H{"error": "expiresAt must be an RFC3339 timestamp."})
			return
		}
		expiresAt = &parsed
	}

	ctx := context.Background()
	tx, err := config.DB.Begin(ctx)
	if err != nil {
		failStorage(c, "PUT /api/admin/flash-sales/:id", err)
		return
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE flash_sales SET
		   title = COALESCE(NULLIF($1, ''), title),
		   subtitle = COALESCE(NULLIF($2, ''), subtitle),
		   expires_at = COALESCE($3, expires_at),
		   is_active = COALESCE($4, is_active)
		 WHERE id = $5`,
		req.Title, req.Subtitle, expiresAt, req.IsActive, id)
	if err != nil {
		failStorage(c, "PUT /api/admin/flash-sales/:id", err)
		return
	}
	if tag.RowsAffected() == 0 {
		c.JSON(404, gin.H{"error": "Flash sale not found"})
		return
	}

	if req.Products != nil {
		if _, err := tx.Exec(ctx,
			`DELETE FROM flash_sale_products WHERE flash_sale_id = $1`, id); err != nil {
			failStorage(c, "PUT /api/admin/flash-sales/:id", err)
			return
		}
		for _, line := range req.Products {
			if _, err := tx.Exec(ctx,
				`INSERT INTO flash_sale_products (flash_sale_id, product_id, price, discount)
				 VALUES ($1, $2, $3, $4)`,
				id, line.ProductID, line.Price, line.Discount); err != nil {
				failStorage(c, "PUT /api/admin/flash-sales/:id", err)
				return
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		failStorage(c, "PUT /api/admin/flash-sales/:id", err)
		return
	}

	invalidateHomeCache()
	c.JSON(200, gin.H{"message": "Flash sale updated successfully"})
}

func (ctrl *FlashSaleController) DeleteFlashSale(c *gin.Context) {
	id := c.Param("id")

	tag, err := config.DB.Exec(context.Background(), "DELETE FROM flash_sales WHERE id=$1", id)
	if err != nil {
		failStorage(c, "DELETE /api/admin/flash-sales/:id", err)
		return
	}
	if tag.RowsAffected() == 0 {
		c.JSON(404, gin.H{"error": "Flash sale not found"})
		return
	}

	invalidateHomeCache()
	c.JSON(200, gin.H{"message": "Flash sale deleted successfully"})
}
