package controllers

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"organicroots/config"
	"organicroots/models"
	"organicroots/pricing"
)

type OfferController struct{}

const offerSelect = `SELECT id, title, type, is_active,
	trigger_product_id, trigger_quantity, reward_product_id, reward_quantity,
	discount_value, discount_type, threshold_weight, threshold_value, savings_amount,
	expires_at, created_at FROM offers`

func scanOffers(ctx context.Context, where string, args ...any) ([]models.Offer, error) {
	rows, err := config.DB.Query(ctx, offerSelect+where, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	offers := []models.Offer{}
	for rows.Next() {
		var o models.Offer
		if err := rows.Scan(&o.ID, &o.Title, &o.Type, &o.IsActive,
			&o.TriggerProductID, &o.TriggerQuantity, &o.RewardProductID, &o.RewardQuantity,
			&o.DiscountValue, &o.DiscountType, &o.ThresholdWeight, &o.ThresholdValue, &o.SavingsAmount,
			&o.ExpiresAt, &o.CreatedAt); err != nil {
			continue
		}
		offers = append(offers, o)
	}
	return offers, rows.Err()
}

// GetActiveOffers godoc
// @Summary Active standing offers
// @Tags Offers
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/offers [get]
func (ctrl *OfferController) GetActiveOffers(c *gin.Context) {
	offers, err := scanOffers(context.Background(),
		` WHERE is_active = true AND (expires_at IS NULL OR expires_at > now()) ORDER BY created_at DESC`)
	if err != nil {
		failStorage(c, "GET /api/offers", err)
		return
	}
	c.JSON(200, gin.H{"offers": offers})
}

// EvaluateCart godoc
// @Summary Evaluate standing offers against a cart
// @Description Returns every independently-applicable offer plus the single best one (offers do not stack)
// @Tags Offers
// @Accept json
// @Produce json
// @Param request body models.EvaluateCartRequest true "Cart"
// @Success 200 {object} map[string]interface{}
// @Router /api/offers/evaluate [post]
func (ctrl *OfferController) EvaluateCart(c *gin.Context) {
	var req models.EvaluateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Cart items are required."})
		return
	}

	cart := pricing.Cart{}
	for _, item := range req.Items {
		cart.Items = append(cart.Items, pricing.CartItem{
			ProductID:   item.ProductID,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			WeightGrams: item.WeightGrams,
		})
	}

	ctx := context.Background()
	offers, err := scanOffers(ctx,
		` WHERE is_active = true AND (expires_at IS NULL OR expires_at > now())`)
	if err != nil {
		failStorage(c, "POST /api/offers/evaluate", err)
		return
	}

	now := time.Now()
	applicable := pricing.EvaluateAll(offers, cart, now)

	priceOf := func(productID string) float64 {
		var price float64
		err := config.DB.QueryRow(ctx, "SELECT price FROM products WHERE id=$1", productID).Scan(&price)
		if err != nil {
			// A zero-valued reward just loses the savings comparison.
			log.Printf("[POST /api/offers/evaluate] price lookup %s: %v", productID, err)
			return 0
		}
		return price
	}

	response := gin.H{
		"subtotal":   cart.Subtotal(),
		"applicable": applicable,
	}
	if best, savings, ok := pricing.BestOffer(offers, cart, now, priceOf); ok {
		response["best"] = best
		response["bestSavings"] = savings
	}

	c.JSON(200, response)
}

func (ctrl *OfferController) GetAdminOffers(c *gin.Context) {
	offers, err := scanOffers(context.Background(), ` ORDER BY created_at DESC`)
	if err != nil {
		failStorage(c, "GET /api/admin/offers", err)
		return
	}
	c.JSON(200, gin.H{"offers": offers})
}

func parseOfferExpiry(c *gin.Context, raw *string) (*time.Time, bool) {
	if raw == nil || *raw == "" {
		return nil, true
	}
	parsed, err := time.Parse(time.RFC3339, *raw)
	if err != nil {
		c.JSON(400, gin.H{"error": "expiresAt must be an RFC3339 timestamp."})
		return nil, false
	}
	return &parsed, true
}

func (ctrl *OfferController) CreateOffer(c *gin.Context) {
	var req models.OfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Title and type are required"})
		return
	}

	expiresAt, ok := parseOfferExpiry(c, req.ExpiresAt)
	if !ok {
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	var o models.Offer
	err := config.DB.QueryRow(context.Background(),
		`INSERT INTO offers (title, type, is_active,
		   trigger_product_id, trigger_quantity, reward_product_id, reward_quantity,
		   discount_value, discount_type, threshold_weight, threshold_value, savings_amount, expires_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		 RETURNING id, created_at`,
		req.Title, req.Type, isActive,
		req.TriggerProductID, req.TriggerQuantity, req.RewardProductID, req.RewardQuantity,
		req.DiscountValue, req.DiscountType, req.ThresholdWeight, req.ThresholdValue, req.SavingsAmount,
		expiresAt).Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		failStorage(c, "POST /api/admin/offers", err)
		return
	}

	c.JSON(201, gin.H{"message": "Offer created successfully", "offer": gin.H{"id": o.ID}})
}

func (ctrl *OfferController) UpdateOffer(c *gin.Context) {
	id := c.Param("id")

	var req models.OfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Title and type are required"})
		return
	}

	expiresAt, ok := parseOfferExpiry(c, req.ExpiresAt)
	if !ok {
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	// Full-record replacement, like the admin form submits.
	tag, err := config.DB.Exec(context.Background(),
		`UPDATE offers SET title=$1, type=$2, is_active=$3,
		   trigger_product_id=$4, trigger_quantity=$5, reward_product_id=$6, reward_quantity=$7,
		   discount_value=$8, discount_type=$9, threshold_weight=$10, threshold_value=$11, savings_amount=$12,
		   expires_at=$13
		 WHERE id=$14`,
		req.Title, req.Type, isActive,
		req.TriggerProductID, req.TriggerQuantity, req.RewardProductID, req.RewardQuantity,
		req.DiscountValue, req.DiscountType, req.ThresholdWeight, req.ThresholdValue, req.SavingsAmount,
		expiresAt, id)
	if err != nil {
		failStorage(c, "PUT /api/admin/offers/:id", err)
		return
	}
	if tag.RowsAffected() == 0 {
		c.JSON(404, gin.H{"error": "Offer not found"})
		return
	}

	c.JSON(200, gin.H{"message": "Offer updated successfully"})
}

func (ctrl *OfferController) DeleteOffer(c *gin.Context) {
	id := c.Param("id")

	tag, err := config.DB.Exec(context.Background(), "DELETE FROM offers WHERE id=$1", id)
	if err != nil {
		failStorage(c, "DELETE /api/admin/offers/:id", err)
		return
	}
	if tag.RowsAffected() == 0 {
		c.JSON(404, gin.H{"error": "Offer not found"})
		return
	}

	c.JSON(200, gin.H{"message": "Offer deleted successfully"})
}
