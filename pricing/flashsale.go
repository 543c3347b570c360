package pricing

import (
	"math"
	"time"

	"organicroots/models"
)

// SelectEffectiveFlashSale picks the single winning sale: active, not yet
// expired, most recently created. Concurrent sales are never merged.
func SelectEffectiveFlashSale(sales []models.FlashSale, now time.Time) *models.FlashSale {
	var winner *models.FlashSale
	for i := range sales {
		s := &sales[i]
		if !s.IsActive || !s.ExpiresAt.After(now) {
			continue
		}
		if winner == nil || s.CreatedAt.After(winner.CreatedAt) {
			winner = s
		}
	}
	return winner
}

// SalePriceForDiscount derives the sale price from a discount percentage
// against the live catalog price, rounded to cents. This is the admin
// edit tie-break: the discount field is authoritative at that moment.
func SalePriceForDiscount(originalPrice, discountPercent float64) float64 {
	return round(originalPrice*(1-discountPercent/100), 2)
}

// DiscountForSalePrice derives the discount percentage from a sale price,
// rounded to one decimal. The inverse tie-break: the price field is
// authoritative at that moment.
func DiscountForSalePrice(originalPrice, salePrice float64) float64 {
	if originalPrice <= 0 {
		return 0
	}
	return round((originalPrice-salePrice)/originalPrice*100, 1)
}

// LineDisplay is the storefront rendering of one flash-sale line. The
// original price is the product's current catalog price read at query time,
// not a snapshot, so catalog edits move the strikethrough figure while the
// sale price stays as set.
type LineDisplay struct {
	OriginalPrice   float64 `json:"original_price"`
	SalePrice       float64 `json:"sale_price"`
	DiscountPercent float64 `json:"discount_percent"`
}

func ComputeLineDisplay(catalogPrice float64, line models.FlashSaleProduct) LineDisplay {
	return LineDisplay{
		OriginalPrice:   catalogPrice,
		SalePrice:       line.Price,
		DiscountPercent: line.Discount,
	}
}

func round(v float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(v*factor) / factor
}
