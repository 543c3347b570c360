package models

import "time"

type FlashSale struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Subtitle  string    `json:"subtitle"`
	ExpiresAt time.Time `json:"expires_at"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`

	Products []FlashSaleProduct `json:"products,omitempty"`
}

// FlashSaleProduct stores both the sale price and the discount percentage
// as submitted by the admin; neither is derived server-side.
type FlashSaleProduct struct {
	ID          string  `json:"id"`
	FlashSaleID string  `json:"flash_sale_id"`
	ProductID   string  `json:"product_id"`
	Price       float64 `json:"price"`
	Discount    float64 `json:"discount"`

	ProductName     string  `json:"product_name,omitempty"`
	ProductPrice    float64 `json:"product_price,omitempty"`
	ProductImageURL string  `json:"product_image_url,omitempty"`
	ProductCategory string  `json:"product_category,omitempty"`
	ProductWeight   string  `json:"product_weight,omitempty"`
}
