package models

import "time"

type OfferType string

const (
	OfferBOGO      OfferType = "BOGO"
	OfferBXGY      OfferType = "BXGY"
	OfferDiscount  OfferType = "DISCOUNT"
	OfferThreshold OfferType = "THRESHOLD"
)

type DiscountType string

const (
	DiscountPercentage DiscountType = "PERCENTAGE"
	DiscountFixed      DiscountType = "FIXED"
)

// Offer flattens all four offer kinds into one record; only the fields
// relevant to Type are set, the rest stay nil.
type Offer struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Type     OfferType `json:"type"`
	IsActive bool      `json:"is_active"`

	TriggerProductID *string  `json:"trigger_product_id"`
	TriggerQuantity  *float64 `json:"trigger_quantity"`
	RewardProductID  *string  `json:"reward_product_id"`
	RewardQuantity   *float64 `json:"reward_quantity"`

	DiscountValue *float64      `json:"discount_value"`
	DiscountType  *DiscountType `json:"discount_type"`

	ThresholdWeight *float64 `json:"threshold_weight"`
	ThresholdValue  *float64 `json:"threshold_value"`
	SavingsAmount   *float64 `json:"savings_amount"`

	ExpiresAt *time.Time `json:"expires_at"`
	CreatedAt time.Time  `json:"created_at"`
}
