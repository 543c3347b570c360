package models

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"full_name" binding:"omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	FullName  string `json:"full_name"`
	AvatarURL string `json:"avatar_url"`
}

type AddListItemRequest struct {
	Name     string `json:"name" binding:"required"`
	Price    string `json:"price"`
	Image    string `json:"image"`
	Category string `json:"category"`
}

type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	FullName string `json:"full_name"`
	Role     string `json:"role" binding:"required,oneof=user admin super_admin"`
	Password string `json:"password" binding:"required,min=6"`
}

type UpdateUserRequest struct {
	Email    string `json:"email" binding:"omitempty,email"`
	FullName string `json:"full_name"`
	Role     string `json:"role" binding:"omitempty,oneof=user admin super_admin"`
	Password string `json:"password" binding:"omitempty,min=6"`
}

type FlashSaleLineRequest struct {
	ProductID string  `json:"productId" binding:"required"`
	Price     float64 `json:"price" binding:"required"`
	Discount  float64 `json:"discount"`
}

type CreateFlashSaleRequest struct {
	Title     string                 `json:"title" binding:"required"`
	Subtitle  string                 `json:"subtitle"`
	ExpiresAt string                 `json:"expiresAt" binding:"required"`
	IsActive  *bool                  `json:"isActive"`
	Products  []FlashSaleLineRequest `json:"products" binding:"required"`
}

type UpdateFlashSaleRequest struct {
	Title     string                 `json:"title"`
	Subtitle  string                 `json:"subtitle"`
	ExpiresAt string                 `json:"expiresAt"`
	IsActive  *bool                  `json:"isActive"`
	Products  []FlashSaleLineRequest `json:"products"`
}

type OfferRequest struct {
	Title    string `json:"title" binding:"required"`
	Type     string `json:"type" binding:"required,oneof=BOGO BXGY DISCOUNT THRESHOLD"`
	IsActive *bool  `json:"isActive"`

	TriggerProductID *string  `json:"triggerProductId"`
	TriggerQuantity  *float64 `json:"triggerQuantity"`
	RewardProductID  *string  `json:"rewardProductId"`
	RewardQuantity   *float64 `json:"rewardQuantity"`

	DiscountValue *float64 `json:"discountValue"`
	DiscountType  *string  `json:"discountType" binding:"omitempty,oneof=PERCENTAGE FIXED"`

	ThresholdWeight *float64 `json:"thresholdWeight"`
	ThresholdValue  *float64 `json:"thresholdValue"`
	SavingsAmount   *float64 `json:"savingsAmount"`

	ExpiresAt *string `json:"expiresAt"`
}

type EvaluateCartItemRequest struct {
	ProductID   string  `json:"product_id" binding:"required"`
	Quantity    float64 `json:"quantity" binding:"required"`
	UnitPrice   float64 `json:"unit_price"`
	WeightGrams float64 `json:"weight_grams"`
}

type EvaluateCartRequest struct {
	Items []EvaluateCartItemRequest `json:"items" binding:"required"`
}
