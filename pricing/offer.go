package pricing

import (
	"time"

	"organicroots/models"
)

type CartItem struct {
	ProductID   string
	Quantity    float64
	UnitPrice   float64
	WeightGrams float64
}

type Cart struct {
	Items []CartItem
}

func (c Cart) Subtotal() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.UnitPrice * item.Quantity
	}
	return total
}

func (c Cart) TotalWeightGrams() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.WeightGrams * item.Quantity
	}
	return total
}

func (c Cart) quantityOf(productID string) float64 {
	var qty float64
	for _, item := range c.Items {
		if item.ProductID == productID {
			qty += item.Quantity
		}
	}
	return qty
}

func (c Cart) unitPriceOf(productID string) float64 {
	for _, item := range c.Items {
		if item.ProductID == productID {
			return item.UnitPrice
		}
	}
	return 0
}

// AppliedEffect describes what a qualifying offer grants. Free units and a
// money reduction are mutually exclusive in the current offer kinds.
type AppliedEffect struct {
	OfferID       string           `json:"offer_id"`
	Title         string           `json:"title"`
	Type          models.OfferType `json:"type"`
	FreeProductID string           `json:"free_product_id,omitempty"`
	FreeQuantity  float64          `json:"free_quantity,omitempty"`
	AmountOff     float64          `json:"amount_off,omitempty"`
}

// EvaluateOffer applies one offer to a cart. It is total: malformed records
// (missing trigger fields, a THRESHOLD with neither condition set) are simply
// not applicable. An offer past ExpiresAt never applies regardless of
// IsActive; an offer with no expiry never lapses.
func EvaluateOffer(offer models.Offer, cart Cart, now time.Time) (AppliedEffect, bool) {
	none := AppliedEffect{}

	if !offer.IsActive {
		return none, false
	}
	if offer.ExpiresAt != nil && !offer.ExpiresAt.After(now) {
		return none, false
	}

	effect := AppliedEffect{OfferID: offer.ID, Title: offer.Title, Type: offer.Type}

	switch offer.Type {
	case models.OfferBOGO:
		// Reward is the trigger product itself.
		if offer.TriggerProductID == nil || offer.TriggerQuantity == nil || offer.RewardQuantity == nil {
			return none, false
		}
		if cart.quantityOf(*offer.TriggerProductID) < *offer.TriggerQuantity {
			return none, false
		}
		effect.FreeProductID = *offer.TriggerProductID
		effect.FreeQuantity = *offer.RewardQuantity
		return effect, true

	case models.OfferBXGY:
		if offer.TriggerProductID == nil || offer.TriggerQuantity == nil ||
			offer.RewardProductID == nil || offer.RewardQuantity == nil {
			return none, false
		}
		if cart.quantityOf(*offer.TriggerProductID) < *offer.TriggerQuantity {
			return none, false
		}
		effect.FreeProductID = *offer.RewardProductID
		effect.FreeQuantity = *offer.RewardQuantity
		return effect, true

	case models.OfferDiscount:
		if offer.DiscountValue == nil || offer.DiscountType == nil {
			return none, false
		}
		switch *offer.DiscountType {
		case models.DiscountPercentage:
			effect.AmountOff = round(cart.Subtotal()*(*offer.DiscountValue)/100, 2)
		case models.DiscountFixed:
			effect.AmountOff = *offer.DiscountValue
		default:
			return none, false
		}
		return effect, true

	case models.OfferThreshold:
		if offer.SavingsAmount == nil {
			return none, false
		}
		// Exactly one condition is meaningful per offer; weight wins when
		// both are present since the admin form only ever sets one.
		switch {
		case offer.ThresholdWeight != nil:
			if cart.TotalWeightGrams() < *offer.ThresholdWeight {
				return none, false
			}
		case offer.ThresholdValue != nil:
			if cart.Subtotal() < *offer.ThresholdValue {
				return none, false
			}
		default:
			return none, false
		}
		effect.AmountOff = *offer.SavingsAmount
		return effect, true
	}

	return none, false
}

// EvaluateAll returns every independently-applicable offer, the way the
// storefront displays them.
func EvaluateAll(offers []models.Offer, cart Cart, now time.Time) []AppliedEffect {
	effects := []AppliedEffect{}
	for _, offer := range offers {
		if effect, ok := EvaluateOffer(offer, cart, now); ok {
			effects = append(effects, effect)
		}
	}
	return effects
}

// PriceLookup resolves a product's unit price for valuing free units whose
// product may not be in the cart (BXGY rewards).
type PriceLookup func(productID string) float64

// BestOffer is the stacking policy: qualifying offers are never combined,
// the single offer with the greatest monetary savings wins. Free units are
// valued at the product's unit price, from the cart when present or via
// priceOf otherwise.
func BestOffer(offers []models.Offer, cart Cart, now time.Time, priceOf PriceLookup) (AppliedEffect, float64, bool) {
	var best AppliedEffect
	var bestSavings float64
	found := false

	for _, offer := range offers {
		effect, ok := EvaluateOffer(offer, cart, now)
		if !ok {
			continue
		}

		savings := effect.AmountOff
		if effect.FreeQuantity > 0 {
			unit := cart.unitPriceOf(effect.FreeProductID)
			if unit == 0 && priceOf != nil {
				unit = priceOf(effect.FreeProductID)
			}
			savings = round(unit*effect.FreeQuantity, 2)
		}

		if !found || savings > bestSavings {
			best = effect
			bestSavings = savings
			found = true
		}
	}

	return best, bestSavings, found
}
