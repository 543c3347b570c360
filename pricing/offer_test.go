package pricing

import (
	"testing"
	"time"

	"organicroots/models"
)

func ptr[T any](v T) *T { return &v }

var evalNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func bogoOffer() models.Offer {
	return models.Offer{
		ID: "o-bogo", Title: "Buy One Get One", Type: models.OfferBOGO, IsActive: true,
		TriggerProductID: ptr("p1"), TriggerQuantity: ptr(1.0), RewardQuantity: ptr(1.0),
	}
}

func TestEvaluateOfferBOGO(t *testing.T) {
	offer := bogoOffer()

	t.Run("single unit triggers", func(t *testing.T) {
		cart := Cart{Items: []CartItem{{ProductID: "p1", Quantity: 1, UnitPrice: 4.50}}}
		effect, ok := EvaluateOffer(offer, cart, evalNow)
		if !ok {
			t.Fatal("offer should apply")
		}
		if effect.FreeProductID != "p1" || effect.FreeQuantity != 1 {
			t.Fatalf("got %+v", effect)
		}
	})

	t.Run("absent product does not trigger", func(t *testing.T) {
		cart := Cart{Items: []CartItem{{ProductID: "p2", Quantity: 3, UnitPrice: 2.00}}}
		if _, ok := EvaluateOffer(offer, cart, evalNow); ok {
			t.Fatal("offer should not apply")
		}
	})

	t.Run("quantity below trigger does not apply", func(t *testing.T) {
		two := bogoOffer()
		two.TriggerQuantity = ptr(2.0)
		cart := Cart{Items: []CartItem{{ProductID: "p1", Quantity: 1, UnitPrice: 4.50}}}
		if _, ok := EvaluateOffer(two, cart, evalNow); ok {
			t.Fatal("offer should not apply below trigger quantity")
		}
	})
}

func TestEvaluateOfferBXGY(t *testing.T) {
	offer := models.Offer{
		ID: "o-bxgy", Title: "Buy Rice Get Dal", Type: models.OfferBXGY, IsActive: true,
		TriggerProductID: ptr("rice"), TriggerQuantity: ptr(2.0),
		RewardProductID: ptr("dal"), RewardQuantity: ptr(1.0),
	}

	cart := Cart{Items: []CartItem{{ProductID: "rice", Quantity: 2, UnitPrice: 6.00}}}
	effect, ok := EvaluateOffer(offer, cart, evalNow)
	if !ok {
		t.Fatal("offer should apply")
	}
	if effect.FreeProductID != "dal" || effect.FreeQuantity != 1 {
		t.Fatalf("got %+v", effect)
	}

	short := Cart{Items: []CartItem{{ProductID: "rice", Quantity: 1, UnitPrice: 6.00}}}
	if _, ok := EvaluateOffer(offer, short, evalNow); ok {
		t.Fatal("offer should not apply when trigger quantity is short")
	}
}

func TestEvaluateOfferDiscount(t *testing.T) {
	cart := Cart{Items: []CartItem{
		{ProductID: "p1", Quantity: 2, UnitPrice: 10.00},
		{ProductID: "p2", Quantity: 1, UnitPrice: 13.33},
	}}

	t.Run("percentage off subtotal", func(t *testing.T) {
		offer := models.Offer{
			ID: "o-pct", Type: models.OfferDiscount, IsActive: true,
			DiscountValue: ptr(10.0), DiscountType: ptr(models.DiscountPercentage),
		}
		effect, ok := EvaluateOffer(offer, cart, evalNow)
		if !ok {
			t.Fatal("offer should apply")
		}
		// 10% of 33.33, rounded to cents.
		if effect.AmountOff != 3.33 {
			t.Fatalf("AmountOff = %v, want 3.33", effect.AmountOff)
		}
	})

	t.Run("fixed amount", func(t *testing.T) {
		offer := models.Offer{
			ID: "o-fix", Type: models.OfferDiscount, IsActive: true,
			DiscountValue: ptr(5.0), DiscountType: ptr(models.DiscountFixed),
		}
		effect, ok := EvaluateOffer(offer, cart, evalNow)
		if !ok || effect.AmountOff != 5.0 {
			t.Fatalf("ok=%v effect=%+v", ok, effect)
		}
	})
}

func TestEvaluateOfferThreshold(t *testing.T) {
	offer := models.Offer{
		ID: "o-thresh", Type: models.OfferThreshold, IsActive: true,
		ThresholdValue: ptr(100.0), SavingsAmount: ptr(15.0),
	}

	t.Run("just under threshold", func(t *testing.T) {
		cart := Cart{Items: []CartItem{{ProductID: "p1", Quantity: 1, UnitPrice: 99.99}}}
		if _, ok := EvaluateOffer(offer, cart, evalNow); ok {
			t.Fatal("offer should not apply at 99.99")
		}
	})

	t.Run("exactly at threshold", func(t *testing.T) {
		cart := Cart{Items: []CartItem{{ProductID: "p1", Quantity: 1, UnitPrice: 100.00}}}
		effect, ok := EvaluateOffer(offer, cart, evalNow)
		if !ok || effect.AmountOff != 15.0 {
			t.Fatalf("ok=%v effect=%+v, want applied with 15 off", ok, effect)
		}
	})

	t.Run("weight condition wins over value when both set", func(t *testing.T) {
		both := models.Offer{
			ID: "o-both", Type: models.OfferThreshold, IsActive: true,
			ThresholdWeight: ptr(5000.0), ThresholdValue: ptr(10.0), SavingsAmount: ptr(8.0),
		}
		// Cart clears the value condition but not the weight one.
		cart := Cart{Items: []CartItem{{ProductID: "p1", Quantity: 1, UnitPrice: 50.00, WeightGrams: 1000}}}
		if _, ok := EvaluateOffer(both, cart, evalNow); ok {
			t.Fatal("weight condition should gate the offer")
		}
	})

	t.Run("weight threshold met", func(t *testing.T) {
		byWeight := models.Offer{
			ID: "o-wt", Type: models.OfferThreshold, IsActive: true,
			ThresholdWeight: ptr(2000.0), SavingsAmount: ptr(4.0),
		}
		cart := Cart{Items: []CartItem{{ProductID: "p1", Quantity: 2, UnitPrice: 3.00, WeightGrams: 1000}}}
		effect, ok := EvaluateOffer(byWeight, cart, evalNow)
		if !ok || effect.AmountOff != 4.0 {
			t.Fatalf("ok=%v effect=%+v", ok, effect)
		}
	})
}

func TestEvaluateOfferLifecycle(t *testing.T) {
	cart := Cart{Items: []CartItem{{ProductID: "p1", Quantity: 1, UnitPrice: 4.50}}}

	t.Run("expired offer never applies even while active", func(t *testing.T) {
		offer := bogoOffer()
		offer.ExpiresAt = ptr(evalNow.Add(-time.Minute))
		if _, ok := EvaluateOffer(offer, cart, evalNow); ok {
			t.Fatal("expired offer applied")
		}
	})

	t.Run("inactive offer never applies", func(t *testing.T) {
		offer := bogoOffer()
		offer.IsActive = false
		if _, ok := EvaluateOffer(offer, cart, evalNow); ok {
			t.Fatal("inactive offer applied")
		}
	})

	t.Run("no expiry never lapses", func(t *testing.T) {
		offer := bogoOffer()
		farFuture := evalNow.Add(10 * 365 * 24 * time.Hour)
		if _, ok := EvaluateOffer(offer, cart, farFuture); !ok {
			t.Fatal("offer without expiry should still apply")
		}
	})

	t.Run("malformed records are not applicable", func(t *testing.T) {
		malformed := []models.Offer{
			{ID: "m1", Type: models.OfferBOGO, IsActive: true},
			{ID: "m2", Type: models.OfferBXGY, IsActive: true, TriggerProductID: ptr("p1")},
			{ID: "m3", Type: models.OfferDiscount, IsActive: true, DiscountValue: ptr(5.0)},
			{ID: "m4", Type: models.OfferThreshold, IsActive: true, SavingsAmount: ptr(5.0)},
			{ID: "m5", Type: models.OfferType("MYSTERY"), IsActive: true},
		}
		for _, offer := range malformed {
			if _, ok := EvaluateOffer(offer, cart, evalNow); ok {
				t.Errorf("offer %s should not apply", offer.ID)
			}
		}
	})
}

func TestEvaluateAll(t *testing.T) {
	cart := Cart{Items: []CartItem{{ProductID: "p1", Quantity: 1, UnitPrice: 120.00, WeightGrams: 500}}}
	offers := []models.Offer{
		bogoOffer(),
		{ID: "o-thresh", Type: models.OfferThreshold, IsActive: true, ThresholdValue: ptr(100.0), SavingsAmount: ptr(15.0)},
		{ID: "o-off", Type: models.OfferThreshold, IsActive: false, ThresholdValue: ptr(100.0), SavingsAmount: ptr(50.0)},
	}

	effects := EvaluateAll(offers, cart, evalNow)
	if len(effects) != 2 {
		t.Fatalf("got %d effects, want 2: %+v", len(effects), effects)
	}
	if effects[0].OfferID != "o-bogo" || effects[1].OfferID != "o-thresh" {
		t.Fatalf("got %+v", effects)
	}
}

func TestBestOffer(t *testing.T) {
	cart := Cart{Items: []CartItem{{ProductID: "rice", Quantity: 2, UnitPrice: 6.00}}}

	offers := []models.Offer{
		// Free rice worth 6.00.
		{ID: "o-bogo", Type: models.OfferBOGO, IsActive: true,
			TriggerProductID: ptr("rice"), TriggerQuantity: ptr(2.0), RewardQuantity: ptr(1.0)},
		// Free dal, priced via lookup at 9.00.
		{ID: "o-bxgy", Type: models.OfferBXGY, IsActive: true,
			TriggerProductID: ptr("rice"), TriggerQuantity: ptr(2.0),
			RewardProductID: ptr("dal"), RewardQuantity: ptr(1.0)},
		// 10% off 12.00 = 1.20.
		{ID: "o-pct", Type: models.OfferDiscount, IsActive: true,
			DiscountValue: ptr(10.0), DiscountType: ptr(models.DiscountPercentage)},
	}

	priceOf := func(productID string) float64 {
		if productID == "dal" {
			return 9.00
		}
		return 0
	}

	best, savings, found := BestOffer(offers, cart, evalNow, priceOf)
	if !found {
		t.Fatal("expected a winning offer")
	}
	if best.OfferID != "o-bxgy" || savings != 9.00 {
		t.Fatalf("best=%+v savings=%v, want o-bxgy with 9.00", best, savings)
	}

	t.Run("no qualifying offers", func(t *testing.T) {
		empty := Cart{}
		// A percentage discount on an empty cart still applies with zero
		// savings, so use only trigger-gated offers here.
		gated := []models.Offer{offers[0], offers[1]}
		if _, _, found := BestOffer(gated, empty, evalNow, priceOf); found {
			t.Fatal("no offer should qualify for an empty cart")
		}
	})
}
