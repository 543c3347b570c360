package pricing

import (
	"testing"
	"time"

	"organicroots/models"
)

func sale(id string, active bool, expiresAt, createdAt time.Time) models.FlashSale {
	return models.FlashSale{ID: id, Title: id, IsActive: active, ExpiresAt: expiresAt, CreatedAt: createdAt}
}

func TestSelectEffectiveFlashSale(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(24 * time.Hour)
	past := now.Add(-time.Hour)

	t.Run("latest created wins among concurrent sales", func(t *testing.T) {
		sales := []models.FlashSale{
			sale("older", true, future, now.Add(-48*time.Hour)),
			sale("newer", true, future, now.Add(-time.Hour)),
			sale("middle", true, future, now.Add(-24*time.Hour)),
		}
		got := SelectEffectiveFlashSale(sales, now)
		if got == nil || got.ID != "newer" {
			t.Fatalf("got %v, want sale %q", got, "newer")
		}
	})

	t.Run("expired and inactive sales never win", func(t *testing.T) {
		sales := []models.FlashSale{
			sale("expired", true, past, now),
			sale("inactive", false, future, now),
		}
		if got := SelectEffectiveFlashSale(sales, now); got != nil {
			t.Fatalf("got %v, want nil", got)
		}
	})

	t.Run("expiry boundary is exclusive", func(t *testing.T) {
		sales := []models.FlashSale{sale("edge", true, now, now.Add(-time.Hour))}
		if got := SelectEffectiveFlashSale(sales, now); got != nil {
			t.Fatalf("sale expiring exactly now should not win, got %v", got)
		}
	})

	t.Run("no sales", func(t *testing.T) {
		if got := SelectEffectiveFlashSale(nil, now); got != nil {
			t.Fatalf("got %v, want nil", got)
		}
	})
}

func TestSalePriceForDiscount(t *testing.T) {
	cases := []struct {
		original, discount, want float64
	}{
		{20.00, 25, 15.00},
		{10.00, 33.3, 6.67},
		{5.99, 0, 5.99},
		{8.00, 100, 0},
	}
	for _, tc := range cases {
		if got := SalePriceForDiscount(tc.original, tc.discount); got != tc.want {
			t.Errorf("SalePriceForDiscount(%v, %v) = %v, want %v", tc.original, tc.discount, got, tc.want)
		}
	}
}

func TestDiscountForSalePrice(t *testing.T) {
	cases := []struct {
		original, sale, want float64
	}{
		{20.00, 15.00, 25.0},
		{9.99, 7.49, 25.0},
		{10.00, 10.00, 0},
		{0, 5.00, 0},
		{-1, 5.00, 0},
	}
	for _, tc := range cases {
		if got := DiscountForSalePrice(tc.original, tc.sale); got != tc.want {
			t.Errorf("DiscountForSalePrice(%v, %v) = %v, want %v", tc.original, tc.sale, got, tc.want)
		}
	}
}

func TestComputeLineDisplay(t *testing.T) {
	line := models.FlashSaleProduct{Price: 15.00, Discount: 25.0}
	got := ComputeLineDisplay(22.50, line)
	if got.OriginalPrice != 22.50 || got.SalePrice != 15.00 || got.DiscountPercent != 25.0 {
		t.Fatalf("got %+v", got)
	}
}
