package pricing

import "testing"

func TestStockStatus(t *testing.T) {
	cases := []struct {
		stock int
		want  string
	}{
		{-5, StockOut},
		{0, StockOut},
		{1, StockLow},
		{10, StockLow},
		{11, StockIn},
		{500, StockIn},
	}
	for _, tc := range cases {
		if got := StockStatus(tc.stock); got != tc.want {
			t.Errorf("StockStatus(%d) = %q, want %q", tc.stock, got, tc.want)
		}
	}
}
