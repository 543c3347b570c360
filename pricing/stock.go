package pricing

// Stock status labels shared by admin filtering and storefront display.
const (
	StockOut = "out-of-stock"
	StockLow = "low-stock"
	StockIn  = "in-stock"
)

// StockStatus classifies a stock count. Boundaries are fixed business
// constants: 0 is out, 1..10 is low, above 10 is in stock.
func StockStatus(stock int) string {
	switch {
	case stock <= 0:
		return StockOut
	case stock <= 10:
		return StockLow
	default:
		return StockIn
	}
}
