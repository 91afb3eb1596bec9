package pricing

import "fmt"

// MarginToMarkup converts a margin percentage into the equivalent markup.
func MarginToMarkup(marginPct float64) (float64, error) {
	m := marginPct / 100.0
	if m >= 1 {
		return 0, fmt.Errorf("%w: got %g", ErrMarginOutOfRange, marginPct)
	}
	return m / (1 - m) * 100.0, nil
}

// MarkupToMargin converts a markup percentage into the equivalent margin.
func MarkupToMargin(markupPct float64) float64 {
	k := markupPct / 100.0
	return k / (1 + k) * 100.0
}

// PriceFromMargin returns the price that yields marginPct on cost.
func PriceFromMargin(cost, marginPct float64) (float64, error) {
	m := marginPct / 100.0
	if m >= 1 {
		return 0, fmt.Errorf("%w: got %g", ErrMarginOutOfRange, marginPct)
	}
	return cost / (1 - m), nil
}

// PriceFromMarkup returns cost marked up by markupPct.
func PriceFromMarkup(cost, markupPct float64) float64 {
	return cost * (1 + markupPct/100.0)
}

// CostFromMargin returns the highest cost that still leaves marginPct at price.
func CostFromMargin(price, marginPct float64) float64 {
	return price * (1 - marginPct/100.0)
}

// MarginPctFrom is profit as a percentage of price. Zero when price <= 0.
func MarginPctFrom(price, cost float64) float64 {
	if price <= 0 {
		return 0
	}
	return (price - cost) / price * 100.0
}

// MarkupPctFrom is profit as a percentage of cost. Zero when cost <= 0.
func MarkupPctFrom(price, cost float64) float64 {
	if cost <= 0 {
		return 0
	}
	return (price - cost) / cost * 100.0
}
