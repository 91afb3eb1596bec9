package pricing

import "math"

// LTVSimple is the lifetime gross profit of a subscriber under constant
// monthly churn. Infinite when churn is zero or negative.
func LTVSimple(arpu, gmPct, churnPct float64) float64 {
	churn := churnPct / 100.0
	if churn <= 0 {
		return math.Inf(1)
	}
	return arpu * (gmPct / 100.0) / churn
}

// CACPaybackMonths is the number of months of contribution needed to recover
// the acquisition cost. Infinite when the monthly contribution is not positive.
func CACPaybackMonths(cac, arpu, gmPct float64) float64 {
	monthly := arpu * (gmPct / 100.0)
	if monthly <= 0 {
		return math.Inf(1)
	}
	return cac / monthly
}

// LTVToCAC is the ratio of lifetime value to acquisition cost. Infinite when
// cac is zero or negative.
func LTVToCAC(ltv, cac float64) float64 {
	if cac <= 0 {
		return math.Inf(1)
	}
	return ltv / cac
}

// ProductMix is one product line in a sales mix.
type ProductMix struct {
	Name      string  `json:"name,omitempty" yaml:"name"`
	MixPct    float64 `json:"mixPct" yaml:"mixPct"`
	PriceExcl float64 `json:"priceExcl" yaml:"priceExcl"`
	CostExcl  float64 `json:"costExcl" yaml:"costExcl"`
}

// WeightedBreakevenUnits is the total monthly volume, split by mix, needed to
// cover fixed costs. Infinite when the weighted contribution is not positive.
func WeightedBreakevenUnits(products []ProductMix, fixedCosts float64) float64 {
	var contribution float64
	for _, p := range products {
		contribution += (p.MixPct / 100.0) * (p.PriceExcl - p.CostExcl)
	}
	if contribution <= 0 {
		return math.Inf(1)
	}
	return fixedCosts / contribution
}

const minSlope = 1e-9

// RevenueMaxPriceLinear is the price maximising revenue for linear demand
// Q = a - b*P.
func RevenueMaxPriceLinear(a, b float64) float64 {
	return a / (2 * math.Max(b, minSlope))
}

// LinearDemand returns the quantity demanded at price for Q = a - b*P,
// floored at zero.
func LinearDemand(a, b, price float64) float64 {
	return math.Max(0, a-b*price)
}
