package pricing

import (
	"fmt"
	"math"
)

// Promotions.

// ApplyDiscount returns price reduced by discountPct.
func ApplyDiscount(price, discountPct float64) float64 {
	return price * (1 - discountPct/100.0)
}

// MarginAfterDiscount returns the margin percentage at the discounted price.
func MarginAfterDiscount(price, cost, discountPct float64) float64 {
	return MarginPctFrom(ApplyDiscount(price, discountPct), cost)
}

// BreakevenDiscountPct is the largest discount that keeps monthly operating
// profit at or above zero, clamped to [0, 100]. Zero when price <= 0.
func BreakevenDiscountPct(price, cost, fixedCostsPerMonth, units float64) float64 {
	if price <= 0 {
		return 0
	}
	d := 1 - (cost+fixedCostsPerMonth/math.Max(units, 1))/price
	return math.Max(0, math.Min(100, d*100.0))
}

// Payment fees.

// FeeResult is what remains of a price after payment fees.
type FeeResult struct {
	Net float64 `json:"net"`
	Fee float64 `json:"fee"`
}

// NetAfterFees applies a percentage plus a fixed fee to price.
func NetAfterFees(price, feePct, feeFixed float64) FeeResult {
	fee := price*(feePct/100.0) + feeFixed
	return FeeResult{Net: price - fee, Fee: fee}
}

// MarginAfterFees is the profit left after fees as a percentage of price.
func MarginAfterFees(price, cost, feePct, feeFixed float64) float64 {
	if price <= 0 {
		return 0
	}
	net := NetAfterFees(price, feePct, feeFixed).Net
	return (net - cost) / price * 100.0
}

// Imports.

// minSurvivalRate floors the share of stock surviving shrinkage.
const minSurvivalRate = 0.0001

// LandedCostParams describes one imported unit. FXRate is the number of
// local currency units per foreign unit; freight and clearance are already
// in local currency.
type LandedCostParams struct {
	UnitCostForeign  float64 `json:"unitCostForeign"`
	FXRate           float64 `json:"fxRate"`
	FreightPerUnit   float64 `json:"freightPerUnit"`
	DutyPct          float64 `json:"dutyPct"`
	ClearancePerUnit float64 `json:"clearancePerUnit"`
	ShrinkagePct     float64 `json:"shrinkagePct"`
}

// LandedCostPerUnit is the local cost of one sellable unit after conversion,
// duty, freight, clearance and shrinkage.
func LandedCostPerUnit(p LandedCostParams) float64 {
	base := p.UnitCostForeign * p.FXRate
	duty := base * (p.DutyPct / 100.0)
	raw := base + duty + p.FreightPerUnit + p.ClearancePerUnit
	survival := 1 - p.ShrinkagePct/100.0
	return raw / math.Max(survival, minSurvivalRate)
}

// Services.

// HourlyRateParams describes a service business billed by the hour.
type HourlyRateParams struct {
	MonthlyFixedOverheads float64 `json:"monthlyFixedOverheads"`
	TargetMarginPct       float64 `json:"targetMarginPct"`
	BillableHoursPerMonth float64 `json:"billableHoursPerMonth"`
	VariableCostPerHour   float64 `json:"variableCostPerHour"`
}

// BreakevenHourlyRate prices the variable cost of an hour at the target
// margin and adds the overheads spread over billable hours.
func BreakevenHourlyRate(p HourlyRateParams) (float64, error) {
	priceOnVariable, err := PriceFromMargin(p.VariableCostPerHour, p.TargetMarginPct)
	if err != nil {
		return 0, fmt.Errorf("price variable cost per hour: %w", err)
	}
	overheadPerHour := p.MonthlyFixedOverheads / math.Max(p.BillableHoursPerMonth, 1)
	return priceOnVariable + overheadPerHour, nil
}
