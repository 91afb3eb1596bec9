package pricing

import (
	"fmt"
)

// Mode selects how the target percentage of an Input is interpreted.
type Mode string

const (
	ModeMarkup Mode = "markup"
	ModeMargin Mode = "margin"
)

// Kind is a cosmetic business label; calculations are identical for both.
type Kind string

const (
	KindGoods    Kind = "goods"
	KindServices Kind = "services"
)

// Input represents the unit-economics inputs of a single scenario.
// All money amounts are tax-exclusive unless stated otherwise.
type Input struct {
	Kind                Kind    `json:"kind" yaml:"kind"`
	Currency            string  `json:"currency" yaml:"currency"`
	VATRatePct          float64 `json:"vatRatePct" yaml:"vatRatePct"`
	IncludeVATInPrice   bool    `json:"includeVatInPrice" yaml:"includeVatInPrice"`
	VariableCostPerUnit float64 `json:"variableCostPerUnit" yaml:"variableCostPerUnit"`
	FixedCostsPerMonth  float64 `json:"fixedCostsPerMonth" yaml:"fixedCostsPerMonth"`
	UnitsPerMonth       float64 `json:"unitsPerMonth" yaml:"unitsPerMonth"`
	Mode                Mode    `json:"mode" yaml:"mode"`
	ValuePct            float64 `json:"valuePct" yaml:"valuePct"`
	GrowthRatePct       float64 `json:"growthRatePct" yaml:"growthRatePct"`
}

// DefaultInput returns the scenario the calculator starts from.
func DefaultInput() Input {
	return Input{
		Kind:                KindGoods,
		Currency:            "ZAR",
		VATRatePct:          15,
		IncludeVATInPrice:   true,
		VariableCostPerUnit: 100,
		FixedCostsPerMonth:  10000,
		UnitsPerMonth:       200,
		Mode:                ModeMarkup,
		ValuePct:            40,
		GrowthRatePct:       3,
	}
}

// Core contains the per-unit economics derived from an Input.
type Core struct {
	CostExcl         float64 `json:"costExcl"`
	PriceExcl        float64 `json:"priceExcl"`
	VATAmountPerUnit float64 `json:"vatAmountPerUnit"`
	PriceIncl        float64 `json:"priceIncl"`
	MarkupPct        float64 `json:"markupPct"`
	MarginPct        float64 `json:"marginPct"`
	UnitProfitExcl   float64 `json:"unitProfitExcl"`
	// BreakevenUnits is nil when the unit profit is not positive.
	BreakevenUnits *float64 `json:"breakevenUnits"`
}

// Viable reports whether each unit sold contributes towards fixed costs.
func (c Core) Viable() bool {
	return c.BreakevenUnits != nil
}

// ComputeCore resolves the selling price from the input's mode and derives
// the unit economics from the resolved (price, cost) pair.
func ComputeCore(in Input) (Core, error) {
	cost := in.VariableCostPerUnit

	var price float64
	switch in.Mode {
	case ModeMarkup:
		price = PriceFromMarkup(cost, in.ValuePct)
	case ModeMargin:
		p, err := PriceFromMargin(cost, in.ValuePct)
		if err != nil {
			return Core{}, fmt.Errorf("resolve price from margin: %w", err)
		}
		price = p
	default:
		return Core{}, fmt.Errorf("%w: %q", ErrUnknownMode, in.Mode)
	}

	vatRate := in.VATRatePct / 100.0
	priceIncl := price
	if in.IncludeVATInPrice {
		priceIncl = price * (1.0 + vatRate)
	}

	unitProfit := price - cost

	var breakeven *float64
	if unitProfit > 0 {
		units := in.FixedCostsPerMonth / unitProfit
		breakeven = &units
	}

	return Core{
		CostExcl:         cost,
		PriceExcl:        price,
		VATAmountPerUnit: price * vatRate,
		PriceIncl:        priceIncl,
		MarkupPct:        MarkupPctFrom(price, cost),
		MarginPct:        MarginPctFrom(price, cost),
		UnitProfitExcl:   unitProfit,
		BreakevenUnits:   breakeven,
	}, nil
}

// SwitchMode returns a copy of the input expressed in the target mode. The
// target percentage is converted so the resolved price does not change.
func (in Input) SwitchMode(target Mode) (Input, error) {
	if target != ModeMarkup && target != ModeMargin {
		return in, fmt.Errorf("%w: %q", ErrUnknownMode, target)
	}
	if in.Mode == target {
		return in, nil
	}

	out := in
	out.Mode = target
	switch target {
	case ModeMarkup:
		markup, err := MarginToMarkup(in.ValuePct)
		if err != nil {
			return in, err
		}
		out.ValuePct = markup
	case ModeMargin:
		out.ValuePct = MarkupToMargin(in.ValuePct)
	}
	return out, nil
}
