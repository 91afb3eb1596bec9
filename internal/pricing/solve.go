package pricing

import "fmt"

// SolveTarget names the unknown of a pricing triangle.
type SolveTarget string

const (
	SolvePrice  SolveTarget = "price"
	SolveMargin SolveTarget = "margin"
	SolveMarkup SolveTarget = "markup"
	SolveCost   SolveTarget = "cost"
)

// SolveRequest carries the known sides of a price/cost/margin triangle.
// Fields that are being solved for are ignored.
type SolveRequest struct {
	SolveFor  SolveTarget `json:"solveFor"`
	CostExcl  float64     `json:"costExcl"`
	PriceExcl float64     `json:"priceExcl"`
	MarginPct float64     `json:"marginPct"`
}

// SolveResult is the completed triangle. MarginPct and MarkupPct are always
// derived from the resolved price and cost.
type SolveResult struct {
	CostExcl  float64 `json:"costExcl"`
	PriceExcl float64 `json:"priceExcl"`
	MarginPct float64 `json:"marginPct"`
	MarkupPct float64 `json:"markupPct"`
}

// Solve fills in the missing side of the pricing triangle.
//
//   - price:  from cost and margin
//   - cost:   from price and margin
//   - margin, markup: from price and cost
func Solve(req SolveRequest) (SolveResult, error) {
	price, cost := req.PriceExcl, req.CostExcl

	switch req.SolveFor {
	case SolvePrice:
		p, err := PriceFromMargin(cost, req.MarginPct)
		if err != nil {
			return SolveResult{}, fmt.Errorf("solve price: %w", err)
		}
		price = p
	case SolveCost:
		cost = CostFromMargin(price, req.MarginPct)
	case SolveMargin, SolveMarkup:
	default:
		return SolveResult{}, fmt.Errorf("%w: %q", ErrUnknownTarget, req.SolveFor)
	}

	return SolveResult{
		CostExcl:  cost,
		PriceExcl: price,
		MarginPct: MarginPctFrom(price, cost),
		MarkupPct: MarkupPctFrom(price, cost),
	}, nil
}
