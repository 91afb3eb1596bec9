package pricing

// ProjectionMonths is the fixed horizon of Project12Months.
const ProjectionMonths = 12

// MonthRow is one month of a projection. Amounts are tax-exclusive.
type MonthRow struct {
	Month           int     `json:"month"`
	Units           float64 `json:"units"`
	RevenueExcl     float64 `json:"revenueExcl"`
	VariableCost    float64 `json:"variableCost"`
	GrossProfit     float64 `json:"grossProfit"`
	MarginPct       float64 `json:"marginPct"`
	FixedCosts      float64 `json:"fixedCosts"`
	OperatingProfit float64 `json:"operatingProfit"`
}

// ProjectionTotals are nominal sums across all rows of a projection.
type ProjectionTotals struct {
	RevenueExcl     float64 `json:"revenueExcl"`
	VariableCost    float64 `json:"variableCost"`
	GrossProfit     float64 `json:"grossProfit"`
	FixedCosts      float64 `json:"fixedCosts"`
	OperatingProfit float64 `json:"operatingProfit"`
}

// Projection groups the monthly rows and their totals.
type Projection struct {
	Rows   []MonthRow       `json:"rows"`
	Totals ProjectionTotals `json:"totals"`
}

// Project12Months projects the core unit economics over twelve months.
// Volume starts at in.UnitsPerMonth and compounds monthly by in.GrowthRatePct.
func Project12Months(in Input, core Core) Projection {
	rows := make([]MonthRow, 0, ProjectionMonths)
	growth := 1.0 + in.GrowthRatePct/100.0

	units := in.UnitsPerMonth
	for month := 1; month <= ProjectionMonths; month++ {
		revenue := core.PriceExcl * units
		variableCost := in.VariableCostPerUnit * units
		grossProfit := revenue - variableCost

		marginPct := 0.0
		if revenue > 0 {
			marginPct = grossProfit / revenue * 100.0
		}

		rows = append(rows, MonthRow{
			Month:           month,
			Units:           units,
			RevenueExcl:     revenue,
			VariableCost:    variableCost,
			GrossProfit:     grossProfit,
			MarginPct:       marginPct,
			FixedCosts:      in.FixedCostsPerMonth,
			OperatingProfit: grossProfit - in.FixedCostsPerMonth,
		})

		units *= growth
	}

	var totals ProjectionTotals
	for _, r := range rows {
		totals.RevenueExcl += r.RevenueExcl
		totals.VariableCost += r.VariableCost
		totals.GrossProfit += r.GrossProfit
		totals.FixedCosts += r.FixedCosts
		totals.OperatingProfit += r.OperatingProfit
	}

	return Projection{Rows: rows, Totals: totals}
}

// Calculate runs ComputeCore and Project12Months for a single input.
func Calculate(in Input) (Core, Projection, error) {
	core, err := ComputeCore(in)
	if err != nil {
		return Core{}, Projection{}, err
	}
	return core, Project12Months(in, core), nil
}
