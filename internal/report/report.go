// Package report renders calculation results as plain text.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/Simplici0/pricecalc/internal/money"
	"github.com/Simplici0/pricecalc/internal/pricing"
)

// Summary is everything needed to describe one calculated scenario.
type Summary struct {
	Input      pricing.Input
	Core       pricing.Core
	Projection pricing.Projection
}

// BreakevenText renders breakeven units, or a non-viable marker.
func BreakevenText(core pricing.Core) string {
	if core.BreakevenUnits == nil {
		return "N/A (non-viable)"
	}
	return money.Fixed(*core.BreakevenUnits, 2)
}

// WriteText writes a plain-text summary of s using f for money amounts.
func WriteText(w io.Writer, s Summary, f *money.Formatter) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Unit economics (excl. VAT unless noted)\n")
	fmt.Fprintf(&b, "Cost per unit: %s\n", f.Format(s.Core.CostExcl))
	fmt.Fprintf(&b, "Price (excl.): %s\n", f.Format(s.Core.PriceExcl))
	fmt.Fprintf(&b, "VAT per unit: %s\n", f.Format(s.Core.VATAmountPerUnit))
	fmt.Fprintf(&b, "Price (incl. VAT): %s\n", f.Format(s.Core.PriceIncl))
	fmt.Fprintf(&b, "Markup: %s\n", money.Percent(s.Core.MarkupPct))
	fmt.Fprintf(&b, "Margin: %s\n", money.Percent(s.Core.MarginPct))
	fmt.Fprintf(&b, "Unit profit (excl.): %s\n", f.Format(s.Core.UnitProfitExcl))
	fmt.Fprintf(&b, "Breakeven units / month: %s\n", BreakevenText(s.Core))
	b.WriteString("\n")

	t := s.Projection.Totals
	fmt.Fprintf(&b, "12-month totals (excl. VAT)\n")
	fmt.Fprintf(&b, "Revenue: %s\n", f.Format(t.RevenueExcl))
	fmt.Fprintf(&b, "Variable cost: %s\n", f.Format(t.VariableCost))
	fmt.Fprintf(&b, "Gross profit: %s\n", f.Format(t.GrossProfit))
	fmt.Fprintf(&b, "Fixed costs: %s\n", f.Format(t.FixedCosts))
	fmt.Fprintf(&b, "Operating profit: %s\n", f.Format(t.OperatingProfit))
	b.WriteString("\n")

	in := s.Input
	fmt.Fprintf(&b, "Assumptions:\n")
	fmt.Fprintf(&b, "- Business type: %s\n", in.Kind)
	fmt.Fprintf(&b, "- Currency: %s\n", f.Currency())
	fmt.Fprintf(&b, "- VAT rate: %s (included in price: %t)\n", money.Percent(in.VATRatePct), in.IncludeVATInPrice)
	fmt.Fprintf(&b, "- Pricing: %s %s\n", in.Mode, money.Percent(in.ValuePct))
	fmt.Fprintf(&b, "- Units per month: %s\n", money.Fixed(in.UnitsPerMonth, 2))
	fmt.Fprintf(&b, "- Monthly growth: %s\n", money.Percent(in.GrowthRatePct))
	b.WriteString("\n")

	fmt.Fprintf(&b, "Projection:\n")
	for _, r := range s.Projection.Rows {
		fmt.Fprintf(&b, "%2d  units %s  revenue %s  gross %s (%s)  operating %s\n",
			r.Month,
			money.Fixed(r.Units, 2),
			f.Format(r.RevenueExcl),
			f.Format(r.GrossProfit),
			money.Percent(r.MarginPct),
			f.Format(r.OperatingProfit),
		)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
