package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Simplici0/pricecalc/internal/money"
	"github.com/Simplici0/pricecalc/internal/pricing"
	"github.com/Simplici0/pricecalc/internal/report"
	"github.com/Simplici0/pricecalc/internal/scenario"
)

type coreOptions struct {
	file       string
	kind       string
	mode       string
	valuePct   float64
	cost       float64
	fixed      float64
	units      float64
	vatRate    float64
	includeVAT bool
	growth     float64
	switchTo   string
	projection bool
	plain      bool
}

func newCoreCmd(a *app) *cobra.Command {
	o := &coreOptions{}
	def := pricing.DefaultInput()

	c := &cobra.Command{
		Use:     "core",
		Aliases: []string{"calc"},
		Short:   "Price, margin, breakeven and a 12-month projection",
		Long: `Resolves the selling price from a cost and a markup or margin target,
then reports unit economics, breakeven volume and a 12-month projection.

Values come from the built-in defaults, then --file, then explicit flags.`,
		Example: `  bizcalc core --mode margin --value 35 --cost 80
  bizcalc core --file scenario.yaml --projection
  bizcalc core --value 40 --switch-to margin`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCore(cmd, a, o)
		},
	}

	f := c.Flags()
	f.StringVarP(&o.file, "file", "f", "", "YAML scenario file; explicit flags override its values")
	f.StringVar(&o.kind, "kind", string(def.Kind), "business type: goods or services")
	f.StringVar(&o.mode, "mode", string(def.Mode), "pricing mode: markup or margin")
	f.Float64Var(&o.valuePct, "value", def.ValuePct, "markup or margin %")
	f.Float64Var(&o.cost, "cost", def.VariableCostPerUnit, "variable cost per unit, excl. VAT")
	f.Float64Var(&o.fixed, "fixed", def.FixedCostsPerMonth, "fixed costs per month")
	f.Float64Var(&o.units, "units", def.UnitsPerMonth, "units sold per month")
	f.Float64Var(&o.vatRate, "vat", def.VATRatePct, "VAT rate %")
	f.BoolVar(&o.includeVAT, "include-vat", def.IncludeVATInPrice, "report the VAT-inclusive price")
	f.Float64Var(&o.growth, "growth", def.GrowthRatePct, "monthly unit growth %")
	f.StringVar(&o.switchTo, "switch-to", "", "re-express the pricing value as markup or margin, keeping the price")
	f.BoolVar(&o.projection, "projection", false, "print the month-by-month projection")
	f.BoolVar(&o.plain, "plain", false, "print an unstyled text report")
	return c
}

// input layers explicitly set flags over the file (or default) scenario.
func (o *coreOptions) input(cmd *cobra.Command, a *app) (pricing.Input, error) {
	in := a.baseInput()
	if o.file != "" {
		loaded, err := scenario.LoadFile(o.file, in)
		if err != nil {
			return pricing.Input{}, err
		}
		in = loaded
	}

	cmd.Flags().Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "currency":
			in.Currency = a.currency
		case "kind":
			in.Kind = pricing.Kind(o.kind)
		case "mode":
			in.Mode = pricing.Mode(o.mode)
		case "value":
			in.ValuePct = o.valuePct
		case "cost":
			in.VariableCostPerUnit = o.cost
		case "fixed":
			in.FixedCostsPerMonth = o.fixed
		case "units":
			in.UnitsPerMonth = o.units
		case "vat":
			in.VATRatePct = o.vatRate
		case "include-vat":
			in.IncludeVATInPrice = o.includeVAT
		case "growth":
			in.GrowthRatePct = o.growth
		}
	})

	if err := scenario.Validate(in); err != nil {
		return pricing.Input{}, err
	}
	return in, nil
}

func runCore(cmd *cobra.Command, a *app, o *coreOptions) error {
	in, err := o.input(cmd, a)
	if err != nil {
		return err
	}

	if o.switchTo != "" {
		if in, err = in.SwitchMode(pricing.Mode(o.switchTo)); err != nil {
			return err
		}
	}

	core, proj, err := pricing.Calculate(in)
	if err != nil {
		return err
	}

	f, err := money.NewFormatter(in.Currency, a.locale)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if o.plain {
		return report.WriteText(out, report.Summary{Input: in, Core: core, Projection: proj}, f)
	}

	v := view{w: out}
	v.title(fmt.Sprintf("Unit economics (%s, excl. VAT unless noted)", f.Currency()))
	v.row("Pricing", fmt.Sprintf("%s %s", in.Mode, money.Percent(in.ValuePct)))
	v.row("Cost per unit", f.Format(core.CostExcl))
	v.row("Price (excl.)", f.Format(core.PriceExcl))
	v.row("VAT per unit", f.Format(core.VATAmountPerUnit))
	v.row("Price (incl. VAT)", f.Format(core.PriceIncl))
	v.row("Markup", money.Percent(core.MarkupPct))
	v.row("Margin", money.Percent(core.MarginPct))
	v.row("Unit profit (excl.)", f.Format(core.UnitProfitExcl))
	v.row("Breakeven units / month", report.BreakevenText(core))
	if !core.Viable() {
		v.warn("Price does not cover the variable cost; no volume breaks even.")
	}
	v.blank()

	t := proj.Totals
	v.title("12-month totals (excl. VAT)")
	v.row("Revenue", f.Format(t.RevenueExcl))
	v.row("Variable cost", f.Format(t.VariableCost))
	v.row("Gross profit", f.Format(t.GrossProfit))
	v.row("Fixed costs", f.Format(t.FixedCosts))
	v.row("Operating profit", f.Format(t.OperatingProfit))

	if o.projection {
		v.blank()
		fmt.Fprintln(out, projectionTable(proj, f))
	}
	return nil
}
