package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Simplici0/pricecalc/internal/money"
	"github.com/Simplici0/pricecalc/internal/pricing"
	"github.com/Simplici0/pricecalc/internal/scenario"
)

func newPromoCmd(a *app) *cobra.Command {
	var price, cost, discount, fixed, units float64

	c := &cobra.Command{
		Use:     "promo",
		Short:   "Margin after a discount and the largest discount that still breaks even",
		Example: `  bizcalc promo --price 200 --cost 120 --discount 10 --fixed 10000 --units 200`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := scenario.Check(
				scenario.NonNegative("price", price),
				scenario.NonNegative("cost", cost),
				scenario.Percent("discount", discount),
				scenario.NonNegative("fixed", fixed),
				scenario.NonNegative("units", units),
			); err != nil {
				return err
			}

			f, err := a.formatter()
			if err != nil {
				return err
			}

			discounted := pricing.ApplyDiscount(price, discount)
			margin := pricing.MarginAfterDiscount(price, cost, discount)
			maxSafe := pricing.BreakevenDiscountPct(price, cost, fixed, units)

			v := view{w: cmd.OutOrStdout()}
			v.title("Promotion")
			v.row("Discounted price", f.Format(discounted))
			v.row("Margin after discount", money.Percent(margin))
			v.row("Max safe discount", money.Percent(maxSafe))
			if discount > maxSafe {
				v.warn("This discount no longer covers fixed costs at the given volume.")
			}
			return nil
		},
	}

	c.Flags().Float64Var(&price, "price", 0, "regular price, excl. VAT")
	c.Flags().Float64Var(&cost, "cost", 0, "cost per unit, excl. VAT")
	c.Flags().Float64Var(&discount, "discount", 0, "discount %")
	c.Flags().Float64Var(&fixed, "fixed", 0, "fixed costs per month")
	c.Flags().Float64Var(&units, "units", 0, "units per month")
	return c
}

func newFeesCmd(a *app) *cobra.Command {
	var price, cost, feePct, feeFixed float64

	c := &cobra.Command{
		Use:     "fees",
		Short:   "Net proceeds and margin after payment or marketplace fees",
		Example: `  bizcalc fees --price 250 --cost 150 --fee-pct 2.9 --fee-fixed 2`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := scenario.Check(
				scenario.NonNegative("price", price),
				scenario.NonNegative("cost", cost),
				scenario.Percent("fee-pct", feePct),
				scenario.NonNegative("fee-fixed", feeFixed),
			); err != nil {
				return err
			}

			f, err := a.formatter()
			if err != nil {
				return err
			}

			res := pricing.NetAfterFees(price, feePct, feeFixed)

			v := view{w: cmd.OutOrStdout()}
			v.title("Fees")
			v.row("Fee", f.Format(res.Fee))
			v.row("Net received", f.Format(res.Net))
			v.row("Margin after fees", money.Percent(pricing.MarginAfterFees(price, cost, feePct, feeFixed)))
			return nil
		},
	}

	c.Flags().Float64Var(&price, "price", 0, "price, excl. VAT")
	c.Flags().Float64Var(&cost, "cost", 0, "cost per unit, excl. VAT")
	c.Flags().Float64Var(&feePct, "fee-pct", 0, "percentage fee")
	c.Flags().Float64Var(&feeFixed, "fee-fixed", 0, "fixed fee per transaction")
	return c
}

func newLandedCmd(a *app) *cobra.Command {
	var (
		p            pricing.LandedCostParams
		targetMargin float64
	)

	c := &cobra.Command{
		Use:     "landed",
		Aliases: []string{"imports"},
		Short:   "Landed cost of imported goods and the price for a target margin",
		Example: `  bizcalc landed --unit-cost 10 --fx 18.5 --freight 4 --duty 10 --clearance 1.5 --shrinkage 2 --target-margin 35`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := scenario.Check(
				scenario.NonNegative("unit-cost", p.UnitCostForeign),
				scenario.Positive("fx", p.FXRate),
				scenario.NonNegative("freight", p.FreightPerUnit),
				scenario.NonNegative("duty", p.DutyPct),
				scenario.NonNegative("clearance", p.ClearancePerUnit),
				scenario.Percent("shrinkage", p.ShrinkagePct),
				scenario.NonNegative("target-margin", targetMargin),
			); err != nil {
				return err
			}

			landed := pricing.LandedCostPerUnit(p)
			price, err := pricing.PriceFromMargin(landed, targetMargin)
			if err != nil {
				return err
			}

			f, err := a.formatter()
			if err != nil {
				return err
			}

			v := view{w: cmd.OutOrStdout()}
			v.title("Imports")
			v.row("Landed cost per unit", f.Format(landed))
			v.row("Target margin", money.Percent(targetMargin))
			v.row("Required price (excl.)", f.Format(price))
			return nil
		},
	}

	c.Flags().Float64Var(&p.UnitCostForeign, "unit-cost", 0, "unit cost in the supplier's currency")
	c.Flags().Float64Var(&p.FXRate, "fx", 1, "exchange rate to the local currency")
	c.Flags().Float64Var(&p.FreightPerUnit, "freight", 0, "freight per unit, local currency")
	c.Flags().Float64Var(&p.DutyPct, "duty", 0, "customs duty %")
	c.Flags().Float64Var(&p.ClearancePerUnit, "clearance", 0, "clearance cost per unit, local currency")
	c.Flags().Float64Var(&p.ShrinkagePct, "shrinkage", 0, "shrinkage %")
	c.Flags().Float64Var(&targetMargin, "target-margin", 0, "target margin %")
	return c
}

func newHourlyCmd(a *app) *cobra.Command {
	var p pricing.HourlyRateParams

	c := &cobra.Command{
		Use:     "hourly",
		Aliases: []string{"services"},
		Short:   "Hourly rate that covers overheads and hits a target margin",
		Example: `  bizcalc hourly --overheads 120000 --margin 40 --hours 120 --var-cost 150`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := scenario.Check(
				scenario.NonNegative("overheads", p.MonthlyFixedOverheads),
				scenario.NonNegative("margin", p.TargetMarginPct),
				scenario.NonNegative("hours", p.BillableHoursPerMonth),
				scenario.NonNegative("var-cost", p.VariableCostPerHour),
			); err != nil {
				return err
			}

			rate, err := pricing.BreakevenHourlyRate(p)
			if err != nil {
				return err
			}

			f, err := a.formatter()
			if err != nil {
				return err
			}

			v := view{w: cmd.OutOrStdout()}
			v.title("Services")
			v.row("Hourly rate (excl.)", f.Format(rate))
			if p.BillableHoursPerMonth < 1 {
				v.warn("Billable hours below 1 are treated as 1.")
			}
			return nil
		},
	}

	c.Flags().Float64Var(&p.MonthlyFixedOverheads, "overheads", 0, "fixed overheads per month")
	c.Flags().Float64Var(&p.TargetMarginPct, "margin", 0, "target margin %")
	c.Flags().Float64Var(&p.BillableHoursPerMonth, "hours", 0, "billable hours per month")
	c.Flags().Float64Var(&p.VariableCostPerHour, "var-cost", 0, "variable cost per hour")
	return c
}
