package cmd

import (
	"fmt"
	"math"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Simplici0/pricecalc/internal/money"
	"github.com/Simplici0/pricecalc/internal/pricing"
	"github.com/Simplici0/pricecalc/internal/scenario"
)

func newInventoryCmd(a *app) *cobra.Command {
	var demand, orderCost, holding, daily, leadTime, safety float64

	c := &cobra.Command{
		Use:     "inventory",
		Short:   "Economic order quantity and reorder point",
		Example: `  bizcalc inventory --annual-demand 24000 --order-cost 500 --holding-cost 12 --daily-demand 80 --lead-time 10 --safety-stock 200`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := scenario.Check(
				scenario.NonNegative("annual-demand", demand),
				scenario.NonNegative("order-cost", orderCost),
				scenario.NonNegative("holding-cost", holding),
				scenario.NonNegative("daily-demand", daily),
				scenario.NonNegative("lead-time", leadTime),
				scenario.NonNegative("safety-stock", safety),
			); err != nil {
				return err
			}

			v := view{w: cmd.OutOrStdout()}
			v.title("Inventory")
			v.row("Economic order quantity", money.Fixed(pricing.EOQ(demand, orderCost, holding), 2))
			v.row("Reorder point", money.Fixed(pricing.ReorderPoint(daily, leadTime, safety), 2))
			return nil
		},
	}

	c.Flags().Float64Var(&demand, "annual-demand", 0, "units demanded per year")
	c.Flags().Float64Var(&orderCost, "order-cost", 0, "cost of placing one order")
	c.Flags().Float64Var(&holding, "holding-cost", 0, "holding cost per unit per year")
	c.Flags().Float64Var(&daily, "daily-demand", 0, "average units demanded per day")
	c.Flags().Float64Var(&leadTime, "lead-time", 0, "supplier lead time in days")
	c.Flags().Float64Var(&safety, "safety-stock", 0, "safety stock in units")
	return c
}

func newSubscriptionCmd(a *app) *cobra.Command {
	var arpu, gm, churn, cac float64

	c := &cobra.Command{
		Use:     "subscription",
		Short:   "Customer lifetime value, CAC payback and LTV:CAC",
		Example: `  bizcalc subscription --arpu 299 --gm 70 --churn 5 --cac 1200`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := scenario.Check(
				scenario.NonNegative("arpu", arpu),
				scenario.Percent("gm", gm),
				scenario.Percent("churn", churn),
				scenario.NonNegative("cac", cac),
			); err != nil {
				return err
			}

			f, err := a.formatter()
			if err != nil {
				return err
			}

			ltv := pricing.LTVSimple(arpu, gm, churn)
			payback := pricing.CACPaybackMonths(cac, arpu, gm)
			ratio := pricing.LTVToCAC(ltv, cac)

			v := view{w: cmd.OutOrStdout()}
			v.title("Subscription")
			v.row("Lifetime value", f.Format(ltv))
			v.row("CAC payback (months)", money.Fixed(payback, 2))
			v.row("LTV:CAC", money.Fixed(ratio, 2)+"x")
			if math.IsInf(ltv, 1) {
				v.warn("Zero churn: lifetime value is unbounded.")
			}
			return nil
		},
	}

	c.Flags().Float64Var(&arpu, "arpu", 0, "average revenue per user per month")
	c.Flags().Float64Var(&gm, "gm", 0, "gross margin %")
	c.Flags().Float64Var(&churn, "churn", 0, "monthly churn %")
	c.Flags().Float64Var(&cac, "cac", 0, "customer acquisition cost")
	return c
}

func newMixCmd(a *app) *cobra.Command {
	var file string

	c := &cobra.Command{
		Use:   "mix",
		Short: "Breakeven volume for a multi-product sales mix",
		Long: `Reads a product mix from a YAML file:

  fixedCosts: 2800
  products:
    - name: mugs
      mixPct: 60
      priceExcl: 100
      costExcl: 60`,
		Example: `  bizcalc mix --file mix.yaml`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mix, err := scenario.LoadMixFile(file)
			if err != nil {
				return err
			}

			f, err := a.formatter()
			if err != nil {
				return err
			}

			total := pricing.WeightedBreakevenUnits(mix.Products, mix.FixedCosts)

			out := cmd.OutOrStdout()
			v := view{w: out}
			v.title("Product mix")
			v.row("Fixed costs", f.Format(mix.FixedCosts))
			if math.IsInf(total, 1) {
				v.row("Breakeven units / month", "N/A (non-viable)")
				v.warn("The weighted contribution per unit is not positive.")
				return nil
			}
			v.row("Breakeven units / month", money.Fixed(total, 2))

			t := newTable("Product", "Mix", "Price", "Cost", "Breakeven units")
			for i, p := range mix.Products {
				name := p.Name
				if name == "" {
					name = "#" + strconv.Itoa(i+1)
				}
				t.Row(name, money.Percent(p.MixPct), f.Format(p.PriceExcl), f.Format(p.CostExcl), money.Fixed(total*p.MixPct/100, 2))
			}
			v.blank()
			fmt.Fprintln(out, t.String())
			return nil
		},
	}

	c.Flags().StringVarP(&file, "file", "f", "", "YAML product mix file")
	_ = c.MarkFlagRequired("file")
	return c
}

func newElasticityCmd(a *app) *cobra.Command {
	var intercept, slope float64

	c := &cobra.Command{
		Use:     "elasticity",
		Short:   "Revenue-maximising price for linear demand Q = a - b*P",
		Example: `  bizcalc elasticity --a 2000 --b 5`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := scenario.Check(
				scenario.NonNegative("a", intercept),
				scenario.Positive("b", slope),
			); err != nil {
				return err
			}

			f, err := a.formatter()
			if err != nil {
				return err
			}

			price := pricing.RevenueMaxPriceLinear(intercept, slope)
			qty := pricing.LinearDemand(intercept, slope, price)

			v := view{w: cmd.OutOrStdout()}
			v.title("Price elasticity")
			v.row("Revenue-maximising price", f.Format(price))
			v.row("Quantity demanded", money.Fixed(qty, 2))
			v.row("Revenue", f.Format(price*qty))
			return nil
		},
	}

	c.Flags().Float64Var(&intercept, "a", 0, "demand at a price of zero")
	c.Flags().Float64Var(&slope, "b", 0, "units lost per unit of price")
	return c
}

func newVATCmd(a *app) *cobra.Command {
	var p pricing.VATPeriod

	c := &cobra.Command{
		Use:     "vat",
		Short:   "Output tax, input tax and VAT payable for a period",
		Example: `  bizcalc vat --sales 100000 --purchases 40000 --rate 15`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := scenario.Check(
				scenario.NonNegative("sales", p.SalesExcl),
				scenario.NonNegative("purchases", p.PurchasesExcl),
				scenario.Percent("rate", p.VATRatePct),
			); err != nil {
				return err
			}

			f, err := a.formatter()
			if err != nil {
				return err
			}

			res := pricing.VATSummary(p)

			v := view{w: cmd.OutOrStdout()}
			v.title("VAT for the period")
			v.row("Output tax", f.Format(res.OutputTax))
			v.row("Input tax", f.Format(res.InputTax))
			v.row("Payable", f.Format(res.Payable))
			if res.Payable < 0 {
				v.warn("Input tax exceeds output tax; a refund is due.")
			}
			return nil
		},
	}

	c.Flags().Float64Var(&p.SalesExcl, "sales", 0, "sales for the period, excl. VAT")
	c.Flags().Float64Var(&p.PurchasesExcl, "purchases", 0, "purchases for the period, excl. VAT")
	c.Flags().Float64Var(&p.VATRatePct, "rate", pricing.DefaultInput().VATRatePct, "VAT rate %")
	return c
}
