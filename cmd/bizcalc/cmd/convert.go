package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Simplici0/pricecalc/internal/money"
	"github.com/Simplici0/pricecalc/internal/pricing"
	"github.com/Simplici0/pricecalc/internal/scenario"
)

func newConvertCmd(a *app) *cobra.Command {
	var (
		from string
		pct  float64
	)

	c := &cobra.Command{
		Use:   "convert",
		Short: "Convert between markup % and margin %",
		Example: `  bizcalc convert --from markup --pct 40
  bizcalc convert --from margin --pct 28.57`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := scenario.Finite("pct", pct); err != nil {
				return err
			}

			var margin, markup float64
			switch pricing.Mode(from) {
			case pricing.ModeMargin:
				m, err := pricing.MarginToMarkup(pct)
				if err != nil {
					return err
				}
				margin, markup = pct, m
			case pricing.ModeMarkup:
				if pct <= -100 {
					return errors.New("pct must be greater than -100")
				}
				margin, markup = pricing.MarkupToMargin(pct), pct
			default:
				return fmt.Errorf("%w: %q", pricing.ErrUnknownMode, from)
			}

			v := view{w: cmd.OutOrStdout()}
			v.row("Markup", money.Percent(markup))
			v.row("Margin", money.Percent(margin))
			return nil
		},
	}

	c.Flags().StringVar(&from, "from", string(pricing.ModeMarkup), "input kind: markup or margin")
	c.Flags().Float64Var(&pct, "pct", 0, "percentage to convert")
	_ = c.MarkFlagRequired("pct")
	return c
}

func newSolveCmd(a *app) *cobra.Command {
	var (
		target string
		req    pricing.SolveRequest
	)

	c := &cobra.Command{
		Use:   "solve",
		Short: "Fill in the missing side of price, cost and margin",
		Long: `Solves one unknown of the pricing triangle:

  price   from --cost and --margin
  cost    from --price and --margin
  margin  from --price and --cost
  markup  from --price and --cost`,
		Example: `  bizcalc solve --for price --cost 100 --margin 35
  bizcalc solve --for margin --price 180 --cost 120`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req.SolveFor = pricing.SolveTarget(target)
			if err := scenario.Check(
				scenario.NonNegative("cost", req.CostExcl),
				scenario.NonNegative("price", req.PriceExcl),
				scenario.Finite("margin", req.MarginPct),
			); err != nil {
				return err
			}

			res, err := pricing.Solve(req)
			if err != nil {
				return err
			}

			f, err := a.formatter()
			if err != nil {
				return err
			}

			v := view{w: cmd.OutOrStdout()}
			v.title("Solved " + target)
			v.row("Cost (excl.)", f.Format(res.CostExcl))
			v.row("Price (excl.)", f.Format(res.PriceExcl))
			v.row("Margin", money.Percent(res.MarginPct))
			v.row("Markup", money.Percent(res.MarkupPct))
			return nil
		},
	}

	c.Flags().StringVar(&target, "for", string(pricing.SolvePrice), "unknown to solve: price, cost, margin or markup")
	c.Flags().Float64Var(&req.CostExcl, "cost", 0, "cost per unit, excl. VAT")
	c.Flags().Float64Var(&req.PriceExcl, "price", 0, "price per unit, excl. VAT")
	c.Flags().Float64Var(&req.MarginPct, "margin", 0, "margin %")
	return c
}
