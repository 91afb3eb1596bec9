package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Simplici0/pricecalc/internal/config"
	"github.com/Simplici0/pricecalc/internal/money"
	"github.com/Simplici0/pricecalc/internal/pricing"
)

// app carries settings shared by every subcommand.
type app struct {
	currency string
	locale   string
}

// NewRootCmd builds the bizcalc command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "bizcalc",
		Short: "Pricing, breakeven and unit-economics calculators",
		Long: `bizcalc prices products and services and projects their economics.

Calculators:
  core          price, margin, breakeven and a 12-month projection
  convert       markup <-> margin
  solve         fill in price, cost, margin or markup
  promo         discounts and the largest safe discount
  fees          payment and marketplace fees
  landed        landed cost of imported goods
  hourly        breakeven hourly rate for services
  inventory     economic order quantity and reorder point
  subscription  LTV, CAC payback and LTV:CAC
  mix           weighted breakeven for a product mix
  elasticity    revenue-maximising price under linear demand
  vat           VAT payable for a period`,
		SilenceUsage:      true,
		PersistentPreRunE: a.load,
	}

	root.PersistentFlags().StringVar(&a.currency, "currency", "", "ISO 4217 currency code (default $DEFAULT_CURRENCY or ZAR)")
	root.PersistentFlags().StringVar(&a.locale, "locale", "", "BCP 47 locale for money formatting (default $LOCALE or en-ZA)")

	root.AddCommand(
		newCoreCmd(a),
		newConvertCmd(a),
		newSolveCmd(a),
		newPromoCmd(a),
		newFeesCmd(a),
		newLandedCmd(a),
		newHourlyCmd(a),
		newInventoryCmd(a),
		newSubscriptionCmd(a),
		newMixCmd(a),
		newElasticityCmd(a),
		newVATCmd(a),
		newVersionCmd(),
	)
	return root
}

// Execute runs the command tree against os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

func (a *app) load(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if a.currency == "" {
		a.currency = cfg.DefaultCurrency
	}
	a.currency = strings.ToUpper(strings.TrimSpace(a.currency))
	if a.locale == "" {
		a.locale = cfg.Locale
	}

	if _, err := a.formatter(); err != nil {
		return fmt.Errorf("invalid currency settings: %w", err)
	}
	return nil
}

func (a *app) formatter() (*money.Formatter, error) {
	return money.NewFormatter(a.currency, a.locale)
}

// baseInput is the default scenario in the selected currency.
func (a *app) baseInput() pricing.Input {
	in := pricing.DefaultInput()
	if a.currency != "" {
		in.Currency = a.currency
	}
	return in
}
