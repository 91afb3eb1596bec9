package money

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	DefaultCurrency = "ZAR"
	DefaultLocale   = "en-ZA"
)

// Formatter renders amounts of one currency for one locale.
type Formatter struct {
	unit    currency.Unit
	scale   int32
	printer *message.Printer
}

// ParseCurrency validates an ISO 4217 code such as "ZAR" or "usd".
func ParseCurrency(code string) (currency.Unit, error) {
	unit, err := currency.ParseISO(strings.TrimSpace(code))
	if err != nil {
		return currency.Unit{}, fmt.Errorf("parse currency %q: %w", code, err)
	}
	return unit, nil
}

// NewFormatter returns a formatter for the currency code and BCP 47 locale.
// An empty locale falls back to DefaultLocale.
func NewFormatter(code, locale string) (*Formatter, error) {
	unit, err := ParseCurrency(code)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(locale) == "" {
		locale = DefaultLocale
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parse locale %q: %w", locale, err)
	}

	scale, _ := currency.Standard.Rounding(unit)
	return &Formatter{
		unit:    unit,
		scale:   int32(scale),
		printer: message.NewPrinter(tag),
	}, nil
}

// Currency returns the ISO code of the formatter's currency.
func (f *Formatter) Currency() string {
	return f.unit.String()
}

// Format renders amount with the currency symbol, rounded to the currency's
// standard number of decimals.
func (f *Formatter) Format(amount float64) string {
	if s, ok := nonFinite(amount); ok {
		return s
	}
	rounded := Round(amount, f.scale).InexactFloat64()
	return f.printer.Sprint(currency.Symbol(f.unit.Amount(rounded)))
}

// Format is a convenience wrapper around NewFormatter for a single amount.
func Format(amount float64, code, locale string) (string, error) {
	f, err := NewFormatter(code, locale)
	if err != nil {
		return "", err
	}
	return f.Format(amount), nil
}

// Round rounds half away from zero to places decimals.
func Round(v float64, places int32) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(places)
}

// Fixed renders v with exactly places decimals.
func Fixed(v float64, places int32) string {
	if s, ok := nonFinite(v); ok {
		return s
	}
	return decimal.NewFromFloat(v).StringFixed(places)
}

// Percent renders a percentage with two decimals, e.g. "28.57%".
func Percent(v float64) string {
	return Fixed(v, 2) + "%"
}

func nonFinite(v float64) (string, bool) {
	switch {
	case math.IsInf(v, 1):
		return "∞", true
	case math.IsInf(v, -1):
		return "-∞", true
	case math.IsNaN(v):
		return "n/a", true
	}
	return "", false
}
