package scenario

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Simplici0/pricecalc/internal/money"
	"github.com/Simplici0/pricecalc/internal/pricing"
)

// FieldError reports an invalid input field.
type FieldError struct {
	Field string
	Msg   string
}

func (e *FieldError) Error() string {
	return e.Field + " " + e.Msg
}

func fieldErr(field, format string, args ...any) error {
	return &FieldError{Field: field, Msg: fmt.Sprintf(format, args...)}
}

// IsFieldError reports whether err is, or wraps, a *FieldError.
func IsFieldError(err error) bool {
	var fe *FieldError
	return errors.As(err, &fe)
}

// Validate checks that in only carries finite, in-range values. Margin
// targets of 100% or more are left to pricing.ComputeCore.
func Validate(in pricing.Input) error {
	if in.Kind != pricing.KindGoods && in.Kind != pricing.KindServices {
		return fieldErr("kind", "must be goods or services")
	}
	if _, err := money.ParseCurrency(in.Currency); err != nil {
		return fieldErr("currency", "must be an ISO 4217 code")
	}
	if in.Mode != pricing.ModeMarkup && in.Mode != pricing.ModeMargin {
		return fieldErr("mode", "must be markup or margin")
	}

	checks := []struct {
		field string
		value float64
		check func(field string, v float64) error
	}{
		{"vatRatePct", in.VATRatePct, Percent},
		{"variableCostPerUnit", in.VariableCostPerUnit, NonNegative},
		{"fixedCostsPerMonth", in.FixedCostsPerMonth, NonNegative},
		{"unitsPerMonth", in.UnitsPerMonth, NonNegative},
		{"valuePct", in.ValuePct, NonNegative},
		{"growthRatePct", in.GrowthRatePct, growthRate},
	}
	for _, c := range checks {
		if err := c.check(c.field, c.value); err != nil {
			return err
		}
	}
	return nil
}

// Check returns the first failed check, if any.
func Check(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// Finite rejects NaN and infinities.
func Finite(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fieldErr(field, "must be a finite number")
	}
	return nil
}

// NonNegative requires a finite value >= 0.
func NonNegative(field string, v float64) error {
	if err := Finite(field, v); err != nil {
		return err
	}
	if v < 0 {
		return fieldErr(field, "must be greater than or equal to 0")
	}
	return nil
}

// Positive requires a finite value > 0.
func Positive(field string, v float64) error {
	if err := Finite(field, v); err != nil {
		return err
	}
	if v <= 0 {
		return fieldErr(field, "must be greater than 0")
	}
	return nil
}

// Percent requires a finite value in [0, 100].
func Percent(field string, v float64) error {
	if err := NonNegative(field, v); err != nil {
		return err
	}
	if v > 100 {
		return fieldErr(field, "must be between 0 and 100")
	}
	return nil
}

func growthRate(field string, v float64) error {
	if err := Finite(field, v); err != nil {
		return err
	}
	if v < -100 {
		return fieldErr(field, "must be greater than or equal to -100")
	}
	return nil
}

// ParseFloat parses a user-supplied number, rejecting non-finite values.
func ParseFloat(raw, field string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fieldErr(field, "must be numeric")
	}
	if err := Finite(field, v); err != nil {
		return 0, err
	}
	return v, nil
}
