// Package scenario turns user-supplied documents and form values into
// validated pricing inputs.
package scenario

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Simplici0/pricecalc/internal/pricing"
)

// ErrTrailingData is returned when a JSON body holds more than one value.
var ErrTrailingData = errors.New("unexpected data after JSON value")

// DecodeStrictJSON decodes exactly one JSON value from r into dst, rejecting
// unknown fields and trailing data. An empty input returns io.EOF.
func DecodeStrictJSON(r io.Reader, dst any) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return ErrTrailingData
	}
	return nil
}

// normalize canonicalises free-form fields before validation.
func normalize(in pricing.Input) pricing.Input {
	in.Currency = strings.ToUpper(strings.TrimSpace(in.Currency))
	return in
}

// DecodeYAML reads a scenario document on top of base: fields absent from
// the document keep their base values. JSON documents are accepted as well.
func DecodeYAML(r io.Reader, base pricing.Input) (pricing.Input, error) {
	in := base

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&in); err != nil && !errors.Is(err, io.EOF) {
		return pricing.Input{}, fmt.Errorf("decode scenario: %w", err)
	}

	in = normalize(in)
	if err := Validate(in); err != nil {
		return pricing.Input{}, err
	}
	return in, nil
}

// DecodeJSON reads a single JSON scenario on top of base, rejecting unknown
// fields and trailing data. An empty body yields base.
func DecodeJSON(r io.Reader, base pricing.Input) (pricing.Input, error) {
	in := base
	if err := DecodeStrictJSON(r, &in); err != nil && !errors.Is(err, io.EOF) {
		return pricing.Input{}, fmt.Errorf("decode scenario: %w", err)
	}

	in = normalize(in)
	if err := Validate(in); err != nil {
		return pricing.Input{}, err
	}
	return in, nil
}

// LoadFile reads a YAML (or JSON) scenario file on top of base.
func LoadFile(path string, base pricing.Input) (pricing.Input, error) {
	f, err := os.Open(path)
	if err != nil {
		return pricing.Input{}, fmt.Errorf("open scenario file: %w", err)
	}
	defer f.Close()

	return DecodeYAML(f, base)
}

// FromValues builds an input from form or query values. Missing or empty
// values keep their base values.
func FromValues(values url.Values, base pricing.Input) (pricing.Input, error) {
	in := base

	if v := strings.TrimSpace(values.Get("kind")); v != "" {
		in.Kind = pricing.Kind(v)
	}
	if v := strings.TrimSpace(values.Get("currency")); v != "" {
		in.Currency = v
	}
	if v := strings.TrimSpace(values.Get("mode")); v != "" {
		in.Mode = pricing.Mode(v)
	}
	if v := strings.TrimSpace(values.Get("includeVatInPrice")); v != "" {
		in.IncludeVATInPrice = v == "1" || strings.EqualFold(v, "true") || v == "on"
	}

	numbers := []struct {
		key string
		dst *float64
	}{
		{"vatRatePct", &in.VATRatePct},
		{"variableCostPerUnit", &in.VariableCostPerUnit},
		{"fixedCostsPerMonth", &in.FixedCostsPerMonth},
		{"unitsPerMonth", &in.UnitsPerMonth},
		{"valuePct", &in.ValuePct},
		{"growthRatePct", &in.GrowthRatePct},
	}
	for _, n := range numbers {
		raw := values.Get(n.key)
		if strings.TrimSpace(raw) == "" {
			continue
		}
		v, err := ParseFloat(raw, n.key)
		if err != nil {
			return in, err
		}
		*n.dst = v
	}

	in = normalize(in)
	if err := Validate(in); err != nil {
		return in, err
	}
	return in, nil
}

// Mix is a multi-product breakeven scenario.
type Mix struct {
	FixedCosts float64              `json:"fixedCosts" yaml:"fixedCosts"`
	Products   []pricing.ProductMix `json:"products" yaml:"products"`
}

// Validate checks the mix for finite, non-negative values.
func (m Mix) Validate() error {
	if err := NonNegative("fixedCosts", m.FixedCosts); err != nil {
		return err
	}
	if len(m.Products) == 0 {
		return fieldErr("products", "must not be empty")
	}
	for i, p := range m.Products {
		prefix := fmt.Sprintf("products[%d].", i)
		if err := Percent(prefix+"mixPct", p.MixPct); err != nil {
			return err
		}
		if err := NonNegative(prefix+"priceExcl", p.PriceExcl); err != nil {
			return err
		}
		if err := NonNegative(prefix+"costExcl", p.CostExcl); err != nil {
			return err
		}
	}
	return nil
}

// LoadMixFile reads a YAML (or JSON) product mix file.
func LoadMixFile(path string) (Mix, error) {
	f, err := os.Open(path)
	if err != nil {
		return Mix{}, fmt.Errorf("open mix file: %w", err)
	}
	defer f.Close()

	var m Mix
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return Mix{}, fmt.Errorf("decode mix: %w", err)
	}
	if err := m.Validate(); err != nil {
		return Mix{}, err
	}
	return m, nil
}
