package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-9

func nearlyEqual(t *testing.T, name string, got, want float64) {
	t.Helper()
	assert.InDelta(t, want, got, tolerance, name)
}

func TestComputeCore_MarkupForty(t *testing.T) {
	core, err := ComputeCore(DefaultInput())
	require.NoError(t, err)

	nearlyEqual(t, "costExcl", core.CostExcl, 100)
	nearlyEqual(t, "priceExcl", core.PriceExcl, 140)
	nearlyEqual(t, "markupPct", core.MarkupPct, 40)
	nearlyEqual(t, "marginPct", core.MarginPct, 40.0/140.0*100)
	nearlyEqual(t, "unitProfitExcl", core.UnitProfitExcl, 40)
	nearlyEqual(t, "vatAmountPerUnit", core.VATAmountPerUnit, 21)
	nearlyEqual(t, "priceIncl", core.PriceIncl, 161)

	require.NotNil(t, core.BreakevenUnits)
	nearlyEqual(t, "breakevenUnits", *core.BreakevenUnits, 250)
	assert.True(t, core.Viable())
}

func TestComputeCore_MarginIsInverseOfMarkup(t *testing.T) {
	in := DefaultInput()
	in.Mode = ModeMargin
	in.ValuePct = 40.0 / 140.0 * 100

	core, err := ComputeCore(in)
	require.NoError(t, err)

	assert.InDelta(t, 140, core.PriceExcl, 1e-6)
	assert.InDelta(t, 40, core.MarkupPct, 1e-6)
	assert.InDelta(t, in.ValuePct, core.MarginPct, 1e-6)
}

func TestComputeCore_VATExcludedFromDisplayedPrice(t *testing.T) {
	in := DefaultInput()
	in.IncludeVATInPrice = false

	core, err := ComputeCore(in)
	require.NoError(t, err)

	nearlyEqual(t, "priceIncl", core.PriceIncl, core.PriceExcl)
	nearlyEqual(t, "vatAmountPerUnit", core.VATAmountPerUnit, 21)
}

func TestComputeCore_DomainErrorOnlyForMarginAtOrAboveHundred(t *testing.T) {
	cases := []struct {
		name    string
		mode    Mode
		value   float64
		wantErr bool
	}{
		{"margin 99.9", ModeMargin, 99.9, false},
		{"margin 100", ModeMargin, 100, true},
		{"margin 250", ModeMargin, 250, true},
		{"markup 100", ModeMarkup, 100, false},
		{"markup 900", ModeMarkup, 900, false},
		{"markup negative", ModeMarkup, -50, false},
		{"margin negative", ModeMargin, -20, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := DefaultInput()
			in.Mode = tc.mode
			in.ValuePct = tc.value

			_, err := ComputeCore(in)
			if tc.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrMarginOutOfRange)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestComputeCore_UnknownMode(t *testing.T) {
	in := DefaultInput()
	in.Mode = "discount"

	_, err := ComputeCore(in)
	assert.ErrorIs(t, err, ErrUnknownMode)
}

func TestComputeCore_BreakevenNilWhenUnitProfitNotPositive(t *testing.T) {
	for _, markup := range []float64{0, -10, -100} {
		in := DefaultInput()
		in.ValuePct = markup

		core, err := ComputeCore(in)
		require.NoError(t, err)
		assert.Nil(t, core.BreakevenUnits, "markup %v", markup)
		assert.False(t, core.Viable())
	}
}

func TestComputeCore_BreakevenIsFixedOverContribution(t *testing.T) {
	for _, markup := range []float64{1, 25, 60, 300} {
		in := DefaultInput()
		in.ValuePct = markup

		core, err := ComputeCore(in)
		require.NoError(t, err)
		require.NotNil(t, core.BreakevenUnits)
		assert.InDelta(t, in.FixedCostsPerMonth/(core.PriceExcl-core.CostExcl), *core.BreakevenUnits, 1e-9)
	}
}

func TestComputeCore_ZeroCostGuardsPercentages(t *testing.T) {
	in := DefaultInput()
	in.VariableCostPerUnit = 0

	core, err := ComputeCore(in)
	require.NoError(t, err)

	nearlyEqual(t, "priceExcl", core.PriceExcl, 0)
	nearlyEqual(t, "markupPct", core.MarkupPct, 0)
	nearlyEqual(t, "marginPct", core.MarginPct, 0)
	assert.Nil(t, core.BreakevenUnits)
}

func TestComputeCore_PercentagesConsistent(t *testing.T) {
	for _, markup := range []float64{5, 40, 150} {
		in := DefaultInput()
		in.ValuePct = markup

		core, err := ComputeCore(in)
		require.NoError(t, err)

		m := core.MarginPct / 100
		k := core.MarkupPct / 100
		assert.InDelta(t, m/(1-m), k, 1e-9)
		assert.InDelta(t, k/(1+k), m, 1e-9)
	}
}

func TestSwitchMode_KeepsResolvedPrice(t *testing.T) {
	in := DefaultInput()

	asMargin, err := in.SwitchMode(ModeMargin)
	require.NoError(t, err)
	assert.Equal(t, ModeMargin, asMargin.Mode)
	assert.InDelta(t, 40.0/140.0*100, asMargin.ValuePct, 1e-9)

	before, err := ComputeCore(in)
	require.NoError(t, err)
	after, err := ComputeCore(asMargin)
	require.NoError(t, err)
	assert.InDelta(t, before.PriceExcl, after.PriceExcl, 1e-9)

	back, err := asMargin.SwitchMode(ModeMarkup)
	require.NoError(t, err)
	assert.InDelta(t, 40, back.ValuePct, 1e-9)

	same, err := in.SwitchMode(ModeMarkup)
	require.NoError(t, err)
	assert.Equal(t, in, same)
}

func TestSwitchMode_Errors(t *testing.T) {
	_, err := DefaultInput().SwitchMode("other")
	assert.ErrorIs(t, err, ErrUnknownMode)

	in := DefaultInput()
	in.Mode = ModeMargin
	in.ValuePct = 100
	_, err = in.SwitchMode(ModeMarkup)
	assert.ErrorIs(t, err, ErrMarginOutOfRange)
}

func TestCalculate_PropagatesDomainError(t *testing.T) {
	in := DefaultInput()
	in.Mode = ModeMargin
	in.ValuePct = 100

	_, proj, err := Calculate(in)
	require.ErrorIs(t, err, ErrMarginOutOfRange)
	assert.Empty(t, proj.Rows)

	_, proj, err = Calculate(DefaultInput())
	require.NoError(t, err)
	assert.Len(t, proj.Rows, ProjectionMonths)
	assert.False(t, math.IsNaN(proj.Totals.OperatingProfit))
}
