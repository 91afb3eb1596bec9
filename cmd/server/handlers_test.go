package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Simplici0/pricecalc/internal/config"
)

func newTestHandler(t *testing.T, cfg config.Config) http.Handler {
	t.Helper()
	if cfg.DefaultCurrency == "" {
		cfg.DefaultCurrency = "ZAR"
	}
	return newServer(cfg, zap.NewNop()).routes()
}

func postJSON(t *testing.T, h http.Handler, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	var out map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), rr.Body.String())
	return rr, out
}

func TestHealth(t *testing.T) {
	h := newTestHandler(t, config.Config{APIKeys: []string{"secret"}})

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestCalculate_Defaults(t *testing.T) {
	h := newTestHandler(t, config.Config{})

	rr, out := postJSON(t, h, "/api/v1/calculate", `{}`)
	require.Equal(t, http.StatusOK, rr.Code)

	core := out["core"].(map[string]any)
	assert.InDelta(t, 140.0, core["priceExcl"], 1e-9)
	assert.InDelta(t, 161.0, core["priceIncl"], 1e-9)
	assert.InDelta(t, 250.0, core["breakevenUnits"], 1e-9)

	proj := out["projection"].(map[string]any)
	assert.Len(t, proj["rows"], 12)

	input := out["input"].(map[string]any)
	assert.Equal(t, "ZAR", input["currency"])

	formatted := out["formatted"].(map[string]any)
	assert.Equal(t, "40.00%", formatted["markupPct"])
	assert.Equal(t, "250.00", formatted["breakevenUnits"])
}

func TestCalculate_NonViableBreakevenIsNull(t *testing.T) {
	h := newTestHandler(t, config.Config{})

	rr, out := postJSON(t, h, "/api/v1/calculate", `{"valuePct": 0}`)
	require.Equal(t, http.StatusOK, rr.Code)

	core := out["core"].(map[string]any)
	assert.Nil(t, core["breakevenUnits"])
	assert.Equal(t, "N/A (non-viable)", out["formatted"].(map[string]any)["breakevenUnits"])
}

func TestCalculate_ClientErrors(t *testing.T) {
	h := newTestHandler(t, config.Config{})

	cases := []struct {
		name string
		body string
		want string
	}{
		{"margin at 100", `{"mode":"margin","valuePct":100}`, "margin"},
		{"negative cost", `{"variableCostPerUnit":-5}`, "variableCostPerUnit"},
		{"unknown field", `{"price":10}`, "invalid JSON body"},
		{"bad currency", `{"currency":"RANDS"}`, "currency"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr, out := postJSON(t, h, "/api/v1/calculate", tc.body)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Contains(t, out["error"], tc.want)
		})
	}
}

func TestCalculateText(t *testing.T) {
	h := newTestHandler(t, config.Config{})

	form := url.Values{}
	form.Set("mode", "margin")
	form.Set("valuePct", "50")

	req := httptest.NewRequest(http.MethodPost, "/calculate/text", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/plain")

	body := rr.Body.String()
	assert.Contains(t, body, "Margin: 50.00%")
	assert.Contains(t, body, "Markup: 100.00%")
	assert.Contains(t, body, "Projection:")

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/calculate/text?unitsPerMonth=abc", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "unitsPerMonth")
}

func TestConvert(t *testing.T) {
	h := newTestHandler(t, config.Config{})

	rr, out := postJSON(t, h, "/api/v1/convert", `{"from":"markup","pct":40}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.InDelta(t, 28.571428, out["marginPct"], 1e-5)

	rr, out = postJSON(t, h, "/api/v1/convert", `{"from":"margin","pct":50}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.InDelta(t, 100.0, out["markupPct"], 1e-9)

	rr, _ = postJSON(t, h, "/api/v1/convert", `{"from":"margin","pct":100}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr, _ = postJSON(t, h, "/api/v1/convert", `{"from":"cost-plus","pct":10}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSolve(t *testing.T) {
	h := newTestHandler(t, config.Config{})

	rr, out := postJSON(t, h, "/api/v1/pricing/solve", `{"solveFor":"price","costExcl":100,"marginPct":50}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.InDelta(t, 200.0, out["priceExcl"], 1e-9)
	assert.InDelta(t, 100.0, out["markupPct"], 1e-9)

	rr, out = postJSON(t, h, "/api/v1/pricing/solve", `{"solveFor":"volume"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, out["error"], "volume")
}

func TestAdvancedCalculators(t *testing.T) {
	h := newTestHandler(t, config.Config{})

	cases := []struct {
		path  string
		body  string
		field string
		want  float64
		delta float64
	}{
		{"/api/v1/promos", `{"priceExcl":200,"costExcl":120,"discountPct":10,"fixedCostsPerMonth":10000,"units":200}`, "discountedPrice", 180, 1e-9},
		{"/api/v1/promos", `{"priceExcl":200,"costExcl":120,"discountPct":10,"fixedCostsPerMonth":10000,"units":200}`, "maxSafeDiscountPct", 15, 1e-9},
		{"/api/v1/fees", `{"priceExcl":250,"costExcl":150,"feePct":2.9,"feeFixed":2}`, "net", 240.75, 1e-9},
		{"/api/v1/fees", `{"priceExcl":250,"costExcl":150,"feePct":2.9,"feeFixed":2}`, "marginPct", 36.3, 1e-9},
		{"/api/v1/imports", `{"unitCostForeign":10,"fxRate":18.5,"freightPerUnit":4,"dutyPct":10,"clearancePerUnit":1.5,"shrinkagePct":2,"targetMarginPct":35}`, "requiredPrice", 328.10, 0.01},
		{"/api/v1/services", `{"monthlyFixedOverheads":120000,"targetMarginPct":40,"billableHoursPerMonth":120,"variableCostPerHour":150}`, "hourlyRate", 1250, 1e-9},
		{"/api/v1/inventory", `{"annualDemand":24000,"orderCost":500,"holdingCostPerUnitPerYear":12,"avgDailyDemand":80,"leadTimeDays":10,"safetyStockUnits":200}`, "eoq", 1414.21, 0.01},
		{"/api/v1/inventory", `{"annualDemand":24000,"orderCost":500,"holdingCostPerUnitPerYear":12,"avgDailyDemand":80,"leadTimeDays":10,"safetyStockUnits":200}`, "reorderPoint", 1000, 1e-9},
		{"/api/v1/subscription", `{"arpu":299,"gmPct":70,"churnPct":5,"cac":1200}`, "ltv", 4186, 1e-9},
		{"/api/v1/mix", `{"fixedCosts":2800,"products":[{"mixPct":60,"priceExcl":100,"costExcl":60},{"mixPct":40,"priceExcl":50,"costExcl":40}]}`, "breakevenUnits", 100, 1e-9},
		{"/api/v1/elasticity", `{"a":2000,"b":5}`, "revenue", 200000, 1e-9},
		{"/api/v1/vat", `{"salesExcl":100000,"purchasesExcl":40000,"vatRatePct":15}`, "payable", 9000, 1e-9},
	}

	for _, tc := range cases {
		t.Run(tc.path+" "+tc.field, func(t *testing.T) {
			rr, out := postJSON(t, h, tc.path, tc.body)
			require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
			assert.InDelta(t, tc.want, out[tc.field], tc.delta)
		})
	}
}

func TestSubscription_InfiniteValuesAreFlagged(t *testing.T) {
	h := newTestHandler(t, config.Config{})

	rr, out := postJSON(t, h, "/api/v1/subscription", `{"arpu":299,"gmPct":70,"churnPct":0,"cac":0}`)
	require.Equal(t, http.StatusOK, rr.Code)

	assert.Nil(t, out["ltv"])
	assert.Equal(t, true, out["ltvInfinite"])
	assert.Nil(t, out["ltvToCac"])
	assert.Equal(t, true, out["ltvToCacInfinite"])
	assert.InDelta(t, 0.0, out["paybackMonths"], 1e-9)
	assert.Equal(t, false, out["paybackMonthsInfinite"])
}

func TestMix_NonViable(t *testing.T) {
	h := newTestHandler(t, config.Config{})

	rr, out := postJSON(t, h, "/api/v1/mix", `{"fixedCosts":100,"products":[{"mixPct":100,"priceExcl":10,"costExcl":12}]}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Nil(t, out["breakevenUnits"])
	assert.Equal(t, true, out["breakevenUnitsInfinite"])

	rr, _ = postJSON(t, h, "/api/v1/mix", `{"fixedCosts":100,"products":[]}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAdvancedCalculators_Validation(t *testing.T) {
	h := newTestHandler(t, config.Config{})

	cases := []struct {
		path string
		body string
		want string
	}{
		{"/api/v1/promos", `{"priceExcl":200,"discountPct":120}`, "discountPct"},
		{"/api/v1/fees", `{"priceExcl":-1}`, "priceExcl"},
		{"/api/v1/imports", `{"unitCostForeign":10,"fxRate":0}`, "fxRate"},
		{"/api/v1/imports", `{"unitCostForeign":10,"fxRate":1,"targetMarginPct":100}`, "margin"},
		{"/api/v1/services", `{"targetMarginPct":100,"variableCostPerHour":10}`, "margin"},
		{"/api/v1/elasticity", `{"a":2000,"b":0}`, "b"},
		{"/api/v1/vat", `{"vatRatePct":150}`, "vatRatePct"},
	}

	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			rr, out := postJSON(t, h, tc.path, tc.body)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Contains(t, out["error"], tc.want)
		})
	}
}

func TestCalculate_OverflowingResultIsRejected(t *testing.T) {
	h := newTestHandler(t, config.Config{})

	bodies := map[string]string{
		"huge markup":     `{"valuePct":1e308}`,
		"huge projection": `{"variableCostPerUnit":1e307,"unitsPerMonth":1e10}`,
		"margin near 100": `{"mode":"margin","valuePct":99.9999999999999,"variableCostPerUnit":1e300}`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			rr, out := postJSON(t, h, "/api/v1/calculate", body)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, "application/json; charset=utf-8", rr.Header().Get("Content-Type"))
			assert.Contains(t, out["error"], "overflows")
		})
	}

	rr, out := postJSON(t, h, "/api/v1/elasticity", `{"a":1e308,"b":1e-300}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, out["error"], "overflows")
}

func TestDecode_RejectsTrailingData(t *testing.T) {
	h := newTestHandler(t, config.Config{})

	for _, path := range []string{"/api/v1/calculate", "/api/v1/vat", "/api/v1/convert"} {
		t.Run(path, func(t *testing.T) {
			rr, out := postJSON(t, h, path, `{} trailing-garbage`)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Contains(t, out["error"], "invalid JSON body")

			rr, _ = postJSON(t, h, path, `{}{}`)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}
}

func TestCalculate_CurrencyIsUpperCased(t *testing.T) {
	h := newTestHandler(t, config.Config{})

	rr, out := postJSON(t, h, "/api/v1/calculate", `{"currency":" usd "}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "USD", out["input"].(map[string]any)["currency"])
}
