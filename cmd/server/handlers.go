package main

import (
	"bytes"
	"fmt"
	"math"
	"net/http"

	"github.com/Simplici0/pricecalc/internal/money"
	"github.com/Simplici0/pricecalc/internal/pricing"
	"github.com/Simplici0/pricecalc/internal/report"
	"github.com/Simplici0/pricecalc/internal/scenario"
)

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respond(w, r, map[string]string{"status": "ok"})
}

type formattedCore struct {
	CostExcl       string `json:"costExcl"`
	PriceExcl      string `json:"priceExcl"`
	PriceIncl      string `json:"priceIncl"`
	UnitProfitExcl string `json:"unitProfitExcl"`
	MarkupPct      string `json:"markupPct"`
	MarginPct      string `json:"marginPct"`
	BreakevenUnits string `json:"breakevenUnits"`
}

type calculateResponse struct {
	Input      pricing.Input      `json:"input"`
	Core       pricing.Core       `json:"core"`
	Projection pricing.Projection `json:"projection"`
	Formatted  formattedCore      `json:"formatted"`
}

func (s *server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	in, err := scenario.DecodeJSON(http.MaxBytesReader(w, r.Body, maxBodyBytes), s.defaults())
	if err != nil {
		if scenario.IsFieldError(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	core, proj, err := pricing.Calculate(in)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	f, err := money.NewFormatter(in.Currency, s.cfg.Locale)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.respond(w, r, calculateResponse{
		Input:      in,
		Core:       core,
		Projection: proj,
		Formatted: formattedCore{
			CostExcl:       f.Format(core.CostExcl),
			PriceExcl:      f.Format(core.PriceExcl),
			PriceIncl:      f.Format(core.PriceIncl),
			UnitProfitExcl: f.Format(core.UnitProfitExcl),
			MarkupPct:      money.Percent(core.MarkupPct),
			MarginPct:      money.Percent(core.MarginPct),
			BreakevenUnits: report.BreakevenText(core),
		},
	})
}

func (s *server) handleCalculateText(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	in, err := scenario.FromValues(r.Form, s.defaults())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	core, proj, err := pricing.Calculate(in)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	f, err := money.NewFormatter(in.Currency, s.cfg.Locale)
	if err != nil {
		http.Error(w, "failed to format currency", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := report.WriteText(&buf, report.Summary{Input: in, Core: core, Projection: proj}, f); err != nil {
		http.Error(w, "failed to render summary", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

type convertRequest struct {
	From pricing.Mode `json:"from"`
	Pct  float64      `json:"pct"`
}

type convertResponse struct {
	MarginPct float64 `json:"marginPct"`
	MarkupPct float64 `json:"markupPct"`
}

func (s *server) handleConvert(w http.ResponseWriter, r *http.Request) {
	var req convertRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	var resp convertResponse
	switch req.From {
	case pricing.ModeMargin:
		markup, err := pricing.MarginToMarkup(req.Pct)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		resp = convertResponse{MarginPct: req.Pct, MarkupPct: markup}
	case pricing.ModeMarkup:
		if req.Pct <= -100 {
			writeError(w, http.StatusBadRequest, "pct must be greater than -100")
			return
		}
		resp = convertResponse{MarginPct: pricing.MarkupToMargin(req.Pct), MarkupPct: req.Pct}
	default:
		s.fail(w, r, fmt.Errorf("%w: %q", pricing.ErrUnknownMode, req.From))
		return
	}

	s.respond(w, r, resp)
}

func (s *server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req pricing.SolveRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	res, err := pricing.Solve(req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, r, res)
}

type promoRequest struct {
	PriceExcl          float64 `json:"priceExcl"`
	CostExcl           float64 `json:"costExcl"`
	DiscountPct        float64 `json:"discountPct"`
	FixedCostsPerMonth float64 `json:"fixedCostsPerMonth"`
	Units              float64 `json:"units"`
}

type promoResponse struct {
	DiscountedPrice    float64 `json:"discountedPrice"`
	MarginPct          float64 `json:"marginPct"`
	MaxSafeDiscountPct float64 `json:"maxSafeDiscountPct"`
}

func (s *server) handlePromos(w http.ResponseWriter, r *http.Request) {
	var req promoRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := scenario.Check(
		scenario.NonNegative("priceExcl", req.PriceExcl),
		scenario.NonNegative("costExcl", req.CostExcl),
		scenario.Percent("discountPct", req.DiscountPct),
		scenario.NonNegative("fixedCostsPerMonth", req.FixedCostsPerMonth),
		scenario.NonNegative("units", req.Units),
	); err != nil {
		s.fail(w, r, err)
		return
	}

	s.respond(w, r, promoResponse{
		DiscountedPrice:    pricing.ApplyDiscount(req.PriceExcl, req.DiscountPct),
		MarginPct:          pricing.MarginAfterDiscount(req.PriceExcl, req.CostExcl, req.DiscountPct),
		MaxSafeDiscountPct: pricing.BreakevenDiscountPct(req.PriceExcl, req.CostExcl, req.FixedCostsPerMonth, req.Units),
	})
}

type feesRequest struct {
	PriceExcl float64 `json:"priceExcl"`
	CostExcl  float64 `json:"costExcl"`
	FeePct    float64 `json:"feePct"`
	FeeFixed  float64 `json:"feeFixed"`
}

type feesResponse struct {
	pricing.FeeResult
	MarginPct float64 `json:"marginPct"`
}

func (s *server) handleFees(w http.ResponseWriter, r *http.Request) {
	var req feesRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := scenario.Check(
		scenario.NonNegative("priceExcl", req.PriceExcl),
		scenario.NonNegative("costExcl", req.CostExcl),
		scenario.Percent("feePct", req.FeePct),
		scenario.NonNegative("feeFixed", req.FeeFixed),
	); err != nil {
		s.fail(w, r, err)
		return
	}

	s.respond(w, r, feesResponse{
		FeeResult: pricing.NetAfterFees(req.PriceExcl, req.FeePct, req.FeeFixed),
		MarginPct: pricing.MarginAfterFees(req.PriceExcl, req.CostExcl, req.FeePct, req.FeeFixed),
	})
}

type importsRequest struct {
	pricing.LandedCostParams
	TargetMarginPct float64 `json:"targetMarginPct"`
}

type importsResponse struct {
	LandedCost    float64 `json:"landedCost"`
	RequiredPrice float64 `json:"requiredPrice"`
}

func (s *server) handleImports(w http.ResponseWriter, r *http.Request) {
	var req importsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := scenario.Check(
		scenario.NonNegative("unitCostForeign", req.UnitCostForeign),
		scenario.Positive("fxRate", req.FXRate),
		scenario.NonNegative("freightPerUnit", req.FreightPerUnit),
		scenario.NonNegative("dutyPct", req.DutyPct),
		scenario.NonNegative("clearancePerUnit", req.ClearancePerUnit),
		scenario.Percent("shrinkagePct", req.ShrinkagePct),
		scenario.NonNegative("targetMarginPct", req.TargetMarginPct),
	); err != nil {
		s.fail(w, r, err)
		return
	}

	landed := pricing.LandedCostPerUnit(req.LandedCostParams)
	price, err := pricing.PriceFromMargin(landed, req.TargetMarginPct)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, r, importsResponse{LandedCost: landed, RequiredPrice: price})
}

type servicesResponse struct {
	HourlyRate float64 `json:"hourlyRate"`
}

func (s *server) handleServices(w http.ResponseWriter, r *http.Request) {
	var req pricing.HourlyRateParams
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := scenario.Check(
		scenario.NonNegative("monthlyFixedOverheads", req.MonthlyFixedOverheads),
		scenario.NonNegative("targetMarginPct", req.TargetMarginPct),
		scenario.NonNegative("billableHoursPerMonth", req.BillableHoursPerMonth),
		scenario.NonNegative("variableCostPerHour", req.VariableCostPerHour),
	); err != nil {
		s.fail(w, r, err)
		return
	}

	rate, err := pricing.BreakevenHourlyRate(req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, r, servicesResponse{HourlyRate: rate})
}

type inventoryRequest struct {
	AnnualDemand              float64 `json:"annualDemand"`
	OrderCost                 float64 `json:"orderCost"`
	HoldingCostPerUnitPerYear float64 `json:"holdingCostPerUnitPerYear"`
	AvgDailyDemand            float64 `json:"avgDailyDemand"`
	LeadTimeDays              float64 `json:"leadTimeDays"`
	SafetyStockUnits          float64 `json:"safetyStockUnits"`
}

type inventoryResponse struct {
	EOQ          float64 `json:"eoq"`
	ReorderPoint float64 `json:"reorderPoint"`
}

func (s *server) handleInventory(w http.ResponseWriter, r *http.Request) {
	var req inventoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := scenario.Check(
		scenario.NonNegative("annualDemand", req.AnnualDemand),
		scenario.NonNegative("orderCost", req.OrderCost),
		scenario.NonNegative("holdingCostPerUnitPerYear", req.HoldingCostPerUnitPerYear),
		scenario.NonNegative("avgDailyDemand", req.AvgDailyDemand),
		scenario.NonNegative("leadTimeDays", req.LeadTimeDays),
		scenario.NonNegative("safetyStockUnits", req.SafetyStockUnits),
	); err != nil {
		s.fail(w, r, err)
		return
	}

	s.respond(w, r, inventoryResponse{
		EOQ:          pricing.EOQ(req.AnnualDemand, req.OrderCost, req.HoldingCostPerUnitPerYear),
		ReorderPoint: pricing.ReorderPoint(req.AvgDailyDemand, req.LeadTimeDays, req.SafetyStockUnits),
	})
}

type subscriptionRequest struct {
	ARPU     float64 `json:"arpu"`
	GMPct    float64 `json:"gmPct"`
	ChurnPct float64 `json:"churnPct"`
	CAC      float64 `json:"cac"`
}

type subscriptionResponse struct {
	LTV                   number `json:"ltv"`
	LTVInfinite           bool   `json:"ltvInfinite"`
	PaybackMonths         number `json:"paybackMonths"`
	PaybackMonthsInfinite bool   `json:"paybackMonthsInfinite"`
	LTVToCAC              number `json:"ltvToCac"`
	LTVToCACInfinite      bool   `json:"ltvToCacInfinite"`
}

func (s *server) handleSubscription(w http.ResponseWriter, r *http.Request) {
	var req subscriptionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := scenario.Check(
		scenario.NonNegative("arpu", req.ARPU),
		scenario.Percent("gmPct", req.GMPct),
		scenario.Percent("churnPct", req.ChurnPct),
		scenario.NonNegative("cac", req.CAC),
	); err != nil {
		s.fail(w, r, err)
		return
	}

	ltv := pricing.LTVSimple(req.ARPU, req.GMPct, req.ChurnPct)
	payback := pricing.CACPaybackMonths(req.CAC, req.ARPU, req.GMPct)
	ratio := pricing.LTVToCAC(ltv, req.CAC)

	s.respond(w, r, subscriptionResponse{
		LTV:                   number(ltv),
		LTVInfinite:           math.IsInf(ltv, 1),
		PaybackMonths:         number(payback),
		PaybackMonthsInfinite: math.IsInf(payback, 1),
		LTVToCAC:              number(ratio),
		LTVToCACInfinite:      math.IsInf(ratio, 1),
	})
}

type mixResponse struct {
	BreakevenUnits         number `json:"breakevenUnits"`
	BreakevenUnitsInfinite bool   `json:"breakevenUnitsInfinite"`
}

func (s *server) handleMix(w http.ResponseWriter, r *http.Request) {
	var req scenario.Mix
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		s.fail(w, r, err)
		return
	}

	units := pricing.WeightedBreakevenUnits(req.Products, req.FixedCosts)
	s.respond(w, r, mixResponse{
		BreakevenUnits:         number(units),
		BreakevenUnitsInfinite: math.IsInf(units, 1),
	})
}

type elasticityRequest struct {
	A float64 `json:"a"`
	B float64 `json:"b"`
}

type elasticityResponse struct {
	Price    float64 `json:"price"`
	Quantity float64 `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

func (s *server) handleElasticity(w http.ResponseWriter, r *http.Request) {
	var req elasticityRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := scenario.Check(
		scenario.NonNegative("a", req.A),
		scenario.Positive("b", req.B),
	); err != nil {
		s.fail(w, r, err)
		return
	}

	price := pricing.RevenueMaxPriceLinear(req.A, req.B)
	qty := pricing.LinearDemand(req.A, req.B, price)
	s.respond(w, r, elasticityResponse{Price: price, Quantity: qty, Revenue: price * qty})
}

func (s *server) handleVAT(w http.ResponseWriter, r *http.Request) {
	var req pricing.VATPeriod
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := scenario.Check(
		scenario.NonNegative("salesExcl", req.SalesExcl),
		scenario.NonNegative("purchasesExcl", req.PurchasesExcl),
		scenario.Percent("vatRatePct", req.VATRatePct),
	); err != nil {
		s.fail(w, r, err)
		return
	}

	s.respond(w, r, pricing.VATSummary(req))
}
