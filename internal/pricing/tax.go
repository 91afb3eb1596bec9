package pricing

// VATPeriod holds tax-exclusive sales and purchases for one filing period.
type VATPeriod struct {
	SalesExcl     float64 `json:"salesExcl"`
	PurchasesExcl float64 `json:"purchasesExcl"`
	VATRatePct    float64 `json:"vatRatePct"`
}

// VATResult is the high-level VAT position of a period.
type VATResult struct {
	OutputTax float64 `json:"outputTax"`
	InputTax  float64 `json:"inputTax"`
	Payable   float64 `json:"payable"`
}

// VATSummary computes output tax on sales, input tax on purchases and the
// net amount payable. A negative payable is a refund.
func VATSummary(p VATPeriod) VATResult {
	rate := p.VATRatePct / 100.0
	out := p.SalesExcl * rate
	in := p.PurchasesExcl * rate
	return VATResult{OutputTax: out, InputTax: in, Payable: out - in}
}
