package model

// CashFlowResult is the outcome of the cash-flow and tax-slab consistency
// check. A cash-flow deficit is fatal (IsValid=false); a slab mismatch is
// not, it only populates SuggestedTaxSlab for the caller to apply and
// surface as a notice.
type CashFlowResult struct {
	IsValid          bool     `json:"isValid"`
	ErrorMessage     string   `json:"errorMessage,omitempty"`
	Warnings         []string `json:"warnings"`
	SuggestedTaxSlab *TaxSlab `json:"suggestedTaxSlab,omitempty"`
}

// PortfolioCapacity is the investable-capacity breakdown derived
// deterministically from a FinancialSnapshot. All fields are whole rupees,
// rounded once at the end of each derivation.
type PortfolioCapacity struct {
	TotalMonthlyInflow             float64 `json:"totalMonthlyInflow"`
	TotalMonthlyOutflow            float64 `json:"totalMonthlyOutflow"`
	InsuranceImpactMonthly         float64 `json:"insuranceImpactMonthly"`
	AmortizedYearlyExpensesMonthly float64 `json:"amortizedYearlyExpensesMonthly"`
	EmergencyBuffer                float64 `json:"emergencyBuffer"`
	SurplusBeforeInvestment        float64 `json:"surplusBeforeInvestment"`
	InvestableFromSalary           float64 `json:"investableFromSalary"`
	InvestableFromCorpus           float64 `json:"investableFromCorpus"`
	TotalInvestable                float64 `json:"totalInvestable"`
}
