package service

import (
	"fmt"

	"github.com/NB-Software-IND/WealthGenie-Backend/internal/model"
)

// CashFlowService checks a household's cash-flow and tax-slab consistency.
// It is stateless; every method is a pure function of its inputs.
type CashFlowService struct{}

// NewCashFlowService creates a new CashFlowService.
func NewCashFlowService() *CashFlowService {
	return &CashFlowService{}
}

// Evaluate validates the snapshot's cash flow and cross-checks the declared
// tax slab against the bracket implied by annual salary plus investable
// corpus.
//
// A cash-flow deficit (monthly income below total monthly outflow) is fatal:
// the result carries IsValid=false and no slab suggestion is attempted.
// A slab mismatch is not fatal: IsValid stays true and SuggestedTaxSlab
// carries the correct bracket for the caller to apply and surface as a
// notice.
func (s *CashFlowService) Evaluate(profile model.PersonalProfile, snapshot model.FinancialSnapshot) model.CashFlowResult {
	result := model.CashFlowResult{Warnings: []string{}}

	insuranceImpactMonthly := snapshot.Insurance.Total() / 12
	totalMonthlyOutflow := snapshot.MonthlyExpenses + snapshot.YearlyExpenses/12 + insuranceImpactMonthly

	if snapshot.MonthlyIncome < totalMonthlyOutflow {
		result.IsValid = false
		result.ErrorMessage = fmt.Sprintf(
			"monthly outflow of ₹%.0f exceeds monthly income of ₹%.0f; reduce expenses or correct the figures before proceeding",
			totalMonthlyOutflow, snapshot.MonthlyIncome,
		)
		return result
	}

	result.IsValid = true

	annualSalaryIncome := snapshot.MonthlyIncome * 12
	taxableBase := annualSalaryIncome + snapshot.TotalCorpusToInvest

	if correct := model.TaxSlabForIncome(taxableBase); correct != snapshot.TaxSlab {
		suggested := correct
		result.SuggestedTaxSlab = &suggested
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"declared tax slab %q does not match taxable base of ₹%.0f; corrected to %q",
			snapshot.TaxSlab, taxableBase, correct,
		))
	}

	if snapshot.IncomeStatus == model.IncomeStatusRetired && !snapshot.HasPension && snapshot.MonthlyIncome > 0 {
		result.Warnings = append(result.Warnings,
			"retired without pension but monthly income declared; verify the income source",
		)
	}

	return result
}
