package service

import (
	"math"

	"github.com/NB-Software-IND/WealthGenie-Backend/internal/model"
)

// Emergency-buffer policy: the larger of these two reserves is always held
// back before anything is considered investable.
const (
	bufferSurplusShare = 0.10 // share of gross surplus
	bufferIncomeShare  = 0.15 // share of monthly income
)

// corpusInvestableShare is the portion of the available corpus deployed as
// lumpsum; the remaining 20% stays liquid.
const corpusInvestableShare = 0.80

// CapacityService computes emergency buffer and investable SIP/lumpsum
// capacity from a financial snapshot. Stateless and deterministic.
type CapacityService struct{}

// NewCapacityService creates a new CapacityService.
func NewCapacityService() *CapacityService {
	return &CapacityService{}
}

// Compute derives the full capacity breakdown. Intermediate values are kept
// at full precision; each derived field is rounded once, at the end, to
// whole rupees, so rounding error never compounds.
//
// A negative gross surplus is floored at zero: that snapshot should already
// have failed cash-flow validation upstream, but the calculator must never
// report negative capacity.
func (s *CapacityService) Compute(snapshot model.FinancialSnapshot) model.PortfolioCapacity {
	insuranceImpactMonthly := snapshot.Insurance.Total() / 12
	amortizedYearly := snapshot.YearlyExpenses / 12
	totalMonthlyOutflow := snapshot.MonthlyExpenses + amortizedYearly + insuranceImpactMonthly

	grossSurplus := snapshot.MonthlyIncome - totalMonthlyOutflow
	if grossSurplus < 0 {
		grossSurplus = 0
	}

	emergencyBuffer := math.Max(bufferSurplusShare*grossSurplus, bufferIncomeShare*snapshot.MonthlyIncome)
	investableFromSalary := math.Max(0, grossSurplus-emergencyBuffer)
	investableFromCorpus := corpusInvestableShare * snapshot.TotalCorpusToInvest

	return model.PortfolioCapacity{
		TotalMonthlyInflow:             math.Round(snapshot.MonthlyIncome),
		TotalMonthlyOutflow:            math.Round(totalMonthlyOutflow),
		InsuranceImpactMonthly:         math.Round(insuranceImpactMonthly),
		AmortizedYearlyExpensesMonthly: math.Round(amortizedYearly),
		EmergencyBuffer:                math.Round(emergencyBuffer),
		SurplusBeforeInvestment:        math.Round(grossSurplus),
		InvestableFromSalary:           math.Round(investableFromSalary),
		InvestableFromCorpus:           math.Round(investableFromCorpus),
		TotalInvestable:                math.Round(investableFromSalary + investableFromCorpus),
	}
}
