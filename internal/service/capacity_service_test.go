package service_test

import (
	"testing"

	"github.com/NB-Software-IND/WealthGenie-Backend/internal/service"
	"github.com/NB-Software-IND/WealthGenie-Backend/internal/testutil"
)

// TestCapacityService_Compute tests the buffer and investable-capacity math.
//
// WHY: These numbers go straight onto the client-facing proposal. The
// worked example pins the arithmetic so a refactor cannot silently change
// what households are told they can invest.
func TestCapacityService_Compute(t *testing.T) {
	svc := service.NewCapacityService()

	t.Run("worked example", func(t *testing.T) {
		// Income 100000; expenses 30000 monthly + 60000 yearly + 24000
		// premiums. Outflow = 30000 + 5000 + 2000 = 37000, surplus 63000.
		// Buffer = max(6300, 15000) = 15000, investable 48000.
		snapshot := testutil.NewSnapshot().Build()

		capacity := svc.Compute(snapshot)

		if capacity.TotalMonthlyOutflow != 37000 {
			t.Errorf("Expected outflow 37000, got %.0f", capacity.TotalMonthlyOutflow)
		}
		if capacity.InsuranceImpactMonthly != 2000 {
			t.Errorf("Expected insurance impact 2000, got %.0f", capacity.InsuranceImpactMonthly)
		}
		if capacity.AmortizedYearlyExpensesMonthly != 5000 {
			t.Errorf("Expected amortized yearly 5000, got %.0f", capacity.AmortizedYearlyExpensesMonthly)
		}
		if capacity.SurplusBeforeInvestment != 63000 {
			t.Errorf("Expected surplus 63000, got %.0f", capacity.SurplusBeforeInvestment)
		}
		if capacity.EmergencyBuffer != 15000 {
			t.Errorf("Expected buffer 15000, got %.0f", capacity.EmergencyBuffer)
		}
		if capacity.InvestableFromSalary != 48000 {
			t.Errorf("Expected investable 48000, got %.0f", capacity.InvestableFromSalary)
		}
	})

	t.Run("income share dominates the buffer", func(t *testing.T) {
		// With zero outflow the surplus equals income, so 10% of surplus
		// is 10000 against 15% of income at 15000.
		snapshot := testutil.NewSnapshot().
			WithMonthlyExpenses(0).
			WithYearlyExpenses(0).
			WithInsurance(0, 0, 0).
			Build()

		capacity := svc.Compute(snapshot)

		if capacity.EmergencyBuffer != 15000 {
			t.Errorf("Expected income-share buffer 15000, got %.0f", capacity.EmergencyBuffer)
		}
		if capacity.InvestableFromSalary != 85000 {
			t.Errorf("Expected investable 85000, got %.0f", capacity.InvestableFromSalary)
		}
	})

	t.Run("deploys 80 percent of the corpus", func(t *testing.T) {
		snapshot := testutil.NewSnapshot().WithCorpus(1000000).Build()

		capacity := svc.Compute(snapshot)

		if capacity.InvestableFromCorpus != 800000 {
			t.Errorf("Expected corpus investable 800000, got %.0f", capacity.InvestableFromCorpus)
		}
		if capacity.TotalInvestable != capacity.InvestableFromSalary+800000 {
			t.Errorf("Expected total %.0f, got %.0f",
				capacity.InvestableFromSalary+800000, capacity.TotalInvestable)
		}
	})

	t.Run("never reports negative capacity", func(t *testing.T) {
		snapshot := testutil.NewSnapshot().
			WithMonthlyIncome(20000).
			WithMonthlyExpenses(50000).
			Build()

		capacity := svc.Compute(snapshot)

		if capacity.SurplusBeforeInvestment != 0 {
			t.Errorf("Expected surplus floored at 0, got %.0f", capacity.SurplusBeforeInvestment)
		}
		if capacity.InvestableFromSalary != 0 {
			t.Errorf("Expected investable 0, got %.0f", capacity.InvestableFromSalary)
		}
		if capacity.EmergencyBuffer != 3000 {
			t.Errorf("Expected buffer 3000 (15%% of income), got %.0f", capacity.EmergencyBuffer)
		}
	})

	t.Run("rounds every derived field to whole rupees", func(t *testing.T) {
		snapshot := testutil.NewSnapshot().
			WithMonthlyIncome(100001).
			WithYearlyExpenses(50000).
			WithInsurance(10001, 0, 0).
			Build()

		capacity := svc.Compute(snapshot)

		for name, value := range map[string]float64{
			"TotalMonthlyOutflow":    capacity.TotalMonthlyOutflow,
			"InsuranceImpactMonthly": capacity.InsuranceImpactMonthly,
			"EmergencyBuffer":        capacity.EmergencyBuffer,
			"InvestableFromSalary":   capacity.InvestableFromSalary,
			"TotalInvestable":        capacity.TotalInvestable,
		} {
			if value != float64(int64(value)) {
				t.Errorf("Expected %s to be a whole rupee amount, got %v", name, value)
			}
		}
	})
}
