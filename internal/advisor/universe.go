package advisor

import (
	"fmt"
	"strings"

	"github.com/NB-Software-IND/WealthGenie-Backend/internal/model"
)

// Universe is the built-in catalogue of schemes per category, ordered by
// AUM descending so the first entries are the defaults and the rest become
// alternatives. It backs the offline fallback and serves as the candidate
// source for overlap resolution.
type Universe struct{}

// NewUniverse creates the built-in scheme universe.
func NewUniverse() *Universe {
	return &Universe{}
}

var schemesByCategory = map[model.FundCategory][]string{
	model.CategoryLargeCap: {
		"Nippon India Large Cap Fund",
		"ICICI Prudential Bluechip Fund",
		"SBI Bluechip Fund",
		"Mirae Asset Large Cap Fund",
		"HDFC Top 100 Fund",
		"Axis Bluechip Fund",
	},
	model.CategoryFlexiCap: {
		"Parag Parikh Flexi Cap Fund",
		"HDFC Flexi Cap Fund",
		"Kotak Flexicap Fund",
		"UTI Flexi Cap Fund",
		"Franklin India Flexi Cap Fund",
		"Canara Robeco Flexi Cap Fund",
	},
	model.CategoryMidCap: {
		"HDFC Mid-Cap Opportunities Fund",
		"Kotak Emerging Equity Fund",
		"Motilal Oswal Midcap Fund",
		"Nippon India Growth Fund",
		"SBI Magnum Midcap Fund",
		"Axis Midcap Fund",
	},
	model.CategorySmallCap: {
		"Nippon India Small Cap Fund",
		"SBI Small Cap Fund",
		"Axis Small Cap Fund",
		"HDFC Small Cap Fund",
		"Quant Small Cap Fund",
		"Kotak Small Cap Fund",
	},
	model.CategoryFocused: {
		"HDFC Focused 30 Fund",
		"ICICI Prudential Focused Equity Fund",
		"SBI Focused Equity Fund",
		"Sundaram Focused Fund",
		"360 ONE Focused Equity Fund",
		"Axis Focused Fund",
	},
	model.CategoryInternational: {
		"Motilal Oswal Nasdaq 100 Fund of Fund",
		"Franklin India Feeder - Franklin U.S. Opportunities Fund",
		"ICICI Prudential US Bluechip Equity Fund",
		"Edelweiss Greater China Equity Off-shore Fund",
		"Kotak Global Innovation Fund of Fund",
		"PGIM India Global Equity Opportunities Fund",
	},
	model.CategoryShortDuration: {
		"ICICI Prudential Short Term Fund",
		"HDFC Short Term Debt Fund",
		"Axis Short Term Fund",
		"Kotak Bond Short Term Fund",
		"SBI Short Term Debt Fund",
		"Aditya Birla Sun Life Short Term Fund",
	},
	model.CategoryCorporateBond: {
		"ICICI Prudential Corporate Bond Fund",
		"HDFC Corporate Bond Fund",
		"Aditya Birla Sun Life Corporate Bond Fund",
		"Kotak Corporate Bond Fund",
		"SBI Corporate Bond Fund",
		"Axis Corporate Debt Fund",
	},
	model.CategoryUltraShort: {
		"ICICI Prudential Ultra Short Term Fund",
		"HDFC Ultra Short Term Fund",
		"SBI Magnum Ultra Short Duration Fund",
		"Aditya Birla Sun Life Savings Fund",
		"Kotak Savings Fund",
		"Nippon India Ultra Short Duration Fund",
	},
	model.CategoryGilt: {
		"SBI Magnum Gilt Fund",
		"ICICI Prudential Gilt Fund",
		"Kotak Gilt Investment Fund",
		"HDFC Gilt Fund",
		"Nippon India Gilt Securities Fund",
		"Axis Gilt Fund",
	},
	model.CategoryLiquid: {
		"SBI Liquid Fund",
		"HDFC Liquid Fund",
		"ICICI Prudential Liquid Fund",
		"Aditya Birla Sun Life Liquid Fund",
		"Axis Liquid Fund",
		"Nippon India Liquid Fund",
	},
}

// Candidates returns the ordered scheme names for a category. The risk
// profile currently does not reorder within a category; the catalogue is
// already sorted by AUM.
func (u *Universe) Candidates(category model.FundCategory, _ model.RiskProfile) []string {
	return schemesByCategory[category]
}

// BuildPlan deterministically assembles a populated plan from the target
// weight vectors: one slot per weighted category in canonical order, the
// category's top scheme as the pick and the next four as alternatives.
func (u *Universe) BuildPlan(targets model.AllocationTargets) model.AllocationPlan {
	weights := targets.SIP
	if weights == nil {
		weights = targets.Lumpsum
	}

	var plan model.AllocationPlan
	for _, category := range model.CategoryOrder {
		pct, ok := weights[category]
		if !ok || pct <= 0 {
			continue
		}
		schemes := schemesByCategory[category]
		slot := model.AllocationSlot{
			FundName:     schemes[0],
			Category:     category,
			Alternatives: append([]string(nil), schemes[1:1+model.AlternativeCount]...),
		}
		if targets.SIP != nil {
			slot.SIPPct = float64(targets.SIP[category])
		}
		if targets.Lumpsum != nil {
			slot.LumpsumPct = float64(targets.Lumpsum[category])
		}
		plan.Slots = append(plan.Slots, slot)
	}
	return plan
}

// CapacityNarrative renders the deterministic fallback prose for a
// capacity breakdown.
func CapacityNarrative(capacity model.PortfolioCapacity) string {
	return fmt.Sprintf(
		"Out of a monthly inflow of ₹%.0f and outflow of ₹%.0f, ₹%.0f is held back as an emergency buffer, "+
			"leaving ₹%.0f available for monthly SIP investment. A further ₹%.0f of the available corpus "+
			"can be deployed as lumpsum, for a total investable amount of ₹%.0f.",
		capacity.TotalMonthlyInflow, capacity.TotalMonthlyOutflow, capacity.EmergencyBuffer,
		capacity.InvestableFromSalary, capacity.InvestableFromCorpus, capacity.TotalInvestable,
	)
}

var onesWords = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tensWords = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

// AmountInWords renders a rupee amount in the Indian numbering system
// (thousand, lakh, crore). Returns an empty string for zero or negative
// amounts; fractions are dropped.
func AmountInWords(amount float64) string {
	n := int64(amount)
	if n <= 0 {
		return ""
	}

	var parts []string
	appendUnit := func(value int64, unit string) {
		if value > 0 {
			words := belowThousand(int(value))
			if unit != "" {
				words += " " + unit
			}
			parts = append(parts, words)
		}
	}

	appendUnit(n/10000000, "Crore")
	n %= 10000000
	appendUnit(n/100000, "Lakh")
	n %= 100000
	appendUnit(n/1000, "Thousand")
	n %= 1000
	appendUnit(n, "")

	return strings.Join(parts, " ")
}

// belowThousand renders 1..999.
func belowThousand(n int) string {
	var parts []string
	if n >= 100 {
		parts = append(parts, onesWords[n/100]+" Hundred")
		n %= 100
	}
	switch {
	case n >= 20:
		word := tensWords[n/10]
		if n%10 > 0 {
			word += "-" + onesWords[n%10]
		}
		parts = append(parts, word)
	case n > 0:
		parts = append(parts, onesWords[n])
	}
	return strings.Join(parts, " ")
}
