package service

import (
	"github.com/NB-Software-IND/WealthGenie-Backend/internal/model"
)

// Guardrail limits applied to every target-weight vector.
const (
	shortHorizonEquityCap = 20 // max total equity weight on a short horizon
	internationalMaxAge   = 45 // no international weight above this age
	focusedWeightCap      = 10 // max aggregate weight for the focused category
	internationalCarve    = 10 // fixed international weight when included
	equityWeightCeiling   = 85 // equity never exceeds this after risk shift
)

// equityBaselineByAge is the glide path: baseline equity weight is a
// non-increasing function of age.
var equityBaselineByAge = []struct {
	maxAge int
	equity int
}{
	{29, 75},
	{35, 70},
	{40, 65},
	{45, 60},
	{50, 50},
	{55, 40},
	{60, 30},
}

const equityBaselineFloor = 20 // baseline above the last age band

// riskEquityShift moves the baseline up or down per risk category, within
// the bounds the other constraints still allow.
var riskEquityShift = map[model.RiskCategory]int{
	model.RiskLow:            -25,
	model.RiskModeratelyLow:  -15,
	model.RiskModerate:       0,
	model.RiskModeratelyHigh: 5,
	model.RiskHigh:           10,
	model.RiskVeryHigh:       15,
}

// weightedCategory pairs a category with its relative share used when
// splitting a budget across the selected categories of one side.
type weightedCategory struct {
	category model.FundCategory
	share    int
}

// coreEquityByRisk lists the core equity categories per risk category, in
// selection priority order. The quality filter is implicit: credit-risk,
// sectoral, thematic and contra never appear here.
var coreEquityByRisk = map[model.RiskCategory][]weightedCategory{
	model.RiskLow:            {{model.CategoryLargeCap, 70}, {model.CategoryFlexiCap, 30}},
	model.RiskModeratelyLow:  {{model.CategoryLargeCap, 70}, {model.CategoryFlexiCap, 30}},
	model.RiskModerate:       {{model.CategoryLargeCap, 50}, {model.CategoryFlexiCap, 30}, {model.CategoryMidCap, 20}},
	model.RiskModeratelyHigh: {{model.CategoryLargeCap, 50}, {model.CategoryFlexiCap, 30}, {model.CategoryMidCap, 20}},
	model.RiskHigh:           {{model.CategoryLargeCap, 40}, {model.CategoryFlexiCap, 30}, {model.CategoryMidCap, 30}},
	model.RiskVeryHigh:       {{model.CategoryLargeCap, 30}, {model.CategoryFlexiCap, 30}, {model.CategoryMidCap, 20}, {model.CategorySmallCap, 20}},
}

// Debt spreads. Conservative profiles and short horizons get the wider,
// more liquid one.
var (
	conservativeDebt = []weightedCategory{
		{model.CategoryShortDuration, 35},
		{model.CategoryLiquid, 25},
		{model.CategoryCorporateBond, 20},
		{model.CategoryUltraShort, 10},
		{model.CategoryGilt, 10},
	}
	standardDebt = []weightedCategory{
		{model.CategoryShortDuration, 40},
		{model.CategoryCorporateBond, 30},
		{model.CategoryGilt, 15},
		{model.CategoryLiquid, 15},
	}
)

// AllocationService derives compliant target asset-class weights from age,
// horizon and risk category. Its contract ends at the class-weight vector;
// binding concrete instruments to classes is the content collaborator's job.
type AllocationService struct{}

// NewAllocationService creates a new AllocationService.
func NewAllocationService() *AllocationService {
	return &AllocationService{}
}

// DeriveTargets produces the per-track class-weight vectors. Both tracks use
// the same vector; a track whose capacity is zero gets a nil vector since
// its weights are irrelevant.
func (s *AllocationService) DeriveTargets(capacity model.PortfolioCapacity, profile model.RiskProfile, age int) model.AllocationTargets {
	var targets model.AllocationTargets
	if capacity.InvestableFromSalary <= 0 && capacity.InvestableFromCorpus <= 0 {
		return targets
	}

	weights := s.deriveClassWeights(profile, age)
	if capacity.InvestableFromSalary > 0 {
		targets.SIP = weights
	}
	if capacity.InvestableFromCorpus > 0 {
		targets.Lumpsum = cloneWeights(weights)
	}
	return targets
}

// deriveClassWeights applies the constraints in precedence order: horizon
// guardrail, international exclusion, quality filter, then the risk-shifted
// equity glide path. The result has exactly PlanSlotCount categories and
// sums to exactly 100.
func (s *AllocationService) deriveClassWeights(profile model.RiskProfile, age int) model.ClassWeights {
	equity := equityBaselineFloor
	for _, band := range equityBaselineByAge {
		if age <= band.maxAge {
			equity = band.equity
			break
		}
	}

	equity += riskEquityShift[profile.Category]
	if equity < 0 {
		equity = 0
	}
	if equity > equityWeightCeiling {
		equity = equityWeightCeiling
	}

	// Horizon guardrail has the highest precedence: the deficit flows to the
	// debt side below.
	if profile.ShortHorizon && equity > shortHorizonEquityCap {
		equity = shortHorizonEquityCap
	}

	// One slot per kept category. Equity claims slots proportional to its
	// budget, never all five: the ceiling of 85 guarantees a debt slot.
	equitySlots := 0
	if equity > 0 {
		equitySlots = (equity + 10) / 20
		if equitySlots < 1 {
			equitySlots = 1
		}
		if equitySlots > model.PlanSlotCount-1 {
			equitySlots = model.PlanSlotCount - 1
		}
	}

	weights := model.ClassWeights{}
	used := s.fillEquity(weights, equity, equitySlots, profile, age)
	s.fillDebt(weights, 100-equity, model.PlanSlotCount-used, profile)
	return weights
}

// fillEquity selects the equity categories for the available slots and
// distributes the equity budget across them. Returns the number of slots
// actually consumed, which can fall short when the risk category offers
// fewer core classes than slots.
func (s *AllocationService) fillEquity(weights model.ClassWeights, equity, slots int, profile model.RiskProfile, age int) int {
	if equity <= 0 || slots <= 0 {
		return 0
	}

	coreBudget := equity
	coreSlots := slots
	used := 0

	// International: fixed carve-out, only below the age cutoff, only for a
	// meaningful equity budget, and never at the expense of the core.
	if age <= internationalMaxAge && equity >= 40 && profile.Category >= model.RiskModerate && slots >= 3 {
		weights[model.CategoryInternational] = internationalCarve
		coreBudget -= internationalCarve
		coreSlots--
		used++
	}

	// Focused: high-conviction funds only for the top risk bands, always at
	// the aggregate cap.
	if profile.Category >= model.RiskHigh && equity >= 50 && slots >= 4 {
		weights[model.CategoryFocused] = focusedWeightCap
		coreBudget -= focusedWeightCap
		coreSlots--
		used++
	}

	cores := coreEquityByRisk[profile.Category]
	if coreSlots > len(cores) {
		coreSlots = len(cores)
	}
	splitBudget(weights, coreBudget, cores[:coreSlots])
	return used + coreSlots
}

// fillDebt distributes the debt budget across the remaining slots.
func (s *AllocationService) fillDebt(weights model.ClassWeights, debt, slots int, profile model.RiskProfile) {
	if debt <= 0 || slots <= 0 {
		return
	}

	spread := standardDebt
	if profile.ShortHorizon || profile.Category <= model.RiskModeratelyLow {
		spread = conservativeDebt
	}
	if slots > len(spread) {
		slots = len(spread)
	}
	splitBudget(weights, debt, spread[:slots])
}

// splitBudget divides a budget across categories by their relative shares.
// The rounding leftover goes to the first category so the split always sums
// exactly to the budget.
func splitBudget(weights model.ClassWeights, budget int, categories []weightedCategory) {
	if budget <= 0 || len(categories) == 0 {
		return
	}
	shareTotal := 0
	for _, c := range categories {
		shareTotal += c.share
	}
	assigned := 0
	for _, c := range categories {
		part := budget * c.share / shareTotal
		if part == 0 {
			continue
		}
		weights[c.category] += part
		assigned += part
	}
	if leftover := budget - assigned; leftover > 0 {
		weights[categories[0].category] += leftover
	}
}

func cloneWeights(w model.ClassWeights) model.ClassWeights {
	clone := make(model.ClassWeights, len(w))
	for category, pct := range w {
		clone[category] = pct
	}
	return clone
}
