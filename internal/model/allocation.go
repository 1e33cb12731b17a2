package model

// Fixed shape of a portfolio proposal.
const (
	PlanSlotCount    = 5
	AlternativeCount = 4
)

// Track distinguishes the recurring (SIP) and one-time (lumpsum) weight
// tracks of a plan. Both tracks carry their own percentage column on every
// slot and are validated independently.
type Track string

const (
	TrackSIP     Track = "SIP"
	TrackLumpsum Track = "LUMPSUM"
)

// FundCategory tags an instrument with its asset-class/category.
type FundCategory string

// Equity categories.
const (
	CategoryLargeCap      FundCategory = "LARGE_CAP"
	CategoryFlexiCap      FundCategory = "FLEXI_CAP"
	CategoryMidCap        FundCategory = "MID_CAP"
	CategorySmallCap      FundCategory = "SMALL_CAP"
	CategoryFocused       FundCategory = "FOCUSED"
	CategoryInternational FundCategory = "INTERNATIONAL"
)

// Debt and liquid categories.
const (
	CategoryShortDuration FundCategory = "SHORT_DURATION"
	CategoryCorporateBond FundCategory = "CORPORATE_BOND"
	CategoryUltraShort    FundCategory = "ULTRA_SHORT"
	CategoryGilt          FundCategory = "GILT"
	CategoryLiquid        FundCategory = "LIQUID"
)

// Categories excluded from every proposal by the quality filter.
const (
	CategoryCreditRisk FundCategory = "CREDIT_RISK"
	CategorySectoral   FundCategory = "SECTORAL"
	CategoryThematic   FundCategory = "THEMATIC"
	CategoryContra     FundCategory = "CONTRA"
)

// CategoryOrder fixes the canonical ordering of categories, used wherever
// slots or candidates must be produced deterministically.
var CategoryOrder = []FundCategory{
	CategoryLargeCap,
	CategoryFlexiCap,
	CategoryMidCap,
	CategorySmallCap,
	CategoryFocused,
	CategoryInternational,
	CategoryShortDuration,
	CategoryCorporateBond,
	CategoryUltraShort,
	CategoryGilt,
	CategoryLiquid,
}

// IsEquity reports whether the category counts toward the equity guardrail.
func (c FundCategory) IsEquity() bool {
	switch c {
	case CategoryLargeCap, CategoryFlexiCap, CategoryMidCap, CategorySmallCap,
		CategoryFocused, CategoryInternational, CategorySectoral,
		CategoryThematic, CategoryContra:
		return true
	}
	return false
}

// IsExcluded reports whether the quality filter bars the category entirely.
func (c FundCategory) IsExcluded() bool {
	switch c {
	case CategoryCreditRisk, CategorySectoral, CategoryThematic, CategoryContra:
		return true
	}
	return false
}

// ClassWeights is a target-weight vector per fund category for one track,
// in whole percent. A populated vector sums to exactly 100.
type ClassWeights map[FundCategory]int

// Total returns the summed weight of the vector.
func (w ClassWeights) Total() int {
	total := 0
	for _, pct := range w {
		total += pct
	}
	return total
}

// EquityTotal returns the summed weight of equity categories.
func (w ClassWeights) EquityTotal() int {
	total := 0
	for category, pct := range w {
		if category.IsEquity() {
			total += pct
		}
	}
	return total
}

// AllocationTargets carries the per-track class-weight vectors produced by
// the constraint engine. A track with zero capacity gets a nil vector.
type AllocationTargets struct {
	SIP     ClassWeights `json:"sip"`
	Lumpsum ClassWeights `json:"lumpsum"`
}

// AllocationSlot binds one instrument to its share of both tracks, together
// with the ordered alternative candidates in the same category. A slot is
// owned exclusively by the plan that contains it.
type AllocationSlot struct {
	FundName     string       `json:"fundName"`
	Category     FundCategory `json:"category"`
	SIPPct       float64      `json:"sipAllocationPct"`
	LumpsumPct   float64      `json:"lumpsumAllocationPct"`
	Alternatives []string     `json:"alternatives"`
}

// AllocationPlan is an ordered sequence of exactly PlanSlotCount slots.
// Each track's percentages sum to 100 whenever the corresponding capacity
// is part of the chosen investment type.
type AllocationPlan struct {
	Slots []AllocationSlot `json:"slots"`
}

// TrackTotal sums the given track's percentages across all slots.
func (p AllocationPlan) TrackTotal(track Track) float64 {
	total := 0.0
	for _, slot := range p.Slots {
		if track == TrackSIP {
			total += slot.SIPPct
		} else {
			total += slot.LumpsumPct
		}
	}
	return total
}

// Clone returns a deep copy of the plan so callers can mutate the copy
// without touching the original.
func (p AllocationPlan) Clone() AllocationPlan {
	slots := make([]AllocationSlot, len(p.Slots))
	copy(slots, p.Slots)
	for i := range slots {
		alts := make([]string, len(p.Slots[i].Alternatives))
		copy(alts, p.Slots[i].Alternatives)
		slots[i].Alternatives = alts
	}
	return AllocationPlan{Slots: slots}
}
