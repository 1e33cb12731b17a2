package service

import (
	"math"

	"github.com/NB-Software-IND/WealthGenie-Backend/internal/apperrors"
	"github.com/NB-Software-IND/WealthGenie-Backend/internal/model"
)

// CandidateSource supplies replacement instrument names for a category,
// ordered by suitability for the given risk profile. The advisor's fund
// universe implements it.
type CandidateSource interface {
	Candidates(category model.FundCategory, profile model.RiskProfile) []string
}

// OverlapService detects duplicate scheme selections across allocation
// slots and re-normalizes weights back to 100. Plans are treated as values:
// every mutating method returns an updated copy and leaves the input
// untouched.
type OverlapService struct {
	candidates CandidateSource
}

// NewOverlapService creates a new OverlapService backed by the given
// candidate source.
func NewOverlapService(candidates CandidateSource) *OverlapService {
	return &OverlapService{candidates: candidates}
}

// DetectOverlap counts how often each instrument name appears across the
// plan's slots. Overlap exists iff any count exceeds 1.
func (s *OverlapService) DetectOverlap(plan model.AllocationPlan) map[string]int {
	counts := make(map[string]int)
	for _, slot := range plan.Slots {
		counts[slot.FundName]++
	}
	return counts
}

// HasOverlap reports whether any instrument occupies more than one slot.
func (s *OverlapService) HasOverlap(plan model.AllocationPlan) bool {
	for _, count := range s.DetectOverlap(plan) {
		if count > 1 {
			return true
		}
	}
	return false
}

// Substitute swaps the slot's instrument with one of its alternatives.
// Returns apperrors.ErrInvalidSubstitution when the name is neither the
// slot's own instrument nor one of its alternatives; the plan is returned
// unchanged in that case.
//
// A substitution that introduces a new overlap still succeeds but is
// flagged via the second return value. Whether to demand confirmation is
// the caller's concern, not this component's.
func (s *OverlapService) Substitute(plan model.AllocationPlan, slotIndex int, newName string) (model.AllocationPlan, bool, error) {
	if slotIndex < 0 || slotIndex >= len(plan.Slots) {
		return plan, false, apperrors.ErrInvalidSlotIndex
	}

	updated := plan.Clone()
	slot := &updated.Slots[slotIndex]

	if newName == slot.FundName {
		return updated, false, nil
	}

	swapped := false
	for i, alt := range slot.Alternatives {
		if alt == newName {
			slot.Alternatives[i] = slot.FundName
			slot.FundName = newName
			swapped = true
			break
		}
	}
	if !swapped {
		return plan, false, apperrors.ErrInvalidSubstitution
	}

	return updated, s.DetectOverlap(updated)[newName] > 1, nil
}

// ResolveOverlap returns a plan with zero overlapping instruments. The
// first occurrence of a colliding name keeps its instrument; every later
// occurrence is re-derived from its own alternatives (falling back to the
// candidate universe for its category) together with a fresh alternative
// list. Category weights are held fixed and each track is re-normalized to
// exactly 100 afterwards, so the operation is idempotent on an already
// overlap-free plan.
func (s *OverlapService) ResolveOverlap(plan model.AllocationPlan, profile model.RiskProfile) (model.AllocationPlan, error) {
	updated := plan.Clone()

	inUse := func(name string, except int) bool {
		for i, slot := range updated.Slots {
			if i != except && slot.FundName == name {
				return true
			}
		}
		return false
	}

	seen := make(map[string]bool)
	for i := range updated.Slots {
		slot := &updated.Slots[i]
		if !seen[slot.FundName] {
			seen[slot.FundName] = true
			continue
		}

		replacement := ""
		pool := make([]string, 0, len(slot.Alternatives)+model.AlternativeCount)
		pool = append(pool, slot.Alternatives...)
		if s.candidates != nil {
			pool = append(pool, s.candidates.Candidates(slot.Category, profile)...)
		}
		for _, candidate := range pool {
			if candidate != slot.FundName && !inUse(candidate, i) {
				replacement = candidate
				break
			}
		}
		if replacement == "" {
			return plan, apperrors.ErrOverlapUnresolvable
		}

		slot.Alternatives = s.rebuildAlternatives(slot.Category, profile, replacement, slot.Alternatives, slot.FundName)
		slot.FundName = replacement
		seen[replacement] = true
	}

	normalizeTrack(&updated, model.TrackSIP)
	normalizeTrack(&updated, model.TrackLumpsum)
	return updated, nil
}

// rebuildAlternatives assembles a fresh ordered alternative list for a
// re-derived slot: universe candidates first, then the previous candidates,
// never the chosen instrument itself, no duplicates.
func (s *OverlapService) rebuildAlternatives(category model.FundCategory, profile model.RiskProfile, chosen string, previous []string, displaced string) []string {
	pool := make([]string, 0, len(previous)+model.AlternativeCount+1)
	if s.candidates != nil {
		pool = append(pool, s.candidates.Candidates(category, profile)...)
	}
	pool = append(pool, previous...)
	pool = append(pool, displaced)

	alts := make([]string, 0, model.AlternativeCount)
	taken := map[string]bool{chosen: true}
	for _, name := range pool {
		if taken[name] {
			continue
		}
		taken[name] = true
		alts = append(alts, name)
		if len(alts) == model.AlternativeCount {
			break
		}
	}
	return alts
}

// OverrideWeight sets a slot's percentage on one track directly. Other
// slots are deliberately not re-normalized: a non-100 total is a legitimate
// transient state while the user is still adjusting, and is surfaced by
// SumMismatches instead.
func (s *OverlapService) OverrideWeight(plan model.AllocationPlan, slotIndex int, track model.Track, value float64) (model.AllocationPlan, error) {
	if slotIndex < 0 || slotIndex >= len(plan.Slots) {
		return plan, apperrors.ErrInvalidSlotIndex
	}
	if track != model.TrackSIP && track != model.TrackLumpsum {
		return plan, apperrors.ErrInvalidTrack
	}
	if value < 0 || value > 100 {
		return plan, apperrors.ErrWeightOutOfRange
	}

	updated := plan.Clone()
	if track == model.TrackSIP {
		updated.Slots[slotIndex].SIPPct = value
	} else {
		updated.Slots[slotIndex].LumpsumPct = value
	}
	return updated, nil
}

// SumMismatches reports the tracks whose percentages do not sum to exactly
// 100. A track that is entirely zero is considered unused and not reported.
func (s *OverlapService) SumMismatches(plan model.AllocationPlan) []model.Track {
	var mismatched []model.Track
	for _, track := range []model.Track{model.TrackSIP, model.TrackLumpsum} {
		total := plan.TrackTotal(track)
		if total != 0 && total != 100 {
			mismatched = append(mismatched, track)
		}
	}
	return mismatched
}

// normalizeTrack scales a track's percentages back to a sum of exactly 100.
// Each slot is rounded to a whole percent and any rounding remainder is
// added to the first slot in original order, so totals reconcile without
// fractional drift. A zero-total track is left untouched.
func normalizeTrack(plan *model.AllocationPlan, track model.Track) {
	total := plan.TrackTotal(track)
	if total == 0 || total == 100 {
		return
	}

	scaled := 0.0
	for i := range plan.Slots {
		var pct float64
		if track == model.TrackSIP {
			pct = math.Round(plan.Slots[i].SIPPct * 100 / total)
			plan.Slots[i].SIPPct = pct
		} else {
			pct = math.Round(plan.Slots[i].LumpsumPct * 100 / total)
			plan.Slots[i].LumpsumPct = pct
		}
		scaled += pct
	}

	if remainder := 100 - scaled; remainder != 0 && len(plan.Slots) > 0 {
		if track == model.TrackSIP {
			plan.Slots[0].SIPPct += remainder
		} else {
			plan.Slots[0].LumpsumPct += remainder
		}
	}
}
