package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/NB-Software-IND/WealthGenie-Backend/internal/advisor"
	"github.com/NB-Software-IND/WealthGenie-Backend/internal/apperrors"
	"github.com/NB-Software-IND/WealthGenie-Backend/internal/model"
	"github.com/NB-Software-IND/WealthGenie-Backend/internal/repository"
)

// ProposalService runs the full suitability pipeline over a draft: cash
// flow validation, risk derivation, capacity, target weights, fund
// selection, overlap resolution. It coordinates the deterministic engine
// components with the content-generation collaborator and persists every
// advanced state back onto the draft.
type ProposalService struct {
	draftRepo  *repository.DraftRepository
	cashFlow   *CashFlowService
	risk       *RiskService
	capacity   *CapacityService
	allocation *AllocationService
	overlap    *OverlapService
	content    advisor.ClientInterface
	universe   *advisor.Universe
}

// NewProposalService creates a new ProposalService with the provided
// engine components and collaborator client.
func NewProposalService(
	draftRepo *repository.DraftRepository,
	cashFlow *CashFlowService,
	risk *RiskService,
	capacity *CapacityService,
	allocation *AllocationService,
	overlap *OverlapService,
	content advisor.ClientInterface,
	universe *advisor.Universe,
) *ProposalService {
	return &ProposalService{
		draftRepo:  draftRepo,
		cashFlow:   cashFlow,
		risk:       risk,
		capacity:   capacity,
		allocation: allocation,
		overlap:    overlap,
		content:    content,
		universe:   universe,
	}
}

// Proposal is the result of a full pipeline run: the populated plan plus
// the engine-computed capacity, the derived targets, the generated
// narratives, and any non-fatal warnings.
type Proposal struct {
	Plan              model.AllocationPlan    `json:"plan"`
	Capacity          model.PortfolioCapacity `json:"capacity"`
	Targets           model.AllocationTargets `json:"targets"`
	CapacityNarrative string                  `json:"capacityNarrative"`
	TotalInWords      string                  `json:"totalInWords"`
	Warnings          []string                `json:"warnings"`
}

// ValidateCashFlow runs the cash-flow and tax-slab check over the draft's
// snapshot. A suggested slab correction is applied to the stored snapshot
// immediately; the result still carries it so the caller can surface the
// notice. On success the draft advances to the questionnaire step.
func (s *ProposalService) ValidateCashFlow(id string) (model.CashFlowResult, error) {
	draft, err := s.draftRepo.GetDraft(id)
	if err != nil {
		return model.CashFlowResult{}, err
	}
	if draft.Profile == nil {
		return model.CashFlowResult{}, apperrors.ErrProfileNotFound
	}
	if draft.Snapshot == nil {
		return model.CashFlowResult{}, apperrors.ErrSnapshotNotFound
	}

	result := s.cashFlow.Evaluate(*draft.Profile, *draft.Snapshot)
	if !result.IsValid {
		return result, nil
	}

	if result.SuggestedTaxSlab != nil {
		draft.Snapshot.TaxSlab = *result.SuggestedTaxSlab
	}
	if draft.Step < model.StepRiskQuestionnaire {
		draft.Step = model.StepRiskQuestionnaire
	}
	if err := s.draftRepo.SaveDraft(draft); err != nil {
		return model.CashFlowResult{}, err
	}
	return result, nil
}

// DeriveRisk computes the risk profile from the draft's questionnaire and
// age, asks the collaborator for the narrative, and persists the profile.
// Collaborator failures degrade to the engine's fixed narrative; the
// category itself is always the engine's.
func (s *ProposalService) DeriveRisk(ctx context.Context, id string) (model.RiskProfile, error) {
	draft, err := s.draftRepo.GetDraft(id)
	if err != nil {
		return model.RiskProfile{}, err
	}
	if draft.Profile == nil {
		return model.RiskProfile{}, apperrors.ErrProfileNotFound
	}

	profile, err := s.risk.DeriveProfile(draft.RiskAnswers, draft.Profile.Age)
	if err != nil {
		return model.RiskProfile{}, err
	}

	description, err := s.content.GenerateRiskDescription(ctx, profile)
	if err != nil {
		if !errors.Is(err, apperrors.ErrContentGeneration) {
			return model.RiskProfile{}, err
		}
		log.Printf("risk description generation failed, using fixed narrative: %v", err)
	} else {
		profile.Description = description
	}

	draft.RiskProfile = &profile
	if draft.Step < model.StepProposal {
		draft.Step = model.StepProposal
	}
	if err := s.draftRepo.SaveDraft(draft); err != nil {
		return model.RiskProfile{}, err
	}
	return profile, nil
}

// GetCapacity recomputes the capacity breakdown from the draft's current
// snapshot.
func (s *ProposalService) GetCapacity(id string) (model.PortfolioCapacity, error) {
	draft, err := s.draftRepo.GetDraft(id)
	if err != nil {
		return model.PortfolioCapacity{}, err
	}
	if draft.Snapshot == nil {
		return model.PortfolioCapacity{}, apperrors.ErrSnapshotNotFound
	}
	return s.capacity.Compute(*draft.Snapshot), nil
}

// GenerateProposal runs the remaining pipeline for a validated draft:
// capacity, target weights, collaborator fund picks, overlap resolution.
// The narratives fan out concurrently; each degrades to its deterministic
// fallback when the collaborator fails, so a proposal is always produced
// for a valid draft.
func (s *ProposalService) GenerateProposal(ctx context.Context, id string) (Proposal, error) {
	draft, err := s.draftRepo.GetDraft(id)
	if err != nil {
		return Proposal{}, err
	}
	if draft.Profile == nil {
		return Proposal{}, apperrors.ErrProfileNotFound
	}
	if draft.Snapshot == nil {
		return Proposal{}, apperrors.ErrSnapshotNotFound
	}
	if draft.RiskProfile == nil {
		return Proposal{}, apperrors.ErrRiskProfileNotFound
	}

	capacity := s.capacity.Compute(*draft.Snapshot)
	targets := s.allocation.DeriveTargets(capacity, *draft.RiskProfile, draft.Profile.Age)
	if targets.SIP == nil && targets.Lumpsum == nil {
		return Proposal{}, fmt.Errorf("nothing to allocate: %w", apperrors.ErrCashFlowDeficit)
	}

	proposal := Proposal{Capacity: capacity, Targets: targets, Warnings: []string{}}

	var slots []model.AllocationSlot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		slots, err = s.content.GenerateFundPicks(gctx, advisor.FundPickRequest{
			Targets:  targets,
			Profile:  *draft.RiskProfile,
			Age:      draft.Profile.Age,
			Capacity: capacity,
		})
		return err
	})
	g.Go(func() error {
		narrative, err := s.content.GenerateCapacityNarrative(gctx, *draft.Snapshot, capacity)
		if err != nil {
			return err
		}
		proposal.CapacityNarrative = narrative
		return nil
	})
	g.Go(func() error {
		words, err := s.content.GenerateAmountInWords(gctx, capacity.TotalInvestable)
		if err != nil {
			return err
		}
		proposal.TotalInWords = words
		return nil
	})

	if err := g.Wait(); err != nil {
		if !errors.Is(err, apperrors.ErrContentGeneration) {
			return Proposal{}, err
		}
		// The collaborator is down or returned garbage: fall back to the
		// deterministic universe and templates.
		log.Printf("content generation degraded, using deterministic fallback: %v", err)
		if slots == nil {
			slots = s.universe.BuildPlan(targets).Slots
		}
		if proposal.CapacityNarrative == "" {
			proposal.CapacityNarrative = advisor.CapacityNarrative(capacity)
		}
		if proposal.TotalInWords == "" {
			proposal.TotalInWords = advisor.AmountInWords(capacity.TotalInvestable)
		}
	}

	plan := model.AllocationPlan{Slots: slots}
	plan, err = s.overlap.ResolveOverlap(plan, *draft.RiskProfile)
	if err != nil {
		return Proposal{}, err
	}
	proposal.Plan = plan

	for _, track := range s.overlap.SumMismatches(plan) {
		proposal.Warnings = append(proposal.Warnings,
			fmt.Sprintf("%s percentages do not sum to 100", track))
	}

	draft.Plan = &plan
	if draft.Step < model.StepReport {
		draft.Step = model.StepReport
	}
	if err := s.draftRepo.SaveDraft(draft); err != nil {
		return Proposal{}, err
	}
	return proposal, nil
}

// DetectOverlap reports instrument occurrence counts for the draft's plan.
func (s *ProposalService) DetectOverlap(id string) (map[string]int, error) {
	draft, err := s.draftRepo.GetDraft(id)
	if err != nil {
		return nil, err
	}
	if draft.Plan == nil {
		return nil, apperrors.ErrPlanNotFound
	}
	return s.overlap.DetectOverlap(*draft.Plan), nil
}

// Substitute swaps a slot's instrument on the draft's plan. The flag
// reports whether the swap introduced a new overlap; the swap is persisted
// either way and remediation stays available via ResolveOverlap.
func (s *ProposalService) Substitute(id string, slotIndex int, newName string) (model.AllocationPlan, bool, error) {
	draft, err := s.draftRepo.GetDraft(id)
	if err != nil {
		return model.AllocationPlan{}, false, err
	}
	if draft.Plan == nil {
		return model.AllocationPlan{}, false, apperrors.ErrPlanNotFound
	}

	plan, overlapIntroduced, err := s.overlap.Substitute(*draft.Plan, slotIndex, newName)
	if err != nil {
		return model.AllocationPlan{}, false, err
	}

	draft.Plan = &plan
	if err := s.draftRepo.SaveDraft(draft); err != nil {
		return model.AllocationPlan{}, false, err
	}
	return plan, overlapIntroduced, nil
}

// OverrideWeight sets one slot's percentage on the draft's plan. The
// returned warnings surface any track that no longer sums to 100; the
// override is persisted regardless, as a legitimate transient edit state.
func (s *ProposalService) OverrideWeight(id string, slotIndex int, track model.Track, value float64) (model.AllocationPlan, []string, error) {
	draft, err := s.draftRepo.GetDraft(id)
	if err != nil {
		return model.AllocationPlan{}, nil, err
	}
	if draft.Plan == nil {
		return model.AllocationPlan{}, nil, apperrors.ErrPlanNotFound
	}

	plan, err := s.overlap.OverrideWeight(*draft.Plan, slotIndex, track, value)
	if err != nil {
		return model.AllocationPlan{}, nil, err
	}

	warnings := []string{}
	for _, mismatched := range s.overlap.SumMismatches(plan) {
		warnings = append(warnings,
			fmt.Sprintf("%s percentages sum to %.2f, adjust the remaining slots to reach 100", mismatched, plan.TrackTotal(mismatched)))
	}

	draft.Plan = &plan
	if err := s.draftRepo.SaveDraft(draft); err != nil {
		return model.AllocationPlan{}, nil, err
	}
	return plan, warnings, nil
}

// ResolveOverlap removes every duplicate instrument from the draft's plan
// and persists the result.
func (s *ProposalService) ResolveOverlap(id string) (model.AllocationPlan, error) {
	draft, err := s.draftRepo.GetDraft(id)
	if err != nil {
		return model.AllocationPlan{}, err
	}
	if draft.Plan == nil {
		return model.AllocationPlan{}, apperrors.ErrPlanNotFound
	}
	if draft.RiskProfile == nil {
		return model.AllocationPlan{}, apperrors.ErrRiskProfileNotFound
	}

	plan, err := s.overlap.ResolveOverlap(*draft.Plan, *draft.RiskProfile)
	if err != nil {
		return model.AllocationPlan{}, err
	}

	draft.Plan = &plan
	if err := s.draftRepo.SaveDraft(draft); err != nil {
		return model.AllocationPlan{}, err
	}
	return plan, nil
}
