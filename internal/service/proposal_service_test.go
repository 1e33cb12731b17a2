package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/NB-Software-IND/WealthGenie-Backend/internal/advisor"
	"github.com/NB-Software-IND/WealthGenie-Backend/internal/apperrors"
	"github.com/NB-Software-IND/WealthGenie-Backend/internal/model"
	"github.com/NB-Software-IND/WealthGenie-Backend/internal/testutil"
)

// deficitSnapshot returns a snapshot whose outflow exceeds its income once
// yearly expenses and premiums are amortized.
func deficitSnapshot() model.FinancialSnapshot {
	return testutil.NewSnapshot().
		WithMonthlyIncome(40000).
		WithMonthlyExpenses(30000).
		WithYearlyExpenses(60000).
		WithInsurance(48000, 20000, 4000).
		Build()
}

func TestProposalService_ValidateCashFlow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := testutil.NewTestDraftRepository(t, db)
	svc := testutil.NewTestProposalService(t, db)

	t.Run("applies a suggested slab and advances the step", func(t *testing.T) {
		seeded := testutil.NewDraft().
			WithStep(model.StepFinancialSnapshot).
			WithProfile(testutil.NewProfile().Build()).
			WithSnapshot(testutil.NewSnapshot().
				WithMonthlyIncome(75000).
				WithTaxSlab(model.TaxSlabNil).
				Build()).
			Build(t, repo)

		result, err := svc.ValidateCashFlow(seeded.ID)

		if err != nil {
			t.Fatalf("ValidateCashFlow() returned unexpected error: %v", err)
		}
		if !result.IsValid {
			t.Fatalf("Expected a valid result, got error message %q", result.ErrorMessage)
		}
		if result.SuggestedTaxSlab == nil || *result.SuggestedTaxSlab != model.TaxSlab10 {
			t.Errorf("Expected suggested slab %v, got %v", model.TaxSlab10, result.SuggestedTaxSlab)
		}

		reloaded, err := repo.GetDraft(seeded.ID)
		if err != nil {
			t.Fatalf("Failed to reload draft: %v", err)
		}
		if reloaded.Snapshot.TaxSlab != model.TaxSlab10 {
			t.Errorf("Expected the corrected slab to be persisted, got %v", reloaded.Snapshot.TaxSlab)
		}
		if reloaded.Step != model.StepRiskQuestionnaire {
			t.Errorf("Expected step %d, got %d", model.StepRiskQuestionnaire, reloaded.Step)
		}
	})

	t.Run("never moves the step backwards", func(t *testing.T) {
		seeded := testutil.NewDraft().
			WithStep(model.StepReport).
			WithProfile(testutil.NewProfile().Build()).
			WithSnapshot(testutil.NewSnapshot().Build()).
			Build(t, repo)

		if _, err := svc.ValidateCashFlow(seeded.ID); err != nil {
			t.Fatalf("ValidateCashFlow() returned unexpected error: %v", err)
		}

		reloaded, _ := repo.GetDraft(seeded.ID)
		if reloaded.Step != model.StepReport {
			t.Errorf("Expected step %d, got %d", model.StepReport, reloaded.Step)
		}
	})

	t.Run("a deficit does not advance the draft", func(t *testing.T) {
		seeded := testutil.NewDraft().
			WithStep(model.StepFinancialSnapshot).
			WithProfile(testutil.NewProfile().Build()).
			WithSnapshot(deficitSnapshot()).
			Build(t, repo)

		result, err := svc.ValidateCashFlow(seeded.ID)

		if err != nil {
			t.Fatalf("ValidateCashFlow() returned unexpected error: %v", err)
		}
		if result.IsValid {
			t.Error("Expected an invalid result for a deficit household")
		}

		reloaded, _ := repo.GetDraft(seeded.ID)
		if reloaded.Step != model.StepFinancialSnapshot {
			t.Errorf("Expected step %d, got %d", model.StepFinancialSnapshot, reloaded.Step)
		}
	})

	t.Run("requires profile and snapshot", func(t *testing.T) {
		noProfile := testutil.NewDraft().
			WithSnapshot(testutil.NewSnapshot().Build()).
			Build(t, repo)
		if _, err := svc.ValidateCashFlow(noProfile.ID); !errors.Is(err, apperrors.ErrProfileNotFound) {
			t.Errorf("Expected ErrProfileNotFound, got %v", err)
		}

		noSnapshot := testutil.NewDraft().
			WithProfile(testutil.NewProfile().Build()).
			Build(t, repo)
		if _, err := svc.ValidateCashFlow(noSnapshot.ID); !errors.Is(err, apperrors.ErrSnapshotNotFound) {
			t.Errorf("Expected ErrSnapshotNotFound, got %v", err)
		}

		if _, err := svc.ValidateCashFlow(testutil.MakeID()); !errors.Is(err, apperrors.ErrDraftNotFound) {
			t.Errorf("Expected ErrDraftNotFound, got %v", err)
		}
	})
}

// TestProposalService_DeriveRisk tests risk derivation with the
// collaborator in the loop.
//
// WHY: The category must always come from the deterministic engine. The
// collaborator only decorates it with a narrative, and its failures must
// degrade to the fixed description, never block the wizard.
func TestProposalService_DeriveRisk(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := testutil.NewTestDraftRepository(t, db)

	seedAnsweredDraft := func(t *testing.T) model.Draft {
		t.Helper()
		return testutil.NewDraft().
			WithStep(model.StepRiskQuestionnaire).
			WithProfile(testutil.NewProfile().WithAge(30).Build()).
			WithSnapshot(testutil.NewSnapshot().Build()).
			WithAnswers(testutil.MakeRiskAnswers(2, 2, 3, 2)).
			Build(t, repo)
	}

	t.Run("persists the derived profile and advances the step", func(t *testing.T) {
		svc := testutil.NewTestProposalService(t, db)
		seeded := seedAnsweredDraft(t)

		profile, err := svc.DeriveRisk(context.Background(), seeded.ID)

		if err != nil {
			t.Fatalf("DeriveRisk() returned unexpected error: %v", err)
		}
		if profile.Category != model.RiskModerate {
			t.Errorf("Expected category %v, got %v", model.RiskModerate, profile.Category)
		}
		if profile.Description.PrincipalRisk == "" || profile.Description.SuitableFor == "" || profile.Description.Horizon == "" {
			t.Error("Expected a complete three-part description")
		}

		reloaded, _ := repo.GetDraft(seeded.ID)
		if reloaded.RiskProfile == nil || reloaded.RiskProfile.Category != model.RiskModerate {
			t.Error("Expected the profile to be persisted on the draft")
		}
		if reloaded.Step != model.StepProposal {
			t.Errorf("Expected step %d, got %d", model.StepProposal, reloaded.Step)
		}
	})

	t.Run("degrades to the fixed narrative when generation fails", func(t *testing.T) {
		mock := testutil.NewMockAdvisorClient().
			WithError(&advisor.ContentError{Op: "risk description", Err: errors.New("upstream timeout")})
		svc := testutil.NewTestProposalServiceWithAdvisor(t, db, mock, mock.Universe())
		seeded := seedAnsweredDraft(t)

		profile, err := svc.DeriveRisk(context.Background(), seeded.ID)

		if err != nil {
			t.Fatalf("DeriveRisk() returned unexpected error: %v", err)
		}
		if profile.Category != model.RiskModerate {
			t.Errorf("Expected category %v, got %v", model.RiskModerate, profile.Category)
		}
		if profile.Description.PrincipalRisk == "" {
			t.Error("Expected the fixed narrative to be used")
		}
		if count := mock.CallCount(); count != 1 {
			t.Errorf("Expected 1 generation call, got %d", count)
		}
	})

	t.Run("propagates non-generation failures", func(t *testing.T) {
		mock := testutil.NewMockAdvisorClient().WithError(errors.New("context canceled"))
		svc := testutil.NewTestProposalServiceWithAdvisor(t, db, mock, mock.Universe())
		seeded := seedAnsweredDraft(t)

		if _, err := svc.DeriveRisk(context.Background(), seeded.ID); err == nil {
			t.Error("Expected the failure to propagate")
		}
	})

	t.Run("rejects an incomplete questionnaire", func(t *testing.T) {
		svc := testutil.NewTestProposalService(t, db)
		seeded := testutil.NewDraft().
			WithProfile(testutil.NewProfile().Build()).
			WithAnswers(model.RiskAnswers{1: 2, 2: 3}).
			Build(t, repo)

		if _, err := svc.DeriveRisk(context.Background(), seeded.ID); !errors.Is(err, apperrors.ErrIncompleteAnswers) {
			t.Errorf("Expected ErrIncompleteAnswers, got %v", err)
		}
	})

	t.Run("requires a profile", func(t *testing.T) {
		svc := testutil.NewTestProposalService(t, db)
		seeded := testutil.NewDraft().
			WithAnswers(testutil.MakeRiskAnswers(2, 2, 3, 2)).
			Build(t, repo)

		if _, err := svc.DeriveRisk(context.Background(), seeded.ID); !errors.Is(err, apperrors.ErrProfileNotFound) {
			t.Errorf("Expected ErrProfileNotFound, got %v", err)
		}
	})
}

func TestProposalService_GetCapacity(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := testutil.NewTestDraftRepository(t, db)
	svc := testutil.NewTestProposalService(t, db)

	t.Run("computes the breakdown from the stored snapshot", func(t *testing.T) {
		seeded := testutil.NewDraft().
			WithSnapshot(testutil.NewSnapshot().Build()).
			Build(t, repo)

		capacity, err := svc.GetCapacity(seeded.ID)

		if err != nil {
			t.Fatalf("GetCapacity() returned unexpected error: %v", err)
		}
		if capacity.InvestableFromSalary != 48000 {
			t.Errorf("Expected investable 48000, got %.0f", capacity.InvestableFromSalary)
		}
	})

	t.Run("requires a snapshot", func(t *testing.T) {
		seeded := testutil.NewDraft().Build(t, repo)

		if _, err := svc.GetCapacity(seeded.ID); !errors.Is(err, apperrors.ErrSnapshotNotFound) {
			t.Errorf("Expected ErrSnapshotNotFound, got %v", err)
		}
	})
}

// TestProposalService_GenerateProposal tests the full pipeline run.
//
// WHY: A validated draft must always end up with a complete five-slot,
// overlap-free plan on both tracks it has capacity for, even when the
// content collaborator is down.
func TestProposalService_GenerateProposal(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := testutil.NewTestDraftRepository(t, db)

	seedValidatedDraft := func(t *testing.T, snapshot model.FinancialSnapshot) model.Draft {
		t.Helper()
		return testutil.NewDraft().
			WithStep(model.StepProposal).
			WithProfile(testutil.NewProfile().WithAge(30).Build()).
			WithSnapshot(snapshot).
			WithAnswers(testutil.MakeRiskAnswers(2, 2, 3, 2)).
			WithRiskProfile(riskProfile(model.RiskModerate, false)).
			Build(t, repo)
	}

	assertCompletePlan := func(t *testing.T, plan model.AllocationPlan) {
		t.Helper()
		if len(plan.Slots) != model.PlanSlotCount {
			t.Fatalf("Expected %d slots, got %d", model.PlanSlotCount, len(plan.Slots))
		}
		names := make(map[string]bool)
		for _, slot := range plan.Slots {
			if slot.FundName == "" {
				t.Error("Expected every slot to carry an instrument")
			}
			if names[slot.FundName] {
				t.Errorf("Expected distinct instruments, %q appears twice", slot.FundName)
			}
			names[slot.FundName] = true
		}
	}

	t.Run("produces a persisted five-slot proposal", func(t *testing.T) {
		svc := testutil.NewTestProposalService(t, db)
		seeded := seedValidatedDraft(t, testutil.NewSnapshot().WithCorpus(1000000).Build())

		proposal, err := svc.GenerateProposal(context.Background(), seeded.ID)

		if err != nil {
			t.Fatalf("GenerateProposal() returned unexpected error: %v", err)
		}
		assertCompletePlan(t, proposal.Plan)
		if total := proposal.Plan.TrackTotal(model.TrackSIP); total != 100 {
			t.Errorf("Expected SIP total 100, got %.0f", total)
		}
		if total := proposal.Plan.TrackTotal(model.TrackLumpsum); total != 100 {
			t.Errorf("Expected lumpsum total 100, got %.0f", total)
		}
		if proposal.CapacityNarrative == "" || proposal.TotalInWords == "" {
			t.Error("Expected the narrative fields to be populated")
		}
		if len(proposal.Warnings) != 0 {
			t.Errorf("Expected no warnings, got %v", proposal.Warnings)
		}

		reloaded, _ := repo.GetDraft(seeded.ID)
		if reloaded.Plan == nil {
			t.Fatal("Expected the plan to be persisted on the draft")
		}
		assertCompletePlan(t, *reloaded.Plan)
		if reloaded.Step != model.StepReport {
			t.Errorf("Expected step %d, got %d", model.StepReport, reloaded.Step)
		}
	})

	t.Run("leaves the lumpsum track empty without a corpus", func(t *testing.T) {
		svc := testutil.NewTestProposalService(t, db)
		seeded := seedValidatedDraft(t, testutil.NewSnapshot().Build())

		proposal, err := svc.GenerateProposal(context.Background(), seeded.ID)

		if err != nil {
			t.Fatalf("GenerateProposal() returned unexpected error: %v", err)
		}
		if total := proposal.Plan.TrackTotal(model.TrackSIP); total != 100 {
			t.Errorf("Expected SIP total 100, got %.0f", total)
		}
		if total := proposal.Plan.TrackTotal(model.TrackLumpsum); total != 0 {
			t.Errorf("Expected empty lumpsum track, got %.0f", total)
		}
		if proposal.Targets.Lumpsum != nil {
			t.Error("Expected no lumpsum targets without a corpus")
		}
	})

	t.Run("degrades to the deterministic universe when generation fails", func(t *testing.T) {
		mock := testutil.NewMockAdvisorClient().
			WithError(&advisor.ContentError{Op: "fund picks", Err: errors.New("upstream unavailable")})
		svc := testutil.NewTestProposalServiceWithAdvisor(t, db, mock, mock.Universe())
		seeded := seedValidatedDraft(t, testutil.NewSnapshot().Build())

		proposal, err := svc.GenerateProposal(context.Background(), seeded.ID)

		if err != nil {
			t.Fatalf("GenerateProposal() returned unexpected error: %v", err)
		}
		assertCompletePlan(t, proposal.Plan)
		if proposal.CapacityNarrative == "" || proposal.TotalInWords == "" {
			t.Error("Expected the fallback narratives to be populated")
		}
		if count := mock.CallCount(); count != 3 {
			t.Errorf("Expected 3 generation calls, got %d", count)
		}
	})

	t.Run("a deficit household has nothing to allocate", func(t *testing.T) {
		svc := testutil.NewTestProposalService(t, db)
		seeded := seedValidatedDraft(t, deficitSnapshot())

		if _, err := svc.GenerateProposal(context.Background(), seeded.ID); !errors.Is(err, apperrors.ErrCashFlowDeficit) {
			t.Errorf("Expected ErrCashFlowDeficit, got %v", err)
		}
	})

	t.Run("requires the derived risk profile", func(t *testing.T) {
		svc := testutil.NewTestProposalService(t, db)
		seeded := testutil.NewDraft().
			WithProfile(testutil.NewProfile().Build()).
			WithSnapshot(testutil.NewSnapshot().Build()).
			Build(t, repo)

		if _, err := svc.GenerateProposal(context.Background(), seeded.ID); !errors.Is(err, apperrors.ErrRiskProfileNotFound) {
			t.Errorf("Expected ErrRiskProfileNotFound, got %v", err)
		}
	})
}

func TestProposalService_PlanAdjustments(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := testutil.NewTestDraftRepository(t, db)
	svc := testutil.NewTestProposalService(t, db)

	seedPlannedDraft := func(t *testing.T) model.Draft {
		t.Helper()
		return testutil.NewDraft().
			WithStep(model.StepReport).
			WithRiskProfile(riskProfile(model.RiskModerate, false)).
			WithPlan(testutil.MakePlan()).
			Build(t, repo)
	}

	t.Run("DetectOverlap reads the stored plan", func(t *testing.T) {
		seeded := seedPlannedDraft(t)

		counts, err := svc.DetectOverlap(seeded.ID)

		if err != nil {
			t.Fatalf("DetectOverlap() returned unexpected error: %v", err)
		}
		if len(counts) != model.PlanSlotCount {
			t.Errorf("Expected %d distinct names, got %d", model.PlanSlotCount, len(counts))
		}
	})

	t.Run("Substitute persists the swapped plan", func(t *testing.T) {
		seeded := seedPlannedDraft(t)
		replacement := seeded.Plan.Slots[0].Alternatives[0]

		plan, overlapIntroduced, err := svc.Substitute(seeded.ID, 0, replacement)

		if err != nil {
			t.Fatalf("Substitute() returned unexpected error: %v", err)
		}
		if overlapIntroduced {
			t.Error("Expected no overlap from a category-local swap")
		}
		if plan.Slots[0].FundName != replacement {
			t.Errorf("Expected fund %q, got %q", replacement, plan.Slots[0].FundName)
		}

		reloaded, _ := repo.GetDraft(seeded.ID)
		if reloaded.Plan.Slots[0].FundName != replacement {
			t.Error("Expected the swap to be persisted")
		}
	})

	t.Run("OverrideWeight persists and warns about the drifted track", func(t *testing.T) {
		seeded := seedPlannedDraft(t)

		plan, warnings, err := svc.OverrideWeight(seeded.ID, 1, model.TrackSIP, 35)

		if err != nil {
			t.Fatalf("OverrideWeight() returned unexpected error: %v", err)
		}
		if plan.Slots[1].SIPPct != 35 {
			t.Errorf("Expected SIP weight 35, got %.0f", plan.Slots[1].SIPPct)
		}
		if len(warnings) != 1 {
			t.Fatalf("Expected 1 warning, got %v", warnings)
		}

		reloaded, _ := repo.GetDraft(seeded.ID)
		if reloaded.Plan.Slots[1].SIPPct != 35 {
			t.Error("Expected the override to be persisted")
		}
	})

	t.Run("ResolveOverlap persists the de-duplicated plan", func(t *testing.T) {
		duplicated := testutil.MakePlan()
		duplicated.Slots[2].FundName = duplicated.Slots[0].FundName
		seeded := testutil.NewDraft().
			WithRiskProfile(riskProfile(model.RiskModerate, false)).
			WithPlan(duplicated).
			Build(t, repo)

		plan, err := svc.ResolveOverlap(seeded.ID)

		if err != nil {
			t.Fatalf("ResolveOverlap() returned unexpected error: %v", err)
		}
		if plan.Slots[2].FundName == duplicated.Slots[0].FundName {
			t.Error("Expected the colliding slot to be rederived")
		}

		reloaded, _ := repo.GetDraft(seeded.ID)
		if reloaded.Plan.Slots[2].FundName == duplicated.Slots[0].FundName {
			t.Error("Expected the resolution to be persisted")
		}
	})

	t.Run("every adjustment requires a stored plan", func(t *testing.T) {
		seeded := testutil.NewDraft().Build(t, repo)

		if _, err := svc.DetectOverlap(seeded.ID); !errors.Is(err, apperrors.ErrPlanNotFound) {
			t.Errorf("Expected ErrPlanNotFound, got %v", err)
		}
		if _, _, err := svc.Substitute(seeded.ID, 0, "anything"); !errors.Is(err, apperrors.ErrPlanNotFound) {
			t.Errorf("Expected ErrPlanNotFound, got %v", err)
		}
		if _, _, err := svc.OverrideWeight(seeded.ID, 0, model.TrackSIP, 10); !errors.Is(err, apperrors.ErrPlanNotFound) {
			t.Errorf("Expected ErrPlanNotFound, got %v", err)
		}
		if _, err := svc.ResolveOverlap(seeded.ID); !errors.Is(err, apperrors.ErrPlanNotFound) {
			t.Errorf("Expected ErrPlanNotFound, got %v", err)
		}
	})
}
