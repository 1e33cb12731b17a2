package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/NB-Software-IND/WealthGenie-Backend/internal/api/request"
	"github.com/NB-Software-IND/WealthGenie-Backend/internal/model"
	"github.com/NB-Software-IND/WealthGenie-Backend/internal/service"
	"github.com/NB-Software-IND/WealthGenie-Backend/internal/validation"
)

// ProposalHandler handles the engine endpoints nested under a draft:
// cash-flow validation, risk derivation, capacity, and the proposal
// lifecycle.
type ProposalHandler struct {
	proposalService *service.ProposalService
}

// NewProposalHandler creates a new ProposalHandler
func NewProposalHandler(proposalService *service.ProposalService) *ProposalHandler {
	return &ProposalHandler{
		proposalService: proposalService,
	}
}

// ValidateCashFlow runs the cash-flow and tax-slab check over the draft's
// snapshot. The result is returned with 200 even when the snapshot fails
// the check; IsValid carries the verdict.
//
// Endpoint: POST /api/draft/{draftID}/cashflow/validate
func (h *ProposalHandler) ValidateCashFlow(w http.ResponseWriter, r *http.Request) {
	draftID := chi.URLParam(r, "draftID")

	result, err := h.proposalService.ValidateCashFlow(draftID)
	if err != nil {
		respondServiceError(w, "Failed to validate cash flow", err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// DeriveRisk scores the questionnaire and returns the derived risk profile.
//
// Endpoint: POST /api/draft/{draftID}/risk
func (h *ProposalHandler) DeriveRisk(w http.ResponseWriter, r *http.Request) {
	draftID := chi.URLParam(r, "draftID")

	profile, err := h.proposalService.DeriveRisk(r.Context(), draftID)
	if err != nil {
		respondServiceError(w, "Failed to derive risk profile", err)
		return
	}

	respondJSON(w, http.StatusOK, profile)
}

// GetCapacity returns the computed investment capacity for the draft.
//
// Endpoint: GET /api/draft/{draftID}/capacity
func (h *ProposalHandler) GetCapacity(w http.ResponseWriter, r *http.Request) {
	draftID := chi.URLParam(r, "draftID")

	capacity, err := h.proposalService.GetCapacity(draftID)
	if err != nil {
		respondServiceError(w, "Failed to compute capacity", err)
		return
	}

	respondJSON(w, http.StatusOK, capacity)
}

// GenerateProposal runs the full pipeline and returns the populated plan
// with narratives and warnings.
//
// Endpoint: POST /api/draft/{draftID}/proposal
func (h *ProposalHandler) GenerateProposal(w http.ResponseWriter, r *http.Request) {
	draftID := chi.URLParam(r, "draftID")

	proposal, err := h.proposalService.GenerateProposal(r.Context(), draftID)
	if err != nil {
		respondServiceError(w, "Failed to generate proposal", err)
		return
	}

	respondJSON(w, http.StatusOK, proposal)
}

// OverlapResponse represents the duplicate-fund detection result.
type OverlapResponse struct {
	HasOverlap bool           `json:"hasOverlap"`
	Counts     map[string]int `json:"counts"`
}

// DetectOverlap reports duplicate fund names across the plan's slots.
//
// Endpoint: GET /api/draft/{draftID}/proposal/overlap
func (h *ProposalHandler) DetectOverlap(w http.ResponseWriter, r *http.Request) {
	draftID := chi.URLParam(r, "draftID")

	counts, err := h.proposalService.DetectOverlap(draftID)
	if err != nil {
		respondServiceError(w, "Failed to detect overlap", err)
		return
	}

	hasOverlap := false
	for _, count := range counts {
		if count > 1 {
			hasOverlap = true
			break
		}
	}

	respondJSON(w, http.StatusOK, OverlapResponse{
		HasOverlap: hasOverlap,
		Counts:     counts,
	})
}

// SubstituteResponse carries the updated plan and whether the swap
// introduced a new duplicate.
type SubstituteResponse struct {
	Plan              model.AllocationPlan `json:"plan"`
	OverlapIntroduced bool                 `json:"overlapIntroduced"`
}

// Substitute swaps a slot's fund with one of its listed alternatives.
//
// Endpoint: POST /api/draft/{draftID}/proposal/substitute
func (h *ProposalHandler) Substitute(w http.ResponseWriter, r *http.Request) {
	draftID := chi.URLParam(r, "draftID")

	var req request.SubstituteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse := map[string]string{
			"error":  "Invalid request body",
			"detail": err.Error(),
		}
		respondJSON(w, http.StatusBadRequest, errorResponse)
		return
	}

	if err := validation.ValidateSubstitute(req); err != nil {
		respondServiceError(w, "Invalid substitution request", err)
		return
	}

	plan, overlapIntroduced, err := h.proposalService.Substitute(draftID, req.SlotIndex, req.FundName)
	if err != nil {
		respondServiceError(w, "Failed to substitute fund", err)
		return
	}

	respondJSON(w, http.StatusOK, SubstituteResponse{
		Plan:              plan,
		OverlapIntroduced: overlapIntroduced,
	})
}

// OverrideResponse carries the updated plan and any sum-mismatch warnings
// the override produced. The engine never auto-corrects an override.
type OverrideResponse struct {
	Plan     model.AllocationPlan `json:"plan"`
	Warnings []string             `json:"warnings"`
}

// OverrideWeight sets one slot's percentage on one track.
//
// Endpoint: POST /api/draft/{draftID}/proposal/override
func (h *ProposalHandler) OverrideWeight(w http.ResponseWriter, r *http.Request) {
	draftID := chi.URLParam(r, "draftID")

	var req request.OverrideWeightRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse := map[string]string{
			"error":  "Invalid request body",
			"detail": err.Error(),
		}
		respondJSON(w, http.StatusBadRequest, errorResponse)
		return
	}

	if err := validation.ValidateOverrideWeight(req); err != nil {
		respondServiceError(w, "Invalid override request", err)
		return
	}

	plan, warnings, err := h.proposalService.OverrideWeight(draftID, req.SlotIndex, model.Track(req.Track), req.Value)
	if err != nil {
		respondServiceError(w, "Failed to override weight", err)
		return
	}

	respondJSON(w, http.StatusOK, OverrideResponse{
		Plan:     plan,
		Warnings: warnings,
	})
}

// ResolveOverlap substitutes duplicates until every slot holds a distinct
// fund, renormalizing both tracks to 100.
//
// Endpoint: POST /api/draft/{draftID}/proposal/resolve
func (h *ProposalHandler) ResolveOverlap(w http.ResponseWriter, r *http.Request) {
	draftID := chi.URLParam(r, "draftID")

	plan, err := h.proposalService.ResolveOverlap(draftID)
	if err != nil {
		respondServiceError(w, "Failed to resolve overlap", err)
		return
	}

	respondJSON(w, http.StatusOK, plan)
}
