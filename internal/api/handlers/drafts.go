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

// DraftHandler handles wizard-draft HTTP requests
type DraftHandler struct {
	draftService *service.DraftService
}

// NewDraftHandler creates a new DraftHandler
func NewDraftHandler(draftService *service.DraftService) *DraftHandler {
	return &DraftHandler{
		draftService: draftService,
	}
}

// CreateDraft starts a new wizard session.
//
// Endpoint: POST /api/draft
// Response: 201 Created with the empty draft
func (h *DraftHandler) CreateDraft(w http.ResponseWriter, r *http.Request) {
	draft, err := h.draftService.CreateDraft()
	if err != nil {
		respondServiceError(w, "Failed to create draft", err)
		return
	}

	respondJSON(w, http.StatusCreated, draft)
}

// GetDraft loads a draft by ID.
//
// Endpoint: GET /api/draft/{draftID}
func (h *DraftHandler) GetDraft(w http.ResponseWriter, r *http.Request) {
	draftID := chi.URLParam(r, "draftID")

	draft, err := h.draftService.GetDraft(draftID)
	if err != nil {
		respondServiceError(w, "Failed to retrieve draft", err)
		return
	}

	respondJSON(w, http.StatusOK, draft)
}

// UpdateDraft applies a partial update to a draft. Sections omitted from
// the body are left untouched.
//
// Endpoint: PUT /api/draft/{draftID}
func (h *DraftHandler) UpdateDraft(w http.ResponseWriter, r *http.Request) {
	draftID := chi.URLParam(r, "draftID")

	var req request.UpdateDraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse := map[string]string{
			"error":  "Invalid request body",
			"detail": err.Error(),
		}
		respondJSON(w, http.StatusBadRequest, errorResponse)
		return
	}

	if err := validation.ValidateUpdateDraft(req); err != nil {
		respondServiceError(w, "Invalid draft update", err)
		return
	}

	update := service.DraftUpdate{
		Profile:  req.Profile,
		Snapshot: req.Snapshot,
		Answers:  req.Answers,
	}
	if req.Step != nil {
		step := model.WizardStep(*req.Step)
		update.Step = &step
	}

	draft, err := h.draftService.UpdateDraft(draftID, update)
	if err != nil {
		respondServiceError(w, "Failed to update draft", err)
		return
	}

	respondJSON(w, http.StatusOK, draft)
}

// DeleteDraft removes a draft and everything derived from it.
//
// Endpoint: DELETE /api/draft/{draftID}
// Response: 204 No Content
func (h *DraftHandler) DeleteDraft(w http.ResponseWriter, r *http.Request) {
	draftID := chi.URLParam(r, "draftID")

	if err := h.draftService.DeleteDraft(draftID); err != nil {
		respondServiceError(w, "Failed to delete draft", err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
