package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/NB-Software-IND/WealthGenie-Backend/internal/apperrors"
	"github.com/NB-Software-IND/WealthGenie-Backend/internal/validation"
)

// respondJSON sends a JSON response with the given status code
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("Failed to encode JSON: %v", err)
		}
	}
}

// respondServiceError maps service-layer errors onto HTTP status codes and
// sends a structured error body. Unrecognized errors become 500s.
func respondServiceError(w http.ResponseWriter, message string, err error) {
	var validationErr *validation.Error
	if errors.As(err, &validationErr) {
		respondJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":  "validation failed",
			"fields": validationErr.Fields,
		})
		return
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperrors.ErrDraftNotFound),
		errors.Is(err, apperrors.ErrPlanNotFound),
		errors.Is(err, apperrors.ErrProfileNotFound),
		errors.Is(err, apperrors.ErrSnapshotNotFound),
		errors.Is(err, apperrors.ErrRiskProfileNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperrors.ErrIncompleteAnswers),
		errors.Is(err, apperrors.ErrCashFlowDeficit),
		errors.Is(err, apperrors.ErrInvalidSlotIndex),
		errors.Is(err, apperrors.ErrInvalidTrack),
		errors.Is(err, apperrors.ErrWeightOutOfRange),
		errors.Is(err, apperrors.ErrInvalidUUID):
		status = http.StatusBadRequest
	case errors.Is(err, apperrors.ErrInvalidSubstitution),
		errors.Is(err, apperrors.ErrOverlapUnresolvable):
		status = http.StatusConflict
	}

	respondJSON(w, status, map[string]string{
		"error":  message,
		"detail": err.Error(),
	})
}
