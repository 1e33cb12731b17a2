// Package request defines the JSON request bodies accepted by the API.
package request

import (
	"github.com/NB-Software-IND/WealthGenie-Backend/internal/model"
)

// UpdateDraftRequest represents a partial update to a wizard draft.
// Omitted sections are left untouched.
type UpdateDraftRequest struct {
	Profile  *model.PersonalProfile   `json:"profile,omitempty"`
	Snapshot *model.FinancialSnapshot `json:"snapshot,omitempty"`
	Answers  model.RiskAnswers        `json:"answers,omitempty"`
	Step     *int                     `json:"step,omitempty"`
}
