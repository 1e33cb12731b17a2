package advisor

import (
	"fmt"

	"github.com/NB-Software-IND/WealthGenie-Backend/internal/apperrors"
	"github.com/NB-Software-IND/WealthGenie-Backend/internal/model"
)

// FundPickRequest is the input contract for the fund-selection content
// need: the collaborator must return exactly five slots, each with exactly
// four alternatives, collectively honoring the target weight vectors.
type FundPickRequest struct {
	Targets  model.AllocationTargets `json:"targets"`
	Profile  model.RiskProfile       `json:"profile"`
	Age      int                     `json:"age"`
	Capacity model.PortfolioCapacity `json:"capacity"`
}

// ContentError is the typed failure mode for the content-generation
// collaborator: unreachable endpoint, malformed payload, or a payload that
// violates the structural contract.
type ContentError struct {
	Op  string
	Err error
}

func (e *ContentError) Error() string {
	return fmt.Sprintf("content generation failed (%s): %v", e.Op, e.Err)
}

func (e *ContentError) Unwrap() error {
	return e.Err
}

// Is matches apperrors.ErrContentGeneration so callers can test the error
// kind without importing this package's type.
func (e *ContentError) Is(target error) bool {
	return target == apperrors.ErrContentGeneration
}

// chatRequest is the OpenAI-compatible chat completion request body.
type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse is the subset of the chat completion response we read.
type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// ValidateFundPicks checks the structural contract of a fund-pick payload:
// exactly five slots, four alternatives each, no excluded categories, and
// per-track sums of exactly 100 for every track the targets populate.
func ValidateFundPicks(slots []model.AllocationSlot, targets model.AllocationTargets) error {
	if len(slots) != model.PlanSlotCount {
		return fmt.Errorf("expected %d slots, got %d", model.PlanSlotCount, len(slots))
	}

	sipTotal, lumpsumTotal := 0.0, 0.0
	for i, slot := range slots {
		if slot.FundName == "" {
			return fmt.Errorf("slot %d has no fund name", i)
		}
		if len(slot.Alternatives) != model.AlternativeCount {
			return fmt.Errorf("slot %d has %d alternatives, expected %d", i, len(slot.Alternatives), model.AlternativeCount)
		}
		if slot.Category.IsExcluded() {
			return fmt.Errorf("slot %d uses excluded category %s", i, slot.Category)
		}
		sipTotal += slot.SIPPct
		lumpsumTotal += slot.LumpsumPct
	}

	if targets.SIP != nil && sipTotal != 100 {
		return fmt.Errorf("SIP percentages sum to %.2f, expected 100", sipTotal)
	}
	if targets.Lumpsum != nil && lumpsumTotal != 100 {
		return fmt.Errorf("lumpsum percentages sum to %.2f, expected 100", lumpsumTotal)
	}
	return nil
}
