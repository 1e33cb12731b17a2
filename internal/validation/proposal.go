package validation

import (
	"fmt"
	"strings"

	"github.com/NB-Software-IND/WealthGenie-Backend/internal/api/request"
	"github.com/NB-Software-IND/WealthGenie-Backend/internal/model"
)

func ValidateSubstitute(req request.SubstituteRequest) error {
	errors := make(map[string]string)

	if req.SlotIndex < 0 || req.SlotIndex >= model.PlanSlotCount {
		errors["slotIndex"] = fmt.Sprintf("slot index must be between 0 and %d", model.PlanSlotCount-1)
	}
	if strings.TrimSpace(req.FundName) == "" {
		errors["fundName"] = "fund name is required"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

func ValidateOverrideWeight(req request.OverrideWeightRequest) error {
	errors := make(map[string]string)

	if req.SlotIndex < 0 || req.SlotIndex >= model.PlanSlotCount {
		errors["slotIndex"] = fmt.Sprintf("slot index must be between 0 and %d", model.PlanSlotCount-1)
	}
	switch model.Track(req.Track) {
	case model.TrackSIP, model.TrackLumpsum:
	default:
		errors["track"] = "track must be SIP or LUMPSUM"
	}
	if req.Value < 0 || req.Value > 100 {
		errors["value"] = "value must be between 0 and 100"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
