package model

import (
	"encoding/json"
	"fmt"
)

// Fixed shape of the risk questionnaire.
const (
	RiskQuestionCount = 4
	RiskAnswerMin     = 1
	RiskAnswerMax     = 4
)

// RiskAnswers maps question id (1..RiskQuestionCount) to the chosen score
// (RiskAnswerMin..RiskAnswerMax). The set is complete only when every
// question id is present.
type RiskAnswers map[int]int

// IsComplete reports whether every question has an in-range answer.
func (a RiskAnswers) IsComplete() bool {
	if len(a) != RiskQuestionCount {
		return false
	}
	for q := 1; q <= RiskQuestionCount; q++ {
		score, ok := a[q]
		if !ok || score < RiskAnswerMin || score > RiskAnswerMax {
			return false
		}
	}
	return true
}

// Score returns the summed questionnaire score (4..16 for a complete set).
func (a RiskAnswers) Score() int {
	total := 0
	for _, score := range a {
		total += score
	}
	return total
}

// RiskCategory is one of the six ordered risk levels. The ordering is total:
// a higher value always means higher risk tolerance.
type RiskCategory int

const (
	RiskLow RiskCategory = iota
	RiskModeratelyLow
	RiskModerate
	RiskModeratelyHigh
	RiskHigh
	RiskVeryHigh
)

var riskCategoryLabels = [...]string{
	RiskLow:            "Low",
	RiskModeratelyLow:  "Moderately Low",
	RiskModerate:       "Moderate",
	RiskModeratelyHigh: "Moderately High",
	RiskHigh:           "High",
	RiskVeryHigh:       "Very High",
}

func (c RiskCategory) String() string {
	if c < RiskLow || int(c) >= len(riskCategoryLabels) {
		return fmt.Sprintf("RiskCategory(%d)", int(c))
	}
	return riskCategoryLabels[c]
}

// ParseRiskCategory maps a category label back to its RiskCategory.
func ParseRiskCategory(label string) (RiskCategory, error) {
	for i, l := range riskCategoryLabels {
		if l == label {
			return RiskCategory(i), nil
		}
	}
	return 0, fmt.Errorf("unknown risk category: %q", label)
}

// MarshalJSON renders the category as its label.
func (c RiskCategory) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON parses a category label.
func (c *RiskCategory) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err != nil {
		return err
	}
	cat, err := ParseRiskCategory(label)
	if err != nil {
		return err
	}
	*c = cat
	return nil
}

// RiskDescription is the three-part narrative attached to a risk category.
type RiskDescription struct {
	PrincipalRisk string `json:"principalRisk"`
	SuitableFor   string `json:"suitableFor"`
	Horizon       string `json:"horizon"`
}

// RiskProfile is derived once from a completed answer set and the investor's
// age, and is immutable until re-derived from new answers.
type RiskProfile struct {
	Category     RiskCategory    `json:"category"`
	Score        int             `json:"score"`
	ShortHorizon bool            `json:"shortHorizon"`
	Description  RiskDescription `json:"description"`
}
