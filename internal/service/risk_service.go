package service

import (
	"github.com/NB-Software-IND/WealthGenie-Backend/internal/apperrors"
	"github.com/NB-Software-IND/WealthGenie-Backend/internal/model"
)

// RiskService maps a completed risk questionnaire plus the investor's age to
// one of the six ordered risk categories. The mapping is deterministic and
// idempotent: identical inputs always yield the identical category.
type RiskService struct{}

// NewRiskService creates a new RiskService.
func NewRiskService() *RiskService {
	return &RiskService{}
}

// riskScoreBands maps the summed questionnaire score (4..16) to a category.
// Band edges tie toward the lower-risk band to bias conservatively.
var riskScoreBands = []struct {
	maxScore int
	category model.RiskCategory
}{
	{5, model.RiskLow},
	{7, model.RiskModeratelyLow},
	{10, model.RiskModerate},
	{12, model.RiskModeratelyHigh},
	{14, model.RiskHigh},
	{16, model.RiskVeryHigh},
}

// riskDescriptions is the fixed three-part narrative per category. The
// content collaborator may replace the prose, never the category.
var riskDescriptions = map[model.RiskCategory]model.RiskDescription{
	model.RiskLow: {
		PrincipalRisk: "Principal is largely protected; returns track short-term debt markets.",
		SuitableFor:   "Investors who cannot tolerate any meaningful drawdown of capital.",
		Horizon:       "Suitable for parking money needed within a year.",
	},
	model.RiskModeratelyLow: {
		PrincipalRisk: "Small mark-to-market swings from interest-rate movement.",
		SuitableFor:   "Conservative investors seeking returns a little above deposits.",
		Horizon:       "Suitable for goals one to three years away.",
	},
	model.RiskModerate: {
		PrincipalRisk: "Meaningful but bounded equity exposure; interim declines are expected.",
		SuitableFor:   "Investors balancing growth with stability of the larger corpus.",
		Horizon:       "Suitable for goals three to five years away.",
	},
	model.RiskModeratelyHigh: {
		PrincipalRisk: "Majority equity exposure; double-digit drawdowns can occur.",
		SuitableFor:   "Investors comfortable riding out full market cycles.",
		Horizon:       "Suitable for goals five or more years away.",
	},
	model.RiskHigh: {
		PrincipalRisk: "Predominantly equity including mid caps; sharp drawdowns are likely.",
		SuitableFor:   "Experienced investors prioritising long-term growth over stability.",
		Horizon:       "Suitable for goals seven or more years away.",
	},
	model.RiskVeryHigh: {
		PrincipalRisk: "Fully equity including small caps; severe volatility is expected.",
		SuitableFor:   "Aggressive investors who will not need this money for a decade.",
		Horizon:       "Suitable for goals ten or more years away.",
	},
}

// DeriveProfile computes the risk profile from a completed answer set and
// age. Returns apperrors.ErrIncompleteAnswers when any of the four questions
// is missing or out of range.
//
// The banding is monotonic in the score; age only caps the category
// downwards (60 and above at most Moderate, 46-59 at most Moderately High)
// so the overall mapping stays monotonic and conservative.
func (s *RiskService) DeriveProfile(answers model.RiskAnswers, age int) (model.RiskProfile, error) {
	if !answers.IsComplete() {
		return model.RiskProfile{}, apperrors.ErrIncompleteAnswers
	}

	score := answers.Score()
	category := model.RiskVeryHigh
	for _, band := range riskScoreBands {
		if score <= band.maxScore {
			category = band.category
			break
		}
	}

	switch {
	case age >= 60 && category > model.RiskModerate:
		category = model.RiskModerate
	case age >= 46 && category > model.RiskModeratelyHigh:
		category = model.RiskModeratelyHigh
	}

	return model.RiskProfile{
		Category:     category,
		Score:        score,
		ShortHorizon: s.ShortHorizon(answers),
		Description:  riskDescriptions[category],
	}, nil
}

// ShortHorizon reports whether the question-3 answer implies an investment
// horizon under three years (score <= 2).
func (s *RiskService) ShortHorizon(answers model.RiskAnswers) bool {
	return answers[3] <= 2
}
