package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/NB-Software-IND/WealthGenie-Backend/internal/api/request"
	"github.com/NB-Software-IND/WealthGenie-Backend/internal/model"
)

// ValidateUpdateDraft checks a partial draft update. Only provided sections
// are validated.
func ValidateUpdateDraft(req request.UpdateDraftRequest) error {
	errors := make(map[string]string)

	if req.Profile != nil {
		validateProfile(*req.Profile, errors)
	}
	if req.Snapshot != nil {
		validateSnapshot(*req.Snapshot, errors)
	}
	if req.Answers != nil {
		validateAnswers(req.Answers, errors)
	}
	if req.Step != nil {
		if *req.Step < int(model.StepPersonalProfile) || *req.Step > int(model.StepReport) {
			errors["step"] = fmt.Sprintf("step must be between %d and %d", model.StepPersonalProfile, model.StepReport)
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

func validateProfile(profile model.PersonalProfile, errors map[string]string) {
	if strings.TrimSpace(profile.Name) == "" {
		errors["profile.name"] = "name is required"
	} else if len(profile.Name) > 100 {
		errors["profile.name"] = "name must be 100 characters or less"
	}

	if profile.DateOfBirth == "" {
		errors["profile.dateOfBirth"] = "date of birth is required"
	} else if err := ValidateDate(profile.DateOfBirth); err != nil {
		errors["profile.dateOfBirth"] = "date of birth must be YYYY-MM-DD"
	} else {
		dob, _ := time.Parse("2006-01-02", profile.DateOfBirth)
		if dob.After(time.Now()) {
			errors["profile.dateOfBirth"] = "date of birth cannot be in the future"
		}
	}

	if profile.Email != "" && !strings.Contains(profile.Email, "@") {
		errors["profile.email"] = "email must be a valid address"
	}
}

func validateSnapshot(snapshot model.FinancialSnapshot, errors map[string]string) {
	switch snapshot.IncomeStatus {
	case model.IncomeStatusEarning, model.IncomeStatusRetired:
	default:
		errors["snapshot.incomeStatus"] = "income status must be EARNING or RETIRED"
	}

	amounts := map[string]float64{
		"snapshot.totalCorpusToInvest":        snapshot.TotalCorpusToInvest,
		"snapshot.monthlyIncome":              snapshot.MonthlyIncome,
		"snapshot.monthlyExpenses":            snapshot.MonthlyExpenses,
		"snapshot.yearlyExpenses":             snapshot.YearlyExpenses,
		"snapshot.insurance.term":             snapshot.Insurance.Term,
		"snapshot.insurance.health":           snapshot.Insurance.Health,
		"snapshot.insurance.personalAccident": snapshot.Insurance.PersonalAccident,
	}
	for field, amount := range amounts {
		if amount < 0 {
			errors[field] = "amount cannot be negative"
		}
	}

	if snapshot.HasCorpus && snapshot.TotalCorpusToInvest <= 0 {
		errors["snapshot.totalCorpusToInvest"] = "corpus amount is required when a corpus is declared"
	}
}

func validateAnswers(answers model.RiskAnswers, errors map[string]string) {
	for question, answer := range answers {
		if question < 1 || question > model.RiskQuestionCount {
			errors["answers"] = fmt.Sprintf("question numbers must be between 1 and %d", model.RiskQuestionCount)
			return
		}
		if answer < model.RiskAnswerMin || answer > model.RiskAnswerMax {
			errors[fmt.Sprintf("answers.%d", question)] = fmt.Sprintf("answer must be between %d and %d", model.RiskAnswerMin, model.RiskAnswerMax)
		}
	}
}
