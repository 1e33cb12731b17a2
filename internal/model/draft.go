package model

import "time"

// WizardStep tracks how far the investor has progressed through the intake
// wizard. Steps are ordered; a draft never moves backwards implicitly.
type WizardStep int

const (
	StepPersonalProfile WizardStep = iota
	StepFinancialSnapshot
	StepRiskQuestionnaire
	StepProposal
	StepReport
)

// Draft is the persisted wizard session: everything the investor has entered
// so far plus everything the engine has derived from it, keyed by a fixed
// draft identifier. A draft is owned by a single wizard session; concurrent
// edits are out of scope.
type Draft struct {
	ID          string             `json:"id"`
	Step        WizardStep         `json:"step"`
	Profile     *PersonalProfile   `json:"profile,omitempty"`
	Snapshot    *FinancialSnapshot `json:"snapshot,omitempty"`
	RiskAnswers RiskAnswers        `json:"riskAnswers,omitempty"`
	RiskProfile *RiskProfile       `json:"riskProfile,omitempty"`
	Plan        *AllocationPlan    `json:"plan,omitempty"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}
