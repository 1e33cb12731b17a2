package testutil

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/NB-Software-IND/WealthGenie-Backend/internal/model"
	"github.com/NB-Software-IND/WealthGenie-Backend/internal/repository"
)

// ProfileBuilder provides a fluent interface for creating test profiles.
//
// Example usage:
//
//	profile := testutil.NewProfile().WithAge(28).Build()
type ProfileBuilder struct {
	Name        string
	DateOfBirth string
	Age         int
	Email       string
	Phone       string
	City        string
}

// NewProfile creates a ProfileBuilder with sensible defaults (a 35-year-old
// earning investor).
func NewProfile() *ProfileBuilder {
	b := &ProfileBuilder{
		Name:  "Test Investor",
		Email: "investor@example.com",
		Phone: "+91 98765 43210",
		City:  "Mumbai",
	}
	return b.WithAge(35)
}

// WithName sets a custom name.
func (b *ProfileBuilder) WithName(name string) *ProfileBuilder {
	b.Name = name
	return b
}

// WithAge sets the date of birth so the profile is the given age today.
func (b *ProfileBuilder) WithAge(age int) *ProfileBuilder {
	dob := time.Now().AddDate(-age, 0, -1)
	b.DateOfBirth = dob.Format("2006-01-02")
	b.Age = age
	return b
}

// Build returns the profile.
func (b *ProfileBuilder) Build() model.PersonalProfile {
	return model.PersonalProfile{
		Name:        b.Name,
		DateOfBirth: b.DateOfBirth,
		Age:         b.Age,
		Email:       b.Email,
		Phone:       b.Phone,
		City:        b.City,
	}
}

// SnapshotBuilder provides a fluent interface for creating test snapshots.
//
// Example usage:
//
//	snapshot := testutil.NewSnapshot().
//	    WithMonthlyIncome(150000).
//	    WithCorpus(500000).
//	    Build()
type SnapshotBuilder struct {
	IncomeStatus        model.IncomeStatus
	HasCorpus           bool
	HasPension          bool
	TotalCorpusToInvest float64
	MonthlyIncome       float64
	MonthlyExpenses     float64
	YearlyExpenses      float64
	Insurance           model.InsurancePremiums
	TaxSlab             *model.TaxSlab
}

// NewSnapshot creates a SnapshotBuilder with a comfortable earning
// household: 1L monthly income, 30K monthly expenses, 60K yearly expenses,
// 24K yearly premiums.
func NewSnapshot() *SnapshotBuilder {
	return &SnapshotBuilder{
		IncomeStatus:    model.IncomeStatusEarning,
		MonthlyIncome:   100000,
		MonthlyExpenses: 30000,
		YearlyExpenses:  60000,
		Insurance: model.InsurancePremiums{
			Term:             12000,
			Health:           10000,
			PersonalAccident: 2000,
		},
	}
}

// WithIncomeStatus sets a custom income status.
func (b *SnapshotBuilder) WithIncomeStatus(status model.IncomeStatus) *SnapshotBuilder {
	b.IncomeStatus = status
	return b
}

// Retired marks the household as retired.
func (b *SnapshotBuilder) Retired() *SnapshotBuilder {
	b.IncomeStatus = model.IncomeStatusRetired
	return b
}

// WithPension marks the household as drawing a pension.
func (b *SnapshotBuilder) WithPension() *SnapshotBuilder {
	b.HasPension = true
	return b
}

// WithCorpus sets a lumpsum corpus available to invest.
func (b *SnapshotBuilder) WithCorpus(amount float64) *SnapshotBuilder {
	b.HasCorpus = true
	b.TotalCorpusToInvest = amount
	return b
}

// WithMonthlyIncome sets a custom monthly income.
func (b *SnapshotBuilder) WithMonthlyIncome(amount float64) *SnapshotBuilder {
	b.MonthlyIncome = amount
	return b
}

// WithMonthlyExpenses sets custom monthly expenses.
func (b *SnapshotBuilder) WithMonthlyExpenses(amount float64) *SnapshotBuilder {
	b.MonthlyExpenses = amount
	return b
}

// WithYearlyExpenses sets custom yearly expenses.
func (b *SnapshotBuilder) WithYearlyExpenses(amount float64) *SnapshotBuilder {
	b.YearlyExpenses = amount
	return b
}

// WithInsurance sets custom yearly premiums.
func (b *SnapshotBuilder) WithInsurance(term, health, personalAccident float64) *SnapshotBuilder {
	b.Insurance = model.InsurancePremiums{
		Term:             term,
		Health:           health,
		PersonalAccident: personalAccident,
	}
	return b
}

// WithTaxSlab sets the declared tax slab instead of deriving it from income.
func (b *SnapshotBuilder) WithTaxSlab(slab model.TaxSlab) *SnapshotBuilder {
	b.TaxSlab = &slab
	return b
}

// Build returns the snapshot. Unless overridden, the tax slab is the one
// matching the declared income and corpus.
func (b *SnapshotBuilder) Build() model.FinancialSnapshot {
	slab := model.TaxSlabForIncome(b.MonthlyIncome*12 + b.TotalCorpusToInvest)
	if b.TaxSlab != nil {
		slab = *b.TaxSlab
	}

	return model.FinancialSnapshot{
		IncomeStatus:        b.IncomeStatus,
		HasCorpus:           b.HasCorpus,
		HasPension:          b.HasPension,
		TotalCorpusToInvest: b.TotalCorpusToInvest,
		MonthlyIncome:       b.MonthlyIncome,
		MonthlyExpenses:     b.MonthlyExpenses,
		YearlyExpenses:      b.YearlyExpenses,
		Insurance:           b.Insurance,
		TaxSlab:             slab,
	}
}

// MakeRiskAnswers builds a complete questionnaire from the four answers.
func MakeRiskAnswers(a1, a2, a3, a4 int) model.RiskAnswers {
	return model.RiskAnswers{1: a1, 2: a2, 3: a3, 4: a4}
}

// MakePlan builds a five-slot plan with distinct fund names and both tracks
// summing to 100. Fund names and alternatives are synthetic.
func MakePlan() model.AllocationPlan {
	categories := []model.FundCategory{
		model.CategoryLargeCap,
		model.CategoryFlexiCap,
		model.CategoryMidCap,
		model.CategoryShortDuration,
		model.CategoryLiquid,
	}

	plan := model.AllocationPlan{Slots: make([]model.AllocationSlot, len(categories))}
	for i, category := range categories {
		alternatives := make([]string, model.AlternativeCount)
		for j := range alternatives {
			alternatives[j] = fmt.Sprintf("Test %s Fund %d", category, j+2)
		}
		plan.Slots[i] = model.AllocationSlot{
			FundName:     fmt.Sprintf("Test %s Fund 1", category),
			Category:     category,
			SIPPct:       20,
			LumpsumPct:   20,
			Alternatives: alternatives,
		}
	}
	return plan
}

// DraftBuilder provides a fluent interface for creating persisted test
// drafts.
//
// Example usage:
//
//	draft := testutil.NewDraft().
//	    WithProfile(testutil.NewProfile().Build()).
//	    WithSnapshot(testutil.NewSnapshot().Build()).
//	    Build(t, repo)
type DraftBuilder struct {
	ID          string
	Step        model.WizardStep
	Profile     *model.PersonalProfile
	Snapshot    *model.FinancialSnapshot
	RiskAnswers model.RiskAnswers
	RiskProfile *model.RiskProfile
	Plan        *model.AllocationPlan
	UpdatedAt   time.Time
}

// NewDraft creates a DraftBuilder for an empty draft.
func NewDraft() *DraftBuilder {
	return &DraftBuilder{
		ID:        MakeID(),
		UpdatedAt: time.Now().UTC(),
	}
}

// WithID sets a custom ID.
func (b *DraftBuilder) WithID(id string) *DraftBuilder {
	b.ID = id
	return b
}

// WithStep sets the wizard step.
func (b *DraftBuilder) WithStep(step model.WizardStep) *DraftBuilder {
	b.Step = step
	return b
}

// WithProfile attaches a personal profile.
func (b *DraftBuilder) WithProfile(profile model.PersonalProfile) *DraftBuilder {
	b.Profile = &profile
	return b
}

// WithSnapshot attaches a financial snapshot.
func (b *DraftBuilder) WithSnapshot(snapshot model.FinancialSnapshot) *DraftBuilder {
	b.Snapshot = &snapshot
	return b
}

// WithAnswers attaches questionnaire answers.
func (b *DraftBuilder) WithAnswers(answers model.RiskAnswers) *DraftBuilder {
	b.RiskAnswers = answers
	return b
}

// WithRiskProfile attaches a derived risk profile.
func (b *DraftBuilder) WithRiskProfile(profile model.RiskProfile) *DraftBuilder {
	b.RiskProfile = &profile
	return b
}

// WithPlan attaches an allocation plan.
func (b *DraftBuilder) WithPlan(plan model.AllocationPlan) *DraftBuilder {
	b.Plan = &plan
	return b
}

// Build persists the draft through the repository and returns it.
func (b *DraftBuilder) Build(t *testing.T, repo *repository.DraftRepository) model.Draft {
	t.Helper()

	draft := model.Draft{
		ID:          b.ID,
		Step:        b.Step,
		Profile:     b.Profile,
		Snapshot:    b.Snapshot,
		RiskAnswers: b.RiskAnswers,
		RiskProfile: b.RiskProfile,
		Plan:        b.Plan,
		CreatedAt:   b.UpdatedAt,
		UpdatedAt:   b.UpdatedAt,
	}

	if err := repo.SaveDraft(draft); err != nil {
		t.Fatalf("Failed to create test draft: %v", err)
	}

	saved, err := repo.GetDraft(b.ID)
	if err != nil {
		t.Fatalf("Failed to reload test draft: %v", err)
	}
	return saved
}

// BackdateDraft rewrites a draft's updated_at, used by cleanup tests. The
// repository always stamps the current time on save, so tests go straight
// to the table.
func BackdateDraft(t *testing.T, db *sql.DB, id string, updatedAt time.Time) {
	t.Helper()

	if _, err := db.Exec(`UPDATE draft SET updated_at = ? WHERE id = ?`, updatedAt.UTC(), id); err != nil {
		t.Fatalf("Failed to backdate draft: %v", err)
	}
}
