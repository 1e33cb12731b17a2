package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// PersonalProfile holds the investor's personal facts captured at intake.
// Age is derived from DateOfBirth and must be recomputed whenever the
// date of birth changes.
type PersonalProfile struct {
	Name        string `json:"name"`
	DateOfBirth string `json:"dateOfBirth"` // YYYY-MM-DD
	Age         int    `json:"age"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	City        string `json:"city"`
}

// ComputeAge derives the age in completed years from DateOfBirth at the
// given reference time and stores it on the profile.
func (p *PersonalProfile) ComputeAge(now time.Time) error {
	dob, err := time.Parse("2006-01-02", p.DateOfBirth)
	if err != nil {
		return fmt.Errorf("failed to parse date of birth: %w", err)
	}
	age := now.Year() - dob.Year()
	if now.YearDay() < dob.YearDay() {
		age--
	}
	if age < 0 {
		age = 0
	}
	p.Age = age
	return nil
}

// IncomeStatus describes where the investor's cash flow comes from.
type IncomeStatus string

const (
	IncomeStatusEarning IncomeStatus = "EARNING"
	IncomeStatusRetired IncomeStatus = "RETIRED"
)

// InsurancePremiums holds the three yearly premium amounts. All values
// are yearly and must be >= 0.
type InsurancePremiums struct {
	Term             float64 `json:"term"`
	Health           float64 `json:"health"`
	PersonalAccident float64 `json:"personalAccident"`
}

// Total returns the combined yearly premium outgo.
func (i InsurancePremiums) Total() float64 {
	return i.Term + i.Health + i.PersonalAccident
}

// FinancialSnapshot holds the household's declared financial position.
// All monetary fields are in INR and must be >= 0.
type FinancialSnapshot struct {
	IncomeStatus        IncomeStatus      `json:"incomeStatus"`
	HasCorpus           bool              `json:"hasCorpus"`
	HasPension          bool              `json:"hasPension"`
	TotalCorpusToInvest float64           `json:"totalCorpusToInvest"`
	MonthlyIncome       float64           `json:"monthlyIncome"`
	MonthlyExpenses     float64           `json:"monthlyExpenses"`
	YearlyExpenses      float64           `json:"yearlyExpenses"`
	Insurance           InsurancePremiums `json:"insurance"`
	TaxSlab             TaxSlab           `json:"taxSlab"`
}

// TaxSlab is one of the fixed, ordered income-tax bracket labels.
// The zero value is the lowest bracket.
type TaxSlab int

// Tax slabs in ascending bracket order (new-regime brackets).
const (
	TaxSlabNil TaxSlab = iota // up to 3L
	TaxSlab5                  // 3L - 7L
	TaxSlab10                 // 7L - 10L
	TaxSlab15                 // 10L - 12L
	TaxSlab20                 // 12L - 15L
	TaxSlab30                 // above 15L
)

// taxSlabLabels maps each slab to its user-facing bracket label.
var taxSlabLabels = [...]string{
	TaxSlabNil: "Up to ₹3,00,000",
	TaxSlab5:   "₹3,00,001 - ₹7,00,000",
	TaxSlab10:  "₹7,00,001 - ₹10,00,000",
	TaxSlab15:  "₹10,00,001 - ₹12,00,000",
	TaxSlab20:  "₹12,00,001 - ₹15,00,000",
	TaxSlab30:  "Above ₹15,00,000",
}

// taxSlabUpperBounds holds the inclusive upper bound of each bracket except
// the last, which is open-ended.
var taxSlabUpperBounds = [...]float64{
	TaxSlabNil: 300000,
	TaxSlab5:   700000,
	TaxSlab10:  1000000,
	TaxSlab15:  1200000,
	TaxSlab20:  1500000,
}

func (t TaxSlab) String() string {
	if t < TaxSlabNil || int(t) >= len(taxSlabLabels) {
		return fmt.Sprintf("TaxSlab(%d)", int(t))
	}
	return taxSlabLabels[t]
}

// ParseTaxSlab maps a bracket label back to its TaxSlab.
func ParseTaxSlab(label string) (TaxSlab, error) {
	for i, l := range taxSlabLabels {
		if l == label {
			return TaxSlab(i), nil
		}
	}
	return 0, fmt.Errorf("unknown tax slab: %q", label)
}

// TaxSlabForIncome returns the bracket containing the given taxable base.
func TaxSlabForIncome(taxableBase float64) TaxSlab {
	for slab, upper := range taxSlabUpperBounds {
		if taxableBase <= upper {
			return TaxSlab(slab)
		}
	}
	return TaxSlab30
}

// MarshalJSON renders the slab as its bracket label.
func (t TaxSlab) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON parses a bracket label into the slab.
func (t *TaxSlab) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err != nil {
		return err
	}
	slab, err := ParseTaxSlab(label)
	if err != nil {
		return err
	}
	*t = slab
	return nil
}
