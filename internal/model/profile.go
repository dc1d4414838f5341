package model

import (
	"errors"
	"fmt"
	"slices"
)

// ErrInvalidProfile is returned when a client profile falls outside the accepted input ranges.
var ErrInvalidProfile = errors.New("invalid client profile")

// Categorical values accepted by the scoring service.
var (
	Genders         = []string{"Male", "Female"}
	EducationLevels = []string{"High School", "Associate", "Bachelor", "Master", "Doctorate"}
	HomeOwnerships  = []string{"RENT", "OWN", "MORTGAGE", "OTHER"}
	LoanIntents     = []string{"PERSONAL", "EDUCATION", "MEDICAL", "VENTURE", "HOMEIMPROVEMENT", "DEBTCONSOLIDATION"}
	YesNo           = []string{"No", "Yes"}
)

// ClientProfile holds the applicant attributes submitted for scoring.
// Field names on the wire follow the scoring service contract.
type ClientProfile struct {
	Gender             string  `json:"person_gender"`
	Education          string  `json:"person_education"`
	HomeOwnership      string  `json:"person_home_ownership"`
	LoanIntent         string  `json:"loan_intent"`
	PriorDefaults      string  `json:"previous_loan_defaults_on_file"`
	Income             float64 `json:"person_income"`
	LoanAmount         float64 `json:"loan_amnt"`
	InterestRate       float64 `json:"loan_int_rate"`
	LoanPercentIncome  float64 `json:"loan_percent_income"`
	Age                int     `json:"person_age"`
	EmploymentYears    int     `json:"person_emp_exp"`
	CreditHistoryYears int     `json:"cb_person_cred_hist_length"`
	CreditScore        int     `json:"credit_score"`
}

// DefaultProfile returns the profile the input form starts from.
func DefaultProfile() ClientProfile {
	return ClientProfile{
		Age:                30,
		Gender:             "Male",
		Education:          "Bachelor",
		Income:             50000,
		EmploymentYears:    5,
		HomeOwnership:      "RENT",
		LoanAmount:         15000,
		LoanIntent:         "PERSONAL",
		InterestRate:       10.5,
		LoanPercentIncome:  0.3,
		CreditHistoryYears: 7,
		CreditScore:        680,
		PriorDefaults:      "No",
	}
}

// Validate checks the input-collection ranges. The coordinator never calls it;
// range enforcement belongs to whatever collects the profile.
func (p ClientProfile) Validate() error {
	var errs []error

	checkInt := func(name string, v, lo, hi int) {
		if v < lo || v > hi {
			errs = append(errs, fmt.Errorf("%s must be between %d and %d, got %d", name, lo, hi, v))
		}
	}
	checkFloat := func(name string, v, lo, hi float64) {
		if v < lo || v > hi {
			errs = append(errs, fmt.Errorf("%s must be between %g and %g, got %g", name, lo, hi, v))
		}
	}
	checkOption := func(name, v string, options []string) {
		if !slices.Contains(options, v) {
			errs = append(errs, fmt.Errorf("%s must be one of %v, got %q", name, options, v))
		}
	}

	checkInt("person_age", p.Age, 18, 100)
	checkOption("person_gender", p.Gender, Genders)
	checkOption("person_education", p.Education, EducationLevels)
	if p.Income < 0 {
		errs = append(errs, fmt.Errorf("person_income cannot be negative"))
	}
	checkInt("person_emp_exp", p.EmploymentYears, 0, 50)
	checkOption("person_home_ownership", p.HomeOwnership, HomeOwnerships)
	if p.LoanAmount < 0 {
		errs = append(errs, fmt.Errorf("loan_amnt cannot be negative"))
	}
	checkOption("loan_intent", p.LoanIntent, LoanIntents)
	checkFloat("loan_int_rate", p.InterestRate, 0, 30)
	checkFloat("loan_percent_income", p.LoanPercentIncome, 0, 1)
	checkInt("cb_person_cred_hist_length", p.CreditHistoryYears, 0, 50)
	checkInt("credit_score", p.CreditScore, 300, 850)
	checkOption("previous_loan_defaults_on_file", p.PriorDefaults, YesNo)

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidProfile, errors.Join(errs...))
	}
	return nil
}
