package stubapi

import "github.com/Veraticus/credit-risk-console/internal/model"

func bound(v float64) *float64 { return &v }

var featureCatalog = []model.Feature{
	{Name: "person_age", Type: "integer", Description: "Applicant age in years", Min: bound(18), Max: bound(100)},
	{Name: "person_gender", Type: "categorical", Values: model.Genders},
	{Name: "person_education", Type: "categorical", Values: model.EducationLevels},
	{Name: "person_income", Type: "number", Description: "Annual income", Min: bound(0)},
	{Name: "person_emp_exp", Type: "integer", Description: "Years of employment", Min: bound(0), Max: bound(50)},
	{Name: "person_home_ownership", Type: "categorical", Values: model.HomeOwnerships},
	{Name: "loan_amnt", Type: "number", Description: "Requested loan amount", Min: bound(0)},
	{Name: "loan_intent", Type: "categorical", Values: model.LoanIntents},
	{Name: "loan_int_rate", Type: "number", Description: "Interest rate in percent", Min: bound(0), Max: bound(30)},
	{Name: "loan_percent_income", Type: "number", Description: "Loan amount over income", Min: bound(0), Max: bound(1)},
	{Name: "cb_person_cred_hist_length", Type: "integer", Description: "Credit history length in years", Min: bound(0), Max: bound(50)},
	{Name: "credit_score", Type: "integer", Min: bound(300), Max: bound(850)},
	{Name: "previous_loan_defaults_on_file", Type: "categorical", Values: model.YesNo},
}
