package components

import "github.com/Veraticus/credit-risk-console/internal/model"

// SubmitRequestMsg asks the application to score a profile.
type SubmitRequestMsg struct {
	Profile model.ClientProfile
}

// InvalidProfileMsg reports a form that could not be turned into a profile.
type InvalidProfileMsg struct {
	Err error
}
