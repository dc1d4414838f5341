package tui

import "github.com/Veraticus/credit-risk-console/internal/model"

// stateChangedMsg tells the model to take a fresh coordinator snapshot.
type stateChangedMsg struct{}

type initializedMsg struct{}

type refreshedMsg struct{}

type submitDoneMsg struct {
	err error
}

type exampleLoadedMsg struct {
	err     error
	profile model.ClientProfile
}
