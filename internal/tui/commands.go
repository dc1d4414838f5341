package tui

import (
	"context"

	"github.com/Veraticus/credit-risk-console/internal/model"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(m.ctx, m.config.RequestTimeout)
}

// waitForChange blocks until the coordinator reports a change.
func (m Model) waitForChange() tea.Cmd {
	if m.changes == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case <-m.changes:
			return stateChangedMsg{}
		case <-m.ctx.Done():
			return nil
		}
	}
}

// initialize loads history, checks reachability, and fetches model details.
func (m Model) initialize() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.requestContext()
		defer cancel()

		m.ctrl.Initialize(ctx)
		m.ctrl.RefreshDashboard(ctx)
		return initializedMsg{}
	}
}

// refreshDashboard re-checks the service and reloads model details.
func (m Model) refreshDashboard() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.requestContext()
		defer cancel()

		m.ctrl.CheckReachability(ctx)
		m.ctrl.RefreshDashboard(ctx)
		return refreshedMsg{}
	}
}

// submit scores p through the coordinator.
func (m Model) submit(p model.ClientProfile) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.requestContext()
		defer cancel()

		_, err := m.ctrl.SubmitProfile(ctx, p)
		return submitDoneMsg{err: err}
	}
}

// loadExample fetches a sample profile from the scoring service.
func (m Model) loadExample() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.requestContext()
		defer cancel()

		p, err := m.config.Examples.Example(ctx)
		return exampleLoadedMsg{profile: p, err: err}
	}
}
