package tui

import (
	"strings"

	"github.com/Veraticus/credit-risk-console/internal/app"
	"github.com/Veraticus/credit-risk-console/internal/tui/components"
	"github.com/charmbracelet/lipgloss"
)

// Terminals at least this wide show the form and result side by side.
const wideLayout = 100

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	if m.snapshot.View == app.ViewDashboard {
		body = m.dashboard.View(components.DashboardData{
			Reachability: m.snapshot.Reachability,
			Details:      m.snapshot.ModelDetails,
			History:      m.snapshot.History,
		})
	} else {
		body = m.renderFormView()
	}

	sections := []string{m.renderHeader(), body}
	if bar := m.renderNotification(); bar != "" {
		sections = append(sections, bar)
	}
	sections = append(sections, m.renderStatusBar())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHeader renders the title, view tabs and service status.
func (m Model) renderHeader() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(m.theme.Primary).Render("⚖  Credit Risk Console")

	tab := func(label string, active bool) string {
		if active {
			return m.theme.Selected.Padding(0, 1).Render(label)
		}
		return lipgloss.NewStyle().Foreground(m.theme.Muted).Padding(0, 1).Render(label)
	}
	tabs := tab("Assessment", m.snapshot.View == app.ViewForm) + tab("Dashboard", m.snapshot.View == app.ViewDashboard)

	left := title + "  " + tabs
	right := m.renderReachability()

	gap := max(1, m.width-lipgloss.Width(left)-lipgloss.Width(right))
	return left + strings.Repeat(" ", gap) + right + "\n"
}

func (m Model) renderReachability() string {
	switch m.snapshot.Reachability {
	case app.Reachable:
		return m.theme.StatusSuccess.Render("● API online")
	case app.Unreachable:
		return m.theme.StatusError.Render("● API offline")
	default:
		return m.theme.StatusPending.Render("○ checking API")
	}
}

// renderFormView renders the form next to the result, stacked on narrow terminals.
func (m Model) renderFormView() string {
	form := m.theme.RoundedBox.Render(m.form.View())

	var result string
	if m.snapshot.Busy {
		result = lipgloss.JoinVertical(lipgloss.Left,
			m.theme.Title.Render("Risk Assessment"),
			m.spinner.View()+" "+m.theme.StatusPending.Render("Scoring profile..."),
		)
	} else {
		result = m.result.View(m.snapshot.LastResult)
	}
	result = m.theme.RoundedBox.Render(result)

	if m.width < wideLayout {
		return lipgloss.JoinVertical(lipgloss.Left, form, result)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, form, " ", result)
}

// renderNotification renders the current notification, or nothing.
func (m Model) renderNotification() string {
	n := m.snapshot.Notification
	if n == nil {
		return ""
	}

	var icon string
	style := m.theme.StatusInfo
	switch n.Kind {
	case app.NotifySuccess:
		icon, style = "✓", m.theme.StatusSuccess
	case app.NotifyError:
		icon, style = "✗", m.theme.StatusError
	default:
		icon = "ℹ"
	}

	hint := lipgloss.NewStyle().Foreground(m.theme.Muted).Render("  (x to dismiss)")
	return style.Render(icon+" "+n.Message) + hint
}

// renderStatusBar renders the key help footer.
func (m Model) renderStatusBar() string {
	h := m.help
	h.ShowAll = m.showHelp
	return h.View(m.keymap)
}
