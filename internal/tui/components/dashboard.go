package components

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Veraticus/credit-risk-console/internal/analytics"
	"github.com/Veraticus/credit-risk-console/internal/app"
	"github.com/Veraticus/credit-risk-console/internal/model"
	"github.com/Veraticus/credit-risk-console/internal/tui/themes"
	"github.com/charmbracelet/lipgloss"
)

const barWidth = 24

// DashboardData is what the dashboard draws from.
type DashboardData struct {
	Details      *model.ModelDetails
	History      []model.PredictionRecord
	Reachability app.Reachability
}

// DashboardPanel renders history analytics and service status.
type DashboardPanel struct {
	theme themes.Theme
	width int
}

// NewDashboardPanel creates a dashboard panel.
func NewDashboardPanel(theme themes.Theme) DashboardPanel {
	return DashboardPanel{theme: theme}
}

// Resize sets the available width.
func (d *DashboardPanel) Resize(width int) {
	d.width = width
}

// View renders the dashboard.
func (d DashboardPanel) View(data DashboardData) string {
	left := lipgloss.JoinVertical(lipgloss.Left,
		d.renderStatus(data),
		"",
		d.renderSummary(data.History),
		"",
		d.renderDistribution(data.History),
	)
	right := lipgloss.JoinVertical(lipgloss.Left,
		d.renderTimeline(data.History),
		"",
		d.renderRecent(data.History),
	)

	if d.width > 0 && d.width < 100 {
		return lipgloss.JoinVertical(lipgloss.Left, left, "", right)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(48).Render(left),
		right,
	)
}

func (d DashboardPanel) renderStatus(data DashboardData) string {
	var status string
	switch data.Reachability {
	case app.Reachable:
		status = d.theme.StatusSuccess.Render("● online")
	case app.Unreachable:
		status = d.theme.StatusError.Render("● offline")
	default:
		status = d.theme.StatusPending.Render("○ checking")
	}

	lines := []string{
		d.theme.Title.Render("Scoring Service"),
		d.theme.Label.Render("Status") + status,
	}

	if det := data.Details; det != nil {
		lines = append(lines,
			d.theme.Label.Render("Model")+strings.TrimSpace(det.ModelName+" "+det.ModelVersion),
			d.theme.Label.Render("Features")+fmt.Sprintf("%d", det.FeaturesUsed),
		)
		if det.Algorithm != "" {
			lines = append(lines, d.theme.Label.Render("Algorithm")+det.Algorithm)
		}
		if det.TrainedAt != "" {
			lines = append(lines, d.theme.Label.Render("Trained")+det.TrainedAt)
		}
		names := make([]string, 0, len(det.Metrics))
		for name := range det.Metrics {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			lines = append(lines, d.theme.Label.Render(name)+fmt.Sprintf("%.3f", det.Metrics[name]))
		}
	} else {
		lines = append(lines, d.theme.StatusPending.Render("Model details unavailable"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (d DashboardPanel) renderSummary(records []model.PredictionRecord) string {
	s := analytics.SummaryStats(records)
	return lipgloss.JoinVertical(lipgloss.Left,
		d.theme.Title.Render("Summary"),
		d.theme.Label.Render("Total predictions")+fmt.Sprintf("%d", s.Total),
		d.theme.Label.Render("High risk")+d.theme.RiskHigh.Render(fmt.Sprintf("%d", s.HighRisk)),
		d.theme.Label.Render("Low risk")+d.theme.RiskLow.Render(fmt.Sprintf("%d", s.LowRisk())),
		d.theme.Label.Render("Average probability")+fmt.Sprintf("%.1f%%", s.AverageProbability),
		d.theme.Label.Render("Average processing")+fmt.Sprintf("%.0f ms", s.AverageProcessingMS),
	)
}

func (d DashboardPanel) renderDistribution(records []model.PredictionRecord) string {
	dist := analytics.RiskDistribution(records)
	title := d.theme.Title.Render("Risk Distribution")
	if dist.Total() == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, title, d.theme.StatusPending.Render("No predictions yet"))
	}

	row := func(name string, c model.RiskClass, count int) string {
		share := dist.Share(c)
		return fmt.Sprintf("%-5s %s %d (%.0f%%)",
			name,
			d.theme.Risk(c == model.RiskHigh).Render(bar(share, barWidth)),
			count,
			share*100)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		row("Low", model.RiskLow, dist.Low),
		row("High", model.RiskHigh, dist.High),
	)
}

func (d DashboardPanel) renderTimeline(records []model.PredictionRecord) string {
	title := d.theme.Title.Render("Timeline")
	points := analytics.Timeline(records, analytics.DefaultTimelineWindow)
	if len(points) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, title, d.theme.StatusPending.Render("No predictions yet"))
	}

	lines := []string{title}
	for _, pt := range points {
		lines = append(lines, fmt.Sprintf("%2d %s %s %5.1f%%  conf %d",
			pt.Index,
			pt.Timestamp.Local().Format("15:04:05"),
			d.theme.Risk(pt.RiskClass == model.RiskHigh).Render(bar(pt.Probability/100, 16)),
			pt.Probability,
			pt.Confidence))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (d DashboardPanel) renderRecent(records []model.PredictionRecord) string {
	title := d.theme.Title.Render("Recent Activity")
	recent := analytics.Recent(records, analytics.DefaultRecentCount)
	if len(recent) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, title, d.theme.StatusPending.Render("No predictions yet"))
	}

	lines := []string{title}
	for _, r := range recent {
		lines = append(lines, fmt.Sprintf("%s  %s  %.1f%%",
			r.Timestamp.Local().Format("2006-01-02 15:04"),
			d.theme.Risk(r.IsHighRisk()).Width(10).Render(r.Prediction.RiskClass.String()),
			r.ProbabilityPercent()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func bar(share float64, width int) string {
	share = max(0, min(1, share))
	filled := int(share * float64(width))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
