package components

import (
	"fmt"
	"strings"

	"github.com/Veraticus/credit-risk-console/internal/analytics"
	"github.com/Veraticus/credit-risk-console/internal/model"
	"github.com/Veraticus/credit-risk-console/internal/tui/themes"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

const defaultGaugeWidth = 30

// ResultPanel renders the most recent prediction next to the form.
type ResultPanel struct {
	theme themes.Theme
	gauge progress.Model
}

// NewResultPanel creates a result panel.
func NewResultPanel(theme themes.Theme) ResultPanel {
	gauge := progress.New(
		progress.WithGradient(string(theme.Success), string(theme.Error)),
		progress.WithWidth(defaultGaugeWidth),
	)
	gauge.ShowPercentage = false

	return ResultPanel{theme: theme, gauge: gauge}
}

// Resize fits the gauge into width columns.
func (r *ResultPanel) Resize(width int) {
	r.gauge.Width = max(10, min(defaultGaugeWidth, width-8))
}

// View renders rec, or a placeholder when there is no result.
func (r ResultPanel) View(rec *model.PredictionRecord) string {
	title := r.theme.Title.Render("Risk Assessment")
	if rec == nil {
		return lipgloss.JoinVertical(lipgloss.Left,
			title,
			r.theme.StatusPending.Render("Submit a profile to see its risk assessment."),
		)
	}

	p := rec.Prediction
	percent := rec.ProbabilityPercent()
	style := r.theme.Risk(rec.IsHighRisk())

	label := p.RiskLabel
	if label == "" {
		label = p.RiskClass.String()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", style.Render(label))
	fmt.Fprintf(&b, "%s\n", r.gauge.ViewAs(p.ProbabilityScore))
	fmt.Fprintf(&b, "%s %.1f%%  %s\n",
		r.theme.Bold.Render("Default probability"),
		percent,
		r.theme.Subtitle.Render("("+analytics.RiskBand(percent).String()+")"))
	fmt.Fprintf(&b, "%s %s\n", r.theme.Bold.Render("Confidence"), p.ConfidenceLevel)
	if rec.ModelInfo.ModelName != "" {
		fmt.Fprintf(&b, "%s %s %s\n", r.theme.Bold.Render("Model"), rec.ModelInfo.ModelName, rec.ModelInfo.ModelVersion)
	}
	fmt.Fprintf(&b, "%s %.0f ms\n\n", r.theme.Bold.Render("Processing"), rec.ProcessingTimeMS)

	advice := analytics.AdviceFor(p)
	fmt.Fprintf(&b, "%s\n%s\n", style.Render(advice.Title), r.theme.Subtitle.Render(advice.Description))
	for _, action := range advice.Actions {
		fmt.Fprintf(&b, "• %s\n", action)
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, strings.TrimRight(b.String(), "\n"))
}
