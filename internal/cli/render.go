package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/credit-risk-console/internal/analytics"
	"github.com/Veraticus/credit-risk-console/internal/model"
	"github.com/charmbracelet/lipgloss"
)

const gaugeWidth = 30

// Gauge draws a text bar for a 0-100 percentage.
func Gauge(percent float64, width int) string {
	if width <= 0 {
		width = gaugeWidth
	}
	percent = max(0, min(100, percent))
	filled := int(percent / 100 * float64(width))
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}

// RenderPrediction renders one prediction as a boxed report with advice.
func RenderPrediction(rec model.PredictionRecord) string {
	p := rec.Prediction
	percent := rec.ProbabilityPercent()
	advice := analytics.AdviceFor(p)

	label := p.RiskLabel
	if label == "" {
		label = p.RiskClass.String()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n\n", BoldStyle.Render("Result:"), RiskStyle(p.RiskClass).Render(label))
	fmt.Fprintf(&b, "%s %s %.1f%% (%s)\n",
		BoldStyle.Render("Default probability:"),
		RiskStyle(p.RiskClass).Render(Gauge(percent, gaugeWidth)),
		percent,
		analytics.RiskBand(percent))
	fmt.Fprintf(&b, "%s %s\n", BoldStyle.Render("Confidence:"), p.ConfidenceLevel)
	if rec.ModelInfo.ModelName != "" {
		fmt.Fprintf(&b, "%s %s %s (%d features)\n", BoldStyle.Render("Model:"),
			rec.ModelInfo.ModelName, rec.ModelInfo.ModelVersion, rec.ModelInfo.FeaturesUsed)
	}
	fmt.Fprintf(&b, "%s %.0f ms\n\n", BoldStyle.Render("Processing:"), rec.ProcessingTimeMS)

	fmt.Fprintf(&b, "%s\n%s\n", BoldStyle.Render(advice.Title), SubtleStyle.Render(advice.Description))
	for _, action := range advice.Actions {
		fmt.Fprintf(&b, "  • %s\n", action)
	}

	return RenderBox("Prediction Result", strings.TrimRight(b.String(), "\n"))
}

// RenderHistory renders the history as a table, newest first.
func RenderHistory(records []model.PredictionRecord) string {
	if len(records) == 0 {
		return SubtleStyle.Render("No predictions yet.")
	}

	header := lipgloss.JoinHorizontal(lipgloss.Top,
		TableCellStyle.Width(4).Render("#"),
		TableCellStyle.Width(22).Render("Time"),
		TableCellStyle.Width(12).Render("Risk"),
		TableCellStyle.Width(13).Render("Probability"),
		TableCellStyle.Width(12).Render("Confidence"),
		TableCellStyle.Render("Model"),
	)

	rows := []string{TableHeaderStyle.Render(header)}
	for i, r := range records {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top,
			TableCellStyle.Width(4).Render(fmt.Sprintf("%d", i+1)),
			TableCellStyle.Width(22).Render(r.Timestamp.Local().Format("2006-01-02 15:04:05")),
			TableCellStyle.Width(12).Inherit(RiskStyle(r.Prediction.RiskClass)).Render(r.Prediction.RiskClass.String()),
			TableCellStyle.Width(13).Render(fmt.Sprintf("%.1f%%", r.ProbabilityPercent())),
			TableCellStyle.Width(12).Render(string(r.Prediction.ConfidenceLevel)),
			TableCellStyle.Render(strings.TrimSpace(r.ModelInfo.ModelName+" "+r.ModelInfo.ModelVersion)),
		))
	}
	return strings.Join(rows, "\n")
}

// RenderStats renders the dashboard aggregates for the terminal.
func RenderStats(records []model.PredictionRecord) string {
	stats := analytics.SummaryStats(records)
	dist := analytics.RiskDistribution(records)

	var b strings.Builder
	fmt.Fprintf(&b, "Total predictions:   %d\n", stats.Total)
	fmt.Fprintf(&b, "High risk:           %d\n", stats.HighRisk)
	fmt.Fprintf(&b, "Low risk:            %d\n", stats.LowRisk())
	fmt.Fprintf(&b, "Average probability: %.1f%%\n", stats.AverageProbability)
	fmt.Fprintf(&b, "Average processing:  %.0f ms\n", stats.AverageProcessingMS)

	if dist.Total() > 0 {
		b.WriteString("\n")
		fmt.Fprintf(&b, "Low  %s %3.0f%%\n", LowRiskStyle.Render(Gauge(dist.Share(model.RiskLow)*100, 20)), dist.Share(model.RiskLow)*100)
		fmt.Fprintf(&b, "High %s %3.0f%%\n", HighRiskStyle.Render(Gauge(dist.Share(model.RiskHigh)*100, 20)), dist.Share(model.RiskHigh)*100)
	}

	points := analytics.Timeline(records, analytics.DefaultTimelineWindow)
	if len(points) > 0 {
		b.WriteString("\nTimeline (oldest first)\n")
		for _, pt := range points {
			fmt.Fprintf(&b, "%2d  %s  %5.1f%%  conf %d  %s\n",
				pt.Index,
				pt.Timestamp.Local().Format(time.Kitchen),
				pt.Probability,
				pt.Confidence,
				RiskStyle(pt.RiskClass).Render(pt.RiskClass.String()))
		}
	}

	return RenderBox(ChartIcon+" Dashboard", strings.TrimRight(b.String(), "\n"))
}

// RenderHealth renders a health check result.
func RenderHealth(baseURL string, h model.HealthStatus) string {
	status := FormatSuccess("reachable")
	if !h.Ready() {
		status = FormatWarning("reachable, model not loaded")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Endpoint:     %s\n", baseURL)
	fmt.Fprintf(&b, "Status:       %s (%s)\n", status, h.Status)
	fmt.Fprintf(&b, "Model:        %t\n", h.ModelLoaded)
	fmt.Fprintf(&b, "Preprocessor: %t\n", h.PreprocessorLoaded)
	fmt.Fprintf(&b, "Pipeline:     %t", h.PipelineLoaded)
	return RenderBox("Scoring Service", b.String())
}
