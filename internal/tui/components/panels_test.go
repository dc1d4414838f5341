package components

import (
	"testing"
	"time"

	"github.com/Veraticus/credit-risk-console/internal/app"
	"github.com/Veraticus/credit-risk-console/internal/model"
	"github.com/Veraticus/credit-risk-console/internal/tui/themes"
	"github.com/Veraticus/credit-risk-console/internal/tui/tuitest"
	"github.com/stretchr/testify/assert"
)

func record(class model.RiskClass, score float64, at time.Time) model.PredictionRecord {
	label := "Low Risk"
	if class == model.RiskHigh {
		label = "High Risk"
	}
	return model.PredictionRecord{
		ID:        at.Format(time.RFC3339),
		Status:    model.StatusSuccess,
		Timestamp: at,
		Prediction: model.Prediction{
			RiskClass:        class,
			RiskLabel:        label,
			ProbabilityScore: score,
			ConfidenceLevel:  "High",
		},
		ModelInfo:        model.ModelInfo{ModelName: "xgb", ModelVersion: "2.1", FeaturesUsed: 13},
		ProcessingTimeMS: 40,
	}
}

func TestResultPanel_View(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		rec  *model.PredictionRecord
		name string
		want []string
	}{
		{
			name: "no result",
			want: []string{"Risk Assessment", "Submit a profile"},
		},
		{
			name: "very high risk",
			rec:  ptr(record(model.RiskHigh, 0.87, now)),
			want: []string{"High Risk", "87.0%", "(Very High)", "Confidence High", "xgb 2.1", "40 ms", "Very High Risk", "Request additional collateral"},
		},
		{
			name: "low risk",
			rec:  ptr(record(model.RiskLow, 0.35, now)),
			want: []string{"Low Risk", "35.0%", "(Low)", "Approve with standard terms"},
		},
	}

	panel := NewResultPanel(themes.Default)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := tuitest.StripANSI(panel.View(tt.rec))
			assert.True(t, tuitest.ContainsInOrder(view, tt.want...), view)
		})
	}
}

func TestResultPanel_Resize(t *testing.T) {
	panel := NewResultPanel(themes.Default)

	panel.Resize(4)
	assert.Equal(t, 10, panel.gauge.Width)

	panel.Resize(200)
	assert.Equal(t, defaultGaugeWidth, panel.gauge.Width)
}

func TestDashboardPanel_Empty(t *testing.T) {
	d := NewDashboardPanel(themes.Default)
	view := tuitest.StripANSI(d.View(DashboardData{Reachability: app.ReachabilityUnknown}))

	assert.Contains(t, view, "checking")
	assert.Contains(t, view, "Model details unavailable")
	assert.Contains(t, view, "Total predictions")
	assert.Contains(t, view, "0.0%")
	assert.Contains(t, view, "No predictions yet")
}

func TestDashboardPanel_WithHistory(t *testing.T) {
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	history := []model.PredictionRecord{
		record(model.RiskHigh, 0.9, base.Add(2*time.Minute)),
		record(model.RiskLow, 0.2, base.Add(time.Minute)),
		record(model.RiskLow, 0.1, base),
	}

	d := NewDashboardPanel(themes.Default)
	d.Resize(80)
	view := tuitest.StripANSI(d.View(DashboardData{
		Reachability: app.Reachable,
		Details: &model.ModelDetails{
			ModelName:    "xgb",
			ModelVersion: "2.1",
			Algorithm:    "XGBoost",
			FeaturesUsed: 13,
			Metrics:      map[string]float64{"roc_auc": 0.91, "accuracy": 0.88},
		},
		History: history,
	}))

	assert.Contains(t, view, "online")
	assert.Contains(t, view, "xgb 2.1")
	assert.Contains(t, view, "XGBoost")
	assert.True(t, tuitest.ContainsInOrder(view, "accuracy", "roc_auc"), "metrics are sorted by name")
	assert.Contains(t, view, "40.0%", "average probability")
	assert.Contains(t, view, "2 (67%)")
	assert.Contains(t, view, "1 (33%)")
	assert.True(t, tuitest.ContainsInOrder(view, "Timeline", " 1 ", " 2 ", " 3 "))
	assert.Contains(t, view, "conf 90")
	assert.Contains(t, view, "Recent Activity")
}

func TestDashboardPanel_Offline(t *testing.T) {
	d := NewDashboardPanel(themes.Default)
	view := tuitest.StripANSI(d.View(DashboardData{Reachability: app.Unreachable}))
	assert.Contains(t, view, "offline")
}

func TestBar(t *testing.T) {
	assert.Equal(t, "█████░░░░░", bar(0.5, 10))
	assert.Equal(t, "░░░░░░░░░░", bar(-1, 10))
	assert.Equal(t, "██████████", bar(2, 10))
}

func ptr[T any](v T) *T {
	return &v
}
