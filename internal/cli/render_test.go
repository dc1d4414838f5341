package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/credit-risk-console/internal/model"
	"github.com/stretchr/testify/assert"
)

func sampleRecord(class model.RiskClass, p float64) model.PredictionRecord {
	return model.PredictionRecord{
		Status:    model.StatusSuccess,
		Timestamp: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
		Prediction: model.Prediction{
			RiskClass:        class,
			ProbabilityScore: p,
			ConfidenceLevel:  "High",
		},
		ModelInfo:        model.ModelInfo{ModelName: "xgb", ModelVersion: "1.0", FeaturesUsed: 13},
		ProcessingTimeMS: 42,
	}
}

func TestGauge(t *testing.T) {
	tests := []struct {
		name    string
		percent float64
		filled  int
	}{
		{name: "empty", percent: 0, filled: 0},
		{name: "half", percent: 50, filled: 5},
		{name: "full", percent: 100, filled: 10},
		{name: "clamped above", percent: 140, filled: 10},
		{name: "clamped below", percent: -3, filled: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Gauge(tt.percent, 10)
			assert.Equal(t, tt.filled, strings.Count(g, "█"))
			assert.Equal(t, 10-tt.filled, strings.Count(g, "░"))
		})
	}
}

func TestRenderPrediction(t *testing.T) {
	tests := []struct {
		name     string
		expected []string
		record   model.PredictionRecord
	}{
		{
			name:     "very low risk",
			record:   sampleRecord(model.RiskLow, 0.12),
			expected: []string{"Low Risk", "12.0%", "Very Low", "Approve with standard terms", "xgb 1.0", "42 ms"},
		},
		{
			name:     "very high risk",
			record:   sampleRecord(model.RiskHigh, 0.91),
			expected: []string{"High Risk", "91.0%", "Very High Risk", "Request additional collateral"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := RenderPrediction(tt.record)
			for _, want := range tt.expected {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestRenderHistory(t *testing.T) {
	assert.Contains(t, RenderHistory(nil), "No predictions yet.")

	out := RenderHistory([]model.PredictionRecord{
		sampleRecord(model.RiskHigh, 0.8),
		sampleRecord(model.RiskLow, 0.1),
	})
	assert.Contains(t, out, "Probability")
	assert.Contains(t, out, "80.0%")
	assert.Contains(t, out, "10.0%")
	assert.Less(t, strings.Index(out, "80.0%"), strings.Index(out, "10.0%"))
}

func TestRenderStats(t *testing.T) {
	empty := RenderStats(nil)
	assert.Contains(t, empty, "Total predictions:   0")
	assert.Contains(t, empty, "Average probability: 0.0%")
	assert.NotContains(t, empty, "Timeline")

	out := RenderStats([]model.PredictionRecord{
		sampleRecord(model.RiskHigh, 0.8),
		sampleRecord(model.RiskLow, 0.2),
	})
	assert.Contains(t, out, "Total predictions:   2")
	assert.Contains(t, out, "High risk:           1")
	assert.Contains(t, out, "Average probability: 50.0%")
	assert.Contains(t, out, "Timeline (oldest first)")
	assert.Contains(t, out, "conf 90")
}

func TestRenderHealth(t *testing.T) {
	ready := RenderHealth("http://x/api/v1", model.HealthStatus{Status: "healthy", PipelineLoaded: true})
	assert.Contains(t, ready, "http://x/api/v1")
	assert.Contains(t, ready, "reachable")
	assert.NotContains(t, ready, "model not loaded")

	notReady := RenderHealth("http://x/api/v1", model.HealthStatus{Status: "degraded"})
	assert.Contains(t, notReady, "model not loaded")
}
