package analytics

import (
	"testing"
	"time"

	"github.com/Veraticus/credit-risk-console/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// newestFirst builds records from probabilities listed oldest to newest and
// returns them in history order.
func newestFirst(probs ...float64) []model.PredictionRecord {
	out := make([]model.PredictionRecord, len(probs))
	for i, p := range probs {
		class := model.RiskLow
		conf := model.ConfidenceLevel("Faible")
		if p >= 0.5 {
			class = model.RiskHigh
			conf = "Élevé"
		}
		out[len(probs)-1-i] = model.PredictionRecord{
			Status:           model.StatusSuccess,
			Timestamp:        baseTime.Add(time.Duration(i) * time.Minute),
			ProcessingTimeMS: float64(10 * (i + 1)),
			Prediction: model.Prediction{
				RiskClass:        class,
				ProbabilityScore: p,
				ConfidenceLevel:  conf,
			},
		}
	}
	return out
}

func TestRiskDistribution(t *testing.T) {
	tests := []struct {
		name     string
		records  []model.PredictionRecord
		wantLow  int
		wantHigh int
	}{
		{name: "empty", records: nil},
		{name: "all low", records: newestFirst(0.1, 0.2), wantLow: 2},
		{name: "mixed", records: newestFirst(0.1, 0.9, 0.7, 0.3), wantLow: 2, wantHigh: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := RiskDistribution(tt.records)
			assert.Equal(t, tt.wantLow, d.Low)
			assert.Equal(t, tt.wantHigh, d.High)
			assert.Equal(t, len(tt.records), d.Total())
		})
	}
}

func TestRiskDistribution_UnknownClassStillCounted(t *testing.T) {
	recs := newestFirst(0.1, 0.9)
	recs[0].Prediction.RiskClass = 3

	d := RiskDistribution(recs)
	assert.Equal(t, len(recs), d.Total())
}

func TestDistribution_Share(t *testing.T) {
	assert.Zero(t, Distribution{}.Share(model.RiskHigh))

	d := Distribution{Low: 3, High: 1}
	assert.InDelta(t, 0.25, d.Share(model.RiskHigh), 0.0001)
	assert.InDelta(t, 0.75, d.Share(model.RiskLow), 0.0001)
}

func TestTimeline_ChronologicalWindow(t *testing.T) {
	recs := newestFirst(0.1, 0.2, 0.3, 0.4, 0.9)

	points := Timeline(recs, 3)
	require.Len(t, points, 3)

	assert.InDelta(t, 30.0, points[0].Probability, 0.0001)
	assert.InDelta(t, 40.0, points[1].Probability, 0.0001)
	assert.InDelta(t, 90.0, points[2].Probability, 0.0001)
	assert.True(t, points[0].Timestamp.Before(points[2].Timestamp))
	assert.Equal(t, []int{1, 2, 3}, []int{points[0].Index, points[1].Index, points[2].Index})
	assert.Equal(t, 90, points[2].Confidence)
	assert.Equal(t, 50, points[0].Confidence)
	assert.Equal(t, model.RiskHigh, points[2].RiskClass)
}

func TestTimeline_DefaultWindow(t *testing.T) {
	probs := make([]float64, 12)
	for i := range probs {
		probs[i] = float64(i) / 20
	}

	points := Timeline(newestFirst(probs...), 0)
	assert.Len(t, points, DefaultTimelineWindow)
	assert.Empty(t, Timeline(nil, 10))
}

func TestSummaryStats(t *testing.T) {
	t.Run("empty history", func(t *testing.T) {
		var s Summary
		require.NotPanics(t, func() { s = SummaryStats(nil) })
		assert.Equal(t, Summary{}, s)
		assert.Zero(t, s.LowRisk())
	})

	t.Run("mixed history", func(t *testing.T) {
		s := SummaryStats(newestFirst(0.2, 0.6, 0.7))
		assert.Equal(t, 3, s.Total)
		assert.Equal(t, 2, s.HighRisk)
		assert.Equal(t, 1, s.LowRisk())
		assert.InDelta(t, 50.0, s.AverageProbability, 0.0001)
		assert.InDelta(t, 20.0, s.AverageProcessingMS, 0.0001)
	})
}

func TestAggregations_DoNotMutateInput(t *testing.T) {
	recs := newestFirst(0.1, 0.5, 0.9)
	snapshot := make([]model.PredictionRecord, len(recs))
	copy(snapshot, recs)

	first := SummaryStats(recs)
	_ = RiskDistribution(recs)
	_ = Timeline(recs, 2)
	_ = Recent(recs, 2)

	assert.Equal(t, snapshot, recs)
	assert.Equal(t, first, SummaryStats(recs))
}

func TestRecent(t *testing.T) {
	recs := newestFirst(0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7)

	got := Recent(recs, 0)
	require.Len(t, got, DefaultRecentCount)
	assert.InDelta(t, 0.7, got[0].Prediction.ProbabilityScore, 0.0001)

	assert.Len(t, Recent(recs[:2], 5), 2)
}
