// Package analytics derives dashboard statistics from a snapshot of the
// prediction history. Every function is pure: inputs are never modified and
// the same input always yields the same output.
package analytics

import (
	"time"

	"github.com/Veraticus/credit-risk-console/internal/model"
)

// DefaultTimelineWindow is the number of records plotted on the timeline.
const DefaultTimelineWindow = 10

// DefaultRecentCount is the length of the recent-activity list.
const DefaultRecentCount = 5

// Distribution counts records per risk class.
type Distribution struct {
	Low  int
	High int
}

// Total returns the number of records counted.
func (d Distribution) Total() int {
	return d.Low + d.High
}

// Share returns the fraction of records in class c, 0 for an empty distribution.
func (d Distribution) Share(c model.RiskClass) float64 {
	total := d.Total()
	if total == 0 {
		return 0
	}
	if c == model.RiskHigh {
		return float64(d.High) / float64(total)
	}
	return float64(d.Low) / float64(total)
}

// TimelinePoint is one plotted record.
type TimelinePoint struct {
	Timestamp   time.Time
	Index       int
	Probability float64 // percent
	Confidence  int     // display weight
	RiskClass   model.RiskClass
}

// Summary aggregates the whole history.
type Summary struct {
	Total               int
	HighRisk            int
	AverageProbability  float64 // percent
	AverageProcessingMS float64
}

// LowRisk returns the number of records not classified high risk.
func (s Summary) LowRisk() int {
	return s.Total - s.HighRisk
}

// RiskDistribution counts records by risk class. Records with an unknown
// class count as low risk so the counts always sum to len(records).
func RiskDistribution(records []model.PredictionRecord) Distribution {
	var d Distribution
	for _, r := range records {
		if r.IsHighRisk() {
			d.High++
		} else {
			d.Low++
		}
	}
	return d
}

// Timeline returns the most recent window records in chronological order,
// oldest first. records is expected newest first, as the history log stores
// them. A window of zero or less uses DefaultTimelineWindow.
func Timeline(records []model.PredictionRecord, window int) []TimelinePoint {
	if window <= 0 {
		window = DefaultTimelineWindow
	}
	n := min(window, len(records))
	points := make([]TimelinePoint, 0, n)
	for i := n - 1; i >= 0; i-- {
		r := records[i]
		points = append(points, TimelinePoint{
			Index:       len(points) + 1,
			Timestamp:   r.Timestamp,
			Probability: r.ProbabilityPercent(),
			Confidence:  r.Prediction.ConfidenceLevel.Weight(),
			RiskClass:   r.Prediction.RiskClass,
		})
	}
	return points
}

// SummaryStats computes counts and averages. Averages are zero for an empty history.
func SummaryStats(records []model.PredictionRecord) Summary {
	s := Summary{Total: len(records)}
	if s.Total == 0 {
		return s
	}

	var probSum, latencySum float64
	for _, r := range records {
		if r.IsHighRisk() {
			s.HighRisk++
		}
		probSum += r.Prediction.ProbabilityScore
		latencySum += r.ProcessingTimeMS
	}

	s.AverageProbability = probSum / float64(s.Total) * 100
	s.AverageProcessingMS = latencySum / float64(s.Total)
	return s
}

// Recent returns up to n of the newest records. n of zero or less uses
// DefaultRecentCount.
func Recent(records []model.PredictionRecord, n int) []model.PredictionRecord {
	if n <= 0 {
		n = DefaultRecentCount
	}
	n = min(n, len(records))
	out := make([]model.PredictionRecord, n)
	copy(out, records[:n])
	return out
}
