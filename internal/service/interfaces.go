// Package service defines the interfaces shared between the coordinator,
// the command layer and the adapters.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/credit-risk-console/internal/analytics"
	"github.com/Veraticus/credit-risk-console/internal/model"
)

// HistoryStore persists the prediction history under a single fixed key.
type HistoryStore interface {
	// LoadHistory returns the stored records newest first. Any failure,
	// including corrupt or foreign data, yields an empty slice.
	LoadHistory(ctx context.Context) []model.PredictionRecord
	// SaveHistory replaces the stored history wholesale.
	SaveHistory(ctx context.Context, records []model.PredictionRecord) error
	Close() error
}

// ReportWriter exports the prediction history to an external destination.
type ReportWriter interface {
	Write(ctx context.Context, records []model.PredictionRecord, summary *ReportSummary) error
}

// ReportSummary contains aggregate information for the report.
type ReportSummary struct {
	GeneratedAt  time.Time
	Stats        analytics.Summary
	Distribution analytics.Distribution
	ModelName    string
	ModelVersion string
}

// NewReportSummary aggregates records into a report summary.
func NewReportSummary(records []model.PredictionRecord, now time.Time) *ReportSummary {
	s := &ReportSummary{
		GeneratedAt:  now,
		Stats:        analytics.SummaryStats(records),
		Distribution: analytics.RiskDistribution(records),
	}
	if len(records) > 0 {
		s.ModelName = records[0].ModelInfo.ModelName
		s.ModelVersion = records[0].ModelInfo.ModelVersion
	}
	return s
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
