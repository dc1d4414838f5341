package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/Veraticus/credit-risk-console/internal/model"
	"github.com/Veraticus/credit-risk-console/internal/scoring"
	"github.com/schollz/progressbar/v3"
)

// Submitter scores one profile. The app coordinator satisfies it.
type Submitter interface {
	SubmitProfile(ctx context.Context, profile model.ClientProfile) (scoring.Outcome, error)
}

// BatchResult tallies a batch run.
type BatchResult struct {
	Records   []model.PredictionRecord
	Failures  []string
	Succeeded int
	Rejected  int
	Failed    int
}

// Total returns how many profiles were attempted.
func (r BatchResult) Total() int {
	return r.Succeeded + r.Rejected + r.Failed
}

// ScoreBatch submits profiles one at a time, drawing a progress bar on w.
// It stops early when ctx is canceled.
func ScoreBatch(ctx context.Context, s Submitter, profiles []model.ClientProfile, w io.Writer, onProgress func(done, total int)) (BatchResult, error) {
	var result BatchResult

	bar := progressbar.NewOptions(len(profiles),
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Scoring profiles...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(w); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)

	for i, profile := range profiles {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		outcome, err := s.SubmitProfile(ctx, profile)
		if err != nil {
			return result, fmt.Errorf("profile %d: %w", i+1, err)
		}

		switch o := outcome.(type) {
		case scoring.Success:
			result.Succeeded++
			result.Records = append(result.Records, o.Record)
		case scoring.Rejected:
			result.Rejected++
			result.Failures = append(result.Failures, fmt.Sprintf("profile %d rejected: %s", i+1, o.Message))
		case scoring.TransportFailure:
			result.Failed++
			result.Failures = append(result.Failures, fmt.Sprintf("profile %d failed: %v", i+1, o.Cause))
			if errors.Is(o.Cause, context.Canceled) {
				return result, o.Cause
			}
		}

		if err := bar.Add(1); err != nil {
			slog.Warn("Failed to update progress bar", "error", err)
		}
		if onProgress != nil {
			onProgress(i+1, len(profiles))
		}
	}

	return result, nil
}
