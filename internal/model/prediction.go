// Package model defines the core domain models used throughout the application.
package model

import (
	"encoding/json"
	"strings"
	"time"
)

// RiskClass is the binary classification returned by the scoring model.
type RiskClass int

// Risk classes.
const (
	RiskLow  RiskClass = 0
	RiskHigh RiskClass = 1
)

// String returns a display name for the class.
func (r RiskClass) String() string {
	if r == RiskHigh {
		return "High Risk"
	}
	return "Low Risk"
}

// ConfidenceLevel is the ordinal confidence category reported by the service.
// The service currently speaks French ("Élevé", "Moyen", "Faible"); English
// spellings are accepted too.
type ConfidenceLevel string

// Confidence weights used for display.
const (
	ConfidenceWeightHigh   = 90
	ConfidenceWeightMedium = 70
	ConfidenceWeightLow    = 50
)

// Weight maps the confidence category onto a fixed display scale.
func (c ConfidenceLevel) Weight() int {
	switch strings.ToLower(strings.TrimSpace(string(c))) {
	case "élevé", "eleve", "high":
		return ConfidenceWeightHigh
	case "moyen", "medium":
		return ConfidenceWeightMedium
	default:
		return ConfidenceWeightLow
	}
}

// StatusSuccess is the status value the scoring service uses for accepted requests.
const StatusSuccess = "success"

// Prediction is the scoring outcome for one profile.
type Prediction struct {
	RiskLabel        string          `json:"risk_label"`
	ConfidenceLevel  ConfidenceLevel `json:"confidence_level"`
	ProbabilityScore float64         `json:"probability_score"`
	RiskClass        RiskClass       `json:"risk_class"`
}

// ModelInfo identifies the model that produced a prediction.
type ModelInfo struct {
	ModelName    string `json:"model_name"`
	ModelVersion string `json:"model_version"`
	FeaturesUsed int    `json:"features_used"`
}

// PredictionRecord is the result of one successful scoring call. Records are
// values: nothing mutates them after the coordinator accepts them.
type PredictionRecord struct {
	Timestamp        time.Time  `json:"timestamp"`
	ModelInfo        ModelInfo  `json:"model_info"`
	ID               string     `json:"id,omitempty"`
	Status           string     `json:"status"`
	Prediction       Prediction `json:"prediction"`
	ProcessingTimeMS float64    `json:"processing_time_ms"`
}

// timestampLayouts are tried in order. Layouts without a zone are read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// ParseTimestamp reads a service timestamp. It accepts RFC 3339 and the
// zoneless ISO forms Python's isoformat produces.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// UnmarshalJSON decodes a record leniently: a timestamp that is missing,
// not a string or not parseable leaves Timestamp zero instead of failing.
func (r *PredictionRecord) UnmarshalJSON(data []byte) error {
	type plain PredictionRecord
	aux := struct {
		*plain
		Timestamp json.RawMessage `json:"timestamp"`
	}{plain: (*plain)(r)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	r.Timestamp = time.Time{}
	var raw string
	if err := json.Unmarshal(aux.Timestamp, &raw); err == nil {
		if t, ok := ParseTimestamp(raw); ok {
			r.Timestamp = t
		}
	}
	return nil
}

// IsHighRisk reports whether the record was classified as high risk.
func (r PredictionRecord) IsHighRisk() bool {
	return r.Prediction.RiskClass == RiskHigh
}

// ProbabilityPercent returns the probability score on a 0-100 scale.
func (r PredictionRecord) ProbabilityPercent() float64 {
	return r.Prediction.ProbabilityScore * 100
}

// Valid reports whether a decoded record has the shape the application expects.
func (r PredictionRecord) Valid() bool {
	if r.Status != StatusSuccess {
		return false
	}
	if r.Prediction.RiskClass != RiskLow && r.Prediction.RiskClass != RiskHigh {
		return false
	}
	p := r.Prediction.ProbabilityScore
	return p >= 0 && p <= 1 && !r.Timestamp.IsZero()
}
