package model

// HealthStatus is the body of the scoring service health endpoint.
type HealthStatus struct {
	Status             string `json:"status"`
	Timestamp          string `json:"timestamp"`
	ModelLoaded        bool   `json:"model_loaded"`
	PreprocessorLoaded bool   `json:"preprocessor_loaded"`
	PipelineLoaded     bool   `json:"pipeline_loaded"`
}

// Ready reports whether the service says it can score requests.
func (h HealthStatus) Ready() bool {
	return h.PipelineLoaded || h.ModelLoaded
}

// ModelDetails describes the deployed model (GET /model/info).
type ModelDetails struct {
	Metrics      map[string]float64 `json:"metrics,omitempty"`
	ModelName    string             `json:"model_name"`
	ModelVersion string             `json:"model_version"`
	Algorithm    string             `json:"algorithm,omitempty"`
	TrainedAt    string             `json:"trained_at,omitempty"`
	Features     []string           `json:"features,omitempty"`
	FeaturesUsed int                `json:"features_used"`
}

// Feature describes one input accepted by the model (GET /features).
type Feature struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Description string   `json:"description,omitempty"`
	Values      []string `json:"values,omitempty"`
	Min         *float64 `json:"min,omitempty"`
	Max         *float64 `json:"max,omitempty"`
}
