// Package stubapi is a local stand-in for the scoring service. It speaks
// the same HTTP/JSON contract and scores profiles with a fixed logistic
// heuristic, which makes the console usable offline and gives the client
// something real to talk to in tests.
package stubapi

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/Veraticus/credit-risk-console/internal/model"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Model identity reported by the stub.
const (
	ModelName    = "stub-logistic"
	ModelVersion = "1.0.0"
)

// Server serves the scoring API.
type Server struct {
	now func() time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithClock overrides the clock used for response timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

// New creates a stub server.
func New(opts ...Option) *Server {
	s := &Server{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Routes returns a chi.Router with the API mounted under /api/v1.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Post("/predict", s.handlePredict)
		r.Get("/model/info", s.handleModelInfo)
		r.Get("/features", s.handleFeatures)
		r.Get("/example", s.handleExample)
	})
	return r
}

type errorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, model.HealthStatus{
		Status:             "healthy",
		Timestamp:          s.now().UTC().Format(time.RFC3339),
		ModelLoaded:        true,
		PreprocessorLoaded: true,
		PipelineLoaded:     true,
	})
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var profile model.ClientProfile
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&profile); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Status: "error", Message: "invalid JSON body"})
		return
	}

	// Out-of-range input is a rejection, not a transport failure.
	if err := profile.Validate(); err != nil {
		writeJSON(w, http.StatusOK, errorResponse{Status: "error", Message: err.Error()})
		return
	}

	pred := Score(profile)
	rec := model.PredictionRecord{
		Status:     model.StatusSuccess,
		Prediction: pred,
		ModelInfo: model.ModelInfo{
			ModelName:    ModelName,
			ModelVersion: ModelVersion,
			FeaturesUsed: len(featureCatalog),
		},
		Timestamp:        s.now().UTC(),
		ProcessingTimeMS: float64(time.Since(start).Microseconds()) / 1000,
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleModelInfo(w http.ResponseWriter, _ *http.Request) {
	names := make([]string, len(featureCatalog))
	for i, f := range featureCatalog {
		names[i] = f.Name
	}
	writeJSON(w, http.StatusOK, model.ModelDetails{
		ModelName:    ModelName,
		ModelVersion: ModelVersion,
		Algorithm:    "Logistic heuristic",
		FeaturesUsed: len(featureCatalog),
		Features:     names,
	})
}

func (s *Server) handleFeatures(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Features []model.Feature `json:"features"`
	}{Features: featureCatalog})
}

func (s *Server) handleExample(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Example model.ClientProfile `json:"example"`
	}{Example: model.DefaultProfile()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("failed to encode response", "error", err)
	}
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		slog.Debug("stub request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}
