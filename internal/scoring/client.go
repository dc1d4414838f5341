// Package scoring talks to the remote credit risk scoring service.
package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Veraticus/credit-risk-console/internal/model"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// DefaultTimeout bounds every request when no other timeout is configured.
const DefaultTimeout = 15 * time.Second

// maxErrorBody caps how much of a failed response is kept for the error text.
const maxErrorBody = 512

// Client is an HTTP client for the scoring service. It never retries.
type Client struct {
	httpClient *http.Client
	now        func() time.Time
	baseURL    string
	oauth      *clientcredentials.Config
	timeout    time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithClientCredentials authenticates every request with an OAuth2
// client-credentials token obtained from tokenURL.
func WithClientCredentials(clientID, clientSecret, tokenURL string) Option {
	return func(c *Client) {
		c.oauth = &clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TokenURL:     tokenURL,
		}
	}
}

// WithClock overrides the clock used to stamp records that arrive without a timestamp.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// New creates a client for the service rooted at baseURL
// (for example http://127.0.0.1:5000/api/v1).
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: DefaultTimeout,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		c.httpClient = &http.Client{}
	}
	if c.oauth != nil {
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, c.httpClient)
		c.httpClient = c.oauth.Client(ctx)
	}
	if c.timeout > 0 {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c
}

// BaseURL returns the service root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// predictResponse is the union of the success and failure bodies of /predict.
type predictResponse struct {
	model.PredictionRecord
	Message string `json:"message"`
	Error   string `json:"error"`
}

// UnmarshalJSON decodes both halves; the embedded record's own decoder
// would otherwise swallow the message fields.
func (p *predictResponse) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, &p.PredictionRecord); err != nil {
		return err
	}
	var failure struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &failure); err != nil {
		return err
	}
	p.Message, p.Error = failure.Message, failure.Error
	return nil
}

// Predict submits a profile for scoring. Failures never surface as errors;
// they come back as Rejected or TransportFailure.
func (c *Client) Predict(ctx context.Context, profile model.ClientProfile) Outcome {
	const op = "predict"
	start := time.Now()

	body, err := json.Marshal(profile)
	if err != nil {
		return c.transportFailure(op, start, &TransportError{Op: op, Err: err})
	}

	var resp predictResponse
	if err := c.do(ctx, http.MethodPost, "/predict", body, &resp, op); err != nil {
		return c.transportFailure(op, start, err)
	}

	if resp.Status != model.StatusSuccess {
		msg := resp.Message
		if msg == "" {
			msg = resp.Error
		}
		c.observe(op, resultRejected, start)
		slog.Debug("scoring service rejected profile", "status", resp.Status, "message", msg)
		return Rejected{Message: msg}
	}

	rec := resp.PredictionRecord
	if rec.Timestamp.IsZero() {
		rec.Timestamp = c.now()
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if !rec.Valid() {
		return c.transportFailure(op, start, &TransportError{
			Op:  op,
			Err: fmt.Errorf("%w: prediction fields out of range", ErrMalformedResponse),
		})
	}

	c.observe(op, resultSuccess, start)
	serverProcessing.Observe(rec.ProcessingTimeMS)
	slog.Debug("prediction received",
		"risk_class", int(rec.Prediction.RiskClass),
		"probability", rec.Prediction.ProbabilityScore,
		"processing_ms", rec.ProcessingTimeMS)

	return Success{Record: rec}
}

// CheckHealth queries the health endpoint.
func (c *Client) CheckHealth(ctx context.Context) (model.HealthStatus, error) {
	var h model.HealthStatus
	err := c.get(ctx, "/health", "health", &h)
	return h, err
}

// ModelInfo fetches details about the deployed model.
func (c *Client) ModelInfo(ctx context.Context) (model.ModelDetails, error) {
	var d model.ModelDetails
	err := c.get(ctx, "/model/info", "model_info", &d)
	return d, err
}

// Features lists the inputs the model accepts. Both a bare array and an
// object with a "features" field are understood.
func (c *Client) Features(ctx context.Context) ([]model.Feature, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "/features", "features", &raw); err != nil {
		return nil, err
	}

	var list []model.Feature
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}

	var wrapped struct {
		Features []model.Feature `json:"features"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, &TransportError{Op: "features", Err: fmt.Errorf("%w: %v", ErrMalformedResponse, err)}
	}
	return wrapped.Features, nil
}

// Example fetches a sample profile. Both a bare profile and an object with
// an "example" field are understood.
func (c *Client) Example(ctx context.Context) (model.ClientProfile, error) {
	var wrapped struct {
		Example *model.ClientProfile `json:"example"`
		model.ClientProfile
	}
	if err := c.get(ctx, "/example", "example", &wrapped); err != nil {
		return model.ClientProfile{}, err
	}
	if wrapped.Example != nil {
		return *wrapped.Example, nil
	}
	return wrapped.ClientProfile, nil
}

func (c *Client) get(ctx context.Context, path, op string, out any) error {
	start := time.Now()
	if err := c.do(ctx, http.MethodGet, path, nil, out, op); err != nil {
		c.observe(op, resultTransport, start)
		return err
	}
	c.observe(op, resultSuccess, start)
	return nil
}

// do performs one request and decodes a 2xx JSON body into out. Every
// failure is returned as a *TransportError.
func (c *Client) do(ctx context.Context, method, path string, body []byte, out any, op string) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &TransportError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status: %s", strings.TrimSpace(string(snippet))),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &TransportError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%w: %v", ErrMalformedResponse, err),
		}
	}
	return nil
}

func (c *Client) transportFailure(op string, start time.Time, err error) Outcome {
	c.observe(op, resultTransport, start)

	var te *TransportError
	if !errors.As(err, &te) {
		err = &TransportError{Op: op, Err: err}
	}
	slog.Warn("scoring request failed", "op", op, "error", err)
	return TransportFailure{Cause: err}
}

func (c *Client) observe(endpoint, result string, start time.Time) {
	requestsTotal.WithLabelValues(endpoint, result).Inc()
	requestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}
