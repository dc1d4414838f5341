package sheets

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Veraticus/credit-risk-console/internal/model"
	"github.com/Veraticus/credit-risk-console/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		errMsg  string
		config  Config
		wantErr bool
	}{
		{
			name: "valid oauth config",
			config: Config{
				ClientID:      "test-client",
				ClientSecret:  "test-secret",
				RefreshToken:  "test-token",
				BatchSize:     100,
				RetryAttempts: 3,
				RetryDelay:    time.Second,
			},
			wantErr: false,
		},
		{
			name: "valid service account config",
			config: Config{
				ServiceAccountPath: "/path/to/key.json",
				BatchSize:          100,
				RetryAttempts:      3,
				RetryDelay:         time.Second,
			},
			wantErr: false,
		},
		{
			name: "missing auth",
			config: Config{
				BatchSize:     100,
				RetryAttempts: 3,
				RetryDelay:    time.Second,
			},
			wantErr: true,
			errMsg:  "no authentication method configured",
		},
		{
			name: "multiple auth methods",
			config: Config{
				ClientID:           "test-client",
				ClientSecret:       "test-secret",
				RefreshToken:       "test-token",
				ServiceAccountPath: "/path/to/key.json",
				BatchSize:          100,
				RetryAttempts:      3,
				RetryDelay:         time.Second,
			},
			wantErr: true,
			errMsg:  "multiple authentication methods configured",
		},
		{
			name: "invalid batch size",
			config: Config{
				ClientID:      "test-client",
				ClientSecret:  "test-secret",
				RefreshToken:  "test-token",
				BatchSize:     0,
				RetryAttempts: 3,
				RetryDelay:    time.Second,
			},
			wantErr: true,
			errMsg:  "batch size must be positive",
		},
		{
			name: "negative retry attempts",
			config: Config{
				ClientID:      "test-client",
				ClientSecret:  "test-secret",
				RefreshToken:  "test-token",
				BatchSize:     100,
				RetryAttempts: -1,
				RetryDelay:    time.Second,
			},
			wantErr: true,
			errMsg:  "retry attempts cannot be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_LoadFromEnv(t *testing.T) {
	envKeys := []string{
		"GOOGLE_SHEETS_CLIENT_ID",
		"GOOGLE_SHEETS_CLIENT_SECRET",
		"GOOGLE_SHEETS_REFRESH_TOKEN",
		"GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH",
		"GOOGLE_SHEETS_SPREADSHEET_ID",
		"GOOGLE_SHEETS_SPREADSHEET_NAME",
	}

	tests := []struct {
		envVars map[string]string
		check   func(t *testing.T, c *Config)
		name    string
		wantErr bool
	}{
		{
			name: "oauth credentials",
			envVars: map[string]string{
				"GOOGLE_SHEETS_CLIENT_ID":        "test-client",
				"GOOGLE_SHEETS_CLIENT_SECRET":    "test-secret",
				"GOOGLE_SHEETS_REFRESH_TOKEN":    "test-token",
				"GOOGLE_SHEETS_SPREADSHEET_ID":   "test-id",
				"GOOGLE_SHEETS_SPREADSHEET_NAME": "Test Sheet",
			},
			check: func(t *testing.T, c *Config) {
				t.Helper()
				assert.Equal(t, "test-client", c.ClientID)
				assert.Equal(t, "test-id", c.SpreadsheetID)
				assert.Equal(t, "Test Sheet", c.SpreadsheetName)
			},
		},
		{
			name: "service account path",
			envVars: map[string]string{
				"GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH": "/path/to/key.json",
			},
			check: func(t *testing.T, c *Config) {
				t.Helper()
				assert.Equal(t, "/path/to/key.json", c.ServiceAccountPath)
				assert.Equal(t, DefaultSpreadsheetName, c.SpreadsheetName)
			},
		},
		{
			name:    "missing credentials",
			envVars: map[string]string{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range envKeys {
				t.Setenv(key, "")
			}
			for key, value := range tt.envVars {
				t.Setenv(key, value)
			}

			config := DefaultConfig()
			err := config.LoadFromEnv()

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, &config)
		})
	}
}

func testRecords(base time.Time) []model.PredictionRecord {
	return []model.PredictionRecord{
		{
			ID:        "older",
			Status:    model.StatusSuccess,
			Timestamp: base,
			Prediction: model.Prediction{
				RiskClass:        model.RiskLow,
				ProbabilityScore: 0.12,
				ConfidenceLevel:  "Élevé",
			},
			ModelInfo:        model.ModelInfo{ModelName: "xgb", ModelVersion: "1.0"},
			ProcessingTimeMS: 40,
		},
		{
			ID:        "newer",
			Status:    model.StatusSuccess,
			Timestamp: base.Add(time.Hour),
			Prediction: model.Prediction{
				RiskClass:        model.RiskHigh,
				ProbabilityScore: 0.8,
				ConfidenceLevel:  "Moyen",
			},
			ModelInfo:        model.ModelInfo{ModelName: "xgb", ModelVersion: "1.0"},
			ProcessingTimeMS: 60,
		},
	}
}

func TestPrepareReportData(t *testing.T) {
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	records := testRecords(base)
	summary := service.NewReportSummary(records, base.Add(2*time.Hour))

	values := prepareReportData(records, summary)

	assert.Equal(t, "Credit Risk Report", values[0][0])
	assert.Equal(t, []any{"Total Predictions", 2}, values[3])
	assert.Equal(t, []any{"High Risk", 1}, values[4])
	assert.Equal(t, []any{"Low Risk", 1}, values[5])
	assert.Equal(t, []any{"Average Probability", "46.0%"}, values[6])
	assert.Equal(t, []any{"Model", "xgb 1.0"}, values[9])

	// Detail rows are newest first regardless of input order.
	rows := values[len(values)-2:]
	assert.Equal(t, "newer", rows[0][7])
	assert.Equal(t, "High Risk", rows[0][1])
	assert.Equal(t, "80.0%", rows[0][2])
	assert.Equal(t, "Very High", rows[0][3])
	assert.Equal(t, "older", rows[1][7])

	// Input is not reordered.
	assert.Equal(t, "older", records[0].ID)
}

func TestPrepareReportData_Empty(t *testing.T) {
	summary := service.NewReportSummary(nil, time.Now())
	values := prepareReportData(nil, summary)

	assert.Equal(t, []any{"Total Predictions", 0}, values[3])
	assert.Equal(t, "Timestamp", values[len(values)-1][0])
}

type fakeSheetsAPI struct {
	server   *httptest.Server
	requests []string
	mu       sync.Mutex
}

func newFakeSheetsAPI(t *testing.T) *fakeSheetsAPI {
	t.Helper()
	f := &fakeSheetsAPI{}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)

		f.mu.Lock()
		f.requests = append(f.requests, r.Method+" "+r.URL.Path)
		f.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/v4/spreadsheets":
			_ = json.NewEncoder(w).Encode(map[string]string{
				"spreadsheetId":  "created-id",
				"spreadsheetUrl": "https://example.com/created-id",
			})
		case r.Method == http.MethodGet:
			_ = json.NewEncoder(w).Encode(map[string]string{"spreadsheetId": "existing-id"})
		default:
			_, _ = w.Write([]byte(`{}`))
		}
	}))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeSheetsAPI) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requests...)
}

func (f *fakeSheetsAPI) writer(t *testing.T, config Config) *Writer {
	t.Helper()
	srv, err := sheets.NewService(context.Background(),
		option.WithEndpoint(f.server.URL+"/"),
		option.WithoutAuthentication())
	require.NoError(t, err)
	return newWriterWithService(srv, config, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestWriter_Write_CreatesSpreadsheet(t *testing.T) {
	api := newFakeSheetsAPI(t)
	config := DefaultConfig()
	config.BatchSize = 5
	w := api.writer(t, config)

	records := testRecords(time.Now().Add(-time.Hour))
	require.NoError(t, w.Write(context.Background(), records, nil))

	calls := api.calls()
	require.NotEmpty(t, calls)
	assert.Equal(t, "POST /v4/spreadsheets", calls[0])
	assert.True(t, strings.HasSuffix(calls[1], ":clear"), calls[1])

	updates := 0
	for _, c := range calls {
		if strings.HasPrefix(c, "PUT /v4/spreadsheets/created-id/values/") {
			updates++
		}
	}
	// 13 summary rows plus 2 records, in batches of 5.
	assert.Equal(t, 3, updates)
	assert.True(t, strings.HasSuffix(calls[len(calls)-1], ":batchUpdate"))
}

func TestWriter_Write_ExistingSpreadsheet(t *testing.T) {
	api := newFakeSheetsAPI(t)
	config := DefaultConfig()
	config.SpreadsheetID = "existing-id"
	config.EnableFormatting = false
	w := api.writer(t, config)

	require.NoError(t, w.Write(context.Background(), testRecords(time.Now()), nil))

	calls := api.calls()
	assert.Equal(t, "GET /v4/spreadsheets/existing-id", calls[0])
	for _, c := range calls {
		assert.NotContains(t, c, ":batchUpdate")
	}
}

func TestMockWriter(t *testing.T) {
	m := NewMockWriter()
	records := testRecords(time.Now())

	require.NoError(t, m.Write(context.Background(), records, nil))
	m.SetWriteError(assert.AnError)
	require.ErrorIs(t, m.Write(context.Background(), records, nil), assert.AnError)

	calls := m.GetWriteCalls()
	require.Len(t, calls, 2)
	assert.NoError(t, calls[0].Error)
	assert.ErrorIs(t, calls[1].Error, assert.AnError)
	assert.Equal(t, 2, m.WriteCallCount)
}
