package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/credit-risk-console/internal/common"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper(t *testing.T, values map[string]any) *viper.Viper {
	t.Helper()
	v := viper.New()
	SetDefaults(v)
	for k, val := range values {
		v.Set(k, val)
	}
	return v
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg")

	cfg, err := Load(newViper(t, nil))
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseURL, cfg.API.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.API.Timeout)
	assert.Equal(t, filepath.Join("/tmp/xdg", "risk", "history.db"), cfg.Storage.Path)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.False(t, cfg.API.OAuthEnabled())
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		values  map[string]any
		wantErr error
		name    string
	}{
		{
			name:   "custom base url",
			values: map[string]any{"api.base_url": "https://scoring.example.com/api/v1"},
		},
		{
			name:    "empty base url",
			values:  map[string]any{"api.base_url": ""},
			wantErr: common.ErrMissingConfig,
		},
		{
			name:    "non-http base url",
			values:  map[string]any{"api.base_url": "ftp://scoring.example.com"},
			wantErr: common.ErrInvalidConfig,
		},
		{
			name:    "negative timeout",
			values:  map[string]any{"api.timeout": "-1s"},
			wantErr: common.ErrInvalidConfig,
		},
		{
			name:    "partial oauth",
			values:  map[string]any{"api.oauth.client_id": "abc"},
			wantErr: common.ErrInvalidConfig,
		},
		{
			name:    "missing ca file",
			values:  map[string]any{"api.ca_file": "/nonexistent/stub.crt"},
			wantErr: common.ErrInvalidConfig,
		},
		{
			name: "full oauth",
			values: map[string]any{
				"api.oauth.client_id":     "abc",
				"api.oauth.client_secret": "shh",
				"api.oauth.token_url":     "https://auth.example.com/token",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(newViper(t, tt.values))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	t.Setenv("RISK_TEST_DIR", "/data")

	assert.Equal(t, "", ExpandPath(""))
	assert.Equal(t, "/home/tester/history.db", ExpandPath("~/history.db"))
	assert.Equal(t, "/home/tester", ExpandPath("~"))
	assert.Equal(t, "/data/history.db", ExpandPath("$RISK_TEST_DIR/history.db"))
}

func TestLoadSheetsConfig(t *testing.T) {
	t.Setenv("GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH", "")
	t.Setenv("GOOGLE_SHEETS_CLIENT_ID", "env-client")
	t.Setenv("GOOGLE_SHEETS_CLIENT_SECRET", "env-secret")
	t.Setenv("GOOGLE_SHEETS_REFRESH_TOKEN", "env-token")
	t.Setenv("GOOGLE_SHEETS_SPREADSHEET_NAME", "")

	v := newViper(t, map[string]any{"sheets.client_id": "viper-client"})

	cfg, err := LoadSheetsConfig(v)
	require.NoError(t, err)
	assert.Equal(t, "viper-client", cfg.ClientID)
	assert.Equal(t, "env-secret", cfg.ClientSecret)
	assert.Equal(t, "Credit Risk History", cfg.SpreadsheetName)
}

func TestLoadSheetsConfig_MissingAuth(t *testing.T) {
	for _, env := range []string{
		"GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH",
		"GOOGLE_SHEETS_CLIENT_ID",
		"GOOGLE_SHEETS_CLIENT_SECRET",
		"GOOGLE_SHEETS_REFRESH_TOKEN",
	} {
		t.Setenv(env, "")
	}

	_, err := LoadSheetsConfig(newViper(t, nil))
	assert.Error(t, err)
}
