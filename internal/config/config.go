package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/Veraticus/credit-risk-console/internal/common"
	"github.com/Veraticus/credit-risk-console/internal/sheets"
	"github.com/spf13/viper"
)

// DefaultBaseURL is the scoring service location used when none is configured.
const DefaultBaseURL = "http://127.0.0.1:5000/api/v1"

// Config is the resolved console configuration.
type Config struct {
	API     APIConfig
	Storage StorageConfig
	Logging LoggingConfig
	UI      UIConfig
	Metrics MetricsConfig
}

// APIConfig locates and authenticates the scoring service.
type APIConfig struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	TokenURL     string
	CAFile       string
	Timeout      time.Duration
}

// OAuthEnabled reports whether client-credentials auth is configured.
func (c APIConfig) OAuthEnabled() bool {
	return c.ClientID != "" && c.ClientSecret != "" && c.TokenURL != ""
}

// StorageConfig locates the history database.
type StorageConfig struct {
	Path string
}

// LoggingConfig controls slog output.
type LoggingConfig struct {
	Level  string
	Format string
	File   string
}

// UIConfig controls the terminal UI.
type UIConfig struct {
	Theme string
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Addr string
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", DefaultBaseURL)
	v.SetDefault("api.timeout", 15*time.Second)
	v.SetDefault("storage.path", filepath.Join(DataDir(), "history.db"))
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.file", filepath.Join(DataDir(), "risk.log"))
	v.SetDefault("ui.theme", "default")
}

// Load reads the configuration from v and validates it.
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		API: APIConfig{
			BaseURL:      v.GetString("api.base_url"),
			Timeout:      v.GetDuration("api.timeout"),
			ClientID:     v.GetString("api.oauth.client_id"),
			ClientSecret: v.GetString("api.oauth.client_secret"),
			TokenURL:     v.GetString("api.oauth.token_url"),
			CAFile:       ExpandPath(v.GetString("api.ca_file")),
		},
		Storage: StorageConfig{Path: ExpandPath(v.GetString("storage.path"))},
		Logging: LoggingConfig{
			Level:  v.GetString("logging.level"),
			Format: v.GetString("logging.format"),
			File:   ExpandPath(v.GetString("logging.file")),
		},
		UI:      UIConfig{Theme: v.GetString("ui.theme")},
		Metrics: MetricsConfig{Addr: v.GetString("metrics.addr")},
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the console cannot use.
func (c Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("%w: api.base_url", common.ErrMissingConfig)
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: api.base_url %q is not an http(s) URL", common.ErrInvalidConfig, c.API.BaseURL)
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("%w: api.timeout cannot be negative", common.ErrInvalidConfig)
	}
	partial := c.API.ClientID != "" || c.API.ClientSecret != "" || c.API.TokenURL != ""
	if partial && !c.API.OAuthEnabled() {
		return fmt.Errorf("%w: api.oauth requires client_id, client_secret and token_url", common.ErrInvalidConfig)
	}
	if c.API.CAFile != "" {
		if _, err := os.Stat(c.API.CAFile); err != nil {
			return fmt.Errorf("%w: api.ca_file: %w", common.ErrInvalidConfig, err)
		}
	}
	if c.Storage.Path == "" {
		return fmt.Errorf("%w: storage.path", common.ErrMissingConfig)
	}
	return nil
}

// LoadSheetsConfig loads Google Sheets configuration. Viper keys take
// precedence over the GOOGLE_SHEETS_* environment variables.
func LoadSheetsConfig(v *viper.Viper) (*sheets.Config, error) {
	config := sheets.DefaultConfig()

	pick := func(key, env string) string {
		if val := v.GetString(key); val != "" {
			return val
		}
		return os.Getenv(env)
	}

	config.ServiceAccountPath = ExpandPath(pick("sheets.service_account_path", "GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH"))
	config.ClientID = pick("sheets.client_id", "GOOGLE_SHEETS_CLIENT_ID")
	config.ClientSecret = pick("sheets.client_secret", "GOOGLE_SHEETS_CLIENT_SECRET")
	config.RefreshToken = pick("sheets.refresh_token", "GOOGLE_SHEETS_REFRESH_TOKEN")
	config.SpreadsheetID = pick("sheets.spreadsheet_id", "GOOGLE_SHEETS_SPREADSHEET_ID")
	if name := pick("sheets.spreadsheet_name", "GOOGLE_SHEETS_SPREADSHEET_NAME"); name != "" {
		config.SpreadsheetName = name
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}
