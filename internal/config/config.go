package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/Veraticus/smart-finance/internal/common"
)

// Session store backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Defaults.
const (
	DefaultBaseURL      = "http://localhost:8080/api"
	DefaultTimeout      = 30 * time.Second
	DefaultSlot         = "currentUser"
	DefaultExportOutput = "finance-report.pdf"
)

// Config is the resolved client configuration.
type Config struct {
	Logging LoggingConfig
	Session SessionConfig
	Export  ExportConfig
	API     APIConfig
}

// APIConfig describes how to reach the finance backend.
type APIConfig struct {
	BaseURL string
	// RateLimit is in requests per second; zero disables limiting.
	RateLimit float64
	Timeout   time.Duration
	Burst     int
}

// SessionConfig selects where the current session is persisted.
type SessionConfig struct {
	Backend string
	Path    string
	Slot    string
}

// ExportConfig holds report export settings.
type ExportConfig struct {
	Output string
}

// LoggingConfig holds the logger settings.
type LoggingConfig struct {
	Level  string
	Format string
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", DefaultBaseURL)
	v.SetDefault("api.timeout", DefaultTimeout)
	v.SetDefault("api.rate_limit", 0)
	v.SetDefault("api.burst", 1)
	v.SetDefault("session.backend", BackendFile)
	v.SetDefault("session.path", "")
	v.SetDefault("session.slot", DefaultSlot)
	v.SetDefault("export.output", DefaultExportOutput)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// LoadDotEnv loads KEY=value pairs from path into the process environment.
// Variables that are already set win. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(ExpandPath(path)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// Load builds a validated Config from v.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		API: APIConfig{
			BaseURL:   strings.TrimRight(strings.TrimSpace(v.GetString("api.base_url")), "/"),
			Timeout:   v.GetDuration("api.timeout"),
			RateLimit: v.GetFloat64("api.rate_limit"),
			Burst:     v.GetInt("api.burst"),
		},
		Session: SessionConfig{
			Backend: strings.ToLower(strings.TrimSpace(v.GetString("session.backend"))),
			Path:    ExpandPath(v.GetString("session.path")),
			Slot:    strings.TrimSpace(v.GetString("session.slot")),
		},
		Export: ExportConfig{
			Output: ExpandPath(v.GetString("export.output")),
		},
		Logging: LoggingConfig{
			Level:  v.GetString("logging.level"),
			Format: v.GetString("logging.format"),
		},
	}

	if cfg.Session.Path == "" {
		cfg.Session.Path = defaultSessionPath(cfg.Session.Backend)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("%w: api.base_url", common.ErrMissingConfig)
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: api.base_url %q must be an http(s) URL", common.ErrInvalidConfig, c.API.BaseURL)
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("%w: api.timeout must not be negative", common.ErrInvalidConfig)
	}
	if c.API.RateLimit < 0 {
		return fmt.Errorf("%w: api.rate_limit must not be negative", common.ErrInvalidConfig)
	}
	if c.API.RateLimit > 0 && c.API.Burst < 1 {
		return fmt.Errorf("%w: api.burst must be at least 1", common.ErrInvalidConfig)
	}

	switch c.Session.Backend {
	case BackendFile, BackendSQLite:
	default:
		return fmt.Errorf("%w: unknown session.backend %q", common.ErrInvalidConfig, c.Session.Backend)
	}
	if c.Session.Slot == "" {
		return fmt.Errorf("%w: session.slot", common.ErrMissingConfig)
	}
	if c.Export.Output == "" {
		return fmt.Errorf("%w: export.output", common.ErrMissingConfig)
	}

	if _, err := common.ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	return nil
}

func defaultSessionPath(backend string) string {
	if backend == BackendSQLite {
		return filepath.Join(DataDir(), "session.db")
	}
	return filepath.Join(DataDir(), "session.json")
}
