package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/smart-finance/internal/common"
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
	t.Setenv("XDG_DATA_HOME", "/data")

	cfg, err := Load(newViper(t, nil))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/api", cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Zero(t, cfg.API.RateLimit)
	assert.Equal(t, BackendFile, cfg.Session.Backend)
	assert.Equal(t, filepath.Join("/data", "finance", "session.json"), cfg.Session.Path)
	assert.Equal(t, "currentUser", cfg.Session.Slot)
	assert.Equal(t, "finance-report.pdf", cfg.Export.Output)
}

func TestLoad_SQLiteDefaultPath(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/data")

	cfg, err := Load(newViper(t, map[string]any{"session.backend": "SQLite"}))
	require.NoError(t, err)

	assert.Equal(t, BackendSQLite, cfg.Session.Backend)
	assert.Equal(t, filepath.Join("/data", "finance", "session.db"), cfg.Session.Path)
}

func TestLoad_TrimsBaseURL(t *testing.T) {
	cfg, err := Load(newViper(t, map[string]any{"api.base_url": "https://finance.example.com/api/"}))
	require.NoError(t, err)
	assert.Equal(t, "https://finance.example.com/api", cfg.API.BaseURL)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		values  map[string]any
		wantErr error
		name    string
	}{
		{
			name:    "empty base url",
			values:  map[string]any{"api.base_url": ""},
			wantErr: common.ErrMissingConfig,
		},
		{
			name:    "relative base url",
			values:  map[string]any{"api.base_url": "localhost/api"},
			wantErr: common.ErrInvalidConfig,
		},
		{
			name:    "ftp base url",
			values:  map[string]any{"api.base_url": "ftp://example.com"},
			wantErr: common.ErrInvalidConfig,
		},
		{
			name:    "negative rate limit",
			values:  map[string]any{"api.rate_limit": -1},
			wantErr: common.ErrInvalidConfig,
		},
		{
			name:    "zero burst with rate limit",
			values:  map[string]any{"api.rate_limit": 5, "api.burst": 0},
			wantErr: common.ErrInvalidConfig,
		},
		{
			name:    "unknown backend",
			values:  map[string]any{"session.backend": "redis"},
			wantErr: common.ErrInvalidConfig,
		},
		{
			name:    "empty slot",
			values:  map[string]any{"session.slot": " "},
			wantErr: common.ErrMissingConfig,
		},
		{
			name:    "bad log level",
			values:  map[string]any{"logging.level": "loud"},
			wantErr: common.ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(newViper(t, tt.values))
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("FINANCE_TEST_DOTENV=from-file\n"), 0600))

	t.Setenv("FINANCE_TEST_DOTENV", "")
	require.NoError(t, os.Unsetenv("FINANCE_TEST_DOTENV"))

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "from-file", os.Getenv("FINANCE_TEST_DOTENV"))

	require.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env")))
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("FINANCE_TEST_DIR", "/srv/finance")

	assert.Equal(t, "", ExpandPath(""))
	assert.Equal(t, home, ExpandPath("~"))
	assert.Equal(t, filepath.Join(home, "a", "b"), ExpandPath("~/a/b"))
	assert.Equal(t, "/srv/finance/x.db", ExpandPath("$FINANCE_TEST_DIR/x.db"))
	assert.Equal(t, "relative/path", ExpandPath("relative/path"))
}
