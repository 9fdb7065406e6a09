package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steadysun/steadysun-go/api"
)

var testToken = strings.Repeat("b", api.TokenLength)

// isolate runs the test from an empty directory with an empty home so no
// real config file or environment leaks in.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	t.Setenv(api.EnvToken, "")
	t.Setenv(api.EnvBaseURL, "")
	os.Unsetenv(api.EnvToken)
	os.Unsetenv(api.EnvBaseURL)
	return dir
}

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Empty(t, cfg.API.Token)
	assert.Equal(t, api.DefaultBaseURL, cfg.API.URL)
	assert.Equal(t, api.DefaultTimeout, cfg.API.Timeout)
	assert.Equal(t, api.DefaultPageLimit, cfg.API.PageLimit)
	assert.Equal(t, api.DefaultMaxPages, cfg.API.MaxPages)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.True(t, cfg.Logging.Color)
	assert.Equal(t, "table", cfg.Output.Format)
	assert.Empty(t, cfg.Filters)
}

func TestLoadFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	writeConfig(t, path, `
api:
  token: `+testToken+`
  url: https://staging.example.com/api/v1/
  timeout: 10s
  page_limit: 50
logging:
  level: debug
  format: json
output:
  format: yaml
filters:
  big: PeakPower > 50000
  roofs: icontains(Name, "roof")
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, testToken, cfg.API.Token)
	assert.Equal(t, "https://staging.example.com/api/v1/", cfg.API.URL)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.Equal(t, 50, cfg.API.PageLimit)
	assert.Equal(t, api.DefaultMaxPages, cfg.API.MaxPages)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "yaml", cfg.Output.Format)
	assert.Equal(t, FilterConfig{"big": "PeakPower > 50000", "roofs": `icontains(Name, "roof")`}, cfg.Filters)
}

func TestLoadSearchPaths(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, filepath.Join(dir, ".steadysun", "config.yaml"), "output:\n  format: json\n")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Output.Format)

	// the working directory wins over the home directory
	writeConfig(t, filepath.Join(dir, "config.yaml"), "output:\n  format: yaml\n")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, "yaml", cfg.Output.Format)
}

func TestLoadEnvironment(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.yaml")
	writeConfig(t, path, "api:\n  url: https://file.example.com/api/v1/\n")

	t.Setenv(api.EnvToken, testToken)
	t.Setenv(api.EnvBaseURL, "https://env.example.com/api/v1/")
	t.Setenv("STEADYSUN_LOGGING_LEVEL", "warn")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, testToken, cfg.API.Token)
	assert.Equal(t, "https://env.example.com/api/v1/", cfg.API.URL)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadErrors(t *testing.T) {
	t.Run("explicit file missing", func(t *testing.T) {
		dir := isolate(t)
		_, err := Load(filepath.Join(dir, "missing.yaml"))
		assert.Error(t, err)
	})

	t.Run("malformed file", func(t *testing.T) {
		dir := isolate(t)
		path := filepath.Join(dir, "config.yaml")
		writeConfig(t, path, "api: [unterminated\n")
		_, err := Load(path)
		assert.ErrorContains(t, err, "error reading config")
	})

	t.Run("invalid token", func(t *testing.T) {
		dir := isolate(t)
		path := filepath.Join(dir, "config.yaml")
		writeConfig(t, path, "api:\n  token: short\n")
		_, err := Load(path)
		assert.ErrorIs(t, err, api.ErrTokenInvalid)
		assert.NotContains(t, err.Error(), "short")
	})
}

func validConfig() *Config {
	return &Config{
		API: APIConfig{
			URL:       api.DefaultBaseURL,
			Timeout:   api.DefaultTimeout,
			PageLimit: api.DefaultPageLimit,
			MaxPages:  api.DefaultMaxPages,
		},
		Logging: LoggingConfig{Level: "info", Format: "console"},
		Output:  OutputConfig{Format: "table"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "relative url", mutate: func(c *Config) { c.API.URL = "api/v1" }, wantErr: "api.url"},
		{name: "zero timeout", mutate: func(c *Config) { c.API.Timeout = 0 }, wantErr: "api.timeout"},
		{name: "zero page limit", mutate: func(c *Config) { c.API.PageLimit = 0 }, wantErr: "api.page_limit"},
		{name: "zero max pages", mutate: func(c *Config) { c.API.MaxPages = 0 }, wantErr: "api.max_pages"},
		{name: "bad level", mutate: func(c *Config) { c.Logging.Level = "trace" }, wantErr: "invalid logging level"},
		{name: "bad format", mutate: func(c *Config) { c.Logging.Format = "xml" }, wantErr: "invalid logging format"},
		{name: "bad output", mutate: func(c *Config) { c.Output.Format = "csv" }, wantErr: "invalid output format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestClientOptions(t *testing.T) {
	cfg := validConfig()
	cfg.API.URL = "https://staging.example.com/api/v1"

	client, err := api.NewClient(testToken, zerolog.Nop(), cfg.API.ClientOptions()...)
	require.NoError(t, err)
	assert.Equal(t, "https://staging.example.com/api/v1/", client.BaseURL())
}
