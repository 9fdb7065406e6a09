package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/steadysun/steadysun-go/api"
)

// EnvPrefix prefixes every environment override, e.g. STEADYSUN_LOGGING_LEVEL
const EnvPrefix = "STEADYSUN"

// Load loads the configuration from file and environment. Without an
// explicit path a missing config file is not an error.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)
	bindEnv(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".steadysun"))
		}

		// Check /etc
		v.AddConfigPath("/etc/steadysun/")
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// API defaults
	v.SetDefault("api.token", "")
	v.SetDefault("api.url", api.DefaultBaseURL)
	v.SetDefault("api.timeout", api.DefaultTimeout)
	v.SetDefault("api.page_limit", api.DefaultPageLimit)
	v.SetDefault("api.max_pages", api.DefaultMaxPages)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)

	// Output defaults
	v.SetDefault("output.format", "table")
}

// bindEnv maps STEADYSUN_SECTION_KEY variables onto section.key. The token
// and URL variables are the ones the API client itself reads.
func bindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("api.token", api.EnvToken)
	_ = v.BindEnv("api.url", api.EnvBaseURL)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.API.Token != "" {
		if err := api.ValidateToken(cfg.API.Token); err != nil {
			return fmt.Errorf("api.token: %w", err)
		}
	}

	u, err := url.Parse(cfg.API.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api.url must be an absolute URL: %q", cfg.API.URL)
	}

	if cfg.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive")
	}
	if cfg.API.PageLimit <= 0 {
		return fmt.Errorf("api.page_limit must be positive")
	}
	if cfg.API.MaxPages <= 0 {
		return fmt.Errorf("api.max_pages must be positive")
	}

	if !ValidLogLevel(cfg.Logging.Level) {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	if !ValidOutputFormat(cfg.Output.Format) {
		return fmt.Errorf("invalid output format: %s (must be table, json or yaml)", cfg.Output.Format)
	}

	return nil
}

// ValidLogLevel reports whether level is a supported logging level
func ValidLogLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}

// ValidOutputFormat reports whether format is a supported output format
func ValidOutputFormat(format string) bool {
	switch format {
	case "table", "json", "yaml":
		return true
	}
	return false
}
