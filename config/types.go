package config

import (
	"time"

	"github.com/steadysun/steadysun-go/api"
)

// Config represents the complete configuration structure
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Logging LoggingConfig `mapstructure:"logging"`
	Output  OutputConfig  `mapstructure:"output"`
	Filters FilterConfig  `mapstructure:"filters"`
}

// APIConfig holds the Steadysun API connection details
type APIConfig struct {
	Token     string        `mapstructure:"token"`
	URL       string        `mapstructure:"url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	PageLimit int           `mapstructure:"page_limit"`
	MaxPages  int           `mapstructure:"max_pages"`
}

// ClientOptions converts the connection settings into client options
func (c APIConfig) ClientOptions() []api.Option {
	return []api.Option{
		api.WithBaseURL(c.URL),
		api.WithTimeout(c.Timeout),
		api.WithMaxPages(c.MaxPages),
	}
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}

// OutputConfig controls how command results are printed
type OutputConfig struct {
	Format string `mapstructure:"format"`
}

// FilterConfig contains named filter expressions
type FilterConfig map[string]string
