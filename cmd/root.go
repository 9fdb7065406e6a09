package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/steadysun/steadysun-go/api"
	"github.com/steadysun/steadysun-go/config"
	"github.com/steadysun/steadysun-go/filter"
)

var (
	cfgFile      string
	outputFormat string
	logLevel     string

	cfg     *config.Config
	logger  zerolog.Logger
	filters *filter.Manager
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "steadysun",
	Short: "Command line client for the Steadysun forecast API",
	Long: `steadysun talks to the Steadysun API: it fetches PV production forecasts
and manages the configuration of your PV systems.

The API token is read from STEADYSUN_API_TOKEN or from api.token in the
config file.`,
	PersistentPreRunE: initializeApp,
	SilenceUsage:      true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "output format: table, json or yaml")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")
}

// initializeApp loads the configuration and sets up logging
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if outputFormat != "" {
		if !config.ValidOutputFormat(outputFormat) {
			return fmt.Errorf("invalid output format: %s (must be table, json or yaml)", outputFormat)
		}
		cfg.Output.Format = outputFormat
	}
	if logLevel != "" {
		if !config.ValidLogLevel(logLevel) {
			return fmt.Errorf("invalid log level: %s (must be debug, info, warn or error)", logLevel)
		}
		cfg.Logging.Level = logLevel
	}

	logger = setupLogger(cfg.Logging)

	filters = filter.NewManager(logger)
	if err := filters.RegisterFilters(cfg.Filters); err != nil {
		return fmt.Errorf("invalid filters in config: %w", err)
	}

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format, colours only on a terminal
	fd := os.Stderr.Fd()
	tty := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !tty,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// newAPIClient creates a client from the loaded configuration
func newAPIClient() (*api.Client, error) {
	if cfg.API.Token == "" {
		return nil, fmt.Errorf("%w: set %s or api.token in the config file", api.ErrTokenMissing, api.EnvToken)
	}

	client, err := api.NewClient(cfg.API.Token, logger, cfg.API.ClientOptions()...)
	if err != nil {
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}
	return client, nil
}
