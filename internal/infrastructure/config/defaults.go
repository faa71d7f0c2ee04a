package config

import (
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultBaseURL            = "https://api.eveonline.com"
	DefaultMarketURL          = "http://api.eve-central.com"
	DefaultReferenceSystemID  = "30000142"
	DefaultAPITimeout         = 30 * time.Second
	DefaultMaxAttempts        = 3
	DefaultBackoffBase        = 1 * time.Second
	DefaultMissingQuotePolicy = "skip"
	DefaultReportTimeout      = 5 * time.Minute
	DefaultReportFormat       = "csv"
	DefaultLogLevel           = "info"
	DefaultLogFormat          = "text"
	DefaultLogOutput          = "stderr"
	DefaultMetricsTextfile    = "eve_wallet.prom"
)

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	// API defaults
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = DefaultBaseURL
	}
	if cfg.API.MarketURL == "" {
		cfg.API.MarketURL = DefaultMarketURL
	}
	if cfg.API.ReferenceSystemID == "" {
		cfg.API.ReferenceSystemID = DefaultReferenceSystemID
	}
	if cfg.API.Timeout == 0 {
		cfg.API.Timeout = DefaultAPITimeout
	}
	if cfg.API.Retry.BackoffBase == 0 {
		cfg.API.Retry.BackoffBase = DefaultBackoffBase
	}

	// Report defaults
	if cfg.Report.MissingQuotePolicy == "" {
		cfg.Report.MissingQuotePolicy = DefaultMissingQuotePolicy
	}
	if cfg.Report.Timeout == 0 {
		cfg.Report.Timeout = DefaultReportTimeout
	}
	if cfg.Report.Format == "" {
		cfg.Report.Format = DefaultReportFormat
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLogLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = DefaultLogFormat
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = DefaultLogOutput
	}

	// Metrics defaults
	if cfg.Metrics.Enabled && cfg.Metrics.TextfilePath == "" {
		cfg.Metrics.TextfilePath = DefaultMetricsTextfile
	}
}

// registerDefaults declares every key with its default value on v
func registerDefaults(v *viper.Viper) {
	v.SetDefault("character.name", "")
	v.SetDefault("character.key_id", "")
	v.SetDefault("character.v_code", "")

	v.SetDefault("api.base_url", DefaultBaseURL)
	v.SetDefault("api.market_url", DefaultMarketURL)
	v.SetDefault("api.reference_system_id", DefaultReferenceSystemID)
	v.SetDefault("api.proxy_url", "")
	v.SetDefault("api.timeout", DefaultAPITimeout)
	v.SetDefault("api.retry.max_attempts", DefaultMaxAttempts)
	v.SetDefault("api.retry.backoff_base", DefaultBackoffBase)

	v.SetDefault("report.missing_quote_policy", DefaultMissingQuotePolicy)
	v.SetDefault("report.timeout", DefaultReportTimeout)
	v.SetDefault("report.format", DefaultReportFormat)

	v.SetDefault("logging.level", DefaultLogLevel)
	v.SetDefault("logging.format", DefaultLogFormat)
	v.SetDefault("logging.output", DefaultLogOutput)
	v.SetDefault("logging.file_path", "")
	v.SetDefault("logging.include_caller", false)

	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.textfile_path", "")
}
