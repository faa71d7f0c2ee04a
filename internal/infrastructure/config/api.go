package config

import "time"

// APIConfig holds the account API and market aggregator client configuration
type APIConfig struct {
	// Base URL of the EVE XML account API
	BaseURL string `mapstructure:"base_url" validate:"required,url"`

	// Base URL of the market aggregator
	MarketURL string `mapstructure:"market_url" validate:"required,url"`

	// Solar system whose sell orders are the price baseline (Jita by default)
	ReferenceSystemID string `mapstructure:"reference_system_id" validate:"required,numeric"`

	// Optional HTTP proxy applied to both clients
	ProxyURL string `mapstructure:"proxy_url" validate:"omitempty,url"`

	// Request timeout
	Timeout time.Duration `mapstructure:"timeout" validate:"required"`

	// Retry configuration
	Retry RetryConfig `mapstructure:"retry"`
}

// RetryConfig holds retry configuration for failed requests
type RetryConfig struct {
	// Maximum number of retry attempts
	MaxAttempts int `mapstructure:"max_attempts" validate:"min=0"`

	// Base duration for exponential backoff
	BackoffBase time.Duration `mapstructure:"backoff_base"`
}
