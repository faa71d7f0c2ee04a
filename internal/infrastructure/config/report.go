package config

import "time"

// ReportConfig holds report generation settings
type ReportConfig struct {
	// What to do with transactions whose item has no market quote: skip, zero, abort
	MissingQuotePolicy string `mapstructure:"missing_quote_policy" validate:"required,oneof=skip zero abort"`

	// Deadline for a whole report run
	Timeout time.Duration `mapstructure:"timeout" validate:"required"`

	// Output format: csv, table
	Format string `mapstructure:"format" validate:"required,oneof=csv table"`
}
