package config

// MetricsConfig holds metrics collection and export configuration.
// A report run is short-lived, so metrics are written to a textfile
// for the node_exporter textfile collector instead of being served.
type MetricsConfig struct {
	// Enabled controls whether metrics collection is active
	Enabled bool `mapstructure:"enabled"`

	// Destination of the text exposition file
	TextfilePath string `mapstructure:"textfile_path" validate:"required_if=Enabled true"`
}
