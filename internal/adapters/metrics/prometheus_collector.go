package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/eve-wallet-go/internal/domain/shared"
)

const (
	// Namespace for all metrics
	namespace = "eve_wallet"
	// Subsystem for report run metrics
	subsystem = "report"
)

var (
	// Registry is the Prometheus registry for all metrics of this process.
	// nil while metrics are disabled.
	Registry *prometheus.Registry
)

// InitRegistry initializes the Prometheus registry
// Should be called once at startup if metrics are enabled
func InitRegistry() {
	Registry = prometheus.NewRegistry()
}

// IsEnabled returns true if metrics collection is enabled
func IsEnabled() bool {
	return Registry != nil
}

// Collectors groups every collector a report run uses
type Collectors struct {
	API    *APIMetricsCollector
	Query  *QueryMetricsCollector
	Report *ReportMetricsCollector
}

// NewCollectors creates all collectors and registers them with Registry.
// Returns nil when metrics are disabled.
func NewCollectors(clock shared.Clock) (*Collectors, error) {
	if !IsEnabled() {
		return nil, nil
	}

	c := &Collectors{
		API:    NewAPIMetricsCollector(),
		Query:  NewQueryMetricsCollector(),
		Report: NewReportMetricsCollector(clock),
	}

	if err := c.API.Register(); err != nil {
		return nil, fmt.Errorf("failed to register API metrics: %w", err)
	}
	if err := c.Query.Register(); err != nil {
		return nil, fmt.Errorf("failed to register query metrics: %w", err)
	}
	if err := c.Report.Register(); err != nil {
		return nil, fmt.Errorf("failed to register report metrics: %w", err)
	}

	return c, nil
}

// WriteTextfile writes the registry in the text exposition format,
// for pickup by the node_exporter textfile collector.
func WriteTextfile(path string) error {
	if !IsEnabled() {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, Registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}

func register(collectors ...prometheus.Collector) error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	for _, collector := range collectors {
		if err := Registry.Register(collector); err != nil {
			return err
		}
	}
	return nil
}
