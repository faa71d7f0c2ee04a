package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/andrescamacho/eve-wallet-go/internal/domain/shared"
)

const (
	defaultTimeout     = 30 * time.Second
	defaultMaxRetries  = 3
	defaultBackoffBase = time.Second
)

// RequestRecorder receives one call per HTTP attempt and one per retry.
// The metrics adapter's APIMetricsCollector satisfies it.
type RequestRecorder interface {
	RecordAPIRequest(method, endpoint string, statusCode int, duration float64)
	RecordAPIRetry(method, endpoint, reason string)
}

// Option configures an API client
type Option func(*options)

type options struct {
	baseURL     string
	httpClient  *http.Client
	timeout     time.Duration
	proxyURL    string
	maxRetries  int
	backoffBase time.Duration
	clock       shared.Clock
	logger      *slog.Logger
	recorder    RequestRecorder
	breaker     *CircuitBreaker
	noBreaker   bool
}

func defaultOptions() *options {
	return &options{
		timeout:     defaultTimeout,
		maxRetries:  defaultMaxRetries,
		backoffBase: defaultBackoffBase,
		clock:       shared.NewRealClock(),
		logger:      slog.Default(),
	}
}

// WithBaseURL overrides the service base URL
func WithBaseURL(baseURL string) Option {
	return func(o *options) {
		o.baseURL = baseURL
	}
}

// WithHTTPClient sets a custom HTTP client. Timeout and proxy options are ignored when set.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) {
		o.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithProxy routes this client's requests through an HTTP proxy
func WithProxy(proxyURL string) Option {
	return func(o *options) {
		o.proxyURL = proxyURL
	}
}

// WithRetries sets the retry configuration
func WithRetries(max int, backoffBase time.Duration) Option {
	return func(o *options) {
		o.maxRetries = max
		o.backoffBase = backoffBase
	}
}

// WithClock injects the clock used for backoff sleeps
func WithClock(clock shared.Clock) Option {
	return func(o *options) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithRecorder attaches a metrics recorder
func WithRecorder(recorder RequestRecorder) Option {
	return func(o *options) {
		o.recorder = recorder
	}
}

// WithCircuitBreaker shares a breaker between clients or replaces the default
// one. A nil breaker disables circuit breaking.
func WithCircuitBreaker(cb *CircuitBreaker) Option {
	return func(o *options) {
		o.breaker = cb
		o.noBreaker = cb == nil
	}
}

// buildHTTPClient returns the configured client, or a new one whose transport
// carries the proxy setting. The proxy never leaks into http.DefaultTransport.
func (o *options) buildHTTPClient() (*http.Client, error) {
	if o.httpClient != nil {
		return o.httpClient, nil
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = nil
	if o.proxyURL != "" {
		proxy, err := url.Parse(o.proxyURL)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy URL %q: %w", o.proxyURL, err)
		}
		if proxy.Scheme == "" || proxy.Host == "" {
			return nil, fmt.Errorf("invalid proxy URL %q: scheme and host required", o.proxyURL)
		}
		transport.Proxy = http.ProxyURL(proxy)
	}

	return &http.Client{
		Timeout:   o.timeout,
		Transport: transport,
	}, nil
}

func (o *options) newRequester(defaultBaseURL string, decodeError errorDecoder) (*requester, error) {
	httpClient, err := o.buildHTTPClient()
	if err != nil {
		return nil, err
	}

	baseURL := o.baseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	breaker := o.breaker
	if breaker == nil && !o.noBreaker {
		breaker = NewCircuitBreaker(defaultBreakerThreshold, defaultBreakerCooldown, o.clock)
	}

	return &requester{
		httpClient:  httpClient,
		baseURL:     baseURL,
		maxRetries:  o.maxRetries,
		backoffBase: o.backoffBase,
		clock:       o.clock,
		logger:      o.logger,
		recorder:    o.recorder,
		breaker:     breaker,
		decodeError: decodeError,
	}, nil
}
