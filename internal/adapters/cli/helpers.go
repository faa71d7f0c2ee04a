package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/eve-wallet-go/internal/adapters/api"
	"github.com/andrescamacho/eve-wallet-go/internal/adapters/metrics"
	characterQueries "github.com/andrescamacho/eve-wallet-go/internal/application/character/queries"
	"github.com/andrescamacho/eve-wallet-go/internal/application/common"
	marketQueries "github.com/andrescamacho/eve-wallet-go/internal/application/market/queries"
	"github.com/andrescamacho/eve-wallet-go/internal/application/mediator"
	"github.com/andrescamacho/eve-wallet-go/internal/application/report"
	reportQueries "github.com/andrescamacho/eve-wallet-go/internal/application/report/queries"
	serverQueries "github.com/andrescamacho/eve-wallet-go/internal/application/server/queries"
	"github.com/andrescamacho/eve-wallet-go/internal/domain/shared"
	"github.com/andrescamacho/eve-wallet-go/internal/infrastructure/config"
	"github.com/andrescamacho/eve-wallet-go/internal/infrastructure/logging"
	"github.com/andrescamacho/eve-wallet-go/pkg/utils"
)

// app is everything one command invocation needs, built from configuration
type app struct {
	cfg        *config.Config
	logger     *logging.Logger
	mediator   mediator.Mediator
	account    *api.EveClient
	market     *api.MarketClient
	collectors *metrics.Collectors
	clock      shared.Clock
	runID      string
}

// loadConfig applies the global flags that were set on top of file and environment
func loadConfig(cmd *cobra.Command, flags *globalFlags) (*config.Config, error) {
	var overrides []config.Override
	set := func(flag, key, value string) {
		if cmd.Flags().Changed(flag) {
			overrides = append(overrides, config.Override{Key: key, Value: value})
		}
	}
	set("character", "character.name", flags.characterName)
	set("key-id", "character.key_id", flags.keyID)
	set("v-code", "character.v_code", flags.vCode)
	set("proxy", "api.proxy_url", flags.proxyURL)

	return config.LoadConfig(flags.configPath, overrides...)
}

// newApp wires configuration, logging, metrics, API clients and query handlers
func newApp(cmd *cobra.Command, flags *globalFlags) (*app, error) {
	cfg, err := loadConfig(cmd, flags)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.Logging, flags.verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	runID := utils.GenerateRunID(cmd.Name())
	a := &app{
		cfg:    cfg,
		logger: logger,
		clock:  shared.NewRealClock(),
		runID:  runID,
	}
	runLogger := logger.With("run_id", runID)

	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
		collectors, err := metrics.NewCollectors(a.clock)
		if err != nil {
			logger.Close()
			return nil, err
		}
		a.collectors = collectors
	}

	opts := []api.Option{
		api.WithTimeout(cfg.API.Timeout),
		api.WithProxy(cfg.API.ProxyURL),
		api.WithRetries(cfg.API.Retry.MaxAttempts, cfg.API.Retry.BackoffBase),
		api.WithLogger(runLogger),
	}
	if a.collectors != nil {
		opts = append(opts, api.WithRecorder(a.collectors.API))
	}

	a.account, err = api.NewEveClient(
		cfg.Character.Name,
		cfg.Character.Credentials(),
		append(opts, api.WithBaseURL(cfg.API.BaseURL))...,
	)
	if err != nil {
		logger.Close()
		return nil, fmt.Errorf("failed to create account client: %w", err)
	}

	a.market, err = api.NewMarketClient(
		cfg.API.ReferenceSystemID,
		append(opts, api.WithBaseURL(cfg.API.MarketURL))...,
	)
	if err != nil {
		logger.Close()
		return nil, fmt.Errorf("failed to create market client: %w", err)
	}

	if err := a.registerHandlers(); err != nil {
		logger.Close()
		return nil, err
	}

	return a, nil
}

func (a *app) registerHandlers() error {
	clock := a.clock
	m := mediator.NewMediator()

	m.Use(common.LoggingMiddleware(clock))
	if a.collectors != nil {
		m.Use(metrics.PrometheusMiddleware(a.collectors.Query))
	}

	// A typed nil collector must not reach the handler as a non-nil interface
	var recorder report.Recorder
	if a.collectors != nil {
		recorder = a.collectors.Report
	}
	reportHandler := reportQueries.NewGetWalletReportHandler(a.account, a.market, clock, recorder)

	registrations := []error{
		mediator.RegisterHandler[*reportQueries.GetWalletReportQuery](m, reportHandler),
		mediator.RegisterHandler[*characterQueries.ResolveCharacterQuery](m, characterQueries.NewResolveCharacterHandler(a.account)),
		mediator.RegisterHandler[*characterQueries.GetAccountBalanceQuery](m, characterQueries.NewGetAccountBalanceHandler(a.account)),
		mediator.RegisterHandler[*serverQueries.GetServerStatusQuery](m, serverQueries.NewGetServerStatusHandler(a.account)),
		mediator.RegisterHandler[*marketQueries.GetMarketQuotesQuery](m, marketQueries.NewGetMarketQuotesHandler(a.market)),
	}
	if err := errors.Join(registrations...); err != nil {
		return fmt.Errorf("failed to register handlers: %w", err)
	}

	a.mediator = m
	return nil
}

// close flushes metrics and releases the log file
func (a *app) close() {
	if a.collectors != nil {
		if err := metrics.WriteTextfile(a.cfg.Metrics.TextfilePath); err != nil {
			a.logger.Error("metrics export failed", "error", err)
		}
	}
	a.logger.Close()
}

// runWithApp builds the app, runs fn under a signal-aware context bounded by
// report.timeout, and tears everything down afterwards.
func runWithApp(cmd *cobra.Command, flags *globalFlags, fn func(ctx context.Context, a *app) error) error {
	a, err := newApp(cmd, flags)
	if err != nil {
		return err
	}
	defer a.close()

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx, cancel := context.WithTimeout(ctx, a.cfg.Report.Timeout)
	defer cancel()

	ctx = common.WithRunID(ctx, a.runID)
	ctx = common.WithLogger(ctx, a.logger.With("run_id", a.runID, "command", cmd.Name()))

	return fn(ctx, a)
}

// describeError prefixes the error with its classification
func describeError(err error) string {
	switch {
	case shared.IsCharacterNotFound(err):
		return fmt.Sprintf("character not found: %v", err)
	case shared.IsTransport(err):
		return fmt.Sprintf("transport error: %v", err)
	case shared.IsParse(err):
		return fmt.Sprintf("malformed response: %v", err)
	case shared.IsDataConsistency(err):
		return fmt.Sprintf("inconsistent data: %v", err)
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Sprintf("timed out: %v", err)
	case errors.Is(err, context.Canceled):
		return fmt.Sprintf("interrupted: %v", err)
	}
	return err.Error()
}
