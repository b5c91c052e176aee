package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/sony/gobreaker"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/boddenberg/tochka-go/internal/config"
	"github.com/boddenberg/tochka-go/internal/infra/client"
	"github.com/boddenberg/tochka-go/internal/infra/observability"
	"github.com/boddenberg/tochka-go/internal/infra/resilience"
)

// app is everything a subcommand needs; built once in PersistentPreRunE.
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	metrics  *observability.Metrics
	client   *client.Client
	cb       *gobreaker.CircuitBreaker
	retry    resilience.Config
	shutdown func(context.Context) error
	out      io.Writer
}

func main() {
	a := &app{out: os.Stdout}
	if err := newRootCmd(a).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "tochka",
		Short:         "Tochka open-banking and acquiring API client",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd.Context())
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			a.close(cmd.Context())
		},
	}

	root.AddCommand(
		accountsCmd(a),
		balancesCmd(a),
		customersCmd(a),
		summaryCmd(a),
		paymentsCmd(a),
		registryCmd(a),
		retailersCmd(a),
		statementsCmd(a),
		webhooksCmd(a),
		resolveCustomerCodeCmd(a),
		serveCmd(a),
	)
	return root
}

func (a *app) setup(ctx context.Context) error {
	// --- Load .env file (for local development) ---
	if err := config.LoadDotEnv(".env"); err != nil {
		return err
	}

	// --- Config ---
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	// --- Logger ---
	a.logger = observability.NewLogger(cfg.LogLevel)

	a.logger.Debug("configuration loaded",
		zap.String("environment", cfg.Environment.String()),
		zap.Bool("client_id_set", cfg.ClientID != ""),
		zap.Bool("customer_code_set", cfg.CustomerCode != ""),
		zap.Int("scopes", len(cfg.Scopes)),
		zap.Duration("http_timeout", cfg.HTTPTimeout),
		zap.Int("max_retries", cfg.MaxRetries),
		zap.Duration("initial_backoff", cfg.InitialBackoff),
	)

	// --- Tracing ---
	a.shutdown, err = observability.InitTracer(ctx, cfg.OTLPEndpoint, "tochka-go")
	if err != nil {
		return err
	}

	// --- Metrics ---
	a.metrics = observability.NewMetrics()

	// --- Resilience ---
	a.retry = resilience.Config{
		MaxRetries:     cfg.MaxRetries,
		InitialBackoff: cfg.InitialBackoff,
		MaxConcurrency: cfg.MaxConcurrency,
		MaxFailures:    cfg.BreakerFailures,
	}
	a.cb = resilience.NewCircuitBreaker("tochka-api", cfg.BreakerFailures)

	// --- Client ---
	a.client, err = client.NewClient(
		client.NewHTTPClient(cfg.HTTPTimeout, cfg.ConnectTimeout),
		client.Config{
			Environment:  cfg.Environment,
			Token:        cfg.Token,
			ClientID:     cfg.ClientID,
			CustomerCode: cfg.CustomerCode,
			JWKURL:       cfg.JWKURL,
			Scopes:       cfg.Scopes,
		},
		a.metrics,
		a.logger,
	)
	return err
}

func (a *app) close(ctx context.Context) {
	if a.shutdown != nil {
		if err := a.shutdown(ctx); err != nil && a.logger != nil {
			a.logger.Warn("tracer shutdown failed", zap.Error(err))
		}
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// read runs an idempotent call with retries and prints the result.
func read[T any](ctx context.Context, a *app, fn func(context.Context) (T, error)) error {
	v, err := resilience.Call(ctx, a.cb, a.retry, fn)
	if err != nil {
		return err
	}
	return a.print(v)
}

// write runs a call that must not be repeated: breaker only, no retries.
func write[T any](ctx context.Context, a *app, fn func(context.Context) (T, error)) error {
	once := a.retry
	once.MaxRetries = 0
	v, err := resilience.Call(ctx, a.cb, once, fn)
	if err != nil {
		return err
	}
	return a.print(v)
}

func (a *app) print(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
