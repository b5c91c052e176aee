package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/boddenberg/tochka-go/internal/domain"
	"github.com/boddenberg/tochka-go/internal/handler"
	"github.com/boddenberg/tochka-go/internal/infra/cache"
	"github.com/boddenberg/tochka-go/internal/infra/resilience"
)

// logSink writes verified webhook events to the log.
type logSink struct {
	logger *zap.Logger
}

func (s logSink) AcquiringPayment(_ context.Context, claims domain.AcquiringClaims) error {
	s.logger.Info("acquiring payment",
		zap.String("operation_id", claims.OperationID.String()),
		zap.String("customer_code", claims.CustomerCode),
		zap.String("merchant_id", claims.MerchantID),
		zap.String("status", string(claims.Status)),
		zap.String("payment_type", string(claims.PaymentType)),
		zap.String("amount", claims.Amount),
	)
	return nil
}

func (s logSink) Event(_ context.Context, webhookType domain.WebhookType, claims json.RawMessage) error {
	s.logger.Info("webhook event",
		zap.String("webhook_type", string(webhookType)),
		zap.Int("claims_bytes", len(claims)),
	)
	return nil
}

func serveCmd(a *app) *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the webhook receiver",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("port") {
				port = a.cfg.Port
			}
			return a.serve(cmd.Context(), port)
		},
	}
	cmd.Flags().IntVar(&port, "port", 8080, "listen port (default from PORT)")
	return cmd
}

func (a *app) serve(ctx context.Context, port int) error {
	// --- Replay guard ---
	replay := cache.NewReplayGuard(a.cfg.ReplayTTL)
	defer replay.Close()

	// --- Bulkhead ---
	bulkhead := resilience.NewBulkhead(a.cfg.MaxConcurrency)

	// Fetch the signing key up front; a failure is retried on first delivery.
	if _, err := a.client.SigningKey(ctx); err != nil {
		a.logger.Warn("signing key not available yet", zap.Error(err))
	}

	// --- Router ---
	router := handler.NewRouter(a.client, logSink{logger: a.logger}, replay, bulkhead, a.metrics, a.logger)

	// --- Server ---
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// --- Graceful shutdown ---
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("webhook receiver starting", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("webhook receiver: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info("webhook receiver shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("webhook receiver forced shutdown: %w", err)
	}

	a.logger.Info("webhook receiver stopped")
	return nil
}
