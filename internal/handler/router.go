package handler

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/boddenberg/tochka-go/internal/domain"
	"github.com/boddenberg/tochka-go/internal/infra/decode"
	"github.com/boddenberg/tochka-go/internal/infra/observability"
	"github.com/boddenberg/tochka-go/internal/infra/resilience"
	"github.com/boddenberg/tochka-go/internal/port"
)

var tracer = otel.Tracer("handler")

// maxTokenBytes bounds a webhook body; real tokens are a few KB.
const maxTokenBytes = 1 << 20

// NewRouter creates the webhook receiver with operational routes.
// replay and bulkhead may be nil.
func NewRouter(verifier port.TokenVerifier, sink port.WebhookSink, replay port.ReplayGuard, bulkhead *resilience.Bulkhead, metrics *observability.Metrics, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// --- Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.ZapLoggerMiddleware(logger))
	r.Use(observability.TracingMiddleware)
	r.Use(middleware.Recoverer)

	// --- Operational endpoints ---
	r.Get("/healthz", healthzHandler())
	r.Get("/readyz", readyzHandler(verifier, sink))
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	// --- Webhooks ---
	r.Post("/webhooks", webhookHandler(verifier, sink, replay, bulkhead, metrics, logger))

	return r
}

func healthzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, statusResponse{Status: "healthy"})
	}
}

func readyzHandler(verifier port.TokenVerifier, sink port.WebhookSink) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if verifier == nil || sink == nil {
			writeJSON(w, http.StatusServiceUnavailable, statusResponse{Status: "not ready"})
			return
		}
		writeJSON(w, http.StatusOK, statusResponse{Status: "ready"})
	}
}

// webhookEnvelope is the part of every webhook payload used for routing.
type webhookEnvelope struct {
	WebhookType domain.WebhookType `json:"webhookType"`
}

// webhookHandler receives a signed JWT as the raw request body, verifies it
// and hands the event to the sink.
// 200: accepted or duplicate; 400: bad token; 500: sink failed; 503: overloaded.
func webhookHandler(verifier port.TokenVerifier, sink port.WebhookSink, replay port.ReplayGuard, bulkhead *resilience.Bulkhead, metrics *observability.Metrics, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "Webhook.Receive")
		defer span.End()

		if verifier == nil || sink == nil {
			writeError(w, http.StatusServiceUnavailable, "webhook receiver not configured")
			return
		}

		if bulkhead != nil {
			if err := bulkhead.Acquire(ctx); err != nil {
				writeError(w, http.StatusServiceUnavailable, "too many concurrent deliveries")
				return
			}
			defer bulkhead.Release()
		}

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxTokenBytes))
		if err != nil {
			metrics.IncrWebhook("unknown", "invalid")
			writeError(w, http.StatusBadRequest, "unreadable body")
			return
		}
		token := string(bytes.TrimSpace(body))
		if token == "" {
			metrics.IncrWebhook("unknown", "invalid")
			writeError(w, http.StatusBadRequest, "empty body")
			return
		}

		claims, err := verifier.VerifyToken(ctx, token)
		if err != nil {
			metrics.IncrWebhook("unknown", "invalid")
			handleWebhookError(w, err, logger)
			return
		}

		var env webhookEnvelope
		if err := decode.JSON(claims, &env); err != nil {
			metrics.IncrWebhook("unknown", "invalid")
			handleWebhookError(w, &domain.ErrTokenDecode{Err: err}, logger)
			return
		}
		webhookType := string(env.WebhookType)
		span.SetAttributes(attribute.String("webhook.type", webhookType))

		if replay != nil && !replay.First(token) {
			logger.Info("duplicate webhook ignored", zap.String("webhook_type", webhookType))
			metrics.IncrWebhook(webhookType, "duplicate")
			writeJSON(w, http.StatusOK, statusResponse{Status: "duplicate"})
			return
		}

		if err := dispatch(ctx, sink, env.WebhookType, claims); err != nil {
			if replay != nil {
				replay.Forget(token)
			}
			if domain.KindOf(err) == domain.KindTokenDecode {
				metrics.IncrWebhook(webhookType, "invalid")
				handleWebhookError(w, err, logger)
				return
			}
			logger.Error("webhook sink failed", zap.String("webhook_type", webhookType), zap.Error(err))
			metrics.IncrWebhook(webhookType, "sink_error")
			writeError(w, http.StatusInternalServerError, "webhook processing failed")
			return
		}

		logger.Info("webhook processed", zap.String("webhook_type", webhookType))
		metrics.IncrWebhook(webhookType, "ok")
		writeJSON(w, http.StatusOK, statusResponse{Status: "ok"})
	}
}

func dispatch(ctx context.Context, sink port.WebhookSink, webhookType domain.WebhookType, claims []byte) error {
	if webhookType != domain.WebhookAcquiringInternetPayment {
		return sink.Event(ctx, webhookType, claims)
	}

	var payment domain.AcquiringClaims
	if err := decode.JSON(claims, &payment); err != nil {
		return &domain.ErrTokenDecode{Err: err}
	}
	return sink.AcquiringPayment(ctx, payment)
}
