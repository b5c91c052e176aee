// Package client is the typed binding of the Tochka open-banking and
// acquiring API. Every endpoint sends exactly one request through the same
// pipeline: bearer auth, status classification, path-aware decoding.
package client

import (
	"bytes"
	"context"
	"crypto/rsa"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"sync"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/boddenberg/tochka-go/internal/domain"
	"github.com/boddenberg/tochka-go/internal/infra/decode"
	"github.com/boddenberg/tochka-go/internal/infra/observability"
)

var tracer = otel.Tracer("client")

const (
	// DefaultJWKURL serves the key webhook tokens are signed with.
	DefaultJWKURL = "https://enter.tochka.com/doc/openapi/static/keys/public"
	// DefaultUserAgent identifies the client to the API.
	DefaultUserAgent = "tochka-go/1.0"
)

// Config is fixed for the lifetime of a Client.
type Config struct {
	Environment domain.Environment
	// BaseURL overrides the environment base, e.g. for a proxy.
	BaseURL string
	Token   string
	// ClientID is the application id; webhook endpoints require it.
	ClientID string
	// CustomerCode skips lazy resolution when set.
	CustomerCode string
	JWKURL       string
	// SigningKey preloads the webhook key instead of fetching it.
	SigningKey *domain.Jwk
	// Scopes enables the scope policy when non-empty.
	Scopes    []domain.Scope
	UserAgent string
}

// Client talks to the API. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	cfg        Config
	baseURL    string
	granted    mapset.Set[domain.Scope]
	metrics    *observability.Metrics
	logger     *zap.Logger

	// Lazily resolved; written at most once each.
	mu           sync.RWMutex
	customerCode string
	signingKey   *rsa.PublicKey
	group        singleflight.Group
}

// NewHTTPClient returns a transport tuned for the API: overall and connect
// timeouts, 90s idle connections, 20 idle connections per host.
func NewHTTPClient(timeout, connectTimeout time.Duration) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = (&net.Dialer{
		Timeout:   connectTimeout,
		KeepAlive: 30 * time.Second,
	}).DialContext
	transport.IdleConnTimeout = 90 * time.Second
	transport.MaxIdleConnsPerHost = 20

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}

// NewClient creates a Client. A nil httpClient gets NewHTTPClient(20s, 5s).
func NewClient(httpClient *http.Client, cfg Config, metrics *observability.Metrics, logger *zap.Logger) (*Client, error) {
	if cfg.Token == "" {
		return nil, &domain.ErrConfig{Message: "bearer token is empty"}
	}
	if httpClient == nil {
		httpClient = NewHTTPClient(20*time.Second, 5*time.Second)
	}
	if metrics == nil {
		metrics = observability.NewMetrics()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.JWKURL == "" {
		cfg.JWKURL = DefaultJWKURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = cfg.Environment.BaseURL()
	}

	c := &Client{
		httpClient:   httpClient,
		cfg:          cfg,
		baseURL:      baseURL,
		metrics:      metrics,
		logger:       logger,
		customerCode: cfg.CustomerCode,
	}

	if len(cfg.Scopes) > 0 {
		c.granted = mapset.NewSet(cfg.Scopes...)
	}

	if cfg.SigningKey != nil {
		key, err := cfg.SigningKey.RSAPublicKey()
		if err != nil {
			return nil, &domain.ErrConfig{Message: fmt.Sprintf("signing key: %v", err)}
		}
		c.signingKey = key
	}

	return c, nil
}

// Environment reports the environment requests go to.
func (c *Client) Environment() domain.Environment {
	return c.cfg.Environment
}

// ClientID reports the configured application id.
func (c *Client) ClientID() string {
	return c.cfg.ClientID
}

// newRequest prepares an unsent request. A non-nil body is sent as JSON
// exactly as given; callers wrap it with domain.Wrap where needed.
func (c *Client) newRequest(ctx context.Context, method string, service Service, path string, query url.Values, body any) (*http.Request, error) {
	target := c.URL(service, V1_0, path)
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, &domain.ErrConfig{Message: fmt.Sprintf("build request: %v", stripURL(err))}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// send runs one request through the pipeline and decodes a 2xx body into T.
func send[T any](c *Client, op string, req *http.Request) (*T, error) {
	ctx, span := tracer.Start(req.Context(), "Client."+op)
	defer span.End()
	span.SetAttributes(
		attribute.String("tochka.operation", op),
		attribute.String("http.method", req.Method),
		attribute.String("http.path", req.URL.Path),
	)

	start := time.Now()
	out, err := roundTrip[T](c, op, req.WithContext(ctx))
	kind := domain.KindOf(err)
	c.metrics.RecordRequest(op, string(kind), time.Since(start))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(kind))
		return nil, err
	}
	return out, nil
}

func roundTrip[T any](c *Client, op string, req *http.Request) (*T, error) {
	body, status, err := c.do(op, req)
	if err != nil {
		return nil, err
	}

	var out T
	if err := decode.JSON(body, &out); err != nil {
		var decodeErr *domain.ErrDeserialize
		if errors.As(err, &decodeErr) {
			c.logger.Error("tochka: response does not match schema",
				zap.String("operation", op),
				zap.String("method", req.Method),
				zap.String("path", req.URL.Path),
				zap.Int("status", status),
				zap.String("field_path", decodeErr.Path),
				zap.String("reason", decodeErr.Message),
			)
		}
		return nil, err
	}
	return &out, nil
}

// do attaches auth, performs the call, reads the whole body and classifies
// the status. Only 2xx bodies are returned; a failed read is Timeout or Network.
func (c *Client) do(op string, req *http.Request) ([]byte, int, error) {
	req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		classified := classifyTransportError(err)
		c.logger.Error("tochka: request failed",
			zap.String("operation", op),
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.String("error_kind", string(domain.KindOf(classified))),
			zap.Error(classified),
		)
		return nil, 0, classified
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		// A truncated body is a transport failure, not a schema mismatch.
		classified := classifyTransportError(err)
		c.logger.Error("tochka: failed to read response body",
			zap.String("operation", op),
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.Int("status", resp.StatusCode),
			zap.String("error_kind", string(domain.KindOf(classified))),
			zap.Error(classified),
		)
		return nil, resp.StatusCode, classified
	}

	if err := classifyStatus(resp.StatusCode, body); err != nil {
		c.logger.Warn("tochka: non-2xx response",
			zap.String("operation", op),
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.Int("status", resp.StatusCode),
			zap.String("error_kind", string(domain.KindOf(err))),
			zap.String("body", string(body)),
		)
		return nil, resp.StatusCode, err
	}

	c.logger.Debug("tochka: request OK",
		zap.String("operation", op),
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
		zap.Int("status", resp.StatusCode),
	)
	return body, resp.StatusCode, nil
}

// classifyStatus maps a status code to the error taxonomy. Specific codes
// win over the 5xx and generic non-2xx classes.
func classifyStatus(status int, body []byte) error {
	switch {
	case status == http.StatusUnauthorized:
		return &domain.ErrUnauthorized{}
	case status == http.StatusForbidden:
		return &domain.ErrForbidden{}
	case status == http.StatusNotFound:
		return &domain.ErrNotFound{}
	case status == http.StatusTooManyRequests:
		return &domain.ErrTooManyRequests{}
	case status >= 500 && status <= 599:
		return &domain.ErrServer{Status: status, Body: string(body)}
	case status < 200 || status > 299:
		return &domain.ErrAPI{Status: status, Body: string(body)}
	default:
		return nil
	}
}

// classifyTransportError turns a failed Do into Timeout or Network. The URL
// is dropped from the message so query strings never reach logs.
func classifyTransportError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return &domain.ErrTimeout{}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &domain.ErrTimeout{}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &domain.ErrTimeout{}
	}

	inner := stripURL(err)
	return &domain.ErrNetwork{Message: inner.Error(), Err: inner}
}

func stripURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}

// sharedFetchTimeout bounds a lazy resolution that no single caller owns.
const sharedFetchTimeout = 30 * time.Second

// shared runs fn once for all concurrent callers of key. fn is detached from
// the cancellation of whichever caller started it; each caller stops waiting
// when its own ctx is done, and the fetch still completes for the others.
func (c *Client) shared(ctx context.Context, key string, fn func(context.Context) (any, error)) (any, error) {
	ch := c.group.DoChan(key, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedFetchTimeout)
		defer cancel()
		return fn(fetchCtx)
	})

	select {
	case res := <-ch:
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, classifyTransportError(ctx.Err())
	}
}

// call checks the scope policy, builds the request and sends it.
func call[T any](ctx context.Context, c *Client, op, method string, service Service, path string, query url.Values, body any) (*T, error) {
	if err := c.checkScope(op); err != nil {
		return nil, err
	}
	req, err := c.newRequest(ctx, method, service, path, query, body)
	if err != nil {
		return nil, err
	}
	return send[T](c, op, req)
}
