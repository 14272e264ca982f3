package revalidate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/avast/retry-go/v4"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"sitecms/internal/config"
)

// Cache tags understood by the frontend.
const (
	TagServices = "services"
	TagPackages = "packages"
	TagProjects = "projects"
	TagReviews  = "reviews"
	TagGallery  = "gallery"
	TagStats    = "stats"
	TagFAQs     = "faqs"
	TagAbout    = "about"
	TagSettings = "settings"
	TagSEO      = "seo"
)

// SecretHeader carries the shared secret on every webhook call.
const SecretHeader = "X-Revalidate-Secret"

// Revalidator invalidates cached pages on the public site.
type Revalidator interface {
	Revalidate(ctx context.Context, tags ...string) error
}

// New returns a webhook client, or a no-op when no URL is configured.
func New(cfg config.RevalidateConfig, lggr *zap.Logger) Revalidator {
	if cfg.URL == "" {
		return Noop{}
	}
	return NewClient(cfg, lggr)
}

// Noop ignores every call.
type Noop struct{}

// Revalidate does nothing.
func (Noop) Revalidate(context.Context, ...string) error { return nil }

// Client posts tag lists to the frontend revalidation endpoint.
type Client struct {
	url      string
	secret   string
	client   *http.Client
	attempts uint
	delay    time.Duration
	lggr     *zap.Logger
}

// NewClient creates a webhook client that retries failed calls three times.
func NewClient(cfg config.RevalidateConfig, lggr *zap.Logger) *Client {
	timeout := time.Duration(cfg.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		url:    cfg.URL,
		secret: cfg.Secret,
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		attempts: 3,
		delay:    200 * time.Millisecond,
		lggr:     lggr.Named("revalidate"),
	}
}

type payload struct {
	Tags []string `json:"tags"`
}

// Revalidate sends tags to the webhook. 4xx responses are not retried.
func (c *Client) Revalidate(ctx context.Context, tags ...string) error {
	if len(tags) == 0 {
		return nil
	}
	body, err := json.Marshal(payload{Tags: tags})
	if err != nil {
		return fmt.Errorf("encode revalidate payload: %w", err)
	}

	// One span covers every attempt; otelhttp adds a child per request.
	ctx, span := otel.Tracer("sitecms/revalidate").Start(ctx, "revalidate",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.StringSlice("revalidate.tags", tags)),
	)
	defer span.End()

	err = retry.Do(func() error {
		return c.post(ctx, body)
	},
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.Delay(c.delay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			c.lggr.Debug("revalidate_retry", zap.Uint("attempt", n+1), zap.Strings("tags", tags), zap.Error(err))
		}),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "revalidate failed")
	}
	return err
}

func (c *Client) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return retry.Unrecoverable(fmt.Errorf("build revalidate request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	if c.secret != "" {
		req.Header.Set(SecretHeader, c.secret)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("revalidate request: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return retry.Unrecoverable(fmt.Errorf("revalidate rejected: status %d", resp.StatusCode))
	default:
		return fmt.Errorf("revalidate failed: status %d", resp.StatusCode)
	}
}
