package generation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/frontdesigner/api/internal/fallback"
	"github.com/frontdesigner/api/internal/models"
	"github.com/frontdesigner/api/internal/provider"
	"github.com/frontdesigner/api/internal/resilience"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	defaultTimeout  = 30 * time.Second
	maxResponseSize = 10 * 1024 * 1024
	maxErrorBody    = 512
)

var tracer = otel.Tracer("frontdesigner-api/generation")

// Config controls outbound provider calls
type Config struct {
	Timeout                 time.Duration
	BreakerFailureThreshold int
	BreakerOpenTimeout      time.Duration
	// HTTPClient is used for provider calls; nil means a default client
	HTTPClient *http.Client
}

// Dispatcher routes a generation request to the requested provider and
// falls back to a static template whenever that call cannot succeed
type Dispatcher struct {
	registry *provider.Registry
	client   *http.Client
	breakers map[models.ProviderName]*resilience.Breaker
	timeout  time.Duration
	logger   *zap.Logger
}

// NewDispatcher creates a dispatcher with one circuit breaker per configured provider
func NewDispatcher(registry *provider.Registry, cfg Config, logger *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		registry: registry,
		client:   cfg.HTTPClient,
		breakers: make(map[models.ProviderName]*resilience.Breaker),
		timeout:  cfg.Timeout,
		logger:   logger,
	}
	if d.client == nil {
		d.client = &http.Client{}
	}
	if d.timeout <= 0 {
		d.timeout = defaultTimeout
	}

	for _, name := range registry.Names() {
		b := resilience.NewBreakerWithConfig(string(name), cfg.BreakerFailureThreshold, 2, cfg.BreakerOpenTimeout)
		b.OnStateChange = d.onBreakerChange
		d.breakers[name] = b
	}
	return d
}

// Generate produces HTML for the request. The only error returned is
// models.ErrInvalidInput; every provider failure degrades to the fallback page.
func (d *Dispatcher) Generate(ctx context.Context, req models.GenerationRequest) (*models.GenerationResult, error) {
	if err := models.ValidatePrompt(req.Prompt); err != nil {
		return nil, err
	}

	requested := req.Provider
	if requested == "" {
		requested = models.DefaultProvider
	}

	ctx, span := tracer.Start(ctx, "Dispatcher.Generate", trace.WithAttributes(
		attribute.String("provider.requested", string(requested)),
		attribute.Int("prompt.length", len(req.Prompt)),
		attribute.Bool("request.has_image", req.Image != ""),
	))
	defer span.End()

	used := requested
	var code string
	if requested == models.ProviderFallback {
		code = fallback.Code(req.Prompt)
	} else {
		text, err := d.callProvider(ctx, requested, req.Prompt, req.Image)
		if err != nil {
			fields := []zap.Field{
				zap.String("provider", string(requested)),
				zap.String("prompt", models.PromptPreview(req.Prompt)),
				zap.Error(err),
			}
			if errors.Is(err, provider.ErrUnavailable) {
				d.logger.Info("provider unavailable, using fallback", fields...)
			} else {
				span.RecordError(err)
				span.SetStatus(codes.Error, "provider call failed")
				d.logger.Warn("provider call failed, using fallback", fields...)
			}
			text = fallback.Code(req.Prompt)
			used = models.ProviderFallback
		}
		code = text
	}

	span.SetAttributes(attribute.String("provider.used", string(used)))
	generationRequestsTotal.WithLabelValues(string(requested), string(used)).Inc()

	return &models.GenerationResult{
		Code:         CleanCode(code),
		ProviderUsed: used,
		Timestamp:    time.Now().UTC(),
	}, nil
}

// Enabled reports whether a provider has credentials configured
func (d *Dispatcher) Enabled(name models.ProviderName) bool {
	return d.registry.Enabled(name)
}

func (d *Dispatcher) callProvider(ctx context.Context, name models.ProviderName, prompt, rawImage string) (string, error) {
	p, err := d.registry.Lookup(name)
	if err != nil {
		return "", err
	}

	image, err := provider.ImageFor(p, rawImage)
	if err != nil {
		return "", err
	}

	breaker := d.breakers[name]
	if breaker != nil && !breaker.Allow() {
		return "", fmt.Errorf("circuit open: %w", &provider.UnavailableError{Provider: name})
	}

	start := time.Now()
	text, err := d.do(ctx, p, prompt, image)
	outcome := "success"
	switch {
	case err != nil && ctx.Err() != nil:
		// the caller gave up, which says nothing about the provider
		outcome = "canceled"
		if breaker != nil {
			breaker.Release()
		}
	case err != nil:
		outcome = "failure"
		if breaker != nil {
			breaker.RecordFailure()
		}
	case breaker != nil:
		breaker.RecordSuccess()
	}
	providerCallDuration.WithLabelValues(string(name), outcome).Observe(time.Since(start).Seconds())
	return text, err
}

func (d *Dispatcher) do(ctx context.Context, p provider.Provider, prompt string, image *provider.Image) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	ctx, span := tracer.Start(ctx, "provider.call", trace.WithAttributes(
		attribute.String("provider", string(p.Name())),
	))
	defer span.End()

	httpReq, err := p.BuildRequest(ctx, prompt, image)
	if err != nil {
		return "", fmt.Errorf("build %s request: %w", p.Name(), err)
	}

	resp, err := d.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%s request failed: %w", p.Name(), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", fmt.Errorf("read %s response: %w", p.Name(), err)
	}
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := string(body)
		if len(msg) > maxErrorBody {
			msg = msg[:maxErrorBody]
		}
		return "", &provider.StatusError{Provider: p.Name(), StatusCode: resp.StatusCode, Body: msg}
	}

	text, err := p.ParseResponse(body)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(CleanCode(text)) == "" {
		return "", provider.ErrEmptyResponse
	}
	return text, nil
}

func (d *Dispatcher) onBreakerChange(name string, from, to resilience.State) {
	breakerTransitionsTotal.WithLabelValues(name, to.String()).Inc()
	d.logger.Warn("provider circuit breaker state changed",
		zap.String("provider", name),
		zap.String("from", from.String()),
		zap.String("to", to.String()),
	)
}
