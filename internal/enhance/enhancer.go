package enhance

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/frontdesigner/api/internal/fallback"
	"github.com/frontdesigner/api/internal/models"
	"github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	// MethodFallback marks an enhancement produced without a model
	MethodFallback = "fallback"

	defaultModel      = "mistral-large-latest"
	minEnhancedLength = 50
	enhanceMaxTokens  = 800
	enhanceTemp       = 0.6

	systemMessage = "You are a UI/UX expert. Create detailed prompts for better frontend code generation. Be concise but comprehensive."
)

var (
	// ErrTooShort means the model answered with too little text to be useful
	ErrTooShort = errors.New("enhanced prompt too short")
	// ErrEmptyResponse means the model answered without choices
	ErrEmptyResponse = errors.New("enhancement response had no choices")

	leadInPattern      = regexp.MustCompile(`(?i)^(Enhanced prompt:|Here's the enhanced prompt:|Here is an enhanced version:)\s*`)
	shortLeadInPattern = regexp.MustCompile(`(?i)^Enhanced:\s*`)
)

var tracer = otel.Tracer("frontdesigner-api/enhance")

// Config controls the enhancement model call and its retry policy
type Config struct {
	// Provider is reported as the method on success
	Provider   string
	APIKey     string
	BaseURL    string
	Model      string
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
	HTTPClient *http.Client
}

// Enhancer rewrites prompts through an OpenAI compatible chat endpoint,
// retrying transient failures and degrading to a keyword based rewrite
type Enhancer struct {
	client *openai.Client
	cfg    Config
	logger *zap.Logger
}

// NewEnhancer creates an enhancer. Without an API key it only produces
// fallback enhancements.
func NewEnhancer(cfg Config, logger *zap.Logger) *Enhancer {
	if cfg.Provider == "" {
		cfg.Provider = string(models.ProviderMistral)
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 45 * time.Second
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}

	e := &Enhancer{cfg: cfg, logger: logger}
	if cfg.APIKey == "" {
		return e
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	if cfg.HTTPClient != nil {
		clientCfg.HTTPClient = cfg.HTTPClient
	}
	e.client = openai.NewClientWithConfig(clientCfg)
	return e
}

// Enabled reports whether a model is configured
func (e *Enhancer) Enabled() bool {
	return e.client != nil
}

// Enhance returns an enhanced prompt. The only error is models.ErrInvalidInput.
func (e *Enhancer) Enhance(ctx context.Context, req models.EnhancementRequest) (*models.EnhancementResult, error) {
	if err := models.ValidatePrompt(req.Prompt); err != nil {
		return nil, err
	}

	ctx, span := tracer.Start(ctx, "Enhancer.Enhance", trace.WithAttributes(
		attribute.Int("prompt.length", len(req.Prompt)),
		attribute.Bool("request.include_image", req.IncludeImage),
	))
	defer span.End()

	result := &models.EnhancementResult{OriginalPrompt: req.Prompt}

	if e.Enabled() {
		text, attempts, err := e.enhanceWithRetry(ctx, req)
		result.Attempts = attempts
		if err == nil {
			result.EnhancedPrompt = text
			result.Method = e.cfg.Provider
		} else {
			span.RecordError(err)
			e.logger.Warn("prompt enhancement failed, using fallback",
				zap.String("prompt", models.PromptPreview(req.Prompt)),
				zap.Int("attempts", attempts),
				zap.Error(err),
			)
		}
	}

	if result.Method == "" {
		result.EnhancedPrompt = fallback.Enhancement(req.Prompt, req.IncludeImage)
		result.Method = MethodFallback
	}
	result.Timestamp = time.Now().UTC()

	span.SetAttributes(
		attribute.String("enhance.method", result.Method),
		attribute.Int("enhance.attempts", result.Attempts),
	)
	enhancementsTotal.WithLabelValues(result.Method).Inc()
	return result, nil
}

func (e *Enhancer) enhanceWithRetry(ctx context.Context, req models.EnhancementRequest) (string, int, error) {
	attempts := 0
	operation := func() (string, error) {
		attempts++
		text, err := e.attempt(ctx, req)
		if err == nil {
			enhancementAttemptsTotal.WithLabelValues("success").Inc()
			return text, nil
		}
		if IsTransient(err) {
			enhancementAttemptsTotal.WithLabelValues("transient").Inc()
			return "", err
		}
		enhancementAttemptsTotal.WithLabelValues("permanent").Inc()
		return "", backoff.Permanent(err)
	}

	text, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewConstantBackOff(e.cfg.RetryDelay)),
		backoff.WithMaxTries(uint(e.cfg.MaxRetries+1)),
		backoff.WithNotify(func(err error, next time.Duration) {
			e.logger.Info("retrying prompt enhancement",
				zap.Int("attempt", attempts),
				zap.Int("max_retries", e.cfg.MaxRetries),
				zap.Duration("delay", next),
				zap.Error(err),
			)
		}),
	)
	return text, attempts, err
}

func (e *Enhancer) attempt(ctx context.Context, req models.EnhancementRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, e.cfg.Timeout)
	defer cancel()

	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: e.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemMessage},
			{Role: openai.ChatMessageRoleUser, Content: instruction(req.Prompt, req.IncludeImage)},
		},
		MaxTokens:   enhanceMaxTokens,
		Temperature: enhanceTemp,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}

	cleaned := CleanEnhancement(resp.Choices[0].Message.Content)
	if n := len([]rune(cleaned)); n < minEnhancedLength {
		return "", fmt.Errorf("%w: %d characters", ErrTooShort, n)
	}
	return cleaned, nil
}

// CleanEnhancement strips conversational lead-ins the model tends to add
func CleanEnhancement(text string) string {
	text = strings.TrimSpace(text)
	text = leadInPattern.ReplaceAllString(text, "")
	text = shortLeadInPattern.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// IsTransient reports whether a failed attempt is worth retrying:
// timeouts and 5xx answers
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode >= 500
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode >= 500
	}
	return false
}

func instruction(prompt string, includeImage bool) string {
	imageNote := ""
	if includeImage {
		imageNote = "Note: User provided an image reference."
	}
	return fmt.Sprintf(`You are an expert UI/UX designer and frontend developer. Enhance this prompt for better code generation:

Original: "%s"

Add specific details for:
- Design elements (colors, layout, typography)
- Interactive features and animations
- Responsive design requirements
- Accessibility features
- Modern UI patterns

%s

Return an enhanced, detailed prompt:`, prompt, imageNote)
}
