package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/frontdesigner/api/internal/eventbus"
	"github.com/frontdesigner/api/internal/middleware"
	"github.com/frontdesigner/api/internal/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Generator produces HTML for a prompt
type Generator interface {
	Generate(ctx context.Context, req models.GenerationRequest) (*models.GenerationResult, error)
}

// PromptEnhancer rewrites a prompt into a more detailed one
type PromptEnhancer interface {
	Enhance(ctx context.Context, req models.EnhancementRequest) (*models.EnhancementResult, error)
}

// GenerationHandler handles code generation and prompt enhancement
type GenerationHandler struct {
	generator Generator
	enhancer  PromptEnhancer
	events    eventbus.Publisher
	logger    *zap.Logger
}

// NewGenerationHandler creates a new generation handler
func NewGenerationHandler(generator Generator, enhancer PromptEnhancer, events eventbus.Publisher, logger *zap.Logger) *GenerationHandler {
	if events == nil {
		events = eventbus.NopPublisher{}
	}
	return &GenerationHandler{
		generator: generator,
		enhancer:  enhancer,
		events:    events,
		logger:    logger,
	}
}

// GenerateRequest is the body of POST /api/generate
type GenerateRequest struct {
	Prompt     string `json:"prompt"`
	Model      string `json:"model"`
	Image      string `json:"image"`
	PromptMode string `json:"promptMode"`
	IsEnhanced bool   `json:"isEnhanced"`
}

// GenerateResponse is returned by POST /api/generate
type GenerateResponse struct {
	Success    bool      `json:"success"`
	Code       string    `json:"code"`
	Model      string    `json:"model"`
	PromptMode string    `json:"promptMode"`
	IsEnhanced bool      `json:"isEnhanced"`
	Timestamp  time.Time `json:"timestamp"`
}

// EnhanceRequest is the body of POST /api/enhance-prompt
type EnhanceRequest struct {
	Prompt       string `json:"prompt"`
	IncludeImage bool   `json:"includeImage"`
}

// EnhanceResponse is returned by POST /api/enhance-prompt
type EnhanceResponse struct {
	Success        bool      `json:"success"`
	OriginalPrompt string    `json:"originalPrompt"`
	EnhancedPrompt string    `json:"enhancedPrompt"`
	Method         string    `json:"method"`
	Timestamp      time.Time `json:"timestamp"`
}

// Generate godoc
// @Summary Generate a web page from a prompt
// @Tags generation
// @Accept json
// @Produce json
// @Param request body GenerateRequest true "Prompt, model and optional image"
// @Success 200 {object} GenerateResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /api/generate [post]
func (h *GenerationHandler) Generate(c *gin.Context) {
	var req GenerateRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.PromptMode == "" {
		req.PromptMode = models.PromptModeRaw
	}

	h.logger.Info("generating code",
		zap.String("model", req.Model),
		zap.String("prompt_mode", req.PromptMode),
		zap.String("prompt", models.PromptPreview(req.Prompt)),
		zap.Bool("has_image", req.Image != ""),
	)

	result, err := h.generator.Generate(c.Request.Context(), models.GenerationRequest{
		Prompt:     req.Prompt,
		Provider:   models.ProviderName(req.Model),
		Image:      req.Image,
		PromptMode: req.PromptMode,
		IsEnhanced: req.IsEnhanced,
	})
	if errors.Is(err, models.ErrInvalidInput) {
		middleware.BadRequest(c, "Prompt is required")
		return
	}
	if err != nil {
		h.logger.Error("code generation failed", zap.Error(err))
		middleware.InternalError(c, "Failed to generate code", err.Error())
		return
	}

	h.publish(c.Request.Context(), eventbus.SubjectGenerationCompleted, eventbus.GenerationCompleted{
		RequestedProvider: req.Model,
		ProviderUsed:      string(result.ProviderUsed),
		PromptLength:      len(req.Prompt),
		CodeLength:        len(result.Code),
		HasImage:          req.Image != "",
		IsEnhanced:        req.IsEnhanced,
	})

	c.JSON(http.StatusOK, GenerateResponse{
		Success:    true,
		Code:       result.Code,
		Model:      string(result.ProviderUsed),
		PromptMode: req.PromptMode,
		IsEnhanced: req.IsEnhanced,
		Timestamp:  result.Timestamp,
	})
}

// EnhancePrompt godoc
// @Summary Rewrite a prompt with more design detail
// @Tags generation
// @Accept json
// @Produce json
// @Param request body EnhanceRequest true "Prompt to enhance"
// @Success 200 {object} EnhanceResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /api/enhance-prompt [post]
func (h *GenerationHandler) EnhancePrompt(c *gin.Context) {
	var req EnhanceRequest
	if !bindJSON(c, &req) {
		return
	}

	h.logger.Info("enhancing prompt", zap.String("prompt", models.PromptPreview(req.Prompt)))

	result, err := h.enhancer.Enhance(c.Request.Context(), models.EnhancementRequest{
		Prompt:       req.Prompt,
		IncludeImage: req.IncludeImage,
	})
	if errors.Is(err, models.ErrInvalidInput) {
		middleware.BadRequest(c, "Prompt is required")
		return
	}
	if err != nil {
		h.logger.Error("prompt enhancement failed", zap.Error(err))
		middleware.InternalError(c, "Failed to enhance prompt", err.Error())
		return
	}

	h.publish(c.Request.Context(), eventbus.SubjectPromptEnhanced, eventbus.PromptEnhanced{
		Method:       result.Method,
		Attempts:     result.Attempts,
		PromptLength: len(req.Prompt),
		IncludeImage: req.IncludeImage,
	})

	c.JSON(http.StatusOK, EnhanceResponse{
		Success:        true,
		OriginalPrompt: result.OriginalPrompt,
		EnhancedPrompt: result.EnhancedPrompt,
		Method:         result.Method,
		Timestamp:      result.Timestamp,
	})
}

func (h *GenerationHandler) publish(ctx context.Context, subject string, payload any) {
	if err := h.events.Publish(ctx, subject, payload); err != nil {
		h.logger.Warn("failed to publish event", zap.String("subject", subject), zap.Error(err))
	}
}
