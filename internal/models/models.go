package models

import (
	"errors"
	"strings"
	"time"
)

// ProviderName identifies a code generation backend
type ProviderName string

const (
	ProviderClaude   ProviderName = "claude"
	ProviderMistral  ProviderName = "mistral"
	ProviderGemini   ProviderName = "gemini"
	ProviderFallback ProviderName = "fallback"
)

// DefaultProvider is used when a request does not name one
const DefaultProvider = ProviderClaude

// Version is reported by every health endpoint
const Version = "2.0.0"

// Prompt modes echoed back to the UI
const (
	PromptModeRaw      = "raw"
	PromptModeEnhanced = "enhanced"
)

// ErrInvalidInput is returned when a prompt is missing or blank
var ErrInvalidInput = errors.New("prompt is required")

// GenerationRequest is a single request for generated HTML
type GenerationRequest struct {
	Prompt   string
	Provider ProviderName
	// Image is either a data URL (data:image/png;base64,...) or bare base64
	Image      string
	PromptMode string
	IsEnhanced bool
}

// GenerationResult holds the cleaned HTML and the provider that produced it
type GenerationResult struct {
	Code         string       `json:"code"`
	ProviderUsed ProviderName `json:"model"`
	Timestamp    time.Time    `json:"timestamp"`
}

// EnhancementRequest asks for a richer version of a prompt
type EnhancementRequest struct {
	Prompt       string
	IncludeImage bool
}

// EnhancementResult is the outcome of prompt enhancement.
// Method is the provider name on success or "fallback".
type EnhancementResult struct {
	OriginalPrompt string    `json:"originalPrompt"`
	EnhancedPrompt string    `json:"enhancedPrompt"`
	Method         string    `json:"method"`
	Attempts       int       `json:"attempts"`
	Timestamp      time.Time `json:"timestamp"`
}

// ValidatePrompt rejects prompts that are empty after trimming
func ValidatePrompt(prompt string) error {
	if strings.TrimSpace(prompt) == "" {
		return ErrInvalidInput
	}
	return nil
}

// PromptPreview shortens a prompt for log output
func PromptPreview(prompt string) string {
	const max = 100
	r := []rune(prompt)
	if len(r) <= max {
		return prompt
	}
	return string(r[:max]) + "..."
}

// Features reports which optional integrations have credentials
type Features struct {
	Claude  bool `json:"claude"`
	Mistral bool `json:"mistral"`
	Gemini  bool `json:"gemini"`
	Netlify bool `json:"netlify"`
}

// NewFeatures builds Features from a provider availability check
func NewFeatures(enabled func(ProviderName) bool, netlify bool) Features {
	return Features{
		Claude:  enabled(ProviderClaude),
		Mistral: enabled(ProviderMistral),
		Gemini:  enabled(ProviderGemini),
		Netlify: netlify,
	}
}
