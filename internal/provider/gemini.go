package provider

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/frontdesigner/api/internal/models"
	"google.golang.org/genai"
)

const (
	defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultGeminiModel   = "gemini-2.5-pro"
	geminiTextPrompt     = "\n\nUser Request: "
	geminiImagePrompt    = "\n\nCreate a web interface based on the provided image and this description: "
	geminiMaxTokens      = 4096
)

var geminiSafetyCategories = []genai.HarmCategory{
	genai.HarmCategoryHarassment,
	genai.HarmCategoryHateSpeech,
	genai.HarmCategorySexuallyExplicit,
	genai.HarmCategoryDangerousContent,
}

// geminiRequest is the generateContent REST body
type geminiRequest struct {
	Contents         []*genai.Content        `json:"contents"`
	GenerationConfig *genai.GenerationConfig `json:"generationConfig,omitempty"`
	SafetySettings   []*genai.SafetySetting  `json:"safetySettings,omitempty"`
}

// Gemini talks to the Google generateContent API
type Gemini struct {
	apiKey  string
	model   string
	baseURL string
}

// NewGemini creates a Gemini provider
func NewGemini(s Settings) *Gemini {
	g := &Gemini{apiKey: s.APIKey, model: s.Model, baseURL: s.BaseURL}
	if g.model == "" {
		g.model = defaultGeminiModel
	}
	if g.baseURL == "" {
		g.baseURL = defaultGeminiBaseURL
	}
	g.baseURL = strings.TrimRight(g.baseURL, "/")
	return g
}

func (g *Gemini) Name() models.ProviderName { return models.ProviderGemini }

func (g *Gemini) ReadsImages() bool { return true }

func (g *Gemini) BuildRequest(ctx context.Context, prompt string, image *Image) (*http.Request, error) {
	parts := []*genai.Part{genai.NewPartFromText(SystemPrompt + geminiTextPrompt + prompt)}
	if image != nil {
		data, err := base64.StdEncoding.DecodeString(image.Data)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
		}
		parts = []*genai.Part{
			genai.NewPartFromText(SystemPrompt + geminiImagePrompt + prompt),
			{InlineData: &genai.Blob{MIMEType: image.MIMEType, Data: data}},
		}
	}

	safety := make([]*genai.SafetySetting, 0, len(geminiSafetyCategories))
	for _, category := range geminiSafetyCategories {
		safety = append(safety, &genai.SafetySetting{
			Category:  category,
			Threshold: genai.HarmBlockThresholdBlockMediumAndAbove,
		})
	}

	temperature, topK, topP := float32(generationTemperature), float32(40), float32(0.95)
	body, err := json.Marshal(geminiRequest{
		Contents: []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)},
		GenerationConfig: &genai.GenerationConfig{
			Temperature:     &temperature,
			TopK:            &topK,
			TopP:            &topP,
			MaxOutputTokens: geminiMaxTokens,
		},
		SafetySettings: safety,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", g.baseURL, g.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)
	return req, nil
}

func (g *Gemini) ParseResponse(body []byte) (string, error) {
	var resp genai.GenerateContentResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil || resp.Candidates[0].Content == nil {
		return "", ErrEmptyResponse
	}
	parts := resp.Candidates[0].Content.Parts
	texts := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != nil {
			texts = append(texts, part.Text)
		}
	}
	text := strings.Join(texts, "\n")
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
