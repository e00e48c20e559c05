package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/frontdesigner/api/internal/models"
	"github.com/sashabaranov/go-openai"
)

const (
	defaultMistralBaseURL = "https://api.mistral.ai/v1"
	defaultMistralModel   = "mistral-large-latest"
	mistralImagePrompt    = "Create a web interface based on the provided image and this description: "
	generationTemperature = 0.7
)

// Mistral talks to the OpenAI compatible chat completions API.
// Mistral has no image input here; an attached image only changes the wording.
type Mistral struct {
	apiKey  string
	model   string
	baseURL string
}

// NewMistral creates a Mistral provider
func NewMistral(s Settings) *Mistral {
	m := &Mistral{apiKey: s.APIKey, model: s.Model, baseURL: s.BaseURL}
	if m.model == "" {
		m.model = defaultMistralModel
	}
	if m.baseURL == "" {
		m.baseURL = defaultMistralBaseURL
	}
	m.baseURL = strings.TrimRight(m.baseURL, "/")
	return m
}

func (m *Mistral) Name() models.ProviderName { return models.ProviderMistral }

func (m *Mistral) BuildRequest(ctx context.Context, prompt string, image *Image) (*http.Request, error) {
	body, err := json.Marshal(openai.ChatCompletionRequest{
		Model: m.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: withImagePrompt(prompt, image, mistralImagePrompt)},
		},
		MaxTokens:   maxOutputTokens,
		Temperature: generationTemperature,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	return req, nil
}

func (m *Mistral) ParseResponse(body []byte) (string, error) {
	var resp openai.ChatCompletionResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", ErrEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}
