package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/frontdesigner/api/internal/models"
)

const (
	defaultClaudeBaseURL = "https://api.anthropic.com"
	defaultClaudeModel   = "claude-3-sonnet-20240229"
	anthropicVersion     = "2023-06-01"
	claudeImagePrompt    = "Create a web interface based on this image and description: "
)

type claudeRequest struct {
	Model     string          `json:"model"`
	MaxTokens int             `json:"max_tokens"`
	System    string          `json:"system"`
	Messages  []claudeMessage `json:"messages"`
}

type claudeMessage struct {
	Role    string          `json:"role"`
	Content []claudeContent `json:"content"`
}

type claudeContent struct {
	Type   string             `json:"type"`
	Text   string             `json:"text,omitempty"`
	Source *claudeImageSource `json:"source,omitempty"`
}

type claudeImageSource struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

type claudeResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// Claude talks to the Anthropic Messages API
type Claude struct {
	apiKey  string
	model   string
	baseURL string
}

// NewClaude creates a Claude provider
func NewClaude(s Settings) *Claude {
	c := &Claude{apiKey: s.APIKey, model: s.Model, baseURL: s.BaseURL}
	if c.model == "" {
		c.model = defaultClaudeModel
	}
	if c.baseURL == "" {
		c.baseURL = defaultClaudeBaseURL
	}
	c.baseURL = strings.TrimRight(c.baseURL, "/")
	return c
}

func (c *Claude) Name() models.ProviderName { return models.ProviderClaude }

func (c *Claude) ReadsImages() bool { return true }

func (c *Claude) BuildRequest(ctx context.Context, prompt string, image *Image) (*http.Request, error) {
	content := make([]claudeContent, 0, 2)
	if image != nil {
		content = append(content, claudeContent{
			Type: "image",
			Source: &claudeImageSource{
				Type:      "base64",
				MediaType: image.MIMEType,
				Data:      image.Data,
			},
		})
	}
	content = append(content, claudeContent{
		Type: "text",
		Text: withImagePrompt(prompt, image, claudeImagePrompt),
	})

	body, err := json.Marshal(claudeRequest{
		Model:     c.model,
		MaxTokens: maxOutputTokens,
		System:    SystemPrompt,
		Messages:  []claudeMessage{{Role: "user", Content: content}},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)
	return req, nil
}

func (c *Claude) ParseResponse(body []byte) (string, error) {
	var resp claudeResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	for _, block := range resp.Content {
		if block.Type == "text" && strings.TrimSpace(block.Text) != "" {
			return block.Text, nil
		}
	}
	return "", ErrEmptyResponse
}
