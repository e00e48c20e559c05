package provider

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/frontdesigner/api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeBody(t *testing.T, req *http.Request) map[string]interface{} {
	t.Helper()
	raw, err := io.ReadAll(req.Body)
	require.NoError(t, err)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

func TestRegistryOnlyRegistersKeyedProviders(t *testing.T) {
	reg := NewRegistry(Config{
		Claude: Settings{APIKey: "claude-key"},
		Gemini: Settings{APIKey: "gemini-key"},
	})

	assert.True(t, reg.Enabled(models.ProviderClaude))
	assert.True(t, reg.Enabled(models.ProviderGemini))
	assert.False(t, reg.Enabled(models.ProviderMistral))
	assert.Equal(t, []models.ProviderName{models.ProviderClaude, models.ProviderGemini}, reg.Names())

	_, err := reg.Lookup(models.ProviderMistral)
	assert.True(t, errors.Is(err, ErrUnavailable))

	_, err = reg.Lookup("gpt-99")
	assert.True(t, errors.Is(err, ErrUnavailable))

	p, err := reg.Lookup(models.ProviderClaude)
	require.NoError(t, err)
	assert.Equal(t, models.ProviderClaude, p.Name())
}

func TestClaudeBuildRequest(t *testing.T) {
	c := NewClaude(Settings{APIKey: "secret", BaseURL: "http://claude.test/"})

	t.Run("text only", func(t *testing.T) {
		req, err := c.BuildRequest(context.Background(), "a pricing table", nil)
		require.NoError(t, err)

		assert.Equal(t, http.MethodPost, req.Method)
		assert.Equal(t, "http://claude.test/v1/messages", req.URL.String())
		assert.Equal(t, "secret", req.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, req.Header.Get("anthropic-version"))

		body := decodeBody(t, req)
		assert.Equal(t, defaultClaudeModel, body["model"])
		assert.EqualValues(t, 4000, body["max_tokens"])
		assert.Equal(t, SystemPrompt, body["system"])

		content := body["messages"].([]interface{})[0].(map[string]interface{})["content"].([]interface{})
		require.Len(t, content, 1)
		assert.Equal(t, "a pricing table", content[0].(map[string]interface{})["text"])
	})

	t.Run("with image", func(t *testing.T) {
		img := &Image{MIMEType: "image/png", Data: "aGVsbG8="}
		req, err := c.BuildRequest(context.Background(), "a pricing table", img)
		require.NoError(t, err)

		body := decodeBody(t, req)
		content := body["messages"].([]interface{})[0].(map[string]interface{})["content"].([]interface{})
		require.Len(t, content, 2)

		imageBlock := content[0].(map[string]interface{})
		assert.Equal(t, "image", imageBlock["type"])
		source := imageBlock["source"].(map[string]interface{})
		assert.Equal(t, "base64", source["type"])
		assert.Equal(t, "image/png", source["media_type"])
		assert.Equal(t, "aGVsbG8=", source["data"])

		textBlock := content[1].(map[string]interface{})
		assert.Equal(t, claudeImagePrompt+"a pricing table", textBlock["text"])
	})
}

func TestClaudeParseResponse(t *testing.T) {
	c := NewClaude(Settings{APIKey: "k"})

	text, err := c.ParseResponse([]byte(`{"content":[{"type":"text","text":"<html></html>"}]}`))
	require.NoError(t, err)
	assert.Equal(t, "<html></html>", text)

	_, err = c.ParseResponse([]byte(`{"content":[]}`))
	assert.ErrorIs(t, err, ErrEmptyResponse)

	_, err = c.ParseResponse([]byte(`not json`))
	assert.Error(t, err)
}

func TestMistralBuildRequestIgnoresImageData(t *testing.T) {
	m := NewMistral(Settings{APIKey: "mk", BaseURL: "http://mistral.test/v1"})
	img := &Image{MIMEType: "image/jpeg", Data: "ZGF0YQ=="}

	req, err := m.BuildRequest(context.Background(), "a login form", img)
	require.NoError(t, err)

	assert.Equal(t, "http://mistral.test/v1/chat/completions", req.URL.String())
	assert.Equal(t, "Bearer mk", req.Header.Get("Authorization"))

	body := decodeBody(t, req)
	assert.Equal(t, defaultMistralModel, body["model"])
	assert.EqualValues(t, 4000, body["max_tokens"])
	assert.InDelta(t, 0.7, body["temperature"], 0.001)

	messages := body["messages"].([]interface{})
	require.Len(t, messages, 2)
	assert.Equal(t, "system", messages[0].(map[string]interface{})["role"])
	user := messages[1].(map[string]interface{})
	assert.Equal(t, mistralImagePrompt+"a login form", user["content"])
	assert.NotContains(t, user["content"], "ZGF0YQ==")
}

func TestMistralParseResponse(t *testing.T) {
	m := NewMistral(Settings{APIKey: "mk"})

	text, err := m.ParseResponse([]byte(`{"choices":[{"index":0,"message":{"role":"assistant","content":"<div>ok</div>"}}]}`))
	require.NoError(t, err)
	assert.Equal(t, "<div>ok</div>", text)

	_, err = m.ParseResponse([]byte(`{"choices":[]}`))
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestGeminiBuildRequest(t *testing.T) {
	g := NewGemini(Settings{APIKey: "gk", BaseURL: "http://gemini.test/v1beta"})

	req, err := g.BuildRequest(context.Background(), "a blog", &Image{MIMEType: "image/webp", Data: "d2VicA=="})
	require.NoError(t, err)

	assert.Equal(t, "http://gemini.test/v1beta/models/gemini-2.5-pro:generateContent", req.URL.String())
	assert.Equal(t, "gk", req.Header.Get("x-goog-api-key"))
	assert.Empty(t, req.URL.Query().Get("key"))

	body := decodeBody(t, req)
	parts := body["contents"].([]interface{})[0].(map[string]interface{})["parts"].([]interface{})
	require.Len(t, parts, 2)
	assert.Equal(t, SystemPrompt+geminiImagePrompt+"a blog", parts[0].(map[string]interface{})["text"])
	inline := parts[1].(map[string]interface{})["inlineData"].(map[string]interface{})
	assert.Equal(t, "image/webp", inline["mimeType"])
	assert.Equal(t, "d2VicA==", inline["data"])
	assert.Equal(t, "user", body["contents"].([]interface{})[0].(map[string]interface{})["role"])

	cfg := body["generationConfig"].(map[string]interface{})
	assert.EqualValues(t, 40, cfg["topK"])
	assert.EqualValues(t, 4096, cfg["maxOutputTokens"])
	assert.Len(t, body["safetySettings"], 4)
	safety := body["safetySettings"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "HARM_CATEGORY_HARASSMENT", safety["category"])
	assert.Equal(t, "BLOCK_MEDIUM_AND_ABOVE", safety["threshold"])
}

func TestGeminiBuildRequestWithoutImage(t *testing.T) {
	g := NewGemini(Settings{APIKey: "gk"})

	req, err := g.BuildRequest(context.Background(), "a menu", nil)
	require.NoError(t, err)
	assert.Equal(t, "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.5-pro:generateContent", req.URL.String())

	body := decodeBody(t, req)
	parts := body["contents"].([]interface{})[0].(map[string]interface{})["parts"].([]interface{})
	require.Len(t, parts, 1)
	assert.Equal(t, SystemPrompt+geminiTextPrompt+"a menu", parts[0].(map[string]interface{})["text"])
}

func TestGeminiBuildRequestRejectsUndecodableImage(t *testing.T) {
	g := NewGemini(Settings{APIKey: "gk"})

	_, err := g.BuildRequest(context.Background(), "a menu", &Image{MIMEType: "image/png", Data: "%%%"})
	assert.ErrorIs(t, err, ErrInvalidImage)
}

func TestGeminiParseResponseJoinsParts(t *testing.T) {
	g := NewGemini(Settings{APIKey: "gk"})

	text, err := g.ParseResponse([]byte(`{"candidates":[{"content":{"parts":[{"text":"<p>a</p>"},{"text":"<p>b</p>"}]}}]}`))
	require.NoError(t, err)
	assert.Equal(t, "<p>a</p>\n<p>b</p>", text)

	_, err = g.ParseResponse([]byte(`{"candidates":[]}`))
	assert.ErrorIs(t, err, ErrEmptyResponse)

	_, err = g.ParseResponse([]byte(`{"candidates":[{"finishReason":"SAFETY"}]}`))
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestImageFor(t *testing.T) {
	claude := NewClaude(Settings{APIKey: "ck"})
	gemini := NewGemini(Settings{APIKey: "gk"})
	mistral := NewMistral(Settings{APIKey: "mk"})

	for _, p := range []Provider{claude, gemini, mistral} {
		img, err := ImageFor(p, "  ")
		require.NoError(t, err)
		assert.Nil(t, img, p.Name())
	}

	for _, raw := range []string{"/uploads/image-1.png", "data:image/svg+xml;base64,", "not base64!!"} {
		img, err := ImageFor(mistral, raw)
		require.NoError(t, err, raw)
		require.NotNil(t, img, raw)
		assert.Empty(t, img.Data)

		_, err = ImageFor(claude, raw)
		assert.ErrorIs(t, err, ErrInvalidImage, raw)
		_, err = ImageFor(gemini, raw)
		assert.ErrorIs(t, err, ErrInvalidImage, raw)
	}

	img, err := ImageFor(claude, "data:image/png;base64,iVBORw0KGgo=")
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.MIMEType)
	assert.Equal(t, "iVBORw0KGgo=", img.Data)
}

func TestParseImage(t *testing.T) {
	png := base64.StdEncoding.EncodeToString([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\x0dIHDR\x00\x00\x00\x01"))

	tests := []struct {
		name     string
		raw      string
		wantNil  bool
		wantMIME string
		wantData string
		wantErr  bool
	}{
		{name: "empty", raw: "  ", wantNil: true},
		{name: "data url", raw: "data:image/PNG;base64,abcd", wantMIME: "image/png", wantData: "abcd"},
		{name: "svg data url", raw: "data:image/svg+xml;base64,PHN2Zz4=", wantMIME: "image/svg+xml", wantData: "PHN2Zz4="},
		{name: "bare png", raw: png, wantMIME: "image/png", wantData: png},
		{name: "bare unknown", raw: base64.StdEncoding.EncodeToString([]byte("plain words")), wantMIME: "image/jpeg"},
		{name: "not base64", raw: "%%%", wantErr: true},
		{name: "non image data url", raw: "data:text/plain;base64,aGk=", wantErr: true},
		{name: "empty payload", raw: "data:image/png;base64,", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := ParseImage(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidImage)
				return
			}
			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, img)
				return
			}
			require.NotNil(t, img)
			assert.Equal(t, tt.wantMIME, img.MIMEType)
			if tt.wantData != "" {
				assert.Equal(t, tt.wantData, img.Data)
			}
		})
	}
}
