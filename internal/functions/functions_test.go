package functions

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/frontdesigner/api/internal/generation"
	"github.com/frontdesigner/api/internal/models"
	"github.com/frontdesigner/api/internal/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newMux() *http.ServeMux {
	logger := zap.NewNop()
	d := generation.NewDispatcher(provider.NewRegistry(provider.Config{}), generation.Config{}, logger)
	return NewMux(d, models.Features{Netlify: true}, logger)
}

func serve(mux http.Handler, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(method, path, strings.NewReader(body)))
	return w
}

func TestGenerateFunction(t *testing.T) {
	mux := newMux()

	w := serve(mux, http.MethodPost, BasePath+"generate", `{"prompt":"portfolio gallery","model":"gemini"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	var resp generateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "fallback", resp.Model)
	assert.Contains(t, resp.Code, "portfolio gallery")
	assert.NotContains(t, resp.Code, "```")
}

func TestGenerateFunctionErrors(t *testing.T) {
	mux := newMux()

	tests := []struct {
		name   string
		method string
		body   string
		status int
		want   string
	}{
		{"preflight", http.MethodOptions, "", http.StatusOK, ""},
		{"wrong method", http.MethodGet, "", http.StatusMethodNotAllowed, "Method not allowed"},
		{"bad json", http.MethodPost, "{", http.StatusInternalServerError, "Failed to generate code"},
		{"empty prompt", http.MethodPost, `{"prompt":" "}`, http.StatusBadRequest, "Prompt is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(mux, tt.method, BasePath+"generate", tt.body)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, "GET, POST, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
			if tt.want == "" {
				assert.Empty(t, w.Body.String())
				return
			}
			var resp map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.want, resp["error"])
		})
	}
}

func TestHealthFunction(t *testing.T) {
	w := serve(newMux(), http.MethodGet, BasePath+"health", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp healthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "OK", resp.Status)
	assert.Equal(t, "netlify", resp.Platform)
	assert.Equal(t, models.Version, resp.Version)
	assert.True(t, resp.Features.Netlify)
	assert.False(t, resp.Features.Claude)
}
