package enhance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/frontdesigner/api/internal/models"
	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const longEnhancement = "Build a warm, responsive bakery landing page with a hero banner, menu grid, testimonials and an accessible contact form."

func chatReply(w http.ResponseWriter, content string) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"id":      "cmpl-1",
		"object":  "chat.completion",
		"choices": []map[string]interface{}{{"index": 0, "message": map[string]string{"role": "assistant", "content": content}}},
	})
}

func apiError(w http.ResponseWriter, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	io.WriteString(w, `{"error":{"message":"upstream says no","type":"server_error"}}`)
}

type scriptedServer struct {
	server *httptest.Server
	calls  atomic.Int32
}

// newScriptedServer answers call n (1-based) with steps[n-1], repeating the last step
func newScriptedServer(t *testing.T, steps ...http.HandlerFunc) *scriptedServer {
	t.Helper()
	s := &scriptedServer{}
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := int(s.calls.Add(1))
		if n > len(steps) {
			n = len(steps)
		}
		steps[n-1](w, r)
	}))
	t.Cleanup(s.server.Close)
	return s
}

func newTestEnhancer(url string, delay time.Duration) *Enhancer {
	return NewEnhancer(Config{
		APIKey:     "test-key",
		BaseURL:    url,
		Timeout:    2 * time.Second,
		MaxRetries: 2,
		RetryDelay: delay,
	}, zap.NewNop())
}

func TestEnhanceDisabledUsesFallback(t *testing.T) {
	e := NewEnhancer(Config{}, zap.NewNop())
	require.False(t, e.Enabled())

	res, err := e.Enhance(context.Background(), models.EnhancementRequest{Prompt: "A landing page for a bakery"})
	require.NoError(t, err)

	assert.Equal(t, MethodFallback, res.Method)
	assert.Equal(t, 0, res.Attempts)
	assert.Equal(t, "A landing page for a bakery", res.OriginalPrompt)
	assert.True(t, strings.HasPrefix(res.EnhancedPrompt,
		"Create a modern, responsive web interface for: A landing page for a bakery. Include a hero section"))
	assert.False(t, res.Timestamp.IsZero())
}

func TestEnhanceRejectsEmptyPrompt(t *testing.T) {
	srv := newScriptedServer(t, func(w http.ResponseWriter, r *http.Request) { chatReply(w, longEnhancement) })
	e := newTestEnhancer(srv.server.URL, time.Millisecond)

	res, err := e.Enhance(context.Background(), models.EnhancementRequest{Prompt: "  "})
	assert.ErrorIs(t, err, models.ErrInvalidInput)
	assert.Nil(t, res)
	assert.EqualValues(t, 0, srv.calls.Load())
}

func TestEnhanceSuccessStripsLeadIn(t *testing.T) {
	var body map[string]interface{}
	srv := newScriptedServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		chatReply(w, "Here's the enhanced prompt:  "+longEnhancement)
	})
	e := newTestEnhancer(srv.server.URL, time.Millisecond)

	res, err := e.Enhance(context.Background(), models.EnhancementRequest{Prompt: "bakery site", IncludeImage: true})
	require.NoError(t, err)

	assert.Equal(t, "mistral", res.Method)
	assert.Equal(t, 1, res.Attempts)
	assert.Equal(t, longEnhancement, res.EnhancedPrompt)

	assert.Equal(t, "mistral-large-latest", body["model"])
	assert.EqualValues(t, 800, body["max_tokens"])
	assert.InDelta(t, 0.6, body["temperature"], 0.001)
	messages := body["messages"].([]interface{})
	require.Len(t, messages, 2)
	assert.Equal(t, systemMessage, messages[0].(map[string]interface{})["content"])
	user := messages[1].(map[string]interface{})["content"].(string)
	assert.Contains(t, user, `Original: "bakery site"`)
	assert.Contains(t, user, "Note: User provided an image reference.")
}

func TestEnhanceRetriesTransientFailures(t *testing.T) {
	delay := 30 * time.Millisecond
	srv := newScriptedServer(t,
		func(w http.ResponseWriter, r *http.Request) { apiError(w, http.StatusServiceUnavailable) },
		func(w http.ResponseWriter, r *http.Request) { apiError(w, http.StatusBadGateway) },
		func(w http.ResponseWriter, r *http.Request) { chatReply(w, longEnhancement) },
	)
	e := newTestEnhancer(srv.server.URL, delay)

	start := time.Now()
	res, err := e.Enhance(context.Background(), models.EnhancementRequest{Prompt: "bakery site"})
	require.NoError(t, err)

	assert.Equal(t, "mistral", res.Method)
	assert.Equal(t, 3, res.Attempts)
	assert.Equal(t, longEnhancement, res.EnhancedPrompt)
	assert.EqualValues(t, 3, srv.calls.Load())
	assert.GreaterOrEqual(t, time.Since(start), 2*delay)
}

func TestEnhanceRetryExhaustionFallsBack(t *testing.T) {
	srv := newScriptedServer(t, func(w http.ResponseWriter, r *http.Request) {
		apiError(w, http.StatusInternalServerError)
	})
	e := newTestEnhancer(srv.server.URL, time.Millisecond)

	res, err := e.Enhance(context.Background(), models.EnhancementRequest{Prompt: "admin dashboard"})
	require.NoError(t, err)

	assert.Equal(t, MethodFallback, res.Method)
	assert.Equal(t, 3, res.Attempts)
	assert.EqualValues(t, 3, srv.calls.Load())
	assert.Contains(t, res.EnhancedPrompt, "Include sidebar navigation")
}

func TestEnhancePermanentFailureDoesNotRetry(t *testing.T) {
	srv := newScriptedServer(t, func(w http.ResponseWriter, r *http.Request) {
		apiError(w, http.StatusBadRequest)
	})
	e := newTestEnhancer(srv.server.URL, time.Millisecond)

	res, err := e.Enhance(context.Background(), models.EnhancementRequest{Prompt: "contact form"})
	require.NoError(t, err)

	assert.Equal(t, MethodFallback, res.Method)
	assert.Equal(t, 1, res.Attempts)
	assert.EqualValues(t, 1, srv.calls.Load())
}

func TestEnhanceTooShortIsPermanent(t *testing.T) {
	srv := newScriptedServer(t, func(w http.ResponseWriter, r *http.Request) {
		chatReply(w, "Enhanced: make it pretty")
	})
	e := newTestEnhancer(srv.server.URL, time.Millisecond)

	res, err := e.Enhance(context.Background(), models.EnhancementRequest{Prompt: "portfolio"})
	require.NoError(t, err)

	assert.Equal(t, MethodFallback, res.Method)
	assert.Equal(t, 1, res.Attempts)
}

func TestEnhanceAttemptTimeoutIsRetried(t *testing.T) {
	srv := newScriptedServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(500 * time.Millisecond):
		case <-r.Context().Done():
		}
	})
	e := NewEnhancer(Config{
		APIKey:     "k",
		BaseURL:    srv.server.URL,
		Timeout:    30 * time.Millisecond,
		MaxRetries: 1,
		RetryDelay: time.Millisecond,
	}, zap.NewNop())

	res, err := e.Enhance(context.Background(), models.EnhancementRequest{Prompt: "weather widget"})
	require.NoError(t, err)

	assert.Equal(t, MethodFallback, res.Method)
	assert.Equal(t, 2, res.Attempts)
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"deadline", context.DeadlineExceeded, true},
		{"wrapped deadline", fmt.Errorf("call: %w", context.DeadlineExceeded), true},
		{"canceled", context.Canceled, false},
		{"api 503", &openai.APIError{HTTPStatusCode: 503}, true},
		{"api 429", &openai.APIError{HTTPStatusCode: 429}, false},
		{"request 500", &openai.RequestError{HTTPStatusCode: 500, Err: errors.New("boom")}, true},
		{"request 404", &openai.RequestError{HTTPStatusCode: 404, Err: errors.New("nope")}, false},
		{"too short", ErrTooShort, false},
		{"plain", errors.New("connection refused"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTransient(tt.err))
		})
	}
}

func TestCleanEnhancement(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Enhanced prompt: Build it", "Build it"},
		{"HERE IS AN ENHANCED VERSION:\nBuild it", "Build it"},
		{"Enhanced: Build it", "Build it"},
		{"Enhanced prompt: Enhanced: Build it", "Build it"},
		{"Build an Enhanced: thing", "Build an Enhanced: thing"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanEnhancement(tt.in))
		})
	}
}
