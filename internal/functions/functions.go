// Package functions serves the generate and health endpoints as plain
// net/http handlers for serverless deployments.
package functions

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/frontdesigner/api/internal/models"
	"go.uber.org/zap"
)

// BasePath is where serverless functions are mounted
const BasePath = "/.netlify/functions/"

// Generator produces HTML for a prompt
type Generator interface {
	Generate(ctx context.Context, req models.GenerationRequest) (*models.GenerationResult, error)
}

type generateRequest struct {
	Prompt string `json:"prompt"`
	Model  string `json:"model"`
	Image  string `json:"image"`
}

type generateResponse struct {
	Success   bool      `json:"success"`
	Code      string    `json:"code"`
	Model     string    `json:"model"`
	Timestamp time.Time `json:"timestamp"`
}

type healthResponse struct {
	Status    string          `json:"status"`
	Timestamp time.Time       `json:"timestamp"`
	Version   string          `json:"version"`
	Platform  string          `json:"platform"`
	Features  models.Features `json:"features"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// NewMux mounts every function under BasePath
func NewMux(gen Generator, features models.Features, logger *zap.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle(BasePath+"generate", Generate(gen, logger))
	mux.Handle(BasePath+"health", Health(features))
	return mux
}

// Generate accepts POST {prompt, model?, image?} and answers with the
// generated page
func Generate(gen Generator, logger *zap.Logger) http.Handler {
	return withCORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "Method not allowed"})
			return
		}

		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Warn("invalid function payload", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, errorResponse{
				Error:   "Failed to generate code",
				Message: err.Error(),
			})
			return
		}

		logger.Info("generating code",
			zap.String("model", req.Model),
			zap.String("prompt", models.PromptPreview(req.Prompt)),
		)

		result, err := gen.Generate(r.Context(), models.GenerationRequest{
			Prompt:   req.Prompt,
			Provider: models.ProviderName(req.Model),
			Image:    req.Image,
		})
		if errors.Is(err, models.ErrInvalidInput) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Prompt is required"})
			return
		}
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, errorResponse{
				Error:   "Failed to generate code",
				Message: err.Error(),
			})
			return
		}

		writeJSON(w, http.StatusOK, generateResponse{
			Success:   true,
			Code:      result.Code,
			Model:     string(result.ProviderUsed),
			Timestamp: result.Timestamp,
		})
	}))
}

// Health reports the function platform and configured providers
func Health(features models.Features) http.Handler {
	return withCORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, healthResponse{
			Status:    "OK",
			Timestamp: time.Now().UTC(),
			Version:   models.Version,
			Platform:  "netlify",
			Features:  features,
		})
	}))
}

// withCORS sets the permissive CORS headers and answers preflights
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Headers", "Content-Type")
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		h.Set("Content-Type", "application/json")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
