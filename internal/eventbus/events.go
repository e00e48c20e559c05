package eventbus

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// Subjects for activity events
const (
	SubjectGenerationCompleted = "frontdesigner.generation.completed"
	SubjectPromptEnhanced      = "frontdesigner.prompt.enhanced"
	SubjectDeployCompleted     = "frontdesigner.deploy.completed"
)

// ErrDisabled is reported by NopPublisher health checks
var ErrDisabled = errors.New("event bus not configured")

// Publisher sends activity events. Publishing is best effort; callers log
// failures and carry on.
type Publisher interface {
	Publish(ctx context.Context, subject string, payload any) error
	Healthy(ctx context.Context) error
	Close()
}

// Event is the envelope written to the bus
type Event struct {
	ID        string          `json:"id"`
	Subject   string          `json:"subject"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

// GenerationCompleted is published after every /api/generate call
type GenerationCompleted struct {
	RequestedProvider string `json:"requestedProvider"`
	ProviderUsed      string `json:"providerUsed"`
	PromptLength      int    `json:"promptLength"`
	CodeLength        int    `json:"codeLength"`
	HasImage          bool   `json:"hasImage"`
	IsEnhanced        bool   `json:"isEnhanced"`
}

// PromptEnhanced is published after every enhancement
type PromptEnhanced struct {
	Method       string `json:"method"`
	Attempts     int    `json:"attempts"`
	PromptLength int    `json:"promptLength"`
	IncludeImage bool   `json:"includeImage"`
}

// DeployCompleted is published after a successful Netlify deploy
type DeployCompleted struct {
	SiteID   string `json:"siteId"`
	SiteName string `json:"siteName"`
	URL      string `json:"url"`
	DeployID string `json:"deployId"`
}

// NopPublisher drops every event
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, any) error { return nil }

func (NopPublisher) Healthy(context.Context) error { return ErrDisabled }

func (NopPublisher) Close() {}
