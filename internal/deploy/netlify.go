package deploy

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	DefaultAPIURL   = "https://api.netlify.com/api/v1"
	DefaultSiteName = "ai-generated-site"

	createSiteTimeout = 30 * time.Second
	uploadTimeout     = 60 * time.Second
	maxResponseSize   = 1 << 20
)

var (
	// ErrNoToken means neither the request nor the environment supplied a token
	ErrNoToken = errors.New("netlify access token required")
	// ErrInvalidToken maps a 401 from Netlify
	ErrInvalidToken = errors.New("invalid netlify access token")
	// ErrSiteNameTaken maps a 422 from Netlify
	ErrSiteNameTaken = errors.New("netlify site name already exists")
)

var (
	tracer = otel.Tracer("frontdesigner-api/deploy")

	invalidSiteChars = regexp.MustCompile(`[^a-z0-9-]+`)

	deploymentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "frontdesigner_netlify_deployments_total",
			Help: "Total number of Netlify deployments by outcome.",
		},
		[]string{"outcome"},
	)
)

// APIError is any other non-2xx answer from Netlify
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("netlify returned status %d: %s", e.StatusCode, e.Message)
}

// UserMessage converts a deploy error into the text shown to users
func UserMessage(err error) string {
	var apiErr *APIError
	switch {
	case errors.Is(err, ErrInvalidToken):
		return "Invalid Netlify access token. Please check your token."
	case errors.Is(err, ErrSiteNameTaken):
		return "Site name already exists. Please choose a different name."
	case errors.As(err, &apiErr):
		return "Failed to deploy to Netlify: " + apiErr.Message
	default:
		return "Failed to deploy to Netlify: " + err.Error()
	}
}

// Result describes a finished deployment
type Result struct {
	Success   bool   `json:"success"`
	URL       string `json:"url"`
	DeployURL string `json:"deployUrl"`
	AdminURL  string `json:"adminUrl"`
	SiteID    string `json:"siteId"`
	SiteName  string `json:"siteName"`
	DeployID  string `json:"deployId"`
	State     string `json:"state"`
}

type createSiteRequest struct {
	Name         string  `json:"name"`
	CustomDomain *string `json:"custom_domain"`
}

type siteResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	URL      string `json:"url"`
	SSLURL   string `json:"ssl_url"`
	AdminURL string `json:"admin_url"`
}

type deployResponse struct {
	ID           string `json:"id"`
	State        string `json:"state"`
	SSLURL       string `json:"ssl_url"`
	DeploySSLURL string `json:"deploy_ssl_url"`
}

// Client creates Netlify sites and uploads ZIP deploys to them
type Client struct {
	apiURL     string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a Netlify client; empty apiURL means the public API
func NewClient(apiURL string, httpClient *http.Client, logger *zap.Logger) *Client {
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		apiURL:     strings.TrimRight(apiURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}
}

// SiteName normalizes user input into a valid Netlify subdomain
func SiteName(name string) string {
	name = invalidSiteChars.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
	name = strings.Trim(name, "-")
	if name == "" {
		return DefaultSiteName
	}
	return name
}

// Deploy creates a new site named siteName and uploads archive to it
func (c *Client) Deploy(ctx context.Context, token, siteName string, archive []byte) (*Result, error) {
	if token == "" {
		return nil, ErrNoToken
	}
	siteName = SiteName(siteName)

	ctx, span := tracer.Start(ctx, "netlify.Deploy", trace.WithAttributes(
		attribute.String("netlify.site_name", siteName),
		attribute.Int("netlify.archive_bytes", len(archive)),
	))
	defer span.End()

	result, err := c.deploy(ctx, token, siteName, archive)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "deploy failed")
		deploymentsTotal.WithLabelValues("failure").Inc()
		return nil, err
	}
	deploymentsTotal.WithLabelValues("success").Inc()
	return result, nil
}

func (c *Client) deploy(ctx context.Context, token, siteName string, archive []byte) (*Result, error) {
	body, err := json.Marshal(createSiteRequest{Name: siteName})
	if err != nil {
		return nil, fmt.Errorf("marshal site request: %w", err)
	}

	var site siteResponse
	if err := c.do(ctx, createSiteTimeout, "/sites", token, "application/json", body, &site); err != nil {
		return nil, fmt.Errorf("create site: %w", err)
	}
	c.logger.Info("created netlify site", zap.String("site_id", site.ID), zap.String("site_name", site.Name))

	var dep deployResponse
	if err := c.do(ctx, uploadTimeout, "/sites/"+site.ID+"/deploys", token, "application/zip", archive, &dep); err != nil {
		return nil, fmt.Errorf("upload deploy: %w", err)
	}
	c.logger.Info("netlify deploy created",
		zap.String("site_id", site.ID),
		zap.String("deploy_id", dep.ID),
		zap.String("state", dep.State),
	)

	return &Result{
		Success:   true,
		URL:       firstNonEmpty(site.SSLURL, site.URL),
		DeployURL: firstNonEmpty(dep.DeploySSLURL, dep.SSLURL),
		AdminURL:  site.AdminURL,
		SiteID:    site.ID,
		SiteName:  site.Name,
		DeployID:  dep.ID,
		State:     dep.State,
	}, nil
}

func (c *Client) do(ctx context.Context, timeout time.Duration, path, token, contentType string, payload []byte, out interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrInvalidToken
	case resp.StatusCode == http.StatusUnprocessableEntity:
		return ErrSiteNameTaken
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return &APIError{StatusCode: resp.StatusCode, Message: errorMessage(respBody, resp.Status)}
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func errorMessage(body []byte, status string) string {
	var payload struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &payload) == nil && payload.Message != "" {
		return payload.Message
	}
	return status
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
