package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/frontdesigner/api/internal/deploy"
	"github.com/frontdesigner/api/internal/eventbus"
	"github.com/frontdesigner/api/internal/middleware"
	"github.com/frontdesigner/api/internal/packaging"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Deployer publishes a packaged project
type Deployer interface {
	Deploy(ctx context.Context, token, siteName string, archive []byte) (*deploy.Result, error)
}

// ProjectHandler packages generated pages for download and deployment
type ProjectHandler struct {
	deployer     Deployer
	defaultToken string
	events       eventbus.Publisher
	logger       *zap.Logger
}

// NewProjectHandler creates a project handler. defaultToken is used when a
// deploy request carries no token of its own.
func NewProjectHandler(deployer Deployer, defaultToken string, events eventbus.Publisher, logger *zap.Logger) *ProjectHandler {
	if events == nil {
		events = eventbus.NopPublisher{}
	}
	return &ProjectHandler{
		deployer:     deployer,
		defaultToken: defaultToken,
		events:       events,
		logger:       logger,
	}
}

// DownloadRequest is the body of POST /api/download
type DownloadRequest struct {
	Code        string `json:"code"`
	ProjectName string `json:"projectName"`
}

// DeployRequest is the body of POST /api/deploy-netlify
type DeployRequest struct {
	Code        string `json:"code"`
	SiteName    string `json:"siteName"`
	AccessToken string `json:"accessToken"`
}

// DeployResponse is returned by POST /api/deploy-netlify
type DeployResponse struct {
	Success    bool           `json:"success"`
	Deployment *deploy.Result `json:"deployment"`
	Message    string         `json:"message"`
}

// Download godoc
// @Summary Download a generated page as a ZIP project
// @Tags project
// @Accept json
// @Produce application/zip
// @Param request body DownloadRequest true "Generated code and project name"
// @Success 200 {file} binary
// @Failure 400 {object} middleware.ErrorResponse
// @Router /api/download [post]
func (h *ProjectHandler) Download(c *gin.Context) {
	var req DownloadRequest
	if !bindJSON(c, &req) {
		return
	}

	name := packaging.ProjectName(req.ProjectName)
	archive, err := packaging.Build(req.Code, name, time.Now().UTC())
	if errors.Is(err, packaging.ErrNoCode) {
		middleware.BadRequest(c, "No code provided")
		return
	}
	if err != nil {
		h.logger.Error("failed to build project archive", zap.Error(err))
		middleware.InternalError(c, "Failed to create download", err.Error())
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.zip"`, name))
	c.Data(http.StatusOK, "application/zip", archive)
}

// DeployNetlify godoc
// @Summary Deploy a generated page to a new Netlify site
// @Tags project
// @Accept json
// @Produce json
// @Param request body DeployRequest true "Generated code, site name and optional token"
// @Success 200 {object} DeployResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /api/deploy-netlify [post]
func (h *ProjectHandler) DeployNetlify(c *gin.Context) {
	var req DeployRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Code == "" {
		middleware.BadRequest(c, "No code provided")
		return
	}

	token := req.AccessToken
	if token == "" {
		token = h.defaultToken
	}
	if token == "" {
		middleware.BadRequest(c, "Netlify access token required")
		return
	}

	archive, err := packaging.Build(req.Code, deploy.SiteName(req.SiteName), time.Now().UTC())
	if err != nil {
		h.logger.Error("failed to build deploy archive", zap.Error(err))
		middleware.InternalError(c, "Failed to deploy to Netlify", err.Error())
		return
	}

	result, err := h.deployer.Deploy(c.Request.Context(), token, req.SiteName, archive)
	if err != nil {
		h.logger.Error("netlify deployment failed", zap.String("site_name", req.SiteName), zap.Error(err))
		middleware.InternalError(c, "Failed to deploy to Netlify", deploy.UserMessage(err))
		return
	}

	if err := h.events.Publish(c.Request.Context(), eventbus.SubjectDeployCompleted, eventbus.DeployCompleted{
		SiteID:   result.SiteID,
		SiteName: result.SiteName,
		URL:      result.URL,
		DeployID: result.DeployID,
	}); err != nil {
		h.logger.Warn("failed to publish event", zap.String("subject", eventbus.SubjectDeployCompleted), zap.Error(err))
	}

	c.JSON(http.StatusOK, DeployResponse{
		Success:    true,
		Deployment: result,
		Message:    "Successfully deployed to Netlify!",
	})
}
