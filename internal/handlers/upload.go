package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/frontdesigner/api/internal/middleware"
	"github.com/frontdesigner/api/internal/upload"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UploadHandler accepts reference images
type UploadHandler struct {
	store  *upload.Store
	logger *zap.Logger
}

// NewUploadHandler creates an upload handler
func NewUploadHandler(store *upload.Store, logger *zap.Logger) *UploadHandler {
	return &UploadHandler{store: store, logger: logger}
}

// UploadResponse is returned by POST /api/upload
type UploadResponse struct {
	Success bool `json:"success"`
	*upload.File
}

// Upload godoc
// @Summary Upload a reference image
// @Tags upload
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Image file"
// @Success 200 {object} UploadResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /api/upload [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	header, err := c.FormFile("image")
	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxErr):
		h.tooLarge(c)
		return
	case err != nil:
		middleware.BadRequest(c, "No image file provided")
		return
	case header.Size > h.store.MaxBytes():
		h.tooLarge(c)
		return
	}

	f, err := header.Open()
	if err != nil {
		middleware.InternalError(c, "Failed to upload image", err.Error())
		return
	}
	defer f.Close()

	stored, err := h.store.Save(f, header.Filename)
	switch {
	case errors.Is(err, upload.ErrTooLarge):
		h.tooLarge(c)
		return
	case errors.Is(err, upload.ErrNotImage):
		middleware.BadRequest(c, "Only image files are allowed")
		return
	case errors.Is(err, upload.ErrNoFile):
		middleware.BadRequest(c, "No image file provided")
		return
	case err != nil:
		h.logger.Error("failed to store upload", zap.Error(err))
		middleware.InternalError(c, "Failed to upload image", err.Error())
		return
	}

	h.logger.Info("image uploaded",
		zap.String("filename", stored.Filename),
		zap.Int64("size", stored.Size),
		zap.String("mime_type", stored.MIMEType),
	)
	c.JSON(http.StatusOK, UploadResponse{Success: true, File: stored})
}

func (h *UploadHandler) tooLarge(c *gin.Context) {
	middleware.RespondError(c, http.StatusBadRequest, "File too large",
		fmt.Sprintf("Image must be smaller than %dMB", h.store.MaxBytes()>>20))
}
