package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse is the JSON envelope for every failed request
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// RespondError sends the error envelope
func RespondError(c *gin.Context, status int, errMsg, message string) {
	c.JSON(status, ErrorResponse{
		Success: false,
		Error:   errMsg,
		Message: message,
	})
}

// BadRequest sends a 400 error
func BadRequest(c *gin.Context, errMsg string) {
	RespondError(c, http.StatusBadRequest, errMsg, "")
}

// NotFound sends a 404 error
func NotFound(c *gin.Context, message string) {
	RespondError(c, http.StatusNotFound, "Not found", message)
}

// InternalError sends a 500 error
func InternalError(c *gin.Context, errMsg, message string) {
	RespondError(c, http.StatusInternalServerError, errMsg, message)
}

// NoRoute answers unmatched paths
func NoRoute(c *gin.Context) {
	NotFound(c, "The requested resource was not found")
}

// Recovery turns panics into a 500 envelope. The panic value is only
// exposed to clients when exposeDetails is set.
func Recovery(logger *zap.Logger, exposeDetails bool) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("panic recovered",
			zap.Any("panic", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", GetRequestID(c)),
		)
		message := "Something went wrong"
		if exposeDetails {
			message = fmt.Sprint(recovered)
		}
		RespondError(c, http.StatusInternalServerError, "Internal server error", message)
		c.Abort()
	})
}
