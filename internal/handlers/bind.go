package handlers

import (
	"errors"
	"net/http"

	"github.com/frontdesigner/api/internal/middleware"
	"github.com/gin-gonic/gin"
)

// bindJSON decodes the request body into dst and writes the error
// response itself when that fails
func bindJSON(c *gin.Context, dst any) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		middleware.RespondError(c, http.StatusRequestEntityTooLarge, "Request body too large", "")
		return false
	}
	middleware.RespondError(c, http.StatusBadRequest, "Invalid request body", err.Error())
	return false
}
