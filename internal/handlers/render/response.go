package render

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Messages used in error envelopes
const (
	UnprocessableBodyMessage = "Something is wrong with the body"
	InternalErrorMessage     = "Internal server error"
	RouteNotFoundMessage     = "Endpoint not found"
)

// ErrorResponse is the envelope for every structured error
type ErrorResponse struct {
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
}

// MessageResponse is returned by successful deletes
type MessageResponse struct {
	Message string `json:"message"`
}

// JSON writes body as JSON with the given status code
func JSON(c *gin.Context, statusCode int, body interface{}) {
	c.JSON(statusCode, body)
}

// Error writes the error envelope and aborts the handler chain
func Error(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, ErrorResponse{
		Message:    message,
		StatusCode: statusCode,
	})
}

// NotFound writes a 404 envelope naming the missing entity
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// UnprocessableBody writes the generic 422 envelope
func UnprocessableBody(c *gin.Context) {
	Error(c, http.StatusUnprocessableEntity, UnprocessableBodyMessage)
}

// InternalError writes a 500 envelope
func InternalError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, InternalErrorMessage)
}

// RouteNotFound writes the bare plain-text 404 used when no route matches
func RouteNotFound(c *gin.Context) {
	c.String(http.StatusNotFound, RouteNotFoundMessage)
	c.Abort()
}
