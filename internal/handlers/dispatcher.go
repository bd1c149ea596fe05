package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"discography/internal/handlers/render"
	"discography/internal/payload"
	"discography/internal/router"
)

// Context keys set by the dispatcher and middleware
const (
	ContextKeyOperation = "operation"
	ContextKeyRequestID = "request_id"
)

// Dispatcher routes every request through the route table to an operation
type Dispatcher struct {
	routes     *router.Table
	operations map[router.Operation]OperationFunc
}

// NewDispatcher creates a dispatcher over routes backed by handler
func NewDispatcher(routes *router.Table, handler *ResourceHandler) *Dispatcher {
	return &Dispatcher{
		routes:     routes,
		operations: handler.Operations(),
	}
}

// Routes returns the route table the dispatcher matches against
func (d *Dispatcher) Routes() *router.Table {
	return d.routes
}

// Handle is the single gin handler for all catalogue requests
func (d *Dispatcher) Handle(c *gin.Context) {
	match, matched := d.routes.Match(c.Request.Method, c.Request.URL.Path)
	if !matched {
		render.RouteNotFound(c)
		return
	}
	c.Set(ContextKeyOperation, match.Operation.String())

	operation, exists := d.operations[match.Operation]
	if !exists {
		slog.Warn("Route has no operation", "operation", match.Operation.String())
		render.RouteNotFound(c)
		return
	}

	req := &Request{Params: match.Params}
	req.Payload, req.PayloadErr = readPayload(c)
	if req.PayloadErr != nil {
		slog.Warn("Failed to decode request body",
			"request_id", c.GetString(ContextKeyRequestID),
			"error", req.PayloadErr)
	} else if len(req.Payload) > 0 {
		slog.Debug("Decoded request body",
			"request_id", c.GetString(ContextKeyRequestID),
			"body", map[string]interface{}(req.Payload))
	}

	response, err := operation(req)
	if err != nil {
		writeError(c, err)
		return
	}

	render.JSON(c, response.StatusCode, response.Body)
}

// readPayload buffers the whole body before decoding it
func readPayload(c *gin.Context) (payload.Payload, error) {
	if c.Request.Body == nil || c.Request.Body == http.NoBody {
		return payload.Payload{}, nil
	}

	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, &payload.ParseError{ContentType: c.ContentType(), Err: err}
	}

	return payload.Decode(c.GetHeader("Content-Type"), raw)
}

// writeError maps the error taxonomy onto status codes
func writeError(c *gin.Context, err error) {
	var notFoundErr *NotFoundError
	switch {
	case errors.As(err, &notFoundErr):
		render.NotFound(c, notFoundErr.Error())
	case errors.Is(err, ErrUnprocessableBody):
		render.UnprocessableBody(c)
	default:
		slog.Error("Operation failed",
			"request_id", c.GetString(ContextKeyRequestID),
			"error", err)
		render.InternalError(c)
	}
}
