package handlers

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"
)

// NewEngine builds the gin engine that serves the catalogue. Every path is
// sent to the dispatcher so that the route table alone decides precedence.
func NewEngine(dispatcher *Dispatcher) *gin.Engine {
	engine := gin.New()
	engine.Use(RequestID(), RequestLogger(), Recovery())

	engine.Any("/*path", dispatcher.Handle)
	engine.NoRoute(dispatcher.Handle)

	for _, route := range dispatcher.Routes().Routes() {
		slog.Debug("Registered route",
			"methods", strings.Join(route.Methods, ","),
			"pattern", route.Pattern,
			"operation", route.Operation.String())
	}

	return engine
}
