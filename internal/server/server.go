// Package server exposes the picker nodes over HTTP so that a host can run
// them out of process.
package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bagtoad/pathpick/internal/logger"
	"github.com/bagtoad/pathpick/internal/node"
)

// RunResponse is the body returned by the run endpoint. FilePath holds either
// the selected path or an "Error: ..." description.
type RunResponse struct {
	FilePath string `json:"file_path"`
}

// ChangeResponse is the body returned by the is_changed endpoint.
type ChangeResponse struct {
	Token string `json:"token"`
}

// Handler serves the node API.
type Handler struct {
	registry *node.Registry
	log      *logger.Logger
}

// NewHandler creates a Handler for the nodes in registry.
func NewHandler(registry *node.Registry, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{registry: registry, log: log}
}

// Router builds the gin engine with all routes.
func (h *Handler) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(h.requestLogger())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/nodes", h.ListNodes)
		api.POST("/nodes/:name/run", h.Run)
		api.POST("/nodes/:name/is_changed", h.IsChanged)
	}
	return r
}

// ListNodes returns every node descriptor in registration order.
func (h *Handler) ListNodes(c *gin.Context) {
	c.JSON(http.StatusOK, h.registry.Nodes())
}

// Run executes a node. Selection failures are still 200 responses; only
// unknown nodes and malformed bodies are HTTP errors.
func (h *Handler) Run(c *gin.Context) {
	n, args, ok := h.bind(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, RunResponse{FilePath: n.Run(args)})
}

// IsChanged returns the change token for a node and its inputs.
func (h *Handler) IsChanged(c *gin.Context) {
	n, args, ok := h.bind(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, ChangeResponse{Token: n.IsChanged(args)})
}

func (h *Handler) bind(c *gin.Context) (*node.Node, node.Args, bool) {
	name := c.Param("name")
	n, ok := h.registry.Lookup(name)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown node: " + name})
		return nil, node.Args{}, false
	}

	var args node.Args
	if err := c.ShouldBindJSON(&args); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return nil, node.Args{}, false
	}
	return n, args, true
}

func (h *Handler) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		h.log.Debugf("%s %s -> %d (%s)", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}
