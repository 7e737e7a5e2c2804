// Package httpserver serves scorecard uploads and exports over HTTP.
package httpserver

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ukaji3/scorecard-go/internal/metrics"
	"go.uber.org/zap"
)

// Router wires the handler routes onto a gin engine.
type Router struct {
	Engine *gin.Engine
}

// NewRouter registers the scorecard routes, request logging and /metrics.
func NewRouter(h *Handler, logger *zap.Logger) *Router {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(logger))

	r.GET("/healthz", h.Health)
	r.GET("/template", h.Template)
	r.POST("/scorecard", h.Summarize)
	r.POST("/export", h.Export)
	r.POST("/export/csv", h.ExportCSV)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	return &Router{Engine: r}
}

// Run listens on addr until the server fails.
func (r *Router) Run(addr string) error {
	return r.Engine.Run(addr)
}

// requestLogger logs each request and records its latency.
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := c.Writer.Status()
		elapsed := time.Since(start)
		metrics.RecordHTTPRequestDuration(c.Request.Method, path, strconv.Itoa(status), elapsed)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("elapsed", elapsed),
		)
	}
}
