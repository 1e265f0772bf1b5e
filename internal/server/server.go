// Package server exposes the subtitle job queue over HTTP: video upload,
// status polling, result download, and the catalog endpoints web UIs use to
// populate style pickers.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"visub/internal/queue"
)

// Cleaner removes expired jobs on demand. The worker satisfies it.
type Cleaner interface {
	CleanupExpired(ctx context.Context) (int, error)
}

// Options configures the HTTP server.
type Options struct {
	// UploadDir is where each job gets its working directory.
	UploadDir string

	// MaxUploadBytes caps the size of an uploaded video. Defaults to 500MB.
	MaxUploadBytes int64

	// Version is reported on the root endpoint.
	Version string
}

func (o Options) withDefaults() Options {
	if o.UploadDir == "" {
		o.UploadDir = "/tmp/visub_uploads"
	}
	if o.MaxUploadBytes <= 0 {
		o.MaxUploadBytes = 500 << 20
	}
	if o.Version == "" {
		o.Version = "dev"
	}
	return o
}

// Server is the HTTP front end. Handlers only read and write job rows; the
// worker owns all processing.
type Server struct {
	store   *queue.Store
	cleaner Cleaner
	opts    Options
	logger  *zap.Logger
	engine  *gin.Engine
}

// New creates a Server with a no-op logger.
func New(store *queue.Store, cleaner Cleaner, opts Options) *Server {
	return NewWithLogger(store, cleaner, opts, zap.NewNop())
}

// NewWithLogger creates a Server with the provided logger.
func NewWithLogger(store *queue.Store, cleaner Cleaner, opts Options, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		store:   store,
		cleaner: cleaner,
		opts:    opts.withDefaults(),
		logger:  logger,
	}
	s.engine = s.buildRouter()
	return s
}

func (s *Server) buildRouter() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(requestLogger(s.logger))
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	r.GET("/", s.root)
	r.GET("/health", s.health)

	api := r.Group("/api")
	{
		api.GET("/models", s.listModels)
		api.GET("/languages", s.listLanguages)
		api.GET("/positions", s.listPositions)
		api.GET("/fonts", s.listFonts)
		api.GET("/effects", s.listEffects)
		api.GET("/animations", s.listAnimations)
		api.GET("/presets", s.listPresets)
		api.GET("/colors", s.listColors)
		api.POST("/validate-config", s.validateConfig)

		api.POST("/upload", s.uploadVideo)
		api.GET("/status/:job_id", s.jobStatus)
		api.GET("/download/:job_id/:file_type", s.downloadFile)
		api.DELETE("/jobs/:job_id", s.deleteJob)
		api.POST("/cleanup", s.runCleanup)
	}

	return r
}

// Handler returns the configured routes as an http.Handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("http server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":        "Visub Subtitle Generator",
		"version":     s.opts.Version,
		"description": "Word-by-word subtitle generation with per-speaker styling",
		"health":      "/health",
	})
}

// health reports whether the job store is reachable, with a per-status job
// count for dashboards.
func (s *Server) health(c *gin.Context) {
	stats, err := s.store.Stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"error":  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"jobs":   stats,
	})
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		if raw != "" {
			path = path + "?" + raw
		}

		logger.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
