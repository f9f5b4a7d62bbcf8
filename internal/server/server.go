package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"riftreplay/internal/analysis"
	"riftreplay/internal/logger"
	"riftreplay/internal/timeline"
)

// Config configures a Server
type Config struct {
	Port         string
	Source       analysis.Source
	Engines      *Engines
	Reference    timeline.Reference // nil yields placeholder assets
	PlaybackTick time.Duration
}

// Server exposes reconstructed matches over HTTP and WebSocket
type Server struct {
	router  *gin.Engine
	port    string
	src     analysis.Source
	engines *Engines
	metrics *Metrics
	tick    time.Duration
	log     *slog.Logger

	refMu sync.RWMutex
	ref   timeline.Reference
}

// New creates a server and registers its routes
func New(cfg Config) *Server {
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.PlaybackTick <= 0 {
		cfg.PlaybackTick = 250 * time.Millisecond
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		router:  router,
		port:    cfg.Port,
		src:     cfg.Source,
		engines: cfg.Engines,
		metrics: NewMetrics(),
		tick:    cfg.PlaybackTick,
		log:     logger.With("server"),
		ref:     cfg.Reference,
	}
	s.engines.onHit = func() { s.metrics.engineCache.WithLabelValues("hit").Inc() }
	s.engines.onMiss = func() { s.metrics.engineCache.WithLabelValues("miss").Inc() }

	router.Use(s.requestLogger(), s.metrics.Handler())
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	s.router.GET("/healthz", s.handleHealth)
	s.router.GET("/metrics", s.metrics.Endpoint())

	api := s.router.Group("/api")
	{
		api.GET("/analyses", s.handleAnalyses)
		api.POST("/analyze", s.handleAnalyze)
		api.GET("/search", s.handleSearch)

		match := api.Group("/analyses/:id/matches/:match")
		match.GET("/frame", s.handleFrame)
		match.GET("/gold", s.handleGold)
		match.GET("/events", s.handleEvents)
		match.GET("/wards", s.handleWards)
		match.GET("/towers", s.handleTowers)
		match.GET("/inventory/:combatant", s.handleInventory)
	}

	s.router.GET("/ws/analyses/:id/matches/:match", s.handleStream)
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// SetReference swaps the reference metadata used for new frames
func (s *Server) SetReference(ref timeline.Reference) {
	s.refMu.Lock()
	defer s.refMu.Unlock()
	s.ref = ref
}

func (s *Server) reference() timeline.Reference {
	s.refMu.RLock()
	defer s.refMu.RUnlock()
	return s.ref
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + s.port,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server listening", "addr", "http://localhost:"+s.port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.log.Info("shutting down server")
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqID := c.GetHeader("X-Request-ID")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Set("request_id", reqID)
		c.Header("X-Request-ID", reqID)

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		s.log.Debug("request",
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"request_id", reqID,
		)
	}
}

// respondError maps not-found errors to 404 and everything else to 500
func (s *Server) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, analysis.ErrNotFound) {
		status = http.StatusNotFound
	} else {
		s.log.Error("request failed", "path", c.Request.URL.Path, "error", err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

// queryTime parses ?t= in minutes. A missing t means 0.
func queryTime(c *gin.Context) (float64, bool) {
	raw := c.Query("t")
	if raw == "" {
		return 0, true
	}
	t, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		badRequest(c, fmt.Sprintf("invalid t %q", raw))
		return 0, false
	}
	return t, true
}
