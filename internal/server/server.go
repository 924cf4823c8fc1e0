// Package server exposes the validator over HTTP.
//
//	POST /validate        validate one question
//	POST /validate/batch  validate a JSON array, JSON lines or YAML list
//	POST /normalize       normalize and parse one expression
//	GET  /health          liveness check
//	GET  /metrics         Prometheus metrics
package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/njchilds90/answercheck/internal/batch"
	"github.com/njchilds90/answercheck/internal/config"
	"github.com/njchilds90/answercheck/internal/logger"
	"github.com/njchilds90/answercheck/normalize"
	"github.com/njchilds90/answercheck/verify"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	engine *verify.Engine
	cfg    *config.Config
	log    logger.Logger
	router *gin.Engine
}

func New(engine *verify.Engine, cfg *config.Config, log logger.Logger) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if log == nil {
		log = logger.Default()
	}
	s := &Server{engine: engine, cfg: cfg, log: log}
	s.router = s.buildRouter()
	return s
}

func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) buildRouter() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(s.recovery(), s.requestLogger(), s.limitBody())
	r.POST("/validate", s.handleValidate)
	r.POST("/validate/batch", s.handleBatch)
	r.POST("/normalize", s.handleNormalize)
	r.GET("/health", s.handleHealth)
	if s.cfg.Metrics {
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}
	return r
}

func (s *Server) recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, rec any) {
		s.log.Error("panic in handler", "path", c.Request.URL.Path, "panic", fmt.Sprint(rec))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	})
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Debug("request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"elapsed", time.Since(start),
		)
	}
}

func (s *Server) limitBody() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.cfg.HTTP.MaxBodyBytes)
		}
		c.Next()
	}
}

// readBody reads the request body, answering 413 or 400 itself on failure.
func readBody(c *gin.Context) ([]byte, bool) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
			return nil, false
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	return body, true
}

// handleValidate answers 200 with a report for every readable body; a
// malformed question is a report with error_kind spec.
func (s *Server) handleValidate(c *gin.Context) {
	body, ok := readBody(c)
	if !ok {
		return
	}
	item := batch.NewItem(body)
	c.JSON(http.StatusOK, s.engine.Validate(s.requestContext(c), item.Question))
}

func (s *Server) handleBatch(c *gin.Context) {
	body, ok := readBody(c)
	if !ok {
		return
	}
	items, err := batch.Decode(bytes.NewReader(body))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	results, err := batch.Run(s.requestContext(c), s.engine, items, s.cfg.Workers)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	if results == nil {
		results = []batch.Result{}
	}
	c.JSON(http.StatusOK, gin.H{"results": results, "summary": batch.Summarize(results)})
}

type normalizeRequest struct {
	Expr string `json:"expr" binding:"required"`
}

func (s *Server) handleNormalize(c *gin.Context) {
	var req normalizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, normalize.Describe(req.Expr))
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
		"kinds":  verify.SupportedKinds(),
	})
}

func (s *Server) requestContext(c *gin.Context) context.Context {
	return logger.ContextWithLogger(c.Request.Context(), s.log)
}

// Run serves until ctx ends, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.HTTP.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      s.cfg.Timeout + 15*time.Second,
		IdleTimeout:       60 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("answercheck listening", "addr", srv.Addr, "metrics", s.cfg.Metrics)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.log.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return <-errCh
}
