// Package health serves the HTTP liveness endpoint.
package health

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const readTimeout = 5 * time.Second

// LivenessBody is the static response served on the root path.
const LivenessBody = "Bot is running!"

// Server exposes the liveness endpoint on the configured port.
type Server struct {
	srv    *http.Server
	logger *slog.Logger
}

// NewServer creates the liveness server.
func NewServer(port int, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	return &Server{
		srv: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           Handler(),
			ReadHeaderTimeout: readTimeout,
		},
		logger: logger,
	}
}

// Handler builds the HTTP handler; exposed separately for tests.
func Handler() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, LivenessBody)
	})
	return router
}

// Start serves until Shutdown is called. It blocks, so run it on its own
// goroutine; a clean shutdown returns nil.
func (s *Server) Start() error {
	s.logger.Info("health server listening", "addr", s.srv.Addr)

	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("health server failed: %w", err)
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("health server shutdown failed: %w", err)
	}
	return nil
}
