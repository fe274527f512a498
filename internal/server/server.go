// Package server exposes compliance scanning over HTTP and keeps a
// registry of running instances under the licet home directory.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/licethq/licet/pkg/buildinfo"
	"github.com/licethq/licet/pkg/config"
	"github.com/licethq/licet/pkg/logger"
	"github.com/licethq/licet/pkg/scan"
)

// Server wires the scanner into an HTTP API.
type Server struct {
	cfg       *config.Config
	scanner   *scan.Scanner
	engine    *gin.Engine
	startedAt time.Time
}

// New builds a server around the given configuration and scanner.
func New(cfg *config.Config, scanner *scan.Scanner) *Server {
	s := &Server{
		cfg:       cfg,
		scanner:   scanner,
		startedAt: time.Now().UTC(),
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(RequestID(), RequestLogger(), gin.Recovery())

	engine.GET("/", s.handleIndex)
	engine.GET("/health", s.handleHealth)
	engine.POST("/scan/path", s.handleScanPath)
	engine.POST("/scan/upload", s.handleScanUpload)

	s.engine = engine
	return s
}

// Router exposes the configured engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.engine
}

// Run serves until the context is cancelled, then shuts down gracefully.
// The instance registers itself in the server registry for the lifetime
// of the process.
func (s *Server) Run(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	info := Info{
		Name:      "licet",
		Host:      s.cfg.Server.Host,
		Port:      s.cfg.Server.Port,
		PID:       os.Getpid(),
		Version:   buildinfo.BinaryVersion,
		StartedAt: s.startedAt,
	}
	if err := Save(info); err != nil {
		logger.Warn("Failed to register server instance", logger.Err(err))
	}
	defer func() {
		if err := Remove(info.Name); err != nil {
			logger.Warn("Failed to deregister server instance", logger.Err(err))
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Listening", logger.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}
