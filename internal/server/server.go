// file: internal/server/server.go
// version: 1.3.0
// guid: f8a9b0c1-d2e3-4f5a-6b7c-d8e9f0a1b2c3

package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hoangdinhthien/swimadmin/internal/cache"
	"github.com/hoangdinhthien/swimadmin/internal/config"
	"github.com/hoangdinhthien/swimadmin/internal/metrics"
	"github.com/hoangdinhthien/swimadmin/internal/server/middleware"
	"github.com/hoangdinhthien/swimadmin/internal/upstream"
)

// Server is the admin gateway: a gin engine over the upstream client, the
// shared response cache, and its background cleanup sweep. All dependencies
// are injected so tests can compose isolated instances.
type Server struct {
	engine      *gin.Engine
	client      *upstream.Client
	store       *cache.Cache[any]
	stopCleanup func()
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// GetDefaultServerConfig returns listener settings from the app config.
func GetDefaultServerConfig() ServerConfig {
	return ServerConfig{
		Host:         config.AppConfig.ServerHost,
		Port:         config.AppConfig.ServerPort,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// NewServer wires the gateway around an upstream client and shared cache.
func NewServer(client *upstream.Client, store *cache.Cache[any]) *Server {
	metrics.Register()

	s := &Server{
		client: client,
		store:  store,
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())

	limiter := middleware.NewTenantRateLimiter(
		config.AppConfig.ServerRequestsPerMin,
		config.AppConfig.ServerRateLimitBurst,
	)
	engine.Use(limiter.Middleware())

	engine.GET("/healthz", s.handleHealth)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	s.registerRoutes(engine)
	s.engine = engine
	return s
}

// Engine exposes the router for tests.
func (s *Server) Engine() *gin.Engine { return s.engine }

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully and stops the cache sweep.
func (s *Server) Start(cfg ServerConfig) error {
	s.stopCleanup = s.store.StartCleanup(config.AppConfig.CacheCleanupInterval)
	defer s.stopCleanup()

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Handler:      s.engine,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[INFO] gateway listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		log.Printf("[INFO] received %s, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
