package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/osa911/contactform/internal/api/handlers"
	"github.com/osa911/contactform/internal/api/middleware"
	"github.com/osa911/contactform/internal/api/validation"
	"github.com/osa911/contactform/internal/config"
	"github.com/osa911/contactform/internal/logging"
	"github.com/osa911/contactform/internal/server/routes"
	"github.com/osa911/contactform/internal/service"

	"github.com/gin-gonic/gin"
)

// Dependencies are the collaborators the HTTP layer is built on
type Dependencies struct {
	Limiter    middleware.Admitter
	Dispatcher service.EmailDispatcher
	// Validator is optional; nil selects the default validator
	Validator validation.StructValidator
}

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	cfg    *config.Config
	logger *logging.Logger
}

// NewServer creates a new server instance with all routes registered
func NewServer(cfg *config.Config, logger *logging.Logger, deps Dependencies) (*Server, error) {
	if deps.Limiter == nil || deps.Dispatcher == nil {
		return nil, errors.New("server requires a limiter and a dispatcher")
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Disable Gin's default logger entirely because we're using our custom logger
	gin.DisableConsoleColor()
	gin.DefaultWriter = io.Discard

	// Create a new engine without default middleware
	router := gin.New()
	router.HandleMethodNotAllowed = true
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}

	routes.SetupGlobalMiddleware(router, cfg, logger)

	h := &routes.Handlers{
		Contact: handlers.NewContactHandler(deps.Dispatcher, logger, cfg.DispatchTimeout),
		Health:  handlers.NewHealthHandler(),
		Info:    handlers.NewInfoHandler(deps.Limiter.Policy()),
	}
	m := &routes.Middleware{
		Validation: middleware.NewValidationMiddleware(deps.Validator),
		RateLimit:  middleware.RateLimitMiddleware(deps.Limiter, logger),
		BodyLimit:  middleware.BodyLimit(cfg.MaxBodyBytes),
	}
	routes.Setup(router, h, m)

	return &Server{
		router: router,
		cfg:    cfg,
		logger: logger,
	}, nil
}

// Handler exposes the router
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until ctx is cancelled, then drains in-flight requests
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + s.cfg.Port,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      s.cfg.DispatchTimeout + 10*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownGrace)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return nil
}
