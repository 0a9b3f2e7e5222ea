package server

import (
	"log/slog"
	"net/http"

	"github.com/alkime/podcurate/internal/config"
	"github.com/alkime/podcurate/internal/store"
	"github.com/alkime/podcurate/internal/wizard"
	"github.com/gin-contrib/static"
	"github.com/gin-gonic/gin"
)

// Server represents the HTTP server
type Server struct {
	config  *config.Config
	logger  *slog.Logger
	router  *gin.Engine
	flows   *registry
	catalog wizard.Catalog
	store   *store.Store
	handoff wizard.Handoff
}

// Option customizes a Server.
type Option func(*Server)

// WithStore saves a snapshot of every completed flow.
func WithStore(st *store.Store) Option {
	return func(s *Server) { s.store = st }
}

// WithHandoff sets the collaborator that receives completed summaries.
func WithHandoff(h wizard.Handoff) Option {
	return func(s *Server) { s.handoff = h }
}

// WithCatalog replaces the demo catalog new flows start from.
func WithCatalog(c wizard.Catalog) Option {
	return func(s *Server) { s.catalog = c }
}

// New creates a new Server instance
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) *Server {
	// Set Gin mode based on environment
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger))

	// Configure proxy trust for production (Fly.io)
	if cfg.IsProduction() {
		router.TrustedPlatform = gin.PlatformFlyIO
		logger.Debug("Configured trusted platform", "platform", "fly.io")
	}

	server := &Server{
		config:  cfg,
		logger:  logger,
		router:  router,
		flows:   newRegistry(),
		catalog: wizard.DefaultCatalog(),
	}
	for _, opt := range opts {
		opt(server)
	}

	setupSecurityMiddleware(router, cfg, logger)
	server.setupRoutes()

	return server
}

// Router exposes the HTTP handler, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run starts the HTTP server
func Run(s *Server) error {
	s.logger.Info("Server listening", "port", s.config.Port)
	return s.router.Run(":" + s.config.Port)
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	api := s.router.Group("/api/v1")
	{
		api.POST("/flows", s.handleCreateFlow)

		flow := api.Group("/flows/:id", s.loadSession)
		{
			flow.GET("", s.handleGetFlow)
			flow.POST("/next", s.handleNext)
			flow.POST("/back", s.handleBack)
			flow.POST("/complete", s.handleComplete)
			flow.GET("/summary", s.handleSummary)

			flow.PUT("/topics/:tag", s.handleToggleTopic)
			flow.PUT("/focus/:tag", s.handleToggleFocus)
			flow.PUT("/days/:day", s.handleToggleDay)

			flow.POST("/news/:item/like", s.handleToggleLike)
			flow.DELETE("/news/:item", s.handleDeleteNews)

			flow.PUT("/schedule", s.handleSchedule)
			flow.PUT("/presenters", s.handlePresenters)
			flow.PUT("/duration", s.handleDuration)

			flow.GET("/wheel/:field", s.handleWheel)
		}
	}

	// Serve the web client from ./public for anything the API does not handle
	s.router.Use(static.Serve("/", static.LocalFile("./public", false)))
}

// handleHealth handles the health check endpoint
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "podcurate",
		"flows":   s.flows.len(),
	})
}
