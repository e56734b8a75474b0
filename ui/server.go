package ui

import (
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"lifelens/internal"
	"lifelens/internal/dashboard"
	"lifelens/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server is the web front end over the dashboard service.
type Server struct {
	router        *gin.Engine
	svc           *dashboard.Service
	log           *internal.Logger
	metrics       *metrics.Metrics
	embeddedFiles fs.FS
	templates     *template.Template
}

// NewServer creates a new web server instance. metrics may be nil when
// exposition is disabled.
func NewServer(svc *dashboard.Service, logger *internal.Logger, m *metrics.Metrics, embeddedFiles fs.FS) *Server {
	return &Server{
		router:        gin.New(),
		svc:           svc,
		log:           logger,
		metrics:       m,
		embeddedFiles: embeddedFiles,
	}
}

// Initialize parses templates and wires middleware and routes.
func (s *Server) Initialize() error {
	templatesFS, err := fs.Sub(s.embeddedFiles, "ui/templates")
	if err != nil {
		return fmt.Errorf("failed to create templates filesystem: %w", err)
	}
	s.templates, err = template.ParseFS(templatesFS, "*.html")
	if err != nil {
		return fmt.Errorf("failed to parse templates: %w", err)
	}

	s.setupMiddleware()
	s.setupRoutes()
	return nil
}

// setupMiddleware configures Gin middleware
func (s *Server) setupMiddleware() {
	s.router.Use(gin.Logger(), gin.Recovery())
	s.router.Use(requestID())
	if s.metrics != nil {
		s.router.Use(countRequests(s.metrics))
	}

	staticFS, err := fs.Sub(s.embeddedFiles, "ui/static")
	if err != nil {
		s.log.Warn("static filesystem unavailable: %v", err)
		return
	}
	s.router.StaticFS("/static", http.FS(staticFS))
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleIndex)
	s.router.GET("/about", s.handleAbout)
	s.router.GET("/healthz", s.handleHealthz)

	s.router.GET("/api/options", s.handleOptions)
	s.router.POST("/api/dashboard", s.handleDashboard)
	s.router.POST("/api/correlations", s.handleCorrelations)
	s.router.POST("/api/regression", s.handleRegression)

	if s.metrics != nil {
		s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}
}

// Router exposes the gin engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start starts the web server
func (s *Server) Start(addr string) error {
	s.log.Info("starting lifelens dashboard on http://%s", addr)
	return s.router.Run(addr)
}
