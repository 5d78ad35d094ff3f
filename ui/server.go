package ui

import (
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"

	"incosedss/app"
	"incosedss/internal/config"
	"incosedss/internal/session"
	"incosedss/ui/middleware"
	"incosedss/ui/services"

	"github.com/gin-gonic/gin"
)

// Server represents the web server for the survey report
type Server struct {
	router    *gin.Engine
	templates *template.Template
	service   *app.ReportService
	store     session.Store
	render    *services.RenderService
	sessions  config.SessionConfig
	maxBytes  int64
}

// NewServer creates a new web server instance with routes and templates ready
func NewServer(cfg *config.Config, service *app.ReportService, store session.Store) (*Server, error) {
	s := &Server{
		router:   gin.New(),
		service:  service,
		store:    store,
		render:   services.NewRenderService(),
		sessions: cfg.Session,
		maxBytes: cfg.Upload.MaxBytes,
	}

	funcMap := template.FuncMap{
		"add": func(a, b int) int { return a + b },
		"pct": func(f float64) string { return fmt.Sprintf("%.1f%%", f*100) },
		"fixed": func(f float64, digits int) string {
			return fmt.Sprintf("%.*f", digits, f)
		},
		"selected": func(a, b string) bool { return a == b },
	}

	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	s.templates = templates

	s.setupMiddleware()
	s.setupRoutes()
	return s, nil
}

// setupMiddleware configures Gin middleware
func (s *Server) setupMiddleware() {
	s.router.Use(gin.Logger(), gin.Recovery())
	// multipart parts beyond this spill to temporary files
	s.router.MaxMultipartMemory = s.maxBytes

	staticFS, err := fs.Sub(embeddedFiles, "static")
	if err != nil {
		log.Printf("[setupMiddleware] Error creating static filesystem: %v", err)
		return
	}
	s.router.StaticFS("/static", http.FS(staticFS))
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	pages := s.router.Group("/", middleware.EnsureSession(s.sessions.CookieName, s.sessions.TTL))
	pages.GET("/", s.handleIndex)
	pages.POST("/upload", s.handleUpload)
	pages.POST("/reset", s.handleReset)
}

// Handler returns the HTTP handler serving the UI
func (s *Server) Handler() http.Handler {
	return s.router
}
