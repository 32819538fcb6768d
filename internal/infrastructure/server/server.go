package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/folio/portfolio/docs"
	"github.com/folio/portfolio/internal/adapters/github"
	httpHandlers "github.com/folio/portfolio/internal/adapters/http"
	"github.com/folio/portfolio/internal/adapters/media"
	"github.com/folio/portfolio/internal/adapters/repository"
	"github.com/folio/portfolio/internal/application/services"
	"github.com/folio/portfolio/internal/domain/entities"
	"github.com/folio/portfolio/internal/infrastructure/config"
	"github.com/folio/portfolio/internal/infrastructure/logger"
	"github.com/folio/portfolio/internal/infrastructure/metrics"
	"github.com/folio/portfolio/internal/ports"
)

const uploadsPath = "/uploads"

// Dependencies are the long lived resources the server is built on
type Dependencies struct {
	Store *repository.Store
	Cache ports.CacheRepository
	// Metrics is optional; without it /metrics is not served.
	Metrics *metrics.Metrics
}

// Server represents the HTTP server
type Server struct {
	echo    *echo.Echo
	config  *config.Config
	logger  *logger.Logger
	store   *repository.Store
	cache   ports.CacheRepository
	metrics *metrics.Metrics
	started time.Time
}

// handlers groups every route handler of the API
type handlers struct {
	auth        *httpHandlers.AuthHandler
	contact     *httpHandlers.ContactHandler
	contactInfo *httpHandlers.ContactInfoHandler
	projects    *httpHandlers.ProjectHandler
	github      *httpHandlers.GitHubHandler
	showcase    *httpHandlers.ShowcaseHandler
	content     []contentRoutes
}

// contentRoutes is implemented by every ContentHandler instantiation
type contentRoutes interface {
	Collection() string
	Register(g *echo.Group, admin echo.MiddlewareFunc)
}

// New creates a new server instance
func New(cfg *config.Config, deps Dependencies, appLogger *logger.Logger) (*Server, error) {
	e := echo.New()

	e.Validator = httpHandlers.NewValidator()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = customErrorHandler(appLogger)

	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout
	e.Server.IdleTimeout = cfg.Server.IdleTimeout

	mediaStore, err := media.NewLocalStore(cfg.Storage.UploadsDir, uploadsPath, cfg.Storage.MaxUploadBytes())
	if err != nil {
		return nil, fmt.Errorf("failed to prepare uploads directory: %w", err)
	}

	var githubOpts []github.Option
	if deps.Metrics != nil {
		githubOpts = append(githubOpts, github.WithObserver(deps.Metrics))
	}
	githubClient := github.NewClient(cfg.GitHub, appLogger, githubOpts...)

	repos := repository.NewRepositories(deps.Store)

	// Initialize services
	authService := services.NewAuthService(cfg.Admin, cfg.JWT, appLogger)
	selectedProjectService := services.NewSelectedProjectService(
		repos.SelectedProjects, githubClient, cfg.GitHub.ProbeOnCreate, cfg.GitHub.ProbeWorkers, appLogger,
	)

	// Initialize handlers
	h := handlers{
		auth:        httpHandlers.NewAuthHandler(authService, appLogger),
		contact:     httpHandlers.NewContactHandler(services.NewContactService(repos.ContactMessages, appLogger), appLogger),
		contactInfo: httpHandlers.NewContactInfoHandler(services.NewContactInfoService(repos.ContactInfo, appLogger), appLogger),
		projects:    httpHandlers.NewProjectHandler(services.NewProjectService(repos.Projects, mediaStore, appLogger), appLogger),
		github: httpHandlers.NewGitHubHandler(
			services.NewGitHubService(githubClient, deps.Cache, cfg.GitHub.CacheTTL, appLogger), appLogger,
		),
		showcase: httpHandlers.NewShowcaseHandler(selectedProjectService, appLogger),
		content: []contentRoutes{
			httpHandlers.NewContentHandler[*entities.Blog]("blogs", "Blog",
				services.NewContentService[*entities.Blog]("blog", repos.Blogs, appLogger),
				func() ports.Creator[*entities.Blog] { return &ports.CreateBlogRequest{} },
				func() ports.Patcher[*entities.Blog] { return &ports.UpdateBlogRequest{} },
				appLogger),
			httpHandlers.NewContentHandler[*entities.LinkedinPost]("linkedin-posts", "LinkedIn post",
				services.NewContentService[*entities.LinkedinPost]("linkedin_post", repos.LinkedinPosts, appLogger),
				func() ports.Creator[*entities.LinkedinPost] { return &ports.CreateLinkedinPostRequest{} },
				func() ports.Patcher[*entities.LinkedinPost] { return &ports.UpdateLinkedinPostRequest{} },
				appLogger),
			httpHandlers.NewContentHandler[*entities.Skill]("skills", "Skill",
				services.NewContentService[*entities.Skill]("skill", repos.Skills, appLogger),
				func() ports.Creator[*entities.Skill] { return &ports.CreateSkillRequest{} },
				func() ports.Patcher[*entities.Skill] { return &ports.UpdateSkillRequest{} },
				appLogger),
			httpHandlers.NewContentHandler[*entities.Certification]("certifications", "Certification",
				services.NewContentService[*entities.Certification]("certification", repos.Certifications, appLogger),
				func() ports.Creator[*entities.Certification] { return &ports.CreateCertificationRequest{} },
				func() ports.Patcher[*entities.Certification] { return &ports.UpdateCertificationRequest{} },
				appLogger),
			httpHandlers.NewContentHandler[*entities.Education]("education", "Education",
				services.NewContentService[*entities.Education]("education", repos.Education, appLogger),
				func() ports.Creator[*entities.Education] { return &ports.CreateEducationRequest{} },
				func() ports.Patcher[*entities.Education] { return &ports.UpdateEducationRequest{} },
				appLogger),
			httpHandlers.NewContentHandler[*entities.SelectedProject]("selected-projects", "Selected project",
				selectedProjectService,
				func() ports.Creator[*entities.SelectedProject] { return &ports.CreateSelectedProjectRequest{} },
				func() ports.Patcher[*entities.SelectedProject] { return &ports.UpdateSelectedProjectRequest{} },
				appLogger),
		},
	}

	server := &Server{
		echo:    e,
		config:  cfg,
		logger:  appLogger,
		store:   deps.Store,
		cache:   deps.Cache,
		metrics: deps.Metrics,
		started: time.Now(),
	}

	server.setupMiddleware()
	server.setupRoutes(h, server.adminOnly(authService))

	return server, nil
}

// setupRoutes configures all routes
func (s *Server) setupRoutes(h handlers, admin echo.MiddlewareFunc) {
	// Health check routes
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/health/detailed", s.detailedHealthCheck)
	s.echo.GET("/ready", s.readinessCheck)

	if s.metrics != nil {
		s.echo.GET(s.config.Metrics.Path, echo.WrapHandler(s.metrics.Handler()))
	}

	// Swagger documentation
	s.echo.GET("/swagger/*", echoSwagger.WrapHandler)

	s.echo.Static(uploadsPath, s.config.Storage.UploadsDir)

	api := s.echo.Group("/api")

	api.POST("/admin/auth", h.auth.Login)
	api.GET("/github/repos/:username", h.github.ListRepos)

	api.POST("/contact", h.contact.Submit)
	api.POST("/contact-messages", h.contact.Submit)
	api.GET("/contact-messages", h.contact.List, admin)
	api.DELETE("/contact-messages/:id", h.contact.Delete, admin)

	api.GET("/contact-info", h.contactInfo.Get)
	api.POST("/contact-info", h.contactInfo.Create, admin)
	api.PUT("/contact-info/:id", h.contactInfo.Update, admin)

	api.GET("/projects", h.projects.List)
	api.POST("/projects", h.projects.Upsert, admin)
	api.POST("/projects/:id/upload", h.projects.Upload, admin, s.uploadLimit())

	api.POST("/selected-projects/showcase-images", h.showcase.Refresh, admin)

	for _, content := range h.content {
		content.Register(api.Group("/"+content.Collection()), admin)
	}
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Health check handlers
func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) detailedHealthCheck(c echo.Context) error {
	ctx := c.Request().Context()
	status := "ok"
	checks := make(map[string]interface{})

	if err := s.store.HealthCheck(ctx); err != nil {
		status = "error"
		checks["storage"] = map[string]interface{}{
			"status": "error",
			"driver": s.config.Storage.Driver,
			"error":  err.Error(),
		}
	} else {
		checks["storage"] = map[string]interface{}{
			"status": "ok",
			"driver": s.config.Storage.Driver,
		}
	}

	if s.cache != nil {
		if err := s.cache.HealthCheck(ctx); err != nil {
			status = "degraded"
			checks["cache"] = map[string]interface{}{
				"status": "error",
				"driver": s.config.Cache.Driver,
				"error":  err.Error(),
			}
		} else {
			checks["cache"] = map[string]interface{}{
				"status": "ok",
				"driver": s.config.Cache.Driver,
			}
		}
	}

	response := map[string]interface{}{
		"status": status,
		"time":   time.Now().UTC().Format(time.RFC3339),
		"uptime": time.Since(s.started).Round(time.Second).String(),
		"checks": checks,
		"version": map[string]string{
			"app": s.config.App.Version,
		},
	}

	if status == "error" {
		return c.JSON(http.StatusServiceUnavailable, response)
	}
	return c.JSON(http.StatusOK, response)
}

func (s *Server) readinessCheck(c echo.Context) error {
	if err := s.store.HealthCheck(c.Request().Context()); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "not_ready",
			"reason": "storage_not_ready",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "ready",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Start starts the HTTP server
func (s *Server) Start(address string) error {
	s.logger.Infow("Starting server", "address", address)
	return s.echo.Start(address)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server")
	return s.echo.Shutdown(ctx)
}
