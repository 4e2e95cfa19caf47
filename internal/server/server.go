package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tracker/internal/auth"
	"tracker/internal/storage/sqlite"
)

// Options configures transport concerns that do not belong to the store.
type Options struct {
	SessionName     string
	SessionSecret   string
	SessionMaxAge   int
	SessionSecure   bool
	SessionSameSite http.SameSite
	AllowedOrigins  []string
	// TrustedProxies lists proxy CIDRs/IPs whose X-Forwarded-For is believed.
	// Empty means the client IP is always the TCP peer.
	TrustedProxies []string
	// LoginRate limits POST /login/ per client IP, e.g. "10-M". Empty disables.
	LoginRate   string
	Metrics     bool
	Development bool
}

// Server provides HTTP handlers for the project tracker.
type Server struct {
	engine   *gin.Engine
	store    *sqlite.Store
	hasher   *auth.Hasher
	sessions *sessions.CookieStore
	logger   *slog.Logger
	opts     Options
}

// New constructs the HTTP server with routes and middleware configured.
func New(store *sqlite.Store, hasher *auth.Hasher, logger *slog.Logger, opts Options) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.SessionSecret == "" {
		return nil, fmt.Errorf("session secret must not be empty")
	}
	if opts.SessionName == "" {
		opts.SessionName = "sessionid"
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	if err := router.SetTrustedProxies(opts.TrustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}
	router.Use(gin.Recovery())
	router.Use(requestID())
	router.Use(requestLogger(logger))
	if opts.Metrics {
		router.Use(metrics())
	}
	router.Use(secureHeaders(opts.Development))
	if len(opts.AllowedOrigins) > 0 {
		router.Use(corsMiddleware(opts.AllowedOrigins))
	}

	srv := &Server{
		engine:   router,
		store:    store,
		hasher:   hasher,
		sessions: newCookieStore(opts),
		logger:   logger,
		opts:     opts,
	}

	if err := srv.registerRoutes(); err != nil {
		return nil, err
	}
	return srv, nil
}

// Engine exposes the underlying Gin engine.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// registerRoutes wires all API handlers together.
func (s *Server) registerRoutes() error {
	limitLogin, err := loginRateLimiter(s.opts.LoginRate)
	if err != nil {
		return fmt.Errorf("login rate limiter: %w", err)
	}

	s.engine.GET("/healthz", s.handleHealth)
	if s.opts.Metrics {
		s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	s.engine.POST("/login/", limitLogin, s.handleLogin)

	authed := s.engine.Group("/", s.requireSession)
	{
		authed.POST("/logout/", s.handleLogout)

		authed.GET("/projects/", s.handleListProjects)
		authed.POST("/projects/", s.handleCreateProject)
		authed.PUT("/projects/:project_id/", s.handleUpdateProject)
		authed.DELETE("/projects/:project_id/", s.handleDeleteProject)
		authed.POST("/projects/:project_id/tasks/", s.handleCreateTask)

		authed.GET("/tasks/", s.handleListTasks)
		authed.PUT("/tasks/:task_id/", s.handleUpdateTask)
		authed.DELETE("/tasks/:task_id/", s.handleDeleteTask)

		authed.GET("/dashboard/", s.handleDashboard)
	}

	s.engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "endpoint not found", "code": ErrCodeNotFound})
	})
	return nil
}

// handleHealth provides a basic readiness endpoint.
func (s *Server) handleHealth(c *gin.Context) {
	if err := s.store.Ping(c.Request.Context()); err != nil {
		s.logger.Error("health check failed", slog.String("error", err.Error()))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// parseID converts a path parameter to int64. Non-numeric ids cannot exist,
// so they are reported as not found.
func parseID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, notFound("Not found.")
	}
	return id, nil
}

// respondSuccess writes payload as JSON, or only the status when payload is nil.
func respondSuccess(c *gin.Context, status int, payload any) {
	if payload == nil {
		c.Status(status)
		return
	}
	c.JSON(status, payload)
}
