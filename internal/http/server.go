// Package http provides HTTP server implementation and request routing.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/metric"

	auditHTTP "github.com/briefnote/briefnote/internal/audit/http"
	"github.com/briefnote/briefnote/internal/metrics"
	notesHTTP "github.com/briefnote/briefnote/internal/notes/http"
	settingsHTTP "github.com/briefnote/briefnote/internal/settings/http"
	userDomain "github.com/briefnote/briefnote/internal/user/domain"
	userHTTP "github.com/briefnote/briefnote/internal/user/http"
	userUseCase "github.com/briefnote/briefnote/internal/user/usecase"
	vaultHTTP "github.com/briefnote/briefnote/internal/vault/http"
	verifyHTTP "github.com/briefnote/briefnote/internal/verify/http"
)

// Handlers groups the route handlers the server mounts.
type Handlers struct {
	Credential *vaultHTTP.CredentialHandler
	Verify     *verifyHTTP.VerifyHandler
	AuditLog   *auditHTTP.AuditLogHandler
	Note       *notesHTTP.NoteHandler
	Settings   *settingsHTTP.SettingsHandler
}

// MiddlewareConfig carries the dependencies and settings for the router-wide
// middleware chain.
type MiddlewareConfig struct {
	UserUseCase      userUseCase.UseCase
	RateLimitEnabled bool
	RateLimitRPS     float64
	RateLimitBurst   int
	CORSEnabled      bool
	CORSAllowOrigins string

	// MeterProvider enables per-request metrics when set.
	MeterProvider    metric.MeterProvider
	MetricsNamespace string
}

// Server represents the HTTP API server.
type Server struct {
	server *http.Server
	router *gin.Engine
	db     *sql.DB
	logger *slog.Logger
}

// NewServer creates a new HTTP server. The database handle is used by the
// readiness endpoint; routes are mounted via SetupRouter.
func NewServer(
	db *sql.DB,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// SetupRouter builds the full route tree with authentication, authorization,
// and rate limiting applied per route group.
func (s *Server) SetupRouter(handlers Handlers, mw MiddlewareConfig) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if mw.MeterProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(mw.MeterProvider, mw.MetricsNamespace))
	}

	if corsMiddleware := createCORSMiddleware(mw.CORSEnabled, mw.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	// Health and readiness endpoints stay outside authentication.
	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")
	v1.Use(userHTTP.AuthenticationMiddleware(mw.UserUseCase, s.logger))
	if mw.RateLimitEnabled {
		v1.Use(userHTTP.RateLimitMiddleware(mw.RateLimitRPS, mw.RateLimitBurst, s.logger))
	}

	viewCredentials := userHTTP.CapabilityMiddleware(userDomain.CapabilityViewCredentials, s.logger)
	editCredentials := userHTTP.CapabilityMiddleware(userDomain.CapabilityEditCredentials, s.logger)
	viewNotes := userHTTP.CapabilityMiddleware(userDomain.CapabilityViewNotes, s.logger)
	editNotes := userHTTP.CapabilityMiddleware(userDomain.CapabilityEditNotes, s.logger)
	adminOnly := userHTTP.AdminMiddleware(s.logger)

	credentials := v1.Group("/credentials")
	{
		credentials.GET("", viewCredentials, handlers.Credential.ListHandler)
		credentials.POST("", editCredentials, handlers.Credential.CreateHandler)
		credentials.POST("/reorder", editCredentials, handlers.Credential.ReorderHandler)
		credentials.GET("/:id", viewCredentials, handlers.Credential.GetHandler)
		credentials.PUT("/:id", editCredentials, handlers.Credential.UpdateHandler)
		credentials.DELETE("/:id", editCredentials, handlers.Credential.DeleteHandler)
		credentials.GET("/:id/decrypted", viewCredentials, handlers.Credential.GetDecryptedHandler)
		credentials.POST("/:id/reveal", viewCredentials, handlers.Credential.RevealHandler)
		credentials.POST("/:id/copy", viewCredentials, handlers.Credential.CopyHandler)
	}

	v1.POST("/verify", handlers.Verify.VerifyHandler)
	v1.GET("/verify", handlers.Verify.StatusHandler)

	v1.GET("/audit-logs", adminOnly, handlers.AuditLog.ListHandler)

	notes := v1.Group("/notes")
	{
		notes.GET("", viewNotes, handlers.Note.GetHandler)
		notes.PUT("", editNotes, handlers.Note.SaveHandler)
		notes.GET("/preview", viewNotes, handlers.Note.PreviewHandler)
		notes.POST("/events", viewNotes, handlers.Note.EventHandler)
	}

	v1.GET("/settings", adminOnly, handlers.Settings.GetHandler)
	v1.PUT("/settings", adminOnly, handlers.Settings.UpdateHandler)

	s.router = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the server can reach its dependencies.
func (s *Server) readinessHandler(c *gin.Context) {
	components := gin.H{"database": "ok"}

	if s.db == nil {
		components["database"] = "error"
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": components,
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		s.logger.Error("readiness check failed", slog.Any("error", err))
		components["database"] = "error"
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": components,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": components,
	})
}
