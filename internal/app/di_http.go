package app

import (
	"fmt"

	auditHTTP "github.com/briefnote/briefnote/internal/audit/http"
	"github.com/briefnote/briefnote/internal/http"
	notesHTTP "github.com/briefnote/briefnote/internal/notes/http"
	settingsHTTP "github.com/briefnote/briefnote/internal/settings/http"
	vaultHTTP "github.com/briefnote/briefnote/internal/vault/http"
	verifyHTTP "github.com/briefnote/briefnote/internal/verify/http"
)

// HTTPServer returns the API server with all routes mounted.
func (c *Container) HTTPServer() (*http.Server, error) {
	var err error
	c.httpServerInit.Do(func() {
		c.httpServer, err = c.initHTTPServer()
		if err != nil {
			c.initErrors["httpServer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["httpServer"]; exists {
		return nil, storedErr
	}
	return c.httpServer, nil
}

// MetricsServer returns the Prometheus metrics server, or nil when metrics
// are disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	var err error
	c.metricsServerInit.Do(func() {
		if !c.config.MetricsEnabled {
			return
		}
		c.metricsServer, err = c.initMetricsServer()
		if err != nil {
			c.initErrors["metricsServer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsServer"]; exists {
		return nil, storedErr
	}
	return c.metricsServer, nil
}

// initHTTPServer wires the handlers and middleware into the API server.
func (c *Container) initHTTPServer() (*http.Server, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for http server: %w", err)
	}

	userUC, err := c.UserUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get user use case for http server: %w", err)
	}

	vaultUC, err := c.VaultUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get vault use case for http server: %w", err)
	}

	verifyUC, err := c.VerifyUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get verify use case for http server: %w", err)
	}

	auditUC, err := c.AuditLogUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit log use case for http server: %w", err)
	}

	noteUC, err := c.NoteUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get note use case for http server: %w", err)
	}

	settingsUC, err := c.SettingsUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings use case for http server: %w", err)
	}

	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for http server: %w", err)
	}

	logger := c.Logger()

	handlers := http.Handlers{
		Credential: vaultHTTP.NewCredentialHandler(vaultUC, verifyUC, logger),
		Verify:     verifyHTTP.NewVerifyHandler(verifyUC, logger),
		AuditLog:   auditHTTP.NewAuditLogHandler(auditUC, logger),
		Note:       notesHTTP.NewNoteHandler(noteUC, logger),
		Settings:   settingsHTTP.NewSettingsHandler(settingsUC, logger),
	}

	mw := http.MiddlewareConfig{
		UserUseCase:      userUC,
		RateLimitEnabled: c.config.RateLimitEnabled,
		RateLimitRPS:     c.config.RateLimitRequestsPerSec,
		RateLimitBurst:   c.config.RateLimitBurst,
		CORSEnabled:      c.config.CORSEnabled,
		CORSAllowOrigins: c.config.CORSAllowOrigins,
		MetricsNamespace: c.config.MetricsNamespace,
	}
	if provider != nil {
		mw.MeterProvider = provider.MeterProvider()
	}

	server := http.NewServer(db, c.config.ServerHost, c.config.ServerPort, logger)
	server.SetupRouter(handlers, mw)

	return server, nil
}

// initMetricsServer creates the metrics server with the Prometheus provider.
func (c *Container) initMetricsServer() (*http.MetricsServer, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for metrics server: %w", err)
	}

	return http.NewMetricsServer(c.config.ServerHost, c.config.MetricsPort, c.Logger(), provider), nil
}
