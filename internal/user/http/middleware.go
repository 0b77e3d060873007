// Package http provides HTTP middleware for authentication and authorization.
package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	auditDomain "github.com/briefnote/briefnote/internal/audit/domain"
	apperrors "github.com/briefnote/briefnote/internal/errors"
	"github.com/briefnote/briefnote/internal/httputil"
	"github.com/briefnote/briefnote/internal/user/domain"
	userUseCase "github.com/briefnote/briefnote/internal/user/usecase"
)

// AuthenticationMiddleware authenticates requests via Bearer token in the
// Authorization header.
//
// The middleware:
// 1. Extracts the Bearer token from the Authorization header (case-insensitive)
// 2. Resolves the token to an active user via userUseCase.Authenticate()
// 3. Stores the authenticated user in the request context
// 4. Stores the client IP in the request context for audit attribution
//
// Error handling:
//   - Missing Authorization header → 401 Unauthorized
//   - Malformed Authorization header → 401 Unauthorized
//   - Unknown token → 401 Unauthorized
//   - Inactive user → 401 Unauthorized
func AuthenticationMiddleware(
	userUC userUseCase.UseCase,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Debug("authentication failed: missing authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		// Parse Bearer token (case-insensitive)
		const bearerPrefix = "bearer "
		if len(authHeader) < len(bearerPrefix) ||
			!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			logger.Debug("authentication failed: malformed authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		plainToken := authHeader[len(bearerPrefix):]
		if plainToken == "" {
			logger.Debug("authentication failed: empty bearer token")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		user, err := userUC.Authenticate(c.Request.Context(), plainToken)
		if err != nil {
			logger.Debug("authentication failed", slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		// Store the authenticated user and the client IP in the context so
		// usecases can attribute audit entries without seeing HTTP types.
		ctx := domain.WithUser(c.Request.Context(), user)
		ctx = auditDomain.WithClientIP(ctx, c.ClientIP())
		c.Request = c.Request.WithContext(ctx)

		logger.Debug("authentication successful",
			slog.Int64("user_id", user.ID),
			slog.String("user_name", user.Name))

		c.Next()
	}
}

// CapabilityMiddleware rejects requests from users lacking the given
// capability. MUST be used after AuthenticationMiddleware.
//
// Error handling:
//   - No user in context → 401 Unauthorized
//   - User lacks capability → 403 Forbidden
func CapabilityMiddleware(capability domain.Capability, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := domain.GetUser(c.Request.Context())
		if !ok || user == nil {
			logger.Debug("authorization failed: no authenticated user in context")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		if !user.Has(capability) {
			logger.Debug("authorization failed: missing capability",
				slog.Int64("user_id", user.ID),
				slog.String("capability", string(capability)))
			httputil.HandleErrorGin(c, apperrors.ErrForbidden, logger)
			c.Abort()
			return
		}

		c.Next()
	}
}

// AdminMiddleware rejects requests from non-admin users. MUST be used after
// AuthenticationMiddleware.
func AdminMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := domain.GetUser(c.Request.Context())
		if !ok || user == nil {
			logger.Debug("authorization failed: no authenticated user in context")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		if !user.IsAdmin {
			logger.Debug("authorization failed: admin required",
				slog.Int64("user_id", user.ID))
			httputil.HandleErrorGin(c, apperrors.ErrForbidden, logger)
			c.Abort()
			return
		}

		c.Next()
	}
}
