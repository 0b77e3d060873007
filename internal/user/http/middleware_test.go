package http_test

import (
	"context"
	"io"
	"log/slog"
	nethttp "net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	userHTTP "github.com/briefnote/briefnote/internal/user/http"

	"github.com/briefnote/briefnote/internal/user/domain"
	userUseCase "github.com/briefnote/briefnote/internal/user/usecase"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type mockUserUseCase struct {
	mock.Mock
}

func (m *mockUserUseCase) CreateUser(
	ctx context.Context,
	input userUseCase.CreateUserInput,
) (*domain.User, string, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*domain.User), args.String(1), args.Error(2)
}

func (m *mockUserUseCase) Authenticate(ctx context.Context, plainToken string) (*domain.User, error) {
	args := m.Called(ctx, plainToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserUseCase) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserUseCase) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAuthenticationMiddleware(t *testing.T) {
	activeUser := &domain.User{ID: 7, Name: "Ada", IsActive: true}

	t.Run("valid token stores user in context", func(t *testing.T) {
		userUC := &mockUserUseCase{}
		userUC.On("Authenticate", mock.Anything, "token-123").Return(activeUser, nil)

		var seen *domain.User
		router := gin.New()
		router.Use(userHTTP.AuthenticationMiddleware(userUC, testLogger()))
		router.GET("/test", func(c *gin.Context) {
			seen, _ = domain.GetUser(c.Request.Context())
			c.JSON(nethttp.StatusOK, gin.H{"ok": true})
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(nethttp.MethodGet, "/test", nil)
		req.Header.Set("Authorization", "Bearer token-123")
		router.ServeHTTP(w, req)

		assert.Equal(t, nethttp.StatusOK, w.Code)
		assert.Equal(t, activeUser, seen)
	})

	t.Run("case-insensitive bearer prefix", func(t *testing.T) {
		userUC := &mockUserUseCase{}
		userUC.On("Authenticate", mock.Anything, "token-123").Return(activeUser, nil)

		router := gin.New()
		router.Use(userHTTP.AuthenticationMiddleware(userUC, testLogger()))
		router.GET("/test", func(c *gin.Context) {
			c.JSON(nethttp.StatusOK, gin.H{"ok": true})
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(nethttp.MethodGet, "/test", nil)
		req.Header.Set("Authorization", "bearer token-123")
		router.ServeHTTP(w, req)

		assert.Equal(t, nethttp.StatusOK, w.Code)
	})

	t.Run("rejects missing and malformed headers", func(t *testing.T) {
		tests := []struct {
			name   string
			header string
		}{
			{name: "missing header", header: ""},
			{name: "wrong scheme", header: "Basic dXNlcjpwYXNz"},
			{name: "empty token", header: "Bearer "},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				userUC := &mockUserUseCase{}

				router := gin.New()
				router.Use(userHTTP.AuthenticationMiddleware(userUC, testLogger()))
				router.GET("/test", func(c *gin.Context) {
					c.JSON(nethttp.StatusOK, gin.H{"ok": true})
				})

				w := httptest.NewRecorder()
				req := httptest.NewRequest(nethttp.MethodGet, "/test", nil)
				if tt.header != "" {
					req.Header.Set("Authorization", tt.header)
				}
				router.ServeHTTP(w, req)

				assert.Equal(t, nethttp.StatusUnauthorized, w.Code)
				userUC.AssertNotCalled(t, "Authenticate", mock.Anything, mock.Anything)
			})
		}
	})

	t.Run("unknown token is rejected", func(t *testing.T) {
		userUC := &mockUserUseCase{}
		userUC.On("Authenticate", mock.Anything, "bad-token").Return(nil, domain.ErrInvalidToken)

		router := gin.New()
		router.Use(userHTTP.AuthenticationMiddleware(userUC, testLogger()))
		router.GET("/test", func(c *gin.Context) {
			c.JSON(nethttp.StatusOK, gin.H{"ok": true})
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(nethttp.MethodGet, "/test", nil)
		req.Header.Set("Authorization", "Bearer bad-token")
		router.ServeHTTP(w, req)

		assert.Equal(t, nethttp.StatusUnauthorized, w.Code)
	})
}

func TestCapabilityMiddleware(t *testing.T) {
	setupRouter := func(user *domain.User, capability domain.Capability) *gin.Engine {
		router := gin.New()
		router.Use(func(c *gin.Context) {
			if user != nil {
				ctx := domain.WithUser(c.Request.Context(), user)
				c.Request = c.Request.WithContext(ctx)
			}
			c.Next()
		})
		router.Use(userHTTP.CapabilityMiddleware(capability, testLogger()))
		router.GET("/test", func(c *gin.Context) {
			c.JSON(nethttp.StatusOK, gin.H{"ok": true})
		})
		return router
	}

	doRequest := func(router *gin.Engine) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(nethttp.MethodGet, "/test", nil)
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("user with capability passes", func(t *testing.T) {
		user := &domain.User{ID: 7, CanViewCredentials: true}
		w := doRequest(setupRouter(user, domain.CapabilityViewCredentials))
		assert.Equal(t, nethttp.StatusOK, w.Code)
	})

	t.Run("edit capability implies view", func(t *testing.T) {
		user := &domain.User{ID: 7, CanEditCredentials: true}
		w := doRequest(setupRouter(user, domain.CapabilityViewCredentials))
		assert.Equal(t, nethttp.StatusOK, w.Code)
	})

	t.Run("user without capability is forbidden", func(t *testing.T) {
		user := &domain.User{ID: 7, CanViewNotes: true}
		w := doRequest(setupRouter(user, domain.CapabilityEditCredentials))
		assert.Equal(t, nethttp.StatusForbidden, w.Code)
	})

	t.Run("admin holds every capability", func(t *testing.T) {
		user := &domain.User{ID: 1, IsAdmin: true}
		w := doRequest(setupRouter(user, domain.CapabilityEditCredentials))
		assert.Equal(t, nethttp.StatusOK, w.Code)
	})

	t.Run("no user in context is unauthorized", func(t *testing.T) {
		w := doRequest(setupRouter(nil, domain.CapabilityViewCredentials))
		assert.Equal(t, nethttp.StatusUnauthorized, w.Code)
	})
}

func TestAdminMiddleware(t *testing.T) {
	setupRouter := func(user *domain.User) *gin.Engine {
		router := gin.New()
		router.Use(func(c *gin.Context) {
			if user != nil {
				ctx := domain.WithUser(c.Request.Context(), user)
				c.Request = c.Request.WithContext(ctx)
			}
			c.Next()
		})
		router.Use(userHTTP.AdminMiddleware(testLogger()))
		router.GET("/test", func(c *gin.Context) {
			c.JSON(nethttp.StatusOK, gin.H{"ok": true})
		})
		return router
	}

	t.Run("admin passes", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(nethttp.MethodGet, "/test", nil)
		setupRouter(&domain.User{ID: 1, IsAdmin: true}).ServeHTTP(w, req)
		assert.Equal(t, nethttp.StatusOK, w.Code)
	})

	t.Run("non-admin is forbidden", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(nethttp.MethodGet, "/test", nil)
		setupRouter(&domain.User{ID: 7, CanEditCredentials: true}).ServeHTTP(w, req)
		assert.Equal(t, nethttp.StatusForbidden, w.Code)
	})
}
