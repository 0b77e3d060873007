package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	nethttp "net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	notesHTTP "github.com/briefnote/briefnote/internal/notes/http"

	notesDomain "github.com/briefnote/briefnote/internal/notes/domain"
	userDomain "github.com/briefnote/briefnote/internal/user/domain"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type mockNoteUseCase struct {
	mock.Mock
}

func (m *mockNoteUseCase) Get(ctx context.Context, actor *userDomain.User) (*notesDomain.Note, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notesDomain.Note), args.Error(1)
}

func (m *mockNoteUseCase) Save(
	ctx context.Context,
	actor *userDomain.User,
	content string,
) (*notesDomain.Note, error) {
	args := m.Called(ctx, actor, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notesDomain.Note), args.Error(1)
}

func (m *mockNoteUseCase) Render(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *mockNoteUseCase) RecordCopy(ctx context.Context, actor *userDomain.User, chars int) error {
	args := m.Called(ctx, actor, chars)
	return args.Error(0)
}

func (m *mockNoteUseCase) RecordPaste(ctx context.Context, actor *userDomain.User, chars int) error {
	args := m.Called(ctx, actor, chars)
	return args.Error(0)
}

func (m *mockNoteUseCase) RecordExport(ctx context.Context, actor *userDomain.User, chars int) error {
	args := m.Called(ctx, actor, chars)
	return args.Error(0)
}

func setupRouter(noteUC *mockNoteUseCase, actor *userDomain.User) *gin.Engine {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := notesHTTP.NewNoteHandler(noteUC, logger)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		if actor != nil {
			ctx := userDomain.WithUser(c.Request.Context(), actor)
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	})
	router.GET("/v1/notes", handler.GetHandler)
	router.PUT("/v1/notes", handler.SaveHandler)
	router.GET("/v1/notes/preview", handler.PreviewHandler)
	router.POST("/v1/notes/events", handler.EventHandler)

	return router
}

func noteActor() *userDomain.User {
	return &userDomain.User{ID: 7, Name: "Ada", CanEditNotes: true}
}

func doJSON(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestNoteHandler_Get(t *testing.T) {
	t.Run("returns the note", func(t *testing.T) {
		noteUC := &mockNoteUseCase{}
		saved := time.Date(2026, 8, 20, 9, 30, 0, 0, time.UTC)
		noteUC.On("Get", mock.Anything, mock.Anything).
			Return(&notesDomain.Note{Content: "# Runbook", LastSavedAt: saved}, nil)

		w := doJSON(setupRouter(noteUC, noteActor()), nethttp.MethodGet, "/v1/notes", nil)
		assert.Equal(t, nethttp.StatusOK, w.Code)

		var response map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "# Runbook", response["content"])
		assert.Contains(t, response, "last_saved_at")
	})

	t.Run("never-saved note omits the save time", func(t *testing.T) {
		noteUC := &mockNoteUseCase{}
		noteUC.On("Get", mock.Anything, mock.Anything).Return(&notesDomain.Note{}, nil)

		w := doJSON(setupRouter(noteUC, noteActor()), nethttp.MethodGet, "/v1/notes", nil)
		assert.Equal(t, nethttp.StatusOK, w.Code)

		var response map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.NotContains(t, response, "last_saved_at")
	})

	t.Run("unauthenticated request is rejected", func(t *testing.T) {
		noteUC := &mockNoteUseCase{}

		w := doJSON(setupRouter(noteUC, nil), nethttp.MethodGet, "/v1/notes", nil)
		assert.Equal(t, nethttp.StatusUnauthorized, w.Code)
	})
}

func TestNoteHandler_Save(t *testing.T) {
	noteUC := &mockNoteUseCase{}
	saved := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	noteUC.On("Save", mock.Anything, mock.Anything, "updated content").
		Return(&notesDomain.Note{Content: "updated content", LastSavedAt: saved}, nil)

	w := doJSON(setupRouter(noteUC, noteActor()), nethttp.MethodPut, "/v1/notes", map[string]string{
		"content": "updated content",
	})
	assert.Equal(t, nethttp.StatusOK, w.Code)

	var response map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "updated content", response["content"])
}

func TestNoteHandler_Preview(t *testing.T) {
	noteUC := &mockNoteUseCase{}
	noteUC.On("Render", mock.Anything).Return("<h1>Runbook</h1>", nil)

	w := doJSON(setupRouter(noteUC, noteActor()), nethttp.MethodGet, "/v1/notes/preview", nil)
	assert.Equal(t, nethttp.StatusOK, w.Code)

	var response map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "<h1>Runbook</h1>", response["html"])
}

func TestNoteHandler_Events(t *testing.T) {
	tests := []struct {
		name       string
		event      string
		mockMethod string
	}{
		{name: "copy", event: "copy", mockMethod: "RecordCopy"},
		{name: "paste", event: "paste", mockMethod: "RecordPaste"},
		{name: "export", event: "export", mockMethod: "RecordExport"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			noteUC := &mockNoteUseCase{}
			noteUC.On(tt.mockMethod, mock.Anything, mock.Anything, 42).Return(nil)

			w := doJSON(setupRouter(noteUC, noteActor()), nethttp.MethodPost, "/v1/notes/events", map[string]any{
				"event": tt.event,
				"chars": 42,
			})
			assert.Equal(t, nethttp.StatusNoContent, w.Code)
			noteUC.AssertCalled(t, tt.mockMethod, mock.Anything, mock.Anything, 42)
		})
	}

	t.Run("unknown event is rejected", func(t *testing.T) {
		noteUC := &mockNoteUseCase{}

		w := doJSON(setupRouter(noteUC, noteActor()), nethttp.MethodPost, "/v1/notes/events", map[string]any{
			"event": "print",
			"chars": 42,
		})
		assert.Equal(t, nethttp.StatusUnprocessableEntity, w.Code)
	})
}
