package httputil_test

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/briefnote/briefnote/internal/httputil"
)

func newTestContext(t *testing.T, query string) *gin.Context {
	t.Helper()

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/?"+query, nil)
	return c
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name            string
		query           string
		expectedPage    int
		expectedPerPage int
		expectError     bool
	}{
		{"defaults", "", 1, 20, false},
		{"explicit values", "page=3&per_page=50", 3, 50, false},
		{"max per_page", "per_page=100", 1, 100, false},
		{"zero page", "page=0", 0, 0, true},
		{"negative page", "page=-1", 0, 0, true},
		{"non-numeric page", "page=abc", 0, 0, true},
		{"zero per_page", "per_page=0", 0, 0, true},
		{"per_page over limit", "per_page=101", 0, 0, true},
		{"non-numeric per_page", "per_page=xyz", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestContext(t, tt.query)

			page, perPage, err := httputil.ParsePagination(c)
			if tt.expectError {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.expectedPage, page)
			assert.Equal(t, tt.expectedPerPage, perPage)
		})
	}
}
