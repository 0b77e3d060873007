package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_Render(t *testing.T) {
	renderer := NewRenderer()

	t.Run("renders basic markdown", func(t *testing.T) {
		out, err := renderer.Render("# Runbook\n\nSome **bold** text.")
		require.NoError(t, err)

		assert.Contains(t, out, "<h1")
		assert.Contains(t, out, "Runbook")
		assert.Contains(t, out, "<strong>bold</strong>")
	})

	t.Run("renders GFM tables", func(t *testing.T) {
		out, err := renderer.Render("| a | b |\n|---|---|\n| 1 | 2 |")
		require.NoError(t, err)

		assert.Contains(t, out, "<table>")
	})

	t.Run("strips script tags", func(t *testing.T) {
		out, err := renderer.Render("hello <script>alert('xss')</script> world")
		require.NoError(t, err)

		assert.NotContains(t, out, "<script>")
		assert.NotContains(t, out, "alert")
	})

	t.Run("strips event handler attributes", func(t *testing.T) {
		out, err := renderer.Render(`<a href="https://example.com" onclick="steal()">link</a>`)
		require.NoError(t, err)

		assert.NotContains(t, out, "onclick")
		assert.Contains(t, out, "example.com")
	})

	t.Run("empty input renders empty", func(t *testing.T) {
		out, err := renderer.Render("")
		require.NoError(t, err)
		assert.Empty(t, out)
	})
}
