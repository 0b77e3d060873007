// Package domain defines the shared note model.
package domain

import "time"

// Note is the single team-shared Markdown document.
type Note struct {
	Content     string
	LastSavedAt time.Time
}
