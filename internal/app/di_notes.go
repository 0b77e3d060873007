package app

import (
	"fmt"

	notesService "github.com/briefnote/briefnote/internal/notes/service"
	notesUseCase "github.com/briefnote/briefnote/internal/notes/usecase"
)

// NoteRenderer returns the Markdown renderer for the shared note.
func (c *Container) NoteRenderer() *notesService.Renderer {
	c.noteRendererInit.Do(func() {
		c.noteRenderer = notesService.NewRenderer()
	})
	return c.noteRenderer
}

// NoteUseCase returns the shared note use case instance.
func (c *Container) NoteUseCase() (notesUseCase.UseCase, error) {
	var err error
	c.notesUCInit.Do(func() {
		c.notesUC, err = c.initNoteUseCase()
		if err != nil {
			c.initErrors["noteUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["noteUseCase"]; exists {
		return nil, storedErr
	}
	return c.notesUC, nil
}

// initNoteUseCase creates the note use case with all its dependencies.
func (c *Container) initNoteUseCase() (notesUseCase.UseCase, error) {
	optionRepo, err := c.OptionRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get option repository for note use case: %w", err)
	}

	auditUC, err := c.AuditLogUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit log use case for note use case: %w", err)
	}

	return notesUseCase.NewNoteUseCase(optionRepo, c.NoteRenderer(), auditUC, c.Logger()), nil
}
