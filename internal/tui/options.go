package tui

import (
	"context"

	"github.com/atotto/clipboard"
	"github.com/hylla/tavla/internal/domain"
	"github.com/hylla/tavla/internal/layout"
)

// SaveFunc persists one full board snapshot.
type SaveFunc func(ctx context.Context, tasks []domain.Task, colors map[string]string) error

// Option configures a Model at construction time.
type Option func(*Model)

// WithLayoutMode sets the starting display arrangement.
func WithLayoutMode(mode layout.Mode) Option {
	return func(m *Model) {
		if mode.Valid() {
			m.layoutMode = mode
		}
	}
}

// WithDefaultCategory sets the category prefilled into the add form.
func WithDefaultCategory(category string) Option {
	return func(m *Model) {
		if category != "" {
			m.defaultCategory = category
		}
	}
}

// WithSaveFunc sets the snapshot persistence callback used by the save
// and save-and-quit commands.
func WithSaveFunc(save SaveFunc) Option {
	return func(m *Model) {
		if save != nil {
			m.saveFunc = save
		}
	}
}

// WithClipboardFunc replaces the system clipboard writer. Tests inject
// a capture function.
func WithClipboardFunc(write func(string) error) Option {
	return func(m *Model) {
		if write != nil {
			m.clipboardWrite = write
		}
	}
}

// defaultClipboardWrite copies text to the system clipboard.
func defaultClipboardWrite(text string) error {
	return clipboard.WriteAll(text)
}
