package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/ilhamrafi44/ayp/internal/session"
)

// Run starts the interactive app and returns what happened once it exits
func Run(ctx context.Context, backend Backend, store session.Store, log zerolog.Logger, opts Options) (Result, error) {
	model, err := NewApp(ctx, backend, store, log, opts)
	if err != nil {
		return Result{}, err
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	finalModel, err := p.Run()
	if err != nil {
		return Result{}, fmt.Errorf("failed to run TUI: %w", err)
	}

	app, ok := finalModel.(App)
	if !ok {
		return Result{}, fmt.Errorf("unexpected model type %T", finalModel)
	}
	return app.Result(), nil
}
