package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/versus/internal/shared"
	"github.com/desertthunder/versus/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive voting terminal UI.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if r.api == nil {
		return fmt.Errorf("%w: voting API not initialized", shared.ErrServiceUnavailable)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(r.config.TUI.LogFile)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	p := tea.NewProgram(r.newModel(ctx), tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

// newModel builds the TUI model on the runner's API and refresher.
func (r *Runner) newModel(ctx context.Context) *ui.Model {
	return ui.NewModel(ctx, r.api, r.refresher, r.logger)
}
