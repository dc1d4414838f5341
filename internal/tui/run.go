package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive console on ctrl and blocks until the user quits
// or ctx is cancelled. ctrl must not have been initialized yet.
func Run(ctx context.Context, ctrl Controller, opts ...Option) error {
	if ctrl == nil {
		return fmt.Errorf("controller is required")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Restore the terminal even if the program dies mid-frame.
	defer func() {
		_, _ = os.Stdout.Write([]byte("\033[?1049l")) // exit alternate screen
		_, _ = os.Stdout.Write([]byte("\033[?25h"))   // show cursor
		_, _ = os.Stdout.Write([]byte("\033[m"))      // reset colors
	}()

	p := tea.NewProgram(newModel(ctx, ctrl, cfg), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
