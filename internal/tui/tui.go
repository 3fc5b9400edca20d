package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tartampluch/go-datefield/internal/config"
	"github.com/tartampluch/go-datefield/internal/engine"
)

// Run starts the terminal editor and blocks until the user quits or ctx is
// cancelled. It returns the last committed Date, if any.
func Run(ctx context.Context, clock engine.Clock, onCommitted func(engine.Date)) (engine.Date, bool, error) {
	m := NewModel(engine.NewParser(clock))
	m.OnCommitted = onCommitted

	final, err := tea.NewProgram(m, tea.WithContext(ctx)).Run()
	if err != nil && !(errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil) {
		return engine.Date{}, false, fmt.Errorf("%s: %w", config.ErrTUI, err)
	}

	fm, ok := final.(Model)
	if !ok {
		return engine.Date{}, false, nil
	}
	d, parsed := fm.Date()
	return d, parsed, nil
}
