package viz

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/helix/internal/stage"
)

// Run takes over the terminal until the user quits. Inline keeps the normal
// screen buffer instead of switching to the alternate screen.
func Run(st *stage.Stage, opts Options) error {
	progOpts := []tea.ProgramOption{tea.WithMouseCellMotion()}
	if !opts.Inline {
		progOpts = append(progOpts, tea.WithAltScreen())
	}
	p := tea.NewProgram(NewModel(st, opts), progOpts...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("terminal ui: %w", err)
	}
	return nil
}
