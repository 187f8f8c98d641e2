package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"matrixlens/cmd/matrixlens/ui"
	"matrixlens/internal/matrix"
)

// runInteractive starts the terminal interface, the default when the
// tool runs without a subcommand.
func runInteractive(cmd *cobra.Command, args []string) error {
	_, cat, err := buildCatalog()
	if err != nil {
		return err
	}

	var watcher *matrix.Watcher
	if !noWatch {
		watcher, err = cat.Accessor().Watch(cat.MatrixPaths()...)
		if err != nil {
			// Watching is a convenience; run without it.
			watcher = nil
		} else {
			defer watcher.Close()
		}
	}

	program := tea.NewProgram(ui.NewModel(cat, versionName, watcher), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("interactive session failed: %w", err)
	}
	return nil
}
