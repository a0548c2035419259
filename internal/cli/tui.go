package cli

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pdxmph/tasks-tui/internal/tasks"
	"github.com/pdxmph/tasks-tui/internal/tui"
	"github.com/spf13/cobra"
)

func newTUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive view (default)",
		Args:  cobra.NoArgs,
		RunE:  a.runTUI,
	}
}

// runTUI sends log output to a file next to the task data so it does not
// draw over the alternate screen, then starts the interactive program. A
// failed load is shown inside the program instead of stopping it.
func (a *app) runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := a.config()
	if err != nil {
		return err
	}
	_, path, err := a.storage()
	if err != nil {
		return err
	}

	logDir := filepath.Dir(path)
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	f, err := tea.LogToFile(filepath.Join(logDir, "tasks-tui.log"), "tasks-tui")
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer f.Close()
	a.logger = log.Default()

	store, err := a.openStore()
	if store == nil {
		return err
	}

	sortKey, err := tasks.ParseSortKey(cfg.UI.Sort)
	if err != nil {
		return err
	}
	return tui.Run(store, tui.Options{
		Sort:     tasks.SortState{Key: sortKey, Descending: cfg.UI.Descending},
		HideDone: !cfg.UI.ShowDone,
		Clock:    a.clock,
	})
}
