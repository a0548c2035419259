package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pdxmph/tasks-tui/internal/config"
	"github.com/pdxmph/tasks-tui/internal/tasks"
	"github.com/spf13/cobra"
)

func newInitCmd(a *app) *cobra.Command {
	var demo bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		Long: `Write a default config file to ~/.config/tasks-tui/config.toml (or the
--config path). With --demo, also fill an empty task list with sample tasks.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.configPath
			if path == "" {
				var err error
				if path, err = config.Path(); err != nil {
					return err
				}
			}

			if _, err := os.Stat(path); err == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Config already exists at %s\n", path)
			} else if errors.Is(err, os.ErrNotExist) {
				if err := config.Default().SaveTo(path); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			} else {
				return fmt.Errorf("checking config file: %w", err)
			}

			if !demo {
				return nil
			}
			store, err := a.writeStore(cmd)
			if err != nil {
				return err
			}
			if store.Len() > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Task list already has %d task(s); skipping sample tasks\n", store.Len())
				return nil
			}
			if err := tasks.SeedFixtures(store); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %d sample task(s)\n", store.Len())
			return nil
		},
	}
	cmd.Flags().BoolVar(&demo, "demo", false, "Add sample tasks")
	return cmd
}

func newWhenCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "when <expression>",
		Short: "Show the date a due-date expression resolves to",
		Example: `  tasks-tui when next friday
  tasks-tui when "in 3 weeks"
  tasks-tui when end of month`,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.parser().Parse(strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", d, d.Weekday())
			return nil
		},
	}
}
