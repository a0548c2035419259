package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdxmph/tasks-tui/internal/tasks"
	"github.com/spf13/cobra"
)

func newProjectsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "projects",
		Short: "List project names in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.readStore(cmd)
			if err != nil {
				return err
			}
			for _, p := range store.GetAllProjects() {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}
}

func newTagsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List tags in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.readStore(cmd)
			if err != nil {
				return err
			}
			for _, t := range store.GetAllTags() {
				fmt.Fprintln(cmd.OutOrStdout(), t)
			}
			return nil
		},
	}
}

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show task counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.readStore(cmd)
			if err != nil {
				return err
			}
			stats := store.GetTaskStatistics()
			for _, key := range tasks.StatisticKeys {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %d\n", labelStyle.Render(key), stats[key])
			}
			return nil
		},
	}
}

func newExportCmd(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export active tasks as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.readStore(cmd)
			if err != nil {
				return err
			}

			if out == "" {
				if err := tasks.ExportCSV(cmd.OutOrStdout(), store.All()); err != nil {
					return fmt.Errorf("exporting tasks: %w", err)
				}
				return nil
			}
			if err := exportFile(out, store.All()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d task(s) to %s\n", store.Len(), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write to this file instead of stdout")
	return cmd
}

// exportFile writes list as CSV to path. A failed close is reported since
// it can lose buffered data.
func exportFile(path string, list []tasks.Task) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating export directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing export file: %w", cerr)
		}
	}()

	if err := tasks.ExportCSV(f, list); err != nil {
		return fmt.Errorf("exporting tasks: %w", err)
	}
	return nil
}

func newBackendsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "backends",
		Short: "List available storage backends",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			current, path, err := a.storage()
			if err != nil {
				return err
			}
			for _, name := range tasks.ListBackends() {
				marker := " "
				if name == current {
					marker = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", marker, name)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\ndata: %s\n", path)
			return nil
		},
	}
}
