package cli

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"slices"
	"time"

	"github.com/pdxmph/tasks-tui/internal/config"
	"github.com/pdxmph/tasks-tui/internal/date"
	"github.com/pdxmph/tasks-tui/internal/tasks"
	"github.com/pdxmph/tasks-tui/internal/tasks/filestore"
	"github.com/spf13/cobra"
)

// app carries the global flags and the lazily opened store shared by all
// commands of one invocation.
type app struct {
	configPath string
	dataPath   string
	backend    string
	force      bool

	clock  func() time.Time
	logger *log.Logger

	cfg   *config.Config
	store *tasks.Store
}

func newApp() *app {
	return &app{
		clock:  time.Now,
		logger: log.New(os.Stderr, "", 0),
	}
}

// Execute runs the root command
func Execute(version string) error {
	root := newRootCmd(newApp())
	root.Version = version
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "tasks-tui",
		Short: "A personal task tracker",
		Long: `tasks-tui tracks tasks with due dates, priorities, projects, tags and
recurrence rules, stored in a plain JSON or YAML file.

Run without a subcommand to open the interactive view. Due dates accept
natural language such as "tomorrow", "next friday" or "in 3 weeks".`,
		RunE:          a.runTUI, // Default action is the interactive view
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file (default ~/.config/tasks-tui/config.toml)")
	root.PersistentFlags().StringVar(&a.dataPath, "data", "", "Task file, overriding storage.path")
	root.PersistentFlags().StringVar(&a.backend, "backend", "", "Storage backend, overriding storage.backend")
	root.PersistentFlags().BoolVar(&a.force, "force", false, "Allow changes even when the task file could not be loaded")

	root.AddCommand(
		newAddCmd(a),
		newListCmd(a),
		newShowCmd(a),
		newEditCmd(a),
		newStatusCmd(a),
		newDoneCmd(a),
		newRmCmd(a),
		newSearchCmd(a),
		newProjectsCmd(a),
		newTagsCmd(a),
		newStatsCmd(a),
		newExportCmd(a),
		newWhenCmd(a),
		newInitCmd(a),
		newBackendsCmd(a),
		newTUICmd(a),
	)
	return root
}

// config loads the configuration once, honoring --config.
func (a *app) config() (*config.Config, error) {
	if a.cfg != nil {
		return a.cfg, nil
	}
	var (
		cfg *config.Config
		err error
	)
	if a.configPath != "" {
		cfg, err = config.LoadFrom(a.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	a.cfg = cfg
	return cfg, nil
}

// storage resolves the backend name and path: flags, then config, then
// defaults. A --data path ending in .yaml/.yml picks the yaml backend unless
// --backend says otherwise.
func (a *app) storage() (backend, path string, err error) {
	cfg, err := a.config()
	if err != nil {
		return "", "", err
	}
	backend, path = cfg.Storage.Backend, cfg.Storage.Path
	if a.dataPath != "" {
		path = a.dataPath
		if a.backend == "" {
			backend = string(filestore.FormatForPath(path))
		}
	}
	if a.backend != "" {
		backend = a.backend
	}
	return backend, path, nil
}

// openStore opens the store without applying any load-warning policy. The
// returned error is the load error; the store is usable regardless.
func (a *app) openStore() (*tasks.Store, error) {
	if a.store != nil {
		return a.store, a.store.LoadWarning()
	}
	name, path, err := a.storage()
	if err != nil {
		return nil, err
	}
	backend, err := tasks.CreateBackend(name, tasks.BackendOptions{Path: path, Logger: a.logger})
	if err != nil {
		return nil, fmt.Errorf("opening storage: %w (available: %v)", err, tasks.ListBackends())
	}
	store, err := tasks.Open(backend, tasks.WithClock(a.clock), tasks.WithLogger(a.logger))
	a.store = store
	if err != nil && store.LoadWarning() == nil {
		// the load succeeded but the rollover could not be saved
		a.logger.Printf("warning: %v", err)
		return store, nil
	}
	return store, err
}

// readStore opens the store for a read-only command. A failed load is
// reported but does not stop the command.
func (a *app) readStore(cmd *cobra.Command) (*tasks.Store, error) {
	store, err := a.openStore()
	if store == nil {
		return nil, err
	}
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
	}
	return store, nil
}

// writeStore opens the store for a command that changes tasks. When the
// task file could not be loaded, saving would replace it with an empty
// list, so the command refuses unless --force is set.
func (a *app) writeStore(cmd *cobra.Command) (*tasks.Store, error) {
	store, err := a.openStore()
	if store == nil {
		return nil, err
	}
	if err != nil {
		if !a.force {
			return nil, fmt.Errorf("%w\nthe task file was left untouched; rerun with --force to start from an empty list", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v (continuing because of --force)\n", err)
	}
	return store, nil
}

func (a *app) parser() *date.Parser {
	return date.NewParser(date.WithClock(a.clock))
}

// resolveIDs expands id prefixes, reporting the ones that match nothing.
func (a *app) resolveIDs(store *tasks.Store, w io.Writer, args []string) ([]string, error) {
	var ids []string
	for _, arg := range args {
		id, err := store.ResolveID(arg)
		if err != nil {
			fmt.Fprintf(w, "skipping: %v\n", err)
			continue
		}
		if !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil, errors.New("no matching tasks")
	}
	return ids, nil
}
