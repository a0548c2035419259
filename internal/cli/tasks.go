package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pdxmph/tasks-tui/internal/tasks"
	"github.com/spf13/cobra"
)

// taskFlags are the editable fields shared by add and edit.
type taskFlags struct {
	due      string
	desc     string
	project  string
	priority string
	tags     string
	recur    string
}

func (f *taskFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.due, "due", "d", "", `Due date, e.g. "friday", "in 2 weeks", "2024-03-01"`)
	cmd.Flags().StringVar(&f.desc, "desc", "", "Description")
	cmd.Flags().StringVarP(&f.project, "project", "p", "", "Project")
	cmd.Flags().StringVar(&f.priority, "priority", "Medium", "Priority: Low, Medium, High, Critical")
	cmd.Flags().StringVarP(&f.tags, "tags", "t", "", "Comma separated tags")
	cmd.Flags().StringVar(&f.recur, "recur", "None", "Recurrence: None, Daily, Weekly, Monthly, Yearly, Weekdays, Weekends")
}

// apply copies the flags the user set onto t. With all set, every flag is
// applied, defaults included.
func (f *taskFlags) apply(a *app, cmd *cobra.Command, t *tasks.Task, all bool) error {
	changed := func(name string) bool { return all || cmd.Flags().Changed(name) }

	if changed("due") {
		due, err := a.parser().Parse(f.due)
		if err != nil {
			return err
		}
		t.DueDate = due
	}
	if changed("desc") {
		t.Description = f.desc
	}
	if changed("project") {
		t.Project = strings.TrimSpace(f.project)
	}
	if changed("priority") {
		p, err := tasks.ParsePriority(f.priority)
		if err != nil {
			return err
		}
		t.Priority = p
	}
	if changed("tags") {
		t.Tags = tasks.ParseTags(f.tags)
	}
	if changed("recur") {
		r, err := tasks.ParseRecurrence(f.recur)
		if err != nil {
			return err
		}
		t.Recurrence = r
	}
	return nil
}

func newAddCmd(a *app) *cobra.Command {
	var flags taskFlags
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.TrimSpace(strings.Join(args, " "))
			if title == "" {
				return errors.New("title must not be empty")
			}
			t := tasks.Task{Title: title}
			if err := flags.apply(a, cmd, &t, true); err != nil {
				return err
			}

			store, err := a.writeStore(cmd)
			if err != nil {
				return err
			}
			added, err := store.Add(t)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s %q due %s\n", shortID(added.ID), added.Title, added.DueDate)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newListCmd(a *app) *cobra.Command {
	var (
		status, priority, project, tag, sortKey string
		overdue, dueSoon, desc, all             bool
	)
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.readStore(cmd)
			if err != nil {
				return err
			}
			cfg, err := a.config()
			if err != nil {
				return err
			}

			filter := tasks.Filter{
				Project:     project,
				Tag:         tag,
				OverdueOnly: overdue,
				DueSoonOnly: dueSoon,
				HideDone:    !cfg.UI.ShowDone && !all,
			}
			if status != "" {
				if filter.Status, err = tasks.ParseStatus(status); err != nil {
					return err
				}
				filter.HideDone = false
			}
			if priority != "" {
				if filter.Priority, err = tasks.ParsePriority(priority); err != nil {
					return err
				}
			}

			state := tasks.SortState{Descending: cfg.UI.Descending}
			if cmd.Flags().Changed("desc") {
				state.Descending = desc
			}
			key := cfg.UI.Sort
			if sortKey != "" {
				key = sortKey
			}
			if state.Key, err = tasks.ParseSortKey(key); err != nil {
				return err
			}

			today := store.Today()
			list := tasks.Sort(filter.Apply(store.All(), today), state)
			if len(list) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No tasks found.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(list, today))
			fmt.Fprintf(cmd.OutOrStdout(), "%d of %d task(s), sorted by %s\n", len(list), store.Len(), state)
			return nil
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "Only tasks with this status")
	cmd.Flags().StringVar(&priority, "priority", "", "Only tasks with this priority")
	cmd.Flags().StringVarP(&project, "project", "p", "", "Only tasks in this project")
	cmd.Flags().StringVarP(&tag, "tag", "t", "", "Only tasks with this tag")
	cmd.Flags().BoolVar(&overdue, "overdue", false, "Only overdue tasks")
	cmd.Flags().BoolVar(&dueSoon, "due-soon", false, "Only tasks due within two days")
	cmd.Flags().StringVarP(&sortKey, "sort", "s", "", "Sort by due, priority, title, created, status or project")
	cmd.Flags().BoolVar(&desc, "desc", false, "Sort descending")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include completed tasks even when ui.show_done is off")
	return cmd
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show task details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.readStore(cmd)
			if err != nil {
				return err
			}
			id, err := store.ResolveID(args[0])
			if err != nil {
				return err
			}
			t, _ := store.Find(id)
			fmt.Fprint(cmd.OutOrStdout(), renderDetail(t, store.Today()))
			return nil
		},
	}
}

func newEditCmd(a *app) *cobra.Command {
	var (
		flags  taskFlags
		title  string
		status string
	)
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of a task",
		Long:  "Change fields of a task. Only the flags given are applied.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.writeStore(cmd)
			if err != nil {
				return err
			}
			id, err := store.ResolveID(args[0])
			if err != nil {
				return err
			}
			t, _ := store.Find(id)

			if cmd.Flags().Changed("title") {
				if strings.TrimSpace(title) == "" {
					return errors.New("title must not be empty")
				}
				t.Title = strings.TrimSpace(title)
			}
			if cmd.Flags().Changed("status") {
				if t.Status, err = tasks.ParseStatus(status); err != nil {
					return err
				}
			}
			if err := flags.apply(a, cmd, &t, false); err != nil {
				return err
			}

			if _, err := store.Update(t); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s %q\n", shortID(t.ID), t.Title)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&status, "status", "", "Status: Pending, InProgress, Done")
	return cmd
}

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status <status> <id>...",
		Short: "Set the status of one or more tasks",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := tasks.ParseStatus(args[0])
			if err != nil {
				return err
			}
			return a.setStatus(cmd, status, args[1:])
		},
	}
}

func newDoneCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>...",
		Short: "Mark tasks as done",
		Long: `Mark tasks as done. A completed recurring task gets its next occurrence
the next time the task list is opened.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.setStatus(cmd, tasks.StatusDone, args)
		},
	}
}

func (a *app) setStatus(cmd *cobra.Command, status tasks.Status, args []string) error {
	store, err := a.writeStore(cmd)
	if err != nil {
		return err
	}
	ids, err := a.resolveIDs(store, cmd.ErrOrStderr(), args)
	if err != nil {
		return err
	}
	if _, err := store.BulkUpdateStatus(ids, status); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Set %d task(s) to %s\n", len(ids), status)
	return nil
}

func newRmCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>...",
		Aliases: []string{"delete"},
		Short:   "Delete tasks",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.writeStore(cmd)
			if err != nil {
				return err
			}
			ids, err := a.resolveIDs(store, cmd.ErrOrStderr(), args)
			if err != nil {
				return err
			}
			if _, err := store.BulkDelete(ids); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d task(s)\n", len(ids))
			return nil
		},
	}
}

func newSearchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "search <term>",
		Short: "Find tasks by title, project, description or tag",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.readStore(cmd)
			if err != nil {
				return err
			}
			var found []tasks.Task
			for t := range store.Search(strings.Join(args, " ")) {
				found = append(found, t)
			}
			if len(found) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No tasks found.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(found, store.Today()))
			return nil
		},
	}
}
