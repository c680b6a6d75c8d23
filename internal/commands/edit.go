package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/ttrackr/internal/db"
	"github.com/balkashynov/ttrackr/internal/parser"
	"github.com/balkashynov/ttrackr/internal/tui"
)

func newEditCmd(a *app) *cobra.Command {
	var (
		flags  taskFlags
		done   bool
		undone bool
	)

	cmd := &cobra.Command{
		Use:   "edit <name>",
		Short: "Edit an existing task",
		Long: `Edit an existing task. Only the fields given as flags change.

Examples:
  ttrackr edit work::report -t 2h
  ttrackr edit work::report --done`,
		Args: cobra.ExactArgs(1),
		RunE: a.withStore(func(cmd *cobra.Command, args []string) error {
			name := args[0]
			var req db.UpdateTaskRequest

			if cmd.Flags().Changed("time") {
				allocated, err := parser.ParseAllocated(flags.allocated)
				if err != nil {
					return err
				}
				req.Allocated = &allocated
			}
			if cmd.Flags().Changed("notes") {
				req.Notes = &flags.notes
			}
			if cmd.Flags().Changed("due") {
				due, err := parser.ParseDueDate(flags.due, time.Now())
				if err != nil {
					return err
				}
				req.Duedate = &due
			}
			switch {
			case done:
				req.Done = &done
			case undone:
				value := false
				req.Done = &value
			}

			task, err := a.store.UpdateTask(name, req)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s.\n", tui.Bold(task.Taskname))
			return nil
		}),
	}

	flags.register(cmd)
	cmd.Flags().BoolVarP(&done, "done", "f", false, "mark the task as done")
	cmd.Flags().BoolVar(&undone, "undone", false, "mark the task as not done")
	cmd.MarkFlagsMutuallyExclusive("done", "undone")
	return cmd
}

func newDoneCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "done <name>",
		Short: "Mark a task as done, stopping it if it is running",
		Args:  cobra.ExactArgs(1),
		RunE: a.withStore(func(cmd *cobra.Command, args []string) error {
			name := args[0]
			out := cmd.OutOrStdout()

			worklog, err := a.store.StopWorklog(name)
			switch {
			case err == nil:
				fmt.Fprintf(out, "%s stopped at %s.\n", tui.Bold(name), localTime(worklog.Stopped.Time))
			case !errors.Is(err, db.ErrNotRunning):
				return err
			}

			if err := setDone(a.store, name, true); err != nil {
				return err
			}
			fmt.Fprintf(out, "Marked %s as done.\n", tui.Bold(name))
			return nil
		}),
	}
}

func newUndoneCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "undone <name>",
		Short: "Mark a done task as not done",
		Args:  cobra.ExactArgs(1),
		RunE: a.withStore(func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if err := setDone(a.store, name, false); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Marked %s as not done.\n", tui.Bold(name))
			return nil
		}),
	}
}

func setDone(store *db.Store, name string, done bool) error {
	_, err := store.UpdateTask(name, db.UpdateTaskRequest{Done: &done})
	return err
}

func localTime(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04:05")
}
