package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/ttrackr/internal/db"
	"github.com/balkashynov/ttrackr/internal/hierarchy"
	"github.com/balkashynov/ttrackr/internal/parser"
	"github.com/balkashynov/ttrackr/internal/tui"
)

type taskFlags struct {
	allocated string
	notes     string
	due       string
}

func (f *taskFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.allocated, "time", "t", "", "time allocated, in minutes or as a duration like 1h30m")
	cmd.Flags().StringVarP(&f.notes, "notes", "n", "", "notes for the task")
	cmd.Flags().StringVarP(&f.due, "due", "d", "", "due date: yyyy-mm-dd, dd/mm/yyyy, today, tomorrow, 3d, 2w")
}

func newCreateCmd(a *app) *cobra.Command {
	var flags taskFlags

	cmd := &cobra.Command{
		Use:     "create <name>",
		Aliases: []string{"new"},
		Short:   "Create a new task",
		Long: `Create a new task.

Examples:
  ttrackr create work::report -t 90 -d tomorrow
  ttrackr new chores -n "weekly cleanup"`,
		Args: cobra.ExactArgs(1),
		RunE: a.withStore(func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if err := parser.ValidateTaskName(name); err != nil {
				return err
			}

			req := db.CreateTaskRequest{Name: name}
			if cmd.Flags().Changed("time") {
				allocated, err := parser.ParseAllocated(flags.allocated)
				if err != nil {
					return err
				}
				req.Allocated = allocated
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

			task, err := a.store.CreateTask(req)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s.\n", tui.Bold(task.Taskname))

			if parent, ok := hierarchy.Parent(name); ok {
				exists, err := a.store.TaskExists(parent)
				if err != nil {
					return err
				}
				if !exists {
					fmt.Fprintf(cmd.ErrOrStderr(), "Note: parent task %s does not exist.\n", parent)
				}
			}
			return nil
		}),
	}

	flags.register(cmd)
	return cmd
}
