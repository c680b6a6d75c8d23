package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/balkashynov/ttrackr/internal/db"
	"github.com/balkashynov/ttrackr/internal/models"
	"github.com/balkashynov/ttrackr/internal/tui"
)

func newStartCmd(a *app) *cobra.Command {
	var ui bool

	cmd := &cobra.Command{
		Use:   "start <name>...",
		Short: "Start tracking time on one or more tasks",
		Long: `Start tracking time on one or more tasks. Tasks start in order and the
first failure stops the rest.

Examples:
  ttrackr start work::report
  ttrackr start work::report --ui   # open the live timer`,
		Args: cobra.MinimumNArgs(1),
		RunE: a.withStore(func(cmd *cobra.Command, args []string) error {
			if ui && len(args) != 1 {
				return errors.New("--ui takes exactly one task")
			}

			out := cmd.OutOrStdout()
			for i, name := range args {
				worklog, err := a.store.StartWorklog(name)
				if err != nil {
					notStarted(cmd.ErrOrStderr(), args[i+1:])
					return err
				}
				fmt.Fprintf(out, "%s started at %s.\n", tui.Bold(name), localTime(worklog.Started.Time))
			}

			if !ui {
				return nil
			}
			task, err := a.store.FindTaskByName(args[0])
			if err != nil {
				return err
			}
			return tui.RunTimer(a.store, task.Taskname, task.Allocated, out)
		}),
	}

	cmd.Flags().BoolVar(&ui, "ui", false, "open the live timer after starting")
	return cmd
}

func newStopCmd(a *app) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "stop <name>...",
		Short: "Stop tracking time on one or more tasks",
		Long: `Stop tracking time on one or more tasks. Tasks stop in order and the
first failure stops the rest; tasks already stopped stay stopped.

With autodone set in the config file, a task whose spent time reaches
its allocation is marked done.`,
		RunE: a.withStore(func(cmd *cobra.Command, args []string) error {
			if all {
				if len(args) > 0 {
					return errors.New("--all takes no task names")
				}
				running, err := a.store.RunningTasks("")
				if err != nil {
					return err
				}
				if len(running) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No running tasks.")
					return nil
				}
				for _, task := range running {
					args = append(args, task.Name)
				}
			} else if len(args) == 0 {
				return errors.New("requires at least 1 task name, or --all")
			}

			stopped, stopErr := a.store.StopWorklogs(args)
			for i, worklog := range stopped {
				if err := a.reportStop(cmd.OutOrStdout(), args[i], worklog); err != nil {
					return err
				}
			}
			if stopErr != nil {
				notStopped(cmd.ErrOrStderr(), args[len(stopped)+1:])
			}
			return stopErr
		}),
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "stop every running task")
	return cmd
}

// reportStop prints a finished session and applies autodone.
func (a *app) reportStop(out io.Writer, name string, worklog models.Worklog) error {
	fmt.Fprintf(out, "%s stopped at %s after %s.\n",
		tui.Bold(name),
		localTime(worklog.Stopped.Time),
		tui.FormatDuration(worklog.Duration, false, "0 seconds"))

	if !a.cfg.AutoDone {
		return nil
	}
	task, err := a.store.FindTaskByName(name)
	if err != nil {
		return err
	}
	if task.Done || task.Allocated <= 0 {
		return nil
	}
	spent, err := a.store.TotalSpent(name)
	if err != nil {
		return err
	}
	if spent < task.Allocated {
		return nil
	}
	if err := setDone(a.store, name, true); err != nil {
		return err
	}
	fmt.Fprintf(out, "%s reached its allocated %s and is now done.\n",
		tui.Bold(name), tui.FormatDuration(task.Allocated, true, "0 seconds"))
	return nil
}

func notStarted(w io.Writer, rest []string) {
	if len(rest) > 0 {
		fmt.Fprintf(w, "Not started: %v\n", rest)
	}
}

func notStopped(w io.Writer, rest []string) {
	if len(rest) > 0 {
		fmt.Fprintf(w, "Not stopped: %v\n", rest)
	}
}

func newStatusCmd(a *app) *cobra.Command {
	var (
		filter string
		watch  bool
	)

	cmd := &cobra.Command{
		Use:     "status",
		Aliases: []string{"running"},
		Short:   "Show running tasks",
		Args:    cobra.NoArgs,
		RunE: a.withStore(func(cmd *cobra.Command, args []string) error {
			if watch {
				return tui.RunBoard(a.store, filter)
			}

			running, err := a.store.RunningTasks(filter)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(running) == 0 {
				fmt.Fprintln(out, "No running tasks.")
				return nil
			}
			fmt.Fprintln(out, tui.RunningTable(running, -1))
			return nil
		}),
	}

	cmd.Flags().StringVarP(&filter, "filter", "f", "", "only show this task and its subtasks")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "open a live board of running tasks")
	return cmd
}

func newSpentCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "spent <name>",
		Short: "Show the total time spent on a task",
		Args:  cobra.ExactArgs(1),
		RunE: a.withStore(func(cmd *cobra.Command, args []string) error {
			spent, err := a.store.TotalSpent(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", tui.Bold(args[0]), tui.FormatDuration(spent, false, "0 seconds"))
			return nil
		}),
	}
}

// db.Store backs the live views.
var _ tui.SessionStore = (*db.Store)(nil)
