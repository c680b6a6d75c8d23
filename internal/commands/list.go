package commands

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/balkashynov/ttrackr/internal/db"
	"github.com/balkashynov/ttrackr/internal/models"
	"github.com/balkashynov/ttrackr/internal/tui"
)

// taskRow is one listed task with its spent time
type taskRow struct {
	Name      string  `json:"name"`
	Created   string  `json:"created"`
	Allocated int64   `json:"allocated_seconds"`
	Spent     int64   `json:"spent_seconds"`
	Due       *string `json:"due,omitempty"`
	Done      bool    `json:"done"`
	Notes     *string `json:"notes,omitempty"`
}

func newListCmd(a *app) *cobra.Command {
	var (
		filter   string
		status   string
		jsonFlag bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		Long: `List tasks in creation order.

A filter selects a task and everything below it, so -f work shows
work, work::report and work::report::draft but not workshop.`,
		Args: cobra.NoArgs,
		RunE: a.withStore(func(cmd *cobra.Command, args []string) error {
			st, err := db.ParseStatus(status)
			if err != nil {
				return err
			}

			tasks, err := a.store.ListTasks(db.ListOptions{Filter: filter, Status: st})
			if err != nil {
				return err
			}

			rows := make([]taskRow, 0, len(tasks))
			for _, task := range tasks {
				row, err := newTaskRow(a.store, task)
				if err != nil {
					return err
				}
				rows = append(rows, row)
			}

			out := cmd.OutOrStdout()
			if jsonFlag {
				encoder := json.NewEncoder(out)
				encoder.SetIndent("", "  ")
				return encoder.Encode(rows)
			}

			if len(rows) == 0 {
				fmt.Fprintln(out, "No tasks found. Use 'ttrackr create <name>' to create one.")
				return nil
			}
			fmt.Fprintln(out, taskTable(rows))
			return nil
		}),
	}

	cmd.Flags().StringVarP(&filter, "filter", "f", "", "only list this task and its subtasks")
	cmd.Flags().StringVarP(&status, "status", "s", "all", "filter by status: all, done, incomplete")
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "print tasks as JSON")
	return cmd
}

func newTaskRow(store *db.Store, task models.Task) (taskRow, error) {
	spent, err := store.TotalSpent(task.Taskname)
	if err != nil {
		return taskRow{}, err
	}
	return taskRow{
		Name:      task.Taskname,
		Created:   task.Created.String(),
		Allocated: task.Allocated,
		Spent:     spent,
		Due:       task.Duedate,
		Done:      task.Done,
		Notes:     task.Notes,
	}, nil
}

func taskTable(rows []taskRow) string {
	cells := make([][]string, 0, len(rows))
	for _, row := range rows {
		cells = append(cells, []string{
			row.Name,
			tui.FormatDuration(row.Allocated, true, "-"),
			tui.FormatDuration(row.Spent, true, "0 seconds"),
			deref(row.Due, "-"),
			strconv.FormatBool(row.Done),
			deref(row.Notes, ""),
		})
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(tui.ColorAccentBright)).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color(tui.ColorBorder))).
		Headers("NAME", "ALLOCATED", "SPENT", "DUE", "DONE", "NOTES").
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	return t.String()
}

func deref(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
