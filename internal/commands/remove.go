package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/balkashynov/ttrackr/internal/tui"
)

func newRemoveCmd(a *app) *cobra.Command {
	var noConfirm bool

	cmd := &cobra.Command{
		Use:     "remove <name>",
		Aliases: []string{"del", "rm"},
		Short:   "Remove a task and all of its worklogs",
		Args:    cobra.ExactArgs(1),
		RunE: a.withStore(func(cmd *cobra.Command, args []string) error {
			name := args[0]

			// check before prompting so a typo fails without a question
			if _, err := a.store.FindTaskByName(name); err != nil {
				return err
			}

			if !noConfirm {
				if !term.IsTerminal(int(os.Stdin.Fd())) {
					return errors.New("stdin is not a terminal: pass --noconfirm to remove without a prompt")
				}
				ok, err := tui.Confirm(fmt.Sprintf("Remove %s and all of its worklogs?", name))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
					return nil
				}
			}

			if err := a.store.DeleteTask(name); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s.\n", tui.Bold(name))
			return nil
		}),
	}

	cmd.Flags().BoolVar(&noConfirm, "noconfirm", false, "remove without asking")
	return cmd
}
