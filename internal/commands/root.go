package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balkashynov/ttrackr/internal/config"
	"github.com/balkashynov/ttrackr/internal/db"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// app holds what the commands share: flag values, the loaded config and
// the open store.
type app struct {
	configPath string
	dbPath     string
	debug      bool

	cfg   *config.Config
	store *db.Store
}

// NewRootCmd builds the command tree
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "ttrackr",
		Short: "Track time spent on tasks",
		Long: `ttrackr tracks time spent on hierarchically named tasks.

Create a task once, then start and stop sessions against it. Task names
use "::" to nest, so "work::report" is a child of "work" and filters on
"work" include it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default ~/"+config.FileName+")")
	rootCmd.PersistentFlags().StringVar(&a.dbPath, "dbfile", "", "database file (overrides the config file)")
	rootCmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "log SQL statements to stderr")

	rootCmd.AddCommand(newCreateCmd(a))
	rootCmd.AddCommand(newEditCmd(a))
	rootCmd.AddCommand(newRemoveCmd(a))
	rootCmd.AddCommand(newListCmd(a))
	rootCmd.AddCommand(newStartCmd(a))
	rootCmd.AddCommand(newStopCmd(a))
	rootCmd.AddCommand(newStatusCmd(a))
	rootCmd.AddCommand(newSpentCmd(a))
	rootCmd.AddCommand(newDoneCmd(a))
	rootCmd.AddCommand(newUndoneCmd(a))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// open loads the config file, creating it on first run, and opens the
// database it points at.
func (a *app) open(cmd *cobra.Command) error {
	cfg, createdAt, err := config.LoadOrCreate(a.configPath)
	if err != nil {
		return err
	}
	if createdAt != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Created config file at %s\n", createdAt)
	}

	dbPath := cfg.Database.Path
	if a.dbPath != "" {
		dbPath = a.dbPath
	}

	store, err := db.Open(db.Options{
		Path:      dbPath,
		Debug:     a.debug,
		LogWriter: cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.store = store
	return nil
}

// withStore wraps a command function to open the store first and close
// it afterwards
func (a *app) withStore(fn func(*cobra.Command, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := a.open(cmd); err != nil {
			return err
		}
		defer a.store.Close()
		return fn(cmd, args)
	}
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ttrackr %s (commit %s, built %s)\n", version, commit, date)
		},
	}
}
