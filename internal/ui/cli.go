// Package ui implements the command line interface.
package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmaraujo/cronograma/internal/config"
	"github.com/dmaraujo/cronograma/internal/dateutil"
	"github.com/dmaraujo/cronograma/internal/db"
	"github.com/dmaraujo/cronograma/internal/engine"
	"github.com/dmaraujo/cronograma/internal/identity"
	"github.com/dmaraujo/cronograma/internal/schedule"
	"github.com/dmaraujo/cronograma/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	config *config.Config
	repo   schedule.Repository
	eng    *engine.Engine
	root   *cobra.Command
}

// NewApp creates a new CLI application with the given config.
func NewApp(cfg *config.Config) *App {
	a := &App{config: cfg}

	a.root = &cobra.Command{
		Use:   "cronograma",
		Short: "Interactive lab test schedule",
		Long: `Cronograma tracks efficiency tests, safety tests, calibrations and
absences on a shared Gantt-style timeline.

Run without arguments to open the interactive timeline. Subcommands
apply a single change and save it immediately.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureEngine(); err != nil {
				return err
			}
			return tui.Run(a.eng, a.config)
		},
	}

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.addCmd())
	a.root.AddCommand(a.moveCmd())
	a.root.AddCommand(a.resizeCmd())
	a.root.AddCommand(a.editCmd())
	a.root.AddCommand(a.rmCmd())
	a.root.AddCommand(a.rowsCmd())
	a.root.AddCommand(a.depCmd())
	a.root.AddCommand(a.holidayCmd())
	a.root.AddCommand(a.listCmd())
	a.root.AddCommand(a.timelineCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("cronograma %s (commit: %s)\n", Version, Commit)
		},
	}
}

// ensureEngine opens the database and loads the schedule on first use.
func (a *App) ensureEngine() error {
	if a.eng != nil {
		return nil
	}

	role, err := identity.ParseRole(a.config.User.Role)
	if err != nil {
		return err
	}

	repo, err := db.New(a.config.Storage.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	a.repo = repo

	eng := engine.New(repo, identity.NewStatic(role))
	if err := eng.Load(context.Background()); err != nil {
		return fmt.Errorf("loading schedule: %w", err)
	}
	a.eng = eng

	return nil
}

// commit saves the staged change and reports what was done.
func (a *App) commit(action string) error {
	if err := a.eng.Commit(context.Background()); err != nil {
		return err
	}
	fmt.Println(action)
	return nil
}

// parseDateFlag parses a date flag value. Absolute YYYY-MM-DD dates and
// the relative forms ("today", "tomorrow", "friday", "next-monday",
// "next-week") are accepted.
func parseDateFlag(s string) (time.Time, error) {
	return dateutil.ParseRelativeDate(s, time.Now())
}

// movePolicy resolves the effective policy for a move or resize:
// the --cascade flag forces cascading, otherwise the configured
// default applies.
func (a *App) movePolicy(cascade bool) engine.MovePolicy {
	if cascade {
		return engine.MovePolicyCascade
	}
	return engine.MovePolicy(a.config.Schedule.MovePolicy)
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// Close releases the database if one was opened.
func (a *App) Close() error {
	if a.repo == nil {
		return nil
	}
	return a.repo.Close()
}
