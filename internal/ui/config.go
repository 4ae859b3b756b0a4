package ui

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmaraujo/cronograma/internal/config"
)

func (a *App) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "View or initialize configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(a.configShowCmd())
	cmd.AddCommand(a.configInitCmd())

	return cmd
}

func (a *App) configShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(_ *cobra.Command, _ []string) error {
			fmt.Printf("Config file: %s\n\n", config.DefaultConfigPath())
			printConfig(a.config)
			return nil
		},
	}
}

func (a *App) configInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the current values",
		RunE: func(_ *cobra.Command, _ []string) error {
			path := config.DefaultConfigPath()

			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("config file already exists: %s", path)
			}

			if err := a.config.Write(path); err != nil {
				return err
			}

			fmt.Printf("Created %s\n", path)
			return nil
		},
	}
}

func printConfig(cfg *config.Config) {
	fmt.Println("Current configuration:")
	fmt.Println("──────────────────────")
	fmt.Println("[storage]")
	fmt.Printf("  db_path              = %s\n", cfg.Storage.DBPath)
	fmt.Println("\n[schedule]")
	fmt.Printf("  move_policy          = %s\n", cfg.Schedule.MovePolicy)
	fmt.Printf("  holiday_warning_days = %d\n", cfg.Schedule.HolidayWarningDays)
	fmt.Println("\n[ui]")
	fmt.Printf("  theme                = %s\n", cfg.UI.Theme)
	fmt.Println("\n[user]")
	fmt.Printf("  role                 = %s\n", cfg.User.Role)
}
