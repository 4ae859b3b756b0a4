package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmaraujo/cronograma/internal/schedule"
)

func (a *App) rowsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rows",
		Short: "Manage schedule rows",
		Long: `List and manage the rows of the schedule. Efficiency rows (terminals)
get numeric ids, safety rows (technicians) get letter ids. Ids are
never reused after a row is deleted.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureEngine(); err != nil {
				return err
			}

			p := a.eng.Projection()
			fmt.Println(formatHeader("ROWS"))
			for _, r := range p.Rows {
				marker := ""
				if r.BuiltIn {
					marker = formatMuted("  (built-in)")
				}
				count := 0
				for _, t := range p.Tasks {
					if t.RowID == r.ID {
						count++
					}
				}
				fmt.Printf("  %-4s %-24s %-12s %s%s\n",
					r.ID, r.Label, r.Category, formatMuted(fmt.Sprintf("%d tasks", count)), marker)
			}
			return nil
		},
	}

	cmd.AddCommand(a.rowsAddCmd())
	cmd.AddCommand(a.rowsRenameCmd())
	cmd.AddCommand(a.rowsRmCmd())

	return cmd
}

func (a *App) rowsAddCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new row",
		Long: `Add a row with the next free id for its category.

Example:
  cronograma rows add --category=efficiency
  cronograma rows add --category=safety`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureEngine(); err != nil {
				return err
			}

			cat, err := schedule.ParseRowCategory(category)
			if err != nil {
				return err
			}

			r, err := a.eng.AddRow(cat)
			if err != nil {
				return err
			}

			return a.commit(fmt.Sprintf("Created row %s (%s)", r.ID, r.Label))
		},
	}

	cmd.Flags().StringVar(&category, "category", "efficiency", "Row category: efficiency or safety")

	return cmd
}

func (a *App) rowsRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename [row-id] [label]",
		Short: "Rename a row",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureEngine(); err != nil {
				return err
			}

			if err := a.eng.RenameRow(args[0], args[1]); err != nil {
				return err
			}

			return a.commit(fmt.Sprintf("Renamed row %s to %q", args[0], args[1]))
		},
	}
}

func (a *App) rowsRmCmd() *cobra.Command {
	var cascade bool

	cmd := &cobra.Command{
		Use:   "rm [row-id]",
		Short: "Remove a row",
		Long: `Remove a row. Rows still hosting tasks are refused unless --cascade
removes the tasks as well. Built-in rows cannot be removed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureEngine(); err != nil {
				return err
			}

			if err := a.eng.DeleteRow(args[0], cascade); err != nil {
				return err
			}

			return a.commit(fmt.Sprintf("Removed row %s", args[0]))
		},
	}

	cmd.Flags().BoolVar(&cascade, "cascade", false, "Also remove the tasks hosted on the row")

	return cmd
}
