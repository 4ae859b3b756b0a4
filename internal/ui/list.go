package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmaraujo/cronograma/internal/engine"
)

func (a *App) listCmd() *cobra.Command {
	var (
		row string
		all bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks grouped by row",
		Long: `List all tasks grouped by row. Pass --all to include rows without
tasks, or --row to restrict the listing to one row.`,
		Example: `  cronograma list
  cronograma list --row=1`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureEngine(); err != nil {
				return err
			}

			p := a.eng.Projection()
			if len(p.Tasks) == 0 {
				fmt.Println("No tasks scheduled.")
				return nil
			}

			width := termWidth() - 40
			if width < 20 {
				width = 20
			}

			for _, r := range p.Rows {
				if row != "" && r.ID != row {
					continue
				}

				var tasks []engine.TaskView
				for _, t := range p.Tasks {
					if t.RowID == r.ID {
						tasks = append(tasks, t)
					}
				}
				if len(tasks) == 0 && !all {
					continue
				}

				fmt.Printf("%s\n", formatHeader(fmt.Sprintf("=== %s  %s ===", r.ID, r.Label)))
				for _, t := range tasks {
					printTaskRow(t, width)
				}
				fmt.Println()
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&row, "row", "", "Show only this row")
	cmd.Flags().BoolVar(&all, "all", false, "Include rows without tasks")

	return cmd
}
