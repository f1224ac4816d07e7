package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/activity"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/importer"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/logging"
)

func newImportCommand() *cobra.Command {
	var format string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import expense CSVs dropped into <data>/import",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				p := importer.DefaultRegistry().Get(format)
				if p == nil {
					return fmt.Errorf("unknown import format %q (known: %v)", format, importer.DefaultRegistry().Formats())
				}
				return runImport(ctx, a, p, dryRun)
			})
		},
	}

	cmd.Flags().StringVar(&format, "format", "legacy", "file format")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "parse and validate without recording")
	return cmd
}

// runImport records each file as one all-or-nothing batch. A file that fails
// stops the import; files before it stay imported.
func runImport(ctx context.Context, a *app, p importer.Parser, dryRun bool) error {
	log := a.log.WithComponent(logging.ComponentImporter)

	files, err := importer.Scan(a.dataDir())
	if err != nil {
		return err
	}
	if len(files) == 0 {
		a.printf("Nothing to import in %s\n", importer.Dir(a.dataDir()))
		return nil
	}

	for _, f := range files {
		batch, err := importer.ParseFile(p, f.Path)
		if err != nil {
			return err
		}
		if dryRun {
			if err := a.book.CheckExpenses(batch); err != nil {
				return fmt.Errorf("%s: %w", f.Name, err)
			}
			a.printf("%s: %d expenses (dry run)\n", f.Name, len(batch))
			continue
		}

		recorded, err := a.book.AddExpenses(batch)
		if err != nil {
			return fmt.Errorf("%s: %w", f.Name, err)
		}
		if err := a.commit(ctx, activity.Entry{
			Action:  activity.ExpensesImported,
			Details: fmt.Sprintf("%s: %d expenses", f.Name, len(recorded)),
		}); err != nil {
			return err
		}
		if err := importer.MarkProcessed(a.dataDir(), f.Name); err != nil {
			return err
		}
		log.Info("imported file", logging.FieldOperation, logging.OpImport, logging.FieldPath, f.Name, logging.FieldCount, len(recorded))
		a.printf("%s: imported %d expenses\n", f.Name, len(recorded))
	}
	return nil
}
