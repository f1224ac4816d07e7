package commands

import (
	"github.com/spf13/cobra"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var dir string

	rootCmd := &cobra.Command{
		Use:     "budgetbuddy",
		Short:   "Personal budgeting with the 50/30/20 rule",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&dir, "dir", ".", "project directory")

	rootCmd.AddCommand(
		newInitCommand(),
		newBudgetCommand(),
		newExpenseCommand(),
		newIncomeCommand(),
		newCategoryCommand(),
		newSummaryCommand(),
		newWindowsCommand(),
		newCheckCommand(),
		newStatsCommand(),
		newTrendCommand(),
		newGoalCommand(),
		newImportCommand(),
		newActivityCommand(),
		newReportCommand(),
	)

	return rootCmd
}
