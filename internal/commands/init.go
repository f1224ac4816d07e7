package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/config"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/engine"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/importer"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/logging"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/store"
)

func newInitCommand() *cobra.Command {
	var backend string
	var currency string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new BudgetBuddy project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := projectDir(cmd)
			if err != nil {
				return err
			}
			if len(args) > 0 {
				if dir, err = filepath.Abs(args[0]); err != nil {
					return fmt.Errorf("resolving path: %w", err)
				}
			}

			cfg := config.Default()
			cfg.Storage.Backend = backend
			cfg.Currency = currency
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := runInit(cmd, dir, cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized BudgetBuddy project at %s (%s storage)\n", dir, cfg.Storage.Backend)
			return nil
		},
	}

	cmd.Flags().StringVar(&backend, "backend", config.BackendCSV, "storage backend (csv or sqlite)")
	cmd.Flags().StringVar(&currency, "currency", "$", "currency symbol")

	return cmd
}

func runInit(cmd *cobra.Command, dir string, cfg *config.Config) error {
	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return fmt.Errorf("%s already exists in %s", config.FileName, dir)
	}

	dataDir := cfg.DataPath(dir)
	for _, d := range []string{dataDir, importer.Dir(dataDir), filepath.Join(importer.Dir(dataDir), "processed")} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	if err := config.Save(cfgPath, cfg); err != nil {
		return err
	}

	gitignore := "data/\n.env\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}

	// Persist the seeded categories so the data files exist from the start.
	st, err := store.Open(dir, cfg, logging.Discard())
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer st.Close()
	return engine.New().Save(cmd.Context(), st)
}
