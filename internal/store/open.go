package store

import (
	"fmt"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/config"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/logging"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/store/csvstore"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/store/sqlitestore"
)

var (
	_ Store = (*csvstore.Store)(nil)
	_ Store = (*sqlitestore.Store)(nil)
)

// Open returns the backend selected by cfg, resolving paths against root.
func Open(root string, cfg *config.Config, logger *logging.Logger) (Store, error) {
	switch cfg.Storage.Backend {
	case config.BackendCSV:
		dir := cfg.DataPath(root)
		logger.Debug("opening store", logging.FieldBackend, config.BackendCSV, logging.FieldPath, dir)
		return csvstore.New(dir, logger), nil
	case config.BackendSQLite:
		path := cfg.SQLitePath(root)
		logger.Debug("opening store", logging.FieldBackend, config.BackendSQLite, logging.FieldPath, path)
		s, err := sqlitestore.Open(path, logger)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
