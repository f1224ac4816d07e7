package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/activity"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/config"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/engine"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/logging"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/store"
)

// app is what every command works with: the project's config, its store and
// the book loaded from it.
type app struct {
	root  string
	cfg   *config.Config
	log   *logging.Logger
	store store.Store
	book  *engine.Book
	out   io.Writer
}

// projectDir resolves the --dir flag.
func projectDir(cmd *cobra.Command) (string, error) {
	dir, err := cmd.Flags().GetString("dir")
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}
	return abs, nil
}

// loadConfig reads the project's .env and budgetbuddy.yaml, overlays the
// environment and validates the result.
func loadConfig(root string) (*config.Config, error) {
	envPath := filepath.Join(root, ".env")
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			return nil, fmt.Errorf("loading .env: %w", err)
		}
	}

	cfg, err := config.Load(filepath.Join(root, config.FileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("no %s in %s: run 'budgetbuddy init' first", config.FileName, root)
		}
		return nil, err
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cmd *cobra.Command, cfg *config.Config) (*logging.Logger, error) {
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	return logging.New(logging.Config{
		Level:     level,
		Component: logging.ComponentCommands,
		Output:    cmd.ErrOrStderr(),
	}), nil
}

// openApp loads the project the command runs against.
func openApp(cmd *cobra.Command) (*app, error) {
	root, err := projectDir(cmd)
	if err != nil {
		return nil, err
	}
	cfg, err := loadConfig(root)
	if err != nil {
		return nil, err
	}
	log, err := newLogger(cmd, cfg)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(root, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	book := engine.New(engine.WithThresholds(cfg.Thresholds()))
	if err := book.Load(cmd.Context(), st); err != nil {
		st.Close()
		return nil, err
	}

	return &app{
		root:  root,
		cfg:   cfg,
		log:   log,
		store: st,
		book:  book,
		out:   cmd.OutOrStdout(),
	}, nil
}

// withApp runs fn against the opened project and closes it afterwards.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app) error) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.store.Close()
	return fn(cmd.Context(), a)
}

// commit saves the book and records what changed.
func (a *app) commit(ctx context.Context, entries ...activity.Entry) error {
	if err := a.book.Save(ctx, a.store); err != nil {
		return err
	}
	now := time.Now().UTC().Truncate(time.Second)
	for i := range entries {
		entries[i].Timestamp = now
		a.log.Info(string(entries[i].Action), logging.FieldRecordID, entries[i].RecordID)
	}
	if err := activity.Append(a.dataDir(), entries...); err != nil {
		a.log.Warn("failed to write activity log", logging.FieldError, err)
	}
	return nil
}

func (a *app) dataDir() string {
	return a.cfg.DataPath(a.root)
}

func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *app) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}
