package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
	"github.com/uptrace/bun"

	"github.com/mkoziy/i18nmodel/internal/config"
	"github.com/mkoziy/i18nmodel/internal/database"
	"github.com/mkoziy/i18nmodel/internal/locale"
	"github.com/mkoziy/i18nmodel/internal/models"
	"github.com/mkoziy/i18nmodel/internal/schema"
	"github.com/mkoziy/i18nmodel/internal/translation"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "i18nmodel",
	Short: "Translation tables for bun models",
	Long: `i18nmodel derives per-language translation tables from bun source models
and reads and writes their rows.

Configuration comes from the environment:
  I18N_DB_DSN            SQLite DSN (default file:i18nmodel.db)
  I18N_LANGUAGES_FILE    YAML Language Set
  I18N_DEFAULT_LANGUAGE  override of the default language
  I18N_DEFINITIONS_FILE  YAML translation definitions
  I18N_LOG_LEVEL         debug, info, warn, error
  I18N_DEBUG             log every SQL query`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		printError("command failed", err)
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func printError(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
}

// app bundles everything a command needs.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	db     *bun.DB
	langs  locale.Set
	reg    *schema.Registry
}

func setup(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	}))
	slog.SetDefault(logger)

	langs, err := cfg.Languages()
	if err != nil {
		return nil, err
	}

	db, err := database.NewDB(cfg.DBDSN, cfg.Debug)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	reg := schema.NewRegistry(db, langs, schema.WithLogger(logger))
	if err := define(reg, cfg.DefinitionsFile); err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.DebugContext(ctx, "application ready", "dsn", cfg.DBDSN, "languages", langs.Codes())
	return &app{cfg: cfg, logger: logger, db: db, langs: langs, reg: reg}, nil
}

// define registers the blog models and their translation schemas, taken
// from path when set.
func define(reg *schema.Registry, path string) error {
	if path == "" {
		_, err := models.Register(reg)
		return err
	}

	if err := reg.Register(models.Namespace, (*models.Category)(nil), (*models.Article)(nil)); err != nil {
		return err
	}
	defs, err := schema.LoadDefinitionsFile(path)
	if err != nil {
		return err
	}
	for _, def := range defs {
		if _, err := reg.Define(def); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) close() {
	if err := a.db.Close(); err != nil {
		a.logger.Warn("closing database", "error", err)
	}
}

// manager returns the manager of the translation called name.
func (a *app) manager(name string) (*translation.Manager, error) {
	t, ok := a.reg.Translation(name)
	if !ok {
		return nil, fmt.Errorf("unknown translation %q", name)
	}
	return translation.NewManager(a.db, t, a.langs, translation.WithLogger(a.logger)), nil
}

func (a *app) managers() []*translation.Manager {
	var out []*translation.Manager
	for _, t := range a.reg.Translations() {
		out = append(out, translation.NewManager(a.db, t, a.langs, translation.WithLogger(a.logger)))
	}
	return out
}
