// Package migrations creates the source and translation tables.
package migrations

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"

	"github.com/mkoziy/i18nmodel/internal/models"
	"github.com/mkoziy/i18nmodel/internal/schema"
)

var Migrations = migrate.NewMigrations()

type contextKey struct{}

// WithRegistry makes reg available to the translation table migrations.
func WithRegistry(ctx context.Context, reg *schema.Registry) context.Context {
	return context.WithValue(ctx, contextKey{}, reg)
}

func translationsFrom(ctx context.Context) ([]*schema.Translation, error) {
	reg, ok := ctx.Value(contextKey{}).(*schema.Registry)
	if !ok || reg == nil {
		return nil, errors.New("migrations: no schema registry on context")
	}
	return reg.Translations(), nil
}

// SourceModels lists the source tables in creation order.
func SourceModels() []interface{} {
	return []interface{}{
		(*models.Category)(nil),
		(*models.Article)(nil),
	}
}

// CreateTranslationTables creates every translation table in order.
func CreateTranslationTables(ctx context.Context, db bun.IDB, translations []*schema.Translation) error {
	for _, t := range translations {
		if _, err := t.CreateTableQuery(db).Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}

// DropTranslationTables drops every translation table in reverse order.
func DropTranslationTables(ctx context.Context, db bun.IDB, translations []*schema.Translation) error {
	for i := len(translations) - 1; i >= 0; i-- {
		if _, err := translations[i].DropTableQuery(db).Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}

// CreateLanguageIndexes indexes the language column of every translation table.
func CreateLanguageIndexes(ctx context.Context, db bun.IDB, translations []*schema.Translation) error {
	for _, t := range translations {
		if _, err := db.NewRaw("CREATE INDEX IF NOT EXISTS ? ON ? (?)",
			bun.Ident(languageIndex(t)), bun.Ident(t.Table), bun.Ident(schema.LanguageColumn),
		).Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}

func languageIndex(t *schema.Translation) string {
	return "idx_" + t.Table + "_language"
}

// syncTranslationTables creates the tables of translations defined after the
// translation migration was applied. Existing tables are left alone.
func syncTranslationTables(ctx context.Context, db bun.IDB, translations []*schema.Translation) error {
	if err := CreateTranslationTables(ctx, db, translations); err != nil {
		return fmt.Errorf("creating translation tables: %w", err)
	}
	if err := CreateLanguageIndexes(ctx, db, translations); err != nil {
		return fmt.Errorf("creating language indexes: %w", err)
	}
	return nil
}

// RunMigrations runs all pending migrations.
func RunMigrations(ctx context.Context, db *bun.DB, reg *schema.Registry, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	ctx = WithRegistry(ctx, reg)
	migrator := migrate.NewMigrator(db, Migrations)

	if err := migrator.Init(ctx); err != nil {
		return err
	}

	group, err := migrator.Migrate(ctx)
	if err != nil {
		return err
	}

	if group.IsZero() {
		logger.Info("no new migrations to run")
	} else {
		logger.Info("migrated", "group", group.String())
	}

	return syncTranslationTables(ctx, db, reg.Translations())
}

// Rollback reverts the last migration group.
func Rollback(ctx context.Context, db *bun.DB, reg *schema.Registry, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	ctx = WithRegistry(ctx, reg)
	migrator := migrate.NewMigrator(db, Migrations)

	if err := migrator.Init(ctx); err != nil {
		return err
	}

	group, err := migrator.Rollback(ctx)
	if err != nil {
		return err
	}

	if group.IsZero() {
		logger.Info("no groups to roll back")
		return nil
	}

	logger.Info("rolled back", "group", group.String())
	return nil
}
