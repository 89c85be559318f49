package migrations

import (
	"context"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		indexes := []string{
			"CREATE INDEX IF NOT EXISTS idx_articles_status ON articles(status)",
			"CREATE INDEX IF NOT EXISTS idx_articles_category ON articles(category_id)",
		}
		for _, idx := range indexes {
			if _, err := db.ExecContext(ctx, idx); err != nil {
				return err
			}
		}

		translations, err := translationsFrom(ctx)
		if err != nil {
			return err
		}
		return CreateLanguageIndexes(ctx, db, translations)
	}, func(ctx context.Context, db *bun.DB) error {
		indexes := []string{
			"DROP INDEX IF EXISTS idx_articles_status",
			"DROP INDEX IF EXISTS idx_articles_category",
		}
		translations, err := translationsFrom(ctx)
		if err != nil {
			return err
		}
		for _, t := range translations {
			indexes = append(indexes, "DROP INDEX IF EXISTS "+languageIndex(t))
		}

		for _, idx := range indexes {
			if _, err := db.ExecContext(ctx, idx); err != nil {
				return err
			}
		}
		return nil
	})
}
