package migrations

import (
	"context"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		translations, err := translationsFrom(ctx)
		if err != nil {
			return err
		}
		return CreateTranslationTables(ctx, db, translations)
	}, func(ctx context.Context, db *bun.DB) error {
		translations, err := translationsFrom(ctx)
		if err != nil {
			return err
		}
		return DropTranslationTables(ctx, db, translations)
	})
}
