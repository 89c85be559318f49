package migrations_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mkoziy/i18nmodel/internal/migrations"
	"github.com/mkoziy/i18nmodel/internal/models"
	"github.com/mkoziy/i18nmodel/internal/schema"
	"github.com/mkoziy/i18nmodel/internal/testutil"
)

func tableExists(t *testing.T, env *testutil.Env, name string) bool {
	t.Helper()
	var n int
	err := env.DB.NewSelect().
		TableExpr("sqlite_master").
		ColumnExpr("count(*)").
		Where("type = 'table' AND name = ?", name).
		Scan(context.Background(), &n)
	require.NoError(t, err)
	return n > 0
}

func TestRunMigrations(t *testing.T) {
	env := testutil.Setup(t)

	for _, table := range []string{"articles", "categories", "articles_i18n", "categories_i18n"} {
		require.True(t, tableExists(t, env, table), table)
	}

	// a second run is a no-op
	require.NoError(t, migrations.RunMigrations(context.Background(), env.DB, env.Registry, env.Logger))
}

func TestRollback(t *testing.T) {
	env := testutil.Setup(t)
	ctx := context.Background()

	require.NoError(t, migrations.Rollback(ctx, env.DB, env.Registry, env.Logger))
	require.False(t, tableExists(t, env, "articles_i18n"))
	require.False(t, tableExists(t, env, "articles"))

	require.NoError(t, migrations.RunMigrations(ctx, env.DB, env.Registry, env.Logger))
	require.True(t, tableExists(t, env, "articles_i18n"))
}

func TestTranslationTableHelpers(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()

	reg := schema.NewRegistry(db, testutil.Languages())
	_, err := models.Register(reg)
	require.NoError(t, err)

	require.NoError(t, migrations.CreateTranslationTables(ctx, db, nil))
	require.NoError(t, migrations.DropTranslationTables(ctx, db, reg.Translations()))
}

func TestRunMigrationsCreatesLaterDefinitions(t *testing.T) {
	env := testutil.Setup(t)
	ctx := context.Background()

	_, err := env.Registry.Define(schema.Definition{
		Name:      "ArticleTitles",
		Namespace: models.Namespace,
		Source:    "blog.Article",
		Fields:    []string{"title"},
		Table:     "article_titles",
	})
	require.NoError(t, err)
	require.False(t, tableExists(t, env, "article_titles"))

	require.NoError(t, migrations.RunMigrations(ctx, env.DB, env.Registry, env.Logger))
	require.True(t, tableExists(t, env, "article_titles"))

	var n int
	err = env.DB.NewSelect().
		TableExpr("sqlite_master").
		ColumnExpr("count(*)").
		Where("type = 'index' AND name = ?", "idx_article_titles_language").
		Scan(ctx, &n)
	require.NoError(t, err)
	require.Equal(t, 1, n)
}
