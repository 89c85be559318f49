package models_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mkoziy/i18nmodel/internal/schema"
	"github.com/mkoziy/i18nmodel/internal/testutil"
)

func TestRegister(t *testing.T) {
	env := testutil.Setup(t)

	article := env.Translations.Article
	require.NotNil(t, article)
	require.Equal(t, "blog.ArticleI18N", article.QualifiedName())
	require.Equal(t, "articles_i18n", article.Table)
	require.Equal(t, []string{"id", schema.SourceColumn, schema.LanguageColumn, "slug", "title", "body"}, article.Columns())
	require.Equal(t, []string{"slug"}, article.Demoted)

	category := env.Translations.Category
	require.NotNil(t, category)
	require.Equal(t, "blog.Category", category.Source.QualifiedName())
	require.Equal(t, []string{"id", schema.SourceColumn, schema.LanguageColumn, "name", "description"}, category.Columns())
	require.Equal(t, [][]string{
		{schema.SourceColumn, schema.LanguageColumn},
		{schema.LanguageColumn, "name"},
	}, category.UniqueTogether)
}
