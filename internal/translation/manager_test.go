package translation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mkoziy/i18nmodel/internal/locale"
	"github.com/mkoziy/i18nmodel/internal/testutil"
)

func newManagers(t *testing.T) (*testutil.Env, *Manager, *Manager) {
	t.Helper()
	env := testutil.Setup(t)
	articles := NewManager(env.DB, env.Translations.Article, env.Languages, WithLogger(env.Logger))
	categories := NewManager(env.DB, env.Translations.Category, env.Languages, WithLogger(env.Logger))
	return env, articles, categories
}

func TestTranslateUpsert(t *testing.T) {
	env, m, _ := newManagers(t)
	ctx := context.Background()
	a := env.InsertArticle(t, "hello", "Hello")

	first, err := m.Translate(ctx, a.ID, "de", map[string]any{"title": "Hallo", "slug": "hallo"})
	require.NoError(t, err)
	require.Equal(t, "de", first.Language)
	require.Equal(t, a.ID, first.SourceID)
	require.Equal(t, "Hallo", first.String("title"))

	second, err := m.Translate(ctx, a.ID, "de", map[string]any{"Title": "Hallo Welt"})
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
	require.Equal(t, "Hallo Welt", second.String("title"))
	require.Equal(t, "hallo", second.String("slug"), "untouched fields keep their value")

	n, err := m.For(a.ID).All().Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	got, err := m.Translate(ctx, a.ID, "de", nil)
	require.NoError(t, err)
	require.Equal(t, "Hallo Welt", got.String("title"))
}

func TestTranslateLookupMissing(t *testing.T) {
	env, m, _ := newManagers(t)
	a := env.InsertArticle(t, "hello", "Hello")

	_, err := m.Translate(context.Background(), a.ID, "de", nil)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestTranslateValidation(t *testing.T) {
	env, m, _ := newManagers(t)
	ctx := context.Background()
	a := env.InsertArticle(t, "hello", "Hello")

	_, err := m.Translate(ctx, a.ID, "en", map[string]any{"title": "Hello"})
	require.ErrorIs(t, err, ErrUnsupportedLanguage)

	_, err = m.Translate(ctx, a.ID, "fr", map[string]any{"title": "Bonjour"})
	require.ErrorIs(t, err, ErrUnsupportedLanguage)

	_, err = m.Translate(ctx, a.ID, "de", map[string]any{"status": "draft"})
	require.ErrorIs(t, err, ErrUnknownField)
}

func TestCreateDuplicatePair(t *testing.T) {
	env, m, _ := newManagers(t)
	ctx := context.Background()
	a := env.InsertArticle(t, "hello", "Hello")

	_, err := m.Create(ctx, a.ID, "de", map[string]any{"title": "Hallo", "slug": "hallo"})
	require.NoError(t, err)

	_, err = m.Create(ctx, a.ID, "de", map[string]any{"title": "Servus", "slug": "servus"})
	require.ErrorIs(t, err, ErrUniqueViolation)
}

func TestPerLanguageUniqueness(t *testing.T) {
	env, articles, categories := newManagers(t)
	ctx := context.Background()
	a := env.InsertArticle(t, "hello", "Hello")
	b := env.InsertArticle(t, "world", "World")

	// slug is unique on articles, so it is unique per language on translations
	_, err := articles.Create(ctx, a.ID, "de", map[string]any{"title": "Hallo", "slug": "gleich"})
	require.NoError(t, err)
	_, err = articles.Create(ctx, b.ID, "de", map[string]any{"title": "Welt", "slug": "gleich"})
	require.ErrorIs(t, err, ErrUniqueViolation)
	_, err = articles.Create(ctx, b.ID, "pt-br", map[string]any{"title": "Mundo", "slug": "gleich"})
	require.NoError(t, err)

	// title is not unique on articles
	_, err = articles.Create(ctx, b.ID, "de", map[string]any{"title": "Hallo", "slug": "welt"})
	require.NoError(t, err)

	// category names are unique on the source too
	c1, c2 := insertCategory(t, env, "News"), insertCategory(t, env, "Sport")
	_, err = categories.Create(ctx, c1, "de", map[string]any{"name": "Nachrichten"})
	require.NoError(t, err)
	_, err = categories.Create(ctx, c2, "de", map[string]any{"name": "Nachrichten"})
	require.ErrorIs(t, err, ErrUniqueViolation)
}

func TestPartialTranslationsShareBlankSlug(t *testing.T) {
	env, m, _ := newManagers(t)
	ctx := context.Background()
	a := env.InsertArticle(t, "hello", "Hello")
	b := env.InsertArticle(t, "world", "World")

	row, err := m.Translate(ctx, a.ID, "de", map[string]any{"body": "Erster"})
	require.NoError(t, err)
	require.Equal(t, "", row.String("slug"))

	// the blank slug is taken in German now
	_, err = m.Translate(ctx, b.ID, "de", map[string]any{"body": "Zweiter"})
	require.ErrorIs(t, err, ErrUniqueViolation)

	_, err = m.Translate(ctx, b.ID, "de", map[string]any{"body": "Zweiter", "slug": "welt"})
	require.NoError(t, err)
	_, err = m.Translate(ctx, b.ID, "pt-br", map[string]any{"body": "Segundo"})
	require.NoError(t, err)
}

func insertCategory(t *testing.T, env *testutil.Env, name string) int64 {
	t.Helper()
	var id int64
	err := env.DB.NewRaw("INSERT INTO categories (name, position) VALUES (?, 0) RETURNING id", name).
		Scan(context.Background(), &id)
	require.NoError(t, err)
	return id
}

func TestLangAndGetByLang(t *testing.T) {
	env, m, _ := newManagers(t)
	ctx := context.Background()
	a := env.InsertArticle(t, "hello", "Hello")
	b := env.InsertArticle(t, "world", "World")

	_, err := m.Translate(ctx, a.ID, "de", map[string]any{"title": "Hallo", "slug": "hallo"})
	require.NoError(t, err)
	_, err = m.Translate(ctx, b.ID, "de", map[string]any{"title": "Welt", "slug": "welt"})
	require.NoError(t, err)
	_, err = m.Translate(ctx, a.ID, "pt-br", map[string]any{"title": "Olá", "slug": "ola"})
	require.NoError(t, err)

	rows, err := m.Lang(ctx, "de").All(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// unscoped exact lookups see both German rows
	_, err = m.GetByLang(ctx, "de")
	require.ErrorIs(t, err, ErrMultipleResults)

	row, err := m.For(a.ID).GetByLang(ctx, "de")
	require.NoError(t, err)
	require.Equal(t, "Hallo", row.String("title"))

	_, err = m.For(b.ID).GetByLang(ctx, "xx")
	require.ErrorIs(t, err, ErrNotFound)

	// empty code follows the active language
	de := locale.WithLanguage(ctx, "pt-br")
	row, err = m.For(a.ID).CurrentLanguage(de).Get(ctx)
	require.NoError(t, err)
	require.Equal(t, "Olá", row.String("title"))

	// the default language never has rows
	ok, err := m.For(a.ID).CurrentLanguage(ctx).Exists(ctx)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestQueryIsRestartable(t *testing.T) {
	env, m, _ := newManagers(t)
	ctx := context.Background()
	a := env.InsertArticle(t, "hello", "Hello")

	q := m.For(a.ID).Lang(ctx, "de")
	n, err := q.Count(ctx)
	require.NoError(t, err)
	require.Zero(t, n)

	_, err = m.Translate(ctx, a.ID, "de", map[string]any{"title": "Hallo", "slug": "hallo"})
	require.NoError(t, err)

	n, err = q.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	var seen []string
	require.NoError(t, q.Each(ctx, func(r *Row) error {
		seen = append(seen, r.String("title"))
		return nil
	}))
	require.Equal(t, []string{"Hallo"}, seen)

	first, err := q.First(ctx)
	require.NoError(t, err)
	require.Equal(t, "German translation for 1", first.Describe(env.Languages))
}

func TestAccessors(t *testing.T) {
	env, m, _ := newManagers(t)
	ctx := context.Background()
	a := env.InsertArticle(t, "hello", "Hello")

	require.Equal(t, []string{"de", "pt_br"}, m.AccessorNames())

	_, ok := m.Accessor("en")
	require.False(t, ok)
	_, ok = m.Accessor("pt-br")
	require.False(t, ok)

	_, err := m.Translate(ctx, a.ID, "pt-br", map[string]any{"title": "Olá", "slug": "ola"})
	require.NoError(t, err)

	ptBR, ok := m.For(a.ID).Accessor("pt_br")
	require.True(t, ok)
	viaAccessor, err := ptBR().All(ctx)
	require.NoError(t, err)
	viaLang, err := m.For(a.ID).Lang(ctx, "pt-br").All(ctx)
	require.NoError(t, err)
	require.Equal(t, viaLang, viaAccessor)
	require.Len(t, viaAccessor, 1)

	// accessors exist for languages without data
	de, ok := m.Accessor("de")
	require.True(t, ok)
	n, err := de().Count(ctx)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestAvailableLanguages(t *testing.T) {
	env, m, _ := newManagers(t)
	ctx := context.Background()
	a := env.InsertArticle(t, "hello", "Hello")
	b := env.InsertArticle(t, "world", "World")

	_, err := m.Translate(ctx, a.ID, "pt-br", map[string]any{"title": "Olá", "slug": "ola"})
	require.NoError(t, err)
	_, err = m.Translate(ctx, a.ID, "de", map[string]any{"title": "Hallo", "slug": "hallo"})
	require.NoError(t, err)

	codes, err := m.For(a.ID).AvailableLanguages(ctx)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"de", "pt-br"}, codes)

	codes, err = m.For(b.ID).AvailableLanguages(ctx)
	require.NoError(t, err)
	require.Empty(t, codes)
}

func TestDeleteAndCascade(t *testing.T) {
	env, m, _ := newManagers(t)
	ctx := context.Background()
	a := env.InsertArticle(t, "hello", "Hello")

	_, err := m.Translate(ctx, a.ID, "de", map[string]any{"title": "Hallo", "slug": "hallo"})
	require.NoError(t, err)
	_, err = m.Translate(ctx, a.ID, "pt-br", map[string]any{"title": "Olá", "slug": "ola"})
	require.NoError(t, err)

	require.NoError(t, m.Delete(ctx, a.ID, "de"))
	require.ErrorIs(t, m.Delete(ctx, a.ID, "de"), ErrNotFound)

	_, err = env.DB.NewDelete().Model(a).WherePK().Exec(ctx)
	require.NoError(t, err)

	n, err := m.All().Count(ctx)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestTranslateModel(t *testing.T) {
	env, m, _ := newManagers(t)
	ctx := context.Background()
	a := env.InsertArticle(t, "hello", "Hello")

	row, err := m.TranslateModel(ctx, a, "de", map[string]any{"body": "Inhalt"})
	require.NoError(t, err)
	require.Equal(t, a.ID, row.SourceID)
	require.Equal(t, "Inhalt", row.String("body"))
	require.Equal(t, "", row.String("title"))

	_, err = m.TranslateModel(ctx, "not an article", "de", map[string]any{"body": "x"})
	require.Error(t, err)
}
