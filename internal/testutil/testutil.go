// Package testutil provides shared fixtures for package tests.
package testutil

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/uptrace/bun"

	"github.com/mkoziy/i18nmodel/internal/database"
	"github.com/mkoziy/i18nmodel/internal/locale"
	"github.com/mkoziy/i18nmodel/internal/migrations"
	"github.com/mkoziy/i18nmodel/internal/models"
	"github.com/mkoziy/i18nmodel/internal/schema"
)

// Env is a migrated in-memory database with the blog models registered.
type Env struct {
	DB           *bun.DB
	Languages    locale.Set
	Registry     *schema.Registry
	Translations models.Translations
	Logger       *slog.Logger
}

// Languages returns en (default), de and pt-br.
func Languages() locale.Set {
	return locale.NewSet("en",
		locale.Language{Code: "en", Name: "English"},
		locale.Language{Code: "de", Name: "German"},
		locale.Language{Code: "pt-br", Name: "Portuguese"},
	)
}

// Logger discards everything.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// NewDB opens a private in-memory database closed at test cleanup.
func NewDB(t testing.TB) *bun.DB {
	t.Helper()
	db, err := database.NewDB(database.MemoryDSN(t.Name()), false)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// Setup returns a migrated Env.
func Setup(t testing.TB) *Env {
	t.Helper()
	db := NewDB(t)
	langs := Languages()
	logger := Logger()

	reg := schema.NewRegistry(db, langs, schema.WithLogger(logger))
	translations, err := models.Register(reg)
	if err != nil {
		t.Fatalf("register models: %v", err)
	}
	if err := migrations.RunMigrations(context.Background(), db, reg, logger); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	return &Env{
		DB:           db,
		Languages:    langs,
		Registry:     reg,
		Translations: translations,
		Logger:       logger,
	}
}

// InsertArticle stores an article and returns it with its id set.
func (e *Env) InsertArticle(t testing.TB, slug, title string) *models.Article {
	t.Helper()
	a := &models.Article{Slug: slug, Title: title, Body: title + " body", Status: models.StatusPublished}
	if _, err := e.DB.NewInsert().Model(a).Exec(context.Background()); err != nil {
		t.Fatalf("insert article: %v", err)
	}
	return a
}
