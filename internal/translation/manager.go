// Package translation queries and writes rows of derived translation tables.
package translation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/uptrace/bun"

	"github.com/mkoziy/i18nmodel/internal/locale"
	"github.com/mkoziy/i18nmodel/internal/schema"
)

// Manager is the query surface over one translation schema, optionally
// scoped to a single source row.
type Manager struct {
	db     bun.IDB
	t      *schema.Translation
	langs  locale.Set
	logger *slog.Logger

	sourceID any
	scoped   bool

	// accessors maps accessor names ("pt_br") to language codes ("pt-br").
	// Built once from the Language Set at construction.
	accessors map[string]string
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the manager logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewManager creates a manager for t. Per-language accessors are created
// for every translatable language of langs; the default language has no
// rows and gets none.
func NewManager(db bun.IDB, t *schema.Translation, langs locale.Set, opts ...Option) *Manager {
	m := &Manager{
		db:        db,
		t:         t,
		langs:     langs,
		logger:    slog.Default(),
		accessors: make(map[string]string),
	}
	for _, opt := range opts {
		opt(m)
	}
	for _, l := range langs.Translatable() {
		m.accessors[locale.AccessorName(l.Code)] = l.Code
	}
	return m
}

// Schema returns the translation schema the manager serves.
func (m *Manager) Schema() *schema.Translation {
	return m.t
}

// Languages returns the Language Set snapshot.
func (m *Manager) Languages() locale.Set {
	return m.langs
}

// For returns a manager scoped to one source row.
func (m *Manager) For(sourceID any) *Manager {
	cp := *m
	cp.sourceID = sourceID
	cp.scoped = true
	return &cp
}

// ForModel scopes the manager to model, which must be of the source type.
func (m *Manager) ForModel(model any) (*Manager, error) {
	id, err := m.t.Source.PKValue(model)
	if err != nil {
		return nil, err
	}
	return m.For(id), nil
}

// All returns a query over every row in scope.
func (m *Manager) All() *Query {
	q := &Query{db: m.db, t: m.t}
	if m.scoped {
		q = q.Source(m.sourceID)
	}
	return q
}

// Lang filters to rows in code. An empty code uses the language active
// on ctx, or the default language.
func (m *Manager) Lang(ctx context.Context, code string) *Query {
	if code == "" {
		code = m.langs.Active(ctx)
	}
	return m.All().Lang(code)
}

// CurrentLanguage is Lang with the language active on ctx.
func (m *Manager) CurrentLanguage(ctx context.Context) *Query {
	return m.Lang(ctx, "")
}

// GetByLang returns the single row in code.
func (m *Manager) GetByLang(ctx context.Context, code string) (*Row, error) {
	return m.Lang(ctx, code).Get(ctx)
}

// AvailableLanguages returns the sorted language codes that have a row in scope.
func (m *Manager) AvailableLanguages(ctx context.Context) ([]string, error) {
	return m.All().Languages(ctx)
}

// Accessor returns the per-language query named after a language code,
// with dashes replaced by underscores: "de", "pt_br".
func (m *Manager) Accessor(name string) (func() *Query, bool) {
	code, ok := m.accessors[name]
	if !ok {
		return nil, false
	}
	return func() *Query { return m.All().Lang(code) }, true
}

// AccessorNames returns every accessor name, sorted.
func (m *Manager) AccessorNames() []string {
	names := make([]string, 0, len(m.accessors))
	for name := range m.accessors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Translate looks up or upserts the translation of sourceID in lang.
//
// Without updates it is a pure lookup failing with ErrNotFound. With
// updates it overwrites the existing row or creates a new one. Concurrent
// creates of the same pair are settled by the unique constraint: the loser
// gets ErrUniqueViolation.
//
// A new row starts with "" in every required text column it is not given.
// Such a column that is also unique per language (a demoted slug, say) can
// hold "" only once per language, so a second partial create without it
// fails with ErrUniqueViolation.
func (m *Manager) Translate(ctx context.Context, sourceID any, lang string, updates map[string]any) (*Row, error) {
	if len(updates) == 0 {
		return m.For(sourceID).All().Lang(lang).Get(ctx)
	}

	values, err := m.columns(lang, updates)
	if err != nil {
		return nil, err
	}

	var row *Row
	err = m.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		txm := m.withDB(tx).For(sourceID)
		existing, err := txm.All().Lang(lang).Get(ctx)
		switch {
		case errors.Is(err, ErrNotFound):
			row, err = txm.insert(ctx, sourceID, lang, values)
			return err
		case err != nil:
			return err
		}

		row, err = txm.update(ctx, existing.ID, values)
		return err
	})
	if err != nil {
		return nil, err
	}

	m.logger.DebugContext(ctx, "translation saved",
		"translation", m.t.QualifiedName(),
		"source_id", sourceID,
		"language", lang,
		"id", row.ID,
	)
	return row, nil
}

// TranslateModel is Translate keyed by a source model value.
func (m *Manager) TranslateModel(ctx context.Context, model any, lang string, updates map[string]any) (*Row, error) {
	id, err := m.t.Source.PKValue(model)
	if err != nil {
		return nil, err
	}
	return m.Translate(ctx, id, lang, updates)
}

// Create inserts a new translation without looking for an existing one.
func (m *Manager) Create(ctx context.Context, sourceID any, lang string, values map[string]any) (*Row, error) {
	cols, err := m.columns(lang, values)
	if err != nil {
		return nil, err
	}
	return m.For(sourceID).insert(ctx, sourceID, lang, cols)
}

// Delete removes the translation of sourceID in lang.
func (m *Manager) Delete(ctx context.Context, sourceID any, lang string) error {
	res, err := m.db.NewDelete().
		TableExpr("?", bun.Ident(m.t.Table)).
		Where("? = ?", bun.Ident(schema.SourceColumn), sourceID).
		Where("? = ?", bun.Ident(schema.LanguageColumn), lang).
		Exec(ctx)
	if err != nil {
		return wrapDBError("delete from "+m.t.Table, err)
	}
	return deleted(res)
}

// deleted reports ErrNotFound when res touched no row.
func deleted(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *Manager) withDB(db bun.IDB) *Manager {
	cp := *m
	cp.db = db
	return &cp
}

// columns validates lang and maps field names onto column names.
func (m *Manager) columns(lang string, values map[string]any) (map[string]interface{}, error) {
	if !m.t.AllowsLanguage(lang) {
		return nil, fmt.Errorf("%w: %q for %s", ErrUnsupportedLanguage, lang, m.t.QualifiedName())
	}
	out := make(map[string]interface{}, len(values))
	for name, v := range values {
		f, ok := m.t.Field(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q on %s", ErrUnknownField, name, m.t.QualifiedName())
		}
		out[f.Name] = v
	}
	return out, nil
}

func (m *Manager) insert(ctx context.Context, sourceID any, lang string, values map[string]interface{}) (*Row, error) {
	row := make(map[string]interface{}, len(m.t.Fields)+2)
	for _, f := range m.t.Fields {
		// Required text columns start out blank, like an unsaved form.
		if f.NotNull && f.Default == "" && f.Kind.IsText() {
			row[f.Name] = ""
		}
	}
	for k, v := range values {
		row[k] = v
	}
	row[schema.SourceColumn] = sourceID
	row[schema.LanguageColumn] = lang

	if _, err := m.db.NewInsert().
		Model(&row).
		TableExpr("?", bun.Ident(m.t.Table)).
		Exec(ctx); err != nil {
		return nil, wrapDBError("insert into "+m.t.Table, err)
	}
	return m.For(sourceID).All().Lang(lang).Get(ctx)
}

func (m *Manager) update(ctx context.Context, id int64, values map[string]interface{}) (*Row, error) {
	if _, err := m.db.NewUpdate().
		Model(&values).
		TableExpr("?", bun.Ident(m.t.Table)).
		Where("? = ?", bun.Ident(schema.IDColumn), id).
		Exec(ctx); err != nil {
		return nil, wrapDBError("update "+m.t.Table, err)
	}

	var maps []map[string]interface{}
	err := m.db.NewSelect().
		Table(m.t.Table).
		Column(m.t.Columns()...).
		Where("? = ?", bun.Ident(schema.IDColumn), id).
		Scan(ctx, &maps)
	if err != nil {
		return nil, wrapDBError("select "+m.t.Table, err)
	}
	if len(maps) == 0 {
		return nil, ErrNotFound
	}
	return decodeRow(m.t, maps[0]), nil
}
