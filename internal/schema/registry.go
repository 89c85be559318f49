package schema

import (
	"fmt"
	"log/slog"
	"reflect"
	"sync"

	"github.com/uptrace/bun"

	"github.com/mkoziy/i18nmodel/internal/locale"
)

// Registry holds registered source models and the translation schemas
// derived from them.
type Registry struct {
	db     bun.IDB
	langs  locale.Set
	logger *slog.Logger

	mu           sync.RWMutex
	sources      map[string]*SourceType
	byType       map[reflect.Type]*SourceType
	translations []*Translation
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the registry logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRegistry creates an empty registry bound to db and langs.
func NewRegistry(db bun.IDB, langs locale.Set, opts ...Option) *Registry {
	r := &Registry{
		db:      db,
		langs:   langs,
		logger:  slog.Default(),
		sources: make(map[string]*SourceType),
		byType:  make(map[reflect.Type]*SourceType),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Languages returns the Language Set the registry was built with.
func (r *Registry) Languages() locale.Set {
	return r.langs
}

// Register introspects models and records them under namespace.
func (r *Registry) Register(namespace string, models ...any) error {
	if namespace == "" {
		return fmt.Errorf("%w: empty namespace", ErrConfiguration)
	}
	for _, m := range models {
		if _, err := r.Source(namespace, m); err != nil {
			return err
		}
	}
	return nil
}

// Source returns the registered SourceType for model, registering it under
// namespace when it is not known yet.
func (r *Registry) Source(namespace string, model any) (*SourceType, error) {
	typ, err := modelType(model)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	src, ok := r.byType[typ]
	r.mu.RUnlock()
	if ok {
		return src, nil
	}

	if namespace == "" {
		return nil, fmt.Errorf("%w: empty namespace for %s", ErrConfiguration, typ.Name())
	}
	src, err = Introspect(r.db, namespace, typ)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.byType[typ]; ok {
		return existing, nil
	}
	if _, clash := r.sources[src.QualifiedName()]; clash {
		return nil, fmt.Errorf("%w: %s registered twice", ErrConfiguration, src.QualifiedName())
	}
	r.sources[src.QualifiedName()] = src
	r.byType[typ] = src
	r.logger.Debug("source model registered", "model", src.QualifiedName(), "table", src.Table)
	return src, nil
}

// Lookup finds a registered source by "namespace.TypeName".
func (r *Registry) Lookup(qualified string) (*SourceType, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	src, ok := r.sources[qualified]
	return src, ok
}

// Define resolves, derives and records a translation schema.
func (r *Registry) Define(def Definition) (*Translation, error) {
	src, err := ResolveSource(r, def)
	if err != nil {
		return nil, err
	}
	fields, err := ResolveFields(src, def.Fields)
	if err != nil {
		return nil, err
	}
	t, err := Derive(src, fields, def, r.langs)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.translations {
		if existing.QualifiedName() == t.QualifiedName() {
			return nil, fmt.Errorf("%w: translation %s defined twice", ErrConfiguration, t.QualifiedName())
		}
		if existing.Table == t.Table {
			return nil, fmt.Errorf("%w: table %s already used by %s", ErrConfiguration, t.Table, existing.QualifiedName())
		}
	}
	r.translations = append(r.translations, t)

	r.logger.Info("translation schema defined",
		"translation", t.QualifiedName(),
		"source", src.QualifiedName(),
		"table", t.Table,
		"fields", len(t.Fields),
		"demoted", t.Demoted,
	)
	return t, nil
}

// MustDefine is like Define but panics on error.
func (r *Registry) MustDefine(def Definition) *Translation {
	t, err := r.Define(def)
	if err != nil {
		panic(err)
	}
	return t
}

// Translations returns the defined translation schemas in definition order.
func (r *Registry) Translations() []*Translation {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*Translation(nil), r.translations...)
}

// Translation finds a defined schema by qualified name or bare name.
func (r *Registry) Translation(name string) (*Translation, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, t := range r.translations {
		if t.QualifiedName() == name || t.Name == name {
			return t, true
		}
	}
	return nil, false
}
