// Package present holds display helpers for templates: picking the
// translation of an object and rewriting URLs for another language.
//
// Helpers never fail. A lookup that cannot be resolved falls back to the
// original object or an empty string.
package present

import (
	"context"
	"html/template"
	"log/slog"
	"net/http"
	"reflect"

	"github.com/go-chi/chi/v5"

	"github.com/mkoziy/i18nmodel/internal/locale"
	"github.com/mkoziy/i18nmodel/internal/translation"
)

// Helpers resolves translations for any registered source type.
type Helpers struct {
	urls     *URLs
	langs    locale.Set
	managers map[reflect.Type]*translation.Manager
	logger   *slog.Logger
}

// New creates helpers over urls and one manager per translated source type.
func New(urls *URLs, langs locale.Set, logger *slog.Logger, managers ...*translation.Manager) *Helpers {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Helpers{
		urls:     urls,
		langs:    langs,
		managers: make(map[reflect.Type]*translation.Manager, len(managers)),
		logger:   logger,
	}
	for _, m := range managers {
		h.managers[m.Schema().Source.GoType] = m
	}
	return h
}

func (h *Helpers) manager(obj any) (*translation.Manager, bool) {
	typ := reflect.TypeOf(obj)
	if typ == nil {
		return nil, false
	}
	for typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	m, ok := h.managers[typ]
	return m, ok
}

// Translate returns the translation row of obj in lang. It returns obj
// itself for the default language, for unknown types and when no
// translation exists. An empty lang uses the language active on ctx.
func (h *Helpers) Translate(ctx context.Context, obj any, lang string) any {
	if lang == "" {
		lang = h.langs.Active(ctx)
	}
	if lang == h.langs.Default {
		return obj
	}
	m, ok := h.manager(obj)
	if !ok {
		return obj
	}
	scoped, err := m.ForModel(obj)
	if err != nil {
		return obj
	}
	row, err := scoped.GetByLang(ctx, lang)
	if err != nil {
		h.logger.DebugContext(ctx, "translation fallback", "language", lang, "error", err)
		return obj
	}
	return row
}

// Localize returns the columns of obj with translated values laid over them.
// Unknown types yield nil.
func (h *Helpers) Localize(ctx context.Context, obj any, lang string) map[string]any {
	m, ok := h.manager(obj)
	if !ok {
		return nil
	}
	values, err := m.Schema().Source.Values(obj)
	if err != nil {
		return nil
	}
	if row, ok := h.Translate(ctx, obj, lang).(*translation.Row); ok {
		for k, v := range row.Values {
			if v != nil {
				values[k] = v
			}
		}
	}
	return values
}

// TranslateURL rewrites path, or the current request path when empty, to
// the same route in lang. Route name and parameters are kept; only the
// {lang} parameter changes. Any failure yields "".
func (h *Helpers) TranslateURL(r *http.Request, path, lang string) string {
	if h.urls == nil {
		return ""
	}

	var (
		match Match
		err   error
	)
	switch {
	case path != "":
		match, err = h.urls.Resolve(path)
	case r != nil:
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			match, err = h.urls.match(rctx)
		} else {
			match, err = h.urls.Resolve(r.URL.Path)
		}
	default:
		return ""
	}
	if err != nil {
		return ""
	}

	if lang == "" {
		lang = h.langs.Default
		if r != nil {
			lang = h.langs.Active(r.Context())
		}
	}
	if _, ok := match.Kwargs[locale.URLParam]; ok {
		match.Kwargs[locale.URLParam] = lang
	}

	url, err := h.urls.Reverse(match.Name, nil, match.Kwargs)
	if err != nil {
		return ""
	}
	return url
}

// FuncMap returns the template functions bound to r:
//
//	{{ $t := translate .Article "de" }}
//	{{ translate_url "" "de" }}
func (h *Helpers) FuncMap(r *http.Request) template.FuncMap {
	ctx := context.Background()
	if r != nil {
		ctx = r.Context()
	}
	return template.FuncMap{
		"translate": func(obj any, lang ...string) any {
			return h.Translate(ctx, obj, first(lang))
		},
		"localize": func(obj any, lang ...string) map[string]any {
			return h.Localize(ctx, obj, first(lang))
		},
		"translate_url": func(args ...string) string {
			var path, lang string
			if len(args) > 0 {
				path = args[0]
			}
			if len(args) > 1 {
				lang = args[1]
			}
			return h.TranslateURL(r, path, lang)
		},
	}
}

func first(s []string) string {
	if len(s) == 0 {
		return ""
	}
	return s[0]
}
