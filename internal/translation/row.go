package translation

import (
	"fmt"

	"github.com/mkoziy/i18nmodel/internal/locale"
	"github.com/mkoziy/i18nmodel/internal/schema"
)

// Row is one stored translation.
type Row struct {
	ID       int64          `json:"id"`
	SourceID any            `json:"i18n_source_id"`
	Language string         `json:"i18n_language"`
	Values   map[string]any `json:"values"`
}

// Get returns the translated value of a column.
func (r *Row) Get(column string) any {
	return r.Values[column]
}

// String returns the translated value of a column formatted as text.
func (r *Row) String(column string) string {
	v, ok := r.Values[column]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Describe renders "German translation for 42".
func (r *Row) Describe(langs locale.Set) string {
	return fmt.Sprintf("%s translation for %v", langs.Name(r.Language), r.SourceID)
}

func decodeRow(t *schema.Translation, m map[string]any) *Row {
	row := &Row{
		ID:       toInt64(m[schema.IDColumn]),
		SourceID: normalize(m[schema.SourceColumn]),
		Values:   make(map[string]any, len(t.Fields)),
	}
	if lang, ok := normalize(m[schema.LanguageColumn]).(string); ok {
		row.Language = lang
	}
	for _, f := range t.Fields {
		row.Values[f.Name] = normalize(m[f.Name])
	}
	return row
}

// normalize turns driver byte slices into strings.
func normalize(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}

func toInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case int32:
		return int64(n)
	case uint64:
		return int64(n)
	case float64:
		return int64(n)
	}
	return 0
}
