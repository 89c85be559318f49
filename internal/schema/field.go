// Package schema derives translation table schemas from bun source models.
//
// A source model such as Article gets a companion ArticleI18N schema that
// copies its text columns and adds a back reference plus a language code.
package schema

import (
	"errors"
	"reflect"
	"strings"

	bunschema "github.com/uptrace/bun/schema"
)

// ErrConfiguration is returned when a translation schema cannot be defined.
// It is raised at registration time and is fatal to application startup.
var ErrConfiguration = errors.New("improperly configured")

// Kind classifies a source column for translation purposes.
type Kind int

const (
	KindOther Kind = iota
	KindChar
	KindSlug
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindChar:
		return "char"
	case KindSlug:
		return "slug"
	case KindText:
		return "text"
	default:
		return "other"
	}
}

// IsText reports whether the kind is translated by default.
func (k Kind) IsText() bool {
	return k == KindChar || k == KindSlug || k == KindText
}

// Field describes a single column of a source or translation schema.
type Field struct {
	Name    string
	GoName  string
	Kind    Kind
	SQLType string
	NotNull bool
	Default string
	Unique  bool
	IsPK    bool

	GoType reflect.Type
	index  []int
}

// i18n struct tag values.
const (
	tagSlug    = "slug"
	tagText    = "text"
	tagExclude = "-"
)

func newField(f *bunschema.Field, unique bool) Field {
	return Field{
		Name:    f.Name,
		GoName:  f.GoName,
		Kind:    fieldKind(f),
		SQLType: f.CreateTableSQLType,
		NotNull: f.NotNull || f.IsPK,
		Default: f.SQLDefault,
		Unique:  unique,
		IsPK:    f.IsPK,
		GoType:  f.IndirectType,
		index:   f.Index,
	}
}

func fieldKind(f *bunschema.Field) Kind {
	if f.IsPK || f.IndirectType == nil || f.IndirectType.Kind() != reflect.String {
		return KindOther
	}
	switch f.StructField.Tag.Get("i18n") {
	case tagExclude:
		return KindOther
	case tagSlug:
		return KindSlug
	case tagText:
		return KindText
	}
	switch strings.ToLower(f.UserSQLType) {
	case "text", "clob", "mediumtext", "longtext":
		return KindText
	}
	return KindChar
}

// value reads the field from a struct value.
func (f Field) value(strct reflect.Value) any {
	v := strct.FieldByIndex(f.index)
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	return v.Interface()
}
