package schema

import (
	"fmt"
	"strings"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
	bunschema "github.com/uptrace/bun/schema"

	"github.com/mkoziy/i18nmodel/internal/locale"
)

// Columns added to every translation schema.
const (
	IDColumn       = "id"
	SourceColumn   = "i18n_source_id"
	LanguageColumn = "i18n_language"

	// LanguageSize is the width of the language column.
	LanguageSize = 10
)

// Translation is a derived translation schema.
type Translation struct {
	Name      string
	Namespace string
	Table     string
	Source    *SourceType

	// Fields are copies of the translated source fields with single-column
	// uniqueness cleared.
	Fields []Field
	// Demoted lists fields that were unique on the source and are unique
	// per language here.
	Demoted []string
	// UniqueTogether holds the final multi-column constraints.
	UniqueTogether [][]string
	// Languages are the codes allowed in LanguageColumn.
	Languages []string
}

// QualifiedName returns "<namespace>.<Name>".
func (t *Translation) QualifiedName() string {
	return t.Namespace + "." + t.Name
}

// Columns returns every column in table order.
func (t *Translation) Columns() []string {
	cols := []string{IDColumn, SourceColumn, LanguageColumn}
	for _, f := range t.Fields {
		cols = append(cols, f.Name)
	}
	return cols
}

// Field finds a translated field by column or Go name.
func (t *Translation) Field(name string) (Field, bool) {
	for _, f := range t.Fields {
		if f.Name == name || f.GoName == name {
			return f, true
		}
	}
	return Field{}, false
}

// AllowsLanguage reports whether rows may be stored for code.
func (t *Translation) AllowsLanguage(code string) bool {
	for _, l := range t.Languages {
		if l == code {
			return true
		}
	}
	return false
}

// Derive builds the translation schema for src. Order of constraints is:
// declared groups, (source, language), then (language, f) for each demoted f.
func Derive(src *SourceType, fields []Field, def Definition, langs locale.Set) (*Translation, error) {
	t := &Translation{
		Name:      def.Name,
		Namespace: def.Namespace,
		Table:     def.Table,
		Source:    src,
		Languages: langs.TranslatableCodes(),
	}
	if t.Name == "" {
		t.Name = src.TypeName + NameSuffix
	}
	if t.Namespace == "" {
		t.Namespace = src.Namespace
	}
	if t.Table == "" {
		t.Table = src.Table + "_i18n"
	}

	for _, f := range fields {
		switch f.Name {
		case IDColumn, SourceColumn, LanguageColumn:
			return nil, fmt.Errorf("%w: field %q clashes with a reserved column", ErrConfiguration, f.Name)
		}
		if f.Unique {
			f.Unique = false
			t.Demoted = append(t.Demoted, f.Name)
		}
		t.Fields = append(t.Fields, f)
	}

	for _, group := range def.UniqueTogether {
		cols, err := t.normalizeGroup(group)
		if err != nil {
			return nil, err
		}
		t.UniqueTogether = append(t.UniqueTogether, cols)
	}
	t.UniqueTogether = append(t.UniqueTogether, []string{SourceColumn, LanguageColumn})
	for _, name := range t.Demoted {
		t.UniqueTogether = append(t.UniqueTogether, []string{LanguageColumn, name})
	}
	return t, nil
}

func (t *Translation) normalizeGroup(group []string) ([]string, error) {
	if len(group) == 0 {
		return nil, fmt.Errorf("%w: empty unique_together group", ErrConfiguration)
	}
	cols := make([]string, 0, len(group))
	for _, name := range group {
		switch name {
		case "i18n_source", SourceColumn:
			cols = append(cols, SourceColumn)
		case LanguageColumn, IDColumn:
			cols = append(cols, name)
		default:
			f, ok := t.Field(name)
			if !ok {
				return nil, fmt.Errorf("%w: unique_together references unknown field %q", ErrConfiguration, name)
			}
			cols = append(cols, f.Name)
		}
	}
	return cols, nil
}

// CreateTableQuery returns the DDL creating the translation table.
func (t *Translation) CreateTableQuery(db bun.IDB) *bun.RawQuery {
	var b strings.Builder
	var args []any

	b.WriteString("CREATE TABLE IF NOT EXISTS ? (\n")
	args = append(args, bun.Ident(t.Table))

	b.WriteString("  ? " + idColumnType(db.Dialect().Name()))
	args = append(args, bun.Ident(IDColumn))

	b.WriteString(",\n  ? ? NOT NULL")
	args = append(args, bun.Ident(SourceColumn), bun.Safe(referenceType(t.Source.PK.SQLType)))

	fmt.Fprintf(&b, ",\n  ? VARCHAR(%d) NOT NULL", LanguageSize)
	args = append(args, bun.Ident(LanguageColumn))

	for _, f := range t.Fields {
		b.WriteString(",\n  ? ?")
		args = append(args, bun.Ident(f.Name), bun.Safe(f.SQLType))
		if f.NotNull {
			b.WriteString(" NOT NULL")
		}
		if f.Default != "" {
			b.WriteString(" DEFAULT ?")
			args = append(args, bun.Safe(f.Default))
		}
	}

	for _, group := range t.UniqueTogether {
		b.WriteString(",\n  UNIQUE (")
		for i, col := range group {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString("?")
			args = append(args, bun.Ident(col))
		}
		b.WriteString(")")
	}

	b.WriteString(",\n  FOREIGN KEY (?) REFERENCES ? (?) ON DELETE CASCADE\n)")
	args = append(args, bun.Ident(SourceColumn), bun.Ident(t.Source.Table), bun.Ident(t.Source.PK.Name))

	return db.NewRaw(b.String(), args...)
}

// DropTableQuery returns the DDL dropping the translation table.
func (t *Translation) DropTableQuery(db bun.IDB) *bun.RawQuery {
	return db.NewRaw("DROP TABLE IF EXISTS ?", bun.Ident(t.Table))
}

// SQL renders q for display.
func SQL(db bun.IDB, q *bun.RawQuery) (string, error) {
	b, err := q.AppendQuery(bunschema.NewQueryGen(db.Dialect()), nil)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func idColumnType(name dialect.Name) string {
	switch name {
	case dialect.PG:
		return "BIGSERIAL PRIMARY KEY"
	case dialect.MySQL:
		return "BIGINT PRIMARY KEY AUTO_INCREMENT"
	default:
		return "INTEGER PRIMARY KEY AUTOINCREMENT"
	}
}

// referenceType maps serial key types to the plain integer they wrap.
func referenceType(sqlType string) string {
	switch strings.ToLower(sqlType) {
	case "smallserial":
		return "smallint"
	case "serial":
		return "integer"
	case "bigserial":
		return "bigint"
	}
	return sqlType
}
