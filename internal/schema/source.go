package schema

import (
	"fmt"
	"reflect"

	"github.com/uptrace/bun"
	bunschema "github.com/uptrace/bun/schema"
)

// SourceType is the introspected description of a source model.
type SourceType struct {
	Namespace string
	TypeName  string
	Table     string
	GoType    reflect.Type
	PK        Field
	Fields    []Field
}

// QualifiedName returns "<namespace>.<TypeName>".
func (s *SourceType) QualifiedName() string {
	return s.Namespace + "." + s.TypeName
}

// Field finds a field by column name or Go field name.
func (s *SourceType) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name || f.GoName == name {
			return f, true
		}
	}
	return Field{}, false
}

// PKValue returns the primary key of model, which must be of the source type.
func (s *SourceType) PKValue(model any) (any, error) {
	v := reflect.ValueOf(model)
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil, fmt.Errorf("nil %s", s.TypeName)
		}
		v = v.Elem()
	}
	if v.Type() != s.GoType {
		return nil, fmt.Errorf("expected %s, got %s", s.GoType, v.Type())
	}
	return s.PK.value(v), nil
}

// Values returns every column of model keyed by column name.
func (s *SourceType) Values(model any) (map[string]any, error) {
	v := reflect.ValueOf(model)
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil, fmt.Errorf("nil %s", s.TypeName)
		}
		v = v.Elem()
	}
	if v.Type() != s.GoType {
		return nil, fmt.Errorf("expected %s, got %s", s.GoType, v.Type())
	}
	out := make(map[string]any, len(s.Fields))
	for _, f := range s.Fields {
		out[f.Name] = f.value(v)
	}
	return out, nil
}

// Introspect builds a SourceType from a bun model value, pointer or reflect.Type.
func Introspect(db bun.IDB, namespace string, model any) (*SourceType, error) {
	typ, err := modelType(model)
	if err != nil {
		return nil, err
	}

	table := db.Dialect().Tables().Get(typ)
	if len(table.PKs) != 1 {
		return nil, fmt.Errorf("%w: %s must have exactly one primary key, has %d",
			ErrConfiguration, typ.Name(), len(table.PKs))
	}

	unique := uniqueColumns(table)
	src := &SourceType{
		Namespace: namespace,
		TypeName:  typ.Name(),
		Table:     table.Name,
		GoType:    typ,
		PK:        newField(table.PKs[0], true),
	}
	for _, f := range table.Fields {
		_, isUnique := unique[f.Name]
		src.Fields = append(src.Fields, newField(f, isUnique))
	}
	return src, nil
}

// uniqueColumns collects the columns that are unique on their own:
// a bare `unique` tag, or a named unique group with a single member.
func uniqueColumns(table *bunschema.Table) map[string]struct{} {
	out := make(map[string]struct{})
	for group, fields := range table.Unique {
		if group != "" && len(fields) != 1 {
			continue
		}
		for _, f := range fields {
			out[f.Name] = struct{}{}
		}
	}
	return out
}

func modelType(model any) (reflect.Type, error) {
	var typ reflect.Type
	switch m := model.(type) {
	case nil:
		return nil, fmt.Errorf("%w: nil model", ErrConfiguration)
	case reflect.Type:
		typ = m
	default:
		typ = reflect.TypeOf(model)
	}
	for typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: model must be a struct, got %s", ErrConfiguration, typ)
	}
	return typ, nil
}
