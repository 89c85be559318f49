package schema

import (
	"fmt"
	"strings"
)

// NameSuffix marks translation schemas named after their source type.
const NameSuffix = "I18N"

// ResolveFields picks the source fields to translate. Explicit names are
// used in the order given; otherwise every text-like field is chosen in
// declaration order.
func ResolveFields(src *SourceType, explicit []string) ([]Field, error) {
	if len(explicit) > 0 {
		fields := make([]Field, 0, len(explicit))
		seen := make(map[string]struct{}, len(explicit))
		for _, name := range explicit {
			f, ok := src.Field(name)
			if !ok {
				return nil, fmt.Errorf("%w: %s has no field %q", ErrConfiguration, src.TypeName, name)
			}
			if f.IsPK {
				return nil, fmt.Errorf("%w: primary key %q cannot be translated", ErrConfiguration, name)
			}
			if _, dup := seen[f.Name]; dup {
				return nil, fmt.Errorf("%w: field %q listed twice", ErrConfiguration, name)
			}
			seen[f.Name] = struct{}{}
			fields = append(fields, f)
		}
		return fields, nil
	}

	var fields []Field
	for _, f := range src.Fields {
		if f.Kind.IsText() {
			fields = append(fields, f)
		}
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: %s has no translatable fields", ErrConfiguration, src.TypeName)
	}
	return fields, nil
}

// ResolveSource determines which source type def translates.
func ResolveSource(reg *Registry, def Definition) (*SourceType, error) {
	switch src := def.Source.(type) {
	case nil:
	case *SourceType:
		return src, nil
	case string:
		if src == "" {
			break
		}
		if strings.Contains(src, ".") {
			return lookup(reg, src)
		}
		return lookup(reg, qualify(def.Namespace, src))
	default:
		return reg.Source(def.Namespace, src)
	}

	if base, ok := strings.CutSuffix(def.Name, NameSuffix); ok && base != "" {
		return lookup(reg, qualify(def.Namespace, base))
	}
	return nil, fmt.Errorf("%w: no source specified for %q", ErrConfiguration, def.Name)
}

func lookup(reg *Registry, qualified string) (*SourceType, error) {
	if ns, name, ok := strings.Cut(qualified, "."); !ok || ns == "" || name == "" {
		return nil, fmt.Errorf("%w: malformed source %q", ErrConfiguration, qualified)
	}
	src, ok := reg.Lookup(qualified)
	if !ok {
		return nil, fmt.Errorf("%w: source model %q is not registered", ErrConfiguration, qualified)
	}
	return src, nil
}

func qualify(namespace, name string) string {
	return namespace + "." + name
}
