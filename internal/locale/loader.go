package locale

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultSet returns the set used when nothing is configured.
func DefaultSet() Set {
	return Set{
		Languages: []Language{{Code: "en", Name: "English"}},
		Default:   "en",
	}
}

func applyDefaults(s Set) Set {
	if len(s.Languages) == 0 {
		d := DefaultSet()
		// A default without languages is kept so Validate rejects it.
		if s.Default != "" {
			d.Default = s.Default
		}
		return d
	}
	if s.Default == "" {
		s.Default = s.Languages[0].Code
	}
	for i, l := range s.Languages {
		if l.Name == "" {
			s.Languages[i].Name = l.Code
		}
	}
	return s
}

// Load parses YAML bytes into a validated Set.
//
//	default: en
//	languages:
//	  - {code: en, name: English}
//	  - {code: de, name: German}
func Load(data []byte) (Set, error) {
	var s Set
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Set{}, fmt.Errorf("%w: %v", ErrInvalidSet, err)
	}
	s = applyDefaults(s)
	if err := s.Validate(); err != nil {
		return Set{}, err
	}
	return s, nil
}

// LoadFile reads a YAML Language Set from path. An empty path yields DefaultSet.
func LoadFile(path string) (Set, error) {
	if path == "" {
		return DefaultSet(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Set{}, fmt.Errorf("reading language set: %w", err)
	}
	return Load(data)
}

// WithDefault returns a copy of s using code as the default language.
func (s Set) WithDefault(code string) (Set, error) {
	if code == "" {
		return s, nil
	}
	s.Default = code
	if err := s.Validate(); err != nil {
		return Set{}, err
	}
	return s, nil
}
