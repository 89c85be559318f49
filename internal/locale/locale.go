// Package locale holds the configured Language Set and the active language
// carried on a request context.
package locale

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// ErrInvalidSet is returned when a Language Set fails validation.
var ErrInvalidSet = errors.New("invalid language set")

// Language is a configured (code, display name) pair.
type Language struct {
	Code string `yaml:"code" json:"code"`
	Name string `yaml:"name" json:"name"`
}

// Set is the ordered list of supported languages plus the default code.
type Set struct {
	Languages []Language `yaml:"languages" json:"languages"`
	Default   string     `yaml:"default" json:"default"`
}

// NewSet builds a Set from languages in order.
func NewSet(defaultCode string, langs ...Language) Set {
	return Set{Languages: append([]Language(nil), langs...), Default: defaultCode}
}

// Codes returns every configured code in declaration order.
func (s Set) Codes() []string {
	codes := make([]string, 0, len(s.Languages))
	for _, l := range s.Languages {
		codes = append(codes, l.Code)
	}
	return codes
}

// Translatable returns the configured languages without the default one.
func (s Set) Translatable() []Language {
	out := make([]Language, 0, len(s.Languages))
	for _, l := range s.Languages {
		if l.Code != s.Default {
			out = append(out, l)
		}
	}
	return out
}

// TranslatableCodes is Translatable reduced to codes.
func (s Set) TranslatableCodes() []string {
	langs := s.Translatable()
	codes := make([]string, 0, len(langs))
	for _, l := range langs {
		codes = append(codes, l.Code)
	}
	return codes
}

// Has reports whether code is configured.
func (s Set) Has(code string) bool {
	for _, l := range s.Languages {
		if l.Code == code {
			return true
		}
	}
	return false
}

// IsTranslatable reports whether rows may exist for code.
func (s Set) IsTranslatable(code string) bool {
	return code != s.Default && s.Has(code)
}

// Name returns the display name of code, or the code itself when unknown.
func (s Set) Name(code string) string {
	for _, l := range s.Languages {
		if l.Code == code {
			return l.Name
		}
	}
	return code
}

// Tags parses every code into a language tag, in declaration order.
func (s Set) Tags() ([]language.Tag, error) {
	tags := make([]language.Tag, 0, len(s.Languages))
	for _, l := range s.Languages {
		tag, err := language.Parse(l.Code)
		if err != nil {
			return nil, fmt.Errorf("%w: language code %q: %v", ErrInvalidSet, l.Code, err)
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

// Validate checks that the set is usable.
func (s Set) Validate() error {
	if len(s.Languages) == 0 {
		return fmt.Errorf("%w: no languages configured", ErrInvalidSet)
	}
	seen := make(map[string]struct{}, len(s.Languages))
	for _, l := range s.Languages {
		if l.Code == "" {
			return fmt.Errorf("%w: empty language code", ErrInvalidSet)
		}
		if _, dup := seen[l.Code]; dup {
			return fmt.Errorf("%w: duplicate language code %q", ErrInvalidSet, l.Code)
		}
		seen[l.Code] = struct{}{}
	}
	if _, err := s.Tags(); err != nil {
		return err
	}
	if !s.Has(s.Default) {
		return fmt.Errorf("%w: default language %q is not configured", ErrInvalidSet, s.Default)
	}
	return nil
}

// AccessorName normalizes a language code into an identifier: "pt-br" becomes "pt_br".
func AccessorName(code string) string {
	return strings.ReplaceAll(code, "-", "_")
}
