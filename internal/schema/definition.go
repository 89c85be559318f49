package schema

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Definition declares a translation schema.
//
// Source may be a model value or pointer, a reflect.Type, a *SourceType,
// a "namespace.TypeName" string, a bare "TypeName" looked up in Namespace,
// or empty when Name follows the "<TypeName>I18N" convention.
type Definition struct {
	Name           string         `yaml:"name"`
	Namespace      string         `yaml:"namespace"`
	Source         any            `yaml:"source"`
	Fields         []string       `yaml:"fields"`
	UniqueTogether UniqueTogether `yaml:"unique_together"`
	Table          string         `yaml:"table"`
}

// UniqueTogether is a list of column groups that must be unique together.
// In YAML a single group may be written flat: [a, b] is [[a, b]].
type UniqueTogether [][]string

// UnmarshalYAML accepts both a single group and a list of groups.
func (u *UniqueTogether) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode {
		return fmt.Errorf("%w: unique_together must be a sequence", ErrConfiguration)
	}
	if len(node.Content) == 0 {
		*u = nil
		return nil
	}
	if node.Content[0].Kind == yaml.ScalarNode {
		var group []string
		if err := node.Decode(&group); err != nil {
			return err
		}
		*u = UniqueTogether{group}
		return nil
	}
	var groups [][]string
	if err := node.Decode(&groups); err != nil {
		return err
	}
	*u = groups
	return nil
}

type definitionsFile struct {
	Translations []Definition `yaml:"translations"`
}

// LoadDefinitions parses YAML bytes holding a `translations:` list.
func LoadDefinitions(data []byte) ([]Definition, error) {
	var file definitionsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	return file.Translations, nil
}

// LoadDefinitionsFile reads definitions from path.
func LoadDefinitionsFile(path string) ([]Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading definitions: %w", err)
	}
	return LoadDefinitions(data)
}
