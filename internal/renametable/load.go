package renametable

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile reads a rename table from a YAML or JSON mapping file of
// singular: plural pairs. Entry order follows the file.
func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rename table: %w", err)
	}
	return Parse(path, data)
}

// Parse decodes a rename table from data. source names the input in errors.
func Parse(source string, data []byte) (*Table, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &ConfigError{Source: source, Message: "file is empty"}
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ConfigError{Source: source, Message: err.Error()}
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, &ConfigError{Source: source, Message: "expected a mapping of singular: plural"}
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, &ConfigError{Source: source, Line: root.Line, Message: "expected a mapping of singular: plural"}
	}

	entries := make([]Entry, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		if key.Kind != yaml.ScalarNode {
			return nil, &ConfigError{Source: source, Line: key.Line, Message: "keys must be plain strings"}
		}
		if value.Kind != yaml.ScalarNode || value.Tag == "!!null" {
			return nil, &ConfigError{Source: source, Line: value.Line, Key: key.Value, Message: "replacement must be a string"}
		}
		entries = append(entries, Entry{Singular: key.Value, Plural: value.Value, line: key.Line})
	}
	return build(source, entries)
}

// Encode writes t as a YAML mapping in table order. The output is accepted by
// Parse.
func (t *Table) Encode(w io.Writer) error {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, e := range t.entries {
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: e.Singular},
			&yaml.Node{Kind: yaml.ScalarNode, Value: e.Plural},
		)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return fmt.Errorf("failed to encode rename table: %w", err)
	}
	return enc.Close()
}
