package rule

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile reads a rule table from a YAML file. The table is normalized
// and validated before it is returned.
func LoadFile(path string) (Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Table{}, fmt.Errorf("read rules file: %w", err)
	}
	return Parse(raw)
}

// Parse decodes a YAML rule table.
func Parse(raw []byte) (Table, error) {
	var t Table
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return Table{}, fmt.Errorf("decode rules: %w", err)
	}
	t.Normalize()
	if err := t.Validate(); err != nil {
		return Table{}, err
	}
	return t, nil
}

// LoadOrSeed loads path, or returns the built-in table when path is empty.
func LoadOrSeed(path string) (Table, error) {
	if path == "" {
		return Seed(), nil
	}
	return LoadFile(path)
}
