package spindle

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadJSON decodes a JSON rule file into a registration map. Values may be
// strings or lists of strings.
func LoadJSON(r io.Reader) (map[string]any, error) {
	var raw map[string]any
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode rule book: %w", err)
	}
	return normalizeBook(raw), nil
}

// LoadYAML decodes a YAML rule file into a registration map.
func LoadYAML(r io.Reader) (map[string]any, error) {
	var raw map[string]any
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode rule book: %w", err)
	}
	return normalizeBook(raw), nil
}

// LoadFile loads a rule book from a .json, .yaml or .yml file.
func LoadFile(path string) (map[string]any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return LoadJSON(f)
	case ".yaml", ".yml":
		return LoadYAML(f)
	default:
		return nil, fmt.Errorf("unsupported rule book format %q", filepath.Ext(path))
	}
}

// normalizeBook reduces decoded values to the definitions New accepts:
// strings stay strings, sequences become []string, the rest is stringified
// at registration.
func normalizeBook(raw map[string]any) map[string]any {
	book := make(map[string]any, len(raw))
	for name, def := range raw {
		switch v := def.(type) {
		case []any:
			candidates := make([]string, len(v))
			for i, c := range v {
				candidates[i] = fmt.Sprint(c)
			}
			book[name] = candidates
		default:
			book[name] = v
		}
	}
	return book
}

// Export returns the Grammar's surviving rules with their original candidate
// strings, suitable for persistence.
func (g *Grammar) Export() map[string][]string {
	out := make(map[string][]string)
	for _, name := range g.RuleNames() {
		out[name] = g.CandidateTexts(name)
	}
	return out
}
