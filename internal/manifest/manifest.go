// Package manifest reads the JavaScript package manifest of a repository.
package manifest

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/firefly-engineering/devtriage/internal/logging"
	"github.com/firefly-engineering/devtriage/internal/system"
)

// FileName is the manifest looked up at the repository root.
const FileName = "package.json"

// Manifest is the subset of package.json that runner detection looks at.
type Manifest struct {
	// Scripts maps script names to their shell command strings.
	Scripts map[string]string

	// Dependencies is the merge of dependencies and devDependencies.
	// devDependencies win on a key collision.
	Dependencies map[string]string

	// present is true when package.json decoded to a non-empty object.
	present bool
}

// Present reports whether a non-empty manifest was found.
func (m *Manifest) Present() bool {
	return m.present
}

// HasDependency reports whether name is a direct or dev dependency.
func (m *Manifest) HasDependency(name string) bool {
	_, ok := m.Dependencies[name]
	return ok
}

// ScriptBlob joins every script command with a single space, ordered by
// script name.
func (m *Manifest) ScriptBlob() string {
	names := make([]string, 0, len(m.Scripts))
	for name := range m.Scripts {
		names = append(names, name)
	}
	sort.Strings(names)

	commands := make([]string, 0, len(names))
	for _, name := range names {
		commands = append(commands, m.Scripts[name])
	}
	return strings.Join(commands, " ")
}

// Mentions reports whether needle is a dependency or occurs in any script.
func (m *Manifest) Mentions(needle string) bool {
	return m.HasDependency(needle) || strings.Contains(m.ScriptBlob(), needle)
}

// Read loads package.json from root. A missing or malformed manifest yields
// an empty Manifest; Read never fails.
func Read(fsys system.FileSystem, root string) *Manifest {
	path := filepath.Join(root, FileName)
	data, err := fsys.ReadFile(path)
	if err != nil {
		return &Manifest{}
	}

	m, err := Parse(data)
	if err != nil {
		logging.Debug("ignoring unreadable manifest", "path", path, "error", err)
		return &Manifest{}
	}
	return m
}

// Parse decodes package.json content.
func Parse(data []byte) (*Manifest, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}

	m := &Manifest{
		Scripts:      stringValues(raw["scripts"]),
		Dependencies: stringValues(raw["dependencies"]),
		present:      len(raw) > 0,
	}
	for name, version := range stringValues(raw["devDependencies"]) {
		m.Dependencies[name] = version
	}
	return m, nil
}

// stringValues decodes a JSON object leniently. Non-object input yields an
// empty map and non-string values are rendered with their JSON text.
func stringValues(raw json.RawMessage) map[string]string {
	out := make(map[string]string)
	if len(raw) == 0 {
		return out
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return out
	}
	for key, value := range obj {
		var s string
		if err := json.Unmarshal(value, &s); err == nil {
			out[key] = s
			continue
		}
		out[key] = string(value)
	}
	return out
}
