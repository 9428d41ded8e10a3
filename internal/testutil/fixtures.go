package testutil

import (
	"embed"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"testing"

	"github.com/firefly-engineering/devtriage/internal/system"
)

//go:embed fixtures
var fixturesFS embed.FS

// LoadFixture loads a fixture file by its path under fixtures/,
// e.g. "jest/package.json".
func LoadFixture(name string) ([]byte, error) {
	return fixturesFS.ReadFile(path.Join("fixtures", name))
}

// RepoFixtures lists the sample repository layouts.
func RepoFixtures() []string {
	entries, err := fixturesFS.ReadDir("fixtures")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}

// RepoFiles returns the files of a repository fixture keyed by their
// slash-separated path relative to the repository root.
func RepoFiles(name string) (map[string][]byte, error) {
	base := path.Join("fixtures", name)
	files := make(map[string][]byte)
	err := fs.WalkDir(fixturesFS, base, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := fixturesFS.ReadFile(p)
		if err != nil {
			return err
		}
		rel := p[len(base)+1:]
		files[rel] = data
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// WriteRepo copies a repository fixture into dir on disk.
func WriteRepo(t *testing.T, name, dir string) {
	t.Helper()

	files, err := RepoFiles(name)
	if err != nil {
		t.Fatalf("Failed to load fixture %s: %v", name, err)
	}
	for rel, data := range files {
		dst := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
			t.Fatalf("Failed to create %s: %v", filepath.Dir(dst), err)
		}
		if err := os.WriteFile(dst, data, 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", dst, err)
		}
	}
}

// MockRepo adds a repository fixture to a mock file system under root.
func MockRepo(t *testing.T, name string, fsys *system.MockFS, root string) {
	t.Helper()

	files, err := RepoFiles(name)
	if err != nil {
		t.Fatalf("Failed to load fixture %s: %v", name, err)
	}
	for rel, data := range files {
		fsys.AddFile(filepath.Join(root, filepath.FromSlash(rel)), data, 0644)
	}
}
