package runner

import (
	"path/filepath"
	"strings"

	"github.com/firefly-engineering/devtriage/internal/logging"
	"github.com/firefly-engineering/devtriage/internal/system"
)

var (
	pythonExtensions = map[string]bool{".py": true}
	jsExtensions     = map[string]bool{".js": true, ".jsx": true, ".ts": true, ".tsx": true}
)

// testsDir is where companion tests are looked up, relative to the root.
const testsDir = "tests"

// Mapper turns changed files into the test files that cover them.
type Mapper struct {
	FS   system.FileSystem
	Root string
}

// NewMapper returns a Mapper for the repository at root.
func NewMapper(fsys system.FileSystem, root string) *Mapper {
	return &Mapper{FS: fsys, Root: root}
}

// Tests routes changed files through the mapper for k's language family.
// Unknown kinds map to nothing.
func (m *Mapper) Tests(k Kind, changed []string) []string {
	switch {
	case k.Python():
		return m.PythonTests(changed)
	case k.JavaScript():
		return m.JSTests(changed)
	}
	return nil
}

// PythonTests maps changed .py files to test targets. A file that already
// looks like a test is kept as is; any other module is paired with
// tests/test_<stem>.py and tests/<stem>_test.py when those exist.
func (m *Mapper) PythonTests(changed []string) []string {
	var targets orderedSet
	for _, raw := range changed {
		f := parseChanged(raw)
		if !pythonExtensions[f.ext] {
			continue
		}
		if f.inDir(testsDir) || strings.HasPrefix(f.stem, "test_") || strings.HasSuffix(f.stem, "_test") {
			targets.add(f.path)
			continue
		}
		for _, candidate := range []string{
			testsDir + "/test_" + f.stem + ".py",
			testsDir + "/" + f.stem + "_test.py",
		} {
			if m.exists(candidate) {
				targets.add(candidate)
			}
		}
	}
	return targets.items()
}

// JSTests maps changed JavaScript and TypeScript files to test targets.
// Files named like tests or living under __tests__ or tests are kept;
// others are paired with tests/<stem>.test<ext> when it exists.
func (m *Mapper) JSTests(changed []string) []string {
	var targets orderedSet
	for _, raw := range changed {
		f := parseChanged(raw)
		if !jsExtensions[f.ext] {
			continue
		}
		if strings.Contains(f.name, ".test.") ||
			strings.HasPrefix(f.stem, "test_") ||
			strings.HasSuffix(f.stem, "_test") ||
			f.inDir("__tests__") ||
			f.inDir(testsDir) {
			targets.add(f.path)
			continue
		}
		candidate := testsDir + "/" + f.stem + ".test" + f.ext
		if m.exists(candidate) {
			targets.add(candidate)
		}
	}
	return targets.items()
}

// exists probes a root-relative candidate. Symlinks are followed.
func (m *Mapper) exists(rel string) bool {
	found := m.FS.Exists(filepath.Join(m.Root, filepath.FromSlash(rel)))
	if !found {
		logging.Debug("no companion test", "candidate", rel)
	}
	return found
}

// changedFile is a version-control path split the way test naming rules
// need it.
type changedFile struct {
	path string   // normalized, slash separated
	dirs []string // directory segments
	name string   // final element
	stem string   // name without ext
	ext  string   // final suffix including the dot, or ""
}

// parseChanged normalizes a path reported by version control. Empty and
// "." segments are dropped; ".." is kept verbatim, as is a leading "/".
func parseChanged(p string) changedFile {
	slashed := filepath.ToSlash(p)
	var segments []string
	for _, s := range strings.Split(slashed, "/") {
		if s != "" && s != "." {
			segments = append(segments, s)
		}
	}

	f := changedFile{path: strings.Join(segments, "/")}
	if strings.HasPrefix(slashed, "/") {
		f.path = "/" + f.path
	}
	if len(segments) == 0 {
		return f
	}
	f.dirs = segments[:len(segments)-1]
	f.name = segments[len(segments)-1]
	f.stem, f.ext = splitExt(f.name)
	return f
}

// splitExt splits at the last dot. A leading dot (".eslintrc") or a
// trailing one ("notes.") yields no extension.
func splitExt(name string) (stem, ext string) {
	i := strings.LastIndex(name, ".")
	if i <= 0 || i == len(name)-1 {
		return name, ""
	}
	return name[:i], name[i:]
}

func (f changedFile) inDir(dir string) bool {
	for _, d := range f.dirs {
		if d == dir {
			return true
		}
	}
	return false
}

// orderedSet keeps the first occurrence of each string in insertion order.
type orderedSet struct {
	seen  map[string]bool
	order []string
}

func (s *orderedSet) add(v string) {
	if s.seen == nil {
		s.seen = make(map[string]bool)
	}
	if s.seen[v] {
		return
	}
	s.seen[v] = true
	s.order = append(s.order, v)
}

// items returns the collected values, never nil.
func (s *orderedSet) items() []string {
	if s.order == nil {
		return []string{}
	}
	return s.order
}
