package runner

import (
	"path/filepath"
	"strings"

	"github.com/firefly-engineering/devtriage/internal/logging"
	"github.com/firefly-engineering/devtriage/internal/manifest"
	"github.com/firefly-engineering/devtriage/internal/system"
)

// Marker files inspected for Python runners, in precedence order.
var (
	pytestMarkers = []string{"pytest.ini", "conftest.py", "tox.ini", "setup.cfg", "pyproject.toml"}
	noseMarkers   = []string{"nose.cfg", "setup.cfg", "tox.ini"}

	// sharedMarkers only count when their text mentions pytest.
	sharedMarkers = map[string]bool{"setup.cfg": true, "tox.ini": true, "pyproject.toml": true}
)

// Rule names the detection step that produced a Detection.
type Rule string

const (
	RuleManifest Rule = "manifest"
	RuleMarker   Rule = "marker"
	RuleDefault  Rule = "default"
)

// Detection is the outcome of runner detection with its evidence.
type Detection struct {
	Kind Kind
	Rule Rule

	// Evidence is the file that decided the result, relative to the root.
	// Empty for RuleDefault.
	Evidence string
}

// Detector infers the test runner of a repository from its manifest and
// marker files. Detection is a plain substring heuristic: a marker counts
// when its raw text contains the runner name anywhere, without parsing
// sections.
type Detector struct {
	FS   system.FileSystem
	Root string
}

// NewDetector returns a Detector for the repository at root.
func NewDetector(fsys system.FileSystem, root string) *Detector {
	return &Detector{FS: fsys, Root: root}
}

// Detect returns the runner governing the repository. It never fails and
// falls back to pytest when nothing matches.
func (d *Detector) Detect() Kind {
	return d.Explain().Kind
}

// Explain runs detection and reports which rule matched.
func (d *Detector) Explain() Detection {
	det := d.explain()
	logging.Debug("detected test runner", "root", d.Root, "kind", det.Kind, "rule", det.Rule, "evidence", det.Evidence)
	return det
}

func (d *Detector) explain() Detection {
	pkg := manifest.Read(d.FS, d.Root)
	if pkg.Present() {
		for _, k := range []Kind{Jest, Mocha} {
			if pkg.Mentions(string(k)) {
				return Detection{Kind: k, Rule: RuleManifest, Evidence: manifest.FileName}
			}
		}
	}

	for _, marker := range pytestMarkers {
		if !d.exists(marker) {
			continue
		}
		if !sharedMarkers[marker] || d.contains(marker, "pytest") {
			return Detection{Kind: Pytest, Rule: RuleMarker, Evidence: marker}
		}
	}

	for _, marker := range noseMarkers {
		if d.exists(marker) && d.contains(marker, "nosetests") {
			return Detection{Kind: Nose, Rule: RuleMarker, Evidence: marker}
		}
	}

	return Detection{Kind: Pytest, Rule: RuleDefault}
}

func (d *Detector) exists(name string) bool {
	return d.FS.Exists(filepath.Join(d.Root, name))
}

// contains reports whether the file's raw text contains needle. Unreadable
// files never match.
func (d *Detector) contains(name, needle string) bool {
	data, err := d.FS.ReadFile(filepath.Join(d.Root, name))
	if err != nil {
		logging.Debug("marker unreadable", "file", name, "error", err)
		return false
	}
	return strings.Contains(string(data), needle)
}
