// Package runner detects which test framework governs a repository and
// narrows a test run to the tests relevant to changed files.
//
// # Runners
//
// Four runners are supported, split into two families:
//
//	Pytest, Nose // Python
//	Jest, Mocha  // JavaScript and TypeScript
//
// # Detection
//
// Detector checks, in order, and stops at the first match:
//
//  1. package.json naming jest as a dependency or in any script
//  2. package.json naming mocha the same way
//  3. pytest.ini or conftest.py existing, or tox.ini, setup.cfg or
//     pyproject.toml containing "pytest"
//  4. nose.cfg, setup.cfg or tox.ini containing "nosetests"
//  5. pytest
//
// Markers are matched on raw text; a "pytest" in a comment counts.
//
// # Mapping and Assembly
//
// Mapper routes changed files through the family's naming rules and
// companion-file probes, and BuildCommand turns the result into arguments:
//
//	d := runner.NewDetector(fsys, root)
//	kind := runner.AutoDetect().Resolve(d)
//	tests := runner.NewMapper(fsys, root).Tests(kind, changed)
//	cmd, ok := runner.BuildCommand(kind, tests, expression)
package runner
