// Package testutil provides test fixtures and utilities.
//
// # Repository Fixtures
//
// Sample repository layouts are embedded using go:embed, one directory
// per runner:
//
//	fixtures/pytest  pytest.ini, src/foo.py, tests/test_foo.py
//	fixtures/nose    setup.cfg with [nosetests], pkg/util.py, tests/util_test.py
//	fixtures/jest    package.json depending on jest, plus a pytest.ini
//	fixtures/mocha   package.json with a mocha test script
//
// They can be written to disk or loaded into a mock file system:
//
//	testutil.WriteRepo(t, "jest", dir)
//	testutil.MockRepo(t, "nose", mockFS, "/repo")
//
// # Test Environment
//
// TestEnv wires an App around a temporary git repository with a mock
// executor, so command tests never spawn git or a test runner:
//
//	env := testutil.NewTestEnv(t)
//	env.UseRepo("pytest")
//	env.SetChanged("src/foo.py")
//	env.Exec.AddResponse("pytest", system.MockResponse{ExitCode: 1})
package testutil
