package testutil

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/firefly-engineering/devtriage/internal/system"
)

func TestRepoFixtures(t *testing.T) {
	want := []string{"jest", "mocha", "nose", "pytest"}
	if got := RepoFixtures(); !reflect.DeepEqual(got, want) {
		t.Errorf("RepoFixtures() = %v, want %v", got, want)
	}
}

func TestLoadFixture(t *testing.T) {
	data, err := LoadFixture("jest/package.json")
	if err != nil {
		t.Fatalf("LoadFixture() error: %v", err)
	}
	if !strings.Contains(string(data), `"jest"`) {
		t.Error("jest manifest should mention jest")
	}

	if _, err := LoadFixture("nonexistent.json"); err == nil {
		t.Error("LoadFixture should fail for nonexistent file")
	}
}

func TestRepoFiles(t *testing.T) {
	files, err := RepoFiles("pytest")
	if err != nil {
		t.Fatalf("RepoFiles() error: %v", err)
	}

	for _, rel := range []string{"pytest.ini", "src/foo.py", "tests/test_foo.py"} {
		if _, ok := files[rel]; !ok {
			t.Errorf("fixture pytest is missing %s", rel)
		}
	}
}

func TestWriteRepo(t *testing.T) {
	dir := t.TempDir()
	WriteRepo(t, "nose", dir)

	data, err := os.ReadFile(filepath.Join(dir, "setup.cfg"))
	if err != nil {
		t.Fatalf("setup.cfg not written: %v", err)
	}
	if !strings.Contains(string(data), "nosetests") {
		t.Error("nose fixture setup.cfg should mention nosetests")
	}
}

func TestMockRepo(t *testing.T) {
	mockFS := system.NewMockFS()
	MockRepo(t, "jest", mockFS, "/repo")

	if !mockFS.Exists("/repo/tests/app.test.ts") {
		t.Error("mock repo should contain tests/app.test.ts")
	}
	if !mockFS.IsDir("/repo/tests") {
		t.Error("mock repo should contain the tests directory")
	}
}

func TestNewTestEnv(t *testing.T) {
	env := NewTestEnv(t)

	if _, err := os.Stat(filepath.Join(env.Root, ".git")); err != nil {
		t.Errorf(".git should exist: %v", err)
	}

	env.WriteFile("src/foo.py", "x = 1\n")
	if got := env.ReadFile("src/foo.py"); got != "x = 1\n" {
		t.Errorf("ReadFile = %q", got)
	}

	env.SetChanged("src/foo.py")
	if len(env.Exec.Responses) != 1 {
		t.Errorf("SetChanged should register one response, got %d", len(env.Exec.Responses))
	}
}
