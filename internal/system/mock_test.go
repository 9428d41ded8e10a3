package system

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"testing"
)

func TestMockFS_ReadWriteFile(t *testing.T) {
	mockFS := NewMockFS()

	content := []byte("[pytest]\n")
	if err := mockFS.WriteFile("/repo/pytest.ini", content, 0644); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}

	data, err := mockFS.ReadFile("/repo/pytest.ini")
	if err != nil {
		t.Fatalf("ReadFile error: %v", err)
	}

	if string(data) != "[pytest]\n" {
		t.Errorf("ReadFile = %q, want %q", string(data), "[pytest]\n")
	}
}

func TestMockFS_ReadFile_NotExists(t *testing.T) {
	mockFS := NewMockFS()

	_, err := mockFS.ReadFile("/nonexistent")
	if err != fs.ErrNotExist {
		t.Errorf("ReadFile error = %v, want fs.ErrNotExist", err)
	}
}

func TestMockFS_Stat(t *testing.T) {
	mockFS := NewMockFS()
	mockFS.AddFile("/repo/tests/test_foo.py", []byte("def test(): pass"), 0644)

	info, err := mockFS.Stat("/repo/tests/test_foo.py")
	if err != nil {
		t.Fatalf("Stat file error: %v", err)
	}
	if info.IsDir() {
		t.Error("File should not be a directory")
	}
	if info.Name() != "test_foo.py" {
		t.Errorf("Name = %q, want %q", info.Name(), "test_foo.py")
	}

	// Parent directories are implied by AddFile
	info, err = mockFS.Stat("/repo/tests")
	if err != nil {
		t.Fatalf("Stat dir error: %v", err)
	}
	if !info.IsDir() {
		t.Error("tests should be a directory")
	}
}

func TestMockFS_ExistsAndIsDir(t *testing.T) {
	mockFS := NewMockFS()
	mockFS.AddFile("/file.txt", []byte("x"), 0644)
	mockFS.AddDir("/dir")

	if !mockFS.Exists("/file.txt") {
		t.Error("File should exist")
	}
	if !mockFS.Exists("/dir") {
		t.Error("Dir should exist")
	}
	if mockFS.Exists("/nonexistent") {
		t.Error("Nonexistent should not exist")
	}
	if mockFS.IsDir("/file.txt") {
		t.Error("File should not be a directory")
	}
	if !mockFS.IsDir("/dir") {
		t.Error("Dir should be a directory")
	}
}

func TestMockFS_MkdirAll(t *testing.T) {
	mockFS := NewMockFS()

	if err := mockFS.MkdirAll("/a/b/c", 0755); err != nil {
		t.Fatalf("MkdirAll error: %v", err)
	}

	for _, dir := range []string{"/a", "/a/b", "/a/b/c"} {
		if !mockFS.IsDir(dir) {
			t.Errorf("%s should be a directory", dir)
		}
	}
}

func TestMockFS_ErrorInjection(t *testing.T) {
	mockFS := NewMockFS()
	mockFS.ReadFileErr = fs.ErrPermission

	_, err := mockFS.ReadFile("/anything")
	if err != fs.ErrPermission {
		t.Errorf("ReadFile error = %v, want ErrPermission", err)
	}
}

func TestMockExecutor_Run(t *testing.T) {
	exec := NewMockExecutor()
	exec.AddResponse("git -C", MockResponse{Stdout: []byte("src/foo.py\n")})

	result, err := exec.Run(context.Background(), Command{
		Name: "git",
		Args: []string{"-C", "/repo", "diff", "--name-only", "HEAD"},
	})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if string(result.Stdout) != "src/foo.py\n" {
		t.Errorf("Stdout = %q, want %q", string(result.Stdout), "src/foo.py\n")
	}

	cmd, ok := exec.LastCommand()
	if !ok {
		t.Fatal("No command recorded")
	}
	if cmd.Name != "git" {
		t.Errorf("Command name = %q, want %q", cmd.Name, "git")
	}
}

func TestMockExecutor_FullCommandLineWins(t *testing.T) {
	exec := NewMockExecutor()
	exec.AddResponse("pytest", MockResponse{ExitCode: 0})
	exec.AddResponse("pytest -q tests/test_a.py", MockResponse{ExitCode: 1, Stderr: []byte("FAILED")})

	result, err := exec.Run(context.Background(), Command{Name: "pytest", Args: []string{"-q", "tests/test_a.py"}})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if result.ExitCode != 1 {
		t.Errorf("ExitCode = %d, want 1", result.ExitCode)
	}
}

func TestMockExecutor_TeesOutput(t *testing.T) {
	exec := NewMockExecutor()
	exec.DefaultResponse = MockResponse{Stdout: []byte("out"), Stderr: []byte("err")}

	var stdout, stderr bytes.Buffer
	if _, err := exec.Run(context.Background(), Command{Name: "anything", Stdout: &stdout, Stderr: &stderr}); err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if stdout.String() != "out" || stderr.String() != "err" {
		t.Errorf("tee = (%q, %q), want (\"out\", \"err\")", stdout.String(), stderr.String())
	}
}

func TestMockExecutor_Err(t *testing.T) {
	exec := NewMockExecutor()
	wantErr := errors.New("executable file not found in $PATH")
	exec.AddResponse("nosetests", MockResponse{Err: wantErr})

	_, err := exec.Run(context.Background(), Command{Name: "nosetests"})
	if !errors.Is(err, wantErr) {
		t.Errorf("Run error = %v, want %v", err, wantErr)
	}
}

func TestMockExecutor_Reset(t *testing.T) {
	exec := NewMockExecutor()
	exec.Run(context.Background(), Command{Name: "cmd1"})
	exec.Run(context.Background(), Command{Name: "cmd2"})

	if len(exec.Commands) != 2 {
		t.Errorf("Commands length = %d, want 2", len(exec.Commands))
	}

	exec.Reset()

	if len(exec.Commands) != 0 {
		t.Errorf("Commands length after reset = %d, want 0", len(exec.Commands))
	}
}
