package config

import (
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/firefly-engineering/devtriage/internal/errors"
	"github.com/firefly-engineering/devtriage/internal/runner"
	"github.com/firefly-engineering/devtriage/internal/system"
)

func TestDefault(t *testing.T) {
	c := Default()

	if c.Runner != RunnerAuto {
		t.Errorf("Runner = %q, want %q", c.Runner, RunnerAuto)
	}
	if c.OutDir != DefaultOutDir {
		t.Errorf("OutDir = %q, want %q", c.OutDir, DefaultOutDir)
	}
	if c.VCS != "auto" {
		t.Errorf("VCS = %q, want %q", c.VCS, "auto")
	}
	if !c.HistoryEnabled() {
		t.Error("History should be enabled by default")
	}
	if c.RunnerChoice().IsForced() {
		t.Error("default runner choice should be auto-detect")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{name: "empty", config: Config{}},
		{name: "auto runner", config: Config{Runner: "auto"}},
		{name: "jest runner", config: Config{Runner: "jest", VCS: "jj"}},
		{name: "unknown runner", config: Config{Runner: "ava"}, wantErr: true},
		{name: "unknown vcs", config: Config{VCS: "svn"}, wantErr: true},
		{name: "blank out_dir", config: Config{OutDir: "   "}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParse_TOML(t *testing.T) {
	cfg, err := Parse(".devtriage.toml", []byte(`
runner = "mocha"
out_dir = "artifacts/triage"
vcs = "git"
history = false
`))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	if cfg.Runner != "mocha" {
		t.Errorf("Runner = %q, want %q", cfg.Runner, "mocha")
	}
	if cfg.OutDir != "artifacts/triage" {
		t.Errorf("OutDir = %q, want %q", cfg.OutDir, "artifacts/triage")
	}
	if cfg.VCS != "git" {
		t.Errorf("VCS = %q, want %q", cfg.VCS, "git")
	}
	if cfg.HistoryEnabled() {
		t.Error("History should be disabled")
	}
}

func TestParse_YAML(t *testing.T) {
	cfg, err := Parse("custom.yml", []byte("runner: nose\nvcs: jj\n"))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	choice := cfg.RunnerChoice()
	if !choice.IsForced() || choice.Kind() != runner.Nose {
		t.Errorf("RunnerChoice() = %v, want forced:nose", choice)
	}
	if cfg.VCS != "jj" {
		t.Errorf("VCS = %q, want %q", cfg.VCS, "jj")
	}
}

func TestParse_EmptyYAML(t *testing.T) {
	cfg, err := Parse(".devtriage.yaml", nil)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if cfg.Runner != "" {
		t.Errorf("Runner = %q, want empty", cfg.Runner)
	}
}

func TestParse_UnknownKeys(t *testing.T) {
	if _, err := Parse(".devtriage.toml", []byte(`runnr = "jest"`)); err == nil {
		t.Error("TOML with an unknown key should fail")
	}
	if _, err := Parse(".devtriage.yaml", []byte("runnr: jest\n")); err == nil {
		t.Error("YAML with an unknown key should fail")
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(system.NewMockFS(), "/repo", "")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Source != "" {
		t.Errorf("Source = %q, want empty", cfg.Source)
	}
	if cfg.Runner != RunnerAuto {
		t.Errorf("Runner = %q, want %q", cfg.Runner, RunnerAuto)
	}
}

func TestLoad_LookupOrder(t *testing.T) {
	mockFS := system.NewMockFS()
	mockFS.AddFile("/repo/.devtriage.yaml", []byte("runner: nose\n"), 0644)
	mockFS.AddFile("/repo/.devtriage.toml", []byte(`runner = "jest"`), 0644)

	cfg, err := Load(mockFS, "/repo", "")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Source != "/repo/.devtriage.toml" {
		t.Errorf("Source = %q, want the TOML file", cfg.Source)
	}
	if cfg.Runner != "jest" {
		t.Errorf("Runner = %q, want %q", cfg.Runner, "jest")
	}
	// Unset fields fall back to defaults
	if cfg.OutDir != DefaultOutDir {
		t.Errorf("OutDir = %q, want %q", cfg.OutDir, DefaultOutDir)
	}
}

func TestLoad_Explicit(t *testing.T) {
	mockFS := system.NewMockFS()
	mockFS.AddFile("/etc/triage.yaml", []byte("out_dir: /var/tmp/triage\n"), 0644)

	cfg, err := Load(mockFS, "/repo", "/etc/triage.yaml")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.OutDir != "/var/tmp/triage" {
		t.Errorf("OutDir = %q, want %q", cfg.OutDir, "/var/tmp/triage")
	}

	_, err = Load(mockFS, "/repo", "/missing.toml")
	if err == nil {
		t.Fatal("Load of a missing explicit config should fail")
	}
	if code := errors.GetExitCode(err); code != errors.ExitConfigError {
		t.Errorf("exit code = %d, want %d", code, errors.ExitConfigError)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name  string
		data  string
		setup func(*system.MockFS)
	}{
		{name: "malformed", data: `runner = `},
		{name: "invalid value", data: `vcs = "hg"`},
		{name: "unreadable", data: `runner = "jest"`, setup: func(m *system.MockFS) { m.ReadFileErr = fs.ErrPermission }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockFS := system.NewMockFS()
			mockFS.AddFile("/repo/.devtriage.toml", []byte(tt.data), 0644)
			if tt.setup != nil {
				tt.setup(mockFS)
			}

			_, err := Load(mockFS, "/repo", "")
			if err == nil {
				t.Fatal("Load should fail")
			}
			if code := errors.GetExitCode(err); code != errors.ExitConfigError {
				t.Errorf("exit code = %d, want %d", code, errors.ExitConfigError)
			}
		})
	}
}

func TestConfig_Paths(t *testing.T) {
	p := Default().Paths("/repo")
	if p.CaptureBase != filepath.Join("/repo", ".devtriage") {
		t.Errorf("CaptureBase = %q", p.CaptureBase)
	}
	if p.HistoryFile != filepath.Join("/repo", ".devtriage", "history.jsonl") {
		t.Errorf("HistoryFile = %q", p.HistoryFile)
	}

	abs := (&Config{OutDir: "/tmp/triage"}).Paths("/repo")
	if abs.CaptureBase != "/tmp/triage" {
		t.Errorf("CaptureBase = %q, want %q", abs.CaptureBase, "/tmp/triage")
	}
}
