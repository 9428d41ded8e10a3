package config

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/firefly-engineering/devtriage/internal/errors"
	"github.com/firefly-engineering/devtriage/internal/logging"
	"github.com/firefly-engineering/devtriage/internal/runner"
	"github.com/firefly-engineering/devtriage/internal/system"
	"github.com/firefly-engineering/devtriage/internal/workspace"
)

const (
	DefaultOutDir = ".devtriage"
	RunnerAuto    = "auto"
	HistoryFile   = "history.jsonl"
)

// FileNames are the config files looked up at the repository root, in order.
var FileNames = []string{".devtriage.toml", ".devtriage.yaml", ".devtriage.yml"}

// Config holds the per-repository settings.
type Config struct {
	Runner  string `toml:"runner" yaml:"runner"`
	OutDir  string `toml:"out_dir" yaml:"out_dir"`
	VCS     string `toml:"vcs" yaml:"vcs"`
	History *bool  `toml:"history" yaml:"history"`

	// Source is the file the config was loaded from, empty for defaults.
	Source string `toml:"-" yaml:"-"`
}

// Default returns the built-in settings.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

func (c *Config) applyDefaults() {
	if c.Runner == "" {
		c.Runner = RunnerAuto
	}
	if c.OutDir == "" {
		c.OutDir = DefaultOutDir
	}
	if c.VCS == "" {
		c.VCS = string(workspace.ModeAuto)
	}
	if c.History == nil {
		enabled := true
		c.History = &enabled
	}
}

// Validate checks that the Config is valid.
func (c *Config) Validate() error {
	if c.Runner != "" && c.Runner != RunnerAuto && !runner.Kind(c.Runner).Valid() {
		return fmt.Errorf("invalid runner: %s (must be auto, %s)", c.Runner, kindList())
	}
	if !workspace.Mode(c.VCS).Valid() {
		return fmt.Errorf("invalid vcs: %s (must be auto, git, or jj)", c.VCS)
	}
	if strings.TrimSpace(c.OutDir) == "" && c.OutDir != "" {
		return fmt.Errorf("out_dir cannot be blank")
	}
	return nil
}

// RunnerChoice converts the runner setting into a runner.Choice.
func (c *Config) RunnerChoice() runner.Choice {
	if c.Runner == "" || c.Runner == RunnerAuto {
		return runner.AutoDetect()
	}
	return runner.Forced(runner.Kind(c.Runner))
}

// HistoryEnabled reports whether run history is recorded.
func (c *Config) HistoryEnabled() bool {
	return c.History == nil || *c.History
}

// Paths holds the resolved locations derived from a Config.
type Paths struct {
	Root        string
	CaptureBase string
	HistoryFile string
}

// Paths resolves the capture base and history file against root.
func (c *Config) Paths(root string) *Paths {
	base := c.OutDir
	if base == "" {
		base = DefaultOutDir
	}
	if !filepath.IsAbs(base) {
		base = filepath.Join(root, base)
	}
	return &Paths{
		Root:        root,
		CaptureBase: base,
		HistoryFile: filepath.Join(base, HistoryFile),
	}
}

// Load reads the config for the repository at root. When explicit is
// non-empty that file must exist; otherwise the first of FileNames found
// under root is used, or the defaults when there is none.
func Load(fsys system.FileSystem, root, explicit string) (*Config, error) {
	path := explicit
	if path == "" {
		for _, name := range FileNames {
			candidate := filepath.Join(root, name)
			if fsys.Exists(candidate) {
				path = candidate
				break
			}
		}
	}
	if path == "" {
		logging.Debug("no config file found, using defaults", "root", root)
		return Default(), nil
	}

	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, errors.ConfigError(fmt.Sprintf("failed to read config %s", path), err)
	}

	cfg, err := Parse(path, data)
	if err != nil {
		return nil, errors.ConfigError(fmt.Sprintf("failed to parse config %s", path), err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.ConfigError(fmt.Sprintf("invalid config %s", path), err)
	}

	cfg.Source = path
	cfg.applyDefaults()
	logging.Debug("loaded config", "path", path, "runner", cfg.Runner, "vcs", cfg.VCS, "out_dir", cfg.OutDir)
	return cfg, nil
}

// Parse decodes config data. The format is chosen by the file extension:
// .yaml and .yml are YAML, anything else is TOML. Unknown keys are errors.
func Parse(path string, data []byte) (*Config, error) {
	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	default:
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return nil, err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("unknown key %q", undecoded[0].String())
		}
	}
	return &cfg, nil
}

func kindList() string {
	names := make([]string, 0, len(runner.Kinds()))
	for _, k := range runner.Kinds() {
		names = append(names, string(k))
	}
	return strings.Join(names, ", ")
}
