package health

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/firefly-engineering/devtriage/internal/audit"
	"github.com/firefly-engineering/devtriage/internal/logging"
	"github.com/firefly-engineering/devtriage/internal/runner"
	"github.com/firefly-engineering/devtriage/internal/system"
	"github.com/firefly-engineering/devtriage/internal/workspace"
)

// Status represents the outcome of a single probe
type Status string

const (
	StatusOK      Status = "ok"
	StatusFailing Status = "failing"
	StatusMissing Status = "missing"
	StatusNoRepo  Status = "no-repo"

	// ProbeTimeout bounds each --version invocation.
	ProbeTimeout = 5 * time.Second
)

// ToolCheck is the result of probing one executable.
type ToolCheck struct {
	Name    string
	Command string
	Status  Status
	Version string
}

// CheckResult contains the results of all checks
type CheckResult struct {
	VCS       ToolCheck
	Detection runner.Detection
	Runner    ToolCheck

	// LastRun is the time of the newest run or focus event, zero when
	// there is none or history is disabled.
	LastRun time.Time
}

// Summary returns the worst status across the probes.
func (r *CheckResult) Summary() Status {
	worst := StatusOK
	for _, s := range []Status{r.VCS.Status, r.Runner.Status} {
		if rank(s) > rank(worst) {
			worst = s
		}
	}
	return worst
}

func rank(s Status) int {
	switch s {
	case StatusOK:
		return 0
	case StatusNoRepo:
		return 1
	case StatusFailing:
		return 2
	default:
		return 3
	}
}

// Checker probes the tools used for the repository at Root.
type Checker struct {
	FS      system.FileSystem
	Exec    system.CommandExecutor
	Root    string
	Backend workspace.Backend

	// Runner overrides detection when set.
	Runner runner.Kind

	// History is optional.
	History *audit.Logger
}

// Check performs all health checks.
func (c *Checker) Check(ctx context.Context) *CheckResult {
	result := &CheckResult{}

	if c.Backend != nil {
		result.VCS = Probe(ctx, c.Exec, c.Root, c.Backend.Name(), "--version")
		if result.VCS.Status == StatusOK && !c.Backend.IsRepo(c.Root) {
			result.VCS.Status = StatusNoRepo
		}
	}

	result.Detection = runner.NewDetector(c.FS, c.Root).Explain()
	kind := result.Detection.Kind
	if c.Runner != "" {
		kind = c.Runner
	}
	if cmd, ok := runner.BuildCommand(kind, nil, ""); ok {
		result.Runner = Probe(ctx, c.Exec, c.Root, cmd.Program(), append(cmd.Arguments(), "--version")...)
	} else {
		result.Runner = ToolCheck{Name: string(kind), Status: StatusMissing}
	}

	if c.History != nil {
		result.LastRun = lastRun(c.History)
	}

	return result
}

// lastRun returns the time of the newest event that executed a command.
// Aborts and errors do not count.
func lastRun(h *audit.Logger) time.Time {
	events, err := h.Events()
	if err != nil {
		logging.Debug("history unreadable", "path", h.Path(), "error", err)
		return time.Time{}
	}
	for i := len(events) - 1; i >= 0; i-- {
		switch events[i].Type {
		case audit.EventRun, audit.EventFocus:
			return events[i].Timestamp
		}
	}
	return time.Time{}
}

// Probe runs name with args in dir and classifies the outcome. Version is
// the first non-empty output line.
func Probe(ctx context.Context, exec system.CommandExecutor, dir, name string, args ...string) ToolCheck {
	ctx, cancel := context.WithTimeout(ctx, ProbeTimeout)
	defer cancel()

	check := ToolCheck{
		Name:    name,
		Command: strings.TrimSpace(name + " " + strings.Join(args, " ")),
	}

	res, err := exec.Run(ctx, system.Command{Name: name, Args: args, Dir: dir})
	if err != nil {
		logging.Debug("probe failed to start", "command", check.Command, "error", err)
		check.Status = StatusMissing
		return check
	}

	check.Version = firstLine(string(res.Stdout))
	if check.Version == "" {
		check.Version = firstLine(string(res.Stderr))
	}
	if res.ExitCode != 0 {
		check.Status = StatusFailing
		return check
	}
	check.Status = StatusOK
	return check
}

func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}

// FormatAge renders how long ago t was, relative to now.
func FormatAge(t, now time.Time) string {
	if t.IsZero() {
		return "never"
	}
	d := now.Sub(t)
	if d < 0 {
		d = 0
	}
	return formatDuration(d) + " ago"
}

func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	} else if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	} else if d < 24*time.Hour {
		hours := int(d.Hours())
		mins := int(d.Minutes()) % 60
		return fmt.Sprintf("%dh %dm", hours, mins)
	}
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	return fmt.Sprintf("%dd %dh", days, hours)
}
