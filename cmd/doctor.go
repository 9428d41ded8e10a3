package cmd

import (
	"github.com/spf13/cobra"

	"github.com/firefly-engineering/devtriage/internal/app"
	"github.com/firefly-engineering/devtriage/internal/errors"
	"github.com/firefly-engineering/devtriage/internal/health"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that the VCS and test runner are usable",
	Long: `Probes the version-control binary and the test runner focus would use
with --version, and reports when the last run was recorded.

Exits non-zero when a tool is missing or fails its probe.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	a := app.Default

	checker, err := a.Health()
	if err != nil {
		return err
	}
	result := checker.Check(cmd.Context())

	reportTool("VCS", result.VCS)
	reportTool("Runner", result.Runner)
	if checker.History != nil {
		printf("Last run: %s\n", health.FormatAge(result.LastRun, a.Now()))
	}

	switch result.Summary() {
	case health.StatusOK:
		logSuccess("All checks passed")
		return nil
	case health.StatusNoRepo:
		logWarning("No repository found at %s; focus will run the full suite only with -k", a.Root)
		return nil
	default:
		return errors.New(errors.ExitCommandFailed, "some checks failed")
	}
}

func reportTool(label string, c health.ToolCheck) {
	line := c.Name
	if c.Version != "" && c.Status != health.StatusFailing {
		line += " (" + c.Version + ")"
	}
	if c.Status == health.StatusNoRepo {
		line += ", no repository"
	}
	printf("%-9s %s\n", label+":", line)

	switch c.Status {
	case health.StatusFailing:
		logWarning("%s exited non-zero: %s", c.Command, c.Version)
	case health.StatusMissing:
		logWarning("%s not found on PATH", c.Name)
	}
}
