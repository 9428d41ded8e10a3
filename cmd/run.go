package cmd

import (
	"github.com/spf13/cobra"

	"github.com/firefly-engineering/devtriage/internal/app"
	"github.com/firefly-engineering/devtriage/internal/audit"
	"github.com/firefly-engineering/devtriage/internal/capture"
	"github.com/firefly-engineering/devtriage/internal/errors"
	"github.com/firefly-engineering/devtriage/internal/logging"
)

var (
	runCommand string
	runOut     string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a command and store stdout/stderr",
	Long: `Runs a command in the repository root and stores its output.

The output directory receives devtriage_meta.json before the command
starts, then stdout.txt, stderr.txt and meta.json once it finishes.
Commands using pipes, redirection or other shell syntax run through sh.
devtriage exits with the command's exit status.`,
	Example: `  devtriage run --cmd "pytest -x"
  devtriage run --cmd "make test 2>&1 | tee build.log" --out /tmp/triage`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&runCommand, "cmd", "", "Command to run (string)")
	runCmd.Flags().StringVar(&runOut, "out", "", "Output directory (default: <out_dir>/<UTC timestamp>)")
	_ = runCmd.MarkFlagRequired("cmd")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	a := app.Default

	command, err := capture.ParseCommand(runCommand)
	if err != nil {
		return err
	}

	outDir, err := a.OutDir(runOut)
	if err != nil {
		return err
	}

	outcome, err := a.CaptureRunner(logging.UserOut(), logging.UserErr()).Run(cmd.Context(), command, outDir)
	if err != nil {
		a.Record(audit.Event{Type: audit.EventError, Command: command.String(), Details: err.Error()})
		return err
	}

	a.Record(audit.Event{
		Type:     audit.EventRun,
		RunID:    outcome.RunID,
		Command:  command.String(),
		ExitCode: audit.IntPtr(outcome.ExitCode),
		Dir:      outcome.Dir,
	})

	if outcome.ExitCode != 0 {
		return errors.CommandExit(outcome.ExitCode)
	}
	return nil
}
