package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/devtriage/internal/errors"
	"github.com/firefly-engineering/devtriage/internal/logging"
)

// Version is set at build time with -ldflags "-X .../cmd.Version=..."
var Version = "0.1.0"

var (
	verbose    bool
	jsonOutput bool
	rootDir    string
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "devtriage",
	Short: "Capture failing runs and focus test runs on what changed",
	Long: `devtriage helps triage failing commands and test suites.

  run     - run a command and store its stdout, stderr and metadata
  focus   - run only the tests affected by uncommitted changes
  detect  - show which test runner governs the repository
  history - list previous runs

Runs are stored under .devtriage/<UTC timestamp> in the repository root.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logging.Setup(verbose, jsonOutput, os.Stderr)
		return loadApp()
	},
}

// Execute runs the root command. Errors are reported to the user here,
// except silent ones that only carry a child's exit status.
func Execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if err != nil && !errors.IsSilent(err) {
		logError("%v", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output logs in JSON format")
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", "", "Repository root (default: current directory)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: .devtriage.toml or .devtriage.yaml in the root)")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
