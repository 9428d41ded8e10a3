package cmd

import (
	"github.com/spf13/cobra"

	"github.com/firefly-engineering/devtriage/internal/app"
	"github.com/firefly-engineering/devtriage/internal/runner"
	"github.com/firefly-engineering/devtriage/internal/tui"
)

var detectList bool

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Show the detected test runner and why",
	Args:  cobra.NoArgs,
	RunE:  runDetect,
}

func init() {
	detectCmd.Flags().BoolVar(&detectList, "list", false, "List every supported runner, marking the detected one")
	rootCmd.AddCommand(detectCmd)
}

func runDetect(cmd *cobra.Command, args []string) error {
	a := app.Default

	det := runner.NewDetector(a.FS, a.Root).Explain()
	if detectList {
		printf("%s", tui.SimplePicker(runner.Kinds(), &det))
		return nil
	}

	printf("Runner:   %s\n", det.Kind)
	switch det.Rule {
	case runner.RuleDefault:
		printf("Reason:   no manifest or marker matched, using the default\n")
	default:
		printf("Reason:   %s %s\n", det.Rule, det.Evidence)
	}

	if choice := a.Config.RunnerChoice(); choice.IsForced() && choice.Kind() != det.Kind {
		logInfo("%s forces runner %s for focus", a.Config.Source, choice.Kind())
	}

	b, err := a.VCS()
	if err != nil {
		return err
	}
	vcs := b.Name()
	if !b.IsRepo(a.Root) {
		vcs += " (no repository found at root)"
	}
	printf("VCS:      %s\n", vcs)
	return nil
}
