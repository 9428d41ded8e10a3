package cmd

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/firefly-engineering/devtriage/internal/app"
	"github.com/firefly-engineering/devtriage/internal/audit"
	"github.com/firefly-engineering/devtriage/internal/logging"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List previous runs",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of events to show (0 for all)")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	a := app.Default

	h := a.History()
	if h == nil {
		logInfo("History is disabled in %s", a.Config.Source)
		return nil
	}

	events, err := h.Recent(historyLimit)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		logInfo("No runs recorded yet. Start one with: devtriage run --cmd <command>")
		return nil
	}

	renderHistory(events)
	return nil
}

func renderHistory(events []audit.Event) {
	t := table.NewWriter()
	t.SetOutputMirror(logging.UserOut())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"TIME", "TYPE", "RUNNER", "EXIT", "COMMAND", "OUTPUT"})

	for _, e := range events {
		exit := "-"
		if e.ExitCode != nil {
			exit = strconv.Itoa(*e.ExitCode)
		}
		detail := e.Dir
		if detail == "" {
			detail = e.Details
		}
		t.AppendRow(table.Row{
			e.Timestamp.Local().Format("2006-01-02 15:04:05"),
			string(e.Type),
			dash(e.Runner),
			exit,
			dash(e.Command),
			dash(detail),
		})
	}

	t.Render()
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
