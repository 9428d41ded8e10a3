// Package tui provides terminal user interface components for devtriage.
//
// This package uses the Bubble Tea framework for the interactive test
// runner picker behind `devtriage focus --pick`.
//
// # Runner Picker
//
// The picker lists the supported runners with the detected one
// preselected:
//
//	result, err := tui.RunPicker(runner.Kinds(), &detection)
//	choice, ok := result.Choice()
//	if !ok {
//	    // User quit
//	}
//
// # Picker Features
//
//   - Keyboard navigation (j/k or arrows) and filtering with /
//   - Enter forces the highlighted runner, a falls back to auto-detection
//   - Each entry shows its language family, invocation and detection evidence
//
// # Dependencies
//
// Uses the Charm libraries:
//   - github.com/charmbracelet/bubbletea - TUI framework
//   - github.com/charmbracelet/bubbles - UI components
//   - github.com/charmbracelet/lipgloss - Styling
package tui
