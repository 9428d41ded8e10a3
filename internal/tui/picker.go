// Package tui provides terminal user interface components for devtriage
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/firefly-engineering/devtriage/internal/runner"
)

// Action represents the action to take after picker selection
type Action int

const (
	ActionNone Action = iota
	ActionSelect
	ActionAuto
	ActionQuit
)

// PickerResult holds the result of the picker
type PickerResult struct {
	Action Action
	Kind   runner.Kind
}

// Choice converts the result into a runner choice. ok is false when the
// user quit.
func (r PickerResult) Choice() (choice runner.Choice, ok bool) {
	switch r.Action {
	case ActionSelect:
		return runner.Forced(r.Kind), true
	case ActionAuto:
		return runner.AutoDetect(), true
	}
	return runner.Choice{}, false
}

// runnerItem implements list.Item for runner display
type runnerItem struct {
	kind      runner.Kind
	detection *runner.Detection
}

func (i runnerItem) Title() string {
	return string(i.kind)
}

func (i runnerItem) Description() string {
	family := "JavaScript"
	if i.kind.Python() {
		family = "Python"
	}

	invocation := "unsupported"
	if cmd, ok := runner.BuildCommand(i.kind, nil, ""); ok {
		invocation = cmd.String()
	}

	desc := fmt.Sprintf("%s | %s", family, invocation)
	if i.detection != nil && i.detection.Kind == i.kind {
		desc += " | " + detectedLabel(*i.detection)
	}
	return desc
}

func (i runnerItem) FilterValue() string {
	return string(i.kind)
}

func detectedLabel(d runner.Detection) string {
	if d.Evidence == "" {
		return "detected (default)"
	}
	return "detected via " + d.Evidence
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginBottom(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)
)

// Model is the bubbletea model for the runner picker
type Model struct {
	list     list.Model
	result   PickerResult
	quitting bool
	width    int
	height   int
}

// NewPicker creates a runner picker over kinds. When detection is set the
// detected kind is preselected and annotated.
func NewPicker(kinds []runner.Kind, detection *runner.Detection) Model {
	items := make([]list.Item, len(kinds))
	selected := 0
	for i, k := range kinds {
		items[i] = runnerItem{kind: k, detection: detection}
		if detection != nil && detection.Kind == k {
			selected = i
		}
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = selectedStyle
	delegate.Styles.SelectedDesc = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	l := list.New(items, delegate, 80, 20)
	l.Title = "devtriage - Select Test Runner"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle
	l.Select(selected)

	return Model{list: l}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height-4)
		return m, nil

	case tea.KeyMsg:
		// Don't handle keys if filtering
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "enter":
			if item, ok := m.list.SelectedItem().(runnerItem); ok {
				m.result = PickerResult{Action: ActionSelect, Kind: item.kind}
				m.quitting = true
				return m, tea.Quit
			}

		case "a":
			m.result = PickerResult{Action: ActionAuto}
			m.quitting = true
			return m, tea.Quit

		case "q", "esc", "ctrl+c":
			m.result = PickerResult{Action: ActionQuit}
			m.quitting = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	help := helpStyle.Render("[enter] Select  [a] Auto-detect  [/] Filter  [q] Quit")

	return m.list.View() + "\n" + help
}

// Result returns the picker result
func (m Model) Result() PickerResult {
	return m.result
}

// RunPicker runs the interactive runner picker
func RunPicker(kinds []runner.Kind, detection *runner.Detection) (PickerResult, error) {
	if len(kinds) == 0 {
		return PickerResult{Action: ActionAuto}, nil
	}

	m := NewPicker(kinds, detection)
	p := tea.NewProgram(m, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return PickerResult{}, err
	}

	return finalModel.(Model).Result(), nil
}

// SimplePicker is a non-interactive listing of the runners
func SimplePicker(kinds []runner.Kind, detection *runner.Detection) string {
	var sb strings.Builder

	sb.WriteString("devtriage - Test Runners\n")
	sb.WriteString(strings.Repeat("─", 60) + "\n\n")

	for i, k := range kinds {
		marker := " "
		if detection != nil && detection.Kind == k {
			marker = "*"
		}
		item := runnerItem{kind: k, detection: detection}
		sb.WriteString(fmt.Sprintf("%d. %s %s\n", i+1, marker, k))
		sb.WriteString(fmt.Sprintf("   %s\n\n", item.Description()))
	}

	return sb.String()
}
