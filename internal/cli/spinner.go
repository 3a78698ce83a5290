package cli

import (
	"fmt"
	"os"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"golang.org/x/term"
)

// taskDoneMsg carries the result of the background task.
type taskDoneMsg struct {
	result tea.Msg
}

// waitModel is the bubbletea model shown while a blocking call is in flight.
type waitModel struct {
	label    string
	task     func() tea.Msg
	spinner  spinner.Model
	theme    Theme
	result   tea.Msg
	quitting bool
}

func newWaitModel(label string, task func() tea.Msg) waitModel {
	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	return waitModel{
		label:   label,
		task:    task,
		spinner: sp,
		theme:   defaultTheme,
	}
}

// Init starts the spinner animation and kicks off the task in a command
// goroutine so Update never blocks.
func (m waitModel) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		func() tea.Msg {
			return taskDoneMsg{result: m.task()}
		},
	)
}

// Update handles messages and returns the updated model.
func (m waitModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}

	case taskDoneMsg:
		m.result = msg.result
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the spinner line.
func (m waitModel) View() tea.View {
	if m.result != nil || m.quitting {
		return tea.NewView("")
	}
	return tea.NewView(fmt.Sprintf("%s %s", m.spinner.View(), m.theme.hintStyle().Render(m.label)))
}

// runWithSpinner runs task behind an animated spinner when stdout is a
// terminal, or directly otherwise. Returns nil when the user aborted.
func runWithSpinner(label string, task func() tea.Msg) (tea.Msg, error) {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return task(), nil
	}

	p := tea.NewProgram(newWaitModel(label, task))
	finalModel, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("spinner UI error: %w", err)
	}

	if m, ok := finalModel.(waitModel); ok {
		return m.result, nil
	}
	return nil, nil
}
