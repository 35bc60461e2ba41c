package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type stepDoneMsg struct {
	err error
}

// stepSpinnerModel shows a spinner while a single blocking step runs.
type stepSpinnerModel struct {
	spinner spinner.Model
	label   string
	step    tea.Cmd
	err     error
	done    bool
}

func newStepSpinnerModel(label string, step tea.Cmd) stepSpinnerModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return stepSpinnerModel{spinner: s, label: label, step: step}
}

func (m stepSpinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.step)
}

func (m stepSpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case stepDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m stepSpinnerModel) View() string {
	if m.done {
		return ""
	}

	return fmt.Sprintf("%s %s", m.spinner.View(), m.label)
}

// runWithSpinner runs step while a spinner with label is drawn on output.
func runWithSpinner(ctx context.Context, output io.Writer, label string, step func(context.Context) error) error {
	stepCmd := func() tea.Msg {
		return stepDoneMsg{err: step(ctx)}
	}

	p := tea.NewProgram(
		newStepSpinnerModel(label, stepCmd),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(stepSpinnerModel)
	if !ok {
		return fmt.Errorf("unexpected final spinner model type %T", finalModel)
	}

	return result.err
}
