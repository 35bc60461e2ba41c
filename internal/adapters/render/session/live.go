package session

import (
	"context"
	"fmt"
	"io"

	"github.com/bnema/sensor-access-cli/internal/application"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const liveHelp = "p purchase · r retry verification · o reopen stream · d disconnect · q quit"

// LiveOptions configures the interactive session screen.
type LiveOptions struct {
	Render RenderOptions
	// OnKey receives action keys. It runs off the UI loop and may block.
	OnKey func(key string)
}

type viewMsg application.SessionView

type feedClosedMsg struct{}

type liveModel struct {
	view    application.SessionView
	updates <-chan application.SessionView
	spinner spinner.Model
	opts    LiveOptions
	styles  styles
}

func newLiveModel(initial application.SessionView, updates <-chan application.SessionView, opts LiveOptions) liveModel {
	s := newStyles()
	return liveModel{
		view:    initial,
		updates: updates,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(s.spinner)),
		opts:    opts,
		styles:  s,
	}
}

func (m liveModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, waitForView(m.updates))
}

func (m liveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case viewMsg:
		m.view = application.SessionView(msg)
		return m, waitForView(m.updates)
	case feedClosedMsg:
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		key := msg.String()
		switch key {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "p", "r", "o", "d":
			if m.opts.OnKey == nil {
				return m, nil
			}
			onKey := m.opts.OnKey
			return m, func() tea.Msg {
				onKey(key)
				return nil
			}
		}
	}

	return m, nil
}

func (m liveModel) View() string {
	body := renderSession(m.view, m.opts.Render, m.styles)
	if m.view.Busy {
		body = lipgloss.JoinVertical(lipgloss.Left, body, fmt.Sprintf("%s %s", m.spinner.View(), PhaseLabel(m.view.Phase)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, m.styles.help.Render(liveHelp))
}

func waitForView(updates <-chan application.SessionView) tea.Cmd {
	return func() tea.Msg {
		view, ok := <-updates
		if !ok {
			return feedClosedMsg{}
		}
		return viewMsg(view)
	}
}

// RunLive redraws the session on every view received from updates until the
// user quits, ctx ends or updates is closed.
func RunLive(ctx context.Context, initial application.SessionView, updates <-chan application.SessionView, in io.Reader, out io.Writer, opts LiveOptions) error {
	p := tea.NewProgram(
		newLiveModel(initial, updates, opts),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithContext(ctx),
	)

	_, err := p.Run()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}
