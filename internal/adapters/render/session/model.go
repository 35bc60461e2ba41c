package session

import (
	"errors"
	"io"

	"github.com/bnema/sensor-access-cli/internal/application"
	"github.com/bnema/sensor-access-cli/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
)

var ErrUnexpectedRenderModel = errors.New("unexpected final bubbletea model type")

type renderReadyMsg struct{}

// model renders once and quits; it backs the non-interactive commands.
type model struct {
	render func(styles) string
	styles styles
	output string
}

func (m model) Init() tea.Cmd {
	return func() tea.Msg {
		return renderReadyMsg{}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(renderReadyMsg); ok {
		m.output = m.render(m.styles)
		return m, tea.Quit
	}
	return m, nil
}

func (m model) View() string {
	return m.output
}

func Render(view application.SessionView, opts RenderOptions) (string, error) {
	return run(func(s styles) string {
		return renderSession(view, opts, s)
	})
}

func RenderHistory(records []domain.PurchaseRecord, opts RenderOptions) (string, error) {
	return run(func(s styles) string {
		return renderHistory(records, opts, s)
	})
}

func run(render func(styles) string) (string, error) {
	p := tea.NewProgram(
		model{render: render, styles: newStyles()},
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	rendered, ok := finalModel.(model)
	if !ok {
		return "", ErrUnexpectedRenderModel
	}

	return rendered.View(), nil
}
