package session

import (
	"sync"
	"testing"

	"github.com/bnema/sensor-access-cli/internal/application"
	"github.com/bnema/sensor-access-cli/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLiveModelAppliesViewUpdates(t *testing.T) {
	updates := make(chan application.SessionView, 1)
	m := newLiveModel(application.SessionView{Phase: domain.PhaseReady}, updates, LiveOptions{})

	next, cmd := m.Update(viewMsg(application.SessionView{Phase: domain.PhaseVerifying, Busy: true}))
	require.NotNil(t, cmd)

	view := next.View()
	assert.Contains(t, view, "phase: Verifying access...")
	assert.Contains(t, view, "q quit")

	close(updates)
	assert.IsType(t, feedClosedMsg{}, cmd())
}

func TestLiveModelDispatchesActionKeys(t *testing.T) {
	var (
		mu   sync.Mutex
		keys []string
	)
	m := newLiveModel(application.SessionView{}, nil, LiveOptions{OnKey: func(key string) {
		mu.Lock()
		defer mu.Unlock()
		keys = append(keys, key)
	}})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("p")})
	require.NotNil(t, cmd)
	assert.Nil(t, cmd())

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	assert.Nil(t, cmd)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"p"}, keys)
}

func TestLiveModelQuitsOnQ(t *testing.T) {
	m := newLiveModel(application.SessionView{}, nil, LiveOptions{})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
