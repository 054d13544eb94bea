package tui_test

import (
	"context"
	"testing"

	"github.com/aretw0/superdense"
	"github.com/aretw0/superdense/internal/presentation/tui"
	"github.com/aretw0/superdense/pkg/domain"
	"github.com/aretw0/superdense/pkg/outcome"
	"github.com/aretw0/superdense/pkg/runner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newModel(t *testing.T, src outcome.FixedSource) (tui.Model, *runner.Runner) {
	t.Helper()
	r := runner.New(superdense.New(superdense.WithRandomSource(src)), runner.WithManualTicks())
	m := tui.NewModel(context.Background(), r)
	t.Cleanup(m.Close)
	return m, r
}

func press(t *testing.T, m tui.Model, keys ...string) tui.Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		if k == "enter" {
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		} else {
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(tui.Model)
	}
	return m
}

func TestModel_BitKeysCycle(t *testing.T) {
	m, r := newModel(t, outcome.FixedSource(0))

	m = press(t, m, "1")
	assert.Equal(t, "0-", r.Snapshot().Input.Bits.String())
	m = press(t, m, "1", "2")
	assert.Equal(t, "10", r.Snapshot().Input.Bits.String())
	m = press(t, m, "1")
	assert.Equal(t, "-0", r.Snapshot().Input.Bits.String())
	assert.Contains(t, m.View(), "Selection")
}

func TestModel_GateCuttingToggle(t *testing.T) {
	m, r := newModel(t, outcome.FixedSource(0))

	m = press(t, m, "g")
	assert.True(t, r.Snapshot().Input.GateCutting)
	assert.Regexp(t, `Gate cutting\s+on`, m.View())
	press(t, m, "g")
	assert.False(t, r.Snapshot().Input.GateCutting)
}

func TestModel_StartWithoutBitsShowsValidation(t *testing.T) {
	m, r := newModel(t, outcome.FixedSource(0))

	m = press(t, m, "2", "enter")
	assert.False(t, r.Active())
	view := m.View()
	assert.Contains(t, view, domain.MessageBitsRequired)
	assert.Contains(t, view, domain.LabelStart)
}

func TestModel_RunRendersPhasesAndResult(t *testing.T) {
	m, r := newModel(t, outcome.FixedSource(0))
	ctx := context.Background()

	m = press(t, m, "1", "1", "2", "s")
	require.True(t, r.Active())

	view := m.View()
	assert.Contains(t, view, domain.LabelRunning)
	assert.Contains(t, view, string(domain.StatusInProgress))
	assert.Contains(t, view, "Entanglement")

	// Keys are ignored while running.
	m = press(t, m, "g", "1")
	assert.Equal(t, "10", r.Snapshot().Input.Bits.String())
	assert.False(t, r.Snapshot().Input.GateCutting)

	_, err := r.Drain(ctx)
	require.NoError(t, err)

	view = m.View()
	assert.Contains(t, view, domain.LabelStart)
	assert.Contains(t, view, string(domain.StatusDone))
	assert.NotContains(t, view, string(domain.StatusWaiting))
}

func TestModel_FaultIsRendered(t *testing.T) {
	m, r := newModel(t, outcome.FixedSource(0.9))

	m = press(t, m, "1", "2", "2", "g", "enter")
	_, err := r.Drain(context.Background())
	require.NoError(t, err)

	assert.Contains(t, m.View(), domain.MessageTransmissionFault)
}

func TestModel_EventsFeedLog(t *testing.T) {
	m, _ := newModel(t, outcome.FixedSource(0))

	cmd := m.Init()
	require.NotNil(t, cmd)
	m = press(t, m, "g")

	msg := cmd()
	evt, ok := msg.(tui.EventMsg)
	require.True(t, ok)
	assert.Equal(t, domain.EventInputChanged, evt.Event.Type)

	next, follow := m.Update(msg)
	assert.NotNil(t, follow)
	assert.Contains(t, next.View(), "Gate cutting: on")
}

func TestModel_TutorialToggle(t *testing.T) {
	m, _ := newModel(t, outcome.FixedSource(0))

	assert.NotContains(t, m.View(), domain.TutorialTitle)
	m = press(t, m, "t")
	view := m.View()
	assert.Contains(t, view, domain.TutorialTitle)
	assert.Contains(t, view, "Bell Basis")
	assert.Contains(t, view, "| 11 |")
}

func TestModel_Quit(t *testing.T) {
	m, _ := newModel(t, outcome.FixedSource(0))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
