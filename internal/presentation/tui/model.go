package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/superdense/pkg/domain"
	"github.com/aretw0/superdense/pkg/runner"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	eventBuffer = 64
	logLimit    = 6
)

// EventMsg carries a runner transition into the bubbletea loop.
type EventMsg struct {
	Event *domain.Event
}

// eventsClosedMsg signals that the runner subscription ended.
type eventsClosedMsg struct{}

// Model is the interactive simulator screen. All protocol state lives in the
// runner; the model only forwards key presses and re-renders on transitions.
type Model struct {
	ctx    context.Context
	runner *runner.Runner
	events <-chan *domain.Event
	cancel func()

	keys     KeyMap
	markdown func(string) (string, error)

	showTutorial bool
	log          []string
	err          error
	width        int
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithMarkdownRenderer sets the renderer used for the tutorial panel.
func WithMarkdownRenderer(render func(string) (string, error)) ModelOption {
	return func(m *Model) {
		if render != nil {
			m.markdown = render
		}
	}
}

// WithKeyMap overrides the default bindings.
func WithKeyMap(keys KeyMap) ModelOption {
	return func(m *Model) {
		m.keys = keys
	}
}

// NewModel subscribes to r and returns the screen model.
// Close must be called once the program exits.
func NewModel(ctx context.Context, r *runner.Runner, opts ...ModelOption) Model {
	events, cancel := r.Events(eventBuffer)
	m := Model{
		ctx:      ctx,
		runner:   r,
		events:   events,
		cancel:   cancel,
		keys:     DefaultKeyMap(),
		markdown: PlainRenderer,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Close releases the runner subscription.
func (m Model) Close() {
	if m.cancel != nil {
		m.cancel()
	}
}

// WaitForEventCmd blocks until the runner publishes the next transition.
func WaitForEventCmd(events <-chan *domain.Event) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-events
		if !ok {
			return eventsClosedMsg{}
		}
		return EventMsg{Event: evt}
	}
}

// Init starts listening for runner events.
func (m Model) Init() tea.Cmd {
	return WaitForEventCmd(m.events)
}

// Update routes messages to their handlers.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case EventMsg:
		return m.handleEvent(msg)
	case eventsClosedMsg:
		return m, nil
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}
	return m, nil
}

func (m Model) handleEvent(msg EventMsg) (tea.Model, tea.Cmd) {
	if line := runner.FormatEvent(msg.Event); line != "" {
		m.log = append(m.log, line)
		if len(m.log) > logLimit {
			m.log = m.log[len(m.log)-logLimit:]
		}
	}
	return m, WaitForEventCmd(m.events)
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.err = nil
	input := m.runner.Snapshot().Input

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Tutorial):
		m.showTutorial = !m.showTutorial
	case key.Matches(msg, m.keys.FirstBit):
		m.err = m.runner.SelectBit(m.ctx, domain.SlotFirst, input.Bits.First.Next())
	case key.Matches(msg, m.keys.SecondBit):
		m.err = m.runner.SelectBit(m.ctx, domain.SlotSecond, input.Bits.Second.Next())
	case key.Matches(msg, m.keys.GateCutting):
		m.err = m.runner.SetGateCutting(m.ctx, !input.GateCutting)
	case key.Matches(msg, m.keys.Start):
		// The validation message is part of the view, so only unexpected errors are kept.
		if err := m.runner.Start(m.ctx); err != nil && !errors.Is(err, domain.ErrBitsRequired) {
			m.err = err
		}
	}

	// Inputs are locked while a run is active; the disabled controls already say so.
	if errors.Is(m.err, domain.ErrRunInProgress) {
		m.err = nil
	}
	return m, nil
}

// View renders the current runner state.
func (m Model) View() string {
	v := m.runner.View()
	input := m.runner.Snapshot().Input

	var b strings.Builder
	b.WriteString(TitleStyle.Render("Superdense Coding Simulator"))
	b.WriteString("\n")

	b.WriteString(SectionStyle.Render("Sender"))
	b.WriteString("\n")
	b.WriteString(row("First bit", bitLabel(input.Bits.First)))
	b.WriteString(row("Second bit", bitLabel(input.Bits.Second)))
	b.WriteString(row("Selection", v.Selection))
	b.WriteString(row("Gate cutting", onOff(v.GateCutting)))
	b.WriteString(row("Qubit states", v.QubitStates))

	b.WriteString(SectionStyle.Render("Circuit"))
	b.WriteString("\n")
	for _, w := range v.Circuit {
		b.WriteString(renderWire(w))
		b.WriteString("\n")
	}

	b.WriteString(SectionStyle.Render("Protocol"))
	b.WriteString("\n")
	b.WriteString(renderPhases(v.Phases))
	b.WriteString("\n")

	b.WriteString(SectionStyle.Render("Results"))
	b.WriteString("\n")
	b.WriteString(row("Original bits", v.OriginalBits))
	received := v.ReceivedBits
	if v.Error == "" && received != domain.NoValue {
		received = SuccessStyle.Render(received)
	}
	b.WriteString(row("Received bits", received))
	if v.Error != "" {
		b.WriteString(ErrorStyle.Render(v.Error))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(ErrorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	}

	button := ButtonStyle
	if v.Active {
		button = DisabledButtonStyle
	}
	b.WriteString(button.Render(v.StartLabel))
	b.WriteString("\n")

	if len(m.log) > 0 {
		b.WriteString(SectionStyle.Render("Log"))
		b.WriteString("\n")
		for _, line := range m.log {
			b.WriteString(LogStyle.Render(line))
			b.WriteString("\n")
		}
	}

	if m.showTutorial {
		b.WriteString(SectionStyle.Render(domain.TutorialTitle))
		b.WriteString("\n")
		b.WriteString(m.renderMarkdown(domain.TutorialMarkdown() + "\n" + domain.EncodingTableMarkdown()))
	}

	b.WriteString(HelpStyle.Render(m.helpLine()))
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderMarkdown(md string) string {
	out, err := m.markdown(md)
	if err != nil {
		return md
	}
	return out
}

func (m Model) helpLine() string {
	parts := make([]string, 0, 6)
	for _, k := range m.keys.ShortHelp() {
		h := k.Help()
		parts = append(parts, fmt.Sprintf("%s %s", h.Key, h.Desc))
	}
	return strings.Join(parts, " • ")
}

func row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, LabelStyle.Render(label), ValueStyle.Render(value)) + "\n"
}

func renderWire(w domain.Wire) string {
	parts := make([]string, 0, len(w.Gates))
	for _, g := range w.Gates {
		if g.Cut {
			parts = append(parts, CutGateStyle.Render(g.Label))
			continue
		}
		parts = append(parts, GateStyle.Render(g.Label))
	}
	return LabelStyle.Render(w.Name) + "─ " + strings.Join(parts, " ─ ") + " ─"
}

func renderPhases(phases []domain.PhaseView) string {
	cards := make([]string, 0, len(phases))
	for _, p := range phases {
		style := CardStyle
		switch p.Status {
		case domain.StatusInProgress:
			style = ActiveCardStyle
		case domain.StatusDone:
			style = DoneCardStyle
		}
		body := fmt.Sprintf("%d. %s\n%s", int(p.Phase)+1, p.Title, StyleForStatus(p.Status).Render(string(p.Status)))
		cards = append(cards, style.Render(body))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func bitLabel(b domain.Bit) string {
	if !b.IsSet() {
		return "-"
	}
	return b.String()
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
