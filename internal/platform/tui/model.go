package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Murat2283plus/maliao/internal/core"
	"github.com/Murat2283plus/maliao/internal/engine"
)

// Engine is the part of the game engine the preview host drives.
type Engine interface {
	Latest() *core.Frame
	Status() engine.Status
	Do(a core.Action) error
	SetInput(src engine.Source)
}

// Model is the Bubble Tea model for the matrix preview.
type Model struct {
	eng        Engine
	keys       KeyMap
	latch      *engine.KeyLatch
	renderer   *lipgloss.Renderer
	help       help.Model
	table      table.Model
	frame      *core.Frame
	status     engine.Status
	message    string
	showStatus bool
	width      int
	quitting   bool
}

// NewModel creates a preview model for eng using the default renderer.
func NewModel(eng Engine, keys KeyMap) Model {
	return NewModelWithRenderer(eng, keys, lipgloss.DefaultRenderer())
}

// NewModelWithRenderer creates a preview model that styles output with r,
// which must match the terminal the model is drawn on.
func NewModelWithRenderer(eng Engine, keys KeyMap, r *lipgloss.Renderer) Model {
	h := help.New()
	h.ShowAll = false

	return Model{
		eng:      eng,
		keys:     keys,
		latch:    engine.NewKeyLatch(engine.DefaultHold, nil),
		renderer: r,
		help:     h,
		table:    newStatusTable(r),
		frame:    eng.Latest(),
		status:   eng.Status(),
	}
}

// Init starts the refresh loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.status.TargetFPS)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		m.frame = m.eng.Latest()
		m.status = m.eng.Status()
		if m.showStatus {
			m.table.SetRows(statusRows(m.status))
		}
		return m, tickCmd(m.status.TargetFPS)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Status):
		m.showStatus = !m.showStatus
		m.table.SetRows(statusRows(m.status))
		return m, nil
	}

	action := m.keys.Action(msg)
	switch {
	case action == core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case action.IsMovement():
		// The last session to move takes over the controls.
		m.eng.SetInput(m.latch)
		m.latch.Press(action)
	case action != core.ActionNone:
		m.message = ""
		if err := m.eng.Do(action); err != nil {
			m.message = err.Error()
		}
	}
	return m, nil
}

// View renders the preview, status and help.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	titleStyle := m.renderer.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	frameStyle := m.renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240"))
	dimStyle := m.renderer.NewStyle().
		Foreground(lipgloss.Color("241"))
	errStyle := m.renderer.NewStyle().
		Foreground(lipgloss.Color("9"))

	var b strings.Builder
	b.WriteString(titleStyle.Render("MALIAO"))
	b.WriteString("\n")

	preview := frameStyle.Render(RenderFrame(m.frame, m.renderer))
	if m.showStatus {
		panel := frameStyle.Render(m.table.View())
		preview = lipgloss.JoinHorizontal(lipgloss.Top, preview, "  ", panel)
	}
	b.WriteString(preview)
	b.WriteString("\n")
	b.WriteString(statusLine(m.status))
	b.WriteString("\n")
	if m.message != "" {
		b.WriteString(errStyle.Render(m.message))
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// Run starts the Bubble Tea program on the local terminal and blocks until
// the user quits.
func Run(eng Engine, keys KeyMap, opts ...tea.ProgramOption) error {
	model := NewModel(eng, keys)

	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	p := tea.NewProgram(model, opts...)

	_, err := p.Run()
	return err
}
