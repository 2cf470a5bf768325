package tui

import (
	"errors"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Murat2283plus/maliao/internal/core"
	"github.com/Murat2283plus/maliao/internal/engine"
)

// fakeEngine records actions and input hand-overs.
type fakeEngine struct {
	frame   *core.Frame
	status  engine.Status
	actions []core.Action
	input   engine.Source
	doErr   error
}

func (f *fakeEngine) Latest() *core.Frame        { return f.frame }
func (f *fakeEngine) Status() engine.Status      { return f.status }
func (f *fakeEngine) SetInput(src engine.Source) { f.input = src }

func (f *fakeEngine) Do(a core.Action) error {
	f.actions = append(f.actions, a)
	return f.doErr
}

func newFakeEngine() *fakeEngine {
	f := core.NewFrame(6, 5)
	f.Fill(core.Blue)
	return &fakeEngine{frame: f, status: engine.Status{TargetFPS: 30, Level: 1, Lives: 3}}
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestKeyMapAction(t *testing.T) {
	keys := DefaultKeyMap()
	tests := []struct {
		key  string
		want core.Action
	}{
		{"left", core.ActionLeft},
		{"a", core.ActionLeft},
		{"d", core.ActionRight},
		{"up", core.ActionJump},
		{" ", core.ActionJump},
		{"x", core.ActionAttack},
		{"p", core.ActionPause},
		{"r", core.ActionRestart},
		{"t", core.ActionPattern},
		{"+", core.ActionFaster},
		{"-", core.ActionSlower},
		{"c", core.ActionConnect},
		{"q", core.ActionQuit},
		{"ctrl+c", core.ActionQuit},
		{"s", core.ActionNone},
		{"z", core.ActionNone},
	}
	for _, tt := range tests {
		if got := keys.Action(keyMsg(tt.key)); got != tt.want {
			t.Errorf("Action(%q) = %v, expected %v", tt.key, got, tt.want)
		}
	}
}

func TestRenderFrame(t *testing.T) {
	r := lipgloss.NewRenderer(io.Discard)
	f := core.NewFrame(4, 5)

	out := RenderFrame(f, r)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("RenderFrame() has %d lines, expected 3", len(lines))
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != 4 {
			t.Errorf("line %d width = %d, expected 4", i, w)
		}
		if strings.Count(line, halfBlock) != 4 {
			t.Errorf("line %d = %q, expected 4 half blocks", i, line)
		}
	}

	if got := RenderFrame(nil, r); got != "" {
		t.Errorf("RenderFrame(nil) = %q, expected empty", got)
	}
}

func TestCellAt(t *testing.T) {
	f := core.NewFrame(2, 3)
	f.Set(0, 0, core.Red)
	f.Set(0, 1, core.Green)
	f.Set(1, 2, core.Blue)

	if got, want := cellAt(f, 0, 0), (cell{core.Red, core.Green}); got != want {
		t.Errorf("cellAt(0,0) = %v, expected %v", got, want)
	}
	if got, want := cellAt(f, 1, 2), (cell{core.Blue, core.Black}); got != want {
		t.Errorf("cellAt(1,2) = %v, expected %v", got, want)
	}
}

func TestMovementTakesControl(t *testing.T) {
	eng := newFakeEngine()
	m := NewModelWithRenderer(eng, DefaultKeyMap(), lipgloss.NewRenderer(io.Discard))

	next, _ := m.Update(keyMsg("d"))
	m = next.(Model)
	if eng.input == nil {
		t.Fatal("movement did not install the key latch")
	}
	if in := eng.input.Poll(); !in.Right {
		t.Errorf("Poll() = %+v, expected right held", in)
	}
	if len(eng.actions) != 0 {
		t.Errorf("movement sent actions %v to the engine", eng.actions)
	}
}

func TestControlsGoToEngine(t *testing.T) {
	eng := newFakeEngine()
	m := NewModelWithRenderer(eng, DefaultKeyMap(), lipgloss.NewRenderer(io.Discard))

	for _, k := range []string{"p", "r", "t", "+", "-", "c"} {
		next, _ := m.Update(keyMsg(k))
		m = next.(Model)
	}
	expected := []core.Action{
		core.ActionPause, core.ActionRestart, core.ActionPattern,
		core.ActionFaster, core.ActionSlower, core.ActionConnect,
	}
	if len(eng.actions) != len(expected) {
		t.Fatalf("actions = %v, expected %v", eng.actions, expected)
	}
	for i := range expected {
		if eng.actions[i] != expected[i] {
			t.Errorf("action %d = %v, expected %v", i, eng.actions[i], expected[i])
		}
	}

	eng.doErr = errors.New("no such port")
	next, _ := m.Update(keyMsg("c"))
	m = next.(Model)
	if !strings.Contains(m.View(), "no such port") {
		t.Error("View() does not show the engine error")
	}
}

func TestQuit(t *testing.T) {
	m := NewModelWithRenderer(newFakeEngine(), DefaultKeyMap(), lipgloss.NewRenderer(io.Discard))
	next, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("quit returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit command is not tea.Quit")
	}
	if v := next.(Model).View(); v != "" {
		t.Errorf("View() after quit = %q, expected empty", v)
	}
}

func TestTickRefreshes(t *testing.T) {
	eng := newFakeEngine()
	m := NewModelWithRenderer(eng, DefaultKeyMap(), lipgloss.NewRenderer(io.Discard))

	eng.status.Score = 1234
	eng.status.Paused = true
	next, cmd := m.Update(TickMsg{})
	m = next.(Model)
	if cmd == nil {
		t.Error("tick did not schedule the next one")
	}
	view := m.View()
	if !strings.Contains(view, "score 1234") || !strings.Contains(view, "PAUSED") {
		t.Errorf("View() = %q, expected the refreshed status line", view)
	}
}

func TestStatusPanel(t *testing.T) {
	eng := newFakeEngine()
	eng.status.Link.Port = "mock0"
	m := NewModelWithRenderer(eng, DefaultKeyMap(), lipgloss.NewRenderer(io.Discard))

	if strings.Contains(m.View(), "Dropped") {
		t.Fatal("status panel shown before toggling")
	}
	next, _ := m.Update(keyMsg("s"))
	m = next.(Model)
	if view := m.View(); !strings.Contains(view, "Dropped") || !strings.Contains(view, "mock0") {
		t.Errorf("View() = %q, expected the status panel", view)
	}
}

func TestStatusLine(t *testing.T) {
	st := engine.Status{Level: 2, Score: 300, Lives: 1, TargetFPS: 30, Mode: engine.ModeGameOver}
	st.Link.Connected = true
	st.Link.Port = "/dev/ttyUSB0"

	line := statusLine(st)
	for _, want := range []string{"L2", "score 300", "lives 1", "link /dev/ttyUSB0", "GAME OVER"} {
		if !strings.Contains(line, want) {
			t.Errorf("statusLine() = %q, expected it to contain %q", line, want)
		}
	}
}
