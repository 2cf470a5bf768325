package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/Murat2283plus/maliao/internal/engine"
)

// Status panel layout
const (
	fieldWidth = 10
	valueWidth = 22
)

// newStatusTable creates the status panel table.
func newStatusTable(r *lipgloss.Renderer) table.Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Field", Width: fieldWidth},
			{Title: "Value", Width: valueWidth},
		}),
		table.WithFocused(false),
		table.WithHeight(len(statusRows(engine.Status{}))+1),
	)

	s := table.DefaultStyles()
	s.Header = r.NewStyle().
		Padding(0, 1).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Cell = r.NewStyle().Padding(0, 1)
	s.Selected = r.NewStyle()
	t.SetStyles(s)
	return t
}

// statusRows lays a status snapshot out as table rows.
func statusRows(st engine.Status) []table.Row {
	link := st.Link
	state := "disconnected"
	if link.Connected {
		state = "connected"
	}
	mode := st.Mode.String()
	if st.Paused {
		mode = "paused"
	}
	if st.Pattern != "" {
		mode += " " + st.Pattern
	}

	rows := []table.Row{
		{"Mode", mode},
		{"FPS", fmt.Sprintf("%.1f / %d", st.ActualFPS, st.TargetFPS)},
		{"Frames", fmt.Sprintf("%d", st.Ticks)},
		{"Level", fmt.Sprintf("%d", st.Level)},
		{"Score", fmt.Sprintf("%d", st.Score)},
		{"Lives", fmt.Sprintf("%d", st.Lives)},
		{"Power", st.Power.String()},
		{"Link", state},
		{"Port", link.Port},
		{"Sent", fmt.Sprintf("%d frames", link.FramesSent)},
		{"Link FPS", fmt.Sprintf("%.1f", link.FPS)},
		{"Queue", fmt.Sprintf("%d/%d", link.QueueDepth, link.QueueCap)},
		{"Dropped", fmt.Sprintf("%d", link.Dropped)},
		{"Errors", fmt.Sprintf("%d", link.Errors)},
	}
	if link.LastError != "" {
		rows = append(rows, table.Row{"Last err", truncate(link.LastError, valueWidth)})
	}
	return rows
}

// statusLine is the one-line summary under the preview.
func statusLine(st engine.Status) string {
	parts := []string{
		fmt.Sprintf("L%d", st.Level),
		fmt.Sprintf("score %d", st.Score),
		fmt.Sprintf("lives %d", st.Lives),
		st.Power.String(),
		fmt.Sprintf("%.0f/%d fps", st.ActualFPS, st.TargetFPS),
	}
	if st.Link.Connected {
		parts = append(parts, "link "+st.Link.Port)
	} else {
		parts = append(parts, "headless")
	}
	switch {
	case st.Paused:
		parts = append(parts, "PAUSED")
	case st.Mode != engine.ModePlaying:
		parts = append(parts, strings.ToUpper(st.Mode.String()))
	}
	return strings.Join(parts, " · ")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
