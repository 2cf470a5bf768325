package console

import (
	"fmt"
	"io"
	"time"

	"github.com/Murat2283plus/maliao/internal/engine"
)

// WriteStatus prints a status report.
func WriteStatus(w io.Writer, st engine.Status) {
	link := st.Link
	connected := "disconnected"
	if link.Connected {
		connected = "connected"
	}

	fmt.Fprintln(w, "=== maliao status ===")
	fmt.Fprintf(w, "Running:     %t\n", st.Running)
	fmt.Fprintf(w, "Paused:      %t\n", st.Paused)
	fmt.Fprintf(w, "Mode:        %s\n", st.Mode)
	if st.Pattern != "" {
		fmt.Fprintf(w, "Pattern:     %s\n", st.Pattern)
	}
	fmt.Fprintf(w, "FPS:         %.1f (target %d)\n", st.ActualFPS, st.TargetFPS)
	fmt.Fprintf(w, "Frames:      %d\n", st.Ticks)
	fmt.Fprintf(w, "Level:       %d\n", st.Level)
	fmt.Fprintf(w, "Score:       %d\n", st.Score)
	fmt.Fprintf(w, "Lives:       %d\n", st.Lives)
	fmt.Fprintf(w, "Power:       %s\n", st.Power)
	fmt.Fprintf(w, "Game over:   %t\n", st.GameOver())
	fmt.Fprintf(w, "Link:        %s (%s)\n", connected, link.Port)
	if link.Connected && !link.Since.IsZero() {
		fmt.Fprintf(w, "Uptime:      %s\n", time.Since(link.Since).Round(time.Second))
	}
	fmt.Fprintf(w, "Sent:        %d frames, %d bytes, %.1f fps\n", link.FramesSent, link.BytesSent, link.FPS)
	fmt.Fprintf(w, "Queue:       %d/%d, %d dropped\n", link.QueueDepth, link.QueueCap, link.Dropped)
	fmt.Fprintf(w, "Errors:      %d\n", link.Errors)
	if link.LastError != "" {
		fmt.Fprintf(w, "Last error:  %s\n", link.LastError)
	}
}
