package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/Murat2283plus/maliao/internal/engine"
	"github.com/Murat2283plus/maliao/internal/registry"
)

// Controller is the part of the engine the console drives.
type Controller interface {
	TogglePause() bool
	Reset() error
	Status() engine.Status
	ResetStats()
	SendTestPattern(name string) error
	SetFPS(fps int) error
	Connect() error
	Disconnect()
}

// Console reads operator commands line by line.
type Console struct {
	ctl    Controller
	logger *log.Logger
	prompt string
}

// New creates a console for ctl. A nil logger discards output.
func New(ctl Controller, logger *log.Logger) *Console {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Console{ctl: ctl, logger: logger, prompt: "> "}
}

// SetPrompt changes the prompt printed before each command; empty disables it.
func (c *Console) SetPrompt(p string) {
	c.prompt = p
}

// Run processes commands from r until quit, EOF or ctx is cancelled. Errors
// from individual commands are printed and never end the session; only a read
// failure is returned.
func (c *Console) Run(ctx context.Context, r io.Reader, w io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	readErr := make(chan error, 1)

	// A reader blocked on r outlives Run until r returns.
	go func() {
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- sc.Err()
	}()

	fmt.Fprintln(w, helpText)
	c.printPrompt(w)
	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-readErr:
			if err != nil {
				return fmt.Errorf("console: reading commands: %w", err)
			}
			return nil
		case line := <-lines:
			if quit := c.Exec(line, w); quit {
				return nil
			}
			c.printPrompt(w)
		}
	}
}

func (c *Console) printPrompt(w io.Writer) {
	if c.prompt != "" {
		fmt.Fprint(w, c.prompt)
	}
}

// Exec runs one command line and reports whether it asked to quit.
func (c *Console) Exec(line string, w io.Writer) (quit bool) {
	cmd, err := ParseCommand(line)
	if err != nil {
		fmt.Fprintf(w, "%v. Type 'h' for help.\n", err)
		return false
	}

	switch cmd.Verb {
	case VerbNone:
	case VerbQuit:
		fmt.Fprintln(w, "Bye.")
		return true
	case VerbPause:
		if c.ctl.TogglePause() {
			fmt.Fprintln(w, "Game paused")
		} else {
			fmt.Fprintln(w, "Game resumed")
		}
	case VerbRestart:
		c.report(w, c.ctl.Reset(), "Game restarted")
	case VerbStatus:
		WriteStatus(w, c.ctl.Status())
	case VerbResetStats:
		c.ctl.ResetStats()
		fmt.Fprintln(w, "Counters reset")
	case VerbTest:
		msg := "Cycling test patterns: " + strings.Join(registry.IDs(), ", ")
		if cmd.Pattern != "" {
			msg = "Showing test pattern " + cmd.Pattern
		}
		c.report(w, c.ctl.SendTestPattern(cmd.Pattern), msg)
	case VerbFPS:
		c.report(w, c.ctl.SetFPS(cmd.FPS), fmt.Sprintf("Target FPS set to %d", cmd.FPS))
	case VerbClear:
		c.report(w, c.ctl.SendTestPattern(engine.PatternClear), "Display cleared")
	case VerbConnect:
		st := c.ctl.Status()
		if st.Link.Connected {
			fmt.Fprintf(w, "Already connected to %s\n", st.Link.Port)
			break
		}
		c.report(w, c.ctl.Connect(), "Connected to "+st.Link.Port)
	case VerbDisconnect:
		c.ctl.Disconnect()
		fmt.Fprintln(w, "Disconnected")
	case VerbHelp:
		fmt.Fprintln(w, helpText)
	}
	return false
}

func (c *Console) report(w io.Writer, err error, ok string) {
	if err != nil {
		c.logger.Debug("command failed", "error", err)
		fmt.Fprintf(w, "Error: %v\n", err)
		return
	}
	fmt.Fprintln(w, ok)
}
