package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Murat2283plus/maliao/internal/engine"
	"github.com/Murat2283plus/maliao/internal/platform/tui"
	"github.com/Murat2283plus/maliao/internal/registry"
	"github.com/Murat2283plus/maliao/internal/transport"
)

var flagListPatterns bool

var patternCmd = &cobra.Command{
	Use:   "pattern [name]",
	Short: "Send test patterns to the display",
	Long: `Connect to the display and show test patterns: every pattern for one
second each, or a single named pattern for two seconds. 'clear' blanks the
display.

Examples:
  maliao pattern --list
  maliao pattern
  maliao pattern border --port /dev/ttyACM0
  maliao pattern clear
  maliao pattern rainbow --mock   # no hardware; prints what the display got`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPattern,
}

func init() {
	patternCmd.Flags().BoolVar(&flagListPatterns, "list", false, "List available patterns")
}

func runPattern(cmd *cobra.Command, args []string) error {
	if flagListPatterns {
		listPatterns()
		return nil
	}

	name := ""
	if len(args) == 1 {
		name = args[0]
	}
	if name != "" && name != engine.PatternClear && !registry.Exists(name) {
		return fmt.Errorf("unknown pattern %q (run 'maliao pattern --list')", name)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closeLog()

	eng := engine.New(cfg, logger.WithPrefix("engine"))
	defer func() { _ = eng.Close() }()

	// In mock mode, keep the sink so the last frame it received can be shown.
	var mock *transport.MockSink
	if cfg.Link.Mock {
		mock = transport.NewMockSink()
		eng.Transmitter().SetSinkFactory(func() transport.Sink { return mock })
	}
	if err := eng.Connect(); err != nil {
		return err
	}
	if err := eng.SendTestPattern(name); err != nil {
		return err
	}

	// Show time plus a little slack for the queue to drain.
	show := 2 * time.Second
	if name == "" {
		show = time.Duration(len(registry.IDs())) * time.Second
	}
	show += 200 * time.Millisecond

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := eng.Start(ctx); err != nil {
		return err
	}

	select {
	case <-ctx.Done():
	case <-time.After(show):
	}
	st := eng.Status()
	fmt.Printf("Sent %d frames to %s\n", st.Link.FramesSent, st.Link.Port)
	if mock != nil {
		if f := mock.LastFrame(cfg.Display.Width, cfg.Display.Height); f != nil {
			fmt.Println("Last frame on the mock display:")
			fmt.Println(tui.RenderFrame(f, lipgloss.DefaultRenderer()))
		}
	}
	return nil
}

// listPatterns prints the registered test patterns.
func listPatterns() {
	patterns := registry.List()

	maxIDLen := len("clear")
	for _, p := range patterns {
		maxIDLen = max(maxIDLen, len(p.ID))
	}

	fmt.Println("Available patterns:")
	fmt.Println()
	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Description")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----------")
	for _, p := range patterns {
		fmt.Printf("  %-*s  %s\n", maxIDLen, p.ID, p.Title)
	}
	fmt.Printf("  %-*s  %s\n", maxIDLen, engine.PatternClear, "Blank the display")
	fmt.Println()
	fmt.Println("Run 'maliao pattern <id>' to show one.")
}
