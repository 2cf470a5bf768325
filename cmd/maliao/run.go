package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Murat2283plus/maliao/internal/config"
	"github.com/Murat2283plus/maliao/internal/engine"
	"github.com/Murat2283plus/maliao/internal/platform/console"
	"github.com/Murat2283plus/maliao/internal/platform/tui"
)

var (
	flagDemo      bool
	flagConsole   bool
	flagJumpEvery int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Play the game",
	Long: `Start the game loop and stream frames to the display.

On a terminal the matrix is previewed in true colour and the keyboard steers
Mario. Without a terminal, or with --console, a line-based operator console
reads commands from stdin instead and Mario plays the demo.

If the display cannot be opened the game keeps running headless; connect
later with 'c'.

Controls:
  ←/→, A/D     - Run
  Space/↑/W    - Jump
  X/F          - Throw a fireball
  P            - Pause
  R            - Restart
  T            - Cycle test patterns
  +/-          - Change FPS
  C            - Connect/disconnect the display
  S            - Status panel
  Q/Ctrl+C     - Quit

Examples:
  maliao run --port /dev/ttyUSB0
  maliao run --port ws://matrix.local:8080/frames
  maliao run --mock --demo
  maliao run --console --fps 20`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	runCmd.Flags().BoolVar(&flagDemo, "demo", false, "Let Mario play by himself")
	runCmd.Flags().BoolVar(&flagConsole, "console", false, "Use the line console even on a terminal")
	runCmd.Flags().IntVar(&flagJumpEvery, "jump-every", 20, "Ticks between demo jumps")
}

func runRun(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	useTUI := !flagConsole && interactive()

	logger, closeLog, err := newLogger(useTUI)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eng, err := startEngine(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := eng.Close(); err != nil {
			logger.Error("stopping engine", "error", err)
		}
	}()

	if flagDemo || !useTUI {
		eng.SetInput(engine.NewDemoInput(flagJumpEvery))
	}

	if useTUI {
		err := tui.Run(eng, tui.DefaultKeyMap(), tea.WithContext(ctx))
		if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return fmt.Errorf("running preview: %w", err)
		}
		return nil
	}

	c := console.New(eng, logger.WithPrefix("console"))
	return c.Run(ctx, os.Stdin, os.Stdout)
}

// startEngine builds the engine, tries the display and starts the loop. A
// display that cannot be opened is logged and the game runs headless.
func startEngine(ctx context.Context, cfg config.Config, logger *log.Logger) (*engine.Engine, error) {
	logger.Info("configuration loaded", "source", cfg.Source, "fps", cfg.Game.FPS, "port", cfg.Link.Port, "mock", cfg.Link.Mock)

	eng := engine.New(cfg, logger.WithPrefix("engine"))
	_ = eng.Connect()

	if err := eng.Start(ctx); err != nil {
		eng.Disconnect()
		return nil, fmt.Errorf("starting engine: %w", err)
	}
	return eng, nil
}
