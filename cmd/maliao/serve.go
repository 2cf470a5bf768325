package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Murat2283plus/maliao/internal/engine"
	"github.com/Murat2283plus/maliao/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagServeDemo   bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the game and serve the preview over SSH",
	Long: `Start the game loop and an SSH server. Every SSH session sees the live
matrix preview and can use the controls; the last session to press a
movement key steers Mario.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.maliao/host_key

Examples:
  maliao serve                           # Listen on :23234 with auto-generated key
  maliao serve --ssh :2222               # Listen on port 2222
  maliao serve --host-key ./my_host_key  # Use specific host key
  maliao serve --mock --demo             # No hardware, Mario plays until someone steers

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	defaults := tui.DefaultSSHServerConfig()
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", defaults.Address, "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", int(defaults.IdleTimeout/time.Minute), "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().BoolVar(&flagServeDemo, "demo", false, "Let Mario play by himself until a session steers")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(false)
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
	if flagServeDemo {
		eng.SetInput(engine.NewDemoInput(flagJumpEvery))
	}

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
	}, eng, tui.DefaultKeyMap(), logger.WithPrefix("ssh"))
	if err != nil {
		return err
	}

	fmt.Printf("Serving maliao over SSH on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")
	return server.ListenAndServe(ctx)
}
