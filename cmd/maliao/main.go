// maliao is a side-scrolling platformer rendered onto an RGB LED matrix.
//
// Usage:
//
//	maliao run               - Play, previewing the matrix in the terminal
//	maliao serve             - Run the game and serve the preview over SSH
//	maliao pattern [name]    - Send test patterns to the display
//	maliao ports             - List serial ports
//	maliao config            - Print the effective configuration
//
// Global flags:
//
//	--config <path>     - Config file (default: ~/.maliao/config.yaml)
//	--port <port>       - Serial device or ws:// URL of the display
//	--baud <rate>       - Serial baud rate
//	--mock              - Use an in-memory display
//	--fps <rate>        - Target frame rate (1-60)
//	--log-level <level> - debug, info, warn or error
//	--log-file <path>   - Write logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig   string
	flagPort     string
	flagBaud     int
	flagMock     bool
	flagFPS      int
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "maliao",
	Short: "Mario-style platformer for RGB LED matrices",
	Long: `maliao runs a side-scrolling platformer and streams every frame to an
RGB LED matrix over a serial port or WebSocket.

Available commands:
  run      - Play the game with a terminal preview or console
  serve    - Serve the preview and controls over SSH
  pattern  - Send test patterns to the display
  ports    - List serial ports
  config   - Print the effective configuration

Examples:
  maliao run --port /dev/ttyUSB0
  maliao run --mock --demo
  maliao serve --ssh :2222
  maliao pattern border`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Path to config YAML")
	pf.StringVar(&flagPort, "port", "", "Serial device or ws:// URL of the display")
	pf.IntVar(&flagBaud, "baud", 0, "Serial baud rate")
	pf.BoolVar(&flagMock, "mock", false, "Use an in-memory display instead of hardware")
	pf.IntVar(&flagFPS, "fps", 0, "Target frame rate (1-60)")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(patternCmd)
	rootCmd.AddCommand(portsCmd)
	rootCmd.AddCommand(configCmd)
}
