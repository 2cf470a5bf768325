// Package console is the line-based operator host: it reads commands from a
// reader, applies them to the engine and prints the results.
package console

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Verb identifies a console command.
type Verb int

const (
	VerbNone Verb = iota
	VerbPause
	VerbRestart
	VerbStatus
	VerbResetStats
	VerbTest
	VerbFPS
	VerbClear
	VerbConnect
	VerbDisconnect
	VerbHelp
	VerbQuit
)

var (
	// ErrUnknownCommand is returned for input that names no command.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrUsage is returned when a command's arguments are wrong.
	ErrUsage = errors.New("bad usage")
)

// Command is one parsed console line.
type Command struct {
	Verb    Verb
	Pattern string // VerbTest; empty cycles every pattern
	FPS     int    // VerbFPS
}

// verbs maps every accepted spelling to its verb.
var verbs = map[string]Verb{
	"p":          VerbPause,
	"pause":      VerbPause,
	"r":          VerbRestart,
	"restart":    VerbRestart,
	"s":          VerbStatus,
	"status":     VerbStatus,
	"z":          VerbResetStats,
	"zero":       VerbResetStats,
	"t":          VerbTest,
	"test":       VerbTest,
	"fps":        VerbFPS,
	"clear":      VerbClear,
	"c":          VerbConnect,
	"connect":    VerbConnect,
	"d":          VerbDisconnect,
	"disconnect": VerbDisconnect,
	"h":          VerbHelp,
	"help":       VerbHelp,
	"?":          VerbHelp,
	"q":          VerbQuit,
	"quit":       VerbQuit,
	"exit":       VerbQuit,
}

// ParseCommand parses one input line. Commands are case-insensitive; blank
// lines parse to VerbNone.
func ParseCommand(line string) (Command, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return Command{}, nil
	}

	verb, ok := verbs[fields[0]]
	if !ok {
		return Command{}, fmt.Errorf("%w: %s", ErrUnknownCommand, fields[0])
	}
	args := fields[1:]
	cmd := Command{Verb: verb}

	switch verb {
	case VerbTest:
		if len(args) > 1 {
			return Command{}, fmt.Errorf("%w: test [pattern]", ErrUsage)
		}
		if len(args) == 1 {
			cmd.Pattern = args[0]
		}
	case VerbFPS:
		if len(args) != 1 {
			return Command{}, fmt.Errorf("%w: fps <number>", ErrUsage)
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return Command{}, fmt.Errorf("%w: fps <number>: %q is not a number", ErrUsage, args[0])
		}
		cmd.FPS = n
	default:
		if len(args) > 0 {
			return Command{}, fmt.Errorf("%w: %s takes no arguments", ErrUsage, fields[0])
		}
	}
	return cmd, nil
}

// helpText lists every command.
const helpText = `Commands:
  p, pause        pause or resume the game
  r, restart      rebuild the world
  s, status       show engine and link status
  z, zero         reset frame and link counters
  t, test [name]  show test patterns (all, or one by name)
  fps <n>         set the target frame rate (1-60)
  clear           blank the display
  c, connect      connect the display link
  d, disconnect   disconnect the display link
  h, help         show this help
  q, quit         exit`
