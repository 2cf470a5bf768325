package engine

import (
	"github.com/Murat2283plus/maliao/internal/games/mario"
	"github.com/Murat2283plus/maliao/internal/transport"
)

// Mode is what the loop is currently putting on the matrix.
type Mode int

const (
	ModePlaying     Mode = iota // Live game
	ModeCelebrating             // Level complete rainbow
	ModeGameOver                // Game-over screen
	ModePattern                 // Test pattern
)

// String returns the name of the mode.
func (m Mode) String() string {
	switch m {
	case ModePlaying:
		return "playing"
	case ModeCelebrating:
		return "celebrating"
	case ModeGameOver:
		return "game over"
	case ModePattern:
		return "pattern"
	default:
		return "unknown"
	}
}

// Status is a snapshot of the engine for operator surfaces. It is published
// by the loop once per iteration and may be up to one frame stale.
type Status struct {
	Running   bool
	Paused    bool
	Mode      Mode
	Pattern   string // Pattern on screen in ModePattern
	TargetFPS int
	ActualFPS float64
	Ticks     uint64

	Level int
	Score int
	Lives int
	Power mario.PowerState

	Link transport.Stats
}

// GameOver reports whether the game has ended.
func (s Status) GameOver() bool {
	return s.Mode == ModeGameOver
}
