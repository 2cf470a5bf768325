package config

import (
	"errors"
	"fmt"
)

// FPS limits accepted by the game loop.
const (
	MinFPS = 1
	MaxFPS = 60
)

// maxPayload is the largest payload the u16 length field can describe.
const maxPayload = 0xFFFF

var (
	ErrInvalidFPS        = errors.New("fps out of range")
	ErrInvalidDisplay    = errors.New("invalid display size")
	ErrInvalidQueue      = errors.New("invalid queue size")
	ErrInvalidDropPolicy = errors.New("unknown drop policy")
	ErrInvalidWorld      = errors.New("invalid world geometry")
	ErrInvalidTimeout    = errors.New("invalid timeout")
)

// ValidateFPS checks that fps is within [MinFPS, MaxFPS].
func ValidateFPS(fps int) error {
	if fps < MinFPS || fps > MaxFPS {
		return fmt.Errorf("%w: %d (want %d-%d)", ErrInvalidFPS, fps, MinFPS, MaxFPS)
	}
	return nil
}

// Validate checks the configuration for values the pipeline cannot run with.
func (c Config) Validate() error {
	if c.Display.Width <= 0 || c.Display.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDisplay, c.Display.Width, c.Display.Height)
	}
	if c.Display.PacketSize() > maxPayload {
		return fmt.Errorf("%w: %dx%d needs %d payload bytes, limit is %d",
			ErrInvalidDisplay, c.Display.Width, c.Display.Height, c.Display.PacketSize(), maxPayload)
	}
	if err := ValidateFPS(c.Game.FPS); err != nil {
		return err
	}
	if c.Game.WorldWidth < c.Display.Width {
		return fmt.Errorf("%w: world width %d is narrower than the display (%d)",
			ErrInvalidWorld, c.Game.WorldWidth, c.Display.Width)
	}
	if c.Game.GroundHeight < 0 || c.Game.GroundHeight >= c.Display.Height {
		return fmt.Errorf("%w: ground height %d", ErrInvalidWorld, c.Game.GroundHeight)
	}
	if c.Game.Lives < 1 {
		return fmt.Errorf("%w: lives must be at least 1", ErrInvalidWorld)
	}
	if c.Game.Invincibility <= 0 {
		return fmt.Errorf("%w: invincibility must be positive, got %v", ErrInvalidWorld, c.Game.Invincibility)
	}
	if c.Link.QueueSize < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidQueue, c.Link.QueueSize)
	}
	if c.Link.PopTimeout <= 0 {
		return fmt.Errorf("%w: pop_timeout must be positive, got %v", ErrInvalidTimeout, c.Link.PopTimeout)
	}
	if c.Link.JoinTimeout <= 0 {
		return fmt.Errorf("%w: join_timeout must be positive, got %v", ErrInvalidTimeout, c.Link.JoinTimeout)
	}
	switch c.Link.DropPolicy {
	case DropNewest, DropOldest:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidDropPolicy, c.Link.DropPolicy)
	}
	return nil
}
