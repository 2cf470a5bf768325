// Package config provides YAML-based runtime configuration for the matrix
// game: display geometry, game rules, physics tuning, the display link and the
// color palette. A Config is built once at startup and passed explicitly into
// the world, renderer, transmitter and engine constructors.
package config

import (
	"time"

	"github.com/Murat2283plus/maliao/internal/core"
)

// Config contains all runtime configuration.
type Config struct {
	Display     DisplayConfig     `yaml:"display"`
	Game        GameConfig        `yaml:"game"`
	Physics     PhysicsConfig     `yaml:"physics"`
	Progression ProgressionConfig `yaml:"progression"`
	Link        LinkConfig        `yaml:"link"`
	Palette     Palette           `yaml:"palette"`
	HUD         HUDConfig         `yaml:"hud"`

	// Source records where the configuration was loaded from.
	Source string `yaml:"-"`
}

// DisplayConfig defines the LED matrix geometry.
type DisplayConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// GameConfig defines game rules and timing.
type GameConfig struct {
	FPS              int           `yaml:"fps"`
	Lives            int           `yaml:"lives"`
	WorldWidth       int           `yaml:"world_width"`
	GroundHeight     int           `yaml:"ground_height"`
	Invincibility    time.Duration `yaml:"invincibility"`
	JumpLockout      time.Duration `yaml:"jump_lockout"`
	RespawnX         float64       `yaml:"respawn_x"`
	Celebration      time.Duration `yaml:"celebration"`
	MaxFireballs     int           `yaml:"max_fireballs"`
	FireballLifetime time.Duration `yaml:"fireball_lifetime"`
	Points           PointsConfig  `yaml:"points"`
}

// PointsConfig defines score awards.
type PointsConfig struct {
	Coin    int `yaml:"coin"`
	Stomp   int `yaml:"stomp"`
	Brick   int `yaml:"brick"`
	PowerUp int `yaml:"power_up"`
}

// PhysicsConfig defines physics parameters. Velocities are pixels per tick and
// accelerations pixels per tick squared, so the simulation is deterministic
// regardless of wall-clock jitter.
type PhysicsConfig struct {
	Gravity        float64 `yaml:"gravity"`
	MaxFallSpeed   float64 `yaml:"max_fall_speed"`
	JumpPower      float64 `yaml:"jump_power"`
	RunAccel       float64 `yaml:"run_accel"`
	MaxRunSpeed    float64 `yaml:"max_run_speed"`
	Friction       float64 `yaml:"friction"`
	StopThreshold  float64 `yaml:"stop_threshold"`
	StompTolerance float64 `yaml:"stomp_tolerance"`
	StompBounce    float64 `yaml:"stomp_bounce"`
	EnemySpeed     float64 `yaml:"enemy_speed"`
	FireballSpeed  float64 `yaml:"fireball_speed"`
}

// LinkConfig defines the display link and its transmission queue.
type LinkConfig struct {
	Port         string        `yaml:"port"`
	Baud         int           `yaml:"baud"`
	Mock         bool          `yaml:"mock"`
	QueueSize    int           `yaml:"queue_size"`
	DropPolicy   string        `yaml:"drop_policy"` // "newest" or "oldest"
	PopTimeout   time.Duration `yaml:"pop_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	JoinTimeout  time.Duration `yaml:"join_timeout"`
}

// Drop policies for a full transmission queue.
const (
	DropNewest = "newest"
	DropOldest = "oldest"
)

// HUDConfig toggles the on-matrix heads-up display.
type HUDConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Palette holds every color the renderer draws with.
type Palette struct {
	Sky        Color `yaml:"sky"`
	Ground     Color `yaml:"ground"`
	Grass      Color `yaml:"grass"`
	Platform   Color `yaml:"platform"`
	Brick      Color `yaml:"brick"`
	Coin       Color `yaml:"coin"`
	CoinBlink  Color `yaml:"coin_blink"`
	Enemy      Color `yaml:"enemy"`
	MarioSmall Color `yaml:"mario_small"`
	MarioBig   Color `yaml:"mario_big"`
	MarioFire  Color `yaml:"mario_fire"`
	Flash      Color `yaml:"flash"`
	Mushroom   Color `yaml:"mushroom"`
	Flower     Color `yaml:"flower"`
	Fireball   Color `yaml:"fireball"`
	Flag       Color `yaml:"flag"`
	Lives      Color `yaml:"lives"`
	Score      Color `yaml:"score"`
	GameOver   Color `yaml:"game_over"`
}

// Color is an RGB triple written in YAML either as [r, g, b] or "#rrggbb".
type Color struct {
	R, G, B uint8
}

// RGB converts the color to the pixel type.
func (c Color) RGB() core.RGB {
	return core.RGB{R: c.R, G: c.G, B: c.B}
}

// FrameTime returns the frame budget for the configured FPS.
func (g GameConfig) FrameTime() time.Duration {
	if g.FPS <= 0 {
		return time.Second
	}
	return time.Second / time.Duration(g.FPS)
}

// GroundY returns the y coordinate of the ground surface.
func (c Config) GroundY() int {
	return c.Display.Height - c.Game.GroundHeight
}

// PacketSize returns the wire payload size of one frame.
func (d DisplayConfig) PacketSize() int {
	return d.Width * d.Height * 3
}
