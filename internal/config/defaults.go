package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/maliao.yaml
var defaultYAML []byte

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}

// Default returns the hard-coded default configuration. It mirrors
// defaults/maliao.yaml and is the last fallback when the embedded file is unusable.
func Default() Config {
	return Config{
		Display: DisplayConfig{
			Width:  36,
			Height: 28,
		},
		Game: GameConfig{
			FPS:              30,
			Lives:            3,
			WorldWidth:       120,
			GroundHeight:     5,
			Invincibility:    2 * time.Second,
			JumpLockout:      250 * time.Millisecond,
			RespawnX:         3,
			Celebration:      2 * time.Second,
			MaxFireballs:     2,
			FireballLifetime: 2 * time.Second,
			Points: PointsConfig{
				Coin:    100,
				Stomp:   200,
				Brick:   50,
				PowerUp: 1000,
			},
		},
		Physics: PhysicsConfig{
			Gravity:        0.3,
			MaxFallSpeed:   3,
			JumpPower:      2.4,
			RunAccel:       0.3,
			MaxRunSpeed:    1.2,
			Friction:       0.8,
			StopThreshold:  0.05,
			StompTolerance: 2,
			StompBounce:    1.5,
			EnemySpeed:     0.25,
			FireballSpeed:  1.5,
		},
		Progression: ProgressionConfig{
			Enabled:       true,
			SpeedStep:     0.1,
			MaxMultiplier: 2.0,
		},
		Link: LinkConfig{
			Port:         "/dev/ttyUSB0",
			Baud:         115200,
			Mock:         false,
			QueueSize:    10,
			DropPolicy:   DropNewest,
			PopTimeout:   100 * time.Millisecond,
			WriteTimeout: time.Second,
			JoinTimeout:  time.Second,
		},
		Palette: Palette{
			Sky:        Color{0, 0, 0},
			Ground:     Color{100, 50, 10},
			Grass:      Color{0, 160, 0},
			Platform:   Color{0, 255, 0},
			Brick:      Color{205, 133, 63},
			Coin:       Color{255, 215, 0},
			CoinBlink:  Color{255, 255, 0},
			Enemy:      Color{139, 69, 19},
			MarioSmall: Color{255, 0, 0},
			MarioBig:   Color{0, 0, 255},
			MarioFire:  Color{255, 255, 255},
			Flash:      Color{255, 255, 255},
			Mushroom:   Color{255, 100, 100},
			Flower:     Color{255, 165, 0},
			Fireball:   Color{255, 69, 0},
			Flag:       Color{0, 255, 255},
			Lives:      Color{255, 0, 0},
			Score:      Color{255, 255, 0},
			GameOver:   Color{64, 0, 0},
		},
		HUD: HUDConfig{
			Enabled: true,
		},
		Source: "built-in defaults",
	}
}
