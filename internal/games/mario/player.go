package mario

import (
	"time"

	"github.com/Murat2283plus/maliao/internal/config"
	"github.com/Murat2283plus/maliao/internal/core"
)

// PowerState is the player's power level.
type PowerState int

const (
	Small PowerState = iota
	Big
	Fire
)

// String returns the name of the state.
func (s PowerState) String() string {
	switch s {
	case Small:
		return "small"
	case Big:
		return "big"
	case Fire:
		return "fire"
	default:
		return "unknown"
	}
}

// height returns the hitbox height for the state.
func (s PowerState) height() float64 {
	if s == Small {
		return SmallHeight
	}
	return BigHeight
}

// DamageResult describes what a hit did to the player.
type DamageResult int

const (
	DamageIgnored DamageResult = iota // Invincible, nothing happened
	DamageShrunk                      // Lost a power level
	DamageLifeLost                    // Died and respawned
	DamageDead                        // Died with no lives left
)

// animPeriod is how long each walk animation frame lasts.
const animPeriod = 200 * time.Millisecond

// Player is the controllable character.
type Player struct {
	Sprite
	Motion

	State       PowerState
	Dir         int // -1 left, +1 right
	Lives       int
	Score       int
	Invincible  time.Duration // Remaining invincibility
	JumpLockout time.Duration // Remaining time before another jump is allowed
	AnimFrame   int

	animTimer time.Duration
	spawnX    float64
	spawnY    float64
	phys      config.PhysicsConfig
	rules     config.GameConfig
}

func (*Player) Kind() Kind { return KindPlayer }
func (*Player) entity()    {}

// NewPlayer creates a small player standing on the ground at the respawn point.
func NewPlayer(cfg config.Config) *Player {
	groundY := float64(cfg.GroundY())
	p := &Player{
		Sprite: newSprite(cfg.Game.RespawnX, groundY-SmallHeight, PlayerWidth, SmallHeight, cfg.Palette.MarioSmall.RGB()),
		Motion: Motion{Gravity: true, OnGround: true},
		State:  Small,
		Dir:    1,
		Lives:  cfg.Game.Lives,
		spawnX: cfg.Game.RespawnX,
		spawnY: groundY,
		phys:   cfg.Physics,
		rules:  cfg.Game,
	}
	return p
}

// Dead reports whether the player has run out of lives.
func (p *Player) Dead() bool {
	return !p.Active
}

// IsInvincible reports whether damage is currently ignored.
func (p *Player) IsInvincible() bool {
	return p.Invincible > 0
}

// AddScore adds points to the player's own score.
func (p *Player) AddScore(points int) {
	p.Score += points
}

// tickTimers counts down invincibility and jump lockout and advances the walk animation.
func (p *Player) tickTimers(dt time.Duration) {
	if p.Invincible > 0 {
		p.Invincible -= dt
		if p.Invincible < 0 {
			p.Invincible = 0
		}
	}
	if p.JumpLockout > 0 {
		p.JumpLockout -= dt
		if p.JumpLockout < 0 {
			p.JumpLockout = 0
		}
	}
	p.animTimer += dt
	if p.animTimer >= animPeriod {
		p.AnimFrame = (p.AnimFrame + 1) % 3
		p.animTimer = 0
	}
}

// steer applies run acceleration toward the held direction, then friction.
func (p *Player) steer(dir int) {
	if dir != 0 {
		p.Dir = dir
		p.VX = core.ClampF(p.VX+float64(dir)*p.phys.RunAccel, -p.phys.MaxRunSpeed, p.phys.MaxRunSpeed)
	}
	p.VX *= p.phys.Friction
	if p.VX < p.phys.StopThreshold && p.VX > -p.phys.StopThreshold {
		p.VX = 0
	}
}

// Jump starts a jump if the player is grounded and not locked out.
// It returns true if the jump happened.
func (p *Player) Jump() bool {
	if !p.OnGround || p.JumpLockout > 0 {
		return false
	}
	p.VY = -p.phys.JumpPower
	p.OnGround = false
	p.JumpLockout = p.rules.JumpLockout
	return true
}

// Update runs the player's share of a tick: timers, input, gravity,
// integration and the ground line. Collisions with other entities are
// resolved by the world afterwards.
func (p *Player) Update(in core.Input, env *Env) {
	if !p.Active {
		return
	}
	p.tickTimers(env.DT)

	// Recomputed every tick so walking off a ledge starts a fall.
	p.OnGround = p.VY >= 0 && supported(&p.Sprite, env)
	p.steer(in.Direction())
	if in.Jump {
		p.Jump()
	}
	applyGravity(&p.Motion, env.Gravity, env.MaxFall)

	p.X += p.VX
	p.Y += p.VY
	if clampToWorld(&p.Sprite, &p.Motion, env.WorldW) {
		p.VX = 0
	}
	settleOnGround(&p.Sprite, &p.Motion, env.GroundY)
}

// setState switches power state, resizing the hitbox with the feet anchored.
func (p *Player) setState(s PowerState, palette config.Palette) {
	bottom := p.Bottom()
	p.State = s
	p.H = s.height()
	p.Y = bottom - p.H
	p.Color = StateColor(s, palette)
}

// StateColor returns the base color for a power state.
func StateColor(s PowerState, palette config.Palette) core.RGB {
	switch s {
	case Big:
		return palette.MarioBig.RGB()
	case Fire:
		return palette.MarioFire.RGB()
	default:
		return palette.MarioSmall.RGB()
	}
}

// Grow applies a mushroom: small becomes big. Big and fire are unchanged.
func (p *Player) Grow(palette config.Palette) bool {
	if p.State != Small {
		return false
	}
	p.setState(Big, palette)
	return true
}

// FirePower applies a flower. A small player passes through big first.
func (p *Player) FirePower(palette config.Palette) bool {
	if p.State == Fire {
		return false
	}
	if p.State == Small {
		p.setState(Big, palette)
	}
	p.setState(Fire, palette)
	return true
}

// TakeDamage applies one hit. Fire drops to big and big to small, each
// granting invincibility. A small player loses a life: with lives left it
// respawns small at the spawn point with fresh invincibility; at zero lives
// it becomes permanently inactive.
func (p *Player) TakeDamage(palette config.Palette) DamageResult {
	if !p.Active || p.IsInvincible() {
		return DamageIgnored
	}
	switch p.State {
	case Fire:
		p.setState(Big, palette)
		p.Invincible = p.rules.Invincibility
		return DamageShrunk
	case Big:
		p.setState(Small, palette)
		p.Invincible = p.rules.Invincibility
		return DamageShrunk
	default:
		return p.die(palette)
	}
}

func (p *Player) die(palette config.Palette) DamageResult {
	p.Lives--
	if p.Lives <= 0 {
		p.Lives = 0
		p.Active = false
		p.VX, p.VY = 0, 0
		return DamageDead
	}
	p.Respawn(palette)
	p.Invincible = p.rules.Invincibility
	return DamageLifeLost
}

// Respawn puts a living player back at the spawn point: small, standing,
// motionless and with invincibility cleared. It does nothing once lives are gone.
func (p *Player) Respawn(palette config.Palette) {
	if p.Lives <= 0 {
		return
	}
	p.setState(Small, palette)
	p.placeAtSpawn()
	p.Invincible = 0
	p.Active = true
}

// placeAtSpawn moves the player to the spawn point keeping its power state.
func (p *Player) placeAtSpawn() {
	p.X = p.spawnX
	p.Y = p.spawnY - p.H
	p.VX, p.VY = 0, 0
	p.OnGround = true
	p.JumpLockout = 0
}
