// Package mario implements the platformer simulation: entities, per-tick
// physics, ordered collision resolution, the player's power state machine
// and the world that owns them all. It is pure game logic; rendering and
// transmission live elsewhere and only read from a World.
package mario

import (
	"time"

	"github.com/Murat2283plus/maliao/internal/core"
)

// Kind tags the closed set of entity variants.
type Kind int

const (
	KindPlatform Kind = iota
	KindBrick
	KindFlag
	KindCoin
	KindPowerUp
	KindEnemy
	KindFireball
	KindPlayer
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindPlatform:
		return "platform"
	case KindBrick:
		return "brick"
	case KindFlag:
		return "flag"
	case KindCoin:
		return "coin"
	case KindPowerUp:
		return "power-up"
	case KindEnemy:
		return "enemy"
	case KindFireball:
		return "fireball"
	case KindPlayer:
		return "player"
	default:
		return "unknown"
	}
}

// Static reports whether entities of this kind never move.
func (k Kind) Static() bool {
	return k == KindPlatform || k == KindBrick || k == KindFlag
}

// Entity sizes in pixels.
const (
	BrickSize    = 2
	CoinSize     = 1
	PlayerWidth  = 2
	SmallHeight  = 3
	BigHeight    = 4
	EnemySize    = 2
	PowerUpSize  = 2
	FireballSize = 1
	FlagHeight   = 10
)

// Sprite is the state every entity shares. Entities are destroyed by clearing
// Active; the world reaps inactive entities once per tick.
type Sprite struct {
	X, Y    float64
	W, H    float64
	Color   core.RGB
	Active  bool
	Visible bool
}

func newSprite(x, y, w, h float64, c core.RGB) Sprite {
	return Sprite{X: x, Y: y, W: w, H: h, Color: c, Active: true, Visible: true}
}

// Base returns the shared sprite state.
func (s *Sprite) Base() *Sprite {
	return s
}

// Box returns the collision box.
func (s *Sprite) Box() core.Box {
	return core.Box{X: s.X, Y: s.Y, W: s.W, H: s.H}
}

// Tint returns the sprite's base draw color.
func (s *Sprite) Tint() core.RGB {
	return s.Color
}

// Bottom returns the y coordinate of the feet.
func (s *Sprite) Bottom() float64 {
	return s.Y + s.H
}

// Motion is the state of entities that move.
type Motion struct {
	VX, VY   float64
	OnGround bool
	Gravity  bool
}

// Entity is implemented by every variant in this package and nothing else.
type Entity interface {
	Kind() Kind
	Base() *Sprite
	entity()
}

// Collidable entities take part in overlap tests.
type Collidable interface {
	Box() core.Box
}

// Renderable entities are drawn as a solid box.
type Renderable interface {
	Kind() Kind
	Box() core.Box
	Tint() core.RGB
}

// Updatable entities advance their own state once per tick.
type Updatable interface {
	Update(env *Env)
}

// Env is what an entity sees of the world while updating.
type Env struct {
	DT      time.Duration
	GroundY float64
	WorldW  float64
	Gravity float64
	MaxFall float64
	Statics []Entity
}

// Platform is a one-way surface: it can be landed on from above and passed
// through from below and from the sides.
type Platform struct {
	Sprite
}

func (*Platform) Kind() Kind { return KindPlatform }
func (*Platform) entity()    {}

// NewPlatform creates a platform one pixel tall.
func NewPlatform(x, y, w float64, c core.RGB) *Platform {
	return &Platform{Sprite: newSprite(x, y, w, 1, c)}
}

// Brick is a solid block destroyed by a single hit from below.
type Brick struct {
	Sprite
	Hits int
}

func (*Brick) Kind() Kind { return KindBrick }
func (*Brick) entity()    {}

// NewBrick creates a brick.
func NewBrick(x, y float64, c core.RGB) *Brick {
	return &Brick{Sprite: newSprite(x, y, BrickSize, BrickSize, c)}
}

// Hit registers a hit from below. It returns true only for the hit that
// destroys the brick; hits on a destroyed brick are no-ops.
func (b *Brick) Hit() bool {
	if !b.Active {
		return false
	}
	b.Hits++
	b.Active = false
	return true
}

// Flag marks the end of the level.
type Flag struct {
	Sprite
}

func (*Flag) Kind() Kind { return KindFlag }
func (*Flag) entity()    {}

// NewFlag creates a flag pole whose foot stands at groundY.
func NewFlag(x, groundY float64, c core.RGB) *Flag {
	return &Flag{Sprite: newSprite(x, groundY-FlagHeight, 1, FlagHeight, c)}
}

// Coin is a floating collectible.
type Coin struct {
	Sprite
	Motion
	Points    int
	collected bool
}

func (*Coin) Kind() Kind { return KindCoin }
func (*Coin) entity()    {}

// NewCoin creates a coin worth points.
func NewCoin(x, y float64, points int, c core.RGB) *Coin {
	return &Coin{Sprite: newSprite(x, y, CoinSize, CoinSize, c), Points: points}
}

// Collect deactivates the coin and returns its points. Collecting an already
// collected coin returns 0.
func (c *Coin) Collect() int {
	if c.collected {
		return 0
	}
	c.collected = true
	c.Active = false
	return c.Points
}

// Collected reports whether the coin has been taken.
func (c *Coin) Collected() bool {
	return c.collected
}

// Update is a no-op; coins float in place.
func (c *Coin) Update(*Env) {}

// PowerUpType distinguishes power-up items.
type PowerUpType int

const (
	Mushroom PowerUpType = iota // small -> big
	Flower                      // -> fire
)

// String returns the name of the power-up.
func (t PowerUpType) String() string {
	switch t {
	case Mushroom:
		return "mushroom"
	case Flower:
		return "flower"
	default:
		return "unknown"
	}
}

// PowerUp is a collectible that changes the player's power state.
type PowerUp struct {
	Sprite
	Motion
	Type      PowerUpType
	Points    int
	collected bool
}

func (*PowerUp) Kind() Kind { return KindPowerUp }
func (*PowerUp) entity()    {}

// NewPowerUp creates a power-up resting on whatever is below it.
func NewPowerUp(x, y float64, t PowerUpType, points int, c core.RGB) *PowerUp {
	return &PowerUp{
		Sprite: newSprite(x, y, PowerUpSize, PowerUpSize, c),
		Motion: Motion{Gravity: true},
		Type:   t,
		Points: points,
	}
}

// Collect deactivates the power-up and returns its points, or 0 if already taken.
func (p *PowerUp) Collect() int {
	if p.collected {
		return 0
	}
	p.collected = true
	p.Active = false
	return p.Points
}

// Update lets the power-up fall onto the ground or a surface.
func (p *PowerUp) Update(env *Env) {
	moveBody(&p.Sprite, &p.Motion, env)
}

// Enemy patrols left and right, reversing at walls and world edges.
type Enemy struct {
	Sprite
	Motion
	Dir     int
	Speed   float64
	Points  int
	stomped bool
}

func (*Enemy) Kind() Kind { return KindEnemy }
func (*Enemy) entity()    {}

// NewEnemy creates an enemy walking left.
func NewEnemy(x, y, speed float64, points int, c core.RGB) *Enemy {
	return &Enemy{
		Sprite: newSprite(x, y, EnemySize, EnemySize, c),
		Motion: Motion{Gravity: true},
		Dir:    -1,
		Speed:  speed,
		Points: points,
	}
}

// Stomp destroys the enemy and returns its points. A second stomp returns 0.
func (e *Enemy) Stomp() int {
	if e.stomped || !e.Active {
		return 0
	}
	e.stomped = true
	e.Active = false
	return e.Points
}

// Update walks the enemy and turns it around when blocked.
func (e *Enemy) Update(env *Env) {
	e.VX = e.Speed * float64(e.Dir)
	if moveBody(&e.Sprite, &e.Motion, env) {
		e.Dir = -e.Dir
	}
}

// Fireball travels straight in the direction it was thrown.
type Fireball struct {
	Sprite
	Motion
	Age      time.Duration
	Lifetime time.Duration
}

func (*Fireball) Kind() Kind { return KindFireball }
func (*Fireball) entity()    {}

// NewFireball creates a fireball moving at vx pixels per tick.
func NewFireball(x, y, vx float64, lifetime time.Duration, c core.RGB) *Fireball {
	return &Fireball{
		Sprite:   newSprite(x, y, FireballSize, FireballSize, c),
		Motion:   Motion{VX: vx},
		Lifetime: lifetime,
	}
}

// Update moves the fireball. It burns out after its lifetime, at the world
// edges and on contact with any solid surface.
func (f *Fireball) Update(env *Env) {
	f.Age += env.DT
	if f.Age >= f.Lifetime {
		f.Active = false
		return
	}
	f.X += f.VX
	if f.X < 0 || f.X+f.W > env.WorldW {
		f.Active = false
		return
	}
	box := f.Box()
	for _, s := range env.Statics {
		if s.Kind() == KindFlag {
			continue
		}
		base := s.Base()
		if base.Active && box.Intersects(base.Box()) {
			f.Active = false
			return
		}
	}
}

var (
	_ Updatable = (*Coin)(nil)
	_ Updatable = (*PowerUp)(nil)
	_ Updatable = (*Enemy)(nil)
	_ Updatable = (*Fireball)(nil)
	_ Entity    = (*Player)(nil)
)
