package mario

import (
	"time"

	"github.com/Murat2283plus/maliao/internal/config"
	"github.com/Murat2283plus/maliao/internal/core"
)

// State is a read-only summary of the world after a tick.
type State struct {
	Tick          uint64
	Level         int
	Score         int
	Lives         int
	Power         PowerState
	Camera        int
	GameOver      bool
	LevelComplete bool
}

// StepResult reports what happened during one tick.
type StepResult struct {
	State          State
	BricksHit      int
	CoinsCollected int
	PowerUps       int
	Stomps         int
	FireballKills  int
	Damage         DamageResult
}

// World owns the player and every other entity of the running level.
type World struct {
	cfg        config.Config
	difficulty *config.DifficultyManager

	player   *Player
	statics  []Entity
	dynamics []Entity

	camera        int
	score         int
	level         int
	tick          uint64
	elapsed       time.Duration
	gameOver      bool
	levelComplete bool
	attackHeld    bool
}

// NewWorld creates a world at level 1 from the configuration.
func NewWorld(cfg config.Config) *World {
	w := &World{
		cfg:        cfg,
		difficulty: config.NewDifficultyManager(cfg.Progression),
	}
	w.Reset()
	return w
}

// Reset rebuilds the world from scratch: level 1, full lives, zero score.
func (w *World) Reset() {
	w.player = NewPlayer(w.cfg)
	w.score = 0
	w.level = 1
	w.tick = 0
	w.elapsed = 0
	w.gameOver = false
	w.attackHeld = false
	w.load()
}

// NextLevel starts the following level. Score, lives and power state carry
// over; enemies get faster.
func (w *World) NextLevel() {
	w.level++
	w.player.placeAtSpawn()
	w.attackHeld = false
	w.load()
}

// load places the level's entities for the current level number.
func (w *World) load() {
	lvl := BuildLevel(w.cfg, w.difficulty.Speed(w.cfg.Physics.EnemySpeed, w.level))
	w.statics = lvl.Statics
	w.dynamics = lvl.Dynamics
	w.levelComplete = false
	w.updateCamera()
}

// env returns what entities see of the world this tick.
func (w *World) env(dt time.Duration) *Env {
	return &Env{
		DT:      dt,
		GroundY: float64(w.cfg.GroundY()),
		WorldW:  float64(w.cfg.Game.WorldWidth),
		Gravity: w.cfg.Physics.Gravity,
		MaxFall: w.cfg.Physics.MaxFallSpeed,
		Statics: w.statics,
	}
}

// Step advances the world by one tick. Once the game is over or the level is
// complete the world is frozen until Reset or NextLevel.
func (w *World) Step(in core.Input, dt time.Duration) StepResult {
	var res StepResult
	if w.gameOver || w.levelComplete {
		res.State = w.State()
		return res
	}
	w.tick++
	w.elapsed += dt
	env := w.env(dt)

	p := w.player
	prev := p.Box()
	p.Update(in, env)
	if in.Attack && !w.attackHeld {
		w.throwFireball()
	}
	w.attackHeld = in.Attack

	for _, d := range w.dynamics {
		if u, ok := d.(Updatable); ok && d.Base().Active {
			u.Update(env)
		}
	}

	// Both passes judge the player by where it was and how far it moved
	// vertically this tick, before any collision adjusted it.
	vy := p.Y - prev.Y
	w.collideStatics(prev, vy, &res)
	w.collideDynamics(prev, vy, &res)
	w.burnEnemies(&res)
	w.reap()

	if !p.Active {
		w.gameOver = true
	}
	w.updateCamera()

	res.State = w.State()
	return res
}

// throwFireball launches a fireball from the front of a fire-state player at
// waist height.
func (w *World) throwFireball() {
	p := w.player
	if !p.Active || p.State != Fire {
		return
	}
	alive := 0
	for _, d := range w.dynamics {
		if d.Kind() == KindFireball && d.Base().Active {
			alive++
		}
	}
	if alive >= w.cfg.Game.MaxFireballs {
		return
	}
	x := p.X + p.W
	if p.Dir < 0 {
		x = p.X - FireballSize
	}
	fb := NewFireball(x, p.Y+p.H/2, float64(p.Dir)*w.cfg.Physics.FireballSpeed,
		w.cfg.Game.FireballLifetime, w.cfg.Palette.Fireball.RGB())
	w.dynamics = append(w.dynamics, fb)
}

// collideStatics resolves the player against platforms, bricks and the flag.
func (w *World) collideStatics(prev core.Box, vy float64, res *StepResult) {
	p := w.player
	if !p.Active {
		return
	}
	land := func(top float64) {
		p.Y = top - p.H
		p.VY = 0
		p.OnGround = true
	}
	for _, st := range w.statics {
		if !st.Base().Active {
			continue
		}
		cur := p.Box()
		switch s := st.(type) {
		case *Platform:
			if landsOn(prev, cur, vy, &s.Sprite) {
				land(s.Y)
			}
		case *Brick:
			switch {
			case vy < 0 && prev.Y >= s.Bottom()-eps && cur.Y < s.Bottom() && overlapX(cur, s.Box()):
				if s.Hit() {
					w.score += w.cfg.Game.Points.Brick
					res.BricksHit++
				}
				p.Y = s.Bottom()
				p.VY = 0
			case landsOn(prev, cur, vy, &s.Sprite):
				land(s.Y)
			case cur.Intersects(s.Box()):
				if pushOutX(&p.Sprite, prev, &s.Sprite) {
					p.VX = 0
				}
			}
		case *Flag:
			if cur.Intersects(s.Box()) {
				w.levelComplete = true
			}
		}
	}
}

// collideDynamics resolves the player against coins, power-ups and enemies.
func (w *World) collideDynamics(prev core.Box, vy float64, res *StepResult) {
	p := w.player
	pal := w.cfg.Palette
	for _, d := range w.dynamics {
		if !p.Active {
			return
		}
		c, ok := d.(Collidable)
		if !ok || !d.Base().Active || !touching(p, c) {
			continue
		}
		switch e := d.(type) {
		case *Coin:
			if pts := e.Collect(); pts > 0 {
				w.award(pts)
				res.CoinsCollected++
			}
		case *PowerUp:
			if pts := e.Collect(); pts > 0 {
				if e.Type == Flower {
					p.FirePower(pal)
				} else {
					p.Grow(pal)
				}
				w.award(pts)
				res.PowerUps++
			}
		case *Enemy:
			if w.stomps(prev, vy, e) {
				if pts := e.Stomp(); pts > 0 {
					w.award(pts)
					res.Stomps++
				}
				p.VY = -w.cfg.Physics.StompBounce
				p.OnGround = false
				continue
			}
			if dmg := p.TakeDamage(pal); dmg != DamageIgnored {
				res.Damage = dmg
				if dmg == DamageLifeLost || dmg == DamageDead {
					// The player has left the spot it was hit on.
					return
				}
			}
		}
	}
}

// stomps reports whether a player falling with vy lands on the enemy rather
// than running into it.
func (w *World) stomps(prev core.Box, vy float64, e *Enemy) bool {
	if vy <= 0 {
		return false
	}
	bottom := w.player.Bottom()
	return bottom <= e.Y+w.cfg.Physics.StompTolerance || prev.Bottom() <= e.Y+eps
}

// burnEnemies destroys every enemy touched by a fireball.
func (w *World) burnEnemies(res *StepResult) {
	for _, d := range w.dynamics {
		fb, ok := d.(*Fireball)
		if !ok || !fb.Active {
			continue
		}
		for _, o := range w.dynamics {
			e, ok := o.(*Enemy)
			if !ok || !e.Active || !touching(fb, e) {
				continue
			}
			if pts := e.Stomp(); pts > 0 {
				w.award(pts)
				res.FireballKills++
			}
			fb.Active = false
			break
		}
	}
}

// touching reports whether two boxes overlap.
func touching(a, b Collidable) bool {
	return a.Box().Intersects(b.Box())
}

// award adds points to the player and the world total.
func (w *World) award(points int) {
	w.player.AddScore(points)
	w.score += points
}

// reap drops inactive entities once every pass has finished.
func (w *World) reap() {
	w.statics = compact(w.statics)
	w.dynamics = compact(w.dynamics)
}

func compact(list []Entity) []Entity {
	kept := list[:0]
	for _, e := range list {
		if e.Base().Active {
			kept = append(kept, e)
		}
	}
	clear(list[len(kept):])
	return kept
}

// updateCamera centres the viewport on the player, clamped to the world.
func (w *World) updateCamera() {
	vw := w.cfg.Display.Width
	maxCam := max(0, w.cfg.Game.WorldWidth-vw)
	w.camera = core.Clamp(int(w.player.X)-vw/2, 0, maxCam)
}

// Camera returns the horizontal scroll offset.
func (w *World) Camera() int {
	return w.camera
}

// Player returns the player.
func (w *World) Player() *Player {
	return w.player
}

// Visible returns the active, visible entities overlapping the viewport,
// statics first. The player is not included.
func (w *World) Visible() []Entity {
	view := core.Box{X: float64(w.camera), W: float64(w.cfg.Display.Width), H: float64(w.cfg.Display.Height)}
	var out []Entity
	for _, list := range [][]Entity{w.statics, w.dynamics} {
		for _, e := range list {
			b := e.Base()
			if b.Active && b.Visible && view.Intersects(b.Box()) {
				out = append(out, e)
			}
		}
	}
	return out
}

// Statics returns the live static entities.
func (w *World) Statics() []Entity {
	return w.statics
}

// Dynamics returns the live dynamic entities.
func (w *World) Dynamics() []Entity {
	return w.dynamics
}

// Add places an extra entity in the world.
func (w *World) Add(e Entity) {
	if e.Kind().Static() {
		w.statics = append(w.statics, e)
		return
	}
	w.dynamics = append(w.dynamics, e)
}

// Clear removes every entity except the player.
func (w *World) Clear() {
	w.statics = nil
	w.dynamics = nil
}

// GroundY returns the y coordinate of the ground surface.
func (w *World) GroundY() int {
	return w.cfg.GroundY()
}

// Elapsed returns the simulated time since the world was reset.
func (w *World) Elapsed() time.Duration {
	return w.elapsed
}

// Tick returns the number of simulated ticks since the world was reset.
func (w *World) Tick() uint64 {
	return w.tick
}

// Score returns the cumulative score, including brick points.
func (w *World) Score() int {
	return w.score
}

// Level returns the current level number, starting at 1.
func (w *World) Level() int {
	return w.level
}

// GameOver reports whether the player has run out of lives.
func (w *World) GameOver() bool {
	return w.gameOver
}

// LevelComplete reports whether the player has reached the flag.
func (w *World) LevelComplete() bool {
	return w.levelComplete
}

// State returns a summary of the world.
func (w *World) State() State {
	return State{
		Tick:          w.tick,
		Level:         w.level,
		Score:         w.score,
		Lives:         w.player.Lives,
		Power:         w.player.State,
		Camera:        w.camera,
		GameOver:      w.gameOver,
		LevelComplete: w.levelComplete,
	}
}
