// Package render rasterizes the game into LED matrix frames.
//
// Rendering is a pure function of the world: the renderer only reads entity
// state through View and never writes back, so the same world always yields
// the same frame.
package render

import (
	"cmp"
	"slices"
	"time"

	"github.com/Murat2283plus/maliao/internal/config"
	"github.com/Murat2283plus/maliao/internal/core"
	"github.com/Murat2283plus/maliao/internal/games/mario"
)

// View is the part of a world the renderer reads.
type View interface {
	Camera() int
	Visible() []mario.Entity
	Player() *mario.Player
	GroundY() int
	Elapsed() time.Duration
	Score() int
}

// layers orders entity kinds back to front. The player is always drawn last.
var layers = [...]int{
	mario.KindPlatform: 1,
	mario.KindBrick:    2,
	mario.KindFlag:     2,
	mario.KindCoin:     3,
	mario.KindPowerUp:  3,
	mario.KindEnemy:    4,
	mario.KindFireball: 4,
	mario.KindPlayer:   5,
}

// Layer returns the draw layer of a kind; lower layers are drawn first.
func Layer(k mario.Kind) int {
	if int(k) < 0 || int(k) >= len(layers) {
		return 0
	}
	return layers[k]
}

// coinBlink is the period of the coin shimmer.
const coinBlink = 500 * time.Millisecond

// Renderer draws worlds and screens at a fixed matrix size.
type Renderer struct {
	width   int
	height  int
	palette config.Palette
	hud     bool
}

// New creates a renderer for the configured display.
func New(cfg config.Config) *Renderer {
	return &Renderer{
		width:   cfg.Display.Width,
		height:  cfg.Display.Height,
		palette: cfg.Palette,
		hud:     cfg.HUD.Enabled,
	}
}

// Size returns the frame dimensions.
func (r *Renderer) Size() (width, height int) {
	return r.width, r.height
}

// Blank returns a frame of the given color.
func (r *Renderer) Blank(c core.RGB) *core.Frame {
	f := core.NewFrame(r.width, r.height)
	f.Fill(c)
	return f
}

// Render draws the world into a new frame.
func (r *Renderer) Render(v View) *core.Frame {
	f := core.NewFrame(r.width, r.height)
	r.RenderTo(f, v)
	return f
}

// RenderTo overwrites dst with the world: sky, ground, entities by layer,
// the HUD and finally the player.
func (r *Renderer) RenderTo(dst *core.Frame, v View) {
	dst.Fill(r.palette.Sky.RGB())
	r.drawGround(dst, v.GroundY())

	ents := slices.Clone(v.Visible())
	slices.SortStableFunc(ents, func(a, b mario.Entity) int {
		return cmp.Compare(Layer(a.Kind()), Layer(b.Kind()))
	})

	cam := v.Camera()
	for _, e := range ents {
		s, ok := e.(mario.Renderable)
		if !ok || e.Kind() == mario.KindPlayer {
			continue
		}
		r.drawSprite(dst, s, cam, r.entityColor(s, v.Elapsed()))
	}

	p := v.Player()
	if r.hud {
		lives := 0
		if p != nil {
			lives = p.Lives
		}
		drawHUD(dst, lives, v.Score(), r.palette)
	}

	// The player goes on top of everything, the HUD included.
	if p != nil && p.Active && p.Visible {
		r.drawSprite(dst, p, cam, PlayerColor(p, r.palette))
	}
}

// drawGround fills everything below the ground line and tops it with grass.
func (r *Renderer) drawGround(dst *core.Frame, groundY int) {
	dst.FillRect(core.NewRect(0, groundY, dst.W, dst.H-groundY), r.palette.Ground.RGB())
	dst.DrawHLine(0, groundY, dst.W, r.palette.Grass.RGB())
}

// drawSprite fills the sprite's pixel box shifted by the camera. FillRect
// clips, so sprites partly off screen are cut at the edge.
func (r *Renderer) drawSprite(dst *core.Frame, s mario.Renderable, camera int, c core.RGB) {
	rect := s.Box().Rect()
	rect.X -= camera
	dst.FillRect(rect, c)
}

// entityColor returns the draw color of a non-player entity.
func (r *Renderer) entityColor(e mario.Renderable, elapsed time.Duration) core.RGB {
	if e.Kind() == mario.KindCoin && (elapsed/coinBlink)%2 == 1 {
		return r.palette.CoinBlink.RGB()
	}
	return e.Tint()
}

// PlayerColor returns the player's draw color: flashing while invincible and
// shaded on alternate walk frames while moving.
func PlayerColor(p *mario.Player, palette config.Palette) core.RGB {
	if p.IsInvincible() && int(p.Invincible.Seconds()*10)%2 == 1 {
		return palette.Flash.RGB()
	}
	base := mario.StateColor(p.State, palette)
	if p.VX != 0 && p.AnimFrame != 1 {
		return base.Darken(30)
	}
	return base
}
