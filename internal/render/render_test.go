package render

import (
	"testing"
	"time"

	"github.com/Murat2283plus/maliao/internal/config"
	"github.com/Murat2283plus/maliao/internal/core"
	"github.com/Murat2283plus/maliao/internal/games/mario"
	"github.com/Murat2283plus/maliao/internal/registry"
)

const tick = time.Second / 30

func newTestWorld(t *testing.T, hud bool) (*Renderer, *mario.World, config.Config) {
	t.Helper()
	cfg := config.Default()
	cfg.HUD.Enabled = hud
	w := mario.NewWorld(cfg)
	w.Clear()
	return New(cfg), w, cfg
}

func TestFrameDimensionsEveryTick(t *testing.T) {
	cfg := config.Default()
	r := New(cfg)
	w := mario.NewWorld(cfg)

	for i := range 300 {
		w.Step(core.Input{Right: true, Jump: i%15 == 0, Attack: i%7 == 0}, tick)
		f := r.Render(w)
		if f.Width() != cfg.Display.Width || f.Height() != cfg.Display.Height {
			t.Fatalf("tick %d: frame is %dx%d, expected %dx%d", i, f.Width(), f.Height(), cfg.Display.Width, cfg.Display.Height)
		}
		if got := len(f.Bytes()); got != cfg.Display.PacketSize() {
			t.Fatalf("tick %d: Bytes() has %d bytes, expected %d", i, got, cfg.Display.PacketSize())
		}
	}
}

func TestRenderIsPure(t *testing.T) {
	r, w, cfg := newTestWorld(t, true)
	w.Add(mario.NewCoin(10, 10, 100, cfg.Palette.Coin.RGB()))
	p := w.Player()
	p.VX = 0.5
	p.Invincible = 150 * time.Millisecond

	before := *p
	a := r.Render(w)
	b := r.Render(w)

	if *p != before {
		t.Error("Render() modified the player")
	}
	if !a.Equal(b) {
		t.Error("two renders of the same world differ")
	}
}

func TestGroundAndSky(t *testing.T) {
	r, w, cfg := newTestWorld(t, false)
	w.Player().Visible = false
	f := r.Render(w)
	gy := cfg.GroundY()

	if got := f.At(20, 0); got != cfg.Palette.Sky.RGB() {
		t.Errorf("sky pixel = %v, expected %v", got, cfg.Palette.Sky.RGB())
	}
	if got := f.At(20, gy); got != cfg.Palette.Grass.RGB() {
		t.Errorf("ground line = %v, expected grass %v", got, cfg.Palette.Grass.RGB())
	}
	if got := f.At(20, cfg.Display.Height-1); got != cfg.Palette.Ground.RGB() {
		t.Errorf("bottom row = %v, expected ground %v", got, cfg.Palette.Ground.RGB())
	}
}

func TestLayerOrder(t *testing.T) {
	r, w, cfg := newTestWorld(t, false)
	p := w.Player()

	// A coin, an enemy and the player all cover the player's top-left pixel.
	coin := mario.NewCoin(p.X, p.Y, 100, cfg.Palette.Coin.RGB())
	enemy := mario.NewEnemy(p.X, p.Y, 0, 200, cfg.Palette.Enemy.RGB())
	brick := mario.NewBrick(p.X+10, 5, cfg.Palette.Brick.RGB())
	plat := mario.NewPlatform(p.X+10, 5, 4, cfg.Palette.Platform.RGB())
	// Added in reverse layer order.
	w.Add(enemy)
	w.Add(coin)
	w.Add(brick)
	w.Add(plat)

	f := r.Render(w)
	x, y := int(p.X)-w.Camera(), int(p.Y)
	if got, want := f.At(x, y), PlayerColor(p, cfg.Palette); got != want {
		t.Errorf("player pixel = %v, expected player color %v", got, want)
	}

	p.Visible = false
	f = r.Render(w)
	if got := f.At(x, y); got != cfg.Palette.Enemy.RGB() {
		t.Errorf("enemy should cover the coin, got %v", got)
	}
	bx := int(brick.X) - w.Camera()
	if got := f.At(bx, 5); got != cfg.Palette.Brick.RGB() {
		t.Errorf("brick should cover the platform, got %v", got)
	}

	if Layer(mario.KindPlatform) >= Layer(mario.KindBrick) ||
		Layer(mario.KindBrick) >= Layer(mario.KindCoin) ||
		Layer(mario.KindCoin) >= Layer(mario.KindEnemy) ||
		Layer(mario.KindEnemy) >= Layer(mario.KindPlayer) {
		t.Error("layers must increase platform < brick < coin < enemy < player")
	}
}

func TestCameraOffsetAndClipping(t *testing.T) {
	r, w, cfg := newTestWorld(t, false)
	p := w.Player()
	p.X = 60
	w.Step(core.Input{}, tick)
	cam := w.Camera()
	if cam == 0 {
		t.Fatal("camera should have scrolled")
	}

	// Half of this brick hangs off the left edge of the viewport.
	brick := mario.NewBrick(float64(cam-1), 4, cfg.Palette.Brick.RGB())
	w.Add(brick)
	f := r.Render(w)

	if got := f.At(0, 4); got != cfg.Palette.Brick.RGB() {
		t.Errorf("visible half of the brick = %v, expected %v", got, cfg.Palette.Brick.RGB())
	}
	if got := f.At(1, 4); got == cfg.Palette.Brick.RGB() {
		t.Error("brick drawn wider than its visible part")
	}
	if got := f.At(int(p.X)-cam, int(p.Y)); got != PlayerColor(p, cfg.Palette) {
		t.Errorf("player not drawn at its screen position, got %v", got)
	}
}

func TestPlayerColor(t *testing.T) {
	pal := config.Default().Palette
	p := mario.NewPlayer(config.Default())

	tests := []struct {
		name       string
		state      mario.PowerState
		vx         float64
		frame      int
		invincible time.Duration
		want       core.RGB
	}{
		{"small standing", mario.Small, 0, 0, 0, pal.MarioSmall.RGB()},
		{"big standing", mario.Big, 0, 0, 0, pal.MarioBig.RGB()},
		{"fire standing", mario.Fire, 0, 0, 0, pal.MarioFire.RGB()},
		{"walking frame 1", mario.Small, 1, 1, 0, pal.MarioSmall.RGB()},
		{"walking frame 0", mario.Small, 1, 0, 0, pal.MarioSmall.RGB().Darken(30)},
		{"flash on", mario.Big, 0, 0, 150 * time.Millisecond, pal.Flash.RGB()},
		{"flash off", mario.Big, 0, 0, 250 * time.Millisecond, pal.MarioBig.RGB()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p.State = tt.state
			p.VX = tt.vx
			p.AnimFrame = tt.frame
			p.Invincible = tt.invincible
			if got := PlayerColor(p, pal); got != tt.want {
				t.Errorf("PlayerColor() = %v, expected %v", got, tt.want)
			}
		})
	}
}

func TestCoinBlink(t *testing.T) {
	r, w, cfg := newTestWorld(t, false)
	w.Player().Visible = false
	coin := mario.NewCoin(10, 10, 100, cfg.Palette.Coin.RGB())
	w.Add(coin)

	if got := r.Render(w).At(10, 10); got != cfg.Palette.Coin.RGB() {
		t.Errorf("coin at t=0 = %v, expected %v", got, cfg.Palette.Coin.RGB())
	}
	for range 18 {
		w.Step(core.Input{}, tick)
	}
	if got := r.Render(w).At(10, 10); got != cfg.Palette.CoinBlink.RGB() {
		t.Errorf("coin at t=%v = %v, expected blink %v", w.Elapsed(), got, cfg.Palette.CoinBlink.RGB())
	}
}

func TestHUD(t *testing.T) {
	r, w, cfg := newTestWorld(t, true)
	w.Player().Visible = false
	w.Add(mario.NewCoin(w.Player().X, w.Player().Y, 100, cfg.Palette.Coin.RGB()))
	w.Step(core.Input{}, tick)
	f := r.Render(w)

	lives := cfg.Palette.Lives.RGB()
	for i := range 3 {
		if got := f.At(i*2, 0); got != lives {
			t.Errorf("life dot %d = %v, expected %v", i, got, lives)
		}
	}
	if got := f.At(6, 0); got == lives {
		t.Error("drew a fourth life dot for three lives")
	}

	// "100": the last glyph is a 0 whose right column is lit on every row.
	score := cfg.Palette.Score.RGB()
	right := cfg.Display.Width - 1
	for row := range glyphH {
		if got := f.At(right, scoreY+row); got != score {
			t.Errorf("score pixel (%d,%d) = %v, expected %v", right, scoreY+row, got, score)
		}
	}
	// Hollow centre of the 0.
	if got := f.At(right-1, scoreY+2); got == score {
		t.Error("centre of the 0 glyph should be unlit")
	}
}

func TestPlayerDrawnOverHUD(t *testing.T) {
	r, w, cfg := newTestWorld(t, true)
	p := w.Player()
	p.Grow(cfg.Palette)
	p.X, p.Y, p.VX = 0, 0, 0

	want := PlayerColor(p, cfg.Palette)
	if want == cfg.Palette.Lives.RGB() {
		t.Fatal("player and life dot colors must differ for this test")
	}
	f := r.Render(w)
	if got := f.At(0, 0); got != want {
		t.Errorf("pixel under the first life dot = %v, expected player color %v", got, want)
	}
}

func TestDrawNumber(t *testing.T) {
	f := core.NewFrame(12, 6)
	drawNumber(f, 7, f.W, 0, core.White)

	// 7 is a full top row then a right column.
	for col := 9; col < 12; col++ {
		if f.At(col, 0) != core.White {
			t.Errorf("top row of 7 missing at x=%d", col)
		}
	}
	for row := 1; row < glyphH; row++ {
		if f.At(11, row) != core.White || f.At(9, row) == core.White {
			t.Errorf("row %d of 7 is wrong", row)
		}
	}
}

func TestGameOverScreen(t *testing.T) {
	cfg := config.Default()
	r := New(cfg)
	f := r.RenderGameOver()
	w, h := cfg.Display.Width, cfg.Display.Height

	for _, pt := range [][2]int{{0, 0}, {w - 1, h - 1}, {0, h - 1}, {w - 1, 0}} {
		if got := f.At(pt[0], pt[1]); got != core.Black {
			t.Errorf("corner %v = %v, expected black", pt, got)
		}
	}
	if got := f.At(w/2, 2); got != cfg.Palette.GameOver.RGB() {
		t.Errorf("background = %v, expected %v", got, cfg.Palette.GameOver.RGB())
	}
}

func TestCelebrationScrolls(t *testing.T) {
	r := New(config.Default())
	a := r.RenderCelebration(0)
	b := r.RenderCelebration(celebrationStep)

	if a.At(0, 0) != rainbow[0] {
		t.Errorf("celebration origin = %v, expected %v", a.At(0, 0), rainbow[0])
	}
	if b.At(0, 0) != a.At(1, 0) {
		t.Error("celebration should shift by one pixel per step")
	}
}

func TestPatterns(t *testing.T) {
	want := []string{
		PatternBlack, PatternBorder, PatternCheckerboard, PatternRainbow,
		PatternSolidBlue, PatternSolidGreen, PatternSolidRed,
	}
	ids := registry.IDs()
	if len(ids) != len(want) {
		t.Fatalf("registry.IDs() = %v, expected %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("IDs()[%d] = %q, expected %q", i, ids[i], want[i])
		}
	}

	r := New(config.Default())
	w, h := r.Size()
	tests := []struct {
		id   string
		x, y int
		want core.RGB
	}{
		{PatternCheckerboard, 0, 0, core.White},
		{PatternCheckerboard, 1, 0, core.Black},
		{PatternRainbow, 3, 0, core.Green},
		{PatternRainbow, 3, 4, core.Red},
		{PatternSolidRed, 5, 5, core.Red},
		{PatternSolidGreen, 5, 5, core.Green},
		{PatternSolidBlue, 5, 5, core.Blue},
		{PatternBlack, 5, 5, core.Black},
		{PatternBorder, 0, 0, core.White},
		{PatternBorder, 1, 1, core.Red},
		{PatternBorder, w - 2, 1, core.Green},
		{PatternBorder, w - 2, h - 2, core.Yellow},
		{PatternBorder, 1, h - 2, core.Blue},
		{PatternBorder, w / 2, h / 2, core.Red},
	}
	for _, tt := range tests {
		f, err := r.RenderPattern(tt.id)
		if err != nil {
			t.Fatalf("RenderPattern(%q) error = %v", tt.id, err)
		}
		if got := f.At(tt.x, tt.y); got != tt.want {
			t.Errorf("%s at (%d,%d) = %v, expected %v", tt.id, tt.x, tt.y, got, tt.want)
		}
	}

	if _, err := r.RenderPattern("plaid"); err == nil {
		t.Error("RenderPattern() with an unknown ID should fail")
	}
}
