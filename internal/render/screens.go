package render

import (
	"time"

	"github.com/Murat2283plus/maliao/internal/core"
	"github.com/Murat2283plus/maliao/internal/registry"
)

// rainbow is the seven-color cycle used by the rainbow pattern and the
// level-complete celebration.
var rainbow = []core.RGB{
	core.Red, core.Orange, core.Yellow, core.Green, core.Cyan, core.Blue, core.Purple,
}

// celebrationStep is how often the celebration rainbow shifts by one pixel.
const celebrationStep = 100 * time.Millisecond

// RenderGameOver draws the game-over screen: a dark red field crossed by a
// black X.
func (r *Renderer) RenderGameOver() *core.Frame {
	f := r.Blank(r.palette.GameOver.RGB())
	if r.width < 2 {
		return f
	}
	for x := range r.width {
		y := x * (r.height - 1) / (r.width - 1)
		f.Set(x, y, core.Black)
		f.Set(x, r.height-1-y, core.Black)
	}
	return f
}

// RenderCelebration draws a diagonal rainbow that scrolls with elapsed time.
func (r *Renderer) RenderCelebration(elapsed time.Duration) *core.Frame {
	f := core.NewFrame(r.width, r.height)
	shift := int(elapsed / celebrationStep)
	for y := range r.height {
		for x := range r.width {
			f.Set(x, y, rainbow[(x+y+shift)%len(rainbow)])
		}
	}
	return f
}

// RenderPattern draws a registered test pattern by ID.
func (r *Renderer) RenderPattern(id string) (*core.Frame, error) {
	p, err := registry.Create(id)
	if err != nil {
		return nil, err
	}
	f := core.NewFrame(r.width, r.height)
	p.Draw(f)
	return f, nil
}
