package render

import (
	"strconv"

	"github.com/Murat2283plus/maliao/internal/config"
	"github.com/Murat2283plus/maliao/internal/core"
)

// HUD layout.
const (
	maxLifeDots = 5
	glyphW      = 3
	glyphH      = 5
	scoreY      = 1
)

// font is a 3x5 digit font. Each row is three bits, most significant on the left.
var font = [10][glyphH]uint8{
	{7, 5, 5, 5, 7}, // 0
	{2, 6, 2, 2, 7}, // 1
	{7, 1, 7, 4, 7}, // 2
	{7, 1, 7, 1, 7}, // 3
	{5, 5, 7, 1, 1}, // 4
	{7, 4, 7, 1, 7}, // 5
	{7, 4, 7, 5, 7}, // 6
	{7, 1, 1, 1, 1}, // 7
	{7, 5, 7, 5, 7}, // 8
	{7, 5, 7, 1, 7}, // 9
}

// drawHUD draws one dot per life on the top row and the score right-aligned below it.
func drawHUD(dst *core.Frame, lives, score int, palette config.Palette) {
	for i := range min(lives, maxLifeDots) {
		dst.Set(i*2, 0, palette.Lives.RGB())
	}
	drawNumber(dst, score, dst.W, scoreY, palette.Score.RGB())
}

// drawNumber draws n with its last digit ending just left of right.
// Negative numbers are drawn as 0.
func drawNumber(dst *core.Frame, n, right, y int, c core.RGB) {
	s := strconv.Itoa(max(n, 0))
	x := right - len(s)*(glyphW+1) + 1
	for _, ch := range s {
		drawDigit(dst, int(ch-'0'), x, y, c)
		x += glyphW + 1
	}
}

// drawDigit draws a single glyph with its top-left corner at (x, y).
func drawDigit(dst *core.Frame, d, x, y int, c core.RGB) {
	for row, bits := range font[d] {
		for col := range glyphW {
			if bits&(1<<(glyphW-1-col)) != 0 {
				dst.Set(x+col, y+row, c)
			}
		}
	}
}
