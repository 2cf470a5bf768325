package core

import "fmt"

// RGB is one pixel of the LED matrix, 8 bits per channel.
type RGB struct {
	R, G, B uint8
}

// Basic colors used by test patterns and the HUD.
var (
	Black   = RGB{0, 0, 0}
	White   = RGB{255, 255, 255}
	Red     = RGB{255, 0, 0}
	Green   = RGB{0, 255, 0}
	Blue    = RGB{0, 0, 255}
	Yellow  = RGB{255, 255, 0}
	Orange  = RGB{255, 165, 0}
	Cyan    = RGB{0, 255, 255}
	Purple  = RGB{128, 0, 128}
	Magenta = RGB{255, 0, 255}
)

// Darken subtracts delta from every channel, saturating at zero.
func (c RGB) Darken(delta uint8) RGB {
	sub := func(v uint8) uint8 {
		if v < delta {
			return 0
		}
		return v - delta
	}
	return RGB{sub(c.R), sub(c.G), sub(c.B)}
}

// Hex returns the color as a "#rrggbb" string.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// String implements fmt.Stringer.
func (c RGB) String() string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
}
