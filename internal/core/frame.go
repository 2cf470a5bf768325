package core

// Frame is a fixed W×H grid of RGB pixels, the unit of rendering and transmission.
// Pixels are stored row-major so Bytes can flatten them without reordering.
type Frame struct {
	W   int
	H   int
	Pix []RGB
}

// NewFrame creates a black frame with the given dimensions.
func NewFrame(width, height int) *Frame {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Frame{
		W:   width,
		H:   height,
		Pix: make([]RGB, width*height),
	}
}

// Width returns the frame width in pixels.
func (f *Frame) Width() int {
	return f.W
}

// Height returns the frame height in pixels.
func (f *Frame) Height() int {
	return f.H
}

// Fill paints every pixel with the given color.
func (f *Frame) Fill(c RGB) {
	for i := range f.Pix {
		f.Pix[i] = c
	}
}

// Set paints a single pixel.
// Out-of-bounds coordinates are silently ignored.
func (f *Frame) Set(x, y int, c RGB) {
	if x < 0 || x >= f.W || y < 0 || y >= f.H {
		return
	}
	f.Pix[y*f.W+x] = c
}

// At returns the pixel at the given position.
// Returns black for out-of-bounds coordinates.
func (f *Frame) At(x, y int) RGB {
	if x < 0 || x >= f.W || y < 0 || y >= f.H {
		return Black
	}
	return f.Pix[y*f.W+x]
}

// FillRect fills a rectangular area, clipped to the frame.
func (f *Frame) FillRect(r Rect, c RGB) {
	clip := r.Clip(f.W, f.H)
	if clip.Empty() {
		return
	}
	for y := clip.Y; y < clip.Bottom(); y++ {
		row := f.Pix[y*f.W : (y+1)*f.W]
		for x := clip.X; x < clip.Right(); x++ {
			row[x] = c
		}
	}
}

// DrawHLine draws a horizontal line from (x, y) with the given length.
func (f *Frame) DrawHLine(x, y, length int, c RGB) {
	f.FillRect(NewRect(x, y, length, 1), c)
}

// DrawVLine draws a vertical line from (x, y) with the given length.
func (f *Frame) DrawVLine(x, y, length int, c RGB) {
	f.FillRect(NewRect(x, y, 1, length), c)
}

// Row returns the pixels of row y. The slice aliases the frame.
// Returns nil for out-of-range rows.
func (f *Frame) Row(y int) []RGB {
	if y < 0 || y >= f.H {
		return nil
	}
	return f.Pix[y*f.W : (y+1)*f.W]
}

// Bytes flattens the frame row-major into R, G, B bytes with no padding.
func (f *Frame) Bytes() []byte {
	out := make([]byte, 0, len(f.Pix)*3)
	for _, p := range f.Pix {
		out = append(out, p.R, p.G, p.B)
	}
	return out
}

// Equal reports whether two frames have the same size and pixels.
func (f *Frame) Equal(other *Frame) bool {
	if f == nil || other == nil {
		return f == other
	}
	if f.W != other.W || f.H != other.H || len(f.Pix) != len(other.Pix) {
		return false
	}
	for i := range f.Pix {
		if f.Pix[i] != other.Pix[i] {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the frame.
func (f *Frame) Clone() *Frame {
	c := &Frame{W: f.W, H: f.H, Pix: make([]RGB, len(f.Pix))}
	copy(c.Pix, f.Pix)
	return c
}

// String renders the frame as one character per pixel, '#' for lit and '.' for
// black. Handy for debugging and golden tests.
func (f *Frame) String() string {
	buf := make([]byte, 0, (f.W+1)*f.H)
	for y := 0; y < f.H; y++ {
		if y > 0 {
			buf = append(buf, '\n')
		}
		for _, p := range f.Row(y) {
			if p == Black {
				buf = append(buf, '.')
			} else {
				buf = append(buf, '#')
			}
		}
	}
	return string(buf)
}
