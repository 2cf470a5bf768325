// Package core provides the fundamental types shared by the simulation, the
// renderer and the transmission pipeline: pixel frames, colors, geometry and
// input snapshots. It has no third-party dependencies so game logic stays pure
// and testable.
package core

import "math"

// Rect represents an integer axis-aligned bounding box in pixel space.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge (exclusive).
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge (exclusive).
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Intersects returns true if this rectangle overlaps with another.
// Touching edges do not count as overlap.
func (r Rect) Intersects(other Rect) bool {
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Clip returns the part of r that lies inside a w×h canvas anchored at the origin.
// The result has zero width or height when r is entirely outside.
func (r Rect) Clip(w, h int) Rect {
	x0 := Clamp(r.X, 0, w)
	y0 := Clamp(r.Y, 0, h)
	x1 := Clamp(r.Right(), 0, w)
	y1 := Clamp(r.Bottom(), 0, h)
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Empty reports whether the rectangle covers no pixels.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Box is a sub-pixel bounding box used by moving entities.
// Positions are floats so velocities below one pixel per tick accumulate.
type Box struct {
	X, Y float64
	W, H float64
}

// Right returns the x-coordinate of the right edge.
func (b Box) Right() float64 {
	return b.X + b.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (b Box) Bottom() float64 {
	return b.Y + b.H
}

// Intersects returns true if the boxes overlap with positive area.
func (b Box) Intersects(other Box) bool {
	if b.X >= other.Right() || other.X >= b.Right() {
		return false
	}
	if b.Y >= other.Bottom() || other.Y >= b.Bottom() {
		return false
	}
	return true
}

// Union returns the smallest box containing both b and other.
func (b Box) Union(other Box) Box {
	x0 := math.Min(b.X, other.X)
	y0 := math.Min(b.Y, other.Y)
	x1 := math.Max(b.Right(), other.Right())
	y1 := math.Max(b.Bottom(), other.Bottom())
	return Box{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Rect snaps the box to the pixel grid by flooring its position.
func (b Box) Rect() Rect {
	return NewRect(int(math.Floor(b.X)), int(math.Floor(b.Y)), int(math.Round(b.W)), int(math.Round(b.H)))
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
