package core

import "testing"

func TestRectIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected bool
	}{
		{"overlapping", NewRect(0, 0, 4, 4), NewRect(2, 2, 4, 4), true},
		{"apart horizontally", NewRect(0, 0, 2, 3), NewRect(5, 0, 2, 3), false},
		{"touching edges", NewRect(0, 0, 2, 3), NewRect(2, 0, 2, 3), false},
		{"stacked touching", NewRect(0, 0, 2, 3), NewRect(0, 3, 2, 2), false},
		{"brick inside platform row", NewRect(0, 20, 36, 3), NewRect(10, 21, 2, 2), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Intersects(tc.a); got != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 2, 3)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"top-left", 10, 10, true},
		{"last pixel", 11, 12, true},
		{"right edge exclusive", 12, 10, false},
		{"bottom edge exclusive", 10, 13, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestRectClip(t *testing.T) {
	tests := []struct {
		name     string
		r        Rect
		expected Rect
	}{
		{"inside", NewRect(1, 1, 2, 2), NewRect(1, 1, 2, 2)},
		{"hangs off left", NewRect(-1, 0, 3, 2), NewRect(0, 0, 2, 2)},
		{"hangs off bottom-right", NewRect(35, 27, 4, 4), NewRect(35, 27, 1, 1)},
		{"fully outside", NewRect(40, 0, 2, 2), NewRect(36, 0, 0, 2)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.r.Clip(36, 28); got != tc.expected {
				t.Errorf("Clip() = %+v, expected %+v", got, tc.expected)
			}
		})
	}
}

func TestBoxIntersectsAndUnion(t *testing.T) {
	a := Box{X: 0.5, Y: 0, W: 2, H: 3}
	b := Box{X: 2.4, Y: 2.9, W: 2, H: 2}
	if !a.Intersects(b) {
		t.Error("Intersects() = false, expected true for sub-pixel overlap")
	}
	c := Box{X: 2.5, Y: 0, W: 1, H: 1}
	if a.Intersects(c) {
		t.Error("Intersects() = true, expected false for touching boxes")
	}

	u := a.Union(Box{X: 1, Y: -2, W: 2, H: 3})
	expected := Box{X: 0.5, Y: -2, W: 2.5, H: 5}
	if u != expected {
		t.Errorf("Union() = %+v, expected %+v", u, expected)
	}
}

func TestBoxRect(t *testing.T) {
	b := Box{X: 3.7, Y: -0.2, W: 2, H: 3}
	expected := NewRect(3, -1, 2, 3)
	if got := b.Rect(); got != expected {
		t.Errorf("Rect() = %+v, expected %+v", got, expected)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{15.5, 0.0, 10.0, 10.0},
	}

	for _, tc := range tests {
		result := ClampF(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}
