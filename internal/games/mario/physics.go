package mario

import (
	"math"

	"github.com/Murat2283plus/maliao/internal/core"
)

// eps absorbs float error when comparing edges that should coincide.
const eps = 1e-6

// overlapX reports whether two boxes share horizontal extent.
func overlapX(a core.Box, b core.Box) bool {
	return a.X < b.Right()-eps && b.X < a.Right()-eps
}

// solid reports whether an entity can be stood on.
func solid(e Entity) bool {
	k := e.Kind()
	return (k == KindPlatform || k == KindBrick) && e.Base().Active
}

// supported reports whether something holds the sprite up: the ground line or
// the top of a solid static directly under its feet.
func supported(s *Sprite, env *Env) bool {
	if s.Bottom() >= env.GroundY-eps {
		return true
	}
	feet := core.Box{X: s.X, Y: s.Bottom(), W: s.W, H: eps}
	for _, st := range env.Statics {
		if !solid(st) {
			continue
		}
		top := st.Base()
		if math.Abs(top.Y-s.Bottom()) <= eps && overlapX(feet, top.Box()) {
			return true
		}
	}
	return false
}

// landsOn reports whether a body moving from prev to cur crossed the top of
// surface while falling.
func landsOn(prev, cur core.Box, vy float64, surface *Sprite) bool {
	return vy > 0 &&
		prev.Bottom() <= surface.Y+eps &&
		cur.Bottom() >= surface.Y &&
		overlapX(cur, surface.Box())
}

// applyGravity accelerates an airborne body up to the terminal fall speed.
func applyGravity(m *Motion, gravity, maxFall float64) {
	if m.Gravity && !m.OnGround {
		m.VY = math.Min(m.VY+gravity, maxFall)
	}
}

// clampToWorld keeps the sprite within [0, worldW] horizontally and below the
// top of the matrix. It returns true if the horizontal position was clamped.
func clampToWorld(s *Sprite, m *Motion, worldW float64) bool {
	clamped := false
	if s.X < 0 {
		s.X = 0
		clamped = true
	} else if s.X+s.W > worldW {
		s.X = worldW - s.W
		clamped = true
	}
	if s.Y < 0 {
		s.Y = 0
		if m.VY < 0 {
			m.VY = 0
		}
	}
	return clamped
}

// settleOnGround snaps a falling body onto the ground line.
func settleOnGround(s *Sprite, m *Motion, groundY float64) {
	if m.VY >= 0 && s.Bottom() >= groundY {
		s.Y = groundY - s.H
		m.VY = 0
		m.OnGround = true
	}
}

// pushOutX moves the sprite out of a solid block along the side it came from.
// It returns false if the sprite did not approach from a side.
func pushOutX(s *Sprite, prev core.Box, block *Sprite) bool {
	switch {
	case prev.Right() <= block.X+eps:
		s.X = block.X - s.W
	case prev.X >= block.X+block.W-eps:
		s.X = block.X + block.W
	default:
		return false
	}
	return true
}

// moveBody runs one tick of physics for a non-player body: gravity,
// integration, world clamping, ground and surface landing and side blocking by
// bricks. It returns true if horizontal movement was blocked.
func moveBody(s *Sprite, m *Motion, env *Env) bool {
	m.OnGround = m.VY >= 0 && supported(s, env)
	applyGravity(m, env.Gravity, env.MaxFall)

	prev := s.Box()
	s.X += m.VX
	s.Y += m.VY

	blocked := clampToWorld(s, m, env.WorldW)
	settleOnGround(s, m, env.GroundY)

	for _, st := range env.Statics {
		if !solid(st) {
			continue
		}
		surface := st.Base()
		if landsOn(prev, s.Box(), m.VY, surface) {
			s.Y = surface.Y - s.H
			m.VY = 0
			m.OnGround = true
			continue
		}
		if st.Kind() == KindBrick && s.Box().Intersects(surface.Box()) && pushOutX(s, prev, surface) {
			blocked = true
		}
	}
	return blocked
}
