package engine

import (
	"sync"
	"time"

	"github.com/Murat2283plus/maliao/internal/core"
)

// Source supplies the controller snapshot for one tick. Poll is called once
// per tick from the loop goroutine only.
type Source interface {
	Poll() core.Input
}

// SourceFunc adapts a function to Source.
type SourceFunc func() core.Input

// Poll calls f.
func (f SourceFunc) Poll() core.Input { return f() }

// NoInput never presses anything.
type NoInput struct{}

// Poll returns an empty snapshot.
func (NoInput) Poll() core.Input { return core.Input{} }

// DemoInput plays by itself: it runs right and jumps at a fixed interval.
type DemoInput struct {
	JumpEvery int // Ticks between jumps
	tick      int
}

// NewDemoInput creates a demo source that jumps every jumpEvery ticks.
func NewDemoInput(jumpEvery int) *DemoInput {
	return &DemoInput{JumpEvery: max(jumpEvery, 1)}
}

// Poll returns the next demo snapshot.
func (d *DemoInput) Poll() core.Input {
	d.tick++
	return core.Input{Right: true, Jump: d.tick%d.JumpEvery == 0}
}

// Script replays a fixed sequence of snapshots, then reports no input.
type Script struct {
	steps []core.Input
	pos   int
}

// NewScript creates a script source.
func NewScript(steps ...core.Input) *Script {
	return &Script{steps: steps}
}

// Poll returns the next scripted snapshot.
func (s *Script) Poll() core.Input {
	if s.pos >= len(s.steps) {
		return core.Input{}
	}
	in := s.steps[s.pos]
	s.pos++
	return in
}

// EdgeJump turns a controller that reports buttons as held into edge-triggered
// Jump and Attack: each reads true only on the tick the button went down.
type EdgeJump struct {
	src        Source
	jumpHeld   bool
	attackHeld bool
}

// NewEdgeJump wraps a level-triggered source.
func NewEdgeJump(src Source) *EdgeJump {
	return &EdgeJump{src: src}
}

// Poll returns the wrapped snapshot with Jump and Attack edge-triggered.
func (e *EdgeJump) Poll() core.Input {
	in := e.src.Poll()
	jump, attack := in.Jump, in.Attack
	in.Jump = jump && !e.jumpHeld
	in.Attack = attack && !e.attackHeld
	e.jumpHeld, e.attackHeld = jump, attack
	return in
}

// DefaultHold is how long a direction stays held after its last key press.
const DefaultHold = 150 * time.Millisecond

// KeyLatch turns key-press events into per-tick snapshots for hosts that never
// see key releases, like terminals. A direction stays held for a short window
// after each press, which key autorepeat keeps refreshing. Jump and Attack
// latch until the next Poll. Safe for concurrent use.
type KeyLatch struct {
	mu         sync.Mutex
	now        func() time.Time
	hold       time.Duration
	leftUntil  time.Time
	rightUntil time.Time
	jump       bool
	attack     bool
}

// NewKeyLatch creates a latch. now may be nil to use the wall clock.
func NewKeyLatch(hold time.Duration, now func() time.Time) *KeyLatch {
	if now == nil {
		now = time.Now
	}
	if hold <= 0 {
		hold = DefaultHold
	}
	return &KeyLatch{now: now, hold: hold}
}

// Press records a movement action. Other actions are ignored.
func (k *KeyLatch) Press(a core.Action) {
	k.mu.Lock()
	defer k.mu.Unlock()

	until := k.now().Add(k.hold)
	switch a {
	case core.ActionLeft:
		k.leftUntil = until
		k.rightUntil = time.Time{}
	case core.ActionRight:
		k.rightUntil = until
		k.leftUntil = time.Time{}
	case core.ActionJump:
		k.jump = true
	case core.ActionAttack:
		k.attack = true
	}
}

// Release drops every held direction and pending button.
func (k *KeyLatch) Release() {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.leftUntil, k.rightUntil = time.Time{}, time.Time{}
	k.jump, k.attack = false, false
}

// Poll returns the current snapshot and consumes pending Jump and Attack.
func (k *KeyLatch) Poll() core.Input {
	k.mu.Lock()
	defer k.mu.Unlock()

	now := k.now()
	in := core.Input{
		Left:   now.Before(k.leftUntil),
		Right:  now.Before(k.rightUntil),
		Jump:   k.jump,
		Attack: k.attack,
	}
	k.jump, k.attack = false, false
	return in
}

var (
	_ Source = NoInput{}
	_ Source = (*DemoInput)(nil)
	_ Source = (*Script)(nil)
	_ Source = (*EdgeJump)(nil)
	_ Source = (*KeyLatch)(nil)
	_ Source = SourceFunc(nil)
)
