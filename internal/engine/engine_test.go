package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Murat2283plus/maliao/internal/config"
	"github.com/Murat2283plus/maliao/internal/core"
	"github.com/Murat2283plus/maliao/internal/games/mario"
	"github.com/Murat2283plus/maliao/internal/registry"
	"github.com/Murat2283plus/maliao/internal/render"
	"github.com/Murat2283plus/maliao/internal/transport"
)

const tick = time.Second / 30

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Link.Port = "mock0"
	cfg.Link.Mock = true
	cfg.Link.PopTimeout = 5 * time.Millisecond
	cfg.Link.JoinTimeout = 500 * time.Millisecond
	return cfg
}

// newConnected returns an engine whose link writes into a mock sink.
func newConnected(t *testing.T) (*Engine, *transport.MockSink) {
	t.Helper()
	e := New(testConfig(), nil)
	sink := transport.NewMockSink()
	e.Transmitter().SetSinkFactory(func() transport.Sink { return sink })
	if err := e.Connect(); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	t.Cleanup(func() { _ = e.Close() })
	return e, sink
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestKeyLatch(t *testing.T) {
	now := time.Unix(0, 0)
	k := NewKeyLatch(100*time.Millisecond, func() time.Time { return now })

	k.Press(core.ActionRight)
	k.Press(core.ActionJump)
	in := k.Poll()
	if !in.Right || in.Left || !in.Jump {
		t.Errorf("Poll() = %+v, expected right and jump", in)
	}
	if in := k.Poll(); in.Jump {
		t.Error("Jump still set on second Poll()")
	}

	k.Press(core.ActionLeft)
	if in := k.Poll(); !in.Left || in.Right {
		t.Errorf("Poll() = %+v after left, expected only left", in)
	}

	now = now.Add(150 * time.Millisecond)
	if in := k.Poll(); in.Left {
		t.Error("Left still held after the hold window")
	}

	k.Press(core.ActionRight)
	k.Press(core.ActionAttack)
	k.Release()
	if in := k.Poll(); in != (core.Input{}) {
		t.Errorf("Poll() = %+v after Release, expected empty", in)
	}
}

func TestEdgeJump(t *testing.T) {
	src := NewEdgeJump(NewScript(
		core.Input{Jump: true},
		core.Input{Jump: true},
		core.Input{},
		core.Input{Jump: true, Attack: true},
		core.Input{Attack: true},
	))
	expected := []core.Input{
		{Jump: true},
		{},
		{},
		{Jump: true, Attack: true},
		{},
		{},
	}
	for i, want := range expected {
		if got := src.Poll(); got != want {
			t.Errorf("Poll() #%d = %+v, expected %+v", i, got, want)
		}
	}
}

func TestDemoInput(t *testing.T) {
	d := NewDemoInput(3)
	jumps := 0
	for range 9 {
		in := d.Poll()
		if !in.Right {
			t.Fatal("demo input stopped running right")
		}
		if in.Jump {
			jumps++
		}
	}
	if jumps != 3 {
		t.Errorf("jumps = %d, expected 3", jumps)
	}
}

func TestTickSendsFrames(t *testing.T) {
	e, sink := newConnected(t)
	cfg := e.Config()

	for range 5 {
		e.tick(tick)
	}
	waitFor(t, "frames on the sink", func() bool {
		return sink.LastFrame(cfg.Display.Width, cfg.Display.Height) != nil
	})

	got := sink.LastFrame(cfg.Display.Width, cfg.Display.Height)
	if got.Width() != cfg.Display.Width || got.Height() != cfg.Display.Height {
		t.Errorf("frame is %dx%d, expected %dx%d", got.Width(), got.Height(), cfg.Display.Width, cfg.Display.Height)
	}
	if e.ticks != 5 {
		t.Errorf("ticks = %d, expected 5", e.ticks)
	}
	if e.world.Tick() != 5 {
		t.Errorf("world tick = %d, expected 5", e.world.Tick())
	}
}

func TestResetStats(t *testing.T) {
	e, _ := newConnected(t)
	for range 5 {
		e.tick(tick)
	}
	waitFor(t, "five frames sent", func() bool { return e.Status().Link.FramesSent == 5 })

	e.ResetStats()
	st := e.Status()
	if st.Link.FramesSent != 0 || st.Link.BytesSent != 0 {
		t.Errorf("link counters = %d frames, %d bytes after ResetStats, expected 0", st.Link.FramesSent, st.Link.BytesSent)
	}
	if st.ActualFPS != 0 {
		t.Errorf("ActualFPS = %v after ResetStats, expected 0", st.ActualFPS)
	}
	if got := e.frames.Count(); got != 0 {
		t.Errorf("frame count = %d after ResetStats, expected 0", got)
	}
	if !st.Link.Connected {
		t.Error("ResetStats should not touch the connection")
	}
}

func TestHeadlessTick(t *testing.T) {
	e := New(testConfig(), nil)
	e.tick(tick)
	if e.Latest() == nil {
		t.Fatal("Latest() = nil after tick")
	}
	if st := e.Transmitter().Stats(); st.FramesSent != 0 || st.Connected {
		t.Errorf("Stats() = %+v, expected a disconnected idle link", st)
	}
}

func TestSetFPS(t *testing.T) {
	e := New(testConfig(), nil)

	if err := e.SetFPS(45); err != nil {
		t.Fatalf("SetFPS(45) error = %v", err)
	}
	for _, fps := range []int{0, -1, 61, 1000} {
		if err := e.SetFPS(fps); !errors.Is(err, config.ErrInvalidFPS) {
			t.Errorf("SetFPS(%d) error = %v, expected ErrInvalidFPS", fps, err)
		}
	}
	if got := e.Status().TargetFPS; got != 45 {
		t.Errorf("TargetFPS = %d after invalid values, expected 45", got)
	}

	if got := e.AdjustFPS(100); got != config.MaxFPS {
		t.Errorf("AdjustFPS(100) = %d, expected %d", got, config.MaxFPS)
	}
	if got := e.AdjustFPS(-100); got != config.MinFPS {
		t.Errorf("AdjustFPS(-100) = %d, expected %d", got, config.MinFPS)
	}
}

func TestPauseSkipsSimulation(t *testing.T) {
	e := New(testConfig(), nil)
	e.SetInput(NewDemoInput(10))

	if !e.TogglePause() {
		t.Fatal("TogglePause() = false, expected paused")
	}
	if err := e.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	time.Sleep(100 * time.Millisecond)
	if err := e.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if e.world.Tick() != 0 {
		t.Errorf("world tick = %d while paused, expected 0", e.world.Tick())
	}

	e.Resume()
	if e.Paused() {
		t.Error("Paused() = true after Resume")
	}
}

func TestStartStop(t *testing.T) {
	e := New(testConfig(), nil)
	if err := e.SetFPS(60); err != nil {
		t.Fatal(err)
	}
	if err := e.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := e.Start(context.Background()); !errors.Is(err, ErrRunning) {
		t.Errorf("second Start() error = %v, expected ErrRunning", err)
	}
	waitFor(t, "ticks", func() bool { return e.Status().Ticks > 3 })

	if err := e.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	select {
	case <-e.Done():
	default:
		t.Fatal("Done() not closed after Stop")
	}
	if e.Running() {
		t.Error("Running() = true after Stop")
	}

	if err := e.Start(context.Background()); err != nil {
		t.Fatalf("restart error = %v", err)
	}
	if err := e.Stop(); err != nil {
		t.Fatalf("Stop() after restart error = %v", err)
	}
}

func TestContextCancelStopsLoop(t *testing.T) {
	e := New(testConfig(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	if err := e.Start(ctx); err != nil {
		t.Fatal(err)
	}
	cancel()
	select {
	case <-e.Done():
	case <-time.After(time.Second):
		t.Fatal("loop still running after context cancel")
	}
	waitFor(t, "run flag cleared", func() bool { return !e.Running() })
}

func TestSendTestPattern(t *testing.T) {
	e := New(testConfig(), nil)
	r := render.New(e.Config())

	if err := e.SendTestPattern("nope"); err == nil {
		t.Error("SendTestPattern(\"nope\") error = nil")
	}
	e.drainCommands()
	if e.show != nil {
		t.Fatal("unknown pattern changed state")
	}

	if err := e.SendTestPattern(render.PatternSolidRed); err != nil {
		t.Fatalf("SendTestPattern() error = %v", err)
	}
	e.drainCommands()
	e.tick(tick)
	if e.mode != ModePattern {
		t.Errorf("mode = %v, expected pattern", e.mode)
	}
	want, _ := r.RenderPattern(render.PatternSolidRed)
	if !e.Latest().Equal(want) {
		t.Error("latest frame is not solid red")
	}
	if e.world.Tick() != 0 {
		t.Errorf("world advanced to tick %d during pattern", e.world.Tick())
	}

	// Named patterns hold for two seconds, then play resumes.
	e.tick(namedHold)
	e.tick(tick)
	if e.mode != ModePlaying {
		t.Errorf("mode = %v after hold, expected playing", e.mode)
	}
	if e.world.Tick() == 0 {
		t.Error("world did not resume after the pattern")
	}
}

func TestClearPattern(t *testing.T) {
	e := New(testConfig(), nil)
	if err := e.SendTestPattern(PatternClear); err != nil {
		t.Fatal(err)
	}
	e.drainCommands()
	e.tick(tick)

	f := e.Latest()
	for y := range f.Height() {
		for x := range f.Width() {
			if c := f.At(x, y); c != core.Black {
				t.Fatalf("pixel (%d,%d) = %v, expected black", x, y, c)
			}
		}
	}
}

func TestPatternCycle(t *testing.T) {
	e := New(testConfig(), nil)
	r := render.New(e.Config())
	if err := e.SendTestPattern(""); err != nil {
		t.Fatal(err)
	}
	e.drainCommands()

	for _, id := range registry.IDs() {
		e.tick(tick)
		want, err := r.RenderPattern(id)
		if err != nil {
			t.Fatal(err)
		}
		if !e.Latest().Equal(want) {
			t.Errorf("expected pattern %q on screen", id)
		}
		e.publish()
		if got := e.Status().Pattern; got != id {
			t.Errorf("Status().Pattern = %q, expected %q", got, id)
		}
		e.tick(cycleHold - tick)
	}
	e.tick(tick)
	if e.mode != ModePlaying {
		t.Errorf("mode = %v after the cycle, expected playing", e.mode)
	}
}

func TestReset(t *testing.T) {
	e := New(testConfig(), nil)
	e.SetInput(NewDemoInput(5))
	for range 20 {
		e.tick(tick)
	}
	if e.world.Tick() == 0 {
		t.Fatal("world did not advance")
	}

	if err := e.Reset(); err != nil {
		t.Fatal(err)
	}
	e.drainCommands()
	if e.world.Tick() != 0 || e.world.Score() != 0 || e.world.Level() != 1 {
		t.Errorf("after reset tick=%d score=%d level=%d", e.world.Tick(), e.world.Score(), e.world.Level())
	}
}

func TestGameOverScreen(t *testing.T) {
	e := New(testConfig(), nil)
	r := render.New(e.Config())
	p := e.world.Player()
	p.Lives = 1
	p.Invincible = 0
	if got := p.TakeDamage(e.Config().Palette); got != mario.DamageDead {
		t.Fatalf("TakeDamage() = %v, expected DamageDead", got)
	}

	e.tick(tick)
	if e.mode != ModeGameOver {
		t.Fatalf("mode = %v, expected game over", e.mode)
	}
	e.publish()
	if !e.Status().GameOver() {
		t.Error("Status().GameOver() = false")
	}
	e.tick(tick)
	if !e.Latest().Equal(r.RenderGameOver()) {
		t.Error("latest frame is not the game-over screen")
	}

	if err := e.Reset(); err != nil {
		t.Fatal(err)
	}
	e.drainCommands()
	e.tick(tick)
	if e.mode != ModePlaying {
		t.Errorf("mode = %v after reset, expected playing", e.mode)
	}
}

func TestLevelCompleteCelebration(t *testing.T) {
	e := New(testConfig(), nil)
	cfg := e.Config()
	e.world.Clear()
	p := e.world.Player()
	e.world.Add(mario.NewFlag(p.X, float64(cfg.GroundY()), cfg.Palette.Flag.RGB()))

	e.tick(tick)
	if e.mode != ModeCelebrating {
		t.Fatalf("mode = %v, expected celebrating", e.mode)
	}

	e.tick(cfg.Game.Celebration / 2)
	if e.world.Level() != 1 {
		t.Errorf("level = %d mid-celebration, expected 1", e.world.Level())
	}

	e.tick(cfg.Game.Celebration)
	if e.mode != ModePlaying {
		t.Errorf("mode = %v after celebration, expected playing", e.mode)
	}
	if e.world.Level() != 2 {
		t.Errorf("level = %d, expected 2", e.world.Level())
	}
}

func TestDo(t *testing.T) {
	e := New(testConfig(), nil)
	fps := e.Status().TargetFPS

	if err := e.Do(core.ActionPause); err != nil || !e.Paused() {
		t.Errorf("Do(Pause) error = %v paused = %v", err, e.Paused())
	}
	if err := e.Do(core.ActionFaster); err != nil {
		t.Fatal(err)
	}
	if got := e.Status().TargetFPS; got != fps+5 {
		t.Errorf("TargetFPS = %d, expected %d", got, fps+5)
	}
	if err := e.Do(core.ActionLeft); err != nil {
		t.Errorf("Do(Left) error = %v", err)
	}
	if err := e.Do(core.ActionPattern); err != nil {
		t.Fatal(err)
	}
	e.drainCommands()
	if e.show == nil || len(e.show.ids) != len(registry.IDs()) {
		t.Error("Do(Pattern) did not start the pattern cycle")
	}
}

func TestConnectFailureStaysHeadless(t *testing.T) {
	e := New(testConfig(), nil)
	sink := transport.NewMockSink()
	sink.OpenErr = errors.New("no such port")
	e.Transmitter().SetSinkFactory(func() transport.Sink { return sink })

	if err := e.Connect(); err == nil {
		t.Fatal("Connect() error = nil")
	}
	e.tick(tick)
	if e.Transmitter().Connected() {
		t.Error("link connected after a failed open")
	}
	if e.Latest() == nil {
		t.Error("no frame rendered while headless")
	}
}
