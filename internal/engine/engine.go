// Package engine runs the real-time game loop: every iteration it polls the
// input source, steps the world, renders a frame and hands it to the
// transmitter. Operator controls (pause, reset, FPS, test patterns, link
// management) are safe to call from any goroutine.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Murat2283plus/maliao/internal/config"
	"github.com/Murat2283plus/maliao/internal/core"
	"github.com/Murat2283plus/maliao/internal/games/mario"
	"github.com/Murat2283plus/maliao/internal/registry"
	"github.com/Murat2283plus/maliao/internal/render"
	"github.com/Murat2283plus/maliao/internal/transport"
)

// Pattern timing.
const (
	PatternClear    = "clear"
	cycleHold       = time.Second
	namedHold       = 2 * time.Second
	maxDT           = 250 * time.Millisecond
	commandCapacity = 16
)

var (
	// ErrRunning is returned by Start when the loop is already running.
	ErrRunning = errors.New("engine: already running")
	// ErrStopTimeout is returned by Stop when the loop did not exit even after cancellation.
	ErrStopTimeout = errors.New("engine: loop did not stop")
	// ErrBusy is returned when the command queue is full.
	ErrBusy = errors.New("engine: too many pending commands")
)

// command is an operator request executed on the loop goroutine.
type command interface {
	engineCommand()
}

type resetCommand struct{}

func (resetCommand) engineCommand() {}

type patternCommand struct {
	ids  []string
	hold time.Duration
}

func (patternCommand) engineCommand() {}

// patternShow plays a list of patterns, each for hold.
type patternShow struct {
	ids     []string
	hold    time.Duration
	elapsed time.Duration
}

// current returns the pattern on screen, or false once the show is over.
func (s *patternShow) current() (string, bool) {
	i := int(s.elapsed / s.hold)
	if i >= len(s.ids) {
		return "", false
	}
	return s.ids[i], true
}

// Engine owns the world and drives it in real time.
type Engine struct {
	cfg      config.Config
	logger   *log.Logger
	renderer *render.Renderer
	tx       *transport.Transmitter
	now      func() time.Time

	inputMu sync.Mutex
	input   Source

	cmds   chan command
	fps    atomic.Int32
	paused atomic.Bool
	run    atomic.Bool
	status atomic.Pointer[Status]
	latest atomic.Pointer[core.Frame]
	frames *core.RateMeter
	lifeMu sync.Mutex // guards Start/Stop
	cancel context.CancelFunc
	done   chan struct{}

	// Owned by the loop goroutine.
	world       *mario.World
	mode        Mode
	show        *patternShow
	celebration time.Duration
	ticks       uint64
}

// New creates a stopped engine with a fresh world and a disconnected
// transmitter. A nil logger discards output.
func New(cfg config.Config, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	e := &Engine{
		cfg:      cfg,
		logger:   logger,
		renderer: render.New(cfg),
		tx:       transport.NewTransmitter(cfg.Link, logger.WithPrefix("link")),
		now:      time.Now,
		input:    NoInput{},
		cmds:     make(chan command, commandCapacity),
		frames:   core.NewRateMeter(time.Second, nil),
		world:    mario.NewWorld(cfg),
	}
	e.fps.Store(int32(cfg.Game.FPS)) //#nosec G115 -- validated to 1..60
	e.latest.Store(e.renderer.Render(e.world))
	e.publish()
	return e
}

// SetInput replaces the input source. Safe while running.
func (e *Engine) SetInput(src Source) {
	if src == nil {
		src = NoInput{}
	}
	e.inputMu.Lock()
	defer e.inputMu.Unlock()
	e.input = src
}

// Transmitter exposes the display link.
func (e *Engine) Transmitter() *transport.Transmitter {
	return e.tx
}

// Config returns the configuration the engine was built with.
func (e *Engine) Config() config.Config {
	return e.cfg
}

// Start launches the loop goroutine. The loop runs until Stop is called or ctx
// is cancelled.
func (e *Engine) Start(ctx context.Context) error {
	e.lifeMu.Lock()
	defer e.lifeMu.Unlock()

	if e.run.Load() {
		return ErrRunning
	}
	ctx, cancel := context.WithCancel(ctx)
	e.cancel = cancel
	e.done = make(chan struct{})
	e.run.Store(true)
	e.frames.Reset()

	go e.watchLink(ctx)
	go e.loop(ctx, e.done)
	e.logger.Info("engine started", "fps", e.fps.Load())
	return nil
}

// Done returns a channel closed when the loop exits, or nil if it never started.
func (e *Engine) Done() <-chan struct{} {
	e.lifeMu.Lock()
	defer e.lifeMu.Unlock()
	return e.done
}

// Running reports whether the loop is running.
func (e *Engine) Running() bool {
	return e.run.Load()
}

// Stop asks the loop to finish its current iteration and waits for it. If it
// has not exited within the join timeout the loop's context is cancelled,
// which interrupts its frame sleep. The link is left as it is.
func (e *Engine) Stop() error {
	e.lifeMu.Lock()
	defer e.lifeMu.Unlock()

	if e.done == nil {
		return nil
	}
	e.run.Store(false)
	defer e.cancel()

	join := e.cfg.Link.JoinTimeout
	select {
	case <-e.done:
		e.logger.Info("engine stopped")
		return nil
	case <-time.After(join):
	}

	e.logger.Warn("loop did not stop in time, cancelling", "timeout", join)
	e.cancel()
	select {
	case <-e.done:
		return nil
	case <-time.After(join):
		return ErrStopTimeout
	}
}

// Close stops the loop and disconnects the link.
func (e *Engine) Close() error {
	err := e.Stop()
	e.tx.Disconnect()
	return err
}

// loop is the fixed-rate scheduler.
func (e *Engine) loop(ctx context.Context, done chan struct{}) {
	defer close(done)
	defer e.publish()
	defer e.run.Store(false)

	timer := time.NewTimer(0)
	defer timer.Stop()
	<-timer.C

	last := e.now()
	for e.run.Load() {
		start := e.now()
		dt := min(start.Sub(last), maxDT)
		last = start

		e.drainCommands()
		if !e.paused.Load() {
			e.tick(dt)
		}
		e.publish()

		sleep := e.frameTime() - e.now().Sub(start)
		if sleep <= 0 {
			if ctx.Err() != nil {
				return
			}
			continue
		}
		timer.Reset(sleep)
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}
	}
}

// tick produces and ships one frame.
func (e *Engine) tick(dt time.Duration) {
	f := e.step(dt)
	e.ticks++
	e.frames.Mark(1)
	e.latest.Store(f)
	e.tx.SendFrame(f)
}

// step advances whatever is on screen by dt and renders it.
func (e *Engine) step(dt time.Duration) *core.Frame {
	if e.show != nil {
		id, ok := e.show.current()
		if ok {
			e.show.elapsed += dt
			f, err := e.renderer.RenderPattern(id)
			if err == nil {
				e.mode = ModePattern
				return f
			}
			e.logger.Error("drawing pattern", "pattern", id, "error", err)
		}
		e.show = nil
		e.mode = ModePlaying
		if e.world.GameOver() {
			e.mode = ModeGameOver
		}
	}

	switch e.mode {
	case ModeCelebrating:
		e.celebration += dt
		if e.celebration < e.cfg.Game.Celebration {
			return e.renderer.RenderCelebration(e.celebration)
		}
		e.world.NextLevel()
		e.mode = ModePlaying
		e.logger.Info("level started", "level", e.world.Level(), "score", e.world.Score())
	case ModeGameOver:
		return e.renderer.RenderGameOver()
	}

	res := e.world.Step(e.pollInput(), dt)
	switch {
	case res.State.GameOver:
		e.mode = ModeGameOver
		e.logger.Info("game over", "score", res.State.Score, "level", res.State.Level)
		return e.renderer.RenderGameOver()
	case res.State.LevelComplete:
		e.mode = ModeCelebrating
		e.celebration = 0
		e.logger.Info("level complete", "level", res.State.Level, "score", res.State.Score)
		return e.renderer.RenderCelebration(0)
	}
	if res.Damage != mario.DamageIgnored {
		e.logger.Debug("player hit", "result", res.Damage, "lives", res.State.Lives)
	}
	return e.renderer.Render(e.world)
}

func (e *Engine) pollInput() core.Input {
	e.inputMu.Lock()
	src := e.input
	e.inputMu.Unlock()
	return src.Poll()
}

// drainCommands applies every pending operator command.
func (e *Engine) drainCommands() {
	for {
		select {
		case cmd := <-e.cmds:
			e.apply(cmd)
		default:
			return
		}
	}
}

func (e *Engine) apply(cmd command) {
	switch c := cmd.(type) {
	case resetCommand:
		e.world.Reset()
		e.show = nil
		e.mode = ModePlaying
		e.celebration = 0
		e.latest.Store(e.renderer.Render(e.world))
		e.logger.Info("world reset")
	case patternCommand:
		e.show = &patternShow{ids: c.ids, hold: c.hold}
		e.logger.Info("showing test pattern", "patterns", c.ids, "hold", c.hold)
	}
}

// send queues a command for the loop. Commands sent while the loop is
// stopped run when it next starts.
func (e *Engine) send(cmd command) error {
	select {
	case e.cmds <- cmd:
		return nil
	default:
		return ErrBusy
	}
}

// publish stores a fresh status snapshot.
func (e *Engine) publish() {
	p := e.world.Player()
	st := &Status{
		Running:   e.run.Load(),
		Paused:    e.paused.Load(),
		Mode:      e.mode,
		TargetFPS: int(e.fps.Load()),
		ActualFPS: e.frames.Rate(),
		Ticks:     e.ticks,
		Level:     e.world.Level(),
		Score:     e.world.Score(),
		Lives:     p.Lives,
		Power:     p.State,
		Link:      e.tx.Stats(),
	}
	if e.show != nil {
		st.Pattern, _ = e.show.current()
	}
	e.status.Store(st)
}

// watchLink logs link events while the loop runs.
func (e *Engine) watchLink(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case evt := <-e.tx.Events():
			switch ev := evt.(type) {
			case transport.ConnectedEvent:
				e.logger.Info("display connected", "port", ev.Port)
			case transport.DisconnectedEvent:
				if ev.Err != nil {
					e.logger.Warn("display lost, running headless", "port", ev.Port, "error", ev.Err)
				} else {
					e.logger.Info("display disconnected", "port", ev.Port)
				}
			case transport.ErrorEvent:
				e.logger.Error("link error", "error", ev.Err)
			}
		}
	}
}

func (e *Engine) frameTime() time.Duration {
	return time.Second / time.Duration(max(e.fps.Load(), 1))
}

// Status returns the latest status snapshot.
func (e *Engine) Status() Status {
	st := *e.status.Load()
	st.Running = e.run.Load()
	st.Paused = e.paused.Load()
	st.TargetFPS = int(e.fps.Load())
	st.ActualFPS = e.frames.Rate()
	st.Link = e.tx.Stats()
	return st
}

// Latest returns the most recent frame. The caller must not modify it.
func (e *Engine) Latest() *core.Frame {
	return e.latest.Load()
}

// Pause stops simulation and rendering; the loop keeps running.
func (e *Engine) Pause() {
	if !e.paused.Swap(true) {
		e.logger.Info("paused")
	}
}

// Resume continues after Pause.
func (e *Engine) Resume() {
	if e.paused.Swap(false) {
		e.logger.Info("resumed")
	}
}

// TogglePause flips the pause state and returns the new one.
func (e *Engine) TogglePause() bool {
	if e.paused.Load() {
		e.Resume()
		return false
	}
	e.Pause()
	return true
}

// Paused reports whether the engine is paused.
func (e *Engine) Paused() bool {
	return e.paused.Load()
}

// Reset rebuilds the world from scratch on the next iteration.
func (e *Engine) Reset() error {
	return e.send(resetCommand{})
}

// ResetStats zeroes the link counters and starts a new measurement epoch for
// the frame rate and the link rate.
func (e *Engine) ResetStats() {
	e.tx.ResetStats()
	e.frames.Reset()
}

// SetFPS changes the target frame rate. Out-of-range values are rejected and
// leave the rate unchanged.
func (e *Engine) SetFPS(fps int) error {
	if err := config.ValidateFPS(fps); err != nil {
		return err
	}
	e.fps.Store(int32(fps)) //#nosec G115 -- validated to 1..60
	e.logger.Info("target fps changed", "fps", fps)
	return nil
}

// AdjustFPS changes the target frame rate by delta, clamped to the valid range.
func (e *Engine) AdjustFPS(delta int) int {
	fps := core.Clamp(int(e.fps.Load())+delta, config.MinFPS, config.MaxFPS)
	_ = e.SetFPS(fps)
	return fps
}

// SendTestPattern puts a test pattern on the matrix in place of the game.
// An empty name cycles through every pattern, a named one is held for two
// seconds and "clear" blanks the display. Unknown names are rejected.
func (e *Engine) SendTestPattern(name string) error {
	cmd := patternCommand{hold: namedHold}
	switch {
	case name == "":
		cmd.ids = registry.IDs()
		cmd.hold = cycleHold
	case name == PatternClear:
		cmd.ids = []string{render.PatternBlack}
	case registry.Exists(name):
		cmd.ids = []string{name}
	default:
		return fmt.Errorf("engine: unknown pattern %q", name)
	}
	return e.send(cmd)
}

// Connect opens the display link. On failure the engine keeps running headless.
func (e *Engine) Connect() error {
	if err := e.tx.Connect(); err != nil {
		e.logger.Warn("cannot connect display, running headless", "port", e.tx.Port(), "error", err)
		return err
	}
	return nil
}

// Disconnect closes the display link.
func (e *Engine) Disconnect() {
	e.tx.Disconnect()
}

// ToggleConnect connects a disconnected link and disconnects a connected one.
func (e *Engine) ToggleConnect() error {
	if e.tx.Connected() {
		e.Disconnect()
		return nil
	}
	return e.Connect()
}

// Do performs the operational control bound to a host action. Movement
// actions and Quit are the host's business and are ignored here.
func (e *Engine) Do(a core.Action) error {
	switch a {
	case core.ActionPause:
		e.TogglePause()
	case core.ActionRestart:
		return e.Reset()
	case core.ActionPattern:
		return e.SendTestPattern("")
	case core.ActionFaster:
		e.AdjustFPS(5)
	case core.ActionSlower:
		e.AdjustFPS(-5)
	case core.ActionConnect:
		return e.ToggleConnect()
	}
	return nil
}
