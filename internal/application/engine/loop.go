// Package engine runs the render loop: snapshot intake, input reporting,
// animation, drawing and rate control, one tick at a time.
//
// The loop owns the live scene and the resource cache. Nothing in here is
// safe for concurrent use; the snapshot source is the only thing shared with
// another goroutine.
package engine

import (
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/younwookim/puppet/internal/application/report"
	"github.com/younwookim/puppet/internal/application/snapshot"
	"github.com/younwookim/puppet/internal/application/state"
	"github.com/younwookim/puppet/internal/application/system"
	"github.com/younwookim/puppet/internal/domain/entity"
	"github.com/younwookim/puppet/internal/infrastructure/assets"
	"github.com/younwookim/puppet/internal/infrastructure/logging"
)

// Params wires a Loop to its collaborators
type Params struct {
	Source     snapshot.Source
	Reconciler *system.Reconciler
	Animation  *system.AnimationSystem
	Reporter   *report.Reporter
	Cache      *assets.Cache
	Window     system.Window
	Input      Input
	Clock      Clock // nil means SystemClock
	Logger     *logging.Logger

	// FallbackFrameDuration paces the loop until the first snapshot arrives
	FallbackFrameDuration time.Duration
}

// Stats counts what the loop has done so far
type Stats struct {
	Ticks    int
	Applied  int
	Rejected int
	Events   int
}

// Loop is the render loop
type Loop struct {
	source     snapshot.Source
	reconciler *system.Reconciler
	animation  *system.AnimationSystem
	reporter   *report.Reporter
	cache      *assets.Cache
	window     system.Window
	input      Input
	clock      Clock
	logger     *logging.Logger
	fallback   time.Duration

	scene      *entity.Scene
	state      state.LoopState
	pointer    image.Point
	hasPointer bool
	lastTick   time.Time
	stats      Stats
}

// NewLoop creates a loop in the waiting state
func NewLoop(p Params) *Loop {
	clock := p.Clock
	if clock == nil {
		clock = SystemClock{}
	}
	fallback := p.FallbackFrameDuration
	if fallback <= 0 {
		fallback = entity.FrameDurationForFPS(entity.DefaultFPS)
	}
	return &Loop{
		source:     p.Source,
		reconciler: p.Reconciler,
		animation:  p.Animation,
		reporter:   p.Reporter,
		cache:      p.Cache,
		window:     p.Window,
		input:      p.Input,
		clock:      clock,
		logger:     p.Logger,
		fallback:   fallback,
		state:      state.StateWaiting,
	}
}

// Step runs the non-drawing half of a tick: it applies at most one pending
// snapshot, reports every queued input event, advances animations and reports
// the sprites under the pointer. It returns true when the loop should stop
// after this tick.
func (l *Loop) Step() bool {
	l.stats.Ticks++
	l.intake()
	l.handleInput()

	now := l.clock.Now()
	if l.lastTick.IsZero() {
		l.lastTick = now
	}
	l.animation.Update(l.scene, now.Sub(l.lastTick))
	l.lastTick = now

	l.hover()
	return l.state.Done()
}

// hover reports every sprite under the last known pointer, in draw order.
// It runs once per tick however often the frame is drawn.
func (l *Loop) hover() {
	if l.scene == nil || !l.hasPointer {
		return
	}
	for _, sp := range l.scene.Sprites {
		if sp.Contains(l.pointer.X, l.pointer.Y) {
			if err := l.reporter.Hover(sp.ID); err != nil {
				l.logger.Limited("report hover %s: %v", sp.ID, err)
			}
		}
	}
}

// intake takes at most one message per tick, whatever the backlog.
func (l *Loop) intake() {
	msg, ok, closed := l.source.TryRecv()
	if closed {
		if l.state != state.StateQuitting {
			l.logger.Debugf("snapshot source closed")
		}
		l.state = state.StateQuitting
		return
	}
	if !ok {
		return
	}

	snap, err := snapshot.Decode(msg)
	if err != nil {
		l.stats.Rejected++
		l.logger.Limited("discarding snapshot: %v", err)
		return
	}

	scene, err := l.reconciler.Apply(l.scene, snap)
	l.scene = scene
	l.stats.Applied++
	if l.state == state.StateWaiting {
		l.state = state.StateLive
	}
	if err != nil {
		l.logger.Errorf("apply snapshot: %v", err)
	}
}

func (l *Loop) handleInput() {
	for _, ev := range l.input.PollEvents() {
		if ev.HasPosition() {
			l.pointer = image.Pt(ev.X, ev.Y)
			l.hasPointer = true
		}
		l.stats.Events++
		if err := l.reporter.Report(ev); err != nil {
			l.logger.Limited("report %s: %v", ev.Kind, err)
		}
		if ev.Kind == entity.InputQuit {
			l.state = state.StateQuitting
		}
	}
}

// Render draws the live scene onto surface. A missing asset skips only its
// element; a failing draw call aborts the rest of the frame and is returned.
func (l *Loop) Render(surface Surface) error {
	surface.Clear()
	if l.scene == nil {
		return nil
	}

	w, h := l.window.CanvasSize()
	if tex, ok := l.texture(l.scene.Window.Background); ok {
		if err := surface.DrawImage(tex, image.Rect(0, 0, w, h)); err != nil {
			return fmt.Errorf("draw background: %w", err)
		}
	}

	for _, sp := range l.scene.Sprites {
		if ref, ok := sp.CurrentImage(); ok {
			if tex, ok := l.texture(ref); ok {
				if err := surface.DrawImage(tex, sp.Bounds()); err != nil {
					return fmt.Errorf("draw sprite %s: %w", sp.ID, err)
				}
			}
		}
	}

	for _, td := range l.scene.Text {
		family := td.FontFamily
		if family == "" {
			family = l.scene.DefaultFont
		}
		face, err := l.cache.Font(family, td.Size)
		if err != nil {
			l.skip(err)
			continue
		}
		at := image.Pt(td.Location.X, td.Location.Y)
		if err := surface.DrawText(face, td.Content, td.TextColor(), at); err != nil {
			return fmt.Errorf("draw text %s: %w", td.ID, err)
		}
	}
	return nil
}

func (l *Loop) texture(ref string) (assets.Texture, bool) {
	tex, err := l.cache.Image(ref)
	if err != nil {
		l.skip(err)
		return nil, false
	}
	return tex, true
}

func (l *Loop) skip(err error) {
	var lerr *assets.LoadError
	if errors.As(err, &lerr) {
		l.logger.Once(string(lerr.Kind)+":"+lerr.Key, "skipping element: %v", err)
		return
	}
	l.logger.Errorf("skipping element: %v", err)
}

// Tick runs one full iteration: Step, Render and Present.
func (l *Loop) Tick(surface Surface, presenter Presenter) bool {
	done := l.Step()
	if err := l.Render(surface); err != nil {
		l.logger.Errorf("render: %v", err)
	}
	if err := presenter.Present(); err != nil {
		l.logger.Errorf("present: %v", err)
	}
	return done
}

// Run ticks until the window is closed or the source is drained, sleeping
// off whatever is left of the frame duration after each tick.
func (l *Loop) Run(surface Surface, presenter Presenter) {
	for {
		start := l.clock.Now()
		if l.Tick(surface, presenter) {
			return
		}
		if rest := l.FrameDuration() - l.clock.Now().Sub(start); rest > 0 {
			l.clock.Sleep(rest)
		}
	}
}

// FrameDuration returns the target tick duration
func (l *Loop) FrameDuration() time.Duration {
	if l.scene == nil {
		return l.fallback
	}
	return l.scene.FrameDuration
}

// Scene returns the live scene, nil until the first snapshot is applied
func (l *Loop) Scene() *entity.Scene {
	return l.scene
}

// State returns the loop's lifecycle state
func (l *Loop) State() state.LoopState {
	return l.state
}

// Stats returns the loop counters
func (l *Loop) Stats() Stats {
	return l.stats
}
