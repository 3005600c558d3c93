// Package game adapts the render loop to ebiten's game loop.
package game

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/puppet/internal/application/engine"
	"github.com/younwookim/puppet/internal/infrastructure/logging"
)

// Runner is the part of the render loop ebiten drives
type Runner interface {
	Step() bool
	Render(surface engine.Surface) error
	FrameDuration() time.Duration
}

// Canvas reports the logical screen size
type Canvas interface {
	CanvasSize() (width, height int)
}

// Game implements ebiten.Game on top of a Runner.
// Ebiten owns the timing: the tick rate follows the scene's frame duration
// through SetTPS instead of sleeping.
type Game struct {
	runner  Runner
	canvas  Canvas
	surface func(screen *ebiten.Image) engine.Surface
	logger  *logging.Logger

	setTPS func(int)
	tps    int
}

// New creates a new Game.
// surface wraps the screen of each Draw call into something the runner can draw on.
func New(runner Runner, canvas Canvas, surface func(screen *ebiten.Image) engine.Surface, logger *logging.Logger) *Game {
	g := &Game{
		runner:  runner,
		canvas:  canvas,
		surface: surface,
		logger:  logger,
		setTPS:  ebiten.SetTPS,
	}
	g.syncTPS()
	return g
}

// Update runs the non-drawing half of a tick.
// Implements ebiten.Game interface.
func (g *Game) Update() error {
	done := g.runner.Step()
	g.syncTPS()
	if done {
		return ebiten.Termination
	}
	return nil
}

// Draw renders the live scene.
// Implements ebiten.Game interface.
func (g *Game) Draw(screen *ebiten.Image) {
	if err := g.runner.Render(g.surface(screen)); err != nil {
		g.logger.Errorf("render: %v", err)
	}
}

// Layout returns the canvas size of the current window config.
// Implements ebiten.Game interface.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.canvas.CanvasSize()
}

// TPS returns the tick rate last handed to ebiten
func (g *Game) TPS() int {
	return g.tps
}

func (g *Game) syncTPS() {
	tps := TicksPerSecond(g.runner.FrameDuration())
	if tps == g.tps {
		return
	}
	g.tps = tps
	g.setTPS(tps)
}

// TicksPerSecond converts a frame duration to the nearest tick rate, at least 1
func TicksPerSecond(d time.Duration) int {
	if d <= 0 {
		return ebiten.DefaultTPS
	}
	tps := int((time.Second + d/2) / d)
	if tps < 1 {
		tps = 1
	}
	return tps
}
