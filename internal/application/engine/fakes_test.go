package engine

import (
	"errors"
	"image"
	"image/color"
	"io"
	"time"

	"github.com/younwookim/puppet/internal/application/report"
	"github.com/younwookim/puppet/internal/application/snapshot"
	"github.com/younwookim/puppet/internal/application/system"
	"github.com/younwookim/puppet/internal/domain/entity"
	"github.com/younwookim/puppet/internal/infrastructure/assets"
	"github.com/younwookim/puppet/internal/infrastructure/logging"
)

type fakeWindow struct {
	width, height int
	resizeCalls   int
}

func (w *fakeWindow) CanvasSize() (int, int) { return w.width, w.height }
func (w *fakeWindow) Resize(width, height int) error {
	w.resizeCalls++
	w.width, w.height = width, height
	return nil
}
func (w *fakeWindow) SetTitle(string)     {}
func (w *fakeWindow) SetIcon(image.Image) {}
func (w *fakeWindow) LoadIcon(string) (image.Image, error) {
	return nil, errors.New("no icons in tests")
}

type fakeLoader struct {
	missing map[string]bool
	loads   int
}

func (f *fakeLoader) LoadImage(path string) (assets.Texture, error) {
	f.loads++
	if f.missing[path] {
		return nil, errors.New("file not found")
	}
	return image.NewRGBA(image.Rect(0, 0, 8, 8)), nil
}

func (f *fakeLoader) LoadFont(path string, size float64) (assets.Face, error) {
	f.loads++
	if f.missing[path] {
		return nil, errors.New("file not found")
	}
	return path, nil
}

type drawCall struct {
	kind    string
	tex     assets.Texture
	face    assets.Face
	content string
	clr     color.RGBA
	rect    image.Rectangle
}

type fakeSurface struct {
	clears  int
	calls   []drawCall
	failAt  int // 1-based draw call index that fails, 0 for never
	present int
}

func (s *fakeSurface) Clear() {
	s.clears++
	s.calls = nil
}

func (s *fakeSurface) DrawImage(tex assets.Texture, dst image.Rectangle) error {
	s.calls = append(s.calls, drawCall{kind: "image", tex: tex, rect: dst})
	if s.failAt == len(s.calls) {
		return errors.New("device lost")
	}
	return nil
}

func (s *fakeSurface) DrawText(face assets.Face, content string, clr color.RGBA, at image.Point) error {
	s.calls = append(s.calls, drawCall{kind: "text", face: face, content: content, clr: clr, rect: image.Rectangle{Min: at, Max: at}})
	if s.failAt == len(s.calls) {
		return errors.New("device lost")
	}
	return nil
}

func (s *fakeSurface) Present() error {
	s.present++
	return nil
}

type fakeInput struct {
	pending []entity.InputEvent
}

func (f *fakeInput) PollEvents() []entity.InputEvent {
	evs := f.pending
	f.pending = nil
	return evs
}

type fakeClock struct {
	now    time.Time
	sleeps []time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Sleep(d time.Duration) {
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

type recordingEmitter struct {
	msgs []string
}

func (e *recordingEmitter) Emit(msg []byte) error {
	e.msgs = append(e.msgs, string(msg))
	return nil
}

// harness bundles a loop with all of its fakes
type harness struct {
	loop    *Loop
	queue   *snapshot.Queue
	window  *fakeWindow
	loader  *fakeLoader
	surface *fakeSurface
	input   *fakeInput
	clock   *fakeClock
	events  *recordingEmitter
}

func newHarness() *harness {
	h := &harness{
		queue:   snapshot.NewQueue(16),
		window:  &fakeWindow{width: 800, height: 600},
		loader:  &fakeLoader{missing: make(map[string]bool)},
		surface: &fakeSurface{},
		input:   &fakeInput{},
		clock:   newFakeClock(),
		events:  &recordingEmitter{},
	}
	logger := logging.New(io.Discard, false)
	roots := assets.Roots{Images: "images", Fonts: "fonts"}
	h.loop = NewLoop(Params{
		Source:     h.queue,
		Reconciler: system.NewReconciler(h.window, h.window, system.ReconcileConfig{Roots: roots}, logger),
		Animation:  system.NewAnimationSystem(),
		Reporter:   report.NewReporter(h.events, report.Options{MouseMotion: true}),
		Cache:      assets.NewCache(h.loader, roots),
		Window:     h.window,
		Input:      h.input,
		Clock:      h.clock,
		Logger:     logger,
	})
	return h
}

func (h *harness) push(snap *entity.Snapshot) {
	raw, err := snapshot.Encode(snap)
	if err != nil {
		panic(err)
	}
	h.queue.Push(raw)
}
