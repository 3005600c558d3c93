// Package headless runs the renderer without a window. Assets are still
// decoded so that missing or broken files surface, but nothing is drawn.
package headless

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/younwookim/puppet/internal/domain/entity"
	"github.com/younwookim/puppet/internal/infrastructure/assets"
	"github.com/younwookim/puppet/internal/infrastructure/logging"
)

// Window keeps the window state a real backend would show
type Window struct {
	Width  int
	Height int
	Title  string
	Icon   image.Image
}

// NewWindow creates a window of the given size
func NewWindow(width, height int, title string) *Window {
	return &Window{Width: width, Height: height, Title: title}
}

func (w *Window) CanvasSize() (int, int) {
	return w.Width, w.Height
}

func (w *Window) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", width, height)
	}
	w.Width, w.Height = width, height
	return nil
}

func (w *Window) SetTitle(title string) {
	w.Title = title
}

func (w *Window) SetIcon(icon image.Image) {
	w.Icon = icon
}

// Input reports a single quit event once ctx is done
type Input struct {
	ctx      context.Context
	quitSent bool
}

// NewInput creates an input source bound to ctx
func NewInput(ctx context.Context) *Input {
	return &Input{ctx: ctx}
}

// PollEvents implements the render loop's input capability
func (in *Input) PollEvents() []entity.InputEvent {
	if in.quitSent || in.ctx.Err() == nil {
		return nil
	}
	in.quitSent = true
	return []entity.InputEvent{{Kind: entity.InputQuit}}
}

// Canvas counts draw calls instead of drawing
type Canvas struct {
	Frames int
	Images int
	Texts  int
}

func (c *Canvas) Clear() {}

func (c *Canvas) DrawImage(assets.Texture, image.Rectangle) error {
	c.Images++
	return nil
}

func (c *Canvas) DrawText(assets.Face, string, color.RGBA, image.Point) error {
	c.Texts++
	return nil
}

// Present implements the render loop's presenter
func (c *Canvas) Present() error {
	c.Frames++
	return nil
}

// Face is a parsed font at one size
type Face struct {
	Source *text.GoTextFaceSource
	Size   float64
}

// Loader decodes assets into memory
type Loader struct {
	logger  *logging.Logger
	sources map[string]*text.GoTextFaceSource
}

// NewLoader creates a new loader
func NewLoader(logger *logging.Logger) *Loader {
	return &Loader{
		logger:  logger,
		sources: make(map[string]*text.GoTextFaceSource),
	}
}

// LoadImage implements assets.Loader
func (l *Loader) LoadImage(path string) (assets.Texture, error) {
	img, format, err := assets.DecodeFile(path)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	l.logger.Debugf("decoded %s image %s (%dx%d)", format, path, b.Dx(), b.Dy())
	return img, nil
}

// LoadFont implements assets.Loader
func (l *Loader) LoadFont(path string, size float64) (assets.Face, error) {
	src, ok := l.sources[path]
	if !ok {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		src, err = text.NewGoTextFaceSource(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to parse font: %w", err)
		}
		l.sources[path] = src
		l.logger.Debugf("parsed font %s (%s)", path, humanize.Bytes(uint64(len(data))))
	}
	return &Face{Source: src, Size: size}, nil
}

// LoadIcon decodes a window icon
func (l *Loader) LoadIcon(path string) (image.Image, error) {
	img, _, err := assets.DecodeFile(path)
	return img, err
}
