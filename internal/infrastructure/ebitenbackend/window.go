// Package ebitenbackend implements the renderer's window, input, drawing and
// asset loading capabilities on ebiten.
package ebitenbackend

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// Window tracks the canvas size and forwards window changes to ebiten
type Window struct {
	width  int
	height int
	title  string
}

// NewWindow sizes the ebiten window and returns its handle.
// Closing is handled by the input poller so it can be reported as quit.
func NewWindow(width, height int, title string) *Window {
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowClosingHandled(true)
	return &Window{width: width, height: height, title: title}
}

// CanvasSize returns the logical canvas size
func (w *Window) CanvasSize() (int, int) {
	return w.width, w.height
}

// Resize changes the window and canvas size
func (w *Window) Resize(width, height int) error {
	w.width, w.height = width, height
	ebiten.SetWindowSize(width, height)
	return nil
}

// SetTitle sets the window title when it changed
func (w *Window) SetTitle(title string) {
	if title == w.title {
		return
	}
	w.title = title
	ebiten.SetWindowTitle(title)
}

// SetIcon sets the window icon
func (w *Window) SetIcon(icon image.Image) {
	ebiten.SetWindowIcon([]image.Image{icon})
}
