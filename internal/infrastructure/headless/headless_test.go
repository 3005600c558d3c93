package headless

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/puppet/internal/domain/entity"
	"github.com/younwookim/puppet/internal/infrastructure/logging"
)

func createTestLoader() *Loader {
	return NewLoader(logging.New(io.Discard, true))
}

func TestWindow(t *testing.T) {
	w := NewWindow(800, 600, "Simple 2D Renderer")

	require.NoError(t, w.Resize(320, 240))
	wd, ht := w.CanvasSize()
	assert.Equal(t, 320, wd)
	assert.Equal(t, 240, ht)

	assert.Error(t, w.Resize(0, 240))
	wd, _ = w.CanvasSize()
	assert.Equal(t, 320, wd, "failed resize keeps the old size")

	w.SetTitle("Tanks")
	assert.Equal(t, "Tanks", w.Title)
}

func TestInput_QuitOnceAfterCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	in := NewInput(ctx)

	assert.Empty(t, in.PollEvents())

	cancel()
	assert.Equal(t, []entity.InputEvent{{Kind: entity.InputQuit}}, in.PollEvents())
	assert.Empty(t, in.PollEvents(), "quit is reported once")
}

func TestCanvas_Counts(t *testing.T) {
	c := &Canvas{}
	c.Clear()
	require.NoError(t, c.DrawImage(nil, image.Rect(0, 0, 1, 1)))
	require.NoError(t, c.DrawText(nil, "hi", color.RGBA{A: 255}, image.Pt(0, 0)))
	require.NoError(t, c.Present())

	assert.Equal(t, Canvas{Frames: 1, Images: 1, Texts: 1}, *c)
}

func TestLoader_LoadImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "p1.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, 20, 10))))
	require.NoError(t, f.Close())

	tex, err := createTestLoader().LoadImage(path)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 20, 10), tex.Bounds())

	icon, err := createTestLoader().LoadIcon(path)
	require.NoError(t, err)
	assert.Equal(t, 20, icon.Bounds().Dx())
}

func TestLoader_LoadImage_Missing(t *testing.T) {
	_, err := createTestLoader().LoadImage(filepath.Join(t.TempDir(), "missing.png"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoader_LoadFont_Errors(t *testing.T) {
	dir := t.TempDir()
	l := createTestLoader()

	_, err := l.LoadFont(filepath.Join(dir, "missing.ttf"), 12)
	assert.ErrorIs(t, err, os.ErrNotExist)

	broken := filepath.Join(dir, "broken.ttf")
	require.NoError(t, os.WriteFile(broken, []byte("definitely not a font"), 0o644))
	_, err = l.LoadFont(broken, 12)
	assert.ErrorContains(t, err, "failed to parse font")
}
