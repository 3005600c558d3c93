package ebitenbackend

import (
	"image"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
)

func TestButtonName(t *testing.T) {
	tests := []struct {
		button ebiten.MouseButton
		want   string
	}{
		{ebiten.MouseButtonLeft, "Left"},
		{ebiten.MouseButtonRight, "Right"},
		{ebiten.MouseButtonMiddle, "Middle"},
		{ebiten.MouseButton3, "X1"},
		{ebiten.MouseButton4, "X2"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, ButtonName(tt.button))
		})
	}
}

func TestKeyName(t *testing.T) {
	assert.Equal(t, "Escape", KeyName(ebiten.KeyEscape))
	assert.Equal(t, "A", KeyName(ebiten.KeyA))
}

func TestFitGeoM(t *testing.T) {
	tests := []struct {
		name string
		src  image.Rectangle
		dst  image.Rectangle
	}{
		{"upscale", image.Rect(0, 0, 8, 8), image.Rect(10, 10, 30, 30)},
		{"stretch background", image.Rect(0, 0, 64, 32), image.Rect(0, 0, 800, 600)},
		{"offset source", image.Rect(4, 4, 12, 12), image.Rect(0, 0, 16, 16)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := FitGeoM(tt.src, tt.dst)

			x, y := g.Apply(float64(tt.src.Min.X), float64(tt.src.Min.Y))
			assert.InDelta(t, float64(tt.dst.Min.X), x, 1e-9)
			assert.InDelta(t, float64(tt.dst.Min.Y), y, 1e-9)

			x, y = g.Apply(float64(tt.src.Max.X), float64(tt.src.Max.Y))
			assert.InDelta(t, float64(tt.dst.Max.X), x, 1e-9)
			assert.InDelta(t, float64(tt.dst.Max.Y), y, 1e-9)
		})
	}
}
