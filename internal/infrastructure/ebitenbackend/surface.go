package ebitenbackend

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/younwookim/puppet/internal/infrastructure/assets"
)

// Surface draws onto the screen image of one Draw call
type Surface struct {
	screen *ebiten.Image
}

// NewSurface wraps screen
func NewSurface(screen *ebiten.Image) *Surface {
	return &Surface{screen: screen}
}

// Clear fills the screen with opaque black
func (s *Surface) Clear() {
	s.screen.Fill(color.Black)
}

// DrawImage draws tex stretched to dst
func (s *Surface) DrawImage(tex assets.Texture, dst image.Rectangle) error {
	img, ok := tex.(*ebiten.Image)
	if !ok {
		return fmt.Errorf("unsupported texture %T", tex)
	}
	if img.Bounds().Empty() || dst.Empty() {
		return nil
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM = FitGeoM(img.Bounds(), dst)
	op.Filter = ebiten.FilterLinear
	s.screen.DrawImage(img, op)
	return nil
}

// DrawText draws content with its top-left corner at at
func (s *Surface) DrawText(face assets.Face, content string, clr color.RGBA, at image.Point) error {
	f, ok := face.(text.Face)
	if !ok {
		return fmt.Errorf("unsupported font face %T", face)
	}

	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(at.X), float64(at.Y))
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(s.screen, content, f, op)
	return nil
}

// FitGeoM maps the src rectangle onto dst
func FitGeoM(src, dst image.Rectangle) ebiten.GeoM {
	var g ebiten.GeoM
	g.Translate(-float64(src.Min.X), -float64(src.Min.Y))
	g.Scale(float64(dst.Dx())/float64(src.Dx()), float64(dst.Dy())/float64(src.Dy()))
	g.Translate(float64(dst.Min.X), float64(dst.Min.Y))
	return g
}
