package entity

import (
	"image"
	"time"
)

// Sprite is the renderer's persistent view of one controller sprite.
//
// Frame and Elapsed carry animation continuity across snapshots; every other
// field is replaced by each reconciliation.
type Sprite struct {
	ID         string
	Images     []string
	Location   Point
	Size       Size
	FrameDelay time.Duration // Minimum display duration of one frame

	Frame   int           // Index into Images, always valid when Images is non-empty
	Elapsed time.Duration // Time accumulated since the last frame advance
}

// NewSprite creates a sprite at frame 0 with no accumulated time
func NewSprite(desc SpriteDesc) *Sprite {
	s := &Sprite{}
	s.Describe(desc)
	return s
}

// Describe copies the descriptive fields of desc, keeping Frame and Elapsed.
func (s *Sprite) Describe(desc SpriteDesc) {
	s.ID = desc.ID
	s.Images = append([]string(nil), desc.Images...)
	s.Location = desc.Location
	s.Size = desc.Size
	s.FrameDelay = time.Duration(desc.FrameDelay) * time.Millisecond
	if s.Frame >= len(s.Images) {
		s.Frame = 0
	}
}

// CurrentImage returns the image reference of the current frame
func (s *Sprite) CurrentImage() (string, bool) {
	if s.Frame < 0 || s.Frame >= len(s.Images) {
		return "", false
	}
	return s.Images[s.Frame], true
}

// Bounds returns the sprite's bounding box on the canvas
func (s *Sprite) Bounds() image.Rectangle {
	return image.Rect(s.Location.X, s.Location.Y, s.Location.X+s.Size.Width, s.Location.Y+s.Size.Height)
}

// Contains reports whether the point lies inside the bounding box.
// The right and bottom edges are exclusive.
func (s *Sprite) Contains(x, y int) bool {
	return image.Pt(x, y).In(s.Bounds())
}

// Scene is the live scene. It is created by the first successful
// reconciliation and mutated in place afterwards; the render loop is its only
// owner.
type Scene struct {
	Window        WindowConfig
	Sprites       []*Sprite
	Text          []TextDesc
	DefaultFont   string
	FrameDuration time.Duration
}

// Sprite looks up a live sprite by id
func (s *Scene) Sprite(id string) (*Sprite, bool) {
	for _, sp := range s.Sprites {
		if sp.ID == id {
			return sp, true
		}
	}
	return nil, false
}
