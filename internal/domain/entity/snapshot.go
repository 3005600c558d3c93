package entity

import (
	"image/color"
	"time"
)

// DefaultFPS is used when a snapshot does not declare a frame rate.
const DefaultFPS = 60

// Point is a position in canvas pixels
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Size is a width/height pair in canvas pixels
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// RGBA is an 8-bit per channel color as sent by the controller
type RGBA struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// Color converts to an image/color value
func (c RGBA) Color() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// WindowConfig describes the renderer window for one snapshot
type WindowConfig struct {
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Background string `json:"background" jsonschema:"description=Background image stretched over the canvas"`
	Title      string `json:"title,omitempty"`
	IconPath   string `json:"icon_path,omitempty" jsonschema:"description=Window icon; only the first snapshot is honored"`
}

// SpriteDesc is one sprite as described by the controller
type SpriteDesc struct {
	ID       string   `json:"id"`
	Images   []string `json:"images" jsonschema:"description=Animation frames in display order"`
	Location Point    `json:"location"`
	Size     Size     `json:"size"`
	// FrameDelay is the minimum display duration of one frame in milliseconds
	FrameDelay uint `json:"frame_delay,omitempty" jsonschema:"description=Minimum milliseconds per frame"`
}

// TextDesc is one text overlay as described by the controller
type TextDesc struct {
	ID         string `json:"id"`
	FontFamily string `json:"font_family,omitempty" jsonschema:"description=Font file; default_font when empty"`
	Content    string `json:"content"`
	Size       uint16 `json:"size"`
	Color      *RGBA  `json:"color,omitempty"`
	Location   Point  `json:"location"`
}

// TextColor returns the declared color, or opaque black
func (t TextDesc) TextColor() color.RGBA {
	if t.Color == nil {
		return color.RGBA{A: 255}
	}
	return t.Color.Color()
}

// Snapshot is one decoded scene description. It is consumed by exactly one
// reconciliation and never mutated afterwards.
type Snapshot struct {
	Window      WindowConfig `json:"window"`
	Sprites     []SpriteDesc `json:"sprites"`
	Text        []TextDesc   `json:"text"`
	DefaultFont string       `json:"default_font"`
	FPS         uint         `json:"fps,omitempty" jsonschema:"description=Target frame rate; 60 when absent or zero"`
}

// FrameDuration returns the target tick duration, 1000/fps whole milliseconds.
func (s *Snapshot) FrameDuration() time.Duration {
	return FrameDurationForFPS(s.FPS)
}

// FrameDurationForFPS converts a frame rate to a whole-millisecond tick
// duration of at least one millisecond. Zero means DefaultFPS.
func FrameDurationForFPS(fps uint) time.Duration {
	if fps == 0 {
		fps = DefaultFPS
	}
	return max(time.Duration(1000/fps)*time.Millisecond, time.Millisecond)
}
