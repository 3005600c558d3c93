package engine

import (
	"image"
	"image/color"
	"time"

	"github.com/younwookim/puppet/internal/domain/entity"
	"github.com/younwookim/puppet/internal/infrastructure/assets"
)

// Input drains the input events queued by the backend since the last call
type Input interface {
	PollEvents() []entity.InputEvent
}

// Surface is the drawable canvas of one tick
type Surface interface {
	Clear()
	DrawImage(tex assets.Texture, dst image.Rectangle) error
	DrawText(face assets.Face, content string, clr color.RGBA, at image.Point) error
}

// Presenter shows a drawn frame
type Presenter interface {
	Present() error
}

// Clock is the loop's monotonic time source
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// SystemClock is the wall clock
type SystemClock struct{}

// Now implements Clock
func (SystemClock) Now() time.Time { return time.Now() }

// Sleep implements Clock
func (SystemClock) Sleep(d time.Duration) { time.Sleep(d) }
