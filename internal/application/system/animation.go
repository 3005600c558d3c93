package system

import (
	"time"

	"github.com/younwookim/puppet/internal/domain/entity"
)

// MinFrameDelay is the shortest time a frame is shown
const MinFrameDelay = time.Millisecond

// AnimationSystem advances sprite frames with elapsed wall-clock time
type AnimationSystem struct{}

// NewAnimationSystem creates a new animation system
func NewAnimationSystem() *AnimationSystem {
	return &AnimationSystem{}
}

// Update advances every animated sprite of the scene by delta
func (s *AnimationSystem) Update(scene *entity.Scene, delta time.Duration) {
	if scene == nil || delta < 0 {
		return
	}
	for _, sp := range scene.Sprites {
		Advance(sp, delta)
	}
}

// Advance adds delta to the sprite's accumulated time and moves to the next
// frame once the frame delay is reached. The accumulated time restarts from
// zero on advance; the overshoot is dropped. Sprites with fewer than two
// images never advance. It reports whether the frame changed.
func Advance(sp *entity.Sprite, delta time.Duration) bool {
	n := len(sp.Images)
	if n <= 1 {
		return false
	}

	delay := sp.FrameDelay
	if delay < MinFrameDelay {
		delay = MinFrameDelay
	}

	sp.Elapsed += delta
	if sp.Elapsed < delay {
		return false
	}
	sp.Frame = (sp.Frame + 1) % n
	sp.Elapsed = 0
	return true
}
