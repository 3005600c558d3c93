// Package report translates input events into the outbound controller
// protocol: one JSON object per event, delivered immediately.
package report

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/younwookim/puppet/internal/domain/entity"
)

// Emitter delivers one encoded message to the controller
type Emitter interface {
	Emit(msg []byte) error
}

// LineEmitter writes each message as one line and flushes it
type LineEmitter struct {
	w *bufio.Writer
}

// NewLineEmitter creates a line emitter over w (usually stdout)
func NewLineEmitter(w io.Writer) *LineEmitter {
	return &LineEmitter{w: bufio.NewWriter(w)}
}

// Emit implements Emitter
func (e *LineEmitter) Emit(msg []byte) error {
	if _, err := e.w.Write(msg); err != nil {
		return err
	}
	if err := e.w.WriteByte('\n'); err != nil {
		return err
	}
	return e.w.Flush()
}

// Options toggles optional messages
type Options struct {
	MouseMotion bool
}

// Reporter maps input events to outbound messages
type Reporter struct {
	emitter Emitter
	opts    Options
	sent    int
}

// NewReporter creates a new reporter
func NewReporter(emitter Emitter, opts Options) *Reporter {
	return &Reporter{emitter: emitter, opts: opts}
}

// Report translates one input event and emits it
func (r *Reporter) Report(ev entity.InputEvent) error {
	var msg any
	switch ev.Kind {
	case entity.InputQuit:
		msg = QuitMessage{Action: ActionQuit}
	case entity.InputKeyDown:
		msg = KeyMessage{Action: ActionKeyDown, Keycode: ev.Key}
	case entity.InputKeyUp:
		msg = KeyMessage{Action: ActionKeyUp, Keycode: ev.Key}
	case entity.InputButtonDown:
		msg = ButtonMessage{Action: ActionMouseButtonDown, Button: ev.Button, X: ev.X, Y: ev.Y}
	case entity.InputButtonUp:
		msg = ButtonMessage{Action: ActionMouseButtonUp, Button: ev.Button, X: ev.X, Y: ev.Y}
	case entity.InputMotion:
		if !r.opts.MouseMotion {
			return nil
		}
		msg = MotionMessage{Action: ActionMouseMotion, X: ev.X, Y: ev.Y}
	default:
		return fmt.Errorf("unknown input event %v", ev.Kind)
	}
	return r.send(msg)
}

// Hover emits a hover message for the sprite with the given id
func (r *Reporter) Hover(spriteID string) error {
	return r.send(HoverMessage{Action: ActionHover, Sprite: spriteID})
}

// Sent returns the number of messages emitted
func (r *Reporter) Sent() int {
	return r.sent
}

func (r *Reporter) send(msg any) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}
	if err := r.emitter.Emit(data); err != nil {
		return fmt.Errorf("failed to emit event: %w", err)
	}
	r.sent++
	return nil
}
