package replay

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/younwookim/puppet/internal/application/snapshot"
)

// Recorder is a snapshot source that records every message it hands out
type Recorder struct {
	source snapshot.Source
	data   ReplayData
	start  time.Time
	now    func() time.Time
}

// NewRecorder wraps source and starts recording
func NewRecorder(source snapshot.Source) *Recorder {
	return newRecorder(source, time.Now)
}

func newRecorder(source snapshot.Source, now func() time.Time) *Recorder {
	start := now()
	return &Recorder{
		source: source,
		data: ReplayData{
			Version:   Version,
			Session:   uuid.NewString(),
			StartTime: start.Format(time.RFC3339),
			Messages:  make([]Message, 0, 256),
		},
		start: start,
		now:   now,
	}
}

// TryRecv implements snapshot.Source
func (r *Recorder) TryRecv() ([]byte, bool, bool) {
	msg, ok, closed := r.source.TryRecv()
	if ok {
		r.data.Messages = append(r.data.Messages, Message{
			At:   r.now().Sub(r.start).Milliseconds(),
			Data: string(msg),
		})
	}
	return msg, ok, closed
}

// Save writes the recording to a file
func (r *Recorder) Save(filename string) error {
	if len(r.data.Messages) == 0 {
		return fmt.Errorf("no messages to save")
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() { _ = file.Close() }()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(r.data); err != nil {
		return fmt.Errorf("failed to encode replay: %w", err)
	}

	return nil
}

// MessageCount returns the number of recorded messages
func (r *Recorder) MessageCount() int {
	return len(r.data.Messages)
}

// Session returns the session id stamped into the recording
func (r *Recorder) Session() string {
	return r.data.Session
}
