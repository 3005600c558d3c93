package replay

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/younwookim/puppet/internal/application/snapshot"
)

// Replayer plays a recorded session back
type Replayer struct {
	data ReplayData
	next int
}

// NewReplayer creates a new replayer from replay data
func NewReplayer(data ReplayData) *Replayer {
	return &Replayer{data: data}
}

// LoadReplay loads replay data from a file
func LoadReplay(filename string) (*ReplayData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var data ReplayData
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode replay: %w", err)
	}
	if data.Version != Version {
		return nil, fmt.Errorf("unsupported replay version %q", data.Version)
	}

	return &data, nil
}

// Next returns the next recorded message and advances
func (r *Replayer) Next() (Message, bool) {
	if r.next >= len(r.data.Messages) {
		return Message{}, false
	}
	msg := r.data.Messages[r.next]
	r.next++
	return msg, true
}

// Play pushes every remaining message into q at its recorded offset from
// the moment Play is called, then closes q. It returns early, still closing
// q, when ctx is done.
func (r *Replayer) Play(ctx context.Context, q *snapshot.Queue) {
	defer q.Close()

	start := time.Now()
	timer := time.NewTimer(0)
	defer timer.Stop()
	<-timer.C

	for {
		msg, ok := r.Next()
		if !ok {
			return
		}
		if wait := time.Duration(msg.At)*time.Millisecond - time.Since(start); wait > 0 {
			timer.Reset(wait)
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}
		} else if ctx.Err() != nil {
			return
		}
		q.Push([]byte(msg.Data))
	}
}

// TotalMessages returns the number of recorded messages
func (r *Replayer) TotalMessages() int {
	return len(r.data.Messages)
}

// Session returns the recorded session id
func (r *Replayer) Session() string {
	return r.data.Session
}
