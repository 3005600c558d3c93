// Package snapshot moves encoded scene descriptions from a transport to the
// render loop and decodes them.
package snapshot

import (
	"bufio"
	"bytes"
	"io"

	"github.com/dustin/go-humanize"

	"github.com/younwookim/puppet/internal/infrastructure/logging"
)

// Source supplies raw encoded snapshot messages to the render loop.
//
// TryRecv never blocks. It returns ok=false when nothing is pending, and
// closed=true once the producer has stopped and every message was taken.
type Source interface {
	TryRecv() (msg []byte, ok bool, closed bool)
}

// Queue is a single-producer/single-consumer message queue. The producer
// blocks when it is full; the consumer never does.
type Queue struct {
	ch chan []byte
}

// NewQueue creates a queue holding up to size pending messages
func NewQueue(size int) *Queue {
	return &Queue{ch: make(chan []byte, size)}
}

// Push enqueues one message. Only the producer may call it.
func (q *Queue) Push(msg []byte) {
	q.ch <- msg
}

// Close marks the end of the stream. Only the producer may call it, once.
func (q *Queue) Close() {
	close(q.ch)
}

// TryRecv implements Source
func (q *Queue) TryRecv() ([]byte, bool, bool) {
	select {
	case msg, ok := <-q.ch:
		if !ok {
			return nil, false, true
		}
		return msg, true, false
	default:
		return nil, false, false
	}
}

// Pending returns the number of queued messages
func (q *Queue) Pending() int {
	return len(q.ch)
}

// ReadLines starts the producer for a line-oriented transport: every
// non-empty line of r becomes one message. It returns immediately; the queue
// is closed on end of stream or the first read error, which is logged.
//
// A line longer than maxBytes is discarded and logged. Reading resumes with
// the next line.
func ReadLines(r io.Reader, q *Queue, maxBytes int, logger *logging.Logger) {
	go func() {
		defer q.Close()

		br := bufio.NewReaderSize(r, min(64*1024, maxBytes))
		var line []byte
		oversize := false
		for {
			chunk, err := br.ReadSlice('\n')
			complete := bytes.HasSuffix(chunk, []byte("\n"))
			if !oversize {
				if len(line)+len(bytes.TrimSuffix(chunk, []byte("\n"))) > maxBytes {
					oversize = true
					line = line[:0]
				} else {
					line = append(line, chunk...)
				}
			}
			if err == bufio.ErrBufferFull {
				continue
			}
			if complete || (err == io.EOF && (oversize || len(line) > 0)) {
				if oversize {
					logger.Errorf("discarding snapshot line over %s", humanize.IBytes(uint64(maxBytes)))
				} else if msg := bytes.TrimSpace(line); len(msg) > 0 {
					q.Push(append([]byte(nil), msg...))
				}
				line = line[:0]
				oversize = false
			}
			if err == io.EOF {
				return
			}
			if err != nil {
				logger.Errorf("snapshot stream stopped: %v", err)
				return
			}
		}
	}()
}
