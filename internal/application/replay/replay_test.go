package replay

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/puppet/internal/application/snapshot"
)

// fakeSource hands out queued messages, then reports closed
type fakeSource struct {
	msgs []string
}

func (f *fakeSource) TryRecv() ([]byte, bool, bool) {
	if len(f.msgs) == 0 {
		return nil, false, true
	}
	msg := f.msgs[0]
	f.msgs = f.msgs[1:]
	return []byte(msg), true, false
}

type steppingClock struct {
	now  time.Time
	step time.Duration
}

func (c *steppingClock) Now() time.Time {
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}

func createTestReplayData(n int, spacing time.Duration) ReplayData {
	data := ReplayData{
		Version:   Version,
		Session:   uuid.NewString(),
		StartTime: "2024-01-01T00:00:00Z",
		Messages:  make([]Message, n),
	}
	for i := range data.Messages {
		data.Messages[i] = Message{At: int64(i) * spacing.Milliseconds(), Data: string(rune('a' + i))}
	}
	return data
}

func drain(q *snapshot.Queue) (msgs []string, closed bool) {
	for {
		msg, ok, c := q.TryRecv()
		if c {
			return msgs, true
		}
		if !ok {
			return msgs, false
		}
		msgs = append(msgs, string(msg))
	}
}

func TestRecorder_RecordsPassThrough(t *testing.T) {
	clock := &steppingClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), step: 10 * time.Millisecond}
	src := &fakeSource{msgs: []string{"one", "two"}}
	rec := newRecorder(src, clock.Now)

	msg, ok, closed := rec.TryRecv()
	require.True(t, ok)
	assert.False(t, closed)
	assert.Equal(t, "one", string(msg))

	rec.TryRecv()
	_, ok, closed = rec.TryRecv()
	assert.False(t, ok)
	assert.True(t, closed)

	require.Equal(t, 2, rec.MessageCount())
	assert.Equal(t, []Message{{At: 10, Data: "one"}, {At: 20, Data: "two"}}, rec.data.Messages)
	_, err := uuid.Parse(rec.Session())
	assert.NoError(t, err)
}

func TestRecorder_SaveAndLoad(t *testing.T) {
	rec := NewRecorder(&fakeSource{msgs: []string{"one", "two", "three"}})
	for i := 0; i < 3; i++ {
		rec.TryRecv()
	}
	filename := filepath.Join(t.TempDir(), "session.json")

	require.NoError(t, rec.Save(filename))

	data, err := LoadReplay(filename)
	require.NoError(t, err)
	assert.Equal(t, Version, data.Version)
	assert.Equal(t, rec.Session(), data.Session)
	require.Len(t, data.Messages, 3)
	assert.Equal(t, "three", data.Messages[2].Data)
}

func TestRecorder_SaveEmpty(t *testing.T) {
	rec := NewRecorder(&fakeSource{})

	err := rec.Save(filepath.Join(t.TempDir(), "empty.json"))
	assert.Error(t, err)
}

func TestLoadReplay_Missing(t *testing.T) {
	_, err := LoadReplay(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestReplayer_Next(t *testing.T) {
	replayer := NewReplayer(createTestReplayData(3, 10*time.Millisecond))

	assert.Equal(t, 3, replayer.TotalMessages())
	for _, want := range []string{"a", "b", "c"} {
		msg, ok := replayer.Next()
		require.True(t, ok)
		assert.Equal(t, want, msg.Data)
	}
	_, ok := replayer.Next()
	assert.False(t, ok, "exhausted")
}

func TestReplayer_Play(t *testing.T) {
	replayer := NewReplayer(createTestReplayData(3, 5*time.Millisecond))
	q := snapshot.NewQueue(8)

	start := time.Now()
	replayer.Play(context.Background(), q)

	assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond, "last message waits for its offset")
	msgs, closed := drain(q)
	assert.Equal(t, []string{"a", "b", "c"}, msgs)
	assert.True(t, closed)
}

func TestReplayer_Play_Cancelled(t *testing.T) {
	replayer := NewReplayer(createTestReplayData(3, time.Hour))
	q := snapshot.NewQueue(8)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		replayer.Play(ctx, q)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Play did not stop after cancel")
	}
	msgs, closed := drain(q)
	assert.LessOrEqual(t, len(msgs), 1, "only the message due at once may have been pushed")
	assert.True(t, closed)
}
