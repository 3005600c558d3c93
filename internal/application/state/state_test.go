package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoopState_String(t *testing.T) {
	tests := []struct {
		state    LoopState
		expected string
	}{
		{StateWaiting, "Waiting"},
		{StateLive, "Live"},
		{StateQuitting, "Quitting"},
		{LoopState(99), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.state.String())
		})
	}
}

func TestLoopStateConstants(t *testing.T) {
	// Verify the iota ordering
	assert.Equal(t, LoopState(0), StateWaiting)
	assert.Equal(t, LoopState(1), StateLive)
	assert.Equal(t, LoopState(2), StateQuitting)
}

func TestLoopState_Done(t *testing.T) {
	assert.False(t, StateWaiting.Done())
	assert.False(t, StateLive.Done())
	assert.True(t, StateQuitting.Done())
}
