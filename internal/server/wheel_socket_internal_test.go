package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWheelSessionEmitNeverBlocks(t *testing.T) {
	stops := 0
	ws := &wheelSession{
		field: fieldHour,
		out:   make(chan wheelEvent, 1),
		stop:  func() { stops++ },
	}

	ws.emit(wheelEvent{Type: "change", Value: 9})
	assert.Len(t, ws.out, 1)

	// a full queue drops animation frames and keeps the client
	ws.emit(wheelEvent{Type: "progress", Fraction: 0.5})
	assert.Equal(t, 0, stops)

	// but a lost value change disconnects it
	ws.emit(wheelEvent{Type: "change", Value: 10})
	assert.Equal(t, 1, stops)

	ev := <-ws.out
	assert.Equal(t, 9, ev.Value)
}
