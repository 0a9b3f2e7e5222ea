package wheel_test

import (
	"testing"
	"time"

	"github.com/alkime/podcurate/internal/wheel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSurface_Wheel(t *testing.T) {
	var last int
	w, err := wheel.New(undamped(), wheel.Range(0, 59), 58,
		wheel.WithOnChange(func(c wheel.Change[int]) { last = c.To }))
	require.NoError(t, err)

	s := wheel.SurfaceOf(w)
	s.Step(3)
	assert.Equal(t, 1, last)

	start := time.Unix(0, 0)
	s.Drag(wheel.Sample{Translation: 40, At: start})
	s.Release(start)
	assert.True(t, s.Decelerating())

	s.Tick(start.Add(time.Second))
	assert.False(t, s.Decelerating())
	assert.Equal(t, 2, last)
	assert.Zero(t, s.Offset())
}

func TestSurface_Binary(t *testing.T) {
	toggles := 0
	b, err := wheel.NewBinary(wheel.DefaultConfig(), "AM", "PM", "AM",
		wheel.WithOnChange(func(wheel.Change[string]) { toggles++ }))
	require.NoError(t, err)

	s := wheel.BinarySurfaceOf(b)
	s.Step(2)
	assert.Zero(t, toggles)
	s.Step(-1)
	assert.Equal(t, 1, toggles)
	assert.Equal(t, "PM", b.Value())

	s.Drag(wheel.Sample{Translation: 20})
	assert.InDelta(t, 20, s.Offset(), 1e-9)
	s.Tick(time.Now())
	assert.False(t, s.Decelerating())
	s.Release(time.Now())
	assert.Equal(t, "AM", b.Value())
	assert.Zero(t, s.Offset())
}
