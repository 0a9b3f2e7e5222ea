package wheel_test

import (
	"testing"
	"time"

	"github.com/alkime/podcurate/internal/wheel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMeridiem(t *testing.T, initial string, opts ...wheel.Option[string]) *wheel.Binary[string] {
	t.Helper()

	b, err := wheel.NewBinary(wheel.DefaultConfig(), "AM", "PM", initial, opts...)
	require.NoError(t, err)

	return b
}

func TestBinary_ToggleThresholds(t *testing.T) {
	for _, tc := range []struct {
		name    string
		samples []float64
		want    string
	}{
		{name: "slow drag past offset threshold toggles", samples: []float64{5, 10, 15}, want: "PM"},
		{name: "upward drag toggles too", samples: []float64{-5, -10, -15}, want: "PM"},
		{name: "fast flick toggles", samples: []float64{8}, want: "PM"},
		{name: "small slow drag does not toggle", samples: []float64{3, 6, 9}, want: "AM"},
		{name: "exactly at thresholds does not toggle", samples: []float64{5, 10}, want: "AM"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var toggles int
			b := newMeridiem(t, "AM", wheel.WithOnChange(func(wheel.Change[string]) {
				toggles++
			}))

			for _, s := range tc.samples {
				b.Drag(wheel.Sample{Translation: s})
			}

			_, toggled := b.Release(time.Now())
			assert.Equal(t, tc.want, b.Value())
			assert.Equal(t, tc.want == "PM", toggled)
			assert.Zero(t, b.Offset(), "offset resets regardless of outcome")

			if toggled {
				assert.Equal(t, 1, toggles, "toggles exactly once")
			} else {
				assert.Zero(t, toggles)
			}
		})
	}
}

func TestBinary_OffsetIsClamped(t *testing.T) {
	b := newMeridiem(t, "PM")

	b.Drag(wheel.Sample{Translation: 100})
	assert.InDelta(t, 30, b.Offset(), 1e-9)

	b.Drag(wheel.Sample{Translation: -100})
	assert.InDelta(t, -30, b.Offset(), 1e-9)

	ch, ok := b.Release(time.Now())
	require.True(t, ok)
	assert.Equal(t, "PM", ch.From)
	assert.Equal(t, "AM", ch.To)
}

func TestBinary_SetAndToggle(t *testing.T) {
	b := newMeridiem(t, "AM")
	assert.Equal(t, "PM", b.Other())

	b.Toggle()
	assert.Equal(t, "PM", b.Value())
	assert.Equal(t, "AM", b.Other())

	b.Toggle()
	assert.Equal(t, "AM", b.Value())

	assert.True(t, b.Set("PM"))
	assert.False(t, b.Set("XM"))
	assert.Equal(t, "PM", b.Value())
}

func TestNewBinary_RejectsForeignInitial(t *testing.T) {
	_, err := wheel.NewBinary(wheel.DefaultConfig(), "AM", "PM", "noon")
	require.Error(t, err)
}
