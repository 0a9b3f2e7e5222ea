package wheel_test

import (
	"testing"
	"time"

	"github.com/alkime/podcurate/internal/wheel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// undamped keeps drag distances and step distances in the same units.
func undamped() wheel.Config {
	return wheel.Config{Damping: 1}.WithDefaults()
}

func newHours(t *testing.T, cfg wheel.Config, initial int, opts ...wheel.Option[int]) *wheel.Wheel[int] {
	t.Helper()

	w, err := wheel.New(cfg, wheel.Range(1, 12), initial, opts...)
	require.NoError(t, err)

	return w
}

// dragTo feeds samples from 0 to total in increments of step.
func dragTo(w *wheel.Wheel[int], total, step float64, at time.Time) {
	n := int(total / step)
	for i := 1; i <= n; i++ {
		w.Drag(wheel.Sample{Translation: step * float64(i), At: at})
	}
}

func TestWheel_WrapsAtBoundaries(t *testing.T) {
	t.Run("step forward from 12 yields 1", func(t *testing.T) {
		w := newHours(t, undamped(), 12)
		ch, ok := w.Step(1)
		require.True(t, ok)
		assert.Equal(t, wheel.Change[int]{From: 12, To: 1, Steps: 1}, ch)
		assert.Equal(t, 1, w.Read())
	})

	t.Run("step back from 1 yields 12", func(t *testing.T) {
		w := newHours(t, undamped(), 1)
		_, ok := w.Step(-1)
		require.True(t, ok)
		assert.Equal(t, 12, w.Read())
	})

	t.Run("dragging one step distance from 12 yields 1", func(t *testing.T) {
		w := newHours(t, undamped(), 12)
		dragTo(w, 60, 10, time.Now())
		assert.Equal(t, 1, w.Read())
	})

	t.Run("minutes wrap 59 to 0", func(t *testing.T) {
		w, err := wheel.New(undamped(), wheel.Range(0, 59), 59)
		require.NoError(t, err)
		w.Step(1)
		assert.Equal(t, 0, w.Read())
		assert.Equal(t, 59, w.Neighbor(-1))
		assert.Equal(t, 1, w.Neighbor(1))
	})
}

func TestWheel_MonotonicDrag(t *testing.T) {
	for _, tc := range []struct {
		name  string
		total float64
		step  float64
		want  int
	}{
		{name: "three steps forward", total: 190, step: 10, want: 11},
		{name: "three steps backward", total: -190, step: -10, want: 5},
		{name: "just short of one step", total: 50, step: 10, want: 8},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var changes int
			w := newHours(t, undamped(), 8, wheel.WithOnChange(func(wheel.Change[int]) {
				changes++
			}))

			now := time.Now()
			dragTo(w, tc.total, tc.step, now)
			assert.Equal(t, tc.want, w.Read(), "value changes live while dragging")

			_, moved := w.Release(now)
			assert.False(t, moved, "slow release must not add a residual step")
			assert.False(t, w.Decelerating())
			assert.Equal(t, tc.want, w.Read())
			assert.Zero(t, w.Offset())

			wantChanges := tc.want - 8
			if wantChanges < 0 {
				wantChanges = -wantChanges
			}
			assert.Equal(t, wantChanges, changes, "one change event per crossed step")
		})
	}
}

func TestWheel_DampingScalesTranslation(t *testing.T) {
	w := newHours(t, wheel.DefaultConfig(), 8)

	// 80 * 0.7 = 56, still short of the 60 point step distance.
	w.Drag(wheel.Sample{Translation: 80})
	assert.Equal(t, 8, w.Read())

	// 100 * 0.7 = 70 crosses it.
	w.Drag(wheel.Sample{Translation: 100})
	assert.Equal(t, 9, w.Read())
	assert.InDelta(t, 10, w.Offset(), 1e-9)
}

func TestWheel_FlingMomentum(t *testing.T) {
	var frames []wheel.Progress
	w := newHours(t, undamped(), 8, wheel.WithOnProgress[int](func(p wheel.Progress) {
		frames = append(frames, p)
	}))

	start := time.Now()

	// One fast sample: delta 30, velocity 15, no whole step yet.
	w.Drag(wheel.Sample{Translation: 30, At: start})
	require.Equal(t, 8, w.Read())
	require.InDelta(t, 15, w.Velocity(), 1e-9)

	_, moved := w.Release(start)
	require.False(t, moved)
	require.True(t, w.Decelerating())

	t.Run("input is locked while decelerating", func(t *testing.T) {
		_, ok := w.Drag(wheel.Sample{Translation: 500, At: start})
		assert.False(t, ok)
		_, ok = w.Step(3)
		assert.False(t, ok)
		assert.Equal(t, 8, w.Read())
	})

	t.Run("mid animation frame eases the offset", func(t *testing.T) {
		_, ok := w.Tick(start.Add(400 * time.Millisecond))
		assert.False(t, ok)
		assert.True(t, w.Decelerating())
		// cubic ease-out at 0.5 is 0.875: 30 + 30*0.875.
		assert.InDelta(t, 56.25, w.Offset(), 1e-9)
	})

	t.Run("final frame settles the momentum", func(t *testing.T) {
		ch, ok := w.Tick(start.Add(800 * time.Millisecond))
		require.True(t, ok)
		assert.Equal(t, wheel.Change[int]{From: 8, To: 9, Steps: 1}, ch)
		assert.False(t, w.Decelerating())
		assert.Zero(t, w.Offset())
	})

	require.NotEmpty(t, frames)
	assert.InDelta(t, 1.0, frames[len(frames)-1].Fraction, 1e-9)

	_, ok := w.Tick(start.Add(time.Second))
	assert.False(t, ok, "ticks after settling are no-ops")
}

func TestWheel_FlingIsCapped(t *testing.T) {
	w, err := wheel.New(undamped(), wheel.Range(0, 59), 0)
	require.NoError(t, err)

	start := time.Now()

	// 600 points at once: ten live steps and a velocity of 300.
	w.Drag(wheel.Sample{Translation: 600, At: start})
	require.Equal(t, 10, w.Read())

	w.Release(start)
	require.True(t, w.Decelerating())

	// The extra offset is capped at 120 points, two more steps.
	w.Tick(start.Add(time.Second))
	assert.Equal(t, 12, w.Read())
}

func TestWheel_ValueOutsideDomainIsLeftUnchanged(t *testing.T) {
	w := newHours(t, undamped(), 13)

	_, ok := w.Step(1)
	assert.False(t, ok)

	dragTo(w, 130, 10, time.Now())
	assert.Equal(t, 13, w.Read())
	assert.Equal(t, 13, w.Neighbor(1))
}

func TestWheel_Set(t *testing.T) {
	w := newHours(t, undamped(), 8)

	assert.True(t, w.Set(12))
	assert.Equal(t, 12, w.Read())
	assert.False(t, w.Set(0))
	assert.Equal(t, 12, w.Read())
}

func TestNew_Errors(t *testing.T) {
	_, err := wheel.New[int](undamped(), nil, 1)
	require.ErrorIs(t, err, wheel.ErrEmptyDomain)

	_, err = wheel.New(wheel.Config{StepDistance: -1}, wheel.Range(1, 12), 1)
	require.ErrorIs(t, err, wheel.ErrInvalidConfig)
}

func TestRange(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3}, wheel.Range(1, 3))
	assert.Len(t, wheel.Range(0, 59), 60)
	assert.Nil(t, wheel.Range(3, 1))
}
