// Package wheel implements the drag-driven value pickers used on the schedule
// step: a cyclic wheel that steps through a finite domain while the pointer
// moves and keeps going after a fling, and a two-position wheel for AM/PM.
//
// The models are pure state machines fed with 1-D pointer samples. They know
// nothing about rendering; callers draw Offset() and drive the momentum
// animation by calling Tick on each frame. Neither type is safe for
// concurrent use.
package wheel

import (
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/alkime/podcurate/pkg/collections"
)

// Sample is one pointer position reported during a drag gesture.
// Translation is the cumulative distance from where the gesture started;
// positive values move towards later values in the domain.
type Sample struct {
	Translation float64
	At          time.Time
}

// Change describes a value transition caused by input or momentum.
type Change[T comparable] struct {
	From  T
	To    T
	Steps int
}

// Progress reports one frame of the momentum animation.
type Progress struct {
	// Fraction is linear elapsed time over the fling duration, in [0, 1].
	Fraction float64
	// Eased is Fraction passed through the ease-out curve.
	Eased float64
	// Offset is the animated visual offset for this frame.
	Offset float64
}

type observers[T comparable] struct {
	onChange   func(Change[T])
	onProgress func(Progress)
}

func (o *observers[T]) changed(ch Change[T]) {
	if o.onChange != nil {
		o.onChange(ch)
	}
}

func (o *observers[T]) progressed(p Progress) {
	if o.onProgress != nil {
		o.onProgress(p)
	}
}

// Option configures callbacks on a Wheel or Binary.
type Option[T comparable] func(*observers[T])

// WithOnChange registers a callback invoked after every value change.
func WithOnChange[T comparable](fn func(Change[T])) Option[T] {
	return func(o *observers[T]) {
		o.onChange = fn
	}
}

// WithOnProgress registers a callback invoked on every momentum frame.
func WithOnProgress[T comparable](fn func(Progress)) Option[T] {
	return func(o *observers[T]) {
		o.onProgress = fn
	}
}

type deceleration struct {
	start  time.Time
	from   float64
	to     float64
	offset float64
}

// Wheel steps through an ordered, cyclic set of values in response to drag
// input. Moving past the last value returns to the first and vice versa.
type Wheel[T comparable] struct {
	observers[T]

	cfg     Config
	values  []T
	current T

	dragOffset  float64
	accumulated float64
	prevDrag    float64
	velocity    float64
	decel       *deceleration
}

// New creates a wheel over values starting at initial. The initial value is
// accepted even when it is not part of values; such a wheel never moves.
func New[T comparable](cfg Config, values []T, initial T, opts ...Option[T]) (*Wheel[T], error) {
	if len(values) == 0 {
		return nil, ErrEmptyDomain
	}

	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new wheel: %w", err)
	}

	w := &Wheel[T]{
		cfg:     cfg,
		values:  append([]T(nil), values...),
		current: initial,
	}
	for _, opt := range opts {
		opt(&w.observers)
	}

	return w, nil
}

// Range returns the integers lo..hi inclusive.
func Range(lo, hi int) []int {
	if hi < lo {
		return nil
	}

	out := make([]int, 0, hi-lo+1)
	for v := lo; v <= hi; v++ {
		out = append(out, v)
	}

	return out
}

// Read returns the current value.
func (w *Wheel[T]) Read() T {
	return w.current
}

// Values returns a copy of the wheel's domain.
func (w *Wheel[T]) Values() []T {
	return append([]T(nil), w.values...)
}

// Set jumps to v without emitting a change. It reports false when v is not
// part of the domain.
func (w *Wheel[T]) Set(v T) bool {
	if !slices.Contains(w.values, v) {
		return false
	}

	w.current = v

	return true
}

// Neighbor returns the value n positions away from the current one, wrapping
// around the domain. The current value is returned if it is not in the domain.
func (w *Wheel[T]) Neighbor(n int) T {
	idx := slices.Index(w.values, w.current)
	if idx < 0 {
		return w.current
	}

	return w.values[collections.Wrap(idx+n, len(w.values))]
}

// Decelerating reports whether a momentum animation is in flight. Drag and
// step input is ignored until it completes.
func (w *Wheel[T]) Decelerating() bool {
	return w.decel != nil
}

// Offset returns the residual visual displacement in points: the fractional
// drag not yet turned into a step, or the animated offset during momentum.
func (w *Wheel[T]) Offset() float64 {
	if w.decel != nil {
		return w.decel.offset
	}

	return w.accumulated + w.dragOffset
}

// Velocity returns the most recent drag velocity.
func (w *Wheel[T]) Velocity() float64 {
	return w.velocity
}

// Step moves n positions directly, as a keyboard or scroll-wheel notch would.
func (w *Wheel[T]) Step(n int) (Change[T], bool) {
	if w.decel != nil || n == 0 {
		return Change[T]{}, false
	}

	return w.move(n)
}

// Drag feeds one pointer sample. Values change live as soon as the combined
// offset crosses a whole step distance.
func (w *Wheel[T]) Drag(s Sample) (Change[T], bool) {
	if w.decel != nil {
		return Change[T]{}, false
	}

	damped := s.Translation * w.cfg.Damping
	delta := damped - w.prevDrag
	w.velocity = delta * w.cfg.VelocityFactor
	w.prevDrag = damped
	w.dragOffset += delta

	return w.derive()
}

// Release ends the gesture. A fast release starts a momentum animation that
// must be driven by Tick; a slow one settles immediately.
func (w *Wheel[T]) Release(at time.Time) (Change[T], bool) {
	if w.decel != nil {
		return Change[T]{}, false
	}

	v := w.velocity
	w.accumulated += w.dragOffset
	w.dragOffset = 0
	w.prevDrag = 0
	w.velocity = 0

	if math.Abs(v) <= w.cfg.FlingThreshold {
		return w.settle()
	}

	extra := math.Copysign(math.Min(math.Abs(v)*w.cfg.FlingGain, w.cfg.MaxFling), v)
	w.decel = &deceleration{
		start:  at,
		from:   w.accumulated,
		to:     w.accumulated + extra,
		offset: w.accumulated,
	}
	w.accumulated += extra
	w.progressed(Progress{Offset: w.decel.offset})

	return Change[T]{}, false
}

// Tick advances the momentum animation to now. When the animation has run
// its full duration the final offset is turned into steps and input unlocks.
func (w *Wheel[T]) Tick(now time.Time) (Change[T], bool) {
	d := w.decel
	if d == nil {
		return Change[T]{}, false
	}

	fraction := 1.0
	if w.cfg.FlingDuration > 0 {
		fraction = float64(now.Sub(d.start)) / float64(w.cfg.FlingDuration)
		fraction = min(max(fraction, 0), 1)
	}

	eased := easeOut(fraction)
	d.offset = d.from + (d.to-d.from)*eased
	w.progressed(Progress{Fraction: fraction, Eased: eased, Offset: d.offset})

	if fraction < 1 {
		return Change[T]{}, false
	}

	w.decel = nil

	return w.settle()
}

// settle derives the last steps from the accumulated offset and clears it.
func (w *Wheel[T]) settle() (Change[T], bool) {
	ch, ok := w.derive()
	w.accumulated = 0

	return ch, ok
}

// derive converts whole step distances of pending offset into value steps
// and keeps only the fractional remainder. Steps truncate towards zero so a
// small offset in either direction never moves the value.
func (w *Wheel[T]) derive() (Change[T], bool) {
	offset := w.accumulated + w.dragOffset

	steps := int(offset / w.cfg.StepDistance)
	if steps == 0 {
		return Change[T]{}, false
	}

	w.accumulated = offset - float64(steps)*w.cfg.StepDistance
	w.dragOffset = 0

	return w.move(steps)
}

func (w *Wheel[T]) move(steps int) (Change[T], bool) {
	idx := slices.Index(w.values, w.current)
	if idx < 0 {
		return Change[T]{}, false
	}

	from := w.current
	w.current = w.values[collections.Wrap(idx+steps, len(w.values))]

	ch := Change[T]{From: from, To: w.current, Steps: steps}
	w.changed(ch)

	return ch, true
}

// easeOut is a cubic ease-out curve on [0, 1].
func easeOut(t float64) float64 {
	inv := 1 - t

	return 1 - inv*inv*inv
}
