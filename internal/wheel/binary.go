package wheel

import (
	"fmt"
	"math"
	"time"
)

// Binary is a two-position wheel. Dragging past a small threshold, or
// flicking, flips it to the other value; the visual offset always springs
// back to zero on release.
type Binary[T comparable] struct {
	observers[T]

	cfg    Config
	values [2]T
	second bool

	offset   float64
	prevDrag float64
	velocity float64
}

// NewBinary creates a binary wheel over first and second, starting at initial.
func NewBinary[T comparable](cfg Config, first, second, initial T, opts ...Option[T]) (*Binary[T], error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new binary wheel: %w", err)
	}

	if initial != first && initial != second {
		return nil, fmt.Errorf("new binary wheel: initial value %v not in domain", initial)
	}

	b := &Binary[T]{
		cfg:    cfg,
		values: [2]T{first, second},
		second: initial == second,
	}
	for _, opt := range opts {
		opt(&b.observers)
	}

	return b, nil
}

// Value returns the selected value.
func (b *Binary[T]) Value() T {
	if b.second {
		return b.values[1]
	}

	return b.values[0]
}

// Other returns the value that is not selected.
func (b *Binary[T]) Other() T {
	if b.second {
		return b.values[0]
	}

	return b.values[1]
}

// Set selects v; it reports false if v is neither of the two values.
func (b *Binary[T]) Set(v T) bool {
	switch v {
	case b.values[0]:
		b.second = false
	case b.values[1]:
		b.second = true
	default:
		return false
	}

	return true
}

// Toggle flips to the other value.
func (b *Binary[T]) Toggle() {
	b.toggle()
}

func (b *Binary[T]) toggle() Change[T] {
	from := b.Value()
	b.second = !b.second

	step := 1
	if !b.second {
		step = -1
	}

	ch := Change[T]{From: from, To: b.Value(), Steps: step}
	b.changed(ch)

	return ch
}

// Offset returns the clamped visual displacement of the current drag.
func (b *Binary[T]) Offset() float64 {
	return b.offset
}

// Drag feeds one pointer sample. The offset is clamped and never steps.
func (b *Binary[T]) Drag(s Sample) {
	b.velocity = s.Translation - b.prevDrag
	b.prevDrag = s.Translation
	b.offset = min(max(s.Translation, -b.cfg.Clamp), b.cfg.Clamp)
}

// Release ends the gesture, toggling when the drag went far or fast enough.
func (b *Binary[T]) Release(_ time.Time) (Change[T], bool) {
	toggle := math.Abs(b.offset) > b.cfg.ToggleOffset || math.Abs(b.velocity) > b.cfg.ToggleVelocity

	b.offset = 0
	b.prevDrag = 0
	b.velocity = 0

	if !toggle {
		return Change[T]{}, false
	}

	return b.toggle(), true
}
