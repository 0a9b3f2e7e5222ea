package wheel

import "time"

// Surface is the drag surface shared by Wheel and Binary, for input code that
// drives either kind the same way. Value changes arrive through the
// observers given at construction.
type Surface interface {
	Drag(s Sample)
	Release(at time.Time)
	Tick(now time.Time)
	Step(n int)
	Decelerating() bool
	Offset() float64
}

// SurfaceOf adapts a cyclic wheel.
func SurfaceOf[T comparable](w *Wheel[T]) Surface {
	return wheelSurface[T]{w: w}
}

// BinarySurfaceOf adapts a binary wheel. An odd step count toggles it.
func BinarySurfaceOf[T comparable](b *Binary[T]) Surface {
	return binarySurface[T]{b: b}
}

type wheelSurface[T comparable] struct {
	w *Wheel[T]
}

func (s wheelSurface[T]) Drag(sample Sample)   { s.w.Drag(sample) }
func (s wheelSurface[T]) Release(at time.Time) { s.w.Release(at) }
func (s wheelSurface[T]) Tick(now time.Time)   { s.w.Tick(now) }
func (s wheelSurface[T]) Step(n int)           { s.w.Step(n) }
func (s wheelSurface[T]) Decelerating() bool   { return s.w.Decelerating() }
func (s wheelSurface[T]) Offset() float64      { return s.w.Offset() }

type binarySurface[T comparable] struct {
	b *Binary[T]
}

func (s binarySurface[T]) Drag(sample Sample)   { s.b.Drag(sample) }
func (s binarySurface[T]) Release(at time.Time) { s.b.Release(at) }
func (s binarySurface[T]) Tick(time.Time)       {}
func (s binarySurface[T]) Decelerating() bool   { return false }
func (s binarySurface[T]) Offset() float64      { return s.b.Offset() }

func (s binarySurface[T]) Step(n int) {
	if n%2 != 0 {
		s.b.Toggle()
	}
}
