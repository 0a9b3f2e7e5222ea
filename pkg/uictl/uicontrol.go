package uictl

import "golang.org/x/exp/constraints"

type Number interface {
	constraints.Integer | constraints.Float
}

// Dial is a control that can read some value.
type Dial[V any] interface {
	Read() V
}

// CappedDial is a numeric Dial with a maximum cap value.
type CappedDial[N Number] interface {
	Dial[N]
	Cap() (num, max N)
}

// Levels reads a window of recent samples.
type Levels[N Number] interface {
	Read() []N
}

// Fraction returns num/max clamped to [0, 1]; zero when max is not positive.
func Fraction[N Number](d CappedDial[N]) float64 {
	num, maxValue := d.Cap()
	if maxValue <= 0 {
		return 0
	}

	f := float64(num) / float64(maxValue)

	return min(max(f, 0), 1)
}
