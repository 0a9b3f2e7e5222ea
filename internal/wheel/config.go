package wheel

import (
	"errors"
	"time"
)

const (
	// DefaultStepDistance is the damped drag distance (in points) per value step.
	DefaultStepDistance = 60
	// DefaultDamping scales raw pointer translation before it is applied.
	DefaultDamping = 0.7
	// DefaultVelocityFactor scales per-sample deltas into the fling velocity.
	DefaultVelocityFactor = 0.5
	// DefaultFlingThreshold is the release velocity above which momentum kicks in.
	DefaultFlingThreshold = 8
	// DefaultFlingGain converts release velocity into extra offset.
	DefaultFlingGain = 2
	// DefaultMaxFling caps the extra offset added by a fling.
	DefaultMaxFling = 120
	// DefaultFlingDuration is how long the ease-out momentum animation runs.
	DefaultFlingDuration = 800 * time.Millisecond

	// DefaultClamp bounds the binary wheel's drag offset on either side.
	DefaultClamp = 30
	// DefaultToggleOffset is the offset magnitude that toggles a binary wheel.
	DefaultToggleOffset = 10
	// DefaultToggleVelocity is the release velocity that toggles a binary wheel.
	DefaultToggleVelocity = 5
)

var (
	ErrEmptyDomain   = errors.New("wheel domain is empty")
	ErrInvalidConfig = errors.New("invalid wheel config")
)

// Config tunes the drag-to-value mapping. Zero values are replaced by the
// defaults in WithDefaults.
type Config struct {
	StepDistance   float64       `envconfig:"STEP_DISTANCE" default:"60" yaml:"step_distance"`
	Damping        float64       `envconfig:"DAMPING" default:"0.7" yaml:"damping"`
	VelocityFactor float64       `envconfig:"VELOCITY_FACTOR" default:"0.5" yaml:"velocity_factor"`
	FlingThreshold float64       `envconfig:"FLING_THRESHOLD" default:"8" yaml:"fling_threshold"`
	FlingGain      float64       `envconfig:"FLING_GAIN" default:"2" yaml:"fling_gain"`
	MaxFling       float64       `envconfig:"MAX_FLING" default:"120" yaml:"max_fling"`
	FlingDuration  time.Duration `envconfig:"FLING_DURATION" default:"800ms" yaml:"fling_duration"`

	Clamp          float64 `envconfig:"CLAMP" default:"30" yaml:"clamp"`
	ToggleOffset   float64 `envconfig:"TOGGLE_OFFSET" default:"10" yaml:"toggle_offset"`
	ToggleVelocity float64 `envconfig:"TOGGLE_VELOCITY" default:"5" yaml:"toggle_velocity"`
}

// DefaultConfig returns the stock picker tuning.
func DefaultConfig() Config {
	return Config{}.WithDefaults()
}

// WithDefaults returns a config with default values applied to zero fields.
func (c Config) WithDefaults() Config {
	if c.StepDistance == 0 {
		c.StepDistance = DefaultStepDistance
	}

	if c.Damping == 0 {
		c.Damping = DefaultDamping
	}

	if c.VelocityFactor == 0 {
		c.VelocityFactor = DefaultVelocityFactor
	}

	if c.FlingThreshold == 0 {
		c.FlingThreshold = DefaultFlingThreshold
	}

	if c.FlingGain == 0 {
		c.FlingGain = DefaultFlingGain
	}

	if c.MaxFling == 0 {
		c.MaxFling = DefaultMaxFling
	}

	if c.FlingDuration == 0 {
		c.FlingDuration = DefaultFlingDuration
	}

	if c.Clamp == 0 {
		c.Clamp = DefaultClamp
	}

	if c.ToggleOffset == 0 {
		c.ToggleOffset = DefaultToggleOffset
	}

	if c.ToggleVelocity == 0 {
		c.ToggleVelocity = DefaultToggleVelocity
	}

	return c
}

// Validate returns an error if the config cannot drive a wheel.
func (c Config) Validate() error {
	if c.StepDistance <= 0 {
		return errors.Join(ErrInvalidConfig, errors.New("step distance must be positive"))
	}

	if c.Damping <= 0 {
		return errors.Join(ErrInvalidConfig, errors.New("damping must be positive"))
	}

	if c.FlingDuration < 0 {
		return errors.Join(ErrInvalidConfig, errors.New("fling duration must not be negative"))
	}

	if c.Clamp <= 0 {
		return errors.Join(ErrInvalidConfig, errors.New("clamp must be positive"))
	}

	return nil
}
