package audio

import "errors"

const (
	// DefaultSampleRate matches the raw PCM stream returned by speech synthesis.
	DefaultSampleRate = 24000
	// DefaultChannels is mono (1 channel).
	DefaultChannels = 1
	// DefaultBufferThreshold is 9216 bytes = 4608 mono samples = 192ms @ 24kHz,
	// four shine frames per batch.
	DefaultBufferThreshold = 9216
	// DefaultLevelWindow keeps roughly 85ms of samples for level meters.
	DefaultLevelWindow = 2048
)

// EncoderConfig configures the MP3 streaming encoder.
type EncoderConfig struct {
	// SampleRate is the PCM sample rate in Hz.
	SampleRate int

	// Channels must be 1. Samples are duplicated to stereo before encoding.
	Channels int

	// BufferThreshold is the number of PCM bytes to accumulate before encoding.
	BufferThreshold int

	// LevelWindow is how many recent samples Levels returns. Zero disables it.
	LevelWindow int
}

// Validate returns an error if the config is invalid.
func (c EncoderConfig) Validate() error {
	if c.SampleRate <= 0 {
		return errors.New("sample rate must be positive")
	}

	if c.Channels != 1 {
		return errors.New("only mono (1 channel) is supported")
	}

	if c.BufferThreshold <= 0 || c.BufferThreshold%2 != 0 {
		return errors.New("buffer threshold must be a positive, even byte count")
	}

	return nil
}

// WithDefaults returns a config with default values applied to zero fields.
func (c EncoderConfig) WithDefaults() EncoderConfig {
	if c.SampleRate == 0 {
		c.SampleRate = DefaultSampleRate
	}

	if c.Channels == 0 {
		c.Channels = DefaultChannels
	}

	if c.BufferThreshold == 0 {
		c.BufferThreshold = DefaultBufferThreshold
	}

	if c.LevelWindow == 0 {
		c.LevelWindow = DefaultLevelWindow
	}

	return c
}
