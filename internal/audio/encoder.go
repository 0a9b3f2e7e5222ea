// Package audio turns synthesized speech into an MP3 episode.
package audio

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	mp3encoder "github.com/braheezy/shine-mp3/pkg/mp3"
)

// StreamingEncoder consumes S16LE mono PCM chunks from a channel and writes
// MP3 frames to an io.Writer in batches. Chunks from several narration
// segments can be fed through one encoder to produce a single episode.
type StreamingEncoder struct {
	config EncoderConfig
	input  <-chan []byte
	output io.Writer

	encoder *mp3encoder.Encoder
	pending []byte
	odd     []byte
	pcm     atomic.Int64

	levelsMu sync.Mutex
	levels   []int16

	wg      sync.WaitGroup
	errOnce sync.Once
	err     error
}

// NewStreamingEncoder creates a new streaming MP3 encoder.
func NewStreamingEncoder(
	config EncoderConfig,
	input <-chan []byte,
	output io.Writer,
) (*StreamingEncoder, error) {
	if input == nil {
		return nil, errors.New("input channel cannot be nil")
	}

	if output == nil {
		return nil, errors.New("output writer cannot be nil")
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid encoder config: %w", err)
	}

	return &StreamingEncoder{ //nolint:exhaustruct // wg, errOnce, err initialized on Start()
		config:  config,
		input:   input,
		output:  output,
		pending: make([]byte, 0, config.BufferThreshold),
	}, nil
}

// Start launches the encoding goroutine. It finishes when input is closed or
// ctx is cancelled; call Wait for the outcome.
func (e *StreamingEncoder) Start(ctx context.Context) error {
	if e.encoder != nil {
		return errors.New("encoder already started")
	}

	// shine-mp3 mono output is broken, so encode as stereo
	e.encoder = mp3encoder.NewEncoder(e.config.SampleRate, 2)

	slog.Debug("starting MP3 encoder",
		"sampleRate", e.config.SampleRate,
		"bufferThreshold", e.config.BufferThreshold)

	e.wg.Go(func() {
		for {
			select {
			case chunk, ok := <-e.input:
				if !ok {
					if err := e.Flush(); err != nil {
						e.setError(err)
					}
					return
				}

				e.pcm.Add(int64(len(chunk)))
				e.pending = append(e.pending, chunk...)

				if len(e.pending) >= e.config.BufferThreshold {
					if err := e.encodePending(); err != nil {
						e.setError(err)
						return
					}
				}

			case <-ctx.Done():
				e.setError(fmt.Errorf("encoder context cancelled: %w", ctx.Err()))
				return
			}
		}
	})

	return nil
}

// PCMBytes reports how many PCM bytes have been received so far.
func (e *StreamingEncoder) PCMBytes() int64 {
	return e.pcm.Load()
}

// encodePending encodes all whole samples in the pending buffer. A trailing
// odd byte is held for the next chunk.
func (e *StreamingEncoder) encodePending() error {
	whole := len(e.pending) &^ 1
	if whole == 0 {
		return nil
	}

	stereo := monoToStereo(e.pending[:whole])
	e.recordLevels(stereo)

	slog.Debug("encoding MP3 batch", "monoSamples", whole/2)

	if err := e.encoder.Write(e.output, stereo); err != nil {
		return fmt.Errorf("failed to encode audio to MP3: %w", err)
	}

	e.odd = append(e.odd[:0], e.pending[whole:]...)
	e.pending = append(e.pending[:0], e.odd...)

	return nil
}

// recordLevels keeps the most recent mono samples of an interleaved batch.
func (e *StreamingEncoder) recordLevels(stereo []int16) {
	if e.config.LevelWindow <= 0 {
		return
	}

	e.levelsMu.Lock()
	defer e.levelsMu.Unlock()

	for i := 0; i < len(stereo); i += 2 {
		e.levels = append(e.levels, stereo[i])
	}

	if over := len(e.levels) - e.config.LevelWindow; over > 0 {
		e.levels = append(e.levels[:0], e.levels[over:]...)
	}
}

// Levels returns a copy of the most recently encoded samples.
func (e *StreamingEncoder) Levels() []int16 {
	e.levelsMu.Lock()
	defer e.levelsMu.Unlock()

	return append([]int16(nil), e.levels...)
}

// monoToStereo decodes S16LE samples and duplicates each into L and R.
func monoToStereo(pcm []byte) []int16 {
	out := make([]int16, len(pcm))
	for i := 0; i+1 < len(pcm); i += 2 {
		s := int16(binary.LittleEndian.Uint16(pcm[i:]))
		out[i] = s
		out[i+1] = s
	}

	return out
}

// Flush encodes any remaining buffered data. Safe to call multiple times.
func (e *StreamingEncoder) Flush() error {
	if err := e.encodePending(); err != nil {
		return fmt.Errorf("failed to flush MP3 encoder: %w", err)
	}

	return nil
}

// Wait blocks until encoding completes and returns any error that occurred.
func (e *StreamingEncoder) Wait() error {
	e.wg.Wait()

	return e.err
}

// setError records the first error that occurs (subsequent calls are no-ops).
func (e *StreamingEncoder) setError(err error) {
	e.errOnce.Do(func() {
		e.err = err
		slog.Debug("streaming encoder error", "error", err)
	})
}
