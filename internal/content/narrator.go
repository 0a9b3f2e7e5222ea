package content

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"

	"github.com/alkime/podcurate/internal/audio"
	"github.com/alkime/podcurate/internal/wizard"
	"github.com/alkime/podcurate/pkg/uictl"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const pcmChunkSize = 8192

var voices = map[string]openai.AudioSpeechNewParamsVoice{
	"SHIRO":   openai.AudioSpeechNewParamsVoiceAlloy,
	"Chicken": openai.AudioSpeechNewParamsVoiceEcho,
	"小明":      openai.AudioSpeechNewParamsVoiceFable,
	"小美":      openai.AudioSpeechNewParamsVoiceNova,
	"Alex":    openai.AudioSpeechNewParamsVoiceOnyx,
}

// VoiceFor maps a presenter to a synthesis voice.
func VoiceFor(name string) openai.AudioSpeechNewParamsVoice {
	if v, ok := voices[name]; ok {
		return v
	}

	return openai.AudioSpeechNewParamsVoiceShimmer
}

var styleInstructions = map[string]string{
	"輕鬆": "Speak in a relaxed, friendly tone.",
	"反駁": "Speak with a challenging, debating tone, as if pushing back.",
	"專業": "Speak in a clear, professional newsreader tone.",
	"幽默": "Speak playfully with light humor.",
	"嚴肅": "Speak in a serious, measured tone.",
	"學術": "Speak like a lecturer, precise and explanatory.",
}

// Narrator synthesizes a script with OpenAI text-to-speech and encodes the
// result as one MP3 stream.
type Narrator struct {
	apiKey string
	model  openai.SpeechModel
	opts   []option.RequestOption

	// OnSegment, when set, is called after each segment is synthesized.
	OnSegment func(done, total int)

	done    atomic.Int64
	total   atomic.Int64
	encoder atomic.Pointer[audio.StreamingEncoder]
}

// Progress exposes segments narrated out of the script total.
func (n *Narrator) Progress() uictl.CappedDial[int] {
	return narrationProgress{n: n}
}

// Levels exposes the most recently encoded samples while narrating.
func (n *Narrator) Levels() uictl.Levels[int16] {
	return narrationLevels{n: n}
}

type narrationProgress struct{ n *Narrator }

func (p narrationProgress) Read() int { return int(p.n.done.Load()) }

func (p narrationProgress) Cap() (int, int) {
	return int(p.n.done.Load()), int(p.n.total.Load())
}

type narrationLevels struct{ n *Narrator }

func (l narrationLevels) Read() []int16 {
	if enc := l.n.encoder.Load(); enc != nil {
		return enc.Levels()
	}

	return nil
}

// NewNarrator creates a narrator. An empty model selects the default.
func NewNarrator(apiKey, model string, opts ...option.RequestOption) *Narrator {
	m := openai.SpeechModelGPT4oMiniTTS
	if model != "" {
		m = openai.SpeechModel(model)
	}

	return &Narrator{apiKey: apiKey, model: m, opts: opts}
}

// Narrate speaks every segment with its presenter's voice and style and
// writes the episode MP3 to out.
func (n *Narrator) Narrate(ctx context.Context, script Script, cast []wizard.Presenter, out io.Writer) error {
	if n.apiKey == "" {
		return errors.New("API key required: set OPENAI_API_KEY or run 'curate config set-key openai'")
	}

	if len(script.Segments) == 0 {
		return ErrEmptyScript
	}

	styles := make(map[string]string, len(cast))
	for _, p := range cast {
		styles[p.Name] = p.Style
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	pcmC := make(chan []byte, 16)

	enc, err := audio.NewStreamingEncoder(audio.EncoderConfig{}.WithDefaults(), pcmC, out)
	if err != nil {
		return fmt.Errorf("failed to create encoder: %w", err)
	}

	if err := enc.Start(ctx); err != nil {
		return fmt.Errorf("failed to start encoder: %w", err)
	}

	n.done.Store(0)
	n.total.Store(int64(len(script.Segments)))
	n.encoder.Store(enc)

	opts := append([]option.RequestOption{option.WithAPIKey(n.apiKey)}, n.opts...)
	client := openai.NewClient(opts...)

	for i, seg := range script.Segments {
		if err := n.speak(ctx, client, seg, styles[seg.Speaker], pcmC); err != nil {
			cancel()
			close(pcmC)
			_ = enc.Wait()

			return fmt.Errorf("segment %d (%s): %w", i+1, seg.Speaker, err)
		}

		n.done.Store(int64(i + 1))
		if n.OnSegment != nil {
			n.OnSegment(i+1, len(script.Segments))
		}
	}

	close(pcmC)

	if err := enc.Wait(); err != nil {
		return fmt.Errorf("failed to encode episode: %w", err)
	}

	slog.Info("episode narrated", "segments", len(script.Segments), "pcmBytes", enc.PCMBytes())

	return nil
}

func (n *Narrator) speak(
	ctx context.Context,
	client openai.Client,
	seg Segment,
	style string,
	pcmC chan<- []byte,
) error {
	params := openai.AudioSpeechNewParams{
		Input:          seg.Text,
		Model:          n.model,
		Voice:          VoiceFor(seg.Speaker),
		ResponseFormat: openai.AudioSpeechNewParamsResponseFormatPCM,
	}

	if instr, ok := styleInstructions[style]; ok {
		params.Instructions = openai.String(instr)
	}

	resp, err := client.Audio.Speech.New(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to synthesize speech via OpenAI API: %w", err)
	}
	defer resp.Body.Close()

	for {
		buf := make([]byte, pcmChunkSize)

		nr, readErr := resp.Body.Read(buf)
		if nr > 0 {
			select {
			case pcmC <- buf[:nr]:
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		if errors.Is(readErr, io.EOF) {
			return nil
		}

		if readErr != nil {
			return fmt.Errorf("failed to read speech audio: %w", readErr)
		}
	}
}
