// Package content turns a finished flow into a narrated episode: a brief for
// the script writer, the script itself, and the synthesized audio.
package content

import (
	"fmt"
	"strings"
	"time"

	"github.com/alkime/podcurate/internal/wizard"
)

// Brief is everything the script writer needs to know about an episode.
type Brief struct {
	Summary wizard.Summary
	Date    string
}

// NewBrief builds a brief for an episode dated now.
func NewBrief(summary wizard.Summary, now time.Time) Brief {
	return Brief{Summary: summary, Date: now.Format(time.DateOnly)}
}

// Cast returns the presenters who speak in the episode. Unchosen slots are
// skipped.
func (b Brief) Cast() []wizard.Presenter {
	var cast []wizard.Presenter
	for _, p := range b.Summary.Presenters {
		if p.Name != "" {
			cast = append(cast, p)
		}
	}

	return cast
}

// Prompt renders the brief as the user message for the script writer.
func (b Brief) Prompt() string {
	s := b.Summary
	lo, hi := s.Duration.Minutes()

	var sb strings.Builder

	fmt.Fprintf(&sb, "Episode date: %s\n", b.Date)
	fmt.Fprintf(&sb, "Target length: %d-%d minutes (%s)\n", lo, hi, s.Duration.Label())
	fmt.Fprintf(&sb, "Format: %s\n", s.DialogMode.Label())
	fmt.Fprintf(&sb, "Delivery: %s\n", s.Schedule)

	if len(s.Topics) > 0 {
		fmt.Fprintf(&sb, "Topics: %s\n", strings.Join(s.Topics, ", "))
	}

	if len(s.FocusAreas) > 0 {
		fmt.Fprintf(&sb, "Focus areas: %s\n", strings.Join(s.FocusAreas, ", "))
	}

	sb.WriteString("\nPresenters:\n")
	cast := b.Cast()
	if len(cast) == 0 {
		sb.WriteString("- Host (neutral style)\n")
	}
	for _, p := range cast {
		style := p.Style
		if style == "" {
			style = "neutral"
		}
		fmt.Fprintf(&sb, "- %s (%s)\n", p.Name, style)
	}

	sb.WriteString("\nStories:\n")
	for i, n := range s.News {
		fmt.Fprintf(&sb, "%d. %s (%s, %s)\n", i+1, n.Title, n.Source, n.Category)
	}

	return sb.String()
}
