package content

import (
	"bufio"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var ErrEmptyScript = errors.New("script has no segments")

// Segment is one uninterrupted turn of a speaker.
type Segment struct {
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
}

// Script is a titled list of segments.
type Script struct {
	Title    string    `json:"title"`
	Segments []Segment `json:"segments"`
}

// Markdown renders the script for review in an editor.
func (s Script) Markdown() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n", s.Title)
	for _, seg := range s.Segments {
		fmt.Fprintf(&sb, "\n**%s**: %s\n", seg.Speaker, seg.Text)
	}

	return sb.String()
}

var speakerLine = regexp.MustCompile(`^\*\*(.+?)\*\*:\s*(.*)$`)

// ParseScript reads a script back from its Markdown form. Lines that do not
// start a new speaker continue the previous segment.
func ParseScript(md string) (Script, error) {
	var s Script

	sc := bufio.NewScanner(strings.NewReader(md))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())

		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, "# ") && s.Title == "" && len(s.Segments) == 0:
			s.Title = strings.TrimSpace(strings.TrimPrefix(line, "# "))
		case speakerLine.MatchString(line):
			m := speakerLine.FindStringSubmatch(line)
			s.Segments = append(s.Segments, Segment{Speaker: m[1], Text: m[2]})
		case len(s.Segments) > 0:
			last := &s.Segments[len(s.Segments)-1]
			last.Text = strings.TrimSpace(last.Text + "\n" + line)
		}
	}

	if err := sc.Err(); err != nil {
		return Script{}, fmt.Errorf("failed to read script: %w", err)
	}

	if len(s.Segments) == 0 {
		return Script{}, ErrEmptyScript
	}

	return s, nil
}
