package wizard

import (
	"strings"

	"github.com/alkime/podcurate/pkg/collections"
	"github.com/alkime/podcurate/pkg/uictl"
)

// SelectedTopicNames returns selected topic labels in catalog order.
func (s *State) SelectedTopicNames() []string {
	return selectedLabels(s.Catalog.Topics, s.Topics)
}

// SelectedFocusAreaNames returns selected focus area labels in catalog order.
func (s *State) SelectedFocusAreaNames() []string {
	return selectedLabels(s.Catalog.FocusAreas, s.FocusAreas)
}

func selectedLabels(tags []Tag, set IDSet) []string {
	picked := collections.Filter(tags, func(t Tag) bool { return set[t.ID] })

	return collections.Apply(picked, func(t Tag) string { return t.Label })
}

// SelectedNews returns liked items in catalog order.
func (s *State) SelectedNews() []NewsItem {
	return collections.Filter(s.Catalog.News, func(n NewsItem) bool { return n.Liked })
}

func (s *State) LikedCount() int {
	return collections.Count(s.Catalog.News, func(n NewsItem) bool { return n.Liked })
}

// SelectedDayNames returns weekday labels Monday first, or nothing when the
// frequency is daily.
func (s *State) SelectedDayNames() []string {
	if s.Frequency != FrequencyWeekly {
		return []string{}
	}

	days := collections.Filter(Weekdays(), func(d Weekday) bool { return s.ScheduleDays[d] })

	return collections.Apply(days, Weekday.Label)
}

func (s *State) FormattedTime() string {
	return s.ScheduleTime.String()
}

// ScheduleDescription reads like "每週 一, 三 8:00 PM", "每日 8:00 PM" or
// "僅限本次 8:00 PM".
func (s *State) ScheduleDescription() string {
	if s.ScheduleType == ScheduleOneTime {
		return ScheduleOneTime.Label() + " " + s.FormattedTime()
	}

	parts := []string{s.Frequency.Label()}
	if days := s.SelectedDayNames(); len(days) > 0 {
		parts = append(parts, strings.Join(days, ", "))
	}

	return strings.Join(append(parts, s.FormattedTime()), " ")
}

// Summary bundles every projection shown on the last step and handed to
// content generation.
type Summary struct {
	Topics       []string     `json:"topics" yaml:"topics"`
	FocusAreas   []string     `json:"focus_areas" yaml:"focus_areas"`
	News         []NewsItem   `json:"news" yaml:"news"`
	LikedCount   int          `json:"liked_count" yaml:"liked_count"`
	MaxLiked     int          `json:"max_liked" yaml:"max_liked"`
	Duration     Duration     `json:"duration" yaml:"duration"`
	ScheduleType ScheduleType `json:"schedule_type" yaml:"schedule_type"`
	Time         string       `json:"time" yaml:"time"`
	Days         []string     `json:"days" yaml:"days"`
	Frequency    Frequency    `json:"frequency" yaml:"frequency"`
	Schedule     string       `json:"schedule" yaml:"schedule"`
	Expiration   string       `json:"expiration" yaml:"expiration"`
	DialogMode   DialogMode   `json:"dialog_mode" yaml:"dialog_mode"`
	Presenters   []Presenter  `json:"presenters" yaml:"presenters"`
}

// Summary collects all projections.
func (s *State) Summary() Summary {
	presenters := []Presenter{s.Presenter1}
	if s.DialogMode == DialogConversational {
		presenters = append(presenters, s.Presenter2)
	}

	return Summary{
		Topics:       s.SelectedTopicNames(),
		FocusAreas:   s.SelectedFocusAreaNames(),
		News:         s.SelectedNews(),
		LikedCount:   s.LikedCount(),
		MaxLiked:     s.MaxLiked,
		Duration:     s.ContentDuration,
		ScheduleType: s.ScheduleType,
		Time:         s.FormattedTime(),
		Days:         s.SelectedDayNames(),
		Frequency:    s.Frequency,
		Schedule:     s.ScheduleDescription(),
		Expiration:   s.Expiration,
		DialogMode:   s.DialogMode,
		Presenters:   presenters,
	}
}

var _ uictl.CappedDial[int] = likedDial{}

// likedDial reads liked/max for progress display.
type likedDial struct {
	s *State
}

func (d likedDial) Read() int { return d.s.LikedCount() }

func (d likedDial) Cap() (int, int) { return d.s.LikedCount(), d.s.MaxLiked }

// LikedDial exposes the liked count against its cap.
func (s *State) LikedDial() uictl.CappedDial[int] {
	return likedDial{s: s}
}
