// Package wizard holds the podcast curation flow: the selections a listener
// accumulates over five linear steps and the read-only views derived from them.
package wizard

import (
	"errors"
	"fmt"
	"slices"
)

// DefaultMaxLiked caps how many news items can be liked in one flow.
const DefaultMaxLiked = 20

var (
	// ErrCapacityExceeded is advisory: the like was refused and nothing changed.
	ErrCapacityExceeded = errors.New("liked item limit reached")
	ErrItemNotFound     = errors.New("item not found")
	ErrInvalidTime      = errors.New("invalid schedule time")
	ErrInvalidValue     = errors.New("invalid value")
)

// Config tunes a flow.
type Config struct {
	MaxLiked int `envconfig:"MAX_LIKED" default:"20" yaml:"max_liked"`
}

// IDSet is a set of catalog ids. Only members are stored.
type IDSet map[string]bool

// DaySet is a set of weekdays. Only members are stored.
type DaySet map[Weekday]bool

// State is the single mutable aggregate of a flow. It is not safe for
// concurrent use.
type State struct {
	CurrentStep     int          `json:"current_step" yaml:"current_step"`
	MaxLiked        int          `json:"max_liked" yaml:"max_liked"`
	Catalog         Catalog      `json:"catalog" yaml:"catalog"`
	Topics          IDSet        `json:"topics" yaml:"topics"`
	FocusAreas      IDSet        `json:"focus_areas" yaml:"focus_areas"`
	ContentDuration Duration     `json:"content_duration" yaml:"content_duration"`
	ScheduleType    ScheduleType `json:"schedule_type" yaml:"schedule_type"`
	ScheduleTime    Time         `json:"schedule_time" yaml:"schedule_time"`
	ScheduleDays    DaySet       `json:"schedule_days" yaml:"schedule_days"`
	Frequency       Frequency    `json:"frequency" yaml:"frequency"`
	Expiration      string       `json:"expiration" yaml:"expiration"`
	DialogMode      DialogMode   `json:"dialog_mode" yaml:"dialog_mode"`
	Presenter1      Presenter    `json:"presenter1" yaml:"presenter1"`
	Presenter2      Presenter    `json:"presenter2" yaml:"presenter2"`
}

// NewState starts a flow at step one over a private copy of catalog.
func NewState(cfg Config, catalog Catalog) *State {
	maxLiked := cfg.MaxLiked
	if maxLiked <= 0 {
		maxLiked = DefaultMaxLiked
	}

	s := &State{
		CurrentStep:     1,
		MaxLiked:        maxLiked,
		Catalog:         catalog.Clone(),
		Topics:          IDSet{},
		FocusAreas:      IDSet{},
		ContentDuration: DurationStandard,
		ScheduleType:    ScheduleRoutine,
		ScheduleTime:    Time{Hour: 8, Minute: 0, Meridiem: PM},
		ScheduleDays:    DaySet{Monday: true},
		Frequency:       FrequencyWeekly,
		Expiration:      "無",
		DialogMode:      DialogConversational,
	}

	for _, t := range s.Catalog.Topics {
		if t.Preselected {
			s.Topics[t.ID] = true
		}
	}

	for _, t := range s.Catalog.FocusAreas {
		if t.Preselected {
			s.FocusAreas[t.ID] = true
		}
	}

	return s
}

// Restore makes a state read back from storage usable again. It restarts at
// step one, and every field left empty or out of range falls back to the
// value NewState would give it. Selections that are valid are kept.
func (s *State) Restore(cfg Config) {
	def := NewState(cfg, Catalog{})

	s.CurrentStep = def.CurrentStep

	if s.MaxLiked <= 0 {
		s.MaxLiked = def.MaxLiked
	}

	if s.Topics == nil {
		s.Topics = IDSet{}
	}

	if s.FocusAreas == nil {
		s.FocusAreas = IDSet{}
	}

	if s.ScheduleDays == nil {
		s.ScheduleDays = def.ScheduleDays
	}

	if !s.ScheduleTime.Valid() {
		s.ScheduleTime = def.ScheduleTime
	}

	if !s.ContentDuration.Valid() {
		s.ContentDuration = def.ContentDuration
	}

	if !s.ScheduleType.Valid() {
		s.ScheduleType = def.ScheduleType
	}

	if !s.Frequency.Valid() {
		s.Frequency = def.Frequency
	}

	if !s.DialogMode.Valid() {
		s.DialogMode = def.DialogMode
	}
}

// Advance moves one step forward. The caller decides what lies beyond the
// last step.
func (s *State) Advance() {
	s.CurrentStep++
}

// Retreat moves one step back and never goes below step one.
func (s *State) Retreat() {
	if s.CurrentStep > 1 {
		s.CurrentStep--
	}
}

// ToggleLiked flips the liked flag of a news item and returns the new flag.
// Liking past MaxLiked is refused with ErrCapacityExceeded.
func (s *State) ToggleLiked(id string) (bool, error) {
	i := findNews(s.Catalog.News, id)
	if i < 0 {
		return false, fmt.Errorf("news %q: %w", id, ErrItemNotFound)
	}

	item := &s.Catalog.News[i]
	if !item.Liked && s.LikedCount() >= s.MaxLiked {
		return false, fmt.Errorf("like %q (%d/%d): %w", id, s.LikedCount(), s.MaxLiked, ErrCapacityExceeded)
	}

	item.Liked = !item.Liked

	return item.Liked, nil
}

// DeleteItem drops a news item from the working catalog whether liked or not.
func (s *State) DeleteItem(id string) bool {
	i := findNews(s.Catalog.News, id)
	if i < 0 {
		return false
	}

	s.Catalog.News = slices.Delete(s.Catalog.News, i, i+1)

	return true
}

// ToggleTopic flips a topic's membership and returns whether it is now selected.
func (s *State) ToggleTopic(id string) (bool, error) {
	if findTag(s.Catalog.Topics, id) < 0 {
		return false, fmt.Errorf("topic %q: %w", id, ErrItemNotFound)
	}

	return toggle(s.Topics, id), nil
}

// ToggleFocusArea flips a focus area's membership.
func (s *State) ToggleFocusArea(id string) (bool, error) {
	if findTag(s.Catalog.FocusAreas, id) < 0 {
		return false, fmt.Errorf("focus area %q: %w", id, ErrItemNotFound)
	}

	return toggle(s.FocusAreas, id), nil
}

// ToggleDay flips a weekday. Days are kept even when the frequency is daily.
func (s *State) ToggleDay(day Weekday) (bool, error) {
	if !day.Valid() {
		return false, fmt.Errorf("day %d: %w", day, ErrInvalidValue)
	}

	return toggle(s.ScheduleDays, day), nil
}

func toggle[K comparable](set map[K]bool, k K) bool {
	if set[k] {
		delete(set, k)
		return false
	}

	set[k] = true

	return true
}

func (s *State) SetDuration(d Duration) error {
	if !d.Valid() {
		return fmt.Errorf("duration %q: %w", d, ErrInvalidValue)
	}

	s.ContentDuration = d

	return nil
}

func (s *State) SetScheduleType(t ScheduleType) error {
	if !t.Valid() {
		return fmt.Errorf("schedule type %q: %w", t, ErrInvalidValue)
	}

	s.ScheduleType = t

	return nil
}

// SetFrequency switches the cadence without touching ScheduleDays.
func (s *State) SetFrequency(f Frequency) error {
	if !f.Valid() {
		return fmt.Errorf("frequency %q: %w", f, ErrInvalidValue)
	}

	s.Frequency = f

	return nil
}

func (s *State) SetTime(t Time) error {
	if !t.Valid() {
		return fmt.Errorf("%d:%02d %q: %w", t.Hour, t.Minute, t.Meridiem, ErrInvalidTime)
	}

	s.ScheduleTime = t

	return nil
}

func (s *State) SetDialogMode(m DialogMode) error {
	if !m.Valid() {
		return fmt.Errorf("dialog mode %q: %w", m, ErrInvalidValue)
	}

	s.DialogMode = m

	return nil
}

// SetPresenter fills a narrator slot. Empty name or style leaves that part unchosen.
func (s *State) SetPresenter(slot Slot, name, style string) error {
	if name != "" && !slices.Contains(Characters, name) {
		return fmt.Errorf("character %q: %w", name, ErrInvalidValue)
	}

	if style != "" && !slices.Contains(Styles, style) {
		return fmt.Errorf("style %q: %w", style, ErrInvalidValue)
	}

	p := Presenter{Name: name, Style: style}

	switch slot {
	case SlotFirst:
		s.Presenter1 = p
	case SlotSecond:
		s.Presenter2 = p
	default:
		return fmt.Errorf("slot %d: %w", slot, ErrInvalidValue)
	}

	return nil
}

func (s *State) SetExpiration(e string) {
	s.Expiration = e
}
