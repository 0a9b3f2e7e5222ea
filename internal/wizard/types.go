package wizard

import "fmt"

// Duration is the target episode length bucket.
type Duration string

const (
	DurationShort    Duration = "short"
	DurationStandard Duration = "standard"
	DurationDeep     Duration = "deep"
)

// Durations lists the length buckets in display order.
func Durations() []Duration {
	return []Duration{DurationShort, DurationStandard, DurationDeep}
}

// Label returns the descriptive text shown to listeners.
func (d Duration) Label() string {
	switch d {
	case DurationShort:
		return "短篇形式 （5-10分鐘）"
	case DurationStandard:
		return "標準時長 （10-20分鐘）"
	case DurationDeep:
		return "深入探討 （20-30分鐘）"
	default:
		return string(d)
	}
}

// Minutes returns the inclusive minute range of the bucket.
func (d Duration) Minutes() (lo, hi int) {
	switch d {
	case DurationShort:
		return 5, 10
	case DurationDeep:
		return 20, 30
	default:
		return 10, 20
	}
}

func (d Duration) Valid() bool {
	return d == DurationShort || d == DurationStandard || d == DurationDeep
}

// ScheduleType says whether an episode is delivered once or on a routine.
type ScheduleType string

const (
	ScheduleOneTime ScheduleType = "one_time"
	ScheduleRoutine ScheduleType = "routine"
)

func (t ScheduleType) Label() string {
	if t == ScheduleOneTime {
		return "僅限本次"
	}

	return "routine"
}

func (t ScheduleType) Valid() bool {
	return t == ScheduleOneTime || t == ScheduleRoutine
}

// Frequency is the routine delivery cadence.
type Frequency string

const (
	FrequencyDaily  Frequency = "daily"
	FrequencyWeekly Frequency = "weekly"
)

func (f Frequency) Label() string {
	if f == FrequencyDaily {
		return "每日"
	}

	return "每週"
}

func (f Frequency) Valid() bool {
	return f == FrequencyDaily || f == FrequencyWeekly
}

// Meridiem is AM or PM on a 12-hour clock.
type Meridiem string

const (
	AM Meridiem = "AM"
	PM Meridiem = "PM"
)

func (m Meridiem) Valid() bool {
	return m == AM || m == PM
}

// Weekday counts from Monday (0) to Sunday (6).
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayLabels = [...]string{"一", "二", "三", "四", "五", "六", "日"}

// Weekdays lists the days Monday through Sunday.
func Weekdays() []Weekday {
	return []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}
}

// Label returns the single-character day name.
func (d Weekday) Label() string {
	if !d.Valid() {
		return fmt.Sprintf("Weekday(%d)", int(d))
	}

	return weekdayLabels[d]
}

func (d Weekday) Valid() bool {
	return d >= Monday && d <= Sunday
}

// DialogMode selects between a two-host conversation and a single narrator.
type DialogMode string

const (
	DialogConversational  DialogMode = "conversational"
	DialogSinglePresenter DialogMode = "single"
)

func (m DialogMode) Label() string {
	if m == DialogSinglePresenter {
		return "單人"
	}

	return "對話式"
}

func (m DialogMode) Valid() bool {
	return m == DialogConversational || m == DialogSinglePresenter
}

// Time is a 12-hour wall-clock delivery time.
type Time struct {
	Hour     int      `json:"hour" yaml:"hour"`
	Minute   int      `json:"minute" yaml:"minute"`
	Meridiem Meridiem `json:"meridiem" yaml:"meridiem"`
}

// String formats the time as "8:05 PM".
func (t Time) String() string {
	return fmt.Sprintf("%d:%02d %s", t.Hour, t.Minute, t.Meridiem)
}

func (t Time) Valid() bool {
	return t.Hour >= 1 && t.Hour <= 12 && t.Minute >= 0 && t.Minute <= 59 && t.Meridiem.Valid()
}

// Presenter is a narrator slot. Empty fields mean nothing was picked yet.
type Presenter struct {
	Name  string `json:"name,omitempty" yaml:"name,omitempty"`
	Style string `json:"style,omitempty" yaml:"style,omitempty"`
}

// Chosen reports whether both character and style were picked.
func (p Presenter) Chosen() bool {
	return p.Name != "" && p.Style != ""
}

// Slot identifies one of the two presenter positions.
type Slot int

const (
	SlotFirst Slot = iota + 1
	SlotSecond
)
