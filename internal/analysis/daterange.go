package analysis

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ademuri/spotify-history-tools/internal/history"
)

const dateFormat = "2006-01-02"

// ErrIncompleteDateRange means the caller has not chosen both ends of a range
// yet, or chose them in the wrong order. Aggregation should wait.
var ErrIncompleteDateRange = errors.New("please select a complete date range")

// DateRange is an inclusive range of UTC calendar dates.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange truncates start and end to their UTC dates. Zero times stay
// zero.
func NewDateRange(start, end time.Time) DateRange {
	return DateRange{Start: dateOf(start), End: dateOf(end)}
}

func (r DateRange) Complete() bool {
	return !r.Start.IsZero() && !r.End.IsZero() && !r.Start.After(r.End)
}

func (r DateRange) Contains(t time.Time) bool {
	d := dateOf(t)
	return !d.Before(r.Start) && !d.After(r.End)
}

func (r DateRange) String() string {
	return fmt.Sprintf("%s to %s", r.Start.Format(dateFormat), r.End.Format(dateFormat))
}

func dateOf(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Preset is a named date range relative to the latest play in the dataset.
type Preset string

const (
	PresetLast90Days  Preset = "last-90-days"
	PresetLast180Days Preset = "last-180-days"
	PresetLast365Days Preset = "last-365-days"
	PresetAll         Preset = "all"
)

// Presets lists every preset, shortest first.
var Presets = []Preset{PresetLast90Days, PresetLast180Days, PresetLast365Days, PresetAll}

var presetDays = map[Preset]int{
	PresetLast90Days:  90,
	PresetLast180Days: 180,
	PresetLast365Days: 365,
}

func ParsePreset(s string) (Preset, error) {
	for _, p := range Presets {
		if string(p) == s {
			return p, nil
		}
	}

	names := make([]string, len(Presets))
	for i, p := range Presets {
		names[i] = string(p)
	}
	return "", fmt.Errorf("unknown range %q, want one of %s", s, strings.Join(names, ", "))
}

func (p Preset) Label() string {
	if days, ok := presetDays[p]; ok {
		return fmt.Sprintf("Last %d days", days)
	}
	return "Everything"
}

// Range resolves the preset against songs. The end is always the date of the
// latest play, not today.
func (p Preset) Range(songs []history.Play) (DateRange, error) {
	if len(songs) == 0 {
		return DateRange{}, ErrNoPlays
	}

	first, last := songs[0].Timestamp, songs[0].Timestamp
	for _, s := range songs[1:] {
		if s.Timestamp.Before(first) {
			first = s.Timestamp
		}
		if s.Timestamp.After(last) {
			last = s.Timestamp
		}
	}

	end := dateOf(last)
	if p == PresetAll {
		return DateRange{Start: dateOf(first), End: end}, nil
	}
	days, ok := presetDays[p]
	if !ok {
		return DateRange{}, fmt.Errorf("unknown range %q", p)
	}
	return DateRange{Start: end.AddDate(0, 0, -days), End: end}, nil
}
