package schedule

import (
	"errors"
	"sort"
)

// Weekday convention: time.Weekday, Sunday = 0. Any other numbering must be
// translated before reaching this package.

var ErrInvalidWeekLength = errors.New("schedule must contain all 7 weekdays")

// DaySchedule is the operating configuration of one weekday.
// Open with zero periods means "open but nothing configured yet", which is
// not the same as closed: nothing is bookable, but the day is not blocked.
type DaySchedule struct {
	Weekday int          `json:"weekday"`
	Open    bool         `json:"open"`
	Periods []TimePeriod `json:"periods"`
}

// Week always holds exactly 7 days, indexed by weekday.
type Week []DaySchedule

// DefaultWeek returns a week with every day closed.
func DefaultWeek() Week {
	week := make(Week, 7)
	for wd := 0; wd < 7; wd++ {
		week[wd] = DaySchedule{Weekday: wd, Open: false, Periods: []TimePeriod{}}
	}
	return week
}

// MergeWithDefault completes a partial set of days into a full week.
// Storage may omit closed days entirely; every read path funnels through
// here before the availability engine sees the data. Days are normalized
// (periods sorted, overlaps merged, closed days stripped of periods) and the
// result is sorted by weekday. When the same weekday appears twice the last
// entry wins.
func MergeWithDefault(partial []DaySchedule) Week {
	week := DefaultWeek()
	for _, d := range partial {
		if d.Weekday < 0 || d.Weekday > 6 {
			continue
		}
		week[d.Weekday] = NormalizeDay(d)
	}
	return week
}

// NormalizeDay enforces the day invariants: closed days carry no periods,
// open days carry sorted non-overlapping periods.
func NormalizeDay(d DaySchedule) DaySchedule {
	out := DaySchedule{Weekday: d.Weekday, Open: d.Open}
	if !d.Open {
		out.Periods = []TimePeriod{}
		return out
	}
	out.Periods = sortAndMergePeriods(d.Periods)
	return out
}

// ValidateWeek guards the persistence boundary: all 7 weekdays, closed ones
// included, must be present so storage never has to guess a missing day.
func ValidateWeek(days []DaySchedule) (Week, error) {
	if len(days) != 7 {
		return nil, ErrInvalidWeekLength
	}

	seen := make(map[int]bool, 7)
	for _, d := range days {
		if d.Weekday < 0 || d.Weekday > 6 || seen[d.Weekday] {
			return nil, ErrInvalidWeekLength
		}
		seen[d.Weekday] = true
	}

	sorted := make([]DaySchedule, len(days))
	copy(sorted, days)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Weekday < sorted[j].Weekday })

	week := make(Week, 0, 7)
	for _, d := range sorted {
		week = append(week, NormalizeDay(d))
	}
	return week, nil
}
