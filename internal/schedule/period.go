package schedule

import (
	"fmt"
	"sort"
	"time"
)

// TimePeriod is a contiguous open range within one day, "HH:MM" 24h.
// Start must be strictly before End.
type TimePeriod struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

func (p TimePeriod) Valid() bool {
	s, okS := minuteOf(p.Start)
	e, okE := minuteOf(p.End)
	return okS && okE && s < e
}

// minuteOf converts "HH:MM" to minutes since midnight.
func minuteOf(hm string) (int, bool) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}

func hhmm(minutes int) string {
	minutes %= 24 * 60
	if minutes < 0 {
		minutes += 24 * 60
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// sortAndMergePeriods drops malformed periods, sorts by start and merges
// overlapping or touching ranges. Gap computation assumes the result.
func sortAndMergePeriods(periods []TimePeriod) []TimePeriod {
	valid := make([]TimePeriod, 0, len(periods))
	for _, p := range periods {
		if p.Valid() {
			valid = append(valid, p)
		}
	}

	sort.Slice(valid, func(i, j int) bool {
		a, _ := minuteOf(valid[i].Start)
		b, _ := minuteOf(valid[j].Start)
		return a < b
	})

	merged := make([]TimePeriod, 0, len(valid))
	for _, p := range valid {
		if len(merged) == 0 {
			merged = append(merged, p)
			continue
		}

		last := &merged[len(merged)-1]
		lastEnd, _ := minuteOf(last.End)
		curStart, _ := minuteOf(p.Start)
		curEnd, _ := minuteOf(p.End)

		if curStart <= lastEnd {
			if curEnd > lastEnd {
				last.End = p.End
			}
			continue
		}

		merged = append(merged, p)
	}

	return merged
}
